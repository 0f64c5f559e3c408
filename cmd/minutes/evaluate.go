package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/evaluation"
)

type evaluateFlags struct {
	referenceTranscript string
	transcript          string
	referenceSummary    string
	summary             string
}

type evaluateOutput struct {
	Transcription entities.TranscriptionMetrics `json:"transcription" yaml:"transcription"`
	Summarization entities.SummarizationMetrics `json:"summarization" yaml:"summarization"`
	Report        string                        `json:"report" yaml:"report"`
}

func newEvaluateCommand(root *rootOptions) *cobra.Command {
	flags := &evaluateFlags{}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score a transcript and summary against references",
		Long: `Score a transcript and a summary against reference texts.

Reports word and character error rates, BLEU and accuracy for the
transcript, and ROUGE-1/2/L plus semantic similarity for the summary.
All inputs are plain text files.

Examples:
  minutes evaluate --reference-transcript ref.txt --transcript hyp.txt \
    --reference-summary ref_summary.txt --summary summary.txt

  minutes evaluate ... -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(root, flags, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&flags.referenceTranscript, "reference-transcript", "", "Reference transcript file")
	cmd.Flags().StringVar(&flags.transcript, "transcript", "", "Transcript to score")
	cmd.Flags().StringVar(&flags.referenceSummary, "reference-summary", "", "Reference summary file")
	cmd.Flags().StringVar(&flags.summary, "summary", "", "Summary to score")
	for _, name := range []string{"reference-transcript", "transcript", "reference-summary", "summary"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runEvaluate(root *rootOptions, flags *evaluateFlags, stdout io.Writer) error {
	format, err := root.format()
	if err != nil {
		return err
	}

	texts := make([]string, 4)
	for i, path := range []string{flags.referenceTranscript, flags.transcript, flags.referenceSummary, flags.summary} {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		texts[i] = string(data)
	}

	evaluator := evaluation.NewEvaluator()
	out := evaluateOutput{
		Transcription: evaluator.EvaluateTranscription(texts[0], texts[1]),
		Summarization: evaluator.EvaluateSummarization(texts[2], texts[3]),
	}
	out.Report = evaluator.GenerateReport(out.Transcription, out.Summarization)

	if format != OutputFormatText {
		return writeStructured(stdout, format, out)
	}
	_, err = fmt.Fprintln(stdout, out.Report)
	return err
}
