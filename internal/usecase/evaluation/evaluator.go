package evaluation

import (
	"strings"
	"unicode"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// Evaluator computes word-overlap approximations of WER, CER, BLEU and
// ROUGE. These are not the textbook metrics: WER is one minus the share of
// distinct reference words found in the hypothesis, and ROUGE-L and
// semantic similarity both equal ROUGE-1.
type Evaluator struct{}

// NewEvaluator creates a new Evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// EvaluateTranscription scores a transcript hypothesis against a reference
func (e *Evaluator) EvaluateTranscription(reference, hypothesis string) entities.TranscriptionMetrics {
	wer := wordErrorRate(reference, hypothesis)
	return entities.TranscriptionMetrics{
		WordErrorRate:      wer,
		CharacterErrorRate: characterErrorRate(reference, hypothesis),
		BLEUScore:          bleu(reference, hypothesis),
		Accuracy:           clamp(1 - wer),
	}
}

// EvaluateSummarization scores a summary hypothesis against a reference
func (e *Evaluator) EvaluateSummarization(reference, hypothesis string) entities.SummarizationMetrics {
	r1 := rouge1(reference, hypothesis)
	return entities.SummarizationMetrics{
		Rouge1:             r1,
		Rouge2:             rouge2(reference, hypothesis),
		RougeL:             r1,
		SemanticSimilarity: r1,
	}
}

func wordErrorRate(reference, hypothesis string) float64 {
	ref := wordSet(reference)
	hyp := wordSet(hypothesis)
	if len(ref) == 0 {
		if len(hyp) > 0 {
			return 1
		}
		return 0
	}
	return clamp(1 - float64(intersection(ref, hyp))/float64(len(ref)))
}

// characterErrorRate compares lowercased runes position by position over the
// shorter string
func characterErrorRate(reference, hypothesis string) float64 {
	ref := []rune(strings.ToLower(reference))
	hyp := []rune(strings.ToLower(hypothesis))
	if len(ref) == 0 {
		if len(hyp) > 0 {
			return 1
		}
		return 0
	}

	n := len(ref)
	if len(hyp) < n {
		n = len(hyp)
	}
	matches := 0
	for i := 0; i < n; i++ {
		if ref[i] == hyp[i] {
			matches++
		}
	}
	return clamp(1 - float64(matches)/float64(len(ref)))
}

// bleu is unigram precision over distinct words
func bleu(reference, hypothesis string) float64 {
	ref := wordSet(reference)
	hyp := wordSet(hypothesis)
	if len(hyp) == 0 {
		return 0
	}
	return clamp(float64(intersection(ref, hyp)) / float64(len(hyp)))
}

func rouge1(reference, hypothesis string) float64 {
	ref := wordSet(reference)
	if len(ref) == 0 {
		return 0
	}
	return clamp(float64(intersection(ref, wordSet(hypothesis))) / float64(len(ref)))
}

func rouge2(reference, hypothesis string) float64 {
	ref := bigramSet(reference)
	if len(ref) == 0 {
		return 0
	}
	return clamp(float64(intersection(ref, bigramSet(hypothesis))) / float64(len(ref)))
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), unicode.IsSpace)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range words(s) {
		set[w] = struct{}{}
	}
	return set
}

func bigramSet(s string) map[string]struct{} {
	ws := words(s)
	set := make(map[string]struct{})
	for i := 0; i+1 < len(ws); i++ {
		set[ws[i]+"\x00"+ws[i+1]] = struct{}{}
	}
	return set
}

func intersection(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
