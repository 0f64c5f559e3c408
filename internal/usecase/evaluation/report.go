package evaluation

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// AccuracyLabel grades transcription accuracy
func AccuracyLabel(accuracy float64) string {
	switch {
	case accuracy > 0.9:
		return "excellent"
	case accuracy > 0.8:
		return "good"
	default:
		return "needs improvement"
	}
}

// OverlapLabel grades summary overlap by ROUGE-1
func OverlapLabel(rouge1 float64) string {
	switch {
	case rouge1 > 0.7:
		return "high"
	case rouge1 > 0.5:
		return "moderate"
	default:
		return "low"
	}
}

// GenerateReport renders both metric sets as a fixed-layout text report
func (e *Evaluator) GenerateReport(t entities.TranscriptionMetrics, s entities.SummarizationMetrics) string {
	var b strings.Builder

	b.WriteString("📊 EVALUATION REPORT\n")
	b.WriteString("==================\n\n")

	b.WriteString("🎤 Transcription Quality:\n")
	fmt.Fprintf(&b, "• Word Error Rate: %.3f\n", t.WordErrorRate)
	fmt.Fprintf(&b, "• Character Error Rate: %.3f\n", t.CharacterErrorRate)
	fmt.Fprintf(&b, "• BLEU Score: %.3f\n", t.BLEUScore)
	fmt.Fprintf(&b, "• Accuracy: %.1f%%\n\n", t.Accuracy*100)

	b.WriteString("📝 Summarization Quality:\n")
	fmt.Fprintf(&b, "• ROUGE-1: %.3f\n", s.Rouge1)
	fmt.Fprintf(&b, "• ROUGE-2: %.3f\n", s.Rouge2)
	fmt.Fprintf(&b, "• ROUGE-L: %.3f\n", s.RougeL)
	fmt.Fprintf(&b, "• Semantic Similarity: %.3f\n\n", s.SemanticSimilarity)

	b.WriteString("💡 Recommendations:\n")
	fmt.Fprintf(&b, "• Transcription quality is %s\n", AccuracyLabel(t.Accuracy))
	fmt.Fprintf(&b, "• Summary captures %s content overlap", OverlapLabel(s.Rouge1))

	return b.String()
}
