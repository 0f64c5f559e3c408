package entities

// TranscriptionMetrics scores a hypothesis transcript against a reference.
// All values lie in [0, 1].
type TranscriptionMetrics struct {
	WordErrorRate      float64 `json:"word_error_rate" yaml:"word_error_rate"`
	CharacterErrorRate float64 `json:"character_error_rate" yaml:"character_error_rate"`
	BLEUScore          float64 `json:"bleu_score" yaml:"bleu_score"`
	Accuracy           float64 `json:"accuracy" yaml:"accuracy"`
}

// SummarizationMetrics scores a generated summary against a reference
type SummarizationMetrics struct {
	Rouge1             float64 `json:"rouge1" yaml:"rouge1"`
	Rouge2             float64 `json:"rouge2" yaml:"rouge2"`
	RougeL             float64 `json:"rougeL" yaml:"rougeL"`
	SemanticSimilarity float64 `json:"semantic_similarity" yaml:"semantic_similarity"`
}
