package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Date    string   `validate:"iso_date"`
	Model   string   `validate:"model_preset"`
	Formats []string `validate:"dive,minutes_format"`
	Chunk   int      `validate:"min=10,max=60"`
}

func TestValidate(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		in      sample
		wantErr bool
	}{
		{"valid", sample{Date: "2024-03-01", Model: "qwen2.5-7b-instruct", Formats: []string{"JSON", "PDF"}, Chunk: 30}, false},
		{"empty optional fields", sample{Chunk: 10}, false},
		{"unknown format is permitted", sample{Formats: []string{"UNKNOWN"}, Chunk: 60}, false},
		{"blank format", sample{Formats: []string{" "}, Chunk: 30}, true},
		{"bad date", sample{Date: "01/03/2024", Chunk: 30}, true},
		{"whitespace model", sample{Model: "   ", Chunk: 30}, true},
		{"chunk out of range", sample{Chunk: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
