package export

import (
	"bytes"
	"encoding/json"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// JSONRenderer writes the record with two-space indentation and without
// HTML escaping, in struct field order
type JSONRenderer struct{}

func (JSONRenderer) Render(record entities.MinutesRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(record); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
