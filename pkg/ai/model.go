package ai

import (
	"fmt"
	"strings"
)

// ModelKind enumerates the supported text generation model families
type ModelKind string

const (
	ModelQwen   ModelKind = "qwen"
	ModelLlama  ModelKind = "llama"
	ModelCustom ModelKind = "custom"
)

// Preset names accepted from requests and configuration
const (
	PresetQwen  = "qwen2.5-7b-instruct"
	PresetLlama = "llama-3.1-8b-instruct"
)

const (
	qwenPath  = "Qwen/Qwen2.5-7B-Instruct"
	llamaPath = "meta-llama/Llama-3.1-8B-Instruct"
)

// Model is a resolved text generation model. Resolution happens once, when
// the preset name is parsed; callers never inspect free text again.
type Model struct {
	Kind ModelKind `json:"kind"`
	path string
}

// Qwen returns the Qwen preset
func Qwen() Model { return Model{Kind: ModelQwen, path: qwenPath} }

// Llama returns the Llama preset
func Llama() Model { return Model{Kind: ModelLlama, path: llamaPath} }

// Custom wraps an arbitrary model identifier understood by the backend
func Custom(path string) Model { return Model{Kind: ModelCustom, path: path} }

// Path returns the identifier sent to the inference backend
func (m Model) Path() string {
	return m.path
}

// Name returns the preset name, or the custom path
func (m Model) Name() string {
	switch m.Kind {
	case ModelQwen:
		return PresetQwen
	case ModelLlama:
		return PresetLlama
	default:
		return m.path
	}
}

func (m Model) String() string {
	return fmt.Sprintf("%s (%s)", m.Name(), m.path)
}

// IsZero reports whether the model was never set
func (m Model) IsZero() bool {
	return m.Kind == "" && m.path == ""
}

// ParseModel resolves a preset name or custom model identifier.
// Preset names and bare family names match case-insensitively.
func ParseModel(name string) (Model, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Model{}, fmt.Errorf("model name is empty")
	}
	switch strings.ToLower(trimmed) {
	case PresetQwen, string(ModelQwen), strings.ToLower(qwenPath):
		return Qwen(), nil
	case PresetLlama, string(ModelLlama), strings.ToLower(llamaPath):
		return Llama(), nil
	}
	return Custom(trimmed), nil
}

// PresetInfo describes one selectable preset
type PresetInfo struct {
	Name string    `json:"name" yaml:"name"`
	Kind ModelKind `json:"kind" yaml:"kind"`
	Path string    `json:"path" yaml:"path"`
}

// Presets lists the named models in display order
func Presets() []PresetInfo {
	return []PresetInfo{
		{Name: PresetQwen, Kind: ModelQwen, Path: qwenPath},
		{Name: PresetLlama, Kind: ModelLlama, Path: llamaPath},
	}
}
