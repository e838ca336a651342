package pack

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// LegacyDocument is one legacy item-model file. Read-only source of truth
// for a single conversion; fields not listed here are ignored on decode.
type LegacyDocument struct {
	Parent    string            `json:"parent,omitempty"`
	Textures  map[string]string `json:"textures,omitempty"`
	Overrides []Override        `json:"overrides,omitempty"`
}

// Override is one legacy predicate override.
type Override struct {
	Predicate map[string]float64 `json:"predicate"`
	Model     string             `json:"model"`
}

// ModelRef points at a single model in the new schema.
type ModelRef struct {
	Type  string `json:"type"`
	Model string `json:"model"`
}

// NewModelRef builds the standard {"type":"model"} reference.
func NewModelRef(model string) ModelRef {
	return ModelRef{Type: "model", Model: model}
}

// DispatchEntry is one threshold arm of a range_dispatch model.
// Entries within a document must be strictly ascending by threshold.
type DispatchEntry struct {
	Threshold float64  `json:"threshold"`
	Model     ModelRef `json:"model"`
}

// RangeDispatch selects a model by a numeric item property.
type RangeDispatch struct {
	Type     string          `json:"type"`
	Property string          `json:"property"`
	Fallback ModelRef        `json:"fallback"`
	Entries  []DispatchEntry `json:"entries"`
}

// RangeDispatchDocument is the merged output document for the
// custom-model-data and damage modes.
type RangeDispatchDocument struct {
	Model RangeDispatch `json:"model"`
}

// StandaloneDocument is one per-override output document for item-model mode.
type StandaloneDocument struct {
	Model ModelRef `json:"model"`
}

// DecodeLegacy parses a legacy item-model document.
func DecodeLegacy(data []byte) (*LegacyDocument, error) {
	var doc LegacyDocument
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode legacy document: %w", err)
	}
	return &doc, nil
}

// Encode serializes an output document with two-space indentation,
// matching the files the game ships with.
func Encode(doc any) ([]byte, error) {
	data, err := sonic.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}
