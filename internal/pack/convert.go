package pack

import (
	"fmt"
	"sort"
)

// Mode selects one of the three conversion strategies. A mode is chosen once
// per run and applies uniformly to the whole pack.
type Mode int

const (
	// ModeCustomModelData merges a file's overrides into one range_dispatch
	// document keyed by custom_model_data.
	ModeCustomModelData Mode = iota

	// ModeItemModel emits one standalone model document per override; the
	// model is later bound to an item via its item_model component.
	ModeItemModel

	// ModeDamage merges damage-only overrides into one range_dispatch
	// document keyed by damage.
	ModeDamage
)

// ParseMode maps the CLI mode names onto Mode values.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "cmd", "custom_model_data":
		return ModeCustomModelData, nil
	case "item", "item_model":
		return ModeItemModel, nil
	case "damage":
		return ModeDamage, nil
	default:
		return 0, fmt.Errorf("unknown conversion mode %q (expected cmd, item, or damage)", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeCustomModelData:
		return "cmd"
	case ModeItemModel:
		return "item"
	case ModeDamage:
		return "damage"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Property returns the range_dispatch property the mode dispatches on.
// Only meaningful for the two range-dispatch modes.
func (m Mode) Property() string {
	if m == ModeDamage {
		return "damage"
	}
	return "custom_model_data"
}

// SkipReason explains why a candidate file produced no output.
type SkipReason int

const (
	// SkipNone: the file converted normally.
	SkipNone SkipReason = iota

	// SkipNoMatchingOverrides: overrides exist but none is usable by the
	// active mode.
	SkipNoMatchingOverrides

	// SkipModeIncompatible: the file's predicates belong to a different
	// mode (e.g. custom_model_data overrides under damage mode). The file
	// is skipped whole, never partially converted.
	SkipModeIncompatible
)

func (s SkipReason) String() string {
	switch s {
	case SkipNoMatchingOverrides:
		return "no overrides match the active mode"
	case SkipModeIncompatible:
		return "file predicates require a different conversion mode"
	default:
		return "not skipped"
	}
}

// StandaloneFile is one item-model-mode output: a document plus its
// slash-separated path relative to the namespace's items/ directory.
type StandaloneFile struct {
	Path string
	Doc  StandaloneDocument
}

// Result is the outcome of converting one legacy document. Exactly one of
// Dispatch or Standalone is populated unless Skip is set.
type Result struct {
	Dispatch   *RangeDispatchDocument
	Standalone []StandaloneFile
	Skip       SkipReason
	Warnings   []string
}

// Skipped reports whether the document produced no output.
func (r *Result) Skipped() bool { return r.Skip != SkipNone }

// Convert transforms one legacy document under the given mode. Pure: the
// input document is not modified and no I/O happens here.
func Convert(doc *LegacyDocument, mode Mode) *Result {
	switch mode {
	case ModeItemModel:
		return convertItemModel(doc)
	case ModeDamage:
		return convertDamage(doc)
	default:
		return convertCustomModelData(doc)
	}
}

func convertCustomModelData(doc *LegacyDocument) *Result {
	res := &Result{}
	var entries []DispatchEntry
	sawDamageOnly := false

	for _, ov := range doc.Overrides {
		c := Classify(ov.Predicate)
		switch {
		case c.Kind.HasCustomModelData():
			entries = append(entries, DispatchEntry{
				Threshold: float64(c.CustomModelData),
				Model:     NewModelRef(NormalizeModel(ov.Model).Ref),
			})
		case c.Kind == KindDamageOnly:
			sawDamageOnly = true
			res.warnf("damage-only override %q skipped: convert this file with damage mode", ov.Model)
		default:
			res.warnf("override %q has an unrecognized predicate, skipped", ov.Model)
		}
	}

	if len(entries) == 0 {
		if sawDamageOnly {
			res.Skip = SkipModeIncompatible
		} else {
			res.Skip = SkipNoMatchingOverrides
		}
		return res
	}

	res.Dispatch = &RangeDispatchDocument{Model: RangeDispatch{
		Type:     "range_dispatch",
		Property: ModeCustomModelData.Property(),
		Fallback: NewModelRef(fallbackRef(doc)),
		Entries:  sortEntries(entries, res),
	}}
	return res
}

func convertItemModel(doc *LegacyDocument) *Result {
	res := &Result{}
	seen := make(map[string]struct{}, len(doc.Overrides))

	for _, ov := range doc.Overrides {
		if ov.Model == "" {
			res.warnf("override with predicate %v has no model, skipped", ov.Predicate)
			continue
		}
		norm := NormalizeModel(ov.Model)
		path := norm.File + ".json"
		if _, dup := seen[path]; dup {
			res.warnf("output path %q written more than once, last override wins", path)
		}
		seen[path] = struct{}{}
		res.Standalone = append(res.Standalone, StandaloneFile{
			Path: path,
			Doc:  StandaloneDocument{Model: NewModelRef(norm.Ref)},
		})
	}

	if len(res.Standalone) == 0 {
		res.Skip = SkipNoMatchingOverrides
	}
	return res
}

func convertDamage(doc *LegacyDocument) *Result {
	res := &Result{}

	// Damage mode never partially converts: a single custom_model_data
	// predicate flags the whole file as belonging to another mode.
	for _, ov := range doc.Overrides {
		if Classify(ov.Predicate).Kind.HasCustomModelData() {
			res.Skip = SkipModeIncompatible
			res.warnf("override %q carries custom_model_data: convert this file with cmd or item mode", ov.Model)
			return res
		}
	}

	var entries []DispatchEntry
	for _, ov := range doc.Overrides {
		c := Classify(ov.Predicate)
		if c.Kind != KindDamageOnly {
			res.warnf("override %q has an unrecognized predicate, skipped", ov.Model)
			continue
		}
		entries = append(entries, DispatchEntry{
			Threshold: c.Damage,
			Model:     NewModelRef(NormalizeModel(ov.Model).Ref),
		})
	}

	if len(entries) == 0 {
		res.Skip = SkipNoMatchingOverrides
		return res
	}

	res.Dispatch = &RangeDispatchDocument{Model: RangeDispatch{
		Type:     "range_dispatch",
		Property: ModeDamage.Property(),
		Fallback: NewModelRef(damageFallbackRef(fallbackRef(doc))),
		Entries:  sortEntries(entries, res),
	}}
	return res
}

// fallbackRef derives the fallback model from the document itself: the
// layer0 texture when present, else the parent. Never taken from an
// override.
func fallbackRef(doc *LegacyDocument) string {
	if layer0 := doc.Textures["layer0"]; layer0 != "" {
		return NormalizeTexture(layer0)
	}
	return NormalizeTexture(doc.Parent)
}

// sortEntries orders entries ascending by threshold (stable, so ties keep
// the original override order) and collapses duplicate thresholds to the
// first occurrence. The game engine requires strictly increasing thresholds.
func sortEntries(entries []DispatchEntry, res *Result) []DispatchEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Threshold < entries[j].Threshold
	})

	out := entries[:0]
	for i, e := range entries {
		if i > 0 && e.Threshold == out[len(out)-1].Threshold {
			res.warnf("duplicate threshold %v: override %q dropped", e.Threshold, e.Model.Model)
			continue
		}
		out = append(out, e)
	}
	return out
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
