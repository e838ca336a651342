package walker_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricechen/packmigrate/internal/pack"
	"github.com/ricechen/packmigrate/internal/walker"
)

// recordingReporter captures events for assertions.
type recordingReporter struct {
	events []walker.FileEvent
}

func (r *recordingReporter) FileDone(ev walker.FileEvent) {
	r.events = append(r.events, ev)
}

func writeInput(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func readOutput(t *testing.T, root, rel string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return data
}

const catHatLegacy = `{
	"parent": "item/handheld",
	"textures": {"layer0": "item/stick"},
	"overrides": [
		{"predicate": {"custom_model_data": 19002}, "model": "custom_items/cat_hat/cat_hat_black"}
	]
}`

// TestWalkerConvertsAndRelocates tests the full cmd-mode pass: candidate
// files relocate from models/item to items, everything else passes through
// byte-for-byte at its original path.
func TestWalkerConvertsAndRelocates(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	texture := []byte{0x89, 'P', 'N', 'G', 0x00, 0x01}

	writeInput(t, in, "pack.mcmeta", []byte(`{"pack":{"pack_format":46}}`))
	writeInput(t, in, "assets/minecraft/models/item/cat_hat.json", []byte(catHatLegacy))
	writeInput(t, in, "assets/minecraft/models/item/plain.json", []byte(`{"parent":"item/generated"}`))
	writeInput(t, in, "assets/minecraft/textures/item/cat_hat.png", texture)

	rep := &recordingReporter{}
	w := walker.New(pack.ModeCustomModelData, nil, rep)
	summary, err := w.Run(context.Background(), in, out)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Converted)
	assert.Equal(t, 3, summary.Copied)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Errored)
	assert.Equal(t, 4, summary.Total())
	assert.Len(t, rep.events, 4)

	// Converted file lives under items/, not models/item/.
	converted := readOutput(t, out, "assets/minecraft/items/cat_hat.json")
	assert.JSONEq(t, `{
		"model": {
			"type": "range_dispatch",
			"property": "custom_model_data",
			"fallback": {"type": "model", "model": "item/stick"},
			"entries": [
				{"threshold": 19002, "model": {"type": "model", "model": "custom_items/cat_hat/cat_hat_black"}}
			]
		}
	}`, string(converted))
	_, err = os.Stat(filepath.Join(out, "assets/minecraft/models/item/cat_hat.json"))
	assert.True(t, os.IsNotExist(err), "converted source must not remain under models/item")

	// Pass-through files are byte-identical at their original paths.
	assert.Equal(t, texture, readOutput(t, out, "assets/minecraft/textures/item/cat_hat.png"))
	assert.Equal(t, []byte(`{"pack":{"pack_format":46}}`), readOutput(t, out, "pack.mcmeta"))
	assert.Equal(t, []byte(`{"parent":"item/generated"}`), readOutput(t, out, "assets/minecraft/models/item/plain.json"))
}

// TestWalkerItemModelMode tests that item-model mode fans one source file
// out into per-override documents under the namespace items directory.
func TestWalkerItemModelMode(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeInput(t, in, "assets/minecraft/models/item/cat_hat.json", []byte(catHatLegacy))

	w := walker.New(pack.ModeItemModel, nil, nil)
	summary, err := w.Run(context.Background(), in, out)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Converted)
	standalone := readOutput(t, out, "assets/minecraft/items/custom_items/cat_hat/cat_hat_black.json")
	assert.JSONEq(t, `{"model": {"type": "model", "model": "custom_items/cat_hat/cat_hat_black"}}`,
		string(standalone))
}

// TestWalkerModeIsolation tests that damage mode skips a pure-CMD file
// entirely: no output file, a skipped event, nothing partial.
func TestWalkerModeIsolation(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeInput(t, in, "assets/minecraft/models/item/cat_hat.json", []byte(catHatLegacy))

	rep := &recordingReporter{}
	w := walker.New(pack.ModeDamage, nil, rep)
	summary, err := w.Run(context.Background(), in, out)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Converted)
	require.Len(t, rep.events, 1)
	assert.Equal(t, walker.OutcomeSkipped, rep.events[0].Outcome)

	_, err = os.Stat(filepath.Join(out, "assets/minecraft/items/cat_hat.json"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(out, "assets/minecraft/models/item/cat_hat.json"))
	assert.True(t, os.IsNotExist(err))
}

// TestWalkerMalformedJSONCopied tests that invalid JSON under a candidate
// path passes through unchanged with a warning detail.
func TestWalkerMalformedJSONCopied(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	broken := []byte(`{"overrides": [`)
	writeInput(t, in, "assets/minecraft/models/item/broken.json", broken)

	rep := &recordingReporter{}
	w := walker.New(pack.ModeCustomModelData, nil, rep)
	summary, err := w.Run(context.Background(), in, out)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Copied)
	require.Len(t, rep.events, 1)
	assert.Equal(t, walker.OutcomeCopied, rep.events[0].Outcome)
	assert.Contains(t, rep.events[0].Detail, "malformed JSON")
	assert.Equal(t, broken, readOutput(t, out, "assets/minecraft/models/item/broken.json"))
}

// TestWalkerNestedCandidates tests that files in subdirectories of
// models/item convert and relocate with their subpath intact.
func TestWalkerNestedCandidates(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeInput(t, in, "assets/mypack/models/item/hats/cat_hat.json", []byte(catHatLegacy))

	w := walker.New(pack.ModeCustomModelData, nil, nil)
	summary, err := w.Run(context.Background(), in, out)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Converted)
	_, err = os.Stat(filepath.Join(out, "assets/mypack/items/hats/cat_hat.json"))
	assert.NoError(t, err)
}

// TestWalkerCancellation tests that the walk stops between files once the
// context is cancelled.
func TestWalkerCancellation(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeInput(t, in, "a.txt", []byte("a"))
	writeInput(t, in, "b.txt", []byte("b"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := walker.New(pack.ModeCustomModelData, nil, nil)
	summary, err := w.Run(ctx, in, out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, summary.Total())
}

// TestWalkerInputRootUnreadable tests the one fatal input error.
func TestWalkerInputRootUnreadable(t *testing.T) {
	w := walker.New(pack.ModeCustomModelData, nil, nil)
	_, err := w.Run(context.Background(), filepath.Join(t.TempDir(), "missing"), t.TempDir())
	assert.Error(t, err)
}
