// Package walker traverses an extracted resource pack, converts candidate
// item-model files under the active mode, and copies everything else through
// unchanged. Every input file appears exactly once in the resulting summary;
// nothing is dropped silently.
package walker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/ricechen/packmigrate/internal/logging"
	"github.com/ricechen/packmigrate/internal/pack"
)

// candidatePattern matches item-model files eligible for conversion. Only
// models/item is ever parsed; block models and every other asset pass
// through untouched.
const candidatePattern = "assets/*/models/item/**/*.json"

// modelsItemSegment is the directory prefix replaced by items/ when a
// converted file is relocated.
const modelsItemSegment = "models/item/"

// Walker converts one extracted pack tree. Zero value is not usable; use New.
type Walker struct {
	mode     pack.Mode
	log      *logging.Logger
	reporter Reporter
}

// New builds a walker for the given mode. Logger and reporter may be nil.
func New(mode pack.Mode, log *logging.Logger, reporter Reporter) *Walker {
	if log == nil {
		log = logging.NewNop()
	}
	return &Walker{mode: mode, log: log, reporter: reporter}
}

// Run converts the tree rooted at inputRoot into outputRoot and returns the
// run summary. Only an unreadable input root or an unwritable output root is
// fatal; per-file failures are recorded and the walk continues. The context
// is checked cooperatively between files, never mid-file.
func (w *Walker) Run(ctx context.Context, inputRoot, outputRoot string) (*Summary, error) {
	if _, err := os.Stat(inputRoot); err != nil {
		return nil, fmt.Errorf("input root unreadable: %w", err)
	}
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return nil, fmt.Errorf("output root unwritable: %w", err)
	}

	files, err := w.scan(inputRoot)
	if err != nil {
		return nil, fmt.Errorf("scan input root: %w", err)
	}

	summary := &Summary{}
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		ev := w.processFile(inputRoot, outputRoot, rel)
		summary.record(ev)
		if w.reporter != nil {
			w.reporter.FileDone(ev)
		}
	}

	w.log.Info("pack walk complete",
		zap.Int("converted", summary.Converted),
		zap.Int("copied", summary.Copied),
		zap.Int("skipped", summary.Skipped),
		zap.Int("errored", summary.Errored),
	)
	return summary, nil
}

// scan enumerates every regular file under root as a sorted list of
// slash-separated relative paths. Enumeration fans out via fastwalk but the
// result is sorted so per-file processing stays deterministic regardless of
// platform traversal order.
func (w *Walker) scan(root string) ([]string, error) {
	var (
		mu    sync.Mutex
		files []string
	)
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.log.Warn("scan entry failed", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		mu.Lock()
		files = append(files, filepath.ToSlash(rel))
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// processFile handles one input file end to end and returns its event.
func (w *Walker) processFile(inputRoot, outputRoot, rel string) FileEvent {
	data, err := os.ReadFile(filepath.Join(inputRoot, filepath.FromSlash(rel)))
	if err != nil {
		return FileEvent{Path: rel, Outcome: OutcomeError, Detail: fmt.Sprintf("read: %v", err)}
	}

	if match, _ := doublestar.Match(candidatePattern, rel); !match {
		return w.copyThrough(outputRoot, rel, data, "")
	}

	doc, err := pack.DecodeLegacy(data)
	if err != nil {
		// Malformed JSON under a candidate path is not ours to judge;
		// pass it through unchanged.
		w.log.Warn("malformed JSON under models/item, copied unchanged",
			zap.String("path", rel), zap.Error(err))
		return w.copyThrough(outputRoot, rel, data, "malformed JSON, copied unchanged")
	}
	if len(doc.Overrides) == 0 {
		return w.copyThrough(outputRoot, rel, data, "")
	}

	res := pack.Convert(doc, w.mode)
	for _, warn := range res.Warnings {
		w.log.Warn(warn, zap.String("path", rel))
	}
	if res.Skipped() {
		return FileEvent{Path: rel, Outcome: OutcomeSkipped, Detail: res.Skip.String()}
	}

	if res.Dispatch != nil {
		return w.writeDispatch(outputRoot, rel, res)
	}
	return w.writeStandalone(outputRoot, rel, res)
}

// writeDispatch relocates one merged range-dispatch document from
// models/item/ to items/ at the same relative position.
func (w *Walker) writeDispatch(outputRoot, rel string, res *pack.Result) FileEvent {
	out, err := pack.Encode(res.Dispatch)
	if err != nil {
		return FileEvent{Path: rel, Outcome: OutcomeError, Detail: err.Error()}
	}
	dst := strings.Replace(rel, modelsItemSegment, "items/", 1)
	if err := writeFile(outputRoot, dst, out); err != nil {
		return FileEvent{Path: rel, Outcome: OutcomeError, Detail: err.Error()}
	}
	return FileEvent{Path: rel, Outcome: OutcomeConverted, Detail: "-> " + dst}
}

// writeStandalone writes one document per override into the namespace's
// items/ directory. Later overrides overwrite earlier ones on a path
// collision; the collision itself was already reported by the converter.
func (w *Walker) writeStandalone(outputRoot, rel string, res *pack.Result) FileEvent {
	itemsDir, ok := namespaceItemsDir(rel)
	if !ok {
		return FileEvent{Path: rel, Outcome: OutcomeError, Detail: "cannot locate namespace items directory"}
	}
	for _, sf := range res.Standalone {
		out, err := pack.Encode(sf.Doc)
		if err != nil {
			return FileEvent{Path: rel, Outcome: OutcomeError, Detail: err.Error()}
		}
		if err := writeFile(outputRoot, itemsDir+"/"+sf.Path, out); err != nil {
			return FileEvent{Path: rel, Outcome: OutcomeError, Detail: err.Error()}
		}
	}
	return FileEvent{
		Path:    rel,
		Outcome: OutcomeConverted,
		Detail:  fmt.Sprintf("%d model file(s) under %s/", len(res.Standalone), itemsDir),
	}
}

func (w *Walker) copyThrough(outputRoot, rel string, data []byte, detail string) FileEvent {
	if err := writeFile(outputRoot, rel, data); err != nil {
		return FileEvent{Path: rel, Outcome: OutcomeError, Detail: err.Error()}
	}
	return FileEvent{Path: rel, Outcome: OutcomeCopied, Detail: detail}
}

// namespaceItemsDir maps assets/<ns>/models/item/... to assets/<ns>/items.
func namespaceItemsDir(rel string) (string, bool) {
	idx := strings.Index(rel, "/"+modelsItemSegment)
	if idx < 0 {
		return "", false
	}
	return rel[:idx] + "/items", true
}

func writeFile(root, rel string, data []byte) error {
	dst := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(rel), err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}
