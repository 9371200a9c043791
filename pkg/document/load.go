package document

import (
	"encoding/json"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tidwall/jsonc"
)

// Loader reads documents from disk and reports failures through its logger.
// The zero value is not usable; construct with NewLoader.
type Loader struct {
	logger *log.Logger
}

// NewLoader returns a Loader that diagnoses load failures through logger.
// A nil logger falls back to log.Default().
func NewLoader(logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{logger: logger}
}

// Load reads, comment-strips, and parses the JSON document at path.
//
// A missing file is silently absent. A file that exists but cannot be read
// or parsed is diagnosed with the offending path and cause, then treated as
// absent. Load never returns an error: absence is the only failure surface.
func (l *Loader) Load(path string) (Document, bool) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, false
		}
		l.logger.Warnf("cannot access %s: %v", path, err)
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Warnf("cannot read %s: %v", path, err)
		return nil, false
	}

	var doc Document
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		l.logger.Warnf("cannot parse %s: %v", path, err)
		return nil, false
	}
	return doc, true
}

// LoadDefault loads a conventional fallback document. Defaults are optional
// by design, so a missing file is absent with no diagnostic; an existing
// file behaves exactly as Load.
func (l *Loader) LoadDefault(path string) (Document, bool) {
	if _, err := os.Stat(path); err != nil {
		return nil, false
	}
	return l.Load(path)
}

// MergeMany loads every path and folds the results into one document with
// first-listed priority: the fold starts from an empty accumulator and each
// loaded document is merged underneath it, so an earlier path's keys win
// every collision with a later path's.
//
// A path that fails to load is diagnosed by Load and skipped; one bad file
// never aborts the merge of the rest. The result is present iff at least one
// path loaded. An empty path list is absent.
func (l *Loader) MergeMany(paths []string) (Document, bool) {
	acc := Document{}
	loaded := false
	for _, p := range paths {
		doc, ok := l.Load(p)
		if !ok {
			continue
		}
		acc = Merge(acc, doc)
		loaded = true
	}
	if !loaded {
		return nil, false
	}
	return acc, true
}
