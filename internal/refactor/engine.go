package refactor

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"effectlint/internal/ast"
	"effectlint/internal/parser"
	"effectlint/internal/rules"
	"effectlint/internal/source"
)

// maxPasses bounds how often one transform is re-run on its own output to
// reach a fixed point when matches nest.
const maxPasses = 8

var errUnparsable = errors.New("source does not parse")

// Transform rewrites the matches of its rules for one fix id.
type Transform struct {
	FixID   string
	Rules   []string
	Rewrite func(u *Unit, m Match) []Edit
}

// FileInput is one in-memory source file.
type FileInput struct {
	Filename string `json:"filename"`
	Source   string `json:"source"`
}

// FileChange is the before/after text of one changed file.
type FileChange struct {
	Filename string `json:"filename"`
	Before   string `json:"before"`
	After    string `json:"after"`
}

// FileFailure names a file that was left unchanged because it did not parse.
type FileFailure struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// Request lists fix ids to apply, in order, to every file.
type Request struct {
	FixIDs []string
	Files  []FileInput
	// Preview is accepted for symmetry with callers; the engine only previews.
	Preview bool
}

// Result carries proposed changes. Applied is always false: accepting a
// change happens outside the engine.
type Result struct {
	Applied    bool          `json:"applied"`
	Changes    []FileChange  `json:"changes"`
	Failed     []FileFailure `json:"failed,omitempty"`
	UnknownFix []string      `json:"unknownFixIds,omitempty"`
}

// Engine holds the transforms keyed by fix id.
type Engine struct {
	transforms map[string]Transform
	order      []string
	rules      *rules.Registry
}

// NewEngine builds an engine over the given transforms.
func NewEngine(reg *rules.Registry, transforms ...Transform) (*Engine, error) {
	e := &Engine{transforms: make(map[string]Transform, len(transforms)), rules: reg}
	for _, tr := range transforms {
		if tr.FixID == "" || tr.Rewrite == nil || len(tr.Rules) == 0 {
			return nil, fmt.Errorf("refactor: incomplete transform %q", tr.FixID)
		}
		if _, dup := e.transforms[tr.FixID]; dup {
			return nil, fmt.Errorf("refactor: duplicate transform %q", tr.FixID)
		}
		e.transforms[tr.FixID] = tr
		e.order = append(e.order, tr.FixID)
	}
	return e, nil
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the engine with every built-in transform.
func Default() *Engine {
	defaultOnce.Do(func() {
		e, err := NewEngine(rules.Default(), builtin()...)
		if err != nil {
			panic(err)
		}
		defaultEngine = e
	})
	return defaultEngine
}

// Has reports whether a transform exists for fixID.
func (e *Engine) Has(fixID string) bool {
	_, ok := e.transforms[fixID]
	return ok
}

// FixIDs returns the fix ids with a transform, sorted.
func (e *Engine) FixIDs() []string {
	ids := slices.Clone(e.order)
	sort.Strings(ids)
	return ids
}

// Apply runs the fix ids over every file and reports the files whose text
// changed. A file that does not parse is left out of Changes.
func (e *Engine) Apply(req Request) Result {
	res := Result{Changes: make([]FileChange, 0)}
	for _, id := range req.FixIDs {
		if !e.Has(id) && !slices.Contains(res.UnknownFix, id) {
			res.UnknownFix = append(res.UnknownFix, id)
		}
	}
	for _, f := range req.Files {
		if _, err := parse(f.Filename, []byte(f.Source)); err != nil {
			res.Failed = append(res.Failed, FileFailure{Filename: f.Filename, Reason: err.Error()})
			continue
		}
		after := e.ApplyFile(f.Filename, f.Source, req.FixIDs)
		if after != f.Source {
			res.Changes = append(res.Changes, FileChange{Filename: f.Filename, Before: f.Source, After: after})
		}
	}
	return res
}

// ApplyFile threads src through the transforms of fixIDs in order. Unknown
// ids and transforms without matches leave the text as it is.
func (e *Engine) ApplyFile(filename, src string, fixIDs []string) string {
	cur := []byte(src)
	for _, id := range fixIDs {
		tr, ok := e.transforms[id]
		if !ok {
			continue
		}
		for range maxPasses {
			next, changed := e.step(tr, filename, cur)
			if !changed {
				break
			}
			cur = next
		}
	}
	return string(cur)
}

// step applies one round of tr. Edit groups that overlap an accepted group
// are dropped for this round. An output that fails to parse or is
// structurally equal to the input counts as no change.
func (e *Engine) step(tr Transform, filename string, content []byte) ([]byte, bool) {
	tree, err := parse(filename, content)
	if err != nil {
		return content, false
	}
	u := newUnit(tree, filename, e.rules)

	var accepted []Edit
	for _, m := range u.matches(tr.Rules) {
		var group []Edit
		for _, ed := range tr.Rewrite(u, m) {
			if !ed.noop() {
				group = append(group, ed)
			}
		}
		if len(group) == 0 || selfConflicting(group) || conflictsWithExisting(accepted, group) {
			continue
		}
		accepted = append(accepted, group...)
	}
	if len(accepted) == 0 {
		return content, false
	}

	// spans index the normalized text, so a CRLF or BOM input comes back
	// with LF endings and no BOM
	out, ok := applyEdits(tree.File.Content, accepted)
	if !ok {
		return content, false
	}
	next, err := parse(filename, out)
	if err != nil || ast.Equal(tree, next) {
		return content, false
	}
	return out, true
}

func parse(filename string, content []byte) (*ast.Tree, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(filename, content)
	res := parser.ParseFile(fs.Get(id), parser.Options{})
	if !res.OK() {
		return nil, parseError(res)
	}
	return res.Tree, nil
}

func parseError(res parser.Result) error {
	if res.Bag != nil {
		if d, ok := res.Bag.First(); ok {
			return d
		}
	}
	return errUnparsable
}
