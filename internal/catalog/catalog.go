package catalog

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed rules.toml
var defaultData []byte

var (
	// ErrInvalidCatalog reports catalog data that fails validation.
	ErrInvalidCatalog = errors.New("invalid catalog")

	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Catalog holds the immutable rule and fix tables. Accessors return copies,
// so a Catalog can be shared by concurrent analyses.
type Catalog struct {
	rules   []Rule
	fixes   []Fix
	ruleIdx map[string]int
	fixIdx  map[string]int
	version string
}

type catalogFile struct {
	Rules []Rule `toml:"rule"`
	Fixes []Fix  `toml:"fix"`
}

// Default returns the built-in catalog, decoded once per process.
func Default() *Catalog {
	defaultOnce.Do(func() {
		cat, err := Parse(defaultData)
		if err != nil {
			panic(fmt.Errorf("built-in catalog: %w", err))
		}
		defaultCat = cat
	})
	return defaultCat
}

// Parse decodes and validates catalog TOML.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidCatalog, undecoded[0].String())
	}
	return New(file.Rules, file.Fixes, data)
}

// New builds a catalog from rule and fix tables. seed feeds the version hash.
func New(rules []Rule, fixes []Fix, seed []byte) (*Catalog, error) {
	c := &Catalog{
		rules:   rules,
		fixes:   fixes,
		ruleIdx: make(map[string]int, len(rules)),
		fixIdx:  make(map[string]int, len(fixes)),
	}
	for i, f := range fixes {
		if f.ID == "" {
			return nil, fmt.Errorf("%w: fix #%d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := c.fixIdx[f.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate fix %q", ErrInvalidCatalog, f.ID)
		}
		switch f.Kind {
		case KindCodemod, KindAssisted, KindManual:
		default:
			return nil, fmt.Errorf("%w: fix %q has kind %q", ErrInvalidCatalog, f.ID, f.Kind)
		}
		if f.Safety.Rank() > SafetyRisky.Rank() {
			return nil, fmt.Errorf("%w: fix %q has safety %q", ErrInvalidCatalog, f.ID, f.Safety)
		}
		c.fixIdx[f.ID] = i
	}
	for i, r := range rules {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: rule #%d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := c.ruleIdx[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate rule %q", ErrInvalidCatalog, r.ID)
		}
		if !r.Severity.Valid() || !r.DefaultLevel.Valid() {
			return nil, fmt.Errorf("%w: rule %q has severity %q and level %q", ErrInvalidCatalog, r.ID, r.Severity, r.DefaultLevel)
		}
		for _, fid := range r.FixIDs {
			if _, ok := c.fixIdx[fid]; !ok {
				return nil, fmt.Errorf("%w: rule %q references unknown fix %q", ErrInvalidCatalog, r.ID, fid)
			}
		}
		c.ruleIdx[r.ID] = i
	}
	for _, r := range rules {
		if r.AliasOf != "" {
			if _, ok := c.ruleIdx[r.AliasOf]; !ok {
				return nil, fmt.Errorf("%w: rule %q aliases unknown rule %q", ErrInvalidCatalog, r.ID, r.AliasOf)
			}
		}
	}
	sum := sha256.Sum256(seed)
	c.version = hex.EncodeToString(sum[:6])
	return c, nil
}

// Version identifies the catalog contents; it changes whenever the data does.
func (c *Catalog) Version() string { return c.version }

// Rules returns every rule in catalog order.
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = r
		out[i].FixIDs = slices.Clone(r.FixIDs)
	}
	return out
}

// Fixes returns every fix in catalog order.
func (c *Catalog) Fixes() []Fix { return slices.Clone(c.fixes) }

func (c *Catalog) Rule(id string) (Rule, bool) {
	i, ok := c.ruleIdx[id]
	if !ok {
		return Rule{}, false
	}
	r := c.rules[i]
	r.FixIDs = slices.Clone(r.FixIDs)
	return r, true
}

func (c *Catalog) Fix(id string) (Fix, bool) {
	i, ok := c.fixIdx[id]
	if !ok {
		return Fix{}, false
	}
	return c.fixes[i], true
}

// FixOrder returns the catalog position of a fix, or -1.
func (c *Catalog) FixOrder(id string) int {
	if i, ok := c.fixIdx[id]; ok {
		return i
	}
	return -1
}

// RuleIDs returns all rule ids in catalog order.
func (c *Catalog) RuleIDs() []string {
	out := make([]string, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.ID
	}
	return out
}

// Categories returns the distinct rule categories in first-seen order.
func (c *Catalog) Categories() []string {
	var out []string
	for _, r := range c.rules {
		if !slices.Contains(out, r.Category) {
			out = append(out, r.Category)
		}
	}
	return out
}
