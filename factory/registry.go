package factory

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/brimdata/stax"
	"github.com/samber/lo"
)

const (
	DefaultAlias = "csv-default-stream-writer"
	IndentAlias  = "csv-indent-stream-writer"
)

var (
	ErrUnknownAlias   = errors.New("unknown writer factory")
	ErrDuplicateAlias = errors.New("writer factory already registered")
)

// Options carries the settings a configuration may give a factory.
type Options struct {
	Prefix    string
	Indent    string
	Normalize bool
}

type Constructor func(Options) (stax.Factory, error)

type entry struct {
	ctor  Constructor
	short string
}

// Registry maps aliases to factory constructors.  Aliases are resolved when
// a configuration is loaded so an unknown name fails early.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds alias to r.  short is a one-line description.
func (r *Registry) Register(alias, short string, ctor Constructor) error {
	if alias == "" {
		return errors.New("writer factory alias is empty")
	}
	if ctor == nil {
		return fmt.Errorf("writer factory %q: nil constructor", alias)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[alias]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateAlias, alias)
	}
	r.entries[alias] = entry{ctor: ctor, short: short}
	return nil
}

func (r *Registry) MustRegister(alias, short string, ctor Constructor) {
	if err := r.Register(alias, short, ctor); err != nil {
		panic(err)
	}
}

// Lookup constructs the factory registered as alias.  The empty alias
// means DefaultAlias.
func (r *Registry) Lookup(alias string, opts Options) (stax.Factory, error) {
	if alias == "" {
		alias = DefaultAlias
	}
	r.mu.RLock()
	e, ok := r.entries[alias]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlias, alias)
	}
	f, err := e.ctor(opts)
	if err != nil {
		return nil, fmt.Errorf("writer factory %q: %w", alias, err)
	}
	return f, nil
}

// Aliases returns the registered aliases in sorted order.
func (r *Registry) Aliases() []string {
	r.mu.RLock()
	aliases := lo.Keys(r.entries)
	r.mu.RUnlock()
	slices.Sort(aliases)
	return aliases
}

// Short returns the description registered with alias.
func (r *Registry) Short(alias string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[alias].short
}

func newDefault(opts Options) (stax.Factory, error) {
	if opts.Prefix != "" || opts.Indent != "" {
		return nil, fmt.Errorf("indentation is not supported (use %s)", IndentAlias)
	}
	return Default{Normalize: opts.Normalize}, nil
}

func newIndent(opts Options) (stax.Factory, error) {
	return Indent(opts), nil
}

// Builtin returns a new registry holding the built-in factories.
func Builtin() *Registry {
	r := NewRegistry()
	const defaultShort = "encoder defaults: no indentation, UTF-8, no namespace repairing"
	r.MustRegister(DefaultAlias, defaultShort, newDefault)
	r.MustRegister("csv-default-writer-factory", defaultShort, newDefault)
	r.MustRegister("default", defaultShort, newDefault)
	const indentShort = "pretty-printed output (two-space indent unless configured)"
	r.MustRegister(IndentAlias, indentShort, newIndent)
	r.MustRegister("indent", indentShort, newIndent)
	return r
}

var builtin = Builtin()

// Lookup resolves alias against the built-in registry.
func Lookup(alias string, opts Options) (stax.Factory, error) {
	return builtin.Lookup(alias, opts)
}

// Aliases lists the built-in aliases.
func Aliases() []string {
	return builtin.Aliases()
}

// Short describes a built-in alias.
func Short(alias string) string {
	return builtin.Short(alias)
}
