package alias

import (
	"errors"
	"fmt"
)

// ErrConfig is wrapped by every configuration error.
var ErrConfig = errors.New("invalid alias config")

func configErrorf(format string, a ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConfig}, a...)...)
}

// Builder collects rules in priority order. Errors are deferred to Build so
// calls can be chained.
type Builder struct {
	config Config
	errs   []error
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Alias adds a literal rule.
func (b *Builder) Alias(find, replacement string) *Builder {
	if find == "" {
		b.errs = append(b.errs, configErrorf("entries[%d].find: empty find", len(b.config.Entries)))
		return b
	}
	b.config.Entries = append(b.config.Entries, Entry{Find: Literal(find), Replacement: replacement})
	return b
}

// Pattern adds a regular expression rule, replacement may use $1.. captures.
func (b *Builder) Pattern(expr, replacement string) *Builder {
	m, err := Pattern(expr)
	if err != nil {
		b.errs = append(b.errs, configErrorf("entries[%d].find: %v", len(b.config.Entries), err))
		return b
	}
	b.config.Entries = append(b.config.Entries, Entry{Find: m, Replacement: replacement})
	return b
}

// Entry adds an already compiled rule.
func (b *Builder) Entry(entry Entry) *Builder {
	if !entry.Find.IsPattern() && entry.Find.literal == "" {
		b.errs = append(b.errs, configErrorf("entries[%d].find: empty find", len(b.config.Entries)))
		return b
	}
	if entry.Find.IsPattern() && entry.Find.pattern == nil {
		b.errs = append(b.errs, configErrorf("entries[%d].find: nil pattern", len(b.config.Entries)))
		return b
	}
	b.config.Entries = append(b.config.Entries, entry)
	return b
}

// Extensions replaces the probed extension list.
func (b *Builder) Extensions(exts ...string) *Builder {
	b.config.Extensions = append([]string(nil), exts...)
	return b
}

// BaseDir anchors relative replacements of entry points, defaults to the working directory.
func (b *Builder) BaseDir(dir string) *Builder {
	b.config.BaseDir = dir
	return b
}

func (b *Builder) Prober(prober Prober) *Builder {
	b.config.Prober = prober
	return b
}

// Len returns the number of rules added so far.
func (b *Builder) Len() int {
	return len(b.config.Entries)
}

// Config returns the collected config and any recorded errors.
func (b *Builder) Config() (Config, error) {
	config := b.config
	config.Entries = append([]Entry(nil), b.config.Entries...)
	config.Extensions = normalizeExtensions(b.config.Extensions)
	if config.BaseDir == "" {
		config.BaseDir = workDir()
	}
	return config, b.err()
}

func (b *Builder) err() error {
	return errors.Join(b.errs...)
}

func (b *Builder) Build() (*Resolver, error) {
	config, err := b.Config()
	if err != nil {
		return nil, err
	}
	return New(config), nil
}
