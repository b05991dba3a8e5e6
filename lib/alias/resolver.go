// Package alias rewrites import specifiers according to an ordered list of
// alias rules, the way bundler alias plugins do.
//
// A Resolver is built once, usually through a Builder or ParseConfig, and
// never changes afterwards; it is safe for concurrent use.
package alias

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultExtensions is used when a config names none.
var DefaultExtensions = []string{".js"}

// Outcome tells the host what to do with a specifier.
type Outcome uint8

const (
	// Unresolved means no rule matched, the host should resolve the specifier itself.
	Unresolved Outcome = iota
	// Resolved means Result.Path replaces the specifier.
	Resolved
	// Declined means a rule matched but the resolver refuses to rewrite it.
	Declined
)

func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case Declined:
		return "declined"
	default:
		return "unresolved"
	}
}

// Entry is a single alias rule.
type Entry struct {
	Find        Matcher
	Replacement string
}

// Config is the normalized resolver configuration.
type Config struct {
	Entries    []Entry
	Extensions []string
	// BaseDir anchors relative replacements of specifiers that have no importer.
	BaseDir string
	// Prober checks extension candidates, nil means OSProber.
	Prober Prober
}

// Request is a single resolution. An empty Importer means the specifier is an entry point.
type Request struct {
	Specifier string
	Importer  string
	// BaseDir overrides Config.BaseDir for this request when set.
	BaseDir string
}

type Result struct {
	Outcome Outcome
	Path    string
}

// Hook is the resolveId contract a bundler integration calls into.
type Hook interface {
	ResolveID(specifier, importer string) Result
}

type Resolver struct {
	entries    []Entry
	extensions []string
	baseDir    string
	prober     Prober
}

var _ Hook = (*Resolver)(nil)

// New builds a resolver from an already normalized config. The slices are
// copied, an empty BaseDir is the working directory.
func New(config Config) *Resolver {
	r := &Resolver{
		entries:    append([]Entry(nil), config.Entries...),
		extensions: normalizeExtensions(config.Extensions),
		baseDir:    config.BaseDir,
		prober:     config.Prober,
	}
	if r.prober == nil {
		r.prober = OSProber
	}
	if r.baseDir == "" {
		r.baseDir = workDir()
	}
	return r
}

// Entries returns a copy of the rules in match order.
func (r *Resolver) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Extensions returns a copy of the probed extensions in order.
func (r *Resolver) Extensions() []string {
	return append([]string(nil), r.extensions...)
}

func (r *Resolver) ResolveID(specifier, importer string) Result {
	return r.Resolve(Request{Specifier: specifier, Importer: importer})
}

// Resolve applies the first matching rule to req.Specifier.
func (r *Resolver) Resolve(req Request) Result {
	for _, entry := range r.entries {
		raw, subPath, ok := entry.Find.replace(req.Specifier, entry.Replacement)
		if !ok {
			continue
		}

		// an entry module reaching into its own alias would rewrite itself
		if req.Importer == "" && subPath {
			return Result{Outcome: Declined}
		}

		return Result{Outcome: Resolved, Path: r.locate(raw, req)}
	}

	return Result{Outcome: Unresolved}
}

func (r *Resolver) locate(raw string, req Request) string {
	switch {
	case isRelative(raw):
		dir := req.BaseDir
		if req.Importer != "" {
			dir = filepath.Dir(req.Importer)
		} else if dir == "" {
			dir = r.baseDir
		}
		return withExtension(filepath.Join(dir, raw), r.extensions, r.prober)
	case isVolumePath(raw):
		return withExtension(raw, r.extensions, r.prober)
	case strings.HasPrefix(raw, "/"):
		return withExtension(filepath.Clean(raw), r.extensions, r.prober)
	default:
		return raw
	}
}

func workDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return string(filepath.Separator)
}

func isRelative(id string) bool {
	return id == "." || id == ".." || strings.HasPrefix(id, "./") || strings.HasPrefix(id, "../")
}

var volumeReg = regexp.MustCompile(`^[A-Za-z]:[\\/]`)

func isVolumePath(id string) bool {
	return volumeReg.MatchString(id)
}

func normalizeExtensions(exts []string) []string {
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext = strings.TrimSpace(ext); ext != "" {
			normalized = append(normalized, "."+strings.TrimPrefix(ext, "."))
		}
	}
	if len(normalized) == 0 {
		return append(normalized, DefaultExtensions...)
	}
	return normalized
}
