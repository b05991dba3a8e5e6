package alias

import (
	"io/fs"
	"os"
	"path"
	"strings"
)

// Prober reports whether a candidate file exists. Implementations must be
// side-effect-free reads as they may be called concurrently.
type Prober interface {
	Exists(name string) bool
}

// ProbeFunc adapts a plain function to a Prober.
type ProbeFunc func(name string) bool

func (f ProbeFunc) Exists(name string) bool {
	return f(name)
}

type osProber struct{}

func (osProber) Exists(name string) bool {
	stat, err := os.Stat(name)
	return err == nil && stat.Mode().IsRegular()
}

type noProbe struct{}

func (noProbe) Exists(string) bool {
	return false
}

var (
	// OSProber checks candidates against the real filesystem.
	OSProber Prober = osProber{}

	// NoProbe never finds a candidate so the first extension is always appended.
	NoProbe Prober = noProbe{}
)

// FSProber checks absolute slash-separated candidates against fsys, which is
// treated as mounted at "/".
func FSProber(fsys fs.FS) Prober {
	return ProbeFunc(func(name string) bool {
		name = strings.TrimPrefix(path.Clean(strings.ReplaceAll(name, "\\", "/")), "/")
		if name == "" || !fs.ValidPath(name) {
			return false
		}
		stat, err := fs.Stat(fsys, name)
		return err == nil && stat.Mode().IsRegular()
	})
}

// withExtension picks the file name for target: itself when it already has
// one of exts, else the first existing target+ext, then target/index+ext,
// falling back to target+exts[0].
func withExtension(target string, exts []string, prober Prober) string {
	for _, ext := range exts {
		if strings.HasSuffix(target, ext) {
			return target
		}
	}

	for _, ext := range exts {
		if candidate := target + ext; prober.Exists(candidate) {
			return candidate
		}
	}

	index := target + separatorOf(target) + "index"
	for _, ext := range exts {
		if candidate := index + ext; prober.Exists(candidate) {
			return candidate
		}
	}

	return target + exts[0]
}

func separatorOf(target string) string {
	if isVolumePath(target) && strings.Contains(target, "\\") {
		return "\\"
	}
	return "/"
}
