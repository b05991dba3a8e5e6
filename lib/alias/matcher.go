package alias

import (
	"regexp"
	"strings"
)

// Separator is the boundary a literal find must be followed by to match a longer specifier.
const Separator = "/"

type matcherKind uint8

const (
	literalMatcher matcherKind = iota
	patternMatcher
)

// Matcher is the compiled form of an entry's find value, either a literal
// path prefix or a regular expression.
type Matcher struct {
	kind    matcherKind
	literal string
	pattern *regexp.Regexp
}

// Literal matches a specifier equal to find, or one that continues with a "/" after it.
func Literal(find string) Matcher {
	return Matcher{kind: literalMatcher, literal: find}
}

// Pattern compiles expr and matches any specifier the expression matches.
func Pattern(expr string) (Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Matcher{}, err
	}
	return Matcher{kind: patternMatcher, pattern: re}, nil
}

// MustPattern is like Pattern but panics if expr does not compile.
func MustPattern(expr string) Matcher {
	return PatternOf(regexp.MustCompile(expr))
}

// PatternOf wraps an already compiled expression.
func PatternOf(re *regexp.Regexp) Matcher {
	return Matcher{kind: patternMatcher, pattern: re}
}

func (m Matcher) IsPattern() bool {
	return m.kind == patternMatcher
}

// String returns the literal or the expression source.
func (m Matcher) String() string {
	if m.kind == patternMatcher {
		if m.pattern == nil {
			return ""
		}
		return m.pattern.String()
	}
	return m.literal
}

// Regexp returns the compiled expression of a pattern matcher, nil for literals.
func (m Matcher) Regexp() *regexp.Regexp {
	return m.pattern
}

// replace returns the rewritten specifier, subPath reports whether a literal
// matched a strict prefix of it rather than all of it.
func (m Matcher) replace(specifier, replacement string) (raw string, subPath bool, ok bool) {
	if m.kind == patternMatcher {
		loc := m.pattern.FindStringSubmatchIndex(specifier)
		if loc == nil {
			return "", false, false
		}
		var b strings.Builder
		b.WriteString(specifier[:loc[0]])
		expand(&b, replacement, specifier, loc)
		b.WriteString(specifier[loc[1]:])
		return b.String(), false, true
	}

	if specifier == m.literal {
		return replacement, false, true
	}
	if m.literal == "" || !strings.HasPrefix(specifier, m.literal) {
		return "", false, false
	}
	// "~/" style finds carry their own boundary
	if !strings.HasSuffix(m.literal, Separator) && !strings.HasPrefix(specifier[len(m.literal):], Separator) {
		return "", false, false
	}
	return replacement + specifier[len(m.literal):], true, true
}

// expand writes template into b substituting $n, $nn, $& and $$ against the
// match described by loc. Groups that did not participate expand to "".
func expand(b *strings.Builder, template, src string, loc []int) {
	groups := len(loc)/2 - 1
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '$' || i+1 == len(template) {
			b.WriteByte(c)
			continue
		}
		next := template[i+1]
		switch {
		case next == '$':
			b.WriteByte('$')
			i++
		case next == '&':
			b.WriteString(src[loc[0]:loc[1]])
			i++
		case isDigit(next):
			n := int(next - '0')
			width := 1
			if i+2 < len(template) && isDigit(template[i+2]) {
				if nn := n*10 + int(template[i+2]-'0'); nn >= 1 && nn <= groups {
					n, width = nn, 2
				}
			}
			if n < 1 || n > groups {
				b.WriteByte(c)
				continue
			}
			if start, end := loc[2*n], loc[2*n+1]; start >= 0 {
				b.WriteString(src[start:end])
			}
			i += width
		default:
			b.WriteByte(c)
		}
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
