package alias

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, data string) *Resolver {
	t.Helper()
	b, err := ParseConfig([]byte(data))
	require.NoError(t, err)
	return offline(t, b)
}

func findsOf(r *Resolver) []string {
	var finds []string
	for _, e := range r.Entries() {
		finds = append(finds, e.Find.String())
	}
	return finds
}

func TestParseConfig_EmptyConfigs(t *testing.T) {
	for _, data := range []string{"", "null", "{}", "\n", "entries: []", `{"entries": null}`} {
		b, err := ParseConfig([]byte(data))
		require.NoError(t, err, data)
		assert.Equal(t, 0, b.Len(), data)

		r := offline(t, b)
		assert.Equal(t, Result{Outcome: Unresolved}, r.ResolveID("foo", "/src/importer.js"))
		assert.Equal(t, DefaultExtensions, r.Extensions())
	}
}

func TestParseConfig_NullEntriesIsExplicit(t *testing.T) {
	r := parse(t, "entries:\nresolve: [.ts]\n")

	assert.Empty(t, r.Entries())
	assert.Equal(t, []string{".ts"}, r.Extensions())

	_, err := ParseConfig([]byte("entries: null\nfoo: bar\n"))
	assert.ErrorIs(t, err, ErrConfig)
	assert.ErrorContains(t, err, `unknown key "foo" next to "entries"`)
}

func TestParseConfig_DuplicateKeysKeepLastValue(t *testing.T) {
	r := parse(t, `{"foo": "a", "bar": "b", "foo": "c"}`)

	assert.Equal(t, []string{"foo", "bar"}, findsOf(r))
	assert.Equal(t, resolved("c"), r.ResolveID("foo", "/src/importer.js"))

	r = parse(t, `{"entries": {"x": "./one", "x": "./two"}}`)
	assert.Equal(t, []string{"x"}, findsOf(r))
	assert.Equal(t, resolved("/src/two.js"), r.ResolveID("x", "/src/importer.js"))
}

func TestParseConfig_ShorthandKeepsOrder(t *testing.T) {
	r := parse(t, `{"zeta": "z", "alpha": "a", "./local": "global", "mid": "m"}`)

	assert.Equal(t, []string{"zeta", "alpha", "./local", "mid"}, findsOf(r))
	assert.Equal(t, resolved("global"), r.ResolveID("./local", "/src/importer.js"))
}

func TestParseConfig_ShorthandWithTabs(t *testing.T) {
	r := parse(t, "{\n\t\"foo\": \"bar\",\n\t\"resolve\": [\".js\", \".jsx\"]\n}")

	assert.Equal(t, []string{"foo"}, findsOf(r))
	assert.Equal(t, []string{".js", ".jsx"}, r.Extensions())
}

func TestParseConfig_ResolveAsExtensions(t *testing.T) {
	r := parse(t, `{"ember": "./folder/hipster", "resolve": [".js", "jsx"]}`)

	assert.Equal(t, []string{".js", ".jsx"}, r.Extensions())
	assert.Equal(t, []string{"ember"}, findsOf(r))
}

func TestParseConfig_ResolveAsAlias(t *testing.T) {
	r := parse(t, `{"resolve": "i/am/a/file"}`)
	assert.Equal(t, resolved("i/am/a/file"), r.ResolveID("resolve", "/src/import.js"))

	r = parse(t, `{"resolve": "./i/am/a/local/file"}`)
	assert.Equal(t, resolved("/src/files/i/am/a/local/file.js"), r.ResolveID("resolve", "/src/files/index.js"))
}

func TestParseConfig_EntriesAsAlias(t *testing.T) {
	r := parse(t, `{"entries": "./entries"}`)

	assert.Equal(t, resolved("/src/entries.js"), r.ResolveID("entries", "/src/index.js"))
}

func TestParseConfig_Explicit(t *testing.T) {
	r := parse(t, `
entries:
  - find: foo
    replacement: ./bar
  - find:
      pattern: f(o+)bar
    replacement: f$1bar2019
  - find:
      pattern: ^REACT$
      flags: i
    replacement: preact/compat
resolve: [.js, .jsx]
`)

	assert.Equal(t, []string{"foo", "f(o+)bar", "(?i)^REACT$"}, findsOf(r))
	assert.Equal(t, []string{".js", ".jsx"}, r.Extensions())
	assert.Equal(t, resolved("/src/bar.js"), r.ResolveID("foo", "/src/importer.js"))
	assert.Equal(t, resolved("fooooooooobar2019"), r.ResolveID("fooooooooobar", "/src/importer.js"))
	assert.Equal(t, resolved("preact/compat"), r.ResolveID("react", "/src/importer.js"))
}

func TestParseConfig_ExplicitJSON(t *testing.T) {
	r := parse(t, `{
  "resolve": [".ts"],
  "entries": [
    {"find": "@", "replacement": "./src"},
    {"find": {"pattern": "^lodash$"}, "replacement": "lodash-es"}
  ]
}`)

	assert.Equal(t, []string{"@", "^lodash$"}, findsOf(r))
	assert.Equal(t, resolved("/p/src/a.ts"), r.ResolveID("@/a", "/p/main.ts"))
	assert.Equal(t, resolved("lodash-es"), r.ResolveID("lodash", "/p/main.ts"))
}

func TestParseConfig_EntriesMapping(t *testing.T) {
	r := parse(t, `{"entries": {"b": "./b", "a": "./a"}, "resolve": [".mjs"]}`)

	assert.Equal(t, []string{"b", "a"}, findsOf(r))
	assert.Equal(t, resolved("/src/a.mjs"), r.ResolveID("a", "/src/index.mjs"))
}

func TestParseConfig_YAMLAnchors(t *testing.T) {
	r := parse(t, `
shared: &lib ./lib
one: *lib
`)

	assert.Equal(t, resolved("/src/lib.js"), r.ResolveID("one", "/src/index.js"))
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"not a mapping", `["foo"]`, "expected a mapping of aliases, got a list"},
		{"scalar document", `foo`, "expected a mapping of aliases"},
		{"entries item not a mapping", `{"entries": ["foo"]}`, "entries[0]: expected {find, replacement}"},
		{"missing find", `{"entries": [{"replacement": "x"}]}`, "entries[0].find: missing"},
		{"missing replacement", `{"entries": [{"find": "x"}]}`, "entries[0].replacement: missing"},
		{"null replacement", `{"entries": [{"find": "x", "replacement": null}]}`, "entries[0].replacement: replacement must be a string, got null"},
		{"empty find", `{"entries": [{"find": "", "replacement": "x"}]}`, "entries[0].find: empty find"},
		{"list find", `{"entries": [{"find": ["x"], "replacement": "x"}]}`, "entries[0].find: expected a string or {pattern}"},
		{"unknown entry key", `{"entries": [{"find": "x", "replacement": "y", "extra": 1}]}`, `entries[0]: unknown key "extra"`},
		{"bad pattern", `{"entries": [{"find": {"pattern": "f(o"}, "replacement": "x"}]}`, "entries[0].find: error parsing regexp"},
		{"missing pattern", `{"entries": [{"find": {"flags": "i"}, "replacement": "x"}]}`, "entries[0].find.pattern: missing"},
		{"bad flag", `{"entries": [{"find": {"pattern": "x", "flags": "g"}, "replacement": "x"}]}`, `entries[0].find.flags: unsupported flag 'g'`},
		{"unknown key next to entries", `{"entries": [], "foo": "bar"}`, `unknown key "foo" next to "entries"`},
		{"resolve not a list", `{"entries": [], "resolve": ".js"}`, "resolve: expected a list of extensions"},
		{"resolve item not a string", `{"resolve": [[".js"]]}`, "resolve[0]: expected a string, got a list"},
		{"replacement not a string", `{"foo": {"bar": 1}}`, `alias "foo": replacement must be a string, got a mapping`},
		{"number replacement", `{"foo": 123}`, `alias "foo": replacement must be a string, got int "123"`},
		{"bool replacement", `{"foo": true}`, `alias "foo": replacement must be a string, got bool "true"`},
		{"bool entry replacement", `{"entries": [{"find": "a", "replacement": false}]}`, `entries[0].replacement: replacement must be a string, got bool "false"`},
		{"number extension", `{"entries": [], "resolve": [1]}`, `resolve[0]: expected a string, got int "1"`},
		{"bool extension", `{"resolve": [".js", true]}`, `resolve[1]: expected a string, got bool "true"`},
		{"number find", `{"entries": [{"find": 5, "replacement": "x"}]}`, `entries[0].find: expected a string or {pattern}, got int "5"`},
		{"syntax", `{"foo": `, "invalid alias config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseConfig([]byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, b)
			assert.ErrorIs(t, err, ErrConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseConfig_ErrorLine(t *testing.T) {
	_, err := ParseConfig([]byte("entries:\n  - find: a\n    replacement: b\n  - replacement: c\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 4: entries[1].find: missing")
}
