package lib

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/natrim/esalias/lib/alias"
)

// PackageJsonKey is the package.json key holding the alias config.
const PackageJsonKey = "alias"

// PackageJson is a decoded package.json kept as a node tree, so mapping order survives.
type PackageJson struct {
	root *yaml.Node
}

func ParsePackageJson(packagePath string) (*PackageJson, error) {
	if !FileExists(packagePath) {
		return nil, errors.New("no " + packagePath + " found")
	}

	jsonFile, err := os.ReadFile(packagePath)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err = yaml.Unmarshal(jsonFile, &doc); err != nil {
		return nil, errors.Join(errors.New("cannot parse "+packagePath), err)
	}

	return &PackageJson{root: &doc}, nil
}

// Get returns the value of a top level key, nil when there is none.
func (p *PackageJson) Get(key string) *yaml.Node {
	node := p.root
	if node != nil && node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// Config is an alias setup together with where it was read from.
type Config struct {
	// Source is the file the aliases came from, empty when none was found.
	Source string
	Alias  alias.Config
}

// LoadAliasConfig reads a JSON or YAML alias config file.
func LoadAliasConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Join(errors.New("cannot read alias config "+configPath), err)
	}
	b, err := alias.ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return newConfig(configPath, b)
}

// LoadConfig reads configPath when given, else the "alias" key of packagePath.
// A missing package.json or key gives an empty config.
func LoadConfig(configPath, packagePath string) (*Config, error) {
	if configPath != "" {
		return LoadAliasConfig(configPath)
	}

	if packagePath == "" || !FileExists(packagePath) {
		return newConfig("", alias.NewBuilder())
	}
	packageJson, err := ParsePackageJson(packagePath)
	if err != nil {
		return nil, err
	}
	node := packageJson.Get(PackageJsonKey)
	if node == nil {
		return newConfig("", alias.NewBuilder())
	}
	b, err := alias.FromNode(node)
	if err != nil {
		return nil, fmt.Errorf("%s %q key: %w", packagePath, PackageJsonKey, err)
	}
	return newConfig(packagePath, b)
}

func newConfig(source string, b *alias.Builder) (*Config, error) {
	config, err := b.Config()
	if err != nil {
		return nil, err
	}
	return &Config{Source: source, Alias: config}, nil
}

// OverrideAliases replaces the configured entries with flags, in flag order.
func (c *Config) OverrideAliases(flags AliasFlags) error {
	b := alias.NewBuilder()
	for _, f := range flags {
		b.Alias(f.Find, f.Replacement)
	}
	config, err := b.Config()
	if err != nil {
		return err
	}
	c.Alias.Entries = config.Entries
	return nil
}

// OverrideExtensions replaces the probed extensions.
func (c *Config) OverrideExtensions(exts []string) {
	c.Alias.Extensions = append([]string(nil), exts...)
}

// Resolver builds the resolver, a nil prober keeps the filesystem prober.
func (c *Config) Resolver(prober alias.Prober) *alias.Resolver {
	config := c.Alias
	if prober != nil {
		config.Prober = prober
	}
	return alias.New(config)
}
