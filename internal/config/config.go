// Package config loads the site configuration (autodox.yaml): the builder,
// the source and output roots, and the extension config values.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/autodox/internal/errors"
)

// DefaultFile is the configuration file name looked up by default.
const DefaultFile = "autodox.yaml"

const (
	keyBuilder = "builder"
	keySrcdir  = "srcdir"
	keyOutdir  = "outdir"

	DefaultBuilder = "html"
	DefaultSrcdir  = "."
)

// Config is a loaded site configuration.
type Config struct {
	// Path is the absolute path of the file the configuration came from.
	Path string

	// Builder is the builder name, e.g. "html".
	Builder string

	// SrcDir and OutDir are absolute.
	SrcDir string
	OutDir string

	// Values holds every other top-level key, for extensions to decode.
	Values map[string]yaml.Node

	// Order lists the keys of Values in document order.
	Order []string
}

// Load reads the configuration at path. ${VAR} references are expanded
// from the environment after .env files are loaded. Relative srcdir and
// outdir are resolved against the directory containing path.
func Load(path string) (*Config, error) {
	LoadEnvFiles()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, derrors.WorkspaceError("resolve config path", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, derrors.ConfigNotFound(abs)
		}
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "failed to read config file").
			WithContext("path", abs)
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))), filepath.Dir(abs))
	if err != nil {
		if ae, ok := derrors.As(err); ok {
			return nil, ae.WithContext("path", abs)
		}
		return nil, err
	}
	cfg.Path = abs
	return cfg, nil
}

// Parse decodes configuration data. baseDir anchors relative paths.
func Parse(data []byte, baseDir string) (*Config, error) {
	cfg := &Config{Values: map[string]yaml.Node{}}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "failed to unmarshal config")
	}

	if len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind != yaml.MappingNode {
			return nil, derrors.ValidationFailed("config", fmt.Sprintf("line %d: top level must be a mapping", root.Line))
		}
		for i := 0; i+1 < len(root.Content); i += 2 {
			key, value := root.Content[i], root.Content[i+1]
			if err := cfg.set(key, value); err != nil {
				return nil, err
			}
		}
	}

	applyDefaults(cfg)
	cfg.SrcDir = resolve(baseDir, cfg.SrcDir)
	cfg.OutDir = resolve(baseDir, cfg.OutDir)
	return cfg, nil
}

func (c *Config) set(key, value *yaml.Node) error {
	var target *string
	switch key.Value {
	case keyBuilder:
		target = &c.Builder
	case keySrcdir:
		target = &c.SrcDir
	case keyOutdir:
		target = &c.OutDir
	default:
		if _, dup := c.Values[key.Value]; dup {
			return derrors.ValidationFailed(key.Value, fmt.Sprintf("line %d: duplicate key", key.Line))
		}
		c.Values[key.Value] = *value
		c.Order = append(c.Order, key.Value)
		return nil
	}
	if value.Kind != yaml.ScalarNode {
		return derrors.ValidationFailed(key.Value, fmt.Sprintf("line %d: must be a string", value.Line))
	}
	*target = value.Value
	return nil
}

func applyDefaults(c *Config) {
	if c.Builder == "" {
		c.Builder = DefaultBuilder
	}
	if c.SrcDir == "" {
		c.SrcDir = DefaultSrcdir
	}
	if c.OutDir == "" {
		c.OutDir = filepath.Join("_build", c.Builder)
	}
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// Override replaces builder, srcdir or outdir with non-empty command line
// values. Paths are resolved against the working directory.
func (c *Config) Override(builder, srcdir, outdir string) error {
	if builder != "" {
		c.Builder = builder
	}
	for _, p := range []struct {
		in  string
		out *string
	}{{srcdir, &c.SrcDir}, {outdir, &c.OutDir}} {
		if p.in == "" {
			continue
		}
		abs, err := filepath.Abs(p.in)
		if err != nil {
			return derrors.WorkspaceError("resolve path", err)
		}
		*p.out = abs
	}
	return nil
}

// Marshal renders the configuration back to YAML, extension values in
// their original order.
func (c *Config) Marshal() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	add := func(k string, v *yaml.Node) {
		root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, v)
	}
	add(keyBuilder, &yaml.Node{Kind: yaml.ScalarNode, Value: c.Builder})
	add(keySrcdir, &yaml.Node{Kind: yaml.ScalarNode, Value: c.SrcDir})
	add(keyOutdir, &yaml.Node{Kind: yaml.ScalarNode, Value: c.OutDir})
	for _, k := range c.Order {
		v := c.Values[k]
		add(k, &v)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
