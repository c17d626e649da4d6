package autodox

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TagFile links a project against another project's Doxygen tag file.
// Both paths are relative to the site source root.
type TagFile struct {
	Path     string
	SitePath string
}

// UnmarshalYAML decodes a [tagfile, sitepath] pair.
func (t *TagFile) UnmarshalYAML(node *yaml.Node) error {
	var pair []string
	if node.Kind != yaml.SequenceNode || node.Decode(&pair) != nil || len(pair) != 2 {
		return fmt.Errorf("line %d: tagfiles entries must be [tagfile, sitepath] pairs", node.Line)
	}
	t.Path, t.SitePath = pair[0], pair[1]
	return nil
}

// MarshalYAML encodes the pair form.
func (t TagFile) MarshalYAML() (any, error) {
	return []string{t.Path, t.SitePath}, nil
}

// Settings configures one project. Empty fields fall back to defaults when
// paths are resolved.
type Settings struct {
	SrcDir     string    `yaml:"srcdir,omitempty"`
	OutDir     string    `yaml:"outdir,omitempty"`
	Doxyfile   string    `yaml:"doxyfile,omitempty"`
	DoxygenExe string    `yaml:"doxygen_exe,omitempty"`
	Conforming bool      `yaml:"conforming,omitempty"`
	TagFiles   []TagFile `yaml:"tagfiles,omitempty"`
}

// UnmarshalYAML accepts either a mapping or a scalar, the latter being
// shorthand for {srcdir: <scalar>}.
func (s *Settings) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = Settings{SrcDir: node.Value}
		return nil
	case yaml.MappingNode:
		type plain Settings
		var p plain
		if err := decodeStrict(node, &p); err != nil {
			return err
		}
		*s = Settings(p)
		return nil
	default:
		return fmt.Errorf("line %d: project settings must be a string or a mapping", node.Line)
	}
}

var settingsKeys = map[string]bool{
	"srcdir": true, "outdir": true, "doxyfile": true,
	"doxygen_exe": true, "conforming": true, "tagfiles": true,
}

func decodeStrict(node *yaml.Node, out any) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !settingsKeys[key.Value] {
			return fmt.Errorf("line %d: unknown project setting %q", key.Line, key.Value)
		}
	}
	return node.Decode(out)
}

// Project is a named entry of autodox_projects.
type Project struct {
	Name     string
	Settings Settings
}

// ProjectMap keeps projects in the order they appear in the configuration.
type ProjectMap []Project

// UnmarshalYAML decodes a mapping of project name to settings.
func (m *ProjectMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*m = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: autodox_projects must be a mapping", node.Line)
	}

	seen := make(map[string]bool, len(node.Content)/2)
	out := make(ProjectMap, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if name == "" {
			return fmt.Errorf("line %d: project name is required", node.Content[i].Line)
		}
		if seen[name] {
			return fmt.Errorf("line %d: duplicate project %q", node.Content[i].Line, name)
		}
		seen[name] = true

		var s Settings
		if err := node.Content[i+1].Decode(&s); err != nil {
			return fmt.Errorf("project %s: %w", name, err)
		}
		out = append(out, Project{Name: name, Settings: s})
	}
	*m = out
	return nil
}

// Names lists project names in order.
func (m ProjectMap) Names() []string {
	names := make([]string, len(m))
	for i, p := range m {
		names[i] = p.Name
	}
	return names
}
