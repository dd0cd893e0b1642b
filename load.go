package excel2erp

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open configuration %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("configuration %q: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a YAML configuration document and validates it to the
// level the engine relies on. Extraction assumes a configuration that passed
// this validation.
func ParseConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, &MalformedConfigError{Field: "document", Err: err}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UnmarshalYAML accepts a replacement chain in either of two shapes: a
// mapping whose entries are pattern: replace pairs (kept in document order),
// or a sequence of {pattern, replace} objects. Both decode to the same
// ordered slice; the chain's order is semantically significant.
func (r *Replacements) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*r = nil
		return nil
	}
	switch value.Kind {
	case yaml.MappingNode:
		out := make(Replacements, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			k, v := value.Content[i], value.Content[i+1]
			if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: replacement entries must be scalar pattern: replace pairs", k.Line)
			}
			out = append(out, Replacement{Pattern: k.Value, Replace: v.Value})
		}
		*r = out
		return nil
	case yaml.SequenceNode:
		out := make(Replacements, 0, len(value.Content))
		for _, item := range value.Content {
			var rep Replacement
			if err := item.Decode(&rep); err != nil {
				return err
			}
			out = append(out, rep)
		}
		*r = out
		return nil
	}
	return fmt.Errorf("line %d: replacements must be a mapping or a sequence", value.Line)
}

func (c *Config) validate() error {
	if len(c.Sources) == 0 {
		return &MalformedConfigError{Field: "sources", Detail: "at least one source is required"}
	}
	seen := make(map[string]bool, len(c.Sources))
	for i := range c.Sources {
		src := &c.Sources[i]
		if src.Name == "" {
			return &MalformedConfigError{Field: fmt.Sprintf("sources[%d].name", i), Detail: "required"}
		}
		if seen[src.Name] {
			return &MalformedConfigError{Field: fmt.Sprintf("source %q", src.Name), Detail: "duplicate source name"}
		}
		seen[src.Name] = true
		if src.SheetIndex < 0 {
			return &MalformedConfigError{Field: fmt.Sprintf("source %q: sheetIndex", src.Name), Detail: "must not be negative"}
		}
		if err := validateProperties(fmt.Sprintf("source %q: header", src.Name), src.Header); err != nil {
			return err
		}
		if len(src.Detail.Properties) > 0 && src.Detail.Locator == "" {
			return &MalformedConfigError{
				Field:  fmt.Sprintf("source %q: detail.locator", src.Name),
				Detail: "required when detail properties are configured",
			}
		}
		if err := validateProperties(fmt.Sprintf("source %q: detail", src.Name), src.Detail.Properties); err != nil {
			return err
		}
	}
	return c.Result.validate()
}

func validateProperties(where string, props []SourceProperty) error {
	names := make(map[string]bool, len(props))
	for _, p := range props {
		if p.Name == "" {
			return &MalformedConfigError{Field: where, Detail: "property name is required"}
		}
		if names[p.Name] {
			return &MalformedConfigError{Field: fmt.Sprintf("%s property %q", where, p.Name), Detail: "duplicate property name"}
		}
		names[p.Name] = true
		if p.Locator == "" {
			return &MalformedConfigError{Field: fmt.Sprintf("%s property %q", where, p.Name), Detail: "locator is required"}
		}
		for _, rep := range p.Replacements {
			if _, err := compilePattern(rep.Pattern); err != nil {
				return &MalformedConfigError{
					Field:  fmt.Sprintf("%s property %q", where, p.Name),
					Detail: fmt.Sprintf("replacement pattern %q", rep.Pattern),
					Err:    err,
				}
			}
		}
	}
	return nil
}

func (rc *ResultConfig) validate() error {
	specs := []struct {
		field string
		spec  FileSpec
	}{
		{"result.header", rc.Header},
		{"result.detail", rc.Detail},
	}
	for _, fs := range specs {
		if fs.spec.Filename == "" {
			return &MalformedConfigError{Field: fs.field + ".filename", Detail: "required"}
		}
		names := make(map[string]bool, len(fs.spec.Properties))
		for _, p := range fs.spec.Properties {
			if p.Name == "" {
				return &MalformedConfigError{Field: fs.field, Detail: "property name is required"}
			}
			if names[p.Name] {
				return &MalformedConfigError{Field: fmt.Sprintf("%s property %q", fs.field, p.Name), Detail: "duplicate property name"}
			}
			names[p.Name] = true
		}
	}
	return nil
}
