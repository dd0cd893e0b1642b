package excel2erp

import "strings"

// Record is one extracted entity: the header field map or a single detail
// row. Values are always canonical strings (see Sheet.Cell).
type Record map[string]string

func (r Record) clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// PropertyType tags how a caller should collect and normalize user input for
// a result property. It is a UI hint only: the engine never branches on it,
// and unrecognized values behave as text.
type PropertyType string

const (
	PropertyText PropertyType = "text"
	PropertyDate PropertyType = "date"
)

// IsDate reports whether user input for the property is a calendar date that
// callers must reduce to digits (NormalizeDate) before conversion.
func (t PropertyType) IsDate() bool {
	return strings.EqualFold(string(t), string(PropertyDate))
}

// Input returns the HTML input type attribute for the property: the tag
// itself when set, "text" otherwise.
func (t PropertyType) Input() string {
	if t == "" {
		return string(PropertyText)
	}
	return string(t)
}

// Replacement is one ordered rewrite step: a regular expression pattern and
// its substitution text. Substitution may reference capture groups using
// $1 or ${name}.
type Replacement struct {
	Pattern string `yaml:"pattern"`
	Replace string `yaml:"replace"`
}

// Replacements is an ordered rewrite chain. Order is part of the contract:
// each step's output feeds the next step's input.
type Replacements []Replacement

// SourceProperty maps one output field to its location in a workbook.
// Locator is a cell address ("B3") for header properties and a column title
// for detail properties.
type SourceProperty struct {
	Name         string       `yaml:"name"`
	Locator      string       `yaml:"locator"`
	Replacements Replacements `yaml:"replacements"`
}

// DetailConfig describes a detail table: the top-left cell of its title row,
// the column mappings, and an optional sentinel value that ends row
// scanning.
type DetailConfig struct {
	Locator    string           `yaml:"locator"`
	EndValue   string           `yaml:"endValue"`
	Properties []SourceProperty `yaml:"properties"`
}

// Source is one vendor's extraction profile: where header fields and the
// detail table live inside that vendor's workbook layout.
type Source struct {
	Name          string            `yaml:"name"`
	Description   string            `yaml:"description"`
	Logo          string            `yaml:"logo"` // opaque asset reference, UI only
	SheetIndex    int               `yaml:"sheetIndex"`
	Header        []SourceProperty  `yaml:"header"`
	Detail        DetailConfig      `yaml:"detail"`
	DefaultValues map[string]string `yaml:"defaultValues"`
}

// ResultProperty is one output column. DefaultValue may itself contain
// ${...} placeholders, expanded at generation time.
type ResultProperty struct {
	Name         string       `yaml:"name"`
	Type         PropertyType `yaml:"type"`
	Prompt       string       `yaml:"prompt"`
	DefaultValue string       `yaml:"defaultValue"`
}

// Label returns the user-facing caption for the property: Prompt when set,
// the property name otherwise.
func (p ResultProperty) Label() string {
	if p.Prompt != "" {
		return p.Prompt
	}
	return p.Name
}

// FileSpec describes one output file: its name (may contain placeholders),
// optional literal prolog/epilog lines, and the ordered properties that
// define column order.
type FileSpec struct {
	Filename   string           `yaml:"filename"`
	Prolog     string           `yaml:"prolog"`
	Epilog     string           `yaml:"epilog"`
	Properties []ResultProperty `yaml:"properties"`
}

// DefaultValues derives the name→default mapping for properties that declare
// a non-empty default.
func (s FileSpec) DefaultValues() map[string]string {
	defaults := make(map[string]string, len(s.Properties))
	for _, p := range s.Properties {
		if p.DefaultValue != "" {
			defaults[p.Name] = p.DefaultValue
		}
	}
	return defaults
}

// ResultConfig describes the generated output: the shared field separator,
// the archive base name template, and the header and detail file specs.
type ResultConfig struct {
	Separator string   `yaml:"separator"`
	BaseName  string   `yaml:"baseName"`
	Header    FileSpec `yaml:"header"`
	Detail    FileSpec `yaml:"detail"`
}

// Config is the aggregate root: branding, free-form UI parameters, the
// vendor sources, and the result layout. Configurations are immutable once
// loaded; the engine only ever reads them.
type Config struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Logo        string            `yaml:"logo"`
	Parameters  map[string]string `yaml:"parameters"`
	Sources     []Source          `yaml:"sources"`
	Result      ResultConfig      `yaml:"result"`
}

// Param returns the named UI parameter, or the name itself when the
// configuration does not define it.
func (c *Config) Param(name string) string {
	if v, ok := c.Parameters[name]; ok {
		return v
	}
	return name
}

// Source returns the source with the given name, or nil if none matches.
func (c *Config) Source(name string) *Source {
	for i := range c.Sources {
		if c.Sources[i].Name == name {
			return &c.Sources[i]
		}
	}
	return nil
}
