package excel2erp

import (
	"fmt"
	"sort"
	"strings"
)

// DescribeConfig returns a human-readable summary of a configuration: its
// parameters, each source's extraction surface and the fields a user must
// supply for it, and the result layout. Useful when authoring or debugging
// configurations.
func DescribeConfig(cfg *Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", cfg.Name, cfg.Description)

	if len(cfg.Parameters) > 0 {
		keys := make([]string, 0, len(cfg.Parameters))
		for k := range cfg.Parameters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("Parameters:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s = %q\n", k, cfg.Parameters[k])
		}
	}

	fmt.Fprintf(&b, "Sources (%d):\n", len(cfg.Sources))
	for i := range cfg.Sources {
		describeSource(&b, &cfg.Sources[i], cfg.Result.Header)
	}

	b.WriteString("Result:\n")
	fmt.Fprintf(&b, "  separator %q, base name %q\n", cfg.Result.Separator, cfg.Result.BaseName)
	describeFileSpec(&b, "header", cfg.Result.Header)
	describeFileSpec(&b, "detail", cfg.Result.Detail)
	return b.String()
}

func describeSource(b *strings.Builder, src *Source, headerSpec FileSpec) {
	fmt.Fprintf(b, "  %s: %s (sheet %d)\n", src.Name, src.Description, src.SheetIndex)
	if len(src.Header) > 0 {
		fmt.Fprintf(b, "    header: %s\n", propertyNames(src.Header))
	}
	if len(src.Detail.Properties) > 0 {
		fmt.Fprintf(b, "    detail at %s", src.Detail.Locator)
		if src.Detail.EndValue != "" {
			fmt.Fprintf(b, " until %q", src.Detail.EndValue)
		}
		fmt.Fprintf(b, ": %s\n", propertyNames(src.Detail.Properties))
	}
	if missing := MissingProperties(src, headerSpec); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, p := range missing {
			names[i] = p.Name
		}
		fmt.Fprintf(b, "    user input: %s\n", strings.Join(names, ", "))
	}
}

func describeFileSpec(b *strings.Builder, label string, spec FileSpec) {
	fmt.Fprintf(b, "  %s %q: %d properties", label, spec.Filename, len(spec.Properties))
	var extras []string
	if spec.Prolog != "" {
		extras = append(extras, "prolog")
	}
	if spec.Epilog != "" {
		extras = append(extras, "epilog")
	}
	if len(extras) > 0 {
		fmt.Fprintf(b, " (+%s)", strings.Join(extras, ", "))
	}
	b.WriteByte('\n')
}

func propertyNames(props []SourceProperty) string {
	names := make([]string, len(props))
	for i, p := range props {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
