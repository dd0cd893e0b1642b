package excel2erp

import (
	"fmt"
	"io"
)

// Result is one finished conversion.
type Result struct {
	Name    string   // archive download name: expanded baseName + ".zip"
	Archive []byte   // the ZIP bytes
	Header  Record   // final header record (defaults, extraction, user fields, sourceName)
	Detail  []Record // transformed detail rows in worksheet order
}

// Convert runs one extraction-and-generation pipeline over an open workbook:
// pick the named source's sheet, extract header and detail, overlay the
// caller-supplied fields (highest precedence), inject sourceName, generate
// both file contents, and bundle them into the archive. The archive name
// and both entry filenames have their placeholders expanded against the
// final header record. Every failure aborts the whole conversion; there is
// no partial output.
func Convert(wb *Workbook, cfg *Config, sourceName string, userFields Record) (*Result, error) {
	src := cfg.Source(sourceName)
	if src == nil {
		return nil, fmt.Errorf("unknown source %q", sourceName)
	}
	sheet, err := wb.Sheet(src.SheetIndex)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", sourceName, err)
	}

	header, err := ExtractHeader(sheet, src, cfg.Result.Header)
	if err != nil {
		return nil, err
	}
	detail, err := ExtractDetail(sheet, src)
	if err != nil {
		return nil, err
	}

	for name, value := range userFields {
		header[name] = value
	}
	header["sourceName"] = src.Name

	headerContent := GenerateContent(cfg.Result.Header, cfg.Result.Separator, []Record{header})
	detailContent := GenerateContent(cfg.Result.Detail, cfg.Result.Separator, detail)

	archive, err := BuildArchive(
		Expand(cfg.Result.Header.Filename, header),
		Expand(cfg.Result.Detail.Filename, header),
		headerContent,
		detailContent,
	)
	if err != nil {
		return nil, err
	}

	return &Result{
		Name:    Expand(cfg.Result.BaseName, header) + ".zip",
		Archive: archive,
		Header:  header,
		Detail:  detail,
	}, nil
}

// ConvertFile opens an xlsx file from disk and converts it.
func ConvertFile(path string, cfg *Config, sourceName string, userFields Record, opts ...OpenOption) (*Result, error) {
	wb, err := OpenWorkbook(path, opts...)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return Convert(wb, cfg, sourceName, userFields)
}

// ConvertReader reads an xlsx file from a stream and converts it.
func ConvertReader(r io.Reader, cfg *Config, sourceName string, userFields Record, opts ...OpenOption) (*Result, error) {
	wb, err := OpenWorkbookReader(r, opts...)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return Convert(wb, cfg, sourceName, userFields)
}
