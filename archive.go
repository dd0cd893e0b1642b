package excel2erp

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// BuildArchive bundles the generated header and detail contents into a ZIP
// archive with exactly two deflate-compressed entries, header first. Entry
// metadata carries no timestamps, so identical inputs produce byte-identical
// archives. Entry names are used as given; callers expand placeholders in
// configured filenames beforehand.
func BuildArchive(headerName, detailName, headerContent, detailContent string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := []struct {
		name    string
		content string
	}{
		{headerName, headerContent},
		{detailName, detailContent},
	}
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e.name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("archive entry %q: %w", e.name, err)
		}
		if _, err := io.WriteString(w, e.content); err != nil {
			return nil, fmt.Errorf("archive entry %q: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
