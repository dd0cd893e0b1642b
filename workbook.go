package excel2erp

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// dateLayout is the canonical 8-digit form every date-valued cell reduces to.
const dateLayout = "20060102"

// OpenOption adjusts how a workbook is opened.
type OpenOption func(*excelize.Options)

// WithPassword opens a password-protected workbook.
func WithPassword(password string) OpenOption {
	return func(o *excelize.Options) { o.Password = password }
}

// Workbook is a read-only view over an xlsx file. A Workbook is not safe for
// concurrent use; run parallel conversions on separate instances.
type Workbook struct {
	file       *excelize.File
	date1904   bool
	dateStyles map[int]bool // style ID → number format renders a date
}

// OpenWorkbook opens an xlsx file from disk.
func OpenWorkbook(path string, opts ...OpenOption) (*Workbook, error) {
	f, err := excelize.OpenFile(path, openOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	return newWorkbook(f), nil
}

// OpenWorkbookReader opens an xlsx file from a stream, reading it fully into
// memory.
func OpenWorkbookReader(r io.Reader, opts ...OpenOption) (*Workbook, error) {
	f, err := excelize.OpenReader(r, openOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return newWorkbook(f), nil
}

func openOptions(opts []OpenOption) excelize.Options {
	var o excelize.Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newWorkbook(f *excelize.File) *Workbook {
	wb := &Workbook{file: f, dateStyles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}
	return wb
}

// Close releases the underlying file resources.
func (wb *Workbook) Close() error {
	return wb.file.Close()
}

// SheetNames returns the workbook's sheet names in workbook order.
func (wb *Workbook) SheetNames() []string {
	return wb.file.GetSheetList()
}

// Sheet returns the worksheet at the given 0-based index, or a
// SheetNotFoundError when the index is out of range.
func (wb *Workbook) Sheet(index int) (*Sheet, error) {
	names := wb.file.GetSheetList()
	if index < 0 || index >= len(names) {
		return nil, &SheetNotFoundError{Index: index, Count: len(names)}
	}
	return &Sheet{wb: wb, name: names[index]}, nil
}

// Sheet is one worksheet of an open workbook.
type Sheet struct {
	wb   *Workbook
	name string
}

// Name returns the worksheet's name.
func (s *Sheet) Name() string { return s.name }

// Cell returns the canonical string value of the cell at 1-based (row, col):
// empty cells yield "", text comes back verbatim, booleans become
// TRUE/FALSE, date-formatted numbers become YYYYMMDD, and other numbers use
// their shortest decimal form with integral values losing the fraction.
// Reading past the used range yields "", never an error.
func (s *Sheet) Cell(row, col int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("cell (%d,%d) on sheet %q: %w", row, col, s.name, err)
	}
	raw, err := s.wb.file.GetCellValue(s.name, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", fmt.Errorf("read %s!%s: %w", s.name, cell, err)
	}
	if raw == "" {
		return "", nil
	}
	ct, err := s.wb.file.GetCellType(s.name, cell)
	if err != nil {
		return "", fmt.Errorf("read %s!%s: %w", s.name, cell, err)
	}
	switch ct {
	case excelize.CellTypeBool:
		if raw == "1" {
			return "TRUE", nil
		}
		return "FALSE", nil
	case excelize.CellTypeDate:
		// ISO 8601 cell (t="d"), value stored as text
		return isoDate(raw), nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		return s.numberValue(cell, raw)
	}
	// shared strings, inline strings, formula string results, error literals
	return raw, nil
}

// numberValue canonicalizes a numerically stored value, converting serial
// dates when the cell's number format is a date format.
func (s *Sheet) numberValue(cell, raw string) (string, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw, nil // stored value is not numeric after all
	}
	isDate, err := s.dateStyled(cell)
	if err != nil {
		return "", err
	}
	if isDate {
		t, err := excelize.ExcelDateToTime(f, s.wb.date1904)
		if err != nil {
			return "", fmt.Errorf("read %s!%s: %w", s.name, cell, err)
		}
		return t.Format(dateLayout), nil
	}
	return formatNumber(f), nil
}

// dateStyled reports whether the cell's number format renders a date or
// time. Style lookups are cached per style ID for the workbook's lifetime.
func (s *Sheet) dateStyled(cell string) (bool, error) {
	styleID, err := s.wb.file.GetCellStyle(s.name, cell)
	if err != nil {
		return false, fmt.Errorf("read style of %s!%s: %w", s.name, cell, err)
	}
	if isDate, ok := s.wb.dateStyles[styleID]; ok {
		return isDate, nil
	}
	isDate := false
	if style, err := s.wb.file.GetStyle(styleID); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		} else {
			isDate = isBuiltInDateFormat(style.NumFmt)
		}
	}
	s.wb.dateStyles[styleID] = isDate
	return isDate, nil
}

// isBuiltInDateFormat reports whether a built-in number format ID renders as
// a date or time (ECMA-376 §18.8.30, including the locale-specific ranges).
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	case id >= 71 && id <= 81:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom format code contains date or
// time tokens. Quoted literals, bracketed sections ([Red], [$-409]), and
// escaped characters do not count.
func isDateFormatCode(code string) bool {
	inQuote := false
	inBracket := false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
		case inBracket:
			if c == ']' {
				inBracket = false
			}
		case c == '"':
			inQuote = true
		case c == '[':
			inBracket = true
		case c == '\\':
			i++
		default:
			switch c | 0x20 {
			case 'y', 'm', 'd', 'h', 's':
				return true
			}
		}
	}
	return false
}

// formatNumber renders a float the way a spreadsheet shows a plain number:
// integral values without a fraction, fractional values in positional
// decimal form, and exponent form only for magnitudes below 1e-4 or at
// 1e16 and above.
func formatNumber(f float64) string {
	abs := math.Abs(f)
	if f == math.Trunc(f) && abs < 1e16 {
		return strconv.FormatInt(int64(f), 10)
	}
	if abs >= 1e-4 && abs < 1e16 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// isoDate reduces an ISO 8601 date or date-time string to YYYYMMDD.
func isoDate(raw string) string {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(dateLayout)
		}
	}
	return raw
}
