package excel2erp

import "fmt"

// InvalidAddressError reports a locator string that is not a valid
// letters+digits cell address.
type InvalidAddressError struct {
	Address string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid cell address %q", e.Address)
}

// SheetNotFoundError reports a sheet index outside the workbook's sheet list.
type SheetNotFoundError struct {
	Index int // requested 0-based sheet index
	Count int // number of sheets in the workbook
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet index %d out of range: workbook has %d sheet(s)", e.Index, e.Count)
}

// MalformedConfigError reports a configuration document that cannot drive an
// extraction: a required field is absent, a name collides, or a replacement
// pattern does not compile. Field identifies the offending element.
type MalformedConfigError struct {
	Field  string
	Detail string
	Err    error // underlying cause, if any
}

func (e *MalformedConfigError) Error() string {
	msg := "malformed configuration: " + e.Field
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedConfigError) Unwrap() error {
	return e.Err
}
