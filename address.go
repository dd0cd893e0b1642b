package excel2erp

import (
	"regexp"
	"strconv"
)

// cellAddressRe matches a full A1-style address: letters then digits,
// nothing else. Case-insensitive by character class.
var cellAddressRe = regexp.MustCompile(`^([A-Za-z]+)([0-9]+)$`)

// ParseCellAddress parses an A1-style address into 1-based (row, col)
// coordinates: "A1"→(1,1), "b3"→(3,2), "AA10"→(10,27).
// The whole string must be letters followed by digits; anything else
// fails with an InvalidAddressError.
func ParseCellAddress(address string) (row, col int, err error) {
	m := cellAddressRe.FindStringSubmatch(address)
	if m == nil {
		return 0, 0, &InvalidAddressError{Address: address}
	}
	row, convErr := strconv.Atoi(m[2])
	if convErr != nil || row < 1 {
		return 0, 0, &InvalidAddressError{Address: address}
	}
	return row, columnNumber(m[1]), nil
}

// columnNumber decodes column letters as a 1-based base-26 number.
// "A"→1, "Z"→26, "AA"→27, "AZ"→52. Case-insensitive.
func columnNumber(letters string) int {
	n := 0
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		n = n*26 + int(c-'A') + 1
	}
	return n
}

// columnName is the inverse of columnNumber: 1→"A", 26→"Z", 27→"AA".
func columnName(n int) string {
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		n--
		i--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:])
}
