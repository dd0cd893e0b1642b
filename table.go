package excel2erp

import "strings"

// ReadTable scans the rectangular region whose title row starts at locator.
// Titles extend rightward until the first blank or whitespace-only cell and
// keep their whitespace verbatim; zero titles means zero rows. Data rows
// extend downward from the row below the titles until the first column is
// blank or exactly equals endValue (when non-empty); the terminating row is
// excluded. Each kept row maps column title → canonical cell value, with
// duplicate titles keeping the rightmost column's value.
func (s *Sheet) ReadTable(locator, endValue string) ([]Record, error) {
	startRow, startCol, err := ParseCellAddress(locator)
	if err != nil {
		return nil, err
	}

	var titles []string
	for col := startCol; ; col++ {
		v, err := s.Cell(startRow, col)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(v) == "" {
			break
		}
		titles = append(titles, v)
	}
	if len(titles) == 0 {
		return nil, nil
	}

	var rows []Record
	for row := startRow + 1; ; row++ {
		first, err := s.Cell(row, startCol)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(first) == "" {
			break
		}
		if endValue != "" && first == endValue {
			break
		}
		rec := make(Record, len(titles))
		for i, title := range titles {
			v, err := s.Cell(row, startCol+i)
			if err != nil {
				return nil, err
			}
			rec[title] = v
		}
		rows = append(rows, rec)
	}
	return rows, nil
}
