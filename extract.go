package excel2erp

import "fmt"

// ExtractHeader builds the header record for one workbook. Values layer
// lowest to highest: the result header's derived defaults, the source's
// default values, then every extracted header property. Extraction always
// runs, so an extracted empty string still overrides a layered default.
func ExtractHeader(sheet *Sheet, src *Source, headerSpec FileSpec) (Record, error) {
	rec := make(Record)
	for name, value := range headerSpec.DefaultValues() {
		rec[name] = value
	}
	for name, value := range src.DefaultValues {
		rec[name] = value
	}
	for _, p := range src.Header {
		row, col, err := ParseCellAddress(p.Locator)
		if err != nil {
			return nil, fmt.Errorf("source %q: header property %q: %w", src.Name, p.Name, err)
		}
		value, err := sheet.Cell(row, col)
		if err != nil {
			return nil, fmt.Errorf("source %q: header property %q: %w", src.Name, p.Name, err)
		}
		value, err = applyReplacements(value, p.Replacements)
		if err != nil {
			return nil, fmt.Errorf("source %q: header property %q: %w", src.Name, p.Name, err)
		}
		rec[p.Name] = value
	}
	return rec, nil
}

// ExtractDetail reads the source's detail table and maps each raw row to an
// output record: configured columns are renamed to their property name and
// run through the property's replacement chain, unmapped columns are dropped
// silently, and absent columns leave the property out of the record. Rows
// keep worksheet order, one record per row even when no property maps. A
// source without a detail locator yields no records.
func ExtractDetail(sheet *Sheet, src *Source) ([]Record, error) {
	if src.Detail.Locator == "" {
		return nil, nil
	}
	raw, err := sheet.ReadTable(src.Detail.Locator, src.Detail.EndValue)
	if err != nil {
		return nil, fmt.Errorf("source %q: detail table: %w", src.Name, err)
	}
	out := make([]Record, 0, len(raw))
	for _, row := range raw {
		rec := make(Record, len(src.Detail.Properties))
		for _, p := range src.Detail.Properties {
			value, ok := row[p.Locator]
			if !ok {
				continue
			}
			value, err = applyReplacements(value, p.Replacements)
			if err != nil {
				return nil, fmt.Errorf("source %q: detail property %q: %w", src.Name, p.Name, err)
			}
			rec[p.Name] = value
		}
		out = append(out, rec)
	}
	return out, nil
}

// MissingProperties returns the result-header properties the source can
// neither extract nor default, in result-spec order. Callers collect values
// for these from the user before generating output.
func MissingProperties(src *Source, headerSpec FileSpec) []ResultProperty {
	extracted := make(map[string]bool, len(src.Header))
	for _, p := range src.Header {
		extracted[p.Name] = true
	}
	defaulted := headerSpec.DefaultValues()
	var missing []ResultProperty
	for _, p := range headerSpec.Properties {
		if extracted[p.Name] {
			continue
		}
		if _, ok := src.DefaultValues[p.Name]; ok {
			continue
		}
		if _, ok := defaulted[p.Name]; ok {
			continue
		}
		missing = append(missing, p)
	}
	return missing
}
