// Package excel2erp converts vendor-specific spreadsheet order files into
// the pair of delimited text files an ERP import expects, bundled into a
// single ZIP archive. The conversion is driven entirely by a declarative
// configuration: each Source describes where one vendor's header fields and
// detail table live inside its workbook layout, and the ResultConfig
// describes the two output files. Adding a vendor means adding a Source to
// the configuration, not writing code.
package excel2erp
