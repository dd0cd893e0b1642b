package excel2erp

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// openWorkbook serializes an in-memory excelize file and reopens it through
// the public reader entry point, closing both with the test.
func openWorkbook(t *testing.T, f *excelize.File) *Workbook {
	t.Helper()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	wb, err := OpenWorkbookReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })
	return wb
}

// firstSheet returns sheet 0 of an open workbook.
func firstSheet(t *testing.T, wb *Workbook) *Sheet {
	t.Helper()
	sheet, err := wb.Sheet(0)
	require.NoError(t, err)
	return sheet
}

// sheetOf builds a single-sheet workbook from cell → value pairs and returns
// its first sheet. Values go through excelize.SetCellValue, so Go types map
// to native cell types (string, float64, bool, time.Time).
func sheetOf(t *testing.T, cells map[string]any) *Sheet {
	t.Helper()
	f := excelize.NewFile()
	for cell, value := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", cell, value))
	}
	return firstSheet(t, openWorkbook(t, f))
}

// createOrderWorkbook builds the canonical vendor order used across tests.
// Layout (Sheet1):
//
//	B2: "00123-456"             order number as text
//	A4: "Cod."   B4: "Cant."    detail title row
//	A5: "77086"  B5: 12
//	A6: "47112"  B6: 3.5
//	A7: "TOTAL"  B7: 15.5       sentinel row, excluded from the table
func createOrderWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	sheet := "Sheet1"
	require.NoError(t, f.SetCellValue(sheet, "B2", "00123-456"))
	require.NoError(t, f.SetCellValue(sheet, "A4", "Cod."))
	require.NoError(t, f.SetCellValue(sheet, "B4", "Cant."))
	require.NoError(t, f.SetCellValue(sheet, "A5", "77086"))
	require.NoError(t, f.SetCellValue(sheet, "B5", 12))
	require.NoError(t, f.SetCellValue(sheet, "A6", "47112"))
	require.NoError(t, f.SetCellValue(sheet, "B6", 3.5))
	require.NoError(t, f.SetCellValue(sheet, "A7", "TOTAL"))
	require.NoError(t, f.SetCellValue(sheet, "B7", 15.5))
	return f
}

// testConfig returns a configuration matching createOrderWorkbook: one
// source extracting the order number with a cleanup chain, two detail
// columns, and a result layout exercising defaults, placeholders, and a
// user-supplied date.
func testConfig() *Config {
	return &Config{
		Name:        "pedidos",
		Description: "Pedidos Rey Pepinito",
		Logo:        "rey-pepinito.png",
		Parameters: map[string]string{
			"source":   "Cliente",
			"workbook": "Archivo de pedido",
		},
		Sources: []Source{{
			Name:        "elDorado",
			Description: "Mercados El Dorado",
			Logo:        "el-dorado.png",
			Header: []SourceProperty{{
				Name:    "numeroOrden",
				Locator: "B2",
				Replacements: Replacements{
					{Pattern: `^0+`, Replace: ""},
					{Pattern: `-`, Replace: ""},
				},
			}},
			Detail: DetailConfig{
				Locator:  "A4",
				EndValue: "TOTAL",
				Properties: []SourceProperty{
					{Name: "codigoArticulo", Locator: "Cod."},
					{Name: "cantidadPedida", Locator: "Cant."},
				},
			},
			DefaultValues: map[string]string{
				"codigoCliente": "C800197225",
				"nombreCliente": "Mercados El Dorado",
			},
		}},
		Result: ResultConfig{
			Separator: ";",
			BaseName:  "WMS_${sourceName}_${numeroOrden}",
			Header: FileSpec{
				Filename: "cabecera.txt",
				Properties: []ResultProperty{
					{Name: "codigoCliente"},
					{Name: "nombreCliente"},
					{Name: "numeroOrden"},
					{Name: "fechaEntrega", Type: PropertyDate, Prompt: "Fecha de entrega"},
					{Name: "empresa", DefaultValue: "Rey Pepinito"},
				},
			},
			Detail: FileSpec{
				Filename: "detalle.txt",
				Properties: []ResultProperty{
					{Name: "linea", DefaultValue: "${index}"},
					{Name: "codigoArticulo"},
					{Name: "cantidadPedida"},
				},
			},
		},
	}
}

// readArchive extracts a ZIP produced by the engine into name → content.
func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := make(map[string]string, len(zr.File))
	for _, zf := range zr.File {
		rc, err := zf.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[zf.Name] = string(content)
	}
	return out
}
