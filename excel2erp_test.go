package excel2erp

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestConvert_EndToEnd(t *testing.T) {
	wb := openWorkbook(t, createOrderWorkbook(t))

	res, err := Convert(wb, testConfig(), "elDorado", Record{"fechaEntrega": "20241215"})
	require.NoError(t, err)

	assert.Equal(t, "WMS_elDorado_123456.zip", res.Name)
	assert.Equal(t, "elDorado", res.Header["sourceName"])
	require.Len(t, res.Detail, 2)

	contents := readArchive(t, res.Archive)
	assert.Equal(t, "C800197225;Mercados El Dorado;123456;20241215;Rey Pepinito", contents["cabecera.txt"])
	assert.Equal(t, "0;77086;12\n1;47112;3.5", contents["detalle.txt"])
}

func TestConvert_UnknownSource(t *testing.T) {
	wb := openWorkbook(t, createOrderWorkbook(t))

	_, err := Convert(wb, testConfig(), "noExiste", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown source "noExiste"`)
}

func TestConvert_SheetOutOfRange(t *testing.T) {
	wb := openWorkbook(t, createOrderWorkbook(t))
	cfg := testConfig()
	cfg.Sources[0].SheetIndex = 3

	_, err := Convert(wb, cfg, "elDorado", nil)
	require.Error(t, err)
	var notFound *SheetNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 3, notFound.Index)
	assert.Equal(t, 1, notFound.Count)
}

func TestConvert_UserFieldsOverrideExtraction(t *testing.T) {
	wb := openWorkbook(t, createOrderWorkbook(t))

	res, err := Convert(wb, testConfig(), "elDorado", Record{
		"numeroOrden":  "999",
		"fechaEntrega": "20241215",
	})
	require.NoError(t, err)

	assert.Equal(t, "WMS_elDorado_999.zip", res.Name)
	contents := readArchive(t, res.Archive)
	assert.Equal(t, "C800197225;Mercados El Dorado;999;20241215;Rey Pepinito", contents["cabecera.txt"])
}

func TestConvert_SourceNameNotSpoofable(t *testing.T) {
	wb := openWorkbook(t, createOrderWorkbook(t))

	res, err := Convert(wb, testConfig(), "elDorado", Record{"sourceName": "spoof"})
	require.NoError(t, err)
	assert.Equal(t, "elDorado", res.Header["sourceName"])
}

func TestConvert_FilenamePlaceholders(t *testing.T) {
	wb := openWorkbook(t, createOrderWorkbook(t))
	cfg := testConfig()
	cfg.Result.Header.Filename = "CAB_${numeroOrden}.txt"
	cfg.Result.Detail.Filename = "DET_${numeroOrden}.txt"

	res, err := Convert(wb, cfg, "elDorado", nil)
	require.NoError(t, err)

	contents := readArchive(t, res.Archive)
	assert.Contains(t, contents, "CAB_123456.txt")
	assert.Contains(t, contents, "DET_123456.txt")
}

func TestConvert_SecondSheetSource(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet("Pedido")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Pedido", "B2", "00777"))
	require.NoError(t, f.SetCellValue("Pedido", "A4", "Cod."))
	require.NoError(t, f.SetCellValue("Pedido", "B4", "Cant."))
	require.NoError(t, f.SetCellValue("Pedido", "A5", "100"))
	require.NoError(t, f.SetCellValue("Pedido", "B5", 1))
	wb := openWorkbook(t, f)

	cfg := testConfig()
	cfg.Sources[0].SheetIndex = 1
	res, err := Convert(wb, cfg, "elDorado", Record{"fechaEntrega": "20240101"})
	require.NoError(t, err)

	assert.Equal(t, "WMS_elDorado_777.zip", res.Name)
	contents := readArchive(t, res.Archive)
	assert.Equal(t, "0;100;1", contents["detalle.txt"])
}

func TestConvert_NoDetailRows(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "00555"))
	require.NoError(t, f.SetCellValue("Sheet1", "A4", "Cod."))
	require.NoError(t, f.SetCellValue("Sheet1", "B4", "Cant."))
	require.NoError(t, f.SetCellValue("Sheet1", "A5", "TOTAL"))
	wb := openWorkbook(t, f)

	res, err := Convert(wb, testConfig(), "elDorado", Record{"fechaEntrega": "20240101"})
	require.NoError(t, err)

	assert.Empty(t, res.Detail)
	contents := readArchive(t, res.Archive)
	assert.Equal(t, "", contents["detalle.txt"])
}

func TestConvert_Deterministic(t *testing.T) {
	f := createOrderWorkbook(t)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	data := buf.Bytes()
	fields := Record{"fechaEntrega": "20241215"}

	first, err := ConvertReader(bytes.NewReader(data), testConfig(), "elDorado", fields)
	require.NoError(t, err)
	second, err := ConvertReader(bytes.NewReader(data), testConfig(), "elDorado", fields)
	require.NoError(t, err)

	assert.Equal(t, first.Archive, second.Archive, "same workbook and fields, byte-identical archive")
}

func TestConvertFile_RoundTrip(t *testing.T) {
	f := createOrderWorkbook(t)
	path := filepath.Join(t.TempDir(), "pedido.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	res, err := ConvertFile(path, testConfig(), "elDorado", Record{"fechaEntrega": "20241215"})
	require.NoError(t, err)
	assert.Equal(t, "WMS_elDorado_123456.zip", res.Name)
}

func TestConvertFile_MissingFile(t *testing.T) {
	_, err := ConvertFile(filepath.Join(t.TempDir(), "no-such.xlsx"), testConfig(), "elDorado", nil)
	assert.Error(t, err)
}

func TestConvertReader_BadData(t *testing.T) {
	_, err := ConvertReader(bytes.NewReader([]byte("not an xlsx")), testConfig(), "elDorado", nil)
	assert.Error(t, err)
}
