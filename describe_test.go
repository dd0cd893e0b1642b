package excel2erp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeConfig_CoversSourcesAndResult(t *testing.T) {
	out := DescribeConfig(testConfig())

	assert.Contains(t, out, "pedidos: Pedidos Rey Pepinito")
	assert.Contains(t, out, "Sources (1):")
	assert.Contains(t, out, "elDorado: Mercados El Dorado (sheet 0)")
	assert.Contains(t, out, "header: numeroOrden")
	assert.Contains(t, out, `detail at A4 until "TOTAL": codigoArticulo, cantidadPedida`)
	assert.Contains(t, out, "user input: fechaEntrega")
	assert.Contains(t, out, `separator ";", base name "WMS_${sourceName}_${numeroOrden}"`)
	assert.Contains(t, out, `header "cabecera.txt": 5 properties`)
	assert.Contains(t, out, `detail "detalle.txt": 3 properties`)
}

func TestDescribeConfig_ParametersSorted(t *testing.T) {
	out := DescribeConfig(testConfig())

	sourceIdx := strings.Index(out, `source = "Cliente"`)
	workbookIdx := strings.Index(out, `workbook = "Archivo de pedido"`)
	assert.Greater(t, sourceIdx, -1)
	assert.Greater(t, workbookIdx, sourceIdx)
}

func TestDescribeConfig_PrologEpilogNoted(t *testing.T) {
	cfg := testConfig()
	cfg.Result.Header.Prolog = "CAB"
	cfg.Result.Detail.Epilog = "FIN"
	out := DescribeConfig(cfg)

	assert.Contains(t, out, `header "cabecera.txt": 5 properties (+prolog)`)
	assert.Contains(t, out, `detail "detalle.txt": 3 properties (+epilog)`)
}

func TestDescribeConfig_NoUserInputLineWhenCovered(t *testing.T) {
	cfg := testConfig()
	cfg.Sources[0].DefaultValues["fechaEntrega"] = "20240101"
	out := DescribeConfig(cfg)

	assert.NotContains(t, out, "user input:")
}
