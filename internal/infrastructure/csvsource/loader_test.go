package csvsource_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-sync/internal/domain"
	"github.com/jhoicas/inventario-sync/internal/domain/entity"
	"github.com/jhoicas/inventario-sync/internal/infrastructure/csvsource"
)

const fullHeader = "Name,Category 1,PLU,Base Price,Stock Status,Stock Quantity\n"

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Parse
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_FilaCompleta(t *testing.T) {
	data := []byte(fullHeader + "Pretzel,Snacks,10234,3.50,IN_STOCK,7\n")

	rows, err := csvsource.Parse(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, int64(1), row.ID)
	assert.Equal(t, "Pretzel", row.Name)
	assert.Equal(t, "Snacks", row.Category)
	assert.Equal(t, "10234", row.PLU)
	assert.True(t, dec(t, "3.50").Equal(row.BasePrice))
	assert.Equal(t, entity.StockStatusIn, row.StockStatus)
	assert.Equal(t, 7, row.StockQuantity)
}

func TestParse_IDsSecuencialesEnOrdenDeAparicion(t *testing.T) {
	data := []byte(fullHeader +
		"A,Snacks,1,1.00,IN_STOCK,1\n" +
		"B,Snacks,2,2.00,IN_STOCK,2\n" +
		"C,Snacks,3,3.00,IN_STOCK,3\n")

	rows, err := csvsource.Parse(data)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, int64(i+1), row.ID, "los IDs empiezan en 1 y siguen el orden del archivo")
	}
}

func TestParse_StatusYStockAusentes_UsanDefaults(t *testing.T) {
	// Export mínimo: solo las cuatro columnas requeridas.
	data := []byte("Name,Category 1,PLU,Base Price\nPretzel,Snacks,10234,3.50\n")

	rows, err := csvsource.Parse(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, entity.StockStatusIn, rows[0].StockStatus, "status ausente = IN_STOCK")
	assert.Equal(t, entity.DefaultStockQuantity, rows[0].StockQuantity, "stock ausente = default del dominio")
}

func TestParse_CeldasVacias_UsanDefaults(t *testing.T) {
	data := []byte(fullHeader + "Pretzel,Snacks,10234,3.50,,\n")

	rows, err := csvsource.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, entity.StockStatusIn, rows[0].StockStatus)
	assert.Equal(t, entity.DefaultStockQuantity, rows[0].StockQuantity)
}

func TestParse_ColumnaRequeridaAusente_RetornaValidation(t *testing.T) {
	data := []byte("Name,PLU,Base Price\nPretzel,10234,3.50\n") // falta Category 1

	_, err := csvsource.Parse(data)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParse_PLUDuplicado_RetornaDuplicatePLU(t *testing.T) {
	data := []byte(fullHeader +
		"A,Snacks,10234,1.00,IN_STOCK,1\n" +
		"B,Snacks,10234,2.00,IN_STOCK,2\n")

	_, err := csvsource.Parse(data)
	assert.ErrorIs(t, err, domain.ErrDuplicatePLU)
	assert.Contains(t, err.Error(), "fila 3", "el error debe señalar la fila del duplicado")
}

func TestParse_PLUVacio_RetornaValidation(t *testing.T) {
	data := []byte(fullHeader + "A,Snacks,,1.00,IN_STOCK,1\n")

	_, err := csvsource.Parse(data)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParse_PrecioInvalido_RetornaValidation(t *testing.T) {
	for _, price := range []string{"gratis", "-1.00"} {
		data := []byte(fullHeader + "A,Snacks,1," + price + ",IN_STOCK,1\n")

		_, err := csvsource.Parse(data)
		assert.ErrorIs(t, err, domain.ErrValidation, "precio %q debe rechazarse", price)
	}
}

func TestParse_StockInvalido_RetornaValidation(t *testing.T) {
	data := []byte(fullHeader + "A,Snacks,1,1.00,IN_STOCK,muchos\n")

	_, err := csvsource.Parse(data)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParse_StatusInvalido_RetornaValidation(t *testing.T) {
	data := []byte(fullHeader + "A,Snacks,1,1.00,AGOTADO,1\n")

	_, err := csvsource.Parse(data)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// Los exports de POS legados suelen venir en Windows-1252. "Café" con é en
// 0xE9 no es UTF-8 válido y debe decodificarse con el charmap.
func TestParse_EntradaWindows1252_SeDecodifica(t *testing.T) {
	data := []byte(fullHeader + "Caf\xe9 americano,Bebidas,10002,1.50,IN_STOCK,25\n")

	rows, err := csvsource.Parse(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Café americano", rows[0].Name)
}

func TestParse_RecortaEspacios(t *testing.T) {
	data := []byte(fullHeader + " Pretzel , Snacks , 10234 , 3.50 , IN_STOCK , 7 \n")

	rows, err := csvsource.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "Pretzel", rows[0].Name)
	assert.Equal(t, "10234", rows[0].PLU)
	assert.Equal(t, 7, rows[0].StockQuantity)
}

func TestParse_SoloEncabezado_CatalogoVacio(t *testing.T) {
	rows, err := csvsource.Parse([]byte(fullHeader))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Loader (archivo real)
// ──────────────────────────────────────────────────────────────────────────────

func TestLoader_LeeArchivoDelDisco(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	content := fullHeader + "Pretzel,Snacks,10234,3.50,IN_STOCK,7\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, err := csvsource.NewLoader(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "10234", rows[0].PLU)
}

func TestLoader_ArchivoInexistente_RetornaError(t *testing.T) {
	_, err := csvsource.NewLoader("/no/existe.csv").Load(context.Background())
	assert.Error(t, err)
}
