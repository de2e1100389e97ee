package http_test

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createSKU1 crea el producto del escenario: stock 10, mínimo 2, máximo 100 (id 5).
func createSKU1(t *testing.T, app *fiber.App) {
	t.Helper()
	resp := do(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"sku": "SKU-1", "nombre": "Producto 1", "stock": 10, "stock_minimo": 2, "stock_maximo": 100,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := dataMap(t, envelope(t, resp))
	require.EqualValues(t, 5, created["id"])
	require.Equal(t, "NORMAL", created["estado_stock"])
}

func stockOf(t *testing.T, app *fiber.App, id string) float64 {
	t.Helper()
	data := dataMap(t, envelope(t, do(t, app, http.MethodGet, "/api/products?id="+id, nil)))
	return data["stock"].(float64)
}

func TestMovement_EscenarioSalidaInsuficienteYLuegoValida(t *testing.T) {
	app := buildApp(t, "")
	createSKU1(t, app)

	resp := do(t, app, http.MethodPost, "/api/inventory/movement", map[string]interface{}{
		"producto_id": 5, "tipo_movimiento": "SALIDA", "cantidad": 15,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := envelope(t, resp)
	assert.Contains(t, env["error"], "stock insuficiente")
	assert.EqualValues(t, 10, stockOf(t, app, "5"))

	// Repetir el rechazo no cambia el resultado.
	resp = do(t, app, http.MethodPost, "/api/inventory/movement", map[string]interface{}{
		"producto_id": 5, "tipo_movimiento": "SALIDA", "cantidad": 15,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.EqualValues(t, 10, stockOf(t, app, "5"))

	resp = do(t, app, http.MethodPost, "/api/inventory/movement", map[string]interface{}{
		"producto_id": 5, "tipo_movimiento": "SALIDA", "cantidad": 9, "motivo": "venta",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := dataMap(t, envelope(t, resp))
	assert.EqualValues(t, 10, data["stock_anterior"])
	assert.EqualValues(t, 1, data["stock_nuevo"])
	assert.Equal(t, "LOW_STOCK", data["estado_stock"])
	assert.Equal(t, "Sistema", data["usuario"])
	assert.NotEmpty(t, data["referencia"])
	assert.EqualValues(t, 1, stockOf(t, app, "5"))
}

func TestMovement_EntradaYProductoInexistente(t *testing.T) {
	app := buildApp(t, "")

	resp := do(t, app, http.MethodPost, "/api/inventory/movement", map[string]interface{}{
		"producto_id": 3, "tipo_movimiento": "ENTRADA", "cantidad": 40, "usuario": "bodeguero",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := dataMap(t, envelope(t, resp))
	assert.EqualValues(t, 40, data["stock_nuevo"])
	assert.Equal(t, "NORMAL", data["estado_stock"])
	assert.Equal(t, "bodeguero", data["usuario"])

	resp = do(t, app, http.MethodPost, "/api/inventory/movement", map[string]interface{}{
		"producto_id": 999, "tipo_movimiento": "ENTRADA", "cantidad": 1,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/inventory/movement", map[string]interface{}{
		"producto_id": 3, "tipo_movimiento": "TRASPASO", "cantidad": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/inventory/movement", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestMovement_EntradaFueraDeRango(t *testing.T) {
	app := buildApp(t, "")
	createSKU1(t, app)

	resp := do(t, app, http.MethodPost, "/api/inventory/movement",
		[]byte(`{"producto_id":5,"tipo_movimiento":"ENTRADA","cantidad":9223372036854775807}`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := envelope(t, resp)
	assert.Equal(t, "cantidad: excede el máximo permitido", env["error"])

	// Cabe en la cantidad pero el stock resultante pasa el tope.
	resp = do(t, app, http.MethodPost, "/api/inventory/movement",
		[]byte(`{"producto_id":5,"tipo_movimiento":"ENTRADA","cantidad":2147483640}`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env = envelope(t, resp)
	assert.NotContains(t, env["error"], "stock insuficiente")
	assert.Contains(t, env["error"], "cantidad")

	assert.EqualValues(t, 10, stockOf(t, app, "5"))
}

func TestAdjust_FijaElStock(t *testing.T) {
	app := buildApp(t, "")

	resp := do(t, app, http.MethodPut, "/api/inventory/adjust", map[string]interface{}{
		"producto_id": 4, "nuevo_stock": 150,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := dataMap(t, envelope(t, resp))
	assert.EqualValues(t, 320, data["stock_anterior"])
	assert.EqualValues(t, 150, data["stock_nuevo"])
	assert.Equal(t, "ADJUST", data["tipo_movimiento"])
	assert.Equal(t, "Ajuste manual", data["motivo"])
	assert.EqualValues(t, 150, stockOf(t, app, "4"))

	resp = do(t, app, http.MethodPut, "/api/inventory/adjust", map[string]interface{}{"producto_id": 4})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/inventory/adjust", map[string]interface{}{
		"producto_id": 4, "nuevo_stock": 1,
	})
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestInventory_ListYAccionDesconocida(t *testing.T) {
	app := buildApp(t, "")

	env := envelope(t, do(t, app, http.MethodGet, "/api/inventory", nil))
	assert.EqualValues(t, 4, env["total"])

	env = envelope(t, do(t, app, http.MethodGet, "/api/inventory/otra-cosa?bodega_id=2", nil))
	assert.Equal(t, true, env["success"])
	assert.EqualValues(t, 2, env["total"])

	env = envelope(t, do(t, app, http.MethodGet, "/api/inventory/list?producto_id=1", nil))
	assert.EqualValues(t, 1, env["total"])

	resp := do(t, app, http.MethodGet, "/api/inventory?producto_id=-3", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodDelete, "/api/inventory", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestInventory_Alertas(t *testing.T) {
	app := buildApp(t, "")

	env := envelope(t, do(t, app, http.MethodGet, "/api/inventory/alerts", nil))
	assert.EqualValues(t, 3, env["total"])
	list := dataList(t, env)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "OFI-001", first["sku"])
	assert.Equal(t, "OUT_OF_STOCK", first["tipo_alerta"])
	assert.Equal(t, "CRITICA", first["severidad"])

	resp := do(t, app, http.MethodPost, "/api/inventory/alerts", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestInventory_Reporte(t *testing.T) {
	app := buildApp(t, "")

	data := dataMap(t, envelope(t, do(t, app, http.MethodGet, "/api/inventory/report", nil)))
	assert.EqualValues(t, 4, data["total_productos"])
	assert.EqualValues(t, 348, data["total_unidades"])
	assert.Equal(t, "17085520", data["valor_total_inventario"])
	assert.EqualValues(t, 2, data["productos_stock_bajo"])
	assert.EqualValues(t, 1, data["productos_sin_stock"])
	assert.Len(t, data["top_productos"], 4)
}

func TestInventory_ReportePDF(t *testing.T) {
	app := buildApp(t, "")

	resp := do(t, app, http.MethodGet, "/api/inventory/report?format=pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestMetrics_ExponeContadorDeMovimientos(t *testing.T) {
	app := buildApp(t, "")

	resp := do(t, app, http.MethodPost, "/api/inventory/movement", map[string]interface{}{
		"producto_id": 1, "tipo_movimiento": "SALIDA", "cantidad": 1000,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.Contains(text, `inventario_stock_movements_total{kind="OUTBOUND",result="insufficient_stock"} 1`), text)
	assert.Contains(t, text, "inventario_http_requests_total")
}
