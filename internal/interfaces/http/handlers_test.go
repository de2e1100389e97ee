package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducts_List(t *testing.T) {
	app := buildApp(t, "")

	env := envelope(t, do(t, app, http.MethodGet, "/api/products", nil))
	assert.Equal(t, true, env["success"])
	assert.EqualValues(t, 4, env["total"])
	assert.NotEmpty(t, env["timestamp"])

	list := dataList(t, env)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "ELEC-001", first["sku"])
	assert.Equal(t, "NORMAL", first["estado_stock"])
	assert.Equal(t, "Electrónica", first["categoria_nombre"])
}

func TestProducts_FiltrosPorCategoriaYBodega(t *testing.T) {
	app := buildApp(t, "")

	env := envelope(t, do(t, app, http.MethodGet, "/api/products?categoria=2", nil))
	assert.EqualValues(t, 2, env["total"])
	assert.Contains(t, env["message"], "categoría")

	env = envelope(t, do(t, app, http.MethodGet, "/api/products?bodega=1", nil))
	assert.EqualValues(t, 2, env["total"])

	env = envelope(t, do(t, app, http.MethodGet, "/api/products?nombre=mouse", nil))
	assert.EqualValues(t, 1, env["total"])
}

func TestProducts_IDMalformadoEs400(t *testing.T) {
	app := buildApp(t, "")

	resp := do(t, app, http.MethodGet, "/api/products?id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := envelope(t, resp)
	assert.Equal(t, false, env["success"])
	assert.EqualValues(t, 400, env["status"])
	assert.NotEmpty(t, env["error"])

	resp = do(t, app, http.MethodGet, "/api/products?categoria=x", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProducts_NoEncontradoEs404(t *testing.T) {
	app := buildApp(t, "")

	resp := do(t, app, http.MethodGet, "/api/products?id=999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	env := envelope(t, resp)
	assert.Equal(t, "Producto no encontrado", env["error"])

	resp = do(t, app, http.MethodDelete, "/api/products?id=999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	env = envelope(t, do(t, app, http.MethodGet, "/api/products", nil))
	assert.EqualValues(t, 4, env["total"], "el borrado fallido no cambia el total")
}

func TestProducts_CrearObtenerActualizarEliminar(t *testing.T) {
	app := buildApp(t, "")

	resp := do(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"sku":          "SKU-NEW",
		"nombre":       "Teclado",
		"stock":        12,
		"stock_minimo": 2,
		"stock_maximo": 50,
		"precio":       19990,
		"categoria_id": 1,
		"bodega_id":    1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := dataMap(t, envelope(t, resp))
	id := created["id"].(float64)
	assert.Equal(t, "SKU-NEW", created["sku"])
	assert.EqualValues(t, 12, created["stock"])
	assert.Equal(t, "ACTIVO", created["estado"])
	assert.Equal(t, "NORMAL", created["estado_stock"])

	got := dataMap(t, envelope(t, do(t, app, http.MethodGet, "/api/products?id=5", nil)))
	assert.Equal(t, id, got["id"])
	assert.Equal(t, "Teclado", got["nombre"])
	assert.EqualValues(t, 50, got["stock_maximo"])

	resp = do(t, app, http.MethodPut, "/api/products?id=5", map[string]interface{}{
		"sku":          "SKU-NEW",
		"nombre":       "Teclado mecánico",
		"stock":        999,
		"stock_minimo": 2,
		"precio":       29990,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := dataMap(t, envelope(t, resp))
	assert.Equal(t, "Teclado mecánico", updated["nombre"])
	assert.EqualValues(t, 12, updated["stock"], "la actualización no modifica el stock")

	resp = do(t, app, http.MethodDelete, "/api/products?id=5", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = do(t, app, http.MethodGet, "/api/products?id=5", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProducts_SKUDuplicadoEs409(t *testing.T) {
	app := buildApp(t, "")

	resp := do(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"sku": "ELEC-001", "nombre": "Otro",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	env := envelope(t, resp)
	assert.Equal(t, "Ya existe un producto con ese SKU", env["error"])
}

func TestProducts_Validaciones(t *testing.T) {
	app := buildApp(t, "")

	resp := do(t, app, http.MethodPost, "/api/products", map[string]interface{}{"nombre": "Sin SKU"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/products", []byte("{no es json"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPut, "/api/products", map[string]interface{}{"sku": "X", "nombre": "Y"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "PUT sin id")

	resp = do(t, app, http.MethodDelete, "/api/products", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "DELETE sin id")
}

func TestProducts_MetodoNoSoportado(t *testing.T) {
	app := buildApp(t, "")

	resp := do(t, app, http.MethodPatch, "/api/products", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	env := envelope(t, resp)
	assert.EqualValues(t, 405, env["status"])
}

func TestCategories_CRUDYBorradoRestringido(t *testing.T) {
	app := buildApp(t, "")

	env := envelope(t, do(t, app, http.MethodGet, "/api/categories", nil))
	assert.EqualValues(t, 2, env["total"])

	resp := do(t, app, http.MethodPost, "/api/categories", map[string]interface{}{"nombre": "Limpieza"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := dataMap(t, envelope(t, resp))
	assert.Equal(t, "ACTIVO", created["estado"])

	resp = do(t, app, http.MethodDelete, "/api/categories?id=1", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "categoría con productos")

	resp = do(t, app, http.MethodDelete, "/api/categories?id=3", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/categories?id=3", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Categoría no encontrada", envelope(t, resp)["error"])
}

func TestWarehouses_FiltroCapacidad(t *testing.T) {
	app := buildApp(t, "")

	env := envelope(t, do(t, app, http.MethodGet, "/api/warehouses?capacidad_min=5000", nil))
	assert.EqualValues(t, 1, env["total"])
	w := dataList(t, env)[0].(map[string]interface{})
	assert.Equal(t, "Bodega Central", w["nombre"])

	resp := do(t, app, http.MethodGet, "/api/warehouses?capacidad_min=-1", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/warehouses", map[string]interface{}{
		"nombre": "Bodega Sur", "email": "no-es-email",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodDelete, "/api/warehouses?id=2", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCORS_AbiertoEnExitoYError(t *testing.T) {
	app := buildApp(t, "")

	resp := do(t, app, http.MethodGet, "/api/products", nil, "Origin", "https://cliente.example")
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp = do(t, app, http.MethodGet, "/api/products?id=999", nil, "Origin", "https://cliente.example")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRutaInexistenteDevuelveEnvelope(t *testing.T) {
	app := buildApp(t, "")

	resp := do(t, app, http.MethodGet, "/api/nada", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	env := envelope(t, resp)
	assert.Equal(t, false, env["success"])
}

func TestHealth(t *testing.T) {
	app := buildApp(t, "")

	resp := do(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := dataMap(t, envelope(t, resp))
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "memory", data["store"])
}
