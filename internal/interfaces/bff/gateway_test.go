package bff_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-serverless/internal/application/inventory"
	"github.com/jhoicas/inventario-serverless/internal/application/usecase"
	"github.com/jhoicas/inventario-serverless/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-serverless/internal/interfaces/bff"
	apphttp "github.com/jhoicas/inventario-serverless/internal/interfaces/http"
	"github.com/jhoicas/inventario-serverless/pkg/config"
	"github.com/jhoicas/inventario-serverless/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func proxyApp(baseURL string) *fiber.App {
	client := bff.NewFunctionClient(config.BFFConfig{
		ProductBaseURL:   baseURL,
		WarehouseBaseURL: baseURL,
		Timeout:          2 * time.Second,
	}, logger.Nop())
	app := apphttp.NewApp(apphttp.AppConfig{Name: "bff-test"})
	bff.Router(app, bff.NewGateway(client, config.BFFModeProxy, nil), "")
	return app
}

func seededUseCases(t *testing.T) (*memory.Store, *usecase.ProductUseCase, *usecase.WarehouseUseCase) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, memory.Seed(context.Background(), store))
	return store,
		usecase.NewProductUseCase(memory.NewProductRepository(store), nil),
		usecase.NewWarehouseUseCase(memory.NewWarehouseRepository(store))
}

func directApp(t *testing.T) *fiber.App {
	t.Helper()
	_, products, warehouses := seededUseCases(t)
	app := apphttp.NewApp(apphttp.AppConfig{Name: "bff-test"})
	backend := bff.NewDirectBackend(products, warehouses, nil, false)
	bff.Router(app, bff.NewGateway(backend, config.BFFModeDirect, nil), "")
	return app
}

// functionsServer levanta la API de funciones real sobre el store en memoria.
func functionsServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, products, warehouses := seededUseCases(t)
	repo := memory.NewProductRepository(store)
	app := apphttp.NewApp(apphttp.AppConfig{Name: "functions-test"})
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:        products,
		CategoryUC:       usecase.NewCategoryUseCase(memory.NewCategoryRepository(store)),
		WarehouseUC:      warehouses,
		RegisterMovement: inventory.NewRegisterMovementUseCase(memory.NewTxRunner(store), nil, logger.Nop()),
		InventoryQuery:   inventory.NewQueryUseCase(repo, nil),
	})
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return srv
}

func send(t *testing.T, app *fiber.App, method, target string, body []byte, headers ...string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// ──────────────────────────────────────────────────────────────────────────────
// Proxy
// ──────────────────────────────────────────────────────────────────────────────

func TestProxy_ReescribeRutaYDesenvuelveData(t *testing.T) {
	var gotPath, gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":7,"sku":"X-7"},"message":"ok","timestamp":"2026-01-01T00:00:00Z"}`))
	}))
	defer upstream.Close()

	status, body := send(t, proxyApp(upstream.URL+"/api"), http.MethodGet, "/api/productos/7", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "/api/products", gotPath)
	assert.Equal(t, "id=7", gotQuery)
	assert.JSONEq(t, `{"id":7,"sku":"X-7"}`, string(body))
}

func TestProxy_ReenviaFiltrosCuerpoYCabeceras(t *testing.T) {
	var (
		gotMethod, gotQuery, gotCT, gotAuth string
		gotBody                             []byte
	)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotQuery = r.Method, r.URL.RawQuery
		gotCT, gotAuth = r.Header.Get("Content-Type"), r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":1},"timestamp":"2026-01-01T00:00:00Z"}`))
	}))
	defer upstream.Close()
	app := proxyApp(upstream.URL + "/api")

	payload := []byte(`{"nombre":"Bodega Sur"}`)
	status, body := send(t, app, http.MethodPost, "/api/bodegas", payload, "Authorization", "Bearer abc")
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.JSONEq(t, string(payload), string(gotBody))
	assert.JSONEq(t, `{"id":1}`, string(body))

	_, _ = send(t, app, http.MethodGet, "/api/productos?categoria=3", nil)
	assert.Equal(t, "categoria=3", gotQuery)
}

func TestProxy_ErrorDeFuncionConservaStatusYEnvelope(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"Producto no encontrado","status":404,"timestamp":"2026-01-01T00:00:00Z"}`))
	}))
	defer upstream.Close()

	status, body := send(t, proxyApp(upstream.URL+"/api"), http.MethodDelete, "/api/productos/99", nil)
	assert.Equal(t, http.StatusNotFound, status)
	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &env))
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "Producto no encontrado", env["error"])
}

func TestProxy_FalloDeTransporteEs502(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	base := upstream.URL + "/api"
	upstream.Close()

	status, body := send(t, proxyApp(base), http.MethodGet, "/api/productos", nil)
	assert.Equal(t, http.StatusBadGateway, status)
	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &env))
	assert.Equal(t, false, env["success"])
	assert.EqualValues(t, 502, env["status"])
}

func TestProxy_IDInvalidoEs400(t *testing.T) {
	status, _ := send(t, proxyApp("http://127.0.0.1:1/api"), http.MethodGet, "/api/bodegas/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestProxy_ContraFuncionesReales(t *testing.T) {
	srv := functionsServer(t)
	app := proxyApp(srv.URL + "/api")

	status, body := send(t, app, http.MethodGet, "/api/productos", nil)
	require.Equal(t, http.StatusOK, status)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 4)

	status, body = send(t, app, http.MethodGet, "/api/productos/stock-bajo", nil)
	require.Equal(t, http.StatusOK, status)
	list = nil
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "ELEC-002", list[0]["sku"])
	assert.Equal(t, "OFI-001", list[1]["sku"])

	status, _ = send(t, app, http.MethodGet, "/api/bodegas/99", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Direct
// ──────────────────────────────────────────────────────────────────────────────

func TestDirect_ProductosYBodegas(t *testing.T) {
	app := directApp(t)

	status, body := send(t, app, http.MethodGet, "/api/productos/1", nil)
	require.Equal(t, http.StatusOK, status)
	var p map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, "ELEC-001", p["sku"])

	status, body = send(t, app, http.MethodGet, "/api/productos?bodega=2", nil)
	require.Equal(t, http.StatusOK, status)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 2)

	status, body = send(t, app, http.MethodPost, "/api/bodegas", []byte(`{"nombre":"Bodega Sur","capacidad_max":800}`))
	require.Equal(t, http.StatusCreated, status)
	var w map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &w))
	assert.Equal(t, "Bodega Sur", w["nombre"])

	status, body = send(t, app, http.MethodGet, "/api/bodegas/99", nil)
	assert.Equal(t, http.StatusNotFound, status)
	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &env))
	assert.Equal(t, "Bodega no encontrada", env["error"])
}

func TestDirect_StockBajoYHealth(t *testing.T) {
	app := directApp(t)

	status, body := send(t, app, http.MethodGet, "/api/productos/stock-bajo", nil)
	require.Equal(t, http.StatusOK, status)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 2)

	status, body = send(t, app, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, status)
	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &env))
	assert.Equal(t, "direct", env["data"].(map[string]interface{})["mode"])
}

func TestDirect_ValidacionYDuplicado(t *testing.T) {
	app := directApp(t)

	status, _ := send(t, app, http.MethodPost, "/api/productos", []byte(`{"nombre":"sin sku"}`))
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = send(t, app, http.MethodPost, "/api/productos", []byte(`{"sku":"ELEC-001","nombre":"dup"}`))
	assert.Equal(t, http.StatusConflict, status)

	status, _ = send(t, app, http.MethodDelete, "/api/bodegas/1", nil)
	assert.Equal(t, http.StatusConflict, status, "bodega con productos")
}
