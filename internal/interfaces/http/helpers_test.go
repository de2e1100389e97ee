package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-serverless/internal/application/inventory"
	"github.com/jhoicas/inventario-serverless/internal/application/usecase"
	"github.com/jhoicas/inventario-serverless/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-serverless/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/inventario-serverless/internal/interfaces/http"
	"github.com/jhoicas/inventario-serverless/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "inventario-test"
	testExpMin    = 60
)

// buildApp construye la API de funciones sobre el store en memoria con datos de demostración.
// jwtSecret vacío = API anónima.
func buildApp(t *testing.T, jwtSecret string) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, memory.Seed(context.Background(), store))

	products := memory.NewProductRepository(store)
	metrics := apphttp.NewMetrics("inventario")
	log := logger.Nop()

	app := apphttp.NewApp(apphttp.AppConfig{Name: "test", Logger: log, Metrics: metrics})
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:        usecase.NewProductUseCase(products, log),
		CategoryUC:       usecase.NewCategoryUseCase(memory.NewCategoryRepository(store)),
		WarehouseUC:      usecase.NewWarehouseUseCase(memory.NewWarehouseRepository(store)),
		RegisterMovement: inventory.NewRegisterMovementUseCase(memory.NewTxRunner(store), metrics, log),
		InventoryQuery:   inventory.NewQueryUseCase(products, pdf.NewReportPDFGenerator("test")),
		JWTSecret:        jwtSecret,
		Logger:           log,
		Service:          "test",
		Store:            "memory",
	})
	return app
}

// do lanza una petición; body puede ser nil, []byte o un valor serializable a JSON.
func do(t *testing.T, app *fiber.App, method, target string, body interface{}, headers ...string) *http.Response {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// envelope decodifica el cuerpo como envelope genérico.
func envelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func dataMap(t *testing.T, env map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := env["data"].(map[string]interface{})
	require.True(t, ok, "data debe ser un objeto: %v", env["data"])
	return data
}

func dataList(t *testing.T, env map[string]interface{}) []interface{} {
	t.Helper()
	data, ok := env["data"].([]interface{})
	require.True(t, ok, "data debe ser una lista: %v", env["data"])
	return data
}
