package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/inventario-serverless/pkg/jwt"
)

// bearer genera un JWT válido para el usuario indicado.
func bearer(t *testing.T, subject, name string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, subject, name, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// Sin secreto configurado la API es anónima.
func TestAuth_SinSecretoEsAnonima(t *testing.T) {
	app := buildApp(t, "")

	resp := do(t, app, http.MethodPost, "/api/categories", map[string]interface{}{"nombre": "Libre"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

// Las lecturas no exigen token aunque haya secreto.
func TestAuth_LecturaSinToken(t *testing.T) {
	app := buildApp(t, testJWTSecret)

	resp := do(t, app, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuth_EscrituraSinTokenEs401(t *testing.T) {
	app := buildApp(t, testJWTSecret)

	resp := do(t, app, http.MethodPost, "/api/categories", map[string]interface{}{"nombre": "X"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	env := envelope(t, resp)
	assert.Equal(t, false, env["success"])
	assert.EqualValues(t, 401, env["status"])
}

func TestAuth_FormatoInvalido(t *testing.T) {
	app := buildApp(t, testJWTSecret)

	cases := map[string]string{
		"sin Bearer":   "Token abc",
		"token vacío":  "Bearer ",
		"token basura": "Bearer no.es.jwt",
		"otro secreto": "Bearer eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiJ4In0.invalid",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			resp := do(t, app, http.MethodDelete, "/api/products?id=1", nil, "Authorization", header)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestAuth_TokenValidoRegistraActor(t *testing.T) {
	app := buildApp(t, testJWTSecret)
	auth := bearer(t, "u-1", "María")

	resp := do(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"sku": "AUTH-1", "nombre": "Con auditoría", "stock": 5,
	}, "Authorization", auth)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := dataMap(t, envelope(t, resp))
	assert.Equal(t, "María", created["creado_por"])

	// El usuario autenticado prevalece sobre el del cuerpo.
	resp = do(t, app, http.MethodPost, "/api/inventory/movement", map[string]interface{}{
		"producto_id": created["id"], "tipo_movimiento": "IN", "cantidad": 1, "usuario": "otro",
	}, "Authorization", auth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "María", dataMap(t, envelope(t, resp))["usuario"])
}

func TestAuth_SubjectComoActorSinNombre(t *testing.T) {
	app := buildApp(t, testJWTSecret)

	resp := do(t, app, http.MethodPut, "/api/inventory/adjust", map[string]interface{}{
		"producto_id": 1, "nuevo_stock": 7,
	}, "Authorization", bearer(t, "svc-bodega", ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "svc-bodega", dataMap(t, envelope(t, resp))["usuario"])
}
