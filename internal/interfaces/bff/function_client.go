package bff

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/inventario-serverless/internal/application/dto"
	"github.com/jhoicas/inventario-serverless/pkg/config"
	"github.com/jhoicas/inventario-serverless/pkg/logger"
)

// maxResponseBytes límite de lectura de respuestas de funciones.
const maxResponseBytes = 8 << 20

var _ Backend = (*FunctionClient)(nil)

// FunctionClient reenvía peticiones del gateway a la API de funciones por HTTP.
// Sin reintentos ni caché.
type FunctionClient struct {
	client *http.Client
	bases  map[Resource]string
	log    *logger.Logger
}

// NewFunctionClient construye el cliente con las URLs base por recurso y el timeout de config.
func NewFunctionClient(cfg config.BFFConfig, log *logger.Logger) *FunctionClient {
	if log == nil {
		log = logger.Nop()
	}
	return &FunctionClient{
		client: &http.Client{Timeout: cfg.Timeout},
		bases: map[Resource]string{
			ResourceProducts:   cfg.ProductBaseURL + "/products",
			ResourceWarehouses: cfg.WarehouseBaseURL + "/warehouses",
		},
		log: log,
	}
}

// Do implementa Backend.
func (f *FunctionClient) Do(ctx context.Context, req Request) (*Result, error) {
	if req.Resource == ResourceLowStock {
		return f.lowStock(ctx, req)
	}
	target, err := f.targetURL(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("bff: crear petición: %w", err)
	}
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	} else if len(req.Body) > 0 {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Authorization != "" {
		httpReq.Header.Set("Authorization", req.Authorization)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("bff: %s %s: %w", req.Method, target, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("bff: leer respuesta de %s: %w", target, err)
	}

	f.log.Debug().
		Str("method", req.Method).
		Str("target", target).
		Int("status", resp.StatusCode).
		Msg("función invocada")

	var env dto.RawEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("bff: respuesta no JSON de %s (status %d): %w", target, resp.StatusCode, err)
	}
	if resp.StatusCode < http.StatusBadRequest && env.Success {
		data := []byte(env.Data)
		if len(data) == 0 {
			data = []byte("null")
		}
		return &Result{Status: resp.StatusCode, Body: data}, nil
	}
	return &Result{Status: resp.StatusCode, Body: raw}, nil
}

// lowStock lista productos en la función y conserva los de stock bajo o sin stock.
func (f *FunctionClient) lowStock(ctx context.Context, req Request) (*Result, error) {
	res, err := f.Do(ctx, Request{
		Resource:      ResourceProducts,
		Method:        http.MethodGet,
		Authorization: req.Authorization,
	})
	if err != nil || res.Status >= http.StatusBadRequest {
		return res, err
	}
	var items []dto.ProductResponse
	if err := json.Unmarshal(res.Body, &items); err != nil {
		return nil, fmt.Errorf("bff: decodificar productos: %w", err)
	}
	low := make([]dto.ProductResponse, 0, len(items))
	for _, p := range items {
		if isLowStock(p) {
			low = append(low, p)
		}
	}
	body, err := json.Marshal(low)
	if err != nil {
		return nil, err
	}
	return &Result{Status: http.StatusOK, Body: body}, nil
}

// targetURL traduce /api/productos/7 a {base}/products?id=7 y conserva los filtros.
func (f *FunctionClient) targetURL(req Request) (string, error) {
	base, ok := f.bases[req.Resource]
	if !ok {
		return "", fmt.Errorf("bff: recurso desconocido %q", req.Resource)
	}
	q := url.Values{}
	for k, v := range req.Query {
		if k != "id" {
			q[k] = v
		}
	}
	if req.ID > 0 {
		q.Set("id", strconv.FormatInt(req.ID, 10))
	}
	if len(q) == 0 {
		return base, nil
	}
	return base + "?" + q.Encode(), nil
}
