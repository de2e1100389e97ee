package bff

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jhoicas/inventario-serverless/internal/application/dto"
	"github.com/jhoicas/inventario-serverless/internal/application/usecase"
	"github.com/jhoicas/inventario-serverless/internal/domain"
	"github.com/jhoicas/inventario-serverless/internal/domain/repository"
	apphttp "github.com/jhoicas/inventario-serverless/internal/interfaces/http"
	"github.com/jhoicas/inventario-serverless/pkg/logger"
)

var _ Backend = (*DirectBackend)(nil)

// DirectBackend resuelve las rutas del gateway con los casos de uso sobre el store configurado.
type DirectBackend struct {
	products     *usecase.ProductUseCase
	warehouses   *usecase.WarehouseUseCase
	log          *logger.Logger
	exposeErrors bool
}

// NewDirectBackend construye el backend en proceso.
func NewDirectBackend(products *usecase.ProductUseCase, warehouses *usecase.WarehouseUseCase, log *logger.Logger, exposeErrors bool) *DirectBackend {
	if log == nil {
		log = logger.Nop()
	}
	return &DirectBackend{products: products, warehouses: warehouses, log: log, exposeErrors: exposeErrors}
}

// Do implementa Backend. Nunca devuelve error de transporte.
func (d *DirectBackend) Do(ctx context.Context, req Request) (*Result, error) {
	var (
		data   interface{}
		status = http.StatusOK
		err    error
	)
	switch req.Resource {
	case ResourceProducts:
		data, status, err = d.product(ctx, req)
	case ResourceWarehouses:
		data, status, err = d.warehouse(ctx, req)
	case ResourceLowStock:
		data, err = d.products.LowStock(ctx)
	default:
		err = domain.Invalid("recurso", "desconocido")
	}
	if err != nil {
		return d.errorResult(req, err), nil
	}
	body, err := json.Marshal(data)
	if err != nil {
		return d.errorResult(req, err), nil
	}
	return &Result{Status: status, Body: body}, nil
}

func (d *DirectBackend) product(ctx context.Context, req Request) (interface{}, int, error) {
	switch req.Method {
	case http.MethodGet:
		if req.ID > 0 {
			out, err := d.products.GetByID(ctx, req.ID)
			return out, http.StatusOK, err
		}
		filter := repository.ProductFilter{Status: req.Query.Get("estado"), NameLike: req.Query.Get("nombre")}
		var err error
		if filter.CategoryID, err = queryInt64(req, "categoria"); err != nil {
			return nil, 0, err
		}
		if filter.WarehouseID, err = queryInt64(req, "bodega"); err != nil {
			return nil, 0, err
		}
		out, err := d.products.List(ctx, filter)
		return out, http.StatusOK, err
	case http.MethodPost:
		var in dto.ProductRequest
		if err := decode(req.Body, &in); err != nil {
			return nil, 0, err
		}
		out, err := d.products.Create(ctx, in, req.Actor)
		return out, http.StatusCreated, err
	case http.MethodPut:
		var in dto.ProductRequest
		if err := decode(req.Body, &in); err != nil {
			return nil, 0, err
		}
		out, err := d.products.Update(ctx, req.ID, in, req.Actor)
		return out, http.StatusOK, err
	case http.MethodDelete:
		if err := d.products.Delete(ctx, req.ID); err != nil {
			return nil, 0, err
		}
		return map[string]int64{"id": req.ID}, http.StatusOK, nil
	}
	return nil, 0, errMethod
}

func (d *DirectBackend) warehouse(ctx context.Context, req Request) (interface{}, int, error) {
	switch req.Method {
	case http.MethodGet:
		if req.ID > 0 {
			out, err := d.warehouses.GetByID(ctx, req.ID)
			return out, http.StatusOK, err
		}
		filter := repository.WarehouseFilter{Status: req.Query.Get("estado")}
		if raw := req.Query.Get("capacidad_min"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				return nil, 0, domain.Invalid("capacidad_min", "debe ser un entero no negativo")
			}
			filter.MinCapacity = n
		}
		out, err := d.warehouses.List(ctx, filter)
		return out, http.StatusOK, err
	case http.MethodPost:
		var in dto.WarehouseRequest
		if err := decode(req.Body, &in); err != nil {
			return nil, 0, err
		}
		out, err := d.warehouses.Create(ctx, in)
		return out, http.StatusCreated, err
	case http.MethodPut:
		var in dto.WarehouseRequest
		if err := decode(req.Body, &in); err != nil {
			return nil, 0, err
		}
		out, err := d.warehouses.Update(ctx, req.ID, in)
		return out, http.StatusOK, err
	case http.MethodDelete:
		if err := d.warehouses.Delete(ctx, req.ID); err != nil {
			return nil, 0, err
		}
		return map[string]int64{"id": req.ID}, http.StatusOK, nil
	}
	return nil, 0, errMethod
}

var errMethod = errors.New("método no soportado")

func (d *DirectBackend) errorResult(req Request, err error) *Result {
	status := apphttp.StatusFor(err)
	if errors.Is(err, errMethod) {
		status = http.StatusMethodNotAllowed
	}
	msg := err.Error()
	switch {
	case status == http.StatusNotFound && req.Resource == ResourceWarehouses:
		msg = "Bodega no encontrada"
	case status == http.StatusNotFound:
		msg = "Producto no encontrado"
	case status >= http.StatusInternalServerError:
		d.log.Error().Err(err).Str("resource", string(req.Resource)).Str("method", req.Method).Msg("error en modo direct")
		if !d.exposeErrors {
			msg = "error interno"
		}
	}
	body, _ := json.Marshal(dto.Fail(status, msg, ""))
	return &Result{Status: status, Body: body}
}

func decode(body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return domain.Invalid("", "cuerpo JSON inválido")
	}
	return nil
}

func queryInt64(req Request, key string) (int64, error) {
	raw := req.Query.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, domain.Invalid(key, "identificador inválido")
	}
	return n, nil
}
