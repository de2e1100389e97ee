package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-serverless/internal/application/dto"
	"github.com/jhoicas/inventario-serverless/internal/domain"
	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-serverless/internal/domain/inventory"
	"github.com/jhoicas/inventario-serverless/internal/domain/repository"
	"github.com/jhoicas/inventario-serverless/pkg/logger"
)

// RegisterMovementUseCase aplica movimientos de stock (ENTRADA, SALIDA, AJUSTE) de forma
// transaccional: bloqueo de fila (SELECT FOR UPDATE), cálculo, escritura y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	observer MovementObserver
	log      *logger.Logger
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. observer y log pueden ser nil.
func NewRegisterMovementUseCase(txRunner TxRunner, observer MovementObserver, log *logger.Logger) *RegisterMovementUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		observer: observer,
		log:      log.Named("movements"),
		now:      time.Now,
	}
}

// Register valida y aplica un movimiento. authActor es el usuario autenticado (puede ser vacío);
// tiene prioridad sobre el campo usuario del cuerpo.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, in dto.MovementRequest, authActor string) (*dto.MovementResponse, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		uc.observer.ObserveMovement("UNKNOWN", "invalid")
		return nil, err
	}
	kind, err := domaininv.ParseMovementKind(in.Kind)
	if err != nil {
		uc.observer.ObserveMovement("UNKNOWN", "invalid")
		return nil, err
	}
	actor := resolveActor(authActor, in.Actor)
	qty := *in.Quantity

	var (
		product  *productSnapshot
		newStock int
	)
	err = uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository) error {
		p, err := stockRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		next, err := domaininv.ApplyMovement(p.Stock, kind, qty)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				return fmt.Errorf("%w: stock actual %d, cantidad solicitada %d", err, p.Stock, qty)
			}
			return err
		}
		if err := stockRepo.SetStock(ctx, p.ID, next, actor); err != nil {
			return err
		}
		product = &productSnapshot{id: p.ID, sku: p.SKU, stock: p.Stock, min: p.MinStock, max: p.MaxStock}
		newStock = next
		return nil
	})
	if err != nil {
		uc.observer.ObserveMovement(string(kind), movementResult(err))
		uc.log.Warn().Err(err).
			Int64("producto_id", in.ProductID).
			Str("tipo", string(kind)).
			Int("cantidad", qty).
			Msg("movimiento rechazado")
		return nil, err
	}

	out := &dto.MovementResponse{
		ProductID:     product.id,
		SKU:           product.sku,
		Kind:          string(kind),
		Quantity:      qty,
		PreviousStock: product.stock,
		NewStock:      newStock,
		StockStatus:   string(domaininv.Classify(newStock, product.min, product.max)),
		Reason:        in.Reason,
		Actor:         actor,
		Reference:     uuid.NewString(),
		Date:          uc.now().UTC(),
	}
	uc.observer.ObserveMovement(string(kind), "applied")
	uc.log.Info().
		Str("referencia", out.Reference).
		Int64("producto_id", out.ProductID).
		Str("sku", out.SKU).
		Str("tipo", out.Kind).
		Int("cantidad", qty).
		Int("stock_anterior", out.PreviousStock).
		Int("stock_nuevo", out.NewStock).
		Str("usuario", actor).
		Str("motivo", out.Reason).
		Msg("movimiento registrado")
	return out, nil
}

// Adjust fija el stock en un valor absoluto (movimiento AJUSTE).
func (uc *RegisterMovementUseCase) Adjust(ctx context.Context, in dto.AdjustRequest, authActor string) (*dto.MovementResponse, error) {
	if in.NewStock == nil {
		uc.observer.ObserveMovement(string(domaininv.KindAdjust), "invalid")
		return nil, domain.Invalid("nuevo_stock", "es requerido")
	}
	return uc.Register(ctx, in.ToMovement(), authActor)
}

type productSnapshot struct {
	id    int64
	sku   string
	stock int
	min   int
	max   *int
}

func resolveActor(authActor, bodyActor string) string {
	switch {
	case authActor != "":
		return authActor
	case bodyActor != "":
		return bodyActor
	}
	return entity.DefaultActor
}

func movementResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	}
	return "error"
}
