package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-serverless/internal/application/inventory"
	"github.com/jhoicas/inventario-serverless/internal/domain"
	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
	"github.com/jhoicas/inventario-serverless/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones de stock en memoria: bloqueo por producto y escrituras
// diferidas que solo se aplican si fn termina sin error.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) Run(ctx context.Context, fn func(stockRepo repository.StockRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &stockTx{s: r.s, locked: make(map[int64]*sync.Mutex), staged: make(map[int64]stagedStock)}
	defer tx.release()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit()
}

type stagedStock struct {
	stock int
	actor string
}

type stockTx struct {
	s      *Store
	locked map[int64]*sync.Mutex
	staged map[int64]stagedStock
}

var _ repository.StockRepository = (*stockTx)(nil)

func (t *stockTx) GetForUpdate(ctx context.Context, productID int64) (*entity.Product, error) {
	if _, ok := t.locked[productID]; !ok {
		l := t.s.rowLock(productID)
		l.Lock()
		t.locked[productID] = l
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.s.mu.RLock()
	p, ok := t.s.products[productID]
	var cp *entity.Product
	if ok {
		cp = cloneProduct(p)
	}
	t.s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	if st, ok := t.staged[productID]; ok {
		cp.Stock = st.stock
	}
	return cp, nil
}

func (t *stockTx) SetStock(_ context.Context, productID int64, stock int, actor string) error {
	if _, ok := t.locked[productID]; !ok {
		return domain.ErrConflict
	}
	t.staged[productID] = stagedStock{stock: stock, actor: actor}
	return nil
}

func (t *stockTx) commit() error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for id := range t.staged {
		if _, ok := t.s.products[id]; !ok {
			return domain.ErrNotFound
		}
	}
	now := t.s.now()
	for id, st := range t.staged {
		p := t.s.products[id]
		p.Stock = st.stock
		p.UpdatedBy = st.actor
		p.UpdatedAt = now
	}
	return nil
}

func (t *stockTx) release() {
	for _, l := range t.locked {
		l.Unlock()
	}
}
