// Package storage abre el backend de persistencia configurado (PostgreSQL o memoria).
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-serverless/internal/application/inventory"
	"github.com/jhoicas/inventario-serverless/internal/domain/repository"
	"github.com/jhoicas/inventario-serverless/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-serverless/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-serverless/pkg/config"
	"github.com/jhoicas/inventario-serverless/pkg/logger"
)

// Repositories puertos de persistencia listos para inyectar en los casos de uso.
type Repositories struct {
	Driver     string
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Warehouses repository.WarehouseRepository
	TxRunner   inventory.TxRunner

	ping  func(ctx context.Context) error
	close func()
}

// Ping verifica la conexión con el almacenamiento.
func (r *Repositories) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}

// Close libera conexiones.
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open crea los repositorios según cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Repositories, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		store := memory.NewStore()
		if cfg.Store.Seed {
			if err := memory.Seed(ctx, store); err != nil {
				return nil, fmt.Errorf("storage: seed: %w", err)
			}
			log.Info().Msg("store en memoria con datos de demostración")
		}
		return &Repositories{
			Driver:     config.StoreDriverMemory,
			Products:   memory.NewProductRepository(store),
			Categories: memory.NewCategoryRepository(store),
			Warehouses: memory.NewWarehouseRepository(store),
			TxRunner:   memory.NewTxRunner(store),
		}, nil

	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("storage: conexión a PostgreSQL: %w", err)
		}
		log.Info().Int("max_conns", cfg.DB.MaxConns).Msg("conectado a PostgreSQL")
		return &Repositories{
			Driver:     config.StoreDriverPostgres,
			Products:   postgres.NewProductRepository(pool),
			Categories: postgres.NewCategoryRepository(pool),
			Warehouses: postgres.NewWarehouseRepository(pool),
			TxRunner:   postgres.NewTxRunner(pool),
			ping:       pool.Ping,
			close:      pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Store.Driver)
}
