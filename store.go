package main

import (
	"context"
	"errors"

	appCustomer "github.com/Zhima-Mochi/minishop-checkout/internal/application/customer"
	"github.com/Zhima-Mochi/minishop-checkout/internal/config"
	domainCustomer "github.com/Zhima-Mochi/minishop-checkout/internal/domain/customer"
	domainOrder "github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
	domainProduct "github.com/Zhima-Mochi/minishop-checkout/internal/domain/product"
	"github.com/Zhima-Mochi/minishop-checkout/internal/infrastructure/memory"
	"github.com/Zhima-Mochi/minishop-checkout/internal/infrastructure/persistence/gormstore"
	"go.uber.org/zap"
)

type store struct {
	orders    domainOrder.Repository
	customers domainCustomer.Repository
	products  domainProduct.Repository
	close     func() error
}

// openStore picks the repository backend named by cfg.DB.Driver and migrates SQL schemas.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (*store, error) {
	if cfg.DB.Driver == config.DriverMemory {
		return &store{
			orders:    memory.NewOrderRepository(),
			customers: memory.NewCustomerRepository(),
			products:  memory.NewProductRepository(),
			close:     func() error { return nil },
		}, nil
	}

	db, err := gormstore.Open(gormstore.Config{
		Driver:   cfg.DB.Driver,
		DSN:      cfg.DB.DSN,
		LogLevel: cfg.DB.LogLevel,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	if err := gormstore.Migrate(ctx, db); err != nil {
		_ = gormstore.Close(db)
		return nil, err
	}
	return &store{
		orders:    gormstore.NewOrderRepository(db),
		customers: gormstore.NewCustomerRepository(db),
		products:  gormstore.NewProductRepository(db),
		close:     func() error { return gormstore.Close(db) },
	}, nil
}

// seedDemo stores the sample activated customer. An existing record is left as is.
func seedDemo(ctx context.Context, customers *appCustomer.Service) error {
	_, err := customers.Create(ctx, appCustomer.CreateInput{
		ID:   "123",
		Name: "Wesley Willians",
		Address: &appCustomer.AddressInput{
			Street: "Rua dois",
			Number: 2,
			Zip:    "12345-678",
			City:   "São Paulo",
		},
		Activate: true,
	})
	if errors.Is(err, domainCustomer.ErrConflict) {
		return nil
	}
	return err
}
