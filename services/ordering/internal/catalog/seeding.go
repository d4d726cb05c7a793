package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/seed"
	"go.mongodb.org/mongo-driver/mongo"
)

const catalogDemoSeedApplication = "catalog_demo"

// ApplyDemoSeeds loads a small demo catalog covering both orderable
// categories plus one gated-out category so the menu filter is visible.
func ApplyDemoSeeds(ctx context.Context, repo ProductRepo, db *mongo.Database, logger apt.Logger) error {
	if db == nil {
		return errors.New("database is required for demo seeding")
	}

	tracker := seed.NewMongoTracker(db)
	seeds := []seed.Seed{
		{
			ID:          "2026-08-20_demo_products_v1",
			Description: "Seed demo alimentos, bebidas and a gated postres item",
			Run: func(ctx context.Context) error {
				return seedDemoProducts(ctx, repo, logger)
			},
		},
	}

	logger.Info("Applying demo catalog seeds")
	if err := seed.Apply(ctx, tracker, seeds, catalogDemoSeedApplication); err != nil {
		return err
	}
	logger.Info("Demo catalog seeds applied successfully")
	return nil
}

func seedDemoProducts(ctx context.Context, repo ProductRepo, logger apt.Logger) error {
	demo := []struct {
		name        string
		description string
		price       int64
		category    string
		available   bool
	}{
		{"Lomo a lo pobre", "Lomo, papas fritas, huevo frito y cebolla", 8900, "alimentos", true},
		{"Cazuela de vacuno", "", 6500, "alimentos", true},
		{"Empanada de pino", "", 2800, "alimentos", true},
		{"Churrasco italiano", "Palta, tomate y mayonesa", 5400, "alimentos", false},
		{"Jugo natural", "Naranja o frutilla", 2500, "bebidas", true},
		{"Café cortado", "", 1800, "bebidas", true},
		{"Agua mineral", "", 1200, "bebidas", true},
		// Present in the catalog but outside the orderable allow-list.
		{"Torta tres leches", "", 3500, "postres", true},
	}

	for _, d := range demo {
		product := NewProduct()
		product.Name = d.name
		product.Description = d.description
		product.Price = d.price
		product.Category = d.category
		product.Available = d.available
		product.BeforeCreate()

		if err := repo.Create(ctx, product); err != nil {
			return fmt.Errorf("seed product %s: %w", d.name, err)
		}
		logger.Debug("seeded product", "nombre", d.name, "categoria", d.category)
	}

	return nil
}

// DemoSeedingFunc returns an apt lifecycle OnStart-compatible function for demo seeding.
func DemoSeedingFunc(seedCtx context.Context, repo ProductRepo, db *mongo.Database, logger apt.Logger) func(ctx context.Context) error {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	return func(ctx context.Context) error {
		logger.Info("Starting demo catalog seeding in background")
		go func() {
			if err := ApplyDemoSeeds(seedCtx, repo, db, logger); err != nil && !errors.Is(err, context.Canceled) {
				logger.Errorf("demo catalog seeds failed: %v", err)
			} else if err == nil {
				logger.Info("Demo catalog seeding completed")
			}
		}()
		return nil
	}
}
