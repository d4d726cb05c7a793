package seeding

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedOrders creates demo orders spread across the status pipeline so the
// staff board has something to show right away.
func SeedOrders(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection("orders")
	now := time.Now()

	line := func(name string, price int64, qty int) bson.M {
		return bson.M{
			"id":       uuid.New(),
			"name":     name,
			"price":    price,
			"quantity": qty,
		}
	}

	deliveredAt := now.Add(-10 * time.Minute)

	orders := []bson.M{
		{
			"_id":         uuid.New(),
			"numero_mesa": 12,
			"productos": bson.A{
				line("Empanada de pino", 3200, 2),
				line("Café americano", 2500, 2),
			},
			"total":        11400,
			"estado":       "Pendiente",
			"nota":         "Sin aceitunas",
			"fecha_pedido": now.Add(-5 * time.Minute),
			"created_at":   now.Add(-5 * time.Minute),
			"updated_at":   now.Add(-5 * time.Minute),
			"created_by":   "demo-seed",
		},
		{
			"_id":         uuid.New(),
			"numero_mesa": 47,
			"productos": bson.A{
				line("Cazuela de vacuno", 7800, 1),
				line("Jugo natural", 2800, 1),
			},
			"total":        10600,
			"estado":       "En Preparación",
			"fecha_pedido": now.Add(-18 * time.Minute),
			"created_at":   now.Add(-18 * time.Minute),
			"updated_at":   now.Add(-12 * time.Minute),
			"created_by":   "demo-seed",
		},
		{
			"_id":         uuid.New(),
			"numero_mesa": 103,
			"productos": bson.A{
				line("Completo italiano", 4500, 3),
			},
			"total":        13500,
			"estado":       "Preparado",
			"fecha_pedido": now.Add(-25 * time.Minute),
			"created_at":   now.Add(-25 * time.Minute),
			"updated_at":   now.Add(-8 * time.Minute),
			"created_by":   "demo-seed",
		},
		{
			"_id":         uuid.New(),
			"numero_mesa": 250,
			"productos": bson.A{
				line("Ensalada chilena", 2900, 1),
				line("Agua mineral", 1500, 2),
			},
			"total":           5900,
			"estado":          "Entregado",
			"fecha_pedido":    now.Add(-55 * time.Minute),
			"fecha_entregado": deliveredAt,
			"created_at":      now.Add(-55 * time.Minute),
			"updated_at":      deliveredAt,
			"created_by":      "demo-seed",
		},
	}

	docs := make([]interface{}, len(orders))
	for i, o := range orders {
		docs[i] = o
	}

	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("cannot insert demo orders: %w", err)
	}

	return nil
}
