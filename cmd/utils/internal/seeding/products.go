package seeding

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedProducts creates the demo catalog. Prices are in minor currency units.
func SeedProducts(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection("products")
	now := time.Now()

	products := []struct {
		name        string
		description string
		price       int64
		category    string
		available   bool
	}{
		{"Empanada de pino", "Carne, cebolla, huevo y aceituna", 3200, "alimentos", true},
		{"Completo italiano", "Palta, tomate y mayonesa", 4500, "alimentos", true},
		{"Cazuela de vacuno", "Con papas, zapallo y choclo", 7800, "alimentos", true},
		{"Ensalada chilena", "Tomate y cebolla", 2900, "alimentos", true},
		{"Pastel de choclo", "Con carne y pollo", 8200, "alimentos", false},
		{"Café americano", "", 2500, "bebidas", true},
		{"Jugo natural", "Frutilla, piña o mango", 2800, "bebidas", true},
		{"Agua mineral", "Con o sin gas", 1500, "bebidas", true},
		{"Mote con huesillo", "Receta tradicional", 2200, "bebidas", false},
		{"Torta tres leches", "Porción individual", 4500, "postres", true},
	}

	docs := make([]interface{}, 0, len(products))
	for _, p := range products {
		docs = append(docs, bson.M{
			"_id":         uuid.New(),
			"nombre":      p.name,
			"descripcion": p.description,
			"precio":      p.price,
			"categoria":   p.category,
			"disponible":  p.available,
			"created_at":  now,
			"updated_at":  now,
			"created_by":  "demo-seed",
		})
	}

	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("cannot insert demo products: %w", err)
	}

	return nil
}
