package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ClearDemo removes all demo data from the ordering database
func ClearDemo(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	logger.Info("Starting demo data cleanup...")

	client, err := connect(ctx, config)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	logger.Info("Connected to MongoDB")

	db := client.Database(orderingDatabase)

	for _, name := range []string{"products", "orders"} {
		result, err := db.Collection(name).DeleteMany(ctx, bson.M{"created_by": "demo-seed"})
		if err != nil {
			return fmt.Errorf("clear demo %s: %w", name, err)
		}
		logger.Info("Demo data cleared", "collection", name, "deleted", result.DeletedCount)
	}

	if err := clearSeedMarkers(ctx, db, logger); err != nil {
		return err
	}

	return nil
}

func clearSeedMarkers(ctx context.Context, db *mongo.Database, logger apt.Logger) error {
	seedsCollection := db.Collection("_seeds")
	result, err := seedsCollection.DeleteMany(ctx, bson.M{
		"_id": bson.M{"$in": []string{"demo_products_v1", "demo_orders_v1"}},
	})
	if err != nil {
		return fmt.Errorf("clear seed markers: %w", err)
	}

	logger.Info("Seed markers cleared", "deleted", result.DeletedCount)
	return nil
}
