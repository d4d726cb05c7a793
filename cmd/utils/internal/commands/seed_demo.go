package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/casinoeats/casinoeats/cmd/utils/internal/seeding"
)

const orderingDatabase = "casinoeats_ordering"

// SeedDemo applies demo seeding to the ordering database
func SeedDemo(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	logger.Info("Starting demo seeding process...")

	client, err := connect(ctx, config)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	logger.Info("Connected to MongoDB")

	db := client.Database(orderingDatabase)

	if err := seedProductsDemo(ctx, db, logger); err != nil {
		return fmt.Errorf("seed products demo: %w", err)
	}

	if err := seedOrdersDemo(ctx, db, logger); err != nil {
		return fmt.Errorf("seed orders demo: %w", err)
	}

	return nil
}

func seedProductsDemo(ctx context.Context, db *mongo.Database, logger apt.Logger) error {
	seedsCollection := db.Collection("_seeds")
	count, err := seedsCollection.CountDocuments(ctx, bson.M{"_id": "demo_products_v1"})
	if err != nil {
		return fmt.Errorf("check seed status: %w", err)
	}

	if count > 0 {
		logger.Info("Product demo seeds already applied, skipping")
		return nil
	}

	if err := seeding.SeedProducts(ctx, db); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	_, err = seedsCollection.InsertOne(ctx, bson.M{
		"_id":         "demo_products_v1",
		"description": "Create demo catalog products across allowed and gated categories",
		"applied_at":  bson.M{"$currentDate": bson.M{"$type": "timestamp"}},
	})
	if err != nil {
		logger.Infof("⚠️  Failed to mark seed as applied: %v", err)
	}

	logger.Info("Product demo seeds applied successfully")
	return nil
}

func seedOrdersDemo(ctx context.Context, db *mongo.Database, logger apt.Logger) error {
	seedsCollection := db.Collection("_seeds")
	count, err := seedsCollection.CountDocuments(ctx, bson.M{"_id": "demo_orders_v1"})
	if err != nil {
		return fmt.Errorf("check seed status: %w", err)
	}

	if count > 0 {
		logger.Info("Order demo seeds already applied, skipping")
		return nil
	}

	if err := seeding.SeedOrders(ctx, db); err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}

	_, err = seedsCollection.InsertOne(ctx, bson.M{
		"_id":         "demo_orders_v1",
		"description": "Create demo orders spread across the status pipeline",
		"applied_at":  bson.M{"$currentDate": bson.M{"$type": "timestamp"}},
	})
	if err != nil {
		logger.Infof("⚠️  Failed to mark seed as applied: %v", err)
	}

	logger.Info("Order demo seeds applied successfully")
	return nil
}

func connect(ctx context.Context, config *apt.Config) (*mongo.Client, error) {
	mongoURL, _ := config.GetString("mongo.url")
	if mongoURL == "" {
		mongoURL = "mongodb://localhost:27017"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return client, nil
}
