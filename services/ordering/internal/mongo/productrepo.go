package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/casinoeats/casinoeats/services/ordering/internal/catalog"
)

type ProductRepo struct {
	collection *mongo.Collection
}

func NewProductRepo(db *mongo.Database) *ProductRepo {
	return &ProductRepo{
		collection: db.Collection("products"),
	}
}

func (r *ProductRepo) Create(ctx context.Context, p *catalog.Product) error {
	if p == nil {
		return fmt.Errorf("product is nil")
	}

	if _, err := r.collection.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("cannot create product: %w", err)
	}

	return nil
}

func (r *ProductRepo) Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var p catalog.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]*catalog.Product, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "categoria", Value: 1},
		{Key: "nombre", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot list products: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*catalog.Product
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode products: %w", err)
	}

	return result, nil
}

func (r *ProductRepo) ListByCategories(ctx context.Context, categories []string) ([]*catalog.Product, error) {
	filter := bson.M{"categoria": bson.M{"$in": categories}}
	opts := options.Find().SetSort(bson.D{
		{Key: "categoria", Value: 1},
		{Key: "nombre", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot list products by categories: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*catalog.Product
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode products: %w", err)
	}

	return result, nil
}

func (r *ProductRepo) Save(ctx context.Context, p *catalog.Product) error {
	if p == nil {
		return fmt.Errorf("product is nil")
	}

	filter := bson.M{"_id": p.ID}
	update := bson.M{"$set": p}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("cannot update product: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("product not found")
	}

	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("cannot delete product: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("product not found")
	}

	return nil
}
