package serviceRepo

import (
	"context"
	"fmt"
	"time"

	"citizenhub/database"
	"citizenhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoServiceRepo creates a ServiceRepository on the global client.
func NewMongoServiceRepo() ServiceRepository {
	repo := &MongoServiceRepo{
		client: database.MongoClient,
		coll:   database.Database().Collection("services"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("service indexes not created", zap.Error(err))
	}
	return repo
}

// newContext bounds parent with timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoServiceRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "shortName", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "states", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
