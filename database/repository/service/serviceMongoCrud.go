package serviceRepo

import (
	"context"
	"fmt"
	"time"

	"citizenhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new service document.
func (r *MongoServiceRepo) Create(ctx context.Context, svc *models.Service) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, svc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

// Replace overwrites the stored service. Stats are owned by the review
// worker and are never overwritten here.
func (r *MongoServiceRepo) Replace(ctx context.Context, svc *models.Service) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	doc, err := toDocument(svc)
	if err != nil {
		return err
	}
	delete(doc, "_id")
	delete(doc, "stats")

	update := bson.M{"$set": doc}
	if svc.DeprecatedAt == nil {
		delete(doc, "deprecatedAt")
		update["$unset"] = bson.M{"deprecatedAt": ""}
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": svc.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update service with id %s: %w", svc.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a service document by its ID.
func (r *MongoServiceRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete service with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViews bumps stats.views by one.
func (r *MongoServiceRepo) IncrementViews(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 2*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"stats.views": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment views for %s: %w", id, err)
	}
	return nil
}

// UpdateStats stores review statistics without touching the view counter.
func (r *MongoServiceRepo) UpdateStats(ctx context.Context, id string, averageRating float64, reviewCount int64) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"stats.averageRating": averageRating,
		"stats.reviewCount":   reviewCount,
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update stats for %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func toDocument(svc *models.Service) (bson.M, error) {
	raw, err := bson.Marshal(svc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode service %s: %w", svc.ID, err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to encode service %s: %w", svc.ID, err)
	}
	return doc, nil
}
