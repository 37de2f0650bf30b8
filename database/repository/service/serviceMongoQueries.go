package serviceRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"citizenhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByIDOrSlug retrieves a service by id or by shortName.
func (r *MongoServiceRepo) GetByIDOrSlug(ctx context.Context, idOrSlug string) (*models.Service, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"$or": []bson.M{
			{"id": strings.TrimSpace(idOrSlug)},
			{"shortName": models.NormalizeSlug(idOrSlug)},
		},
	}
	var svc models.Service
	if err := r.coll.FindOne(ctx, filter).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch service %s: %w", idOrSlug, err)
	}
	return &svc, nil
}

// buildFilter translates f into a Mongo query document.
func buildFilter(f ServiceFilter) bson.M {
	var clauses []bson.M
	if f.Category != "" {
		clauses = append(clauses, bson.M{"category": f.Category})
	}
	if f.Status != "" {
		clauses = append(clauses, bson.M{"status": f.Status})
	}
	if f.Jurisdiction != "" {
		clauses = append(clauses, bson.M{"jurisdiction": f.Jurisdiction})
	}
	if state := strings.TrimSpace(f.State); state != "" {
		clauses = append(clauses, bson.M{"$or": []bson.M{
			{"states": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(state) + "$", Options: "i"}},
			{"jurisdiction": models.JurisdictionCentral},
		}})
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
		or := []bson.M{
			{"shortName": rx},
			{"name." + models.DefaultLanguage: rx},
			{"tags": rx},
		}
		if lang := models.NormalizeLanguage(f.Lang); lang != models.DefaultLanguage {
			or = append(or, bson.M{"name." + lang: rx})
		}
		clauses = append(clauses, bson.M{"$or": or})
	}

	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	default:
		return bson.M{"$and": clauses}
	}
}

// List retrieves one page of services, most recently updated first.
func (r *MongoServiceRepo) List(ctx context.Context, f ServiceFilter) ([]models.Service, int64, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	filter := buildFilter(f)
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count services: %w", err)
	}

	page, limit := f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "id", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	services := []models.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, 0, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, total, nil
}

// CategoryCounts groups services with status by category.
func (r *MongoServiceRepo) CategoryCounts(ctx context.Context, status models.ServiceStatus) (map[models.ServiceCategory]int64, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": status}}},
		{{Key: "$group", Value: bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Category models.ServiceCategory `bson:"_id"`
		Count    int64                  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode category counts: %w", err)
	}
	out := make(map[models.ServiceCategory]int64, len(rows))
	for _, row := range rows {
		out[row.Category] = row.Count
	}
	return out, nil
}
