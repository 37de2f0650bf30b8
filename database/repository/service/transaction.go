package serviceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"citizenhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// BatchUpdateStatus applies status to every id inside one transaction.
// The deployment must be a replica set for transactions to be available.
func (r *MongoServiceRepo) BatchUpdateStatus(ctx context.Context, ids []string, status models.ServiceStatus, actor string, now time.Time) error {
	ctx, cancel := newContext(ctx, 15*time.Second)
	defer cancel()

	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer sess.EndSession(ctx)

	set := bson.M{"status": status, "updatedBy": actor, "updatedAt": now}
	update := bson.M{"$set": set}
	if status == models.StatusDeprecated {
		set["deprecatedAt"] = now
	} else {
		update["$unset"] = bson.M{"deprecatedAt": ""}
	}

	txnFn := func(sc mongo.SessionContext) error {
		for _, id := range ids {
			res, err := r.coll.UpdateOne(sc, bson.M{"id": id}, update)
			if err != nil {
				return fmt.Errorf("update %s failed: %w", id, err)
			}
			if res.MatchedCount == 0 {
				return fmt.Errorf("service %s: %w", id, ErrNotFound)
			}
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("batch status transaction failed: %w", err)
	}
	return nil
}
