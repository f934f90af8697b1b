package bookingRepo

import (
	"context"
	"fmt"

	"quikka/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// withTransaction runs fn inside a Mongo session transaction on the booking
// collection's client.
func (repo *MongoBookingRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

func (repo *MongoBookingRepo) CreateIfFree(ctx context.Context, b *models.Booking) error {
	return repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		n, err := repo.countOverlapping(sc, b.ProviderID, b.Date, b.Start, b.End, "")
		if err != nil {
			return fmt.Errorf("overlap re-check failed: %w", err)
		}
		if n > 0 {
			return ErrConflict
		}
		if _, err := repo.coll.InsertOne(sc, b); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	})
}

func (repo *MongoBookingRepo) CommitTransitionIfFree(ctx context.Context, target *models.Booking, expected models.BookingStatus) error {
	return repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		n, err := repo.countOverlapping(sc, target.ProviderID, target.Date, target.Start, target.End, target.ID)
		if err != nil {
			return fmt.Errorf("overlap re-check failed: %w", err)
		}
		if n > 0 {
			return ErrConflict
		}
		filter := bson.M{"id": target.ID, "status": expected}
		res, err := repo.coll.ReplaceOne(sc, filter, target)
		if err != nil {
			return fmt.Errorf("guarded replace failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrStaleStatus
		}
		return nil
	})
}
