package bookingRepo

import (
	"context"
	"fmt"

	"quikka/database"
	"quikka/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	dbName          = "quikka"
	bookingCollName = "bookings"
)

// MongoBookingRepo is the MongoDB implementation of BookingRepository.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a repository backed by the global Mongo client.
func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{
		coll: database.MongoClient.Database(dbName).Collection(bookingCollName),
	}
}

func nonTerminalStatuses() bson.A {
	return bson.A{models.StatusPending, models.StatusConfirmed, models.StatusRescheduleRequested}
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &b, nil
}

func (repo *MongoBookingRepo) GetNonTerminalBookings(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	filter := bson.M{
		"provider_id": providerID,
		"date":        date,
		"status":      bson.M{"$in": nonTerminalStatuses()},
	}
	return repo.findSorted(ctx, filter)
}

func (repo *MongoBookingRepo) ListByProviderDate(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	filter := bson.M{"provider_id": providerID, "date": date}
	return repo.findSorted(ctx, filter)
}

func (repo *MongoBookingRepo) findSorted(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cur, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Booking
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return out, nil
}

// countOverlapping counts non-terminal bookings for (provider, date) whose
// half-open interval intersects [start, end), excluding excludeID if non-empty.
func (repo *MongoBookingRepo) countOverlapping(ctx context.Context, providerID, date string, start, end int, excludeID string) (int64, error) {
	filter := bson.M{
		"provider_id": providerID,
		"date":        date,
		"status":      bson.M{"$in": nonTerminalStatuses()},
		"start":       bson.M{"$lt": end},
		"end":         bson.M{"$gt": start},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return repo.coll.CountDocuments(ctx, filter)
}

func (repo *MongoBookingRepo) CommitTransition(ctx context.Context, target *models.Booking, expected models.BookingStatus) error {
	filter := bson.M{"id": target.ID, "status": expected}
	res, err := repo.coll.ReplaceOne(ctx, filter, target)
	if err != nil {
		return fmt.Errorf("failed to commit booking transition: %w", err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a vanished booking from a lost status race.
		if _, err := repo.GetByID(ctx, target.ID); err != nil {
			return err
		}
		return ErrStaleStatus
	}
	return nil
}
