package stylistRepo

import (
	"context"
	"fmt"
	"time"

	"quikka/database"
	"quikka/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	dbName          = "quikka"
	stylistCollName = "stylists"
)

// MongoStylistRepo is the MongoDB implementation of StylistRepository.
type MongoStylistRepo struct {
	coll *mongo.Collection
}

func NewMongoStylistRepo() *MongoStylistRepo {
	return &MongoStylistRepo{
		coll: database.MongoClient.Database(dbName).Collection(stylistCollName),
	}
}

func (repo *MongoStylistRepo) Create(ctx context.Context, s *models.Stylist) error {
	existing, err := repo.GetByEmail(ctx, s.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateEmail
	}
	if _, err := repo.coll.InsertOne(ctx, s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create stylist: %w", err)
	}
	return nil
}

func (repo *MongoStylistRepo) GetByID(ctx context.Context, id string) (*models.Stylist, error) {
	return repo.findOne(ctx, bson.M{"id": id})
}

func (repo *MongoStylistRepo) GetByEmail(ctx context.Context, email string) (*models.Stylist, error) {
	return repo.findOne(ctx, bson.M{"email": email})
}

func (repo *MongoStylistRepo) findOne(ctx context.Context, filter bson.M) (*models.Stylist, error) {
	var s models.Stylist
	err := repo.coll.FindOne(ctx, filter).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stylist: %w", err)
	}
	return &s, nil
}

func (repo *MongoStylistRepo) List(ctx context.Context, offset, limit int64) ([]models.Stylist, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(offset).
		SetLimit(limit)
	cur, err := repo.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list stylists: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Stylist
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode stylists: %w", err)
	}
	return out, nil
}

func (repo *MongoStylistRepo) UpdateTokenHash(ctx context.Context, id, tokenHash string) error {
	update := bson.M{"$set": bson.M{"token_hash": tokenHash, "updated_at": time.Now()}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update token hash: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("stylist %s not found", id)
	}
	return nil
}

func (repo *MongoStylistRepo) UpdateServices(ctx context.Context, id string, services []models.ServiceOffering) error {
	update := bson.M{"$set": bson.M{"services": services, "updated_at": time.Now()}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update services: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("stylist %s not found", id)
	}
	return nil
}
