package availabilityRepo

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
	dbName       = "quikka"
	ruleCollName = "availability_rules"
)

// MongoAvailabilityRepo is the MongoDB implementation of AvailabilityRepository.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

func NewMongoAvailabilityRepo() *MongoAvailabilityRepo {
	return &MongoAvailabilityRepo{
		coll: database.MongoClient.Database(dbName).Collection(ruleCollName),
	}
}

func (repo *MongoAvailabilityRepo) GetRule(ctx context.Context, providerID string) (*models.AvailabilityRule, error) {
	var rule models.AvailabilityRule
	err := repo.coll.FindOne(ctx, bson.M{"provider_id": providerID}).Decode(&rule)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability rule for %s: %w", providerID, err)
	}
	return &rule, nil
}

func (repo *MongoAvailabilityRepo) UpsertRule(ctx context.Context, rule *models.AvailabilityRule) error {
	rule.UpdatedAt = time.Now()
	filter := bson.M{"provider_id": rule.ProviderID}
	opts := options.Replace().SetUpsert(true)
	if _, err := repo.coll.ReplaceOne(ctx, filter, rule, opts); err != nil {
		return fmt.Errorf("failed to upsert availability rule: %w", err)
	}
	return nil
}

func (repo *MongoAvailabilityRepo) SetOverride(ctx context.Context, providerID, date string, ov *models.DateOverride) error {
	filter := bson.M{"provider_id": providerID}
	field := "overrides." + date
	var update bson.M
	if ov == nil {
		update = bson.M{
			"$unset": bson.M{field: ""},
			"$set":   bson.M{"updated_at": time.Now()},
		}
	} else {
		update = bson.M{
			"$set": bson.M{field: ov, "updated_at": time.Now()},
		}
	}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set availability override: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("no availability rule found for provider %s", providerID)
	}
	return nil
}
