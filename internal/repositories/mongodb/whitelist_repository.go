package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ArowuTest/voting-whitelist-loader/internal/models"
	"github.com/ArowuTest/voting-whitelist-loader/internal/repositories"
	"github.com/ArowuTest/voting-whitelist-loader/internal/utils"
)

// AadhaarIndexName is the name of the unique index on aadhaarNumber.
const AadhaarIndexName = "aadhaarNumber_1"

// WhitelistRepository implements the repositories.WhitelistRepository interface
type WhitelistRepository struct {
	collection *mongo.Collection
}

// NewWhitelistRepository creates a new WhitelistRepository
func NewWhitelistRepository(db *mongo.Database, collection string) repositories.WhitelistRepository {
	return &WhitelistRepository{
		collection: db.Collection(collection),
	}
}

// EnsureIndexes creates the unique aadhaarNumber index. Creating an index
// that already exists with the same options is a no-op on the server.
func (r *WhitelistRepository) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "aadhaarNumber", Value: 1}},
		Options: options.Index().SetName(AadhaarIndexName).SetUnique(true),
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, model); err != nil {
		return errors.Wrap(err, "failed to create aadhaarNumber index")
	}
	return nil
}

// InsertIfAbsent upserts with $setOnInsert only, so an existing document
// is matched and left untouched. A duplicate key error means a concurrent
// writer inserted the same number first and is reported as not inserted.
func (r *WhitelistRepository) InsertIfAbsent(ctx context.Context, entry *models.WhitelistEntry) (bool, error) {
	if err := utils.ValidateStruct(entry); err != nil {
		return false, errors.Wrap(err, "invalid whitelist entry")
	}

	filter := bson.M{"aadhaarNumber": entry.AadhaarNumber}
	update := bson.M{
		"$setOnInsert": bson.M{
			"aadhaarNumber": entry.AadhaarNumber,
			"isUsed":        entry.IsUsed,
			"createdAt":     entry.CreatedAt,
			"updatedAt":     entry.UpdatedAt,
		},
	}
	opts := options.Update().SetUpsert(true)

	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to upsert aadhaar number %s", entry.AadhaarNumber)
	}
	return result.UpsertedCount > 0 || result.UpsertedID != nil, nil
}

// FindByAadhaar finds a whitelist entry by Aadhaar number
func (r *WhitelistRepository) FindByAadhaar(ctx context.Context, aadhaarNumber string) (*models.WhitelistEntry, error) {
	var entry models.WhitelistEntry
	err := r.collection.FindOne(ctx, bson.M{"aadhaarNumber": aadhaarNumber}).Decode(&entry)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find aadhaar number %s", aadhaarNumber)
	}
	return &entry, nil
}

// Count counts all whitelist entries
func (r *WhitelistRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
