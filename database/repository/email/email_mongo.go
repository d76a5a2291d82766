package emailRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orgflow/database"
	"orgflow/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrTokenUsed signals that an action token has already been consumed.
var ErrTokenUsed = errors.New("email action token already used")

// MongoTokenRepo implements TokenRepository using MongoDB.
type MongoTokenRepo struct {
	coll *mongo.Collection
}

// NewMongoTokenRepo creates a new TokenRepository backed by MongoDB.
func NewMongoTokenRepo() TokenRepository {
	coll := database.Database().Collection("email_action_tokens")
	repo := &MongoTokenRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "recordType", Value: 1}, {Key: "recordId", Value: 1}}},
	})
	if err != nil {
		fmt.Printf("failed to create email token indexes: %v\n", err)
	}
	return repo
}

// Create inserts a freshly minted token.
func (r *MongoTokenRepo) Create(ctx context.Context, token models.EmailActionToken) error {
	_, err := r.coll.InsertOne(ctx, token)
	return err
}

// GetByToken returns a token row without consuming it.
func (r *MongoTokenRepo) GetByToken(ctx context.Context, token string) (*models.EmailActionToken, error) {
	var t models.EmailActionToken
	if err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Consume atomically flips used on an unused token. The single-document
// FindOneAndUpdate is what makes the token single-use under concurrent
// clicks on the same email link.
func (r *MongoTokenRepo) Consume(ctx context.Context, token string) (*models.EmailActionToken, error) {
	var t models.EmailActionToken
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"token": token, "used": false},
		bson.M{"$set": bson.M{"used": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err == nil {
		return &t, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}
	// Distinguish "already used" from "never existed".
	if _, lookupErr := r.GetByToken(ctx, token); lookupErr == nil {
		return nil, ErrTokenUsed
	}
	return nil, mongo.ErrNoDocuments
}

// MongoLogRepo implements LogRepository using MongoDB.
type MongoLogRepo struct {
	coll *mongo.Collection
}

// NewMongoLogRepo creates a new LogRepository backed by MongoDB.
func NewMongoLogRepo() LogRepository {
	coll := database.Database().Collection("email_logs")
	return &MongoLogRepo{coll: coll}
}

// Append inserts an audit row and returns its ID.
func (r *MongoLogRepo) Append(ctx context.Context, entry models.EmailLog) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.SentAt.IsZero() {
		entry.SentAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return "", err
	}
	return entry.ID, nil
}

// ListByRecord fetches the audit trail for one business record.
func (r *MongoLogRepo) ListByRecord(ctx context.Context, recordType, recordID string) ([]models.EmailLog, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"recordType": recordType, "recordId": recordID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []models.EmailLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
