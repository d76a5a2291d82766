package notificationRepo

import (
	"context"
	"errors"
	"time"

	"orgflow/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new notification and returns its ID.
func (r *MongoNotificationRepo) Create(ctx context.Context, n models.Notification) (string, error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Status == "" {
		n.Status = models.NotificationStatusPending
	}
	n.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return "", err
	}
	return n.ID, nil
}

// GetByID returns a notification by its ID.
func (r *MongoNotificationRepo) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	var n models.Notification
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ListByUser fetches the recipient's notifications, newest first.
func (r *MongoNotificationRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadCount counts the recipient's unread notifications.
func (r *MongoNotificationRepo) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"userId": userID, "isRead": false})
}

// MarkRead flips isRead on a single notification owned by userID.
func (r *MongoNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "userId": userID},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("notification not found")
	}
	return nil
}

// MarkAllRead flips isRead on every unread notification of the recipient.
func (r *MongoNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"userId": userID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	return err
}

// MarkActioned transitions a notification's status to actioned.
func (r *MongoNotificationRepo) MarkActioned(ctx context.Context, id, userID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "userId": userID},
		bson.M{"$set": bson.M{"status": models.NotificationStatusActioned}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("notification not found")
	}
	return nil
}

// MarkActionedByReference actions every pending notification that points at
// the given business record. Used when an approver acts so stale approval
// requests stop showing as pending.
func (r *MongoNotificationRepo) MarkActionedByReference(ctx context.Context, referenceType, referenceID string) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{
			"referenceType": referenceType,
			"referenceId":   referenceID,
			"status":        models.NotificationStatusPending,
		},
		bson.M{"$set": bson.M{"status": models.NotificationStatusActioned}},
	)
	return err
}
