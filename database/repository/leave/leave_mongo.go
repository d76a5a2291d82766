package leaveRepo

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

// ErrStatusConflict signals that the record was not in the expected status
// when a transition was attempted.
var ErrStatusConflict = errors.New("leave request not in expected status")

// MongoLeaveRepo implements LeaveRepository using MongoDB.
type MongoLeaveRepo struct {
	coll *mongo.Collection
}

// NewMongoLeaveRepo creates a new LeaveRepository backed by MongoDB.
func NewMongoLeaveRepo() LeaveRepository {
	coll := database.Database().Collection("leave_requests")
	repo := &MongoLeaveRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "employeeId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "approverId", Value: 1}, {Key: "status", Value: 1}}},
	})
	if err != nil {
		fmt.Printf("failed to create leave request indexes: %v\n", err)
	}
	return repo
}

// Create inserts a new leave request and returns its ID.
func (r *MongoLeaveRepo) Create(ctx context.Context, lr models.LeaveRequest) (string, error) {
	if lr.ID == "" {
		lr.ID = uuid.New().String()
	}
	lr.CreatedAt = time.Now()
	lr.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, lr); err != nil {
		return "", err
	}
	return lr.ID, nil
}

// GetByID returns a leave request by its ID.
func (r *MongoLeaveRepo) GetByID(ctx context.Context, id string) (*models.LeaveRequest, error) {
	var lr models.LeaveRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&lr); err != nil {
		return nil, err
	}
	return &lr, nil
}

// ListByEmployee fetches the employee's own leave requests, newest first.
func (r *MongoLeaveRepo) ListByEmployee(ctx context.Context, employeeID string) ([]models.LeaveRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"employeeId": employeeID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.LeaveRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// ListPendingForApprover fetches requests waiting on the given approver.
func (r *MongoLeaveRepo) ListPendingForApprover(ctx context.Context, approverID string) ([]models.LeaveRequest, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"approverId": approverID, "status": models.StatusPending})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.LeaveRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// ListPending fetches every pending request, oldest first.
func (r *MongoLeaveRepo) ListPending(ctx context.Context) ([]models.LeaveRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"status": models.StatusPending}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.LeaveRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateStatus moves a record from one status to another in a single
// conditional document write. No match means the record moved underneath us.
func (r *MongoLeaveRepo) UpdateStatus(ctx context.Context, id, from, to, rejectionReason string) error {
	set := bson.M{"status": to, "updatedAt": time.Now()}
	if rejectionReason != "" {
		set["rejectionReason"] = rejectionReason
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "status": from}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStatusConflict
	}
	return nil
}
