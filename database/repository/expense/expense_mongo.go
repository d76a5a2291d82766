package expenseRepo

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
var ErrStatusConflict = errors.New("expense not in expected status")

// MongoExpenseRepo implements ExpenseRepository using MongoDB.
type MongoExpenseRepo struct {
	coll *mongo.Collection
}

// NewMongoExpenseRepo creates a new ExpenseRepository backed by MongoDB.
func NewMongoExpenseRepo() ExpenseRepository {
	coll := database.Database().Collection("expenses")
	repo := &MongoExpenseRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "employeeId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "approverId", Value: 1}, {Key: "status", Value: 1}}},
	})
	if err != nil {
		fmt.Printf("failed to create expense indexes: %v\n", err)
	}
	return repo
}

// Create inserts a new expense and returns its ID.
func (r *MongoExpenseRepo) Create(ctx context.Context, e models.Expense) (string, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.CreatedAt = time.Now()
	e.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return "", err
	}
	return e.ID, nil
}

// GetByID returns an expense by its ID.
func (r *MongoExpenseRepo) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	var e models.Expense
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByEmployee fetches the employee's own expenses, newest first.
func (r *MongoExpenseRepo) ListByEmployee(ctx context.Context, employeeID string) ([]models.Expense, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"employeeId": employeeID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var expenses []models.Expense
	if err := cursor.All(ctx, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// ListPendingForApprover fetches expenses waiting on the given approver.
func (r *MongoExpenseRepo) ListPendingForApprover(ctx context.Context, approverID string) ([]models.Expense, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"approverId": approverID, "status": models.StatusPending})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var expenses []models.Expense
	if err := cursor.All(ctx, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// ListPending fetches every pending expense, oldest first.
func (r *MongoExpenseRepo) ListPending(ctx context.Context) ([]models.Expense, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"status": models.StatusPending}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var expenses []models.Expense
	if err := cursor.All(ctx, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// UpdateStatus moves a record from one status to another in a single
// conditional document write.
func (r *MongoExpenseRepo) UpdateStatus(ctx context.Context, id, from, to, rejectionReason string) error {
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
