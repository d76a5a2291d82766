package employeeRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orgflow/database"
	"orgflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoEmployeeRepo implements EmployeeRepository using MongoDB.
type MongoEmployeeRepo struct {
	coll *mongo.Collection
}

// NewMongoEmployeeRepo creates a new EmployeeRepository backed by MongoDB.
func NewMongoEmployeeRepo() EmployeeRepository {
	coll := database.Database().Collection("employees")
	repo := &MongoEmployeeRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create employee indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoEmployeeRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "reportingManagerId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new employee.
func (r *MongoEmployeeRepo) Create(ctx context.Context, e models.Employee) error {
	e.CreatedAt = time.Now()
	e.UpdatedAt = time.Now()
	_, err := r.coll.InsertOne(ctx, e)
	return err
}

// GetByID retrieves an employee by its unique ID.
func (r *MongoEmployeeRepo) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	var e models.Employee
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&e); err != nil {
		return nil, fmt.Errorf("failed to fetch employee with id %s: %w", id, err)
	}
	return &e, nil
}

// GetByEmail retrieves an employee by email.
func (r *MongoEmployeeRepo) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var e models.Employee
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&e); err != nil {
		return nil, fmt.Errorf("failed to fetch employee with email %s: %w", email, err)
	}
	return &e, nil
}

// List returns all employees.
func (r *MongoEmployeeRepo) List(ctx context.Context) ([]models.Employee, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var employees []models.Employee
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// Update applies a partial update to an employee document.
func (r *MongoEmployeeRepo) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	updates["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updates})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("employee not found")
	}
	return nil
}

// UpdateFCMToken stores the device token used for realtime pushes.
func (r *MongoEmployeeRepo) UpdateFCMToken(ctx context.Context, id, token string) error {
	return r.Update(ctx, id, map[string]interface{}{"fcmToken": token})
}
