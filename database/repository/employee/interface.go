package employeeRepo

import (
	"context"

	"orgflow/models"
)

// EmployeeRepository is the persistence contract for staff records.
type EmployeeRepository interface {
	Create(ctx context.Context, e models.Employee) error
	GetByID(ctx context.Context, id string) (*models.Employee, error)
	GetByEmail(ctx context.Context, email string) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	UpdateFCMToken(ctx context.Context, id, token string) error
}
