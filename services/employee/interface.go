package employee

import (
	"context"

	"orgflow/models"
)

// AuthResult carries a freshly authenticated employee and their JWT.
type AuthResult struct {
	Employee *models.Employee `json:"employee"`
	Token    string           `json:"token"`
}

// EmployeeService manages staff accounts and approval routing lookups.
type EmployeeService interface {
	Register(ctx context.Context, e models.Employee, password string) (*models.Employee, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	RevokeToken(ctx context.Context, employeeID string) error
	GetByID(ctx context.Context, id string) (*models.Employee, error)
	GetByEmail(ctx context.Context, email string) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
	// ResolveApprover returns the employee who approves for the given
	// requester: the reporting manager if set, otherwise the first HR user.
	ResolveApprover(ctx context.Context, requester *models.Employee) (*models.Employee, error)
}
