package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	employeeRepo "orgflow/database/repository/employee"
	"orgflow/models"
	"orgflow/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is the lifetime of issued JWTs. The token hash is cached in Redis
// for the same window so revocation takes effect immediately.
const tokenTTL = 24 * time.Hour

// ErrInvalidCredentials is returned for a failed login attempt.
var ErrInvalidCredentials = errors.New("invalid email or password")

// DefaultEmployeeService is the production implementation.
type DefaultEmployeeService struct {
	Repo employeeRepo.EmployeeRepository
}

// Register creates a new employee account with a bcrypt password hash.
func (s *DefaultEmployeeService) Register(ctx context.Context, e models.Employee, password string) (*models.Employee, error) {
	if e.Email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}
	if e.Role == "" {
		e.Role = models.RoleEmployee
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	e.PasswordHash = string(hash)

	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return &e, nil
}

// Authenticate verifies credentials, issues a JWT and caches its hash so the
// auth middleware can check revocation without hitting Mongo.
func (s *DefaultEmployeeService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	e, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(e.ID, e.Email, e.Role, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	cache := utils.GetAuthCacheClient()
	key := utils.AuthCachePrefix + e.ID
	if err := cache.Set(ctx, key, utils.HashToken(token), tokenTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to cache auth token: %w", err)
	}

	return &AuthResult{Employee: e, Token: token}, nil
}

// RevokeToken drops the cached token hash, invalidating the active session.
func (s *DefaultEmployeeService) RevokeToken(ctx context.Context, employeeID string) error {
	cache := utils.GetAuthCacheClient()
	return cache.Del(ctx, utils.AuthCachePrefix+employeeID).Err()
}

// GetByID retrieves an employee by ID.
func (s *DefaultEmployeeService) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	return s.Repo.GetByID(ctx, id)
}

// GetByEmail retrieves an employee by email.
func (s *DefaultEmployeeService) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	return s.Repo.GetByEmail(ctx, email)
}

// List returns all employees.
func (s *DefaultEmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	return s.Repo.List(ctx)
}

// UpdateFCMToken stores the device token used for realtime pushes.
func (s *DefaultEmployeeService) UpdateFCMToken(ctx context.Context, id, token string) error {
	return s.Repo.UpdateFCMToken(ctx, id, token)
}

// ResolveApprover picks the approver for a requester: the reporting manager
// when one is assigned, otherwise the first HR user on record.
func (s *DefaultEmployeeService) ResolveApprover(ctx context.Context, requester *models.Employee) (*models.Employee, error) {
	if requester.ReportingManagerID != "" {
		m, err := s.Repo.GetByID(ctx, requester.ReportingManagerID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve reporting manager for %s: %w", requester.ID, err)
		}
		return m, nil
	}

	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Role == models.RoleHR && all[i].ID != requester.ID {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("no approver available for employee %s", requester.ID)
}
