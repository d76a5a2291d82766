package models

import "time"

// Employee roles.
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
)

// Employee represents a staff member. ReportingManagerID drives approval
// routing for leave and expense submissions.
type Employee struct {
	ID                 string    `bson:"id" json:"id"`
	Name               string    `bson:"name" json:"name"`
	Email              string    `bson:"email" json:"email"`
	PasswordHash       string    `bson:"passwordHash" json:"-"`
	Role               string    `bson:"role" json:"role"`
	Department         string    `bson:"department,omitempty" json:"department,omitempty"`
	ReportingManagerID string    `bson:"reportingManagerId,omitempty" json:"reportingManagerId,omitempty"`
	FCMToken           string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}
