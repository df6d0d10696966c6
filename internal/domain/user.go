package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

func ValidRole(r string) bool {
	switch Role(r) {
	case RoleCustomer, RoleOperator, RoleAdmin:
		return true
	}
	return false
}

// User is a platform account. Operators are scoped to a company;
// customers and platform admins are not.
type User struct {
	ID           uuid.UUID  `json:"id"`
	CompanyID    *uuid.UUID `json:"company_id,omitempty"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Role         Role       `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
