package domain

import "time"

type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RolePassenger UserRole = "PASSENGER"
	RoleStaff     UserRole = "STAFF"
)

type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	Role         UserRole
	FullName     string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
