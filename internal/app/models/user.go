package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID         int64     `json:"id" db:"id" example:"1"`
	Email      string    `json:"email" db:"email" example:"user@campus.edu"`
	Password   string    `json:"-" db:"password"` // hashed, excluded from JSON
	FirstName  string    `json:"firstName" db:"first_name" example:"John"`
	LastName   string    `json:"lastName" db:"last_name" example:"Doe"`
	Role       Role      `json:"role" db:"role" example:"student"`
	Department string    `json:"department" db:"department" example:"Computer Science"`
	StudentID  *string   `json:"studentId,omitempty" db:"student_id"`   // required and unique iff role=student
	EmployeeID *string   `json:"employeeId,omitempty" db:"employee_id"` // required and unique iff role is faculty or admin
	IsActive   bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	ClubIDs []int64 `json:"clubs,omitempty"` // clubs the user belongs to, maintained by the membership engine
}

// Actor returns the capability-check view of the user.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role, Email: u.Email}
}
