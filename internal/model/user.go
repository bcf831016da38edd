package model

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const (
	MaritalStatusSingle  = "Single"
	MaritalStatusMarried = "Married"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// User represents a registered member
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         *string   `json:"email,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	ProfilePic    *string   `json:"profilePic,omitempty"`
	Age           *int      `json:"age,omitempty"`
	MaritalStatus *string   `json:"maritalStatus,omitempty"`
	Sex           *string   `json:"sex,omitempty"`
	Role          string    `json:"role"`
	Address       *string   `json:"address,omitempty"`
	Occupation    *string   `json:"occupation,omitempty"`
	PasswordHash  *string   `json:"-"` // Do not expose password hash in JSON responses
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateUserRequest is used for explicit admin-side user creation
type CreateUserRequest struct {
	Name          string  `json:"name" binding:"required"`
	Email         *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone         *string `json:"phone,omitempty"`
	ProfilePic    *string `json:"profilePic,omitempty"`
	Age           *int    `json:"age,omitempty" binding:"omitempty,gte=0,lte=150"`
	MaritalStatus *string `json:"maritalStatus,omitempty" binding:"omitempty,oneof=Single Married"`
	Sex           *string `json:"sex,omitempty" binding:"omitempty,oneof=Male Female"`
	Role          *string `json:"role,omitempty" binding:"omitempty,oneof=USER ADMIN"`
	Address       *string `json:"address,omitempty"`
	Occupation    *string `json:"occupation,omitempty"`
	Password      *string `json:"password,omitempty"`
}

// UpdateUserRequest carries a partial update; nil fields leave the stored value untouched
type UpdateUserRequest struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone         *string `json:"phone,omitempty"`
	ProfilePic    *string `json:"profilePic,omitempty"`
	Age           *int    `json:"age,omitempty" binding:"omitempty,gte=0,lte=150"`
	MaritalStatus *string `json:"maritalStatus,omitempty" binding:"omitempty,oneof=Single Married"`
	Sex           *string `json:"sex,omitempty" binding:"omitempty,oneof=Male Female"`
	Address       *string `json:"address,omitempty"`
	Occupation    *string `json:"occupation,omitempty"`
}

// UserCounts summarizes the member roster by role
type UserCounts struct {
	Total  int64 `json:"total"`
	Admins int64 `json:"admins"`
	Users  int64 `json:"users"`
}
