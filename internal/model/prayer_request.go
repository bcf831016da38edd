package model

import "time"

const (
	PrayerStatusPending    = "Pending"
	PrayerStatusInProgress = "In Progress"
	PrayerStatusAnswered   = "Answered"
	PrayerStatusClosed     = "Closed"
)

// PrayerRequest is a free-text request submitted for staff triage.
// Requesters do not have to be registered members, so there is no
// foreign key to users.
type PrayerRequest struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         *string   `json:"email,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	PrayerRequest string    `json:"prayerRequest"`
	Status        string    `json:"status"`
	IsAnonymous   bool      `json:"isAnonymous"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreatePrayerRequestRequest is the public submission payload
type CreatePrayerRequestRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	Email         *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone         *string `json:"phone,omitempty"`
	PrayerRequest string  `json:"prayerRequest" binding:"required,min=10,max=2000"`
	IsAnonymous   *bool   `json:"isAnonymous,omitempty"`
}

// UpdatePrayerRequestRequest merges staff edits field-by-field.
// Any status in the enum is accepted regardless of the current one;
// there is deliberately no enforced transition graph.
type UpdatePrayerRequestRequest struct {
	Name          *string `json:"name,omitempty" binding:"omitempty,min=2,max=255"`
	Email         *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone         *string `json:"phone,omitempty"`
	PrayerRequest *string `json:"prayerRequest,omitempty" binding:"omitempty,min=10,max=2000"`
	Status        *string `json:"status,omitempty" binding:"omitempty,oneof=Pending 'In Progress' Answered Closed"`
	IsAnonymous   *bool   `json:"isAnonymous,omitempty"`
	Notes         *string `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// PrayerRequestStats counts requests per lifecycle status
type PrayerRequestStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Answered   int64 `json:"answered"`
	Closed     int64 `json:"closed"`
}
