package model

import "time"

// Attendance represents one member's presence record for a calendar day
type Attendance struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Date        time.Time `json:"date"`
	IsPresent   bool      `json:"isPresent"`
	ServiceType *string   `json:"serviceType,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MarkAttendanceRequest is the payload for marking (or re-marking) a day
type MarkAttendanceRequest struct {
	UserID      string  `json:"userId" binding:"required,uuid"`
	Date        string  `json:"date" binding:"required"`
	IsPresent   *bool   `json:"isPresent,omitempty"`
	ServiceType *string `json:"serviceType,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// AttendanceStats holds per-user attendance counters for a window
type AttendanceStats struct {
	Total      int64 `json:"total"`
	Present    int64 `json:"present"`
	Absent     int64 `json:"absent"`
	Percentage int   `json:"percentage"`
}

// OverallAttendanceStats aggregates across all users
type OverallAttendanceStats struct {
	TotalRecords      int64 `json:"totalRecords"`
	TotalUsers        int64 `json:"totalUsers"`
	AverageAttendance int64 `json:"averageAttendance"`
}
