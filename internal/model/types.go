package model

import "time"

// User is an account in the journal. Passwords are stored in plain text to
// mirror the mock backend this service fronts for; credential hardening is
// out of scope.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Category groups memories under a user. Color is a hex string ("#5b7b7a").
type Category struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Color  string `json:"color"`
}

// Location is an optional place attached to a memory.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
}

// Memory is a single journal entry: photo reference, text, calendar date and
// optional location. Date is a calendar date ("YYYY-MM-DD"); CreatedAt is the
// store-assigned creation instant.
type Memory struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURI    string    `json:"imageUri"`
	Date        string    `json:"date"`
	CategoryID  string    `json:"categoryId"`
	Location    *Location `json:"location,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateMemoryRequest carries the caller-supplied fields for a new memory.
// ID, UserID and CreatedAt are assigned by the system.
type CreateMemoryRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURI    string    `json:"imageUri"`
	Date        string    `json:"date"`
	CategoryID  string    `json:"categoryId"`
	Location    *Location `json:"location,omitempty"`
}

// UpdateMemoryRequest is a partial update: nil fields keep their prior value.
// ID, UserID and CreatedAt are immutable and have no counterpart here.
type UpdateMemoryRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	ImageURI    *string   `json:"imageUri,omitempty"`
	Date        *string   `json:"date,omitempty"`
	CategoryID  *string   `json:"categoryId,omitempty"`
	Location    *Location `json:"location,omitempty"`
}

// Apply merges the request onto m, leaving nil fields untouched.
func (r UpdateMemoryRequest) Apply(m *Memory) {
	if r.Title != nil {
		m.Title = *r.Title
	}
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.ImageURI != nil {
		m.ImageURI = *r.ImageURI
	}
	if r.Date != nil {
		m.Date = *r.Date
	}
	if r.CategoryID != nil {
		m.CategoryID = *r.CategoryID
	}
	if r.Location != nil {
		loc := *r.Location
		m.Location = &loc
	}
}
