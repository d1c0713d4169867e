// Package models defines the client-side data model of the meeting
// recorder: users, credentials and recording jobs.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput marks input rejected by client-side validation.
var ErrInvalidInput = errors.New("invalid input")

// User is the authenticated user's profile as returned by the service.
type User struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// SignupRequest carries the fields needed to create an account.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Password string `json:"password"`
}

// Validate checks that every signup field is filled in.
func (r SignupRequest) Validate() error {
	fields := []struct{ name, value string }{
		{"name", r.Name},
		{"email", r.Email},
		{"phone", r.Phone},
		{"city", r.City},
		{"state", r.State},
		{"country", r.Country},
		{"password", r.Password},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, f.name)
		}
	}
	return nil
}

// ProfileUpdate holds the editable profile fields. Email is fixed at signup.
type ProfileUpdate struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Validate requires a non-empty name; the other fields may be blank.
func (p ProfileUpdate) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return nil
}

// ProfileUpdateFrom seeds an update with the user's current values.
func ProfileUpdateFrom(u User) ProfileUpdate {
	return ProfileUpdate{Name: u.Name, Phone: u.Phone, City: u.City, State: u.State, Country: u.Country}
}
