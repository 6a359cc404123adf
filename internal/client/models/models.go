// Package models defines the shared data types exchanged between the booking
// backend and the client: users, parties, bookings, and the login payload.
package models

// User is the authenticated principal as reported by the backend.
//
// PartyID is nil exactly when IsAdmin is true: administrators are not tied
// to a party.
type User struct {
	// PartyID references the party this user belongs to, nil for admins.
	PartyID *int `json:"party_id"`

	// IsAdmin grants unrestricted booking-modification rights.
	IsAdmin bool `json:"is_admin"`

	// Username is the login name, display only.
	Username string `json:"username"`
}

// Party is a tenant (e.g. a household) that bookings belong to. Parties are
// fetched in bulk and never mutated by the client.
type Party struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Booking is a reserved inclusive date range owned by one party. Dates are
// zero-padded ISO strings (YYYY-MM-DD); StartDate <= EndDate always holds
// for bookings returned by the backend.
type Booking struct {
	ID         int     `json:"id"`
	PartyID    int     `json:"party_id"`
	PartyName  string  `json:"party_name"`
	PartyColor string  `json:"party_color"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Note       *string `json:"note"`
}

// BookingCreate is the request payload for creating or updating a booking.
type BookingCreate struct {
	PartyID   int     `json:"party_id"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Note      *string `json:"note,omitempty"`
}

// LoginResult is the successful response of the login endpoint.
type LoginResult struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message"`
}
