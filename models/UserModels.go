package models

import "time"

// User is an account row. Password holds the bcrypt hash and never leaves
// the server.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	Region    string    `json:"region"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the account has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// Session is one logged-in device. SessionID is the signed JWT carried in
// the Authorization header; middleware verifies the signature before
// consulting this row.
type Session struct {
	UserID    int       `json:"user_id"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Region    string `json:"region"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Region   string `json:"region" binding:"required"`
}

type UpdateUserRequest struct {
	Role   string `json:"role"`
	Region string `json:"region"`
}

// Regions an account may be scoped to. RegionAll is the admin wildcard that
// sees every region.
var Regions = []string{"Singapore", "Malaysia", "Thailand", "Indonesia", "Vietnam", "Philippines", "Others"}

const RegionAll = "All"

// Currencies accepted on quotation and misc-cost records.
var Currencies = []string{"IDR", "USD", "RMB", "SGD", "MYR", "THB"}

func ValidRegion(region string) bool {
	if region == RegionAll {
		return true
	}
	for _, r := range Regions {
		if r == region {
			return true
		}
	}
	return false
}

func ValidCurrency(currency string) bool {
	for _, c := range Currencies {
		if c == currency {
			return true
		}
	}
	return false
}
