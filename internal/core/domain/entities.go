package domain

import (
	"time"
)

// Provider lifecycle states. A provider is created pending and moves to
// approved or rejected through the moderation path.
const (
	ProviderPending  = "pending"
	ProviderApproved = "approved"
	ProviderRejected = "rejected"
)

// Service offering states.
const (
	ServiceActive   = "active"
	ServiceInactive = "inactive"
)

// User is an account that can own at most one provider profile.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Mobile       string    `json:"mobile,omitempty"`
	Role         string    `json:"role"` // "provider" or "admin"
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Provider is a registered workshop or mechanic offering services.
type Provider struct {
	ID           string    `json:"id"`
	OwnerName    string    `json:"ownerName"`
	WorkshopName string    `json:"workshopName"`
	Mobile       string    `json:"mobile"`
	Address      string    `json:"address"`
	ServiceType  string    `json:"serviceType"` // free-form tag, not a foreign key
	ImageURL     string    `json:"imageURL,omitempty"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	UserID       string    `json:"userId"`
	Status       string    `json:"status"`
	Services     []Service `json:"services,omitempty"` // attached by the nearby query
	DistanceKm   *float64  `json:"distance,omitempty"` // computed field
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Service is a priced offering belonging to a provider.
//
// ProviderID holds the owning *user* id, not the provider record id.
// The original data kept it that way and the nearby enrichment joins
// on it, so it is preserved as-is.
type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ProviderID  string    `json:"providerId"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ImageURL    string    `json:"imageURL,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
