package domain

import "time"

// EntityStatus represents the lifecycle state of a catalog record.
// Modeled as an explicit state instead of a boolean flag so that the effect
// of deactivation on dependent queries is a deliberate choice: inactive
// businesses/services stop accepting new bookings, existing bookings remain.
type EntityStatus string

const (
	EntityActive   EntityStatus = "active"
	EntityInactive EntityStatus = "inactive"
)

// Business represents a merchant's business owning one calendar
type Business struct {
	ID       int64
	OwnerID  int64
	Status   EntityStatus
	Timezone string // IANA name, e.g. "Europe/Madrid"

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the business accepts new bookings
func (b *Business) IsActive() bool {
	return b.Status == EntityActive
}

// Location resolves the business's IANA timezone.
// Empty timezone falls back to UTC.
func (b *Business) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(b.Timezone)
}

// Service represents a bookable service with a fixed duration.
// The duration is the scheduling granularity for this service.
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	DurationMinutes int
	Price           *float64
	Status          EntityStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the service can be booked
func (s *Service) IsActive() bool {
	return s.Status == EntityActive
}

// Duration returns the service duration as time.Duration
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}
