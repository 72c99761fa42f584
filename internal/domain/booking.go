package domain

import "time"

// BookingStatus represents the lifecycle state of a booking.
// The only legal transition is pending -> cancelled; cancelled is terminal.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a customer reservation of a service time slot
type Booking struct {
	ID         int64
	BusinessID int64
	ServiceID  int64

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string

	// EndAt is frozen at creation time (StartAt + service duration);
	// later changes to the service duration do not resize the booking.
	StartAt time.Time
	EndAt   time.Time

	Status BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its interval.
// Only active bookings participate in overlap checks.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending
}

// Overlaps reports whether the booking's interval intersects [start, end).
// Intervals are half-open: a booking ending exactly when another starts
// does NOT overlap it.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return Overlaps(b.StartAt, b.EndAt, start, end)
}

// Overlaps reports whether two half-open intervals [s1,e1) and [s2,e2)
// intersect: s1 < e2 && e1 > s2.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// BusinessBookingsFilter is the filter for listing bookings of a business
type BusinessBookingsFilter struct {
	BusinessID       int64      // required
	From             *time.Time // optional lower bound on start instant
	To               *time.Time // optional upper bound on start instant
	IncludeCancelled bool       // cancelled bookings are excluded by default
}
