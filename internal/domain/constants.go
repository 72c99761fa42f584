package domain

// Operating hours defaults, applied when the caller does not pass
// openHour/closeHour explicitly
const (
	DefaultOpenHour  = 9
	DefaultCloseHour = 18
)

// Hour bounds for openHour/closeHour parameters
const (
	MinHour = 0
	MaxHour = 23
)

// MinServiceDurationMinutes minimal allowed service duration
const MinServiceDurationMinutes = 1

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
