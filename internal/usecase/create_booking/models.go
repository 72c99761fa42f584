package create_booking

import "time"

// Метки результата для бизнес-метрики bookings_created_total
const (
	resultCreated  = "created"
	resultConflict = "conflict"
	resultError    = "error"
)

// Request модель запроса на создание бронирования
type Request struct {
	BusinessID    int64     // ID бизнеса
	ServiceID     int64     // ID услуги
	CustomerName  string    // Имя клиента
	CustomerEmail string    // Email клиента
	CustomerPhone *string   // Телефон клиента (опционально)
	StartAt       time.Time // Момент начала (уже распарсенный instant)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	BusinessID    int64
	ServiceID     int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	StartAt       time.Time
	EndAt         time.Time // StartAt + длительность услуги, фиксируется при создании
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
