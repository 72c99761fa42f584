package models

import (
	"time"

	"github.com/sbmarket/SBM-SchedulingService/internal/domain"
)

// Request модели

// ListBusinessBookingsRequest запрос на список бронирований бизнеса.
// OwnerID берётся из JWT, не из тела запроса.
type ListBusinessBookingsRequest struct {
	BusinessID       int64
	OwnerID          int64
	From             *time.Time // Нижняя граница периода по началу брони (опционально)
	To               *time.Time // Верхняя граница периода по началу брони (опционально)
	IncludeCancelled bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBusinessBookingsRequest) ToDomainFilter() domain.BusinessBookingsFilter {
	return domain.BusinessBookingsFilter{
		BusinessID:       r.BusinessID,
		From:             r.From,
		To:               r.To,
		IncludeCancelled: r.IncludeCancelled,
	}
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	BookingID int64
	OwnerID   int64
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64     `json:"id"`
	BusinessID    int64     `json:"businessId"`
	ServiceID     int64     `json:"serviceId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone *string   `json:"customerPhone,omitempty"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:            b.ID,
		BusinessID:    b.BusinessID,
		ServiceID:     b.ServiceID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		StartAt:       b.StartAt,
		EndAt:         b.EndAt,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
