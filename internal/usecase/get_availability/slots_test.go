package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbmarket/SBM-SchedulingService/internal/domain"
)

var testDay = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2025, 10, 15, hour, min, 0, 0, time.UTC)
}

func TestGenerateDailySlots_DefaultHoursHalfHourStep(t *testing.T) {
	slots := generateDailySlots(testDay, time.UTC, 9, 18, 30)

	// 9 часов работы с шагом 30 минут — ровно 18 кандидатов
	require.Len(t, slots, 18)
	assert.Equal(t, at(9, 0), slots[0])
	assert.Equal(t, at(17, 30), slots[len(slots)-1])

	closing := at(18, 0)
	for i, slot := range slots {
		assert.True(t, slot.Before(closing), "slot %d starts at or after closing", i)
		if i > 0 {
			assert.True(t, slots[i-1].Before(slot), "slots must be ascending")
		}
	}
}

func TestGenerateDailySlots_OpenEqualsClose(t *testing.T) {
	assert.Empty(t, generateDailySlots(testDay, time.UTC, 10, 10, 30))
}

func TestGenerateDailySlots_OpenAfterClose(t *testing.T) {
	assert.Empty(t, generateDailySlots(testDay, time.UTC, 18, 9, 30))
}

func TestGenerateDailySlots_LastSlotMayRunPastClosing(t *testing.T) {
	// Шаг 50 минут не делит окно 9:00-18:00 нацело: последний кандидат
	// начинается до закрытия, но заканчивается после. Проверяется только
	// начало слота — услуга дорабатывается после закрытия.
	slots := generateDailySlots(testDay, time.UTC, 9, 18, 50)
	require.NotEmpty(t, slots)

	closing := at(18, 0)
	last := slots[len(slots)-1]
	assert.True(t, last.Before(closing))
	assert.True(t, last.Add(50*time.Minute).After(closing))
}

func TestGenerateDailySlots_RespectsLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	slots := generateDailySlots(testDay, loc, 9, 10, 30)
	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2025, 10, 15, 9, 0, 0, 0, loc), slots[0])
}

func TestFilterFreeSlots_HalfOpenBoundary(t *testing.T) {
	booked := []*domain.Booking{
		{StartAt: at(10, 0), EndAt: at(10, 30), Status: domain.StatusPending},
	}

	tests := []struct {
		name      string
		candidate time.Time
		free      bool
	}{
		{name: "slot starting exactly at booking end is free", candidate: at(10, 30), free: true},
		{name: "slot starting one minute before booking end conflicts", candidate: at(10, 29), free: false},
		{name: "slot ending exactly at booking start is free", candidate: at(9, 30), free: true},
		{name: "slot equal to booking conflicts", candidate: at(10, 0), free: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			free := filterFreeSlots([]time.Time{tt.candidate}, 30, booked)
			if tt.free {
				assert.Len(t, free, 1)
			} else {
				assert.Empty(t, free)
			}
		})
	}
}

func TestFilterFreeSlots_CancelledBookingsDoNotBlock(t *testing.T) {
	booked := []*domain.Booking{
		{StartAt: at(14, 0), EndAt: at(15, 0), Status: domain.StatusCancelled},
	}

	free := filterFreeSlots([]time.Time{at(14, 0)}, 60, booked)
	assert.Len(t, free, 1)
}

func TestDayWindow(t *testing.T) {
	start, end := dayWindow(testDay, time.UTC)
	assert.Equal(t, at(0, 0), start)
	assert.Equal(t, start.AddDate(0, 0, 1), end)
}
