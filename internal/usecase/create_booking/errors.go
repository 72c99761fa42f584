package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в бизнесе,
	// неактивна, или неактивен сам бизнес
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается
	// с существующим неотменённым бронированием. Вызывающая сторона
	// должна перезапросить доступность и выбрать другой слот —
	// автоматических повторов с другим временем нет.
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	// (в том числе при недоступности хранилища — это не Conflict)
	ErrInternal = errors.New("create_booking: internal error")
)
