package get_availability

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в бизнесе,
	// неактивна, или неактивен сам бизнес
	ErrServiceNotFound = errors.New("get_availability: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
