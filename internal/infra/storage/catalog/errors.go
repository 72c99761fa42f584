package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда активная услуга не найдена
	// в указанном бизнесе (либо услуга/бизнес неактивны)
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	// (в том числе когда он не принадлежит указанному владельцу)
	ErrBusinessNotFound = errors.New("catalog.repository: business not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
