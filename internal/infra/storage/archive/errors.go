package archive

import "errors"

var (
	// ErrRecordNotFound возвращается, когда архивная запись не найдена
	ErrRecordNotFound = errors.New("archive.repository: record not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("archive.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("archive.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("archive.repository: failed to scan row")
)
