package combo

import "errors"

var (
	// ErrComboNotFound возвращается, когда правило комбо не найдено
	ErrComboNotFound = errors.New("combo.repository: combo not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("combo.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("combo.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("combo.repository: failed to scan row")

	// ErrMarshalSteps возвращается при ошибке сериализации авто-шагов
	ErrMarshalSteps = errors.New("combo.repository: failed to marshal auto steps")
)
