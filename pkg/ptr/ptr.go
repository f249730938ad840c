package ptr

// Ptr возвращает указатель на переданное значение
// Удобно для построения опциональных полей запросов
func Ptr[T any](v T) *T {
	return &v
}
