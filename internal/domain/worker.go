package domain

// Worker мастер салона
// Роспись и набор услуг приходят из StaffService; запись здесь — снэпшот на момент запроса.
// Availability может быть заполнена частично (мастера без настроенных окон считаются
// недоступными, а не работающими весь день).
type Worker struct {
	ID             string // ID из StaffService
	Name           string
	ServiceTypeIDs []int64
	Active         bool
	// Availability персональные окна мастера по дням недели
	// Может отличаться от часов салона; эффективное окно — их пересечение
	Availability WeeklySchedule
}

// CanPerform возвращает true, если мастер умеет выполнять услугу
func (w *Worker) CanPerform(serviceTypeID int64) bool {
	for _, id := range w.ServiceTypeIDs {
		if id == serviceTypeID {
			return true
		}
	}
	return false
}
