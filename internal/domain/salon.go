package domain

// Salon профиль салона из StaffService
// Используется только для проверок доступа; расписание салона хранится локально
type Salon struct {
	ID         int64
	Name       string
	ManagerIDs []int64
}

// IsManager возвращает true, если пользователь является менеджером салона
func (s *Salon) IsManager(userID int64) bool {
	for _, id := range s.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}
