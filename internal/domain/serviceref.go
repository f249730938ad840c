package domain

import (
	"strconv"
	"strings"
)

// ServiceRefKind вид ссылки на услугу
type ServiceRefKind string

const (
	ServiceRefID      ServiceRefKind = "id"
	ServiceRefLabel   ServiceRefKind = "label"
	ServiceRefUnknown ServiceRefKind = "unknown"
)

// ServiceRef нормализованная ссылка на услугу
// Исторические записи идентифицируют услугу по-разному: структурным ID,
// свободным текстом или вообще никак. Нормализация выполняется один раз на границе,
// дальше по коду ходит только это представление.
type ServiceRef struct {
	Kind  ServiceRefKind
	Value string
}

// NewServiceRef строит ссылку на услугу из доступных полей записи
// Приоритет: структурный ID > свободный текст > unknown
func NewServiceRef(serviceTypeID *int64, serviceName string) ServiceRef {
	if serviceTypeID != nil && *serviceTypeID > 0 {
		return ServiceRef{Kind: ServiceRefID, Value: strconv.FormatInt(*serviceTypeID, 10)}
	}
	if label := strings.TrimSpace(serviceName); label != "" {
		return ServiceRef{Kind: ServiceRefLabel, Value: label}
	}
	return ServiceRef{Kind: ServiceRefUnknown}
}

// IsKnown возвращает true, если услуга идентифицирована хоть как-то
func (r ServiceRef) IsKnown() bool {
	return r.Kind != ServiceRefUnknown
}
