package scheduling

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
)

// UnknownServiceTypeKey сентинел для записей, у которых услугу опознать не удалось
const UnknownServiceTypeKey = "unknown"

// ArchiveKey детерминированный ключ замещения архивной записи
// ReplaceExisting = false означает, что удалять другие архивные записи
// под этим ключом НЕЛЬЗЯ: ключи с сентинелом unknown различаются по ID записи,
// и замещение для них отключено
type ArchiveKey struct {
	Key             string
	ReplaceExisting bool
}

// ClientKey возвращает идентификатор клиента для архивного ключа
// Приоритет: явный ID клиента, иначе нормализованный телефон
// Пустая строка означает, что клиента идентифицировать нечем
func ClientKey(clientID *int64, phone string) string {
	if clientID != nil && *clientID > 0 {
		return strconv.FormatInt(*clientID, 10)
	}
	return NormalizePhone(phone)
}

// NormalizePhone приводит телефон к каноничному виду: только цифры
// "+7 (050) 123-45-67" и "70501234567" дают один и тот же ключ
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ServiceTypeKey возвращает ключ типа услуги для архивного ключа
// Структурный ID и текстовая метка дают настоящие ключи,
// неопознанная услуга — сентинел unknown
func ServiceTypeKey(ref domain.ServiceRef) string {
	switch ref.Kind {
	case domain.ServiceRefID:
		return "id:" + ref.Value
	case domain.ServiceRefLabel:
		return "label:" + strings.ToLower(strings.TrimSpace(ref.Value))
	default:
		return UnknownServiceTypeKey
	}
}

// BuildArchiveKey строит составной ключ архивной записи.
// Для настоящих ключей услуг действует replace-on-write: архивирование той же
// пары (клиент, тип услуги) замещает предыдущую запись, дубликаты не копятся.
// Для сентинела unknown ключ дополняется ID записи, чтобы разные неопознанные
// записи не схлопывались, и замещение отключается.
func BuildArchiveKey(clientKey, serviceTypeKey string, bookingID int64) ArchiveKey {
	if serviceTypeKey == UnknownServiceTypeKey {
		return ArchiveKey{
			Key:             fmt.Sprintf("%s|%s|%d", clientKey, serviceTypeKey, bookingID),
			ReplaceExisting: false,
		}
	}
	return ArchiveKey{
		Key:             clientKey + "|" + serviceTypeKey,
		ReplaceExisting: true,
	}
}

// ArchiveKeyForBooking строит ключ архивной записи для бронирования
func ArchiveKeyForBooking(booking *domain.Booking) ArchiveKey {
	phone := ""
	if booking.ClientPhone != nil {
		phone = *booking.ClientPhone
	}

	clientKey := ClientKey(&booking.ClientID, phone)
	if booking.ClientID <= 0 {
		clientKey = ClientKey(nil, phone)
	}

	return BuildArchiveKey(clientKey, ServiceTypeKey(booking.ServiceRef()), booking.ID)
}
