package domain

import "time"

// ArchiveRecord архивный снэпшот истёкшего бронирования
// Производная сущность: на пару (клиент, тип услуги) хранится не более одной записи —
// новая запись с тем же ключом замещает предыдущую.
// Для записей с неопознанной услугой ключ дополняется ID бронирования,
// и замещение не применяется.
type ArchiveRecord struct {
	ID             int64
	ArchiveKey     string
	ClientKey      string
	ServiceTypeKey string
	BookingID      int64
	SalonID        int64
	WorkerID       string
	ClientName     *string
	ClientPhone    *string
	ServiceName    string
	BookingDate    time.Time
	ArchivedAt     time.Time
}
