package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	"github.com/mirelka/SLN-SchedulingService/pkg/ptr"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0501234567", want: "0501234567"},
		{in: "+7 (050) 123-45-67", want: "70501234567"},
		{in: "050 123 45 67", want: "0501234567"},
		{in: "no digits", want: ""},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in), "input %q", tt.in)
	}
}

func TestClientKey(t *testing.T) {
	// Явный ID клиента имеет приоритет над телефоном
	assert.Equal(t, "42", ClientKey(ptr.Ptr(int64(42)), "0501234567"))

	// Без ID ключом становится нормализованный телефон
	assert.Equal(t, "0501234567", ClientKey(nil, "050-123-45-67"))
	assert.Equal(t, "0501234567", ClientKey(ptr.Ptr(int64(0)), "0501234567"))

	assert.Equal(t, "", ClientKey(nil, ""))
}

func TestServiceTypeKey(t *testing.T) {
	assert.Equal(t, "id:7", ServiceTypeKey(domain.NewServiceRef(ptr.Ptr(int64(7)), "")))
	assert.Equal(t, "label:haircut", ServiceTypeKey(domain.NewServiceRef(nil, "  Haircut ")))
	assert.Equal(t, UnknownServiceTypeKey, ServiceTypeKey(domain.NewServiceRef(nil, "   ")))
}

func TestBuildArchiveKey_ReplaceSemantics(t *testing.T) {
	// Повторное архивирование той же пары (клиент, услуга) дает тот же ключ:
	// при записи старая архивная запись замещается, дубликаты не копятся
	first := BuildArchiveKey("0501234567", "label:haircut", 101)
	second := BuildArchiveKey("0501234567", "label:haircut", 205)

	assert.Equal(t, first.Key, second.Key)
	assert.True(t, first.ReplaceExisting)
	assert.True(t, second.ReplaceExisting)

	// Другая услуга того же клиента живет под своим ключом
	other := BuildArchiveKey("0501234567", "label:manicure", 300)
	assert.NotEqual(t, first.Key, other.Key)
}

func TestBuildArchiveKey_UnknownServiceNeverReplaces(t *testing.T) {
	// Неопознанные услуги различаются по ID записи и замещение для них отключено
	a := BuildArchiveKey("0501234567", UnknownServiceTypeKey, 101)
	b := BuildArchiveKey("0501234567", UnknownServiceTypeKey, 205)

	assert.NotEqual(t, a.Key, b.Key)
	assert.False(t, a.ReplaceExisting)
	assert.False(t, b.ReplaceExisting)
}

func TestArchiveKeyForBooking(t *testing.T) {
	t.Run("client id with service type id", func(t *testing.T) {
		booking := &domain.Booking{
			ID:            101,
			ClientID:      42,
			ServiceTypeID: ptr.Ptr(int64(7)),
		}

		key := ArchiveKeyForBooking(booking)
		assert.Equal(t, "42|id:7", key.Key)
		assert.True(t, key.ReplaceExisting)
	})

	t.Run("phone fallback with service label", func(t *testing.T) {
		booking := &domain.Booking{
			ID:          101,
			ClientPhone: ptr.Ptr("050-123-45-67"),
			ServiceName: "Haircut",
		}

		key := ArchiveKeyForBooking(booking)
		assert.Equal(t, "0501234567|label:haircut", key.Key)
		assert.True(t, key.ReplaceExisting)
	})

	t.Run("unrecognized service", func(t *testing.T) {
		booking := &domain.Booking{
			ID:       101,
			ClientID: 42,
		}

		key := ArchiveKeyForBooking(booking)
		assert.Equal(t, "42|unknown|101", key.Key)
		assert.False(t, key.ReplaceExisting)
	})
}
