package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
)

const followUpService = int64(42)

func assignerWorker(id, name string, services ...int64) *domain.Worker {
	return &domain.Worker{ID: id, Name: name, ServiceTypeIDs: services, Active: true}
}

func busyBookings(n int) []*domain.Booking {
	bookings := make([]*domain.Booking, 0, n)
	for i := 0; i < n; i++ {
		bookings = append(bookings, testBooking(int64(100+i), "09:00", 15, domain.StatusConfirmed))
	}
	return bookings
}

func TestResolveFollowUpWorker(t *testing.T) {
	t.Run("primary worker preferred when eligible", func(t *testing.T) {
		req := FollowUpRequest{
			PrimaryWorkerID: "w-002",
			ServiceTypeID:   followUpService,
			Phase2StartMin:  810,
			Phase2EndMin:    840,
			Workers: []*domain.Worker{
				assignerWorker("w-001", "Anna", followUpService),
				assignerWorker("w-002", "Boris", followUpService),
			},
			BookingsByWorker: map[string][]*domain.Booking{
				// У основного мастера занятость больше — всё равно выбирается он
				"w-001": nil,
				"w-002": busyBookings(5),
			},
		}

		got := ResolveFollowUpWorker(req)
		require.NotNil(t, got)
		assert.Equal(t, "w-002", got.ID)
		assert.Equal(t, "Boris", got.Name)
	})

	t.Run("least busy worker wins when primary cannot perform", func(t *testing.T) {
		// Основной мастер не умеет follow-up услугу; из двух умеющих
		// один занят 3 интервалами, другой одним — выбирается второй
		req := FollowUpRequest{
			PrimaryWorkerID: "w-001",
			ServiceTypeID:   followUpService,
			Phase2StartMin:  810,
			Phase2EndMin:    840,
			Workers: []*domain.Worker{
				assignerWorker("w-001", "Anna", 7),
				assignerWorker("w-002", "Boris", followUpService),
				assignerWorker("w-003", "Vera", followUpService),
			},
			BookingsByWorker: map[string][]*domain.Booking{
				"w-002": busyBookings(3),
				"w-003": busyBookings(1),
			},
		}

		got := ResolveFollowUpWorker(req)
		require.NotNil(t, got)
		assert.Equal(t, "w-003", got.ID)
	})

	t.Run("tie broken by ascending worker id", func(t *testing.T) {
		req := FollowUpRequest{
			PrimaryWorkerID: "w-001",
			ServiceTypeID:   followUpService,
			Phase2StartMin:  810,
			Phase2EndMin:    840,
			Workers: []*domain.Worker{
				// Порядок в списке намеренно обратный — на результат не влияет
				assignerWorker("w-009", "Zoya", followUpService),
				assignerWorker("w-005", "Boris", followUpService),
			},
			BookingsByWorker: map[string][]*domain.Booking{
				"w-005": busyBookings(2),
				"w-009": busyBookings(2),
			},
		}

		got := ResolveFollowUpWorker(req)
		require.NotNil(t, got)
		assert.Equal(t, "w-005", got.ID)
	})

	t.Run("nil when nobody is eligible", func(t *testing.T) {
		req := FollowUpRequest{
			PrimaryWorkerID: "w-001",
			ServiceTypeID:   followUpService,
			Phase2StartMin:  810,
			Phase2EndMin:    840,
			Workers: []*domain.Worker{
				assignerWorker("w-001", "Anna", 7),
			},
		}
		assert.Nil(t, ResolveFollowUpWorker(req))
	})
}

func TestEligibleFollowUpWorkers(t *testing.T) {
	t.Run("conflicting worker filtered out", func(t *testing.T) {
		req := FollowUpRequest{
			ServiceTypeID:  followUpService,
			Phase2StartMin: 600,
			Phase2EndMin:   660,
			Workers: []*domain.Worker{
				assignerWorker("w-001", "Anna", followUpService),
				assignerWorker("w-002", "Boris", followUpService),
			},
			BookingsByWorker: map[string][]*domain.Booking{
				// 10:00-11:00 занято
				"w-001": {testBooking(1, "10:00", 60, domain.StatusConfirmed)},
			},
		}

		eligible := EligibleFollowUpWorkers(req)
		require.Len(t, eligible, 1)
		assert.Equal(t, "w-002", eligible[0].ID)
	})

	t.Run("inactive workers filtered out", func(t *testing.T) {
		inactive := assignerWorker("w-001", "Anna", followUpService)
		inactive.Active = false

		req := FollowUpRequest{
			ServiceTypeID:  followUpService,
			Phase2StartMin: 600,
			Phase2EndMin:   660,
			Workers:        []*domain.Worker{inactive},
		}
		assert.Empty(t, EligibleFollowUpWorkers(req))
	})

	t.Run("window data restricts eligibility when supplied", func(t *testing.T) {
		req := FollowUpRequest{
			ServiceTypeID:  followUpService,
			Phase2StartMin: 600,
			Phase2EndMin:   660,
			Workers: []*domain.Worker{
				assignerWorker("w-001", "Anna", followUpService),
				assignerWorker("w-002", "Boris", followUpService),
				assignerWorker("w-003", "Vera", followUpService),
			},
			WindowsByWorker: map[string]*Span{
				"w-001": {StartMin: 540, EndMin: 1020}, // окно содержит интервал
				"w-002": {StartMin: 660, EndMin: 1020}, // окно начинается позже
				// w-003 в карте отсутствует — недоступен
			},
		}

		eligible := EligibleFollowUpWorkers(req)
		require.Len(t, eligible, 1)
		assert.Equal(t, "w-001", eligible[0].ID)
	})

	t.Run("edited booking segments excluded from conflicts", func(t *testing.T) {
		req := FollowUpRequest{
			ServiceTypeID:  followUpService,
			Phase2StartMin: 600,
			Phase2EndMin:   660,
			Workers: []*domain.Worker{
				assignerWorker("w-001", "Anna", followUpService),
			},
			BookingsByWorker: map[string][]*domain.Booking{
				"w-001": {testBooking(77, "10:00", 60, domain.StatusConfirmed)},
			},
			ExcludeBookingIDs: []int64{77},
		}

		eligible := EligibleFollowUpWorkers(req)
		require.Len(t, eligible, 1)
	})
}
