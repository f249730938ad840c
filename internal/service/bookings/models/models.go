package models

import (
	"errors"
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	UserID   int64   `json:"userId"`
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// GetSalonBookingsRequest запрос на получение бронирований салона
type GetSalonBookingsRequest struct {
	UserID          int64      `json:"userId"`
	SalonID         int64      `json:"salonId"`
	WorkerID        *string    `json:"workerId,omitempty"`        // Фильтр по мастеру (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
	IncludeArchived bool       `json:"includeArchived,omitempty"` // Включить архивированные записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSalonBookingsRequest) ToDomainFilter() (domain.SalonBookingsFilter, error) {
	filter := domain.SalonBookingsFilter{
		SalonID:         r.SalonID,
		WorkerID:        r.WorkerID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
		IncludeArchived: r.IncludeArchived,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// SegmentResponse один сегмент записи
type SegmentResponse struct {
	ID              int64  `json:"id"`
	WorkerID        string `json:"workerId"`
	Date            string `json:"date"`      // "2026-09-15"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Phase           int    `json:"phase"`
}

// BookingResponse ответ с данными бронирования
// Для двухфазных записей поле followUp заполняется при выдаче одной записи;
// в списках отдаются только основные сегменты
type BookingResponse struct {
	ID              int64  `json:"id"`
	SalonID         int64  `json:"salonId"`
	ClientID        int64  `json:"clientId"`
	WorkerID        string `json:"workerId"`
	BookingDate     string `json:"bookingDate"` // "2026-09-15"
	StartTime       string `json:"startTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	PrimaryDurationMinutes  int              `json:"primaryDurationMinutes"`
	WaitMinutes             int              `json:"waitMinutes"`
	FollowUpDurationMinutes int              `json:"followUpDurationMinutes"`
	FollowUp                *SegmentResponse `json:"followUp,omitempty"`

	// Денормализованные данные
	ServiceTypeID *int64  `json:"serviceTypeId,omitempty"`
	ServiceName   string  `json:"serviceName"`
	ClientName    *string `json:"clientName,omitempty"`
	ClientPhone   *string `json:"clientPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                      b.ID,
		SalonID:                 b.SalonID,
		ClientID:                b.ClientID,
		WorkerID:                b.WorkerID,
		BookingDate:             b.BookingDate.Format(domain.DateFormat),
		StartTime:               b.StartTime.String(),
		DurationMinutes:         b.DurationMinutes,
		Status:                  string(b.Status),
		PrimaryDurationMinutes:  b.PrimaryDurationMinutes,
		WaitMinutes:             b.WaitMinutes,
		FollowUpDurationMinutes: b.FollowUpDurationMinutes,
		ServiceTypeID:           b.ServiceTypeID,
		ServiceName:             b.ServiceName,
		ClientName:              b.ClientName,
		ClientPhone:             b.ClientPhone,
		Notes:                   b.Notes,
		CancellationReason:      b.CancellationReason,
		CreatedAt:               b.CreatedAt,
		UpdatedAt:               b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainSegment конвертирует сегмент записи в DTO
func FromDomainSegment(b *domain.Booking) *SegmentResponse {
	if b == nil {
		return nil
	}
	return &SegmentResponse{
		ID:              b.ID,
		WorkerID:        b.WorkerID,
		Date:            b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Phase:           b.Phase,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	// Валидируем статус
	validStatuses := []domain.BookingStatus{
		domain.StatusBooked,
		domain.StatusConfirmed,
		domain.StatusActive,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
