package get_salon_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	"github.com/mirelka/SLN-SchedulingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из path и query параметров
// Параметр date задает один день; startDate/endDate — период
func ToServiceRequest(salonID, userID int64, query url.Values) (*models.GetSalonBookingsRequest, error) {
	req := &models.GetSalonBookingsRequest{
		UserID:  userID,
		SalonID: salonID,
	}

	if workerID := query.Get("workerId"); workerID != "" {
		req.WorkerID = &workerID
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if date := query.Get("date"); date != "" {
		day, err := time.Parse(domain.DateFormat, date)
		if err != nil {
			return nil, err
		}
		req.StartDate = &day
		req.EndDate = &day
	} else {
		if startDate := query.Get("startDate"); startDate != "" {
			start, err := time.Parse(domain.DateFormat, startDate)
			if err != nil {
				return nil, err
			}
			req.StartDate = &start
		}
		if endDate := query.Get("endDate"); endDate != "" {
			end, err := time.Parse(domain.DateFormat, endDate)
			if err != nil {
				return nil, err
			}
			req.EndDate = &end
		}
	}

	if includeInactive := query.Get("includeInactive"); includeInactive != "" {
		value, err := strconv.ParseBool(includeInactive)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = value
	}
	if includeArchived := query.Get("includeArchived"); includeArchived != "" {
		value, err := strconv.ParseBool(includeArchived)
		if err != nil {
			return nil, err
		}
		req.IncludeArchived = value
	}

	return req, nil
}
