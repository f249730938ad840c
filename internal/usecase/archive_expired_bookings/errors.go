package archive_expired_bookings

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("archive_expired_bookings: internal error")
)
