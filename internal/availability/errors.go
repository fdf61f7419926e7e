package availability

import "errors"

var (
	// ErrInvalidInput возвращается при неположительной длительности услуги
	// или неположительном шаге сетки слотов
	ErrInvalidInput = errors.New("availability: invalid input")
)
