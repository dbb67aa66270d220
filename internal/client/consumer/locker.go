package consumer

import (
	"fmt"
	"hash/fnv"

	"foodlocker/internal/domain"
	apperrors "foodlocker/internal/errors"
)

// LockerAssignment is the pickup locker shown once an order completes.
type LockerAssignment struct {
	Number   int    `json:"lockerNumber"`
	Code     string `json:"code"`
	QRCode   string `json:"qrCode"`
	Location string `json:"location"`
}

// AssignLocker derives the locker for a completed order. The assignment is
// a pure function of the order ID, so every view of the same order shows
// the same locker.
func AssignLocker(order *domain.Order) (LockerAssignment, error) {
	if order.Status != domain.StatusCompleted {
		return LockerAssignment{}, apperrors.NewValidationError("order is not ready for pickup")
	}

	h := fnv.New32a()
	h.Write([]byte(order.ID))
	sum := h.Sum32()

	return LockerAssignment{
		Number:   int(sum%100) + 1,
		Code:     fmt.Sprintf("%04d", 1000+sum%9000),
		QRCode:   "LOCKER-" + order.ID,
		Location: "1층 입구 옆",
	}, nil
}
