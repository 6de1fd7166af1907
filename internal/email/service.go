package email

import (
	"context"

	"github.com/moeenhealth/clinic-api/internal/model"
)

type Service interface {
	SendBookingConfirmation(ctx context.Context, to string, booking *model.Booking) error
	SendBookingCancellation(ctx context.Context, to string, booking *model.Booking, reason string) error
	SendCustom(ctx context.Context, to string, subject string, content string) error
}
