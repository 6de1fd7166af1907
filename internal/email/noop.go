package email

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/moeenhealth/clinic-api/internal/model"
)

type noopService struct{}

// NewNoopService returns a sender that logs instead of sending. Used when
// SMTP is not configured, typically in development.
func NewNoopService() Service {
	return noopService{}
}

func (noopService) SendBookingConfirmation(ctx context.Context, to string, booking *model.Booking) error {
	log.Debug().Str("to", to).Str("booking_id", booking.ID.String()).Msg("email disabled, skipping confirmation")
	return nil
}

func (noopService) SendBookingCancellation(ctx context.Context, to string, booking *model.Booking, reason string) error {
	log.Debug().Str("to", to).Str("booking_id", booking.ID.String()).Msg("email disabled, skipping cancellation notice")
	return nil
}

func (noopService) SendCustom(ctx context.Context, to string, subject string, content string) error {
	log.Debug().Str("to", to).Str("subject", subject).Msg("email disabled, skipping message")
	return nil
}
