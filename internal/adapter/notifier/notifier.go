package notifier

import (
	"github.com/rs/zerolog"

	"github.com/gigstage/gigstage/internal/events"
)

// Notifier turns broker events into user-facing notifications. The
// current delivery channel is the log; push and email transports hang
// off the same Handle entrypoint.
type Notifier struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Notifier {
	return &Notifier{log: log}
}

// Handle dispatches a single delivery by routing key. Unknown keys are
// logged and dropped so a queue shared with newer producers never
// wedges on an unrecognized event.
func (n *Notifier) Handle(routingKey string, body []byte) error {
	switch routingKey {
	case events.RKBookingApplied, events.RKBookingInvited, events.RKBookingStatusChanged:
		ev, err := events.Unmarshal[events.BookingChanged](body)
		if err != nil {
			return err
		}
		n.log.Info().
			Str("routing_key", routingKey).
			Str("booking_id", ev.BookingID).
			Str("event_id", ev.EventID).
			Str("musician_id", ev.MusicianID).
			Str("status", ev.Status).
			Msg("booking notification")
	case events.RKMessageSent:
		ev, err := events.Unmarshal[events.MessageSent](body)
		if err != nil {
			return err
		}
		n.log.Info().
			Str("routing_key", routingKey).
			Str("message_id", ev.MessageID).
			Str("booking_id", ev.BookingID).
			Str("recipient_id", ev.RecipientID).
			Msg("message notification")
	default:
		n.log.Warn().Str("routing_key", routingKey).Msg("dropping unknown event")
	}
	return nil
}
