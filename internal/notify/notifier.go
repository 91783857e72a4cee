package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Domenick1991/hackportal/internal/kafka"
)

// Message is a rendered notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier turns portal events into messages. Delivery is logging only; the
// portal has no outbound mail integration.
type Notifier struct {
	adminAddress string
	logger       *zap.Logger
}

func NewNotifier(adminAddress string, logger *zap.Logger) *Notifier {
	return &Notifier{adminAddress: adminAddress, logger: logger}
}

func (n *Notifier) Send(ctx context.Context, event kafka.Event) error {
	msg, ok := Render(event, n.adminAddress)
	if !ok {
		n.logger.Debug("Skipping event without notification", zap.String("type", event.Type), zap.String("event_id", event.ID))
		return nil
	}

	n.logger.Info("Send notification",
		zap.String("event_id", event.ID),
		zap.String("type", event.Type),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}

// Render builds the message for event. It reports false for events nobody
// needs to hear about.
func Render(event kafka.Event, adminAddress string) (Message, bool) {
	switch event.Type {
	case kafka.EventHacksImported:
		if adminAddress == "" || len(event.HackIDs) == 0 {
			return Message{}, false
		}
		return Message{
			To:      adminAddress,
			Subject: fmt.Sprintf("%d hacks imported", len(event.HackIDs)),
			Body:    fmt.Sprintf("Hack ids %d through %d are now available for judging.", event.HackIDs[0], event.HackIDs[len(event.HackIDs)-1]),
		}, true

	case kafka.EventRSVPRecorded:
		if event.Email == "" || event.Accepted == nil {
			return Message{}, false
		}
		answer := "declined"
		if *event.Accepted {
			answer = "accepted"
		}
		return Message{
			To:      event.Email,
			Subject: "Bus RSVP " + answer,
			Body:    fmt.Sprintf("You have %s your seat on the bus. You can change your answer from the transportation page.", answer),
		}, true

	case kafka.EventRSVPCancelled:
		if event.Email == "" {
			return Message{}, false
		}
		return Message{
			To:      event.Email,
			Subject: "Bus RSVP cancelled",
			Body:    "Your bus RSVP was withdrawn. If the deadline has passed the seat is released.",
		}, true
	}
	return Message{}, false
}
