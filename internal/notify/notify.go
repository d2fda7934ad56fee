package notify

import (
	"context"
	"fmt"

	"github.com/Domenick1991/roombooking/internal/kafka"
)

// Notifier turns request events into user-facing messages. It stands in for
// whatever channel actually reaches users (mail, chat, toasts).
type Notifier struct{}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Notify(ctx context.Context, event kafka.RequestEvent) error {
	fmt.Printf("notify %s: %s for room %s on %s (slots %d-%d)\n",
		event.Requester, message(event.Type), event.RoomID, event.Date, event.StartSlot, event.EndSlot)
	return nil
}

func message(eventType string) string {
	switch eventType {
	case "request_created":
		return "your booking request was received and is awaiting approval"
	case "request_approved":
		return "your booking request has been approved"
	case "request_rejected":
		return "your booking request has been rejected"
	case "request_cancelled":
		return "your booking has been cancelled"
	default:
		return "your booking request was updated"
	}
}
