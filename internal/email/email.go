package email

import (
	"context"
	"fmt"

	"github.com/emirhankarahan/flyticket/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.TicketEvent) error {
	fmt.Printf("send email to %s about %s for flight %s ticket %s\n", event.PassengerEmail, event.Type, event.FlightID, event.TicketID)
	return nil
}
