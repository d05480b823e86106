package email

import (
	"context"
	"fmt"

	"github.com/avshorin/airport-api/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	fmt.Printf("send email to %s: order %d with %d tickets\n", event.UserEmail, event.OrderID, len(event.Tickets))
	return nil
}
