package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Gateway charges an amount and returns an opaque payment reference. The core
// never talks to a processor directly; a real gateway can be substituted
// without touching pass or ticket creation.
type Gateway interface {
	Charge(ctx context.Context, amount int) (string, error)
}

// SimulatedGateway is the shipped implementation: a fixed delay and an
// always-successful charge, matching the demo payment flow this system
// replaces. References look like real processor intent ids ("pi_...").
type SimulatedGateway struct {
	Delay time.Duration
}

func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{Delay: 2 * time.Second}
}

func (g *SimulatedGateway) Charge(ctx context.Context, amount int) (string, error) {
	delay := g.Delay
	if delay <= 0 {
		delay = 2 * time.Second
	}

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return "pi_" + uuid.NewString(), nil
}
