package payment

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestSimulatedGatewayCharge(t *testing.T) {
	gw := NewSimulatedGateway()
	gw.Delay = time.Millisecond

	ref, err := gw.Charge(context.Background(), 500)
	if err != nil {
		t.Fatalf("Charge returned error: %v", err)
	}
	if !strings.HasPrefix(ref, "pi_") {
		t.Errorf("reference = %q, want pi_ prefix", ref)
	}
}

func TestSimulatedGatewayReferencesAreUnique(t *testing.T) {
	gw := NewSimulatedGateway()
	gw.Delay = time.Millisecond

	first, err := gw.Charge(context.Background(), 500)
	if err != nil {
		t.Fatalf("Charge returned error: %v", err)
	}
	second, err := gw.Charge(context.Background(), 500)
	if err != nil {
		t.Fatalf("Charge returned error: %v", err)
	}
	if first == second {
		t.Errorf("two charges produced the same reference %q", first)
	}
}

func TestSimulatedGatewayHonorsContext(t *testing.T) {
	gw := NewSimulatedGateway()
	gw.Delay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := gw.Charge(ctx, 500); err == nil {
		t.Fatal("cancelled charge did not fail")
	}
}
