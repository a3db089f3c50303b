//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"slotgate/internal/pkg/errs"
	"slotgate/internal/usecase/commands"
)

// StubSignature is the only webhook signature the stub verifier accepts.
const StubSignature = "e2e-signature"

// StubGateway replaces the Stripe adapter in E2E runs. It plays both sides
// of the provider boundary: CreateSession stores the session metadata, and
// VerifyAndParse replays it into the event so the webhook path exercises the
// same chunked payload a real checkout would carry.
type StubGateway struct {
	mu       sync.Mutex
	seq      int
	sessions map[string]map[string]string
}

func NewStubGateway() *StubGateway {
	return &StubGateway{sessions: make(map[string]map[string]string)}
}

func (g *StubGateway) CreateSession(_ context.Context, metadata map[string]string, _ commands.PriceSpec) (*commands.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	id := fmt.Sprintf("cs_e2e_%d", g.seq)
	g.sessions[id] = metadata
	return &commands.CheckoutSession{
		ID:  id,
		URL: "https://checkout.example/pay/" + id,
	}, nil
}

// LastSessionID returns the most recently created session.
func (g *StubGateway) LastSessionID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("cs_e2e_%d", g.seq)
}

type stubEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	PaymentID string `json:"payment_id"`
}

func (g *StubGateway) VerifyAndParse(body []byte, sigHeader string) (commands.ProviderEvent, error) {
	if sigHeader != StubSignature {
		return commands.ProviderEvent{}, errs.New("signature verification failed")
	}

	var ev stubEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return commands.ProviderEvent{}, errs.Wrap(err, "malformed event body")
	}

	g.mu.Lock()
	metadata := g.sessions[ev.SessionID]
	g.mu.Unlock()

	return commands.ProviderEvent{
		ID:        ev.ID,
		Type:      ev.Type,
		SessionID: ev.SessionID,
		PaymentID: ev.PaymentID,
		Metadata:  metadata,
	}, nil
}

// StubDispatcher records notifications instead of publishing to a broker.
type StubDispatcher struct {
	mu    sync.Mutex
	sends []StubNotification
}

type StubNotification struct {
	Kind      string
	Recipient string
	Payload   map[string]any
}

func NewStubDispatcher() *StubDispatcher {
	return &StubDispatcher{}
}

func (d *StubDispatcher) Send(_ context.Context, kind, recipient string, payload map[string]any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sends = append(d.sends, StubNotification{Kind: kind, Recipient: recipient, Payload: payload})
	return nil
}

func (d *StubDispatcher) Sent() []StubNotification {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]StubNotification, len(d.sends))
	copy(out, d.sends)
	return out
}

func (d *StubDispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sends = nil
}
