package payments

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestNewMercadoPagoGateway(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		_, err := NewMercadoPagoGateway("", false, nil)
		if !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
			t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
		}
	})

	t.Run("mock mode needs no token", func(t *testing.T) {
		g, err := NewMercadoPagoGateway("", true, nil)
		if err != nil || g == nil {
			t.Fatalf("expected gateway, got %v", err)
		}
	})
}

func TestMercadoPagoGateway_CreatePayment(t *testing.T) {
	t.Run("mock approves and echoes payload", func(t *testing.T) {
		g, _ := NewMercadoPagoGateway("", true, nil)
		id, status, raw, err := g.CreatePayment(context.Background(), json.RawMessage(`{"external_reference":"inv-1"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id == "" || status != "approved" {
			t.Fatalf("unexpected result id=%q status=%q", id, status)
		}
		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("invalid response: %v", err)
		}
		if body["external_reference"] != "inv-1" || body["status_detail"] != "accredited" {
			t.Fatalf("unexpected response: %v", body)
		}
	})

	t.Run("nil gateway", func(t *testing.T) {
		var g *MercadoPagoGateway
		_, _, _, err := g.CreatePayment(context.Background(), json.RawMessage(`{}`))
		if !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
			t.Fatalf("expected not configured, got %v", err)
		}
	})
}
