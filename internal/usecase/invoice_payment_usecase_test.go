package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"automobile_shop/internal/domain/entities"
	mock_interfaces "automobile_shop/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

// snapshotInvoices serves a fixed snapshot; other IInvoiceUseCase methods are not used by payments.
type snapshotInvoices struct {
	IInvoiceUseCase
	snapshot entities.PrintableInvoice
	err      error
}

func (s snapshotInvoices) FinalizeForPrint(_ context.Context, invoiceID string) (entities.PrintableInvoice, error) {
	if s.err != nil {
		return entities.PrintableInvoice{}, s.err
	}
	out := s.snapshot
	out.InvoiceID = invoiceID
	return out, nil
}

func billedSnapshot() snapshotInvoices {
	return snapshotInvoices{snapshot: entities.PrintableInvoice{
		AppointmentID: "appt-1",
		GrandTotal:    decimal.RequireFromString("77.20"),
	}}
}

func TestInvoicePaymentUseCase_CreateAndApprove_Validations(t *testing.T) {
	t.Run("empty invoice id", func(t *testing.T) {
		uc := NewInvoicePaymentUseCase(nil, nil, nil, nil, PaymentOptions{}, nil, nil)
		_, err := uc.CreateAndApprove(context.Background(), " ", json.RawMessage(`{}`))
		if !errors.Is(err, ErrInvalidInvoiceID) {
			t.Fatalf("expected ErrInvalidInvoiceID, got %v", err)
		}
	})

	t.Run("invalid json payload", func(t *testing.T) {
		uc := NewInvoicePaymentUseCase(nil, nil, nil, nil, PaymentOptions{}, nil, nil)
		_, err := uc.CreateAndApprove(context.Background(), "inv-1", json.RawMessage(`{`))
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewInvoicePaymentUseCase(nil, billedSnapshot(), nil, nil, PaymentOptions{}, nil, nil)
		_, err := uc.CreateAndApprove(context.Background(), "inv-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if !errors.Is(err, ErrPaymentGatewayNotConfigured) {
			t.Fatalf("expected ErrPaymentGatewayNotConfigured, got %v", err)
		}
	})

	t.Run("invoice not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewInvoicePaymentUseCase(nil, snapshotInvoices{err: ErrInvoiceNotFound}, nil, gateway, PaymentOptions{}, nil, nil)

		_, err := uc.CreateAndApprove(context.Background(), "inv-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if !errors.Is(err, ErrInvoiceNotFound) {
			t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
		}
	})

	t.Run("appointment not completed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		appointments := mock_interfaces.NewMockIAppointmentRepository(ctrl)
		uc := NewInvoicePaymentUseCase(nil, billedSnapshot(), appointments, gateway, PaymentOptions{}, nil, nil)

		appointments.EXPECT().GetByID(gomock.Any(), "appt-1").Return(entities.Appointment{ID: "appt-1", Status: entities.AppointmentStatusOngoing}, nil)

		_, err := uc.CreateAndApprove(context.Background(), "inv-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if !errors.Is(err, ErrAppointmentNotCompleted) {
			t.Fatalf("expected ErrAppointmentNotCompleted, got %v", err)
		}
	})
}

func TestInvoicePaymentUseCase_CreateAndApprove_PayloadValidation(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{name: "missing payment_method_id", payload: `{"payer":{"email":"x@test.com"}}`},
		{name: "missing payer", payload: `{"payment_method_id":"pix"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			appointments := mock_interfaces.NewMockIAppointmentRepository(ctrl)
			uc := NewInvoicePaymentUseCase(nil, billedSnapshot(), appointments, gateway, PaymentOptions{}, nil, nil)

			appointments.EXPECT().GetByID(gomock.Any(), "appt-1").Return(entities.Appointment{ID: "appt-1", Status: entities.AppointmentStatusCompleted}, nil)

			_, err := uc.CreateAndApprove(context.Background(), "inv-1", json.RawMessage(tc.payload))
			if !errors.Is(err, ErrInvalidMPPayload) {
				t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
			}
		})
	}
}

func TestInvoicePaymentUseCase_CreateAndApprove_GatewayErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "customer not found", err: errors.New(`{"code":2002}`), want: ErrPaymentGatewayCustomerNotFound},
		{name: "invalid users", err: errors.New(`invalid users involved`), want: ErrPaymentGatewayInvalidUsers},
		{name: "unauthorized", err: errors.New(`{"error":"unauthorized"}`), want: ErrPaymentGatewayUnauthorized},
		{name: "bad request", err: errors.New(`{"status":400}`), want: ErrPaymentGatewayBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			appointments := mock_interfaces.NewMockIAppointmentRepository(ctrl)
			uc := NewInvoicePaymentUseCase(nil, billedSnapshot(), appointments, gateway, PaymentOptions{}, nil, nil)

			appointments.EXPECT().GetByID(gomock.Any(), "appt-1").Return(entities.Appointment{ID: "appt-1", Status: entities.AppointmentStatusCompleted}, nil)
			gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, tc.err)

			_, err := uc.CreateAndApprove(context.Background(), "inv-1", json.RawMessage(`{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestInvoicePaymentUseCase_CreateAndApprove_SuccessAndStatuses(t *testing.T) {
	cases := []struct {
		name           string
		providerStatus string
		want           entities.PaymentStatus
		providerResp   json.RawMessage
	}{
		{name: "approved", providerStatus: "approved", want: entities.PaymentStatusApproved, providerResp: json.RawMessage(`{"id":123}`)},
		{name: "rejected", providerStatus: "rejected", want: entities.PaymentStatusDenied, providerResp: json.RawMessage(`{"id":123}`)},
		{name: "pending default", providerStatus: "in_process", want: entities.PaymentStatusPending, providerResp: json.RawMessage(`{"id":123}`)},
		{name: "invalid provider response json", providerStatus: "approved", want: entities.PaymentStatusApproved, providerResp: json.RawMessage(`{`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := mock_interfaces.NewMockIInvoicePaymentRepository(ctrl)
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			appointments := mock_interfaces.NewMockIAppointmentRepository(ctrl)
			opts := PaymentOptions{AccessToken: "TEST-token", TestPayerUserID: "123", TestPayerEmail: "sandbox@test.com"}
			uc := NewInvoicePaymentUseCase(repo, billedSnapshot(), appointments, gateway, opts, nil, nil)

			appointments.EXPECT().GetByID(gomock.Any(), "appt-1").Return(entities.Appointment{ID: "appt-1", Status: entities.AppointmentStatusCompleted}, nil)
			gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
					var body map[string]any
					if err := json.Unmarshal(payload, &body); err != nil {
						t.Fatalf("payload should be valid json: %v", err)
					}
					if body["external_reference"] != "inv-1" {
						t.Fatalf("external_reference not set")
					}
					if body["description"] != "Invoice inv-1" {
						t.Fatalf("description not set")
					}
					if body["transaction_amount"] != float64(77.2) {
						t.Fatalf("transaction_amount should come from the invoice grand total")
					}
					payer := body["payer"].(map[string]any)
					if payer["email"] != "sandbox@test.com" || payer["id"] != nil {
						t.Fatalf("expected sandbox payer mapping, got %v", payer)
					}
					return "pay-1", tc.providerStatus, tc.providerResp, nil
				},
			)
			repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.InvoicePayment{})).DoAndReturn(
				func(_ context.Context, p entities.InvoicePayment) (entities.InvoicePayment, error) {
					if p.ID != "pay-1" || p.InvoiceID != "inv-1" || p.AppointmentID != "appt-1" || p.Status != tc.want {
						t.Fatalf("unexpected payment: %+v", p)
					}
					if !p.Amount.Equal(decimal.RequireFromString("77.2")) || p.Date.IsZero() {
						t.Fatalf("unexpected amount/date: %+v", p)
					}
					return p, nil
				},
			)

			res, err := uc.CreateAndApprove(context.Background(), "inv-1", json.RawMessage(`{"payment_method_id":"pix","payer":{"id":"123"}}`))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Status != tc.want {
				t.Fatalf("expected status %s, got %s", tc.want, res.Status)
			}
		})
	}

	t.Run("mock mode skips the gateway", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInvoicePaymentRepository(ctrl)
		appointments := mock_interfaces.NewMockIAppointmentRepository(ctrl)
		uc := NewInvoicePaymentUseCase(repo, billedSnapshot(), appointments, nil, PaymentOptions{MockMode: true}, nil, nil)

		appointments.EXPECT().GetByID(gomock.Any(), "appt-1").Return(entities.Appointment{ID: "appt-1", Status: entities.AppointmentStatusCompleted}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.InvoicePayment) (entities.InvoicePayment, error) {
			return p, nil
		})

		res, err := uc.CreateAndApprove(context.Background(), "inv-1", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.PaymentStatusApproved || res.MPPayload["status_detail"] != "accredited" {
			t.Fatalf("unexpected mock payment: %+v", res)
		}
	})
}

func TestInvoicePaymentUseCase_Getters(t *testing.T) {
	t.Run("GetByID invalid", func(t *testing.T) {
		uc := NewInvoicePaymentUseCase(nil, nil, nil, nil, PaymentOptions{}, nil, nil)
		if _, err := uc.GetByID(context.Background(), ""); !errors.Is(err, ErrInvalidPaymentID) {
			t.Fatalf("expected ErrInvalidPaymentID, got %v", err)
		}
	})

	t.Run("GetByID not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInvoicePaymentRepository(ctrl)
		uc := NewInvoicePaymentUseCase(repo, nil, nil, nil, PaymentOptions{}, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.InvoicePayment{}, nil)
		if _, err := uc.GetByID(context.Background(), "pay-1"); !errors.Is(err, ErrInvoicePaymentNotFound) {
			t.Fatalf("expected ErrInvoicePaymentNotFound, got %v", err)
		}
	})

	t.Run("ListByInvoiceID", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInvoicePaymentRepository(ctrl)
		uc := NewInvoicePaymentUseCase(repo, nil, nil, nil, PaymentOptions{}, nil, nil)

		repo.EXPECT().ListByInvoiceID(gomock.Any(), "inv-1").Return([]entities.InvoicePayment{{ID: "pay-1"}}, nil)
		items, err := uc.ListByInvoiceID(context.Background(), " inv-1 ")
		if err != nil || len(items) != 1 {
			t.Fatalf("unexpected result %v, %v", items, err)
		}
	})
}

func TestPaymentStatus(t *testing.T) {
	if paymentStatus("AUTHORIZED") != entities.PaymentStatusApproved {
		t.Fatalf("authorized should map to approved")
	}
	if paymentStatus("charged_back") != entities.PaymentStatusDenied {
		t.Fatalf("charged_back should map to denied")
	}
	if paymentStatus("") != entities.PaymentStatusPending {
		t.Fatalf("unknown should map to pending")
	}
}
