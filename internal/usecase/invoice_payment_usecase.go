package usecase

import (
	"automobile_shop/internal/domain/entities"
	"automobile_shop/internal/usecase/interfaces"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrInvoicePaymentNotFound         = errors.New("invoice payment not found")
	ErrInvalidPaymentID               = errors.New("invalid payment id")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrAppointmentNotCompleted        = errors.New("appointment not completed")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// PaymentOptions configures how invoice payments reach the provider.
type PaymentOptions struct {
	// MockMode approves payments locally without calling the gateway.
	MockMode bool
	// AccessToken is inspected only to detect sandbox ("TEST-") credentials.
	AccessToken     string
	TestPayerEmail  string
	TestPayerUserID string
}

func (o PaymentOptions) sandbox() bool {
	return strings.HasPrefix(strings.TrimSpace(o.AccessToken), "TEST-")
}

// IInvoicePaymentUseCase charges the grand total of a completed appointment's invoice.

type IInvoicePaymentUseCase interface {
	CreateAndApprove(ctx context.Context, invoiceID string, mpPayload json.RawMessage) (entities.InvoicePayment, error)
	GetByID(ctx context.Context, id string) (entities.InvoicePayment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.InvoicePayment, error)
}

type InvoicePaymentUseCase struct {
	repo         interfaces.IInvoicePaymentRepository
	invoices     IInvoiceUseCase
	appointments interfaces.IAppointmentRepository
	gateway      interfaces.IPaymentGateway
	opts         PaymentOptions
	recorder     interfaces.IRecorder
	log          *zap.Logger
	now          func() time.Time
}

var _ IInvoicePaymentUseCase = (*InvoicePaymentUseCase)(nil)

func NewInvoicePaymentUseCase(repo interfaces.IInvoicePaymentRepository, invoices IInvoiceUseCase, appointments interfaces.IAppointmentRepository, gateway interfaces.IPaymentGateway, opts PaymentOptions, recorder interfaces.IRecorder, log *zap.Logger) *InvoicePaymentUseCase {
	if recorder == nil {
		recorder = interfaces.NopRecorder{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &InvoicePaymentUseCase{
		repo:         repo,
		invoices:     invoices,
		appointments: appointments,
		gateway:      gateway,
		opts:         opts,
		recorder:     recorder,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (u *InvoicePaymentUseCase) CreateAndApprove(ctx context.Context, invoiceID string, mpPayload json.RawMessage) (entities.InvoicePayment, error) {
	p, err := u.createAndApprove(ctx, invoiceID, mpPayload)
	if err != nil {
		u.recorder.ObservePayment(paymentResult(err))
		return entities.InvoicePayment{}, err
	}
	u.recorder.ObservePayment("approved")
	return p, nil
}

func (u *InvoicePaymentUseCase) createAndApprove(ctx context.Context, invoiceID string, mpPayload json.RawMessage) (entities.InvoicePayment, error) {
	log := u.log.With(zap.String("invoice_id", strings.TrimSpace(invoiceID)))
	log.Info("[payment][usecase] create-and-approve start", zap.Int("payload_len", len(mpPayload)))

	mockMode := u.opts.MockMode
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return entities.InvoicePayment{}, ErrInvalidInvoiceID
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !mockMode {
			log.Warn("[payment][usecase] invalid payload")
			return entities.InvoicePayment{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil && !mockMode {
		return entities.InvoicePayment{}, ErrPaymentGatewayNotConfigured
	}

	snapshot, err := u.invoices.FinalizeForPrint(ctx, invoiceID)
	if err != nil {
		log.Warn("[payment][usecase] failed loading invoice", zap.Error(err))
		return entities.InvoicePayment{}, err
	}
	status, err := u.appointmentStatus(ctx, snapshot.AppointmentID)
	if err != nil {
		return entities.InvoicePayment{}, err
	}
	if status != entities.AppointmentStatusCompleted {
		log.Warn("[payment][usecase] appointment not completed", zap.String("status", string(status)))
		return entities.InvoicePayment{}, ErrAppointmentNotCompleted
	}
	amount := snapshot.GrandTotal
	amountFloat, _ := amount.Float64()

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		return entities.InvoicePayment{}, ErrInvalidMPPayload
	}
	if !mockMode {
		if !hasNonEmptyString(reqMap, "payment_method_id") {
			log.Warn("[payment][usecase] missing payment_method_id")
			return entities.InvoicePayment{}, ErrInvalidMPPayload
		}
		u.normalizeSandboxPayer(reqMap)
		u.ensurePayerDefaults(reqMap)
		if !hasPayer(reqMap) {
			log.Warn("[payment][usecase] missing/invalid payer")
			return entities.InvoicePayment{}, ErrInvalidMPPayload
		}
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = invoiceID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Invoice %s", invoiceID)
	}
	// The invoice totals are the source of truth for the charged amount.
	reqMap["transaction_amount"] = amountFloat
	if mpPayload, err = json.Marshal(reqMap); err != nil {
		return entities.InvoicePayment{}, err
	}

	var (
		providerPaymentID string
		providerStatus    string
		providerResp      json.RawMessage
	)
	if mockMode {
		log.Info("[payment][usecase] mock mode enabled; skipping external payment gateway")
		providerPaymentID, providerStatus = strconv.FormatInt(u.now().UnixNano(), 10), "approved"
		stamp := u.now().Format(time.RFC3339Nano)
		reqMap["id"] = providerPaymentID
		reqMap["status"] = providerStatus
		reqMap["status_detail"] = "accredited"
		reqMap["date_created"] = stamp
		reqMap["date_approved"] = stamp
		if providerResp, err = json.Marshal(reqMap); err != nil {
			return entities.InvoicePayment{}, err
		}
	} else {
		providerPaymentID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, mpPayload)
		if err != nil {
			log.Warn("[payment][usecase] payment gateway failed", zap.Error(err))
			return entities.InvoicePayment{}, classifyGatewayError(err)
		}
	}
	log.Info("[payment][usecase] payment gateway success",
		zap.String("provider_payment_id", providerPaymentID),
		zap.String("provider_status", providerStatus),
	)

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Warn("[payment][usecase] provider response unmarshal failed", zap.Error(err))
	}

	created, err := u.repo.Create(ctx, entities.InvoicePayment{
		ID:            providerPaymentID,
		InvoiceID:     invoiceID,
		AppointmentID: snapshot.AppointmentID,
		Amount:        amount,
		Date:          u.now(),
		Status:        paymentStatus(providerStatus),
		MPPayloadRaw:  providerResp,
		MPPayload:     parsed,
	})
	if err != nil {
		log.Error("[payment][usecase] payment repository create failed", zap.String("payment_id", providerPaymentID), zap.Error(err))
		return entities.InvoicePayment{}, err
	}
	log.Info("[payment][usecase] create-and-approve success",
		zap.String("payment_id", created.ID),
		zap.String("status", string(created.Status)),
		zap.String("amount", created.Amount.StringFixed(entities.CurrencyPrecision)),
	)
	return created, nil
}

func (u *InvoicePaymentUseCase) appointmentStatus(ctx context.Context, appointmentID string) (entities.AppointmentStatus, error) {
	a, err := u.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return "", err
	}
	if a.ID == "" {
		return "", entities.ErrAppointmentNotFound
	}
	return a.Status, nil
}

func (u *InvoicePaymentUseCase) GetByID(ctx context.Context, id string) (entities.InvoicePayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.InvoicePayment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.InvoicePayment{}, err
	}
	if p.ID == "" {
		return entities.InvoicePayment{}, ErrInvoicePaymentNotFound
	}
	return p, nil
}

func (u *InvoicePaymentUseCase) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.InvoicePayment, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return nil, ErrInvalidInvoiceID
	}
	return u.repo.ListByInvoiceID(ctx, invoiceID)
}

// ensurePayerDefaults fills payer.type and, in sandbox, a test payer email when
// neither payer.id nor payer.email was sent.
func (u *InvoicePaymentUseCase) ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if email := strings.TrimSpace(u.opts.TestPayerEmail); email != "" {
		payer["email"] = email
	} else if u.opts.sandbox() {
		payer["email"] = "test_user_br@testuser.com"
	}
}

// normalizeSandboxPayer swaps the configured sandbox user id for its email.
func (u *InvoicePaymentUseCase) normalizeSandboxPayer(m map[string]any) {
	payer, ok := m["payer"].(map[string]any)
	if !ok || !hasPayerID(payer) || hasNonEmptyString(payer, "email") || !u.opts.sandbox() {
		return
	}
	userID := strings.TrimSpace(u.opts.TestPayerUserID)
	email := strings.TrimSpace(u.opts.TestPayerEmail)
	if userID == "" || email == "" || strings.TrimSpace(fmt.Sprintf("%v", payer["id"])) != userID {
		return
	}
	payer["email"] = email
	delete(payer, "id")
	u.log.Info("[payment][usecase] mapped sandbox payer user_id to payer.email")
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func paymentStatus(providerStatus string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(providerStatus)) {
	case "approved", "authorized":
		return entities.PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusDenied
	default:
		return entities.PaymentStatusPending
	}
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	default:
		return err
	}
}

func paymentResult(err error) string {
	switch {
	case errors.Is(err, ErrAppointmentNotCompleted):
		return "not_completed"
	case errors.Is(err, ErrInvalidMPPayload):
		return "invalid_payload"
	case errors.Is(err, ErrInvoiceNotFound):
		return "not_found"
	default:
		return "error"
	}
}
