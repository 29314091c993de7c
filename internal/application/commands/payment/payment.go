package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db/repo"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

type Payment struct {
	uowFactory *dbs.UOWFactory
	cfg        PaymentConfig
}

type PaymentConfig struct {
	apiKey     string
	webhookKey string
	returnUrl  string
}

func NewPaymentConfig() PaymentConfig {
	return PaymentConfig{
		apiKey:     os.Getenv("STRIPE_KEY"),
		webhookKey: os.Getenv("STRIPE_WEBHOOK"),
		returnUrl:  os.Getenv("STRIPE_RETURN_URL"),
	}
}

func NewPayment(uowFactory *dbs.UOWFactory, cfg PaymentConfig) *Payment {
	stripe.Key = cfg.apiKey
	stripe.SetHTTPClient(&http.Client{Timeout: 10 * time.Second})
	return &Payment{
		uowFactory: uowFactory,
		cfg:        cfg,
	}
}

// CreatePayment opens a one-time checkout for the website fee. The session id
// is stored on the submission so the webhook can find its way back.
func (c *Payment) CreatePayment(ctx context.Context, req *dto.CreatePaymentRequest, identity *auth.Identity) (*dto.CreatePaymentResponse, error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	sub, err := repo.NewSubmissionRepo(tx).GetForUpdate(ctx, req.SubmissionID)
	if err != nil {
		return nil, err
	}
	if sub.PaidAt != nil {
		return nil, errs.ConflictError{Err: fmt.Errorf("submission %d is already paid for", req.SubmissionID)}
	}
	if !consts.CanGenerateWebsite(sub.Status) {
		return nil, errs.ValidationError{Err: fmt.Errorf("submission %d is not ready for payment (status %s)", req.SubmissionID, sub.Status)}
	}
	if sub.Amount <= 0 {
		return nil, errs.ValidationError{Err: fmt.Errorf("submission %d has no price set", req.SubmissionID)}
	}

	params := &stripe.CheckoutSessionParams{
		UIMode:    stripe.String("embedded"),
		ReturnURL: stripe.String(c.cfg.returnUrl + "/complete?session_id={CHECKOUT_SESSION_ID}"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("php"),
					UnitAmount: stripe.Int64(sub.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Website for " + sub.BusinessName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		Metadata: map[string]string{
			"submission_id": strconv.FormatUint(req.SubmissionID, 10),
		},
	}

	s, err := session.New(params)
	if err != nil {
		return nil, errs.UpstreamError{Service: "stripe", Err: fmt.Errorf("error creating session: %v", err)}
	}

	_, err = tx.Exec(ctx, "UPDATE negosyo.submissions SET payment_session_id = $1, updated_at = $2 WHERE id = $3",
		s.ID, time.Now(), req.SubmissionID)
	if err != nil {
		return nil, fmt.Errorf("err storing payment session, %v", err)
	}

	return &dto.CreatePaymentResponse{ClientSecret: s.ClientSecret}, nil
}

func (c *Payment) Webhook(ctx context.Context, req []byte, stripeHeader string) error {
	event, err := webhook.ConstructEvent(req, stripeHeader, c.cfg.webhookKey)
	if err != nil {
		return fmt.Errorf("error creating event, %v", err)
	}

	slog.Info("Handling event", "type", event.Type)

	switch event.Type {
	case "checkout.session.completed":
		return c.handleCheckoutCompleted(ctx, event)
	default:
		return fmt.Errorf("unhandled event type: %s", event.Type)
	}
}

func (c *Payment) handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var checkout stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &checkout); err != nil {
		return fmt.Errorf("error parsing checkout session, %v", err)
	}
	submissionID, err := strconv.ParseUint(checkout.Metadata["submission_id"], 10, 64)
	if err != nil {
		return fmt.Errorf("checkout session %s carries no submission id", checkout.ID)
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	sub, err := repo.NewSubmissionRepo(tx).GetForUpdate(ctx, submissionID)
	if err != nil {
		return err
	}
	if sub.PaidAt != nil {
		// webhook redelivery, nothing to do
		return nil
	}

	now := time.Now()
	newStatus := sub.Status
	switch sub.Status {
	case consts.SubmissionStatusApproved, consts.SubmissionStatusWebsiteGenerated:
		newStatus = consts.SubmissionStatusPendingPayment
	}
	_, err = tx.Exec(ctx, `UPDATE negosyo.submissions
		SET paid_at = $1, payment_session_id = $2, status = $3, updated_at = $1
		WHERE id = $4`,
		now, checkout.ID, newStatus, submissionID)
	if err != nil {
		return fmt.Errorf("err recording payment, %v", err)
	}

	slog.Info("Checkout completed", "submissionID", submissionID, "session", checkout.ID)
	return nil
}
