package gateway

import (
	"context"
	"errors"

	"barberbook/internal/pkg/config"
	"barberbook/internal/usecase/commands"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripeGateway settles charges through Stripe payment intents. A settled
// intent's ID becomes the booking's settlement reference.
type StripeGateway struct{}

func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	stripe.Key = cfg.SecretKey
	return &StripeGateway{}
}

func (g *StripeGateway) Charge(ctx context.Context, req commands.ChargeRequest) (*commands.SettlementResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.AmountCents),
		Currency:      stripe.String(req.Currency),
		PaymentMethod: stripe.String(req.PaymentMethod),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	params.AddMetadata("booking_id", req.BookingID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return declineFromErr(err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return &commands.SettlementResult{
			Success:       false,
			FailureReason: "payment intent status " + string(pi.Status),
		}, nil
	}

	return &commands.SettlementResult{
		Success:   true,
		Reference: pi.ID,
	}, nil
}

// declineFromErr separates declines, which consume a payment attempt, from
// transport problems, which are reported as transient.
func declineFromErr(err error) (*commands.SettlementResult, error) {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return nil, err
	}

	switch stripeErr.Type {
	case stripe.ErrorTypeCard:
		reason := string(stripeErr.Code)
		if stripeErr.DeclineCode != "" {
			reason = string(stripeErr.DeclineCode)
		}
		return &commands.SettlementResult{
			Success:       false,
			FailureReason: reason,
		}, nil
	case stripe.ErrorTypeAPI:
		return &commands.SettlementResult{
			Success:       false,
			FailureReason: "payment processor unavailable",
			Transient:     true,
		}, nil
	default:
		return &commands.SettlementResult{
			Success:       false,
			FailureReason: string(stripeErr.Type) + " error from payment processor",
		}, nil
	}
}
