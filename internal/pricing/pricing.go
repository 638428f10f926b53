package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/p-shah256/bridge/internal/storage"
	"github.com/p-shah256/bridge/pkg/types"
)

var (
	ErrUnknownTier   = errors.New("unknown pricing tier")
	ErrInvalidStatus = errors.New("invalid payment status")
)

// Prices are in cents.
var tiers = []types.PricingTier{
	{
		ID:       "basic",
		Name:     "Basic Match",
		Price:    2900,
		Currency: "usd",
		Features: []string{
			"AI job matching analysis",
			"Top 5 job recommendations",
			"Basic success probability assessment",
			"General application guidance",
		},
		Description: "Perfect for exploring your options",
	},
	{
		ID:       "detailed",
		Name:     "Detailed Analysis",
		Price:    7900,
		Currency: "usd",
		Features: []string{
			"Comprehensive AI job matching",
			"Top 15 job recommendations",
			"Detailed step-by-step action plans",
			"Country-specific visa guidance",
			"Resume optimization suggestions",
			"Interview preparation tips",
		},
		Description: "Complete analysis and actionable guidance",
	},
	{
		ID:       "premium",
		Name:     "Premium Support",
		Price:    19900,
		Currency: "usd",
		Features: []string{
			"Everything in Detailed Analysis",
			"Unlimited job matching updates",
			"Priority customer support",
			"Custom application templates",
			"Salary negotiation strategies",
			"30-day application tracking",
		},
		Description: "Full-service job placement support",
	},
}

var serviceTypes = map[string]string{
	"basic":    "basic_match",
	"detailed": "detailed_analysis",
	"premium":  "premium_support",
}

// Tiers returns a copy of the catalog in display order.
func Tiers() []types.PricingTier {
	out := make([]types.PricingTier, len(tiers))
	for i, t := range tiers {
		t.Features = slices.Clone(t.Features)
		out[i] = t
	}
	return out
}

func Tier(id string) (types.PricingTier, bool) {
	for _, t := range Tiers() {
		if t.ID == id {
			return t, true
		}
	}
	return types.PricingTier{}, false
}

// Service records tier purchases. Payments are tracked, not charged.
type Service struct {
	store storage.Storage
}

func NewService(store storage.Storage) *Service {
	return &Service{store: store}
}

// Order creates a pending purchase of tierID for an existing user.
func (s *Service) Order(ctx context.Context, userID, tierID string) (*types.ServicePricing, error) {
	tier, ok := Tier(tierID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTier, tierID)
	}
	if _, err := s.store.GetUserProfile(ctx, userID); err != nil {
		return nil, err
	}

	order, err := s.store.CreateServicePricing(ctx, types.NewServicePricing{
		UserID:      userID,
		ServiceType: serviceTypes[tier.ID],
		Price:       tier.Price,
		Currency:    tier.Currency,
		Features:    tier.Features,
		Status:      types.PaymentPending,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	slog.Info("service order created",
		"component", "pricing",
		"order_id", order.ID,
		"user_id", userID,
		"service_type", order.ServiceType)
	return order, nil
}

func (s *Service) Orders(ctx context.Context, userID string) ([]types.ServicePricing, error) {
	return s.store.GetServicePricing(ctx, userID)
}

// UpdateStatus moves an order to status. paymentID is kept only when non-empty.
func (s *Service) UpdateStatus(ctx context.Context, id, status, paymentID string) (*types.ServicePricing, error) {
	if !types.ValidPaymentStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.store.UpdateServicePricingStatus(ctx, id, status, paymentID)
}
