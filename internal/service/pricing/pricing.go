package pricing

import (
	"context"
	"fmt"
	"math"

	"healthybowl-service/internal/domain/catalog"
	"healthybowl-service/internal/repository/postgres"

	"go.uber.org/zap"
)

const (
	productFruits  = "Fruits"
	productSprouts = "Sprouts"

	// Monthly plans get a flat discount on the per-delivery price.
	monthlyPlanName = "Monthly"
	monthlyDiscount = 0.1
)

// DeliveryPricing is the cost/price breakdown for one delivery of a mix.
type DeliveryPricing struct {
	FruitsCost   float64 `json:"fruits_cost"`
	SproutsCost  float64 `json:"sprouts_cost"`
	FruitsPrice  float64 `json:"fruits_price"`
	SproutsPrice float64 `json:"sprouts_price"`
	TotalCost    float64 `json:"total_cost"`
	TotalPrice   float64 `json:"total_price"`
	Margin       float64 `json:"margin"`
}

// SubscriptionPricing is the quote shown in the plan builder.
type SubscriptionPricing struct {
	PricePerDelivery float64 `json:"price_per_delivery"`
	CycleTotal       float64 `json:"cycle_total"`
	Savings          float64 `json:"savings"`
}

type PricingService struct {
	pricingRepo *postgres.PricingRepository
	planRepo    *postgres.PlanRepository
	logger      *zap.Logger
}

func NewPricingService(pricingRepo *postgres.PricingRepository, planRepo *postgres.PlanRepository, logger *zap.Logger) *PricingService {
	return &PricingService{
		pricingRepo: pricingRepo,
		planRepo:    planRepo,
		logger:      logger,
	}
}

// CalculateDeliveryPricing prices one delivery of the given mix at the
// current per-box rates.
func (s *PricingService) CalculateDeliveryPricing(ctx context.Context, sizeML, mixFruits, mixSprouts int) (*DeliveryPricing, error) {
	fruits, err := s.pricingRepo.CurrentForProduct(ctx, productFruits, sizeML)
	if err != nil {
		return nil, fmt.Errorf("fruits pricing not found: %w", err)
	}
	sprouts, err := s.pricingRepo.CurrentForProduct(ctx, productSprouts, sizeML)
	if err != nil {
		return nil, fmt.Errorf("sprouts pricing not found: %w", err)
	}

	return BuildDeliveryPricing(fruits, sprouts, mixFruits, mixSprouts), nil
}

// CalculateSubscriptionPricing quotes a plan for the given mix, applying the
// monthly discount where it applies.
func (s *PricingService) CalculateSubscriptionPricing(ctx context.Context, planID int64, sizeML, mixFruits, mixSprouts int) (*SubscriptionPricing, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("plan not found: %w", err)
	}

	deliveryPricing, err := s.CalculateDeliveryPricing(ctx, sizeML, mixFruits, mixSprouts)
	if err != nil {
		return nil, err
	}

	quote := QuotePlan(deliveryPricing.TotalPrice, plan.Name, plan.DeliveriesPerCycle)
	return &quote, nil
}

// UpdatePricing records a new effective pricing row for a product.
func (s *PricingService) UpdatePricing(ctx context.Context, req *catalog.UpdatePricingRequest) (*catalog.Pricing, error) {
	p := &catalog.Pricing{
		ProductID:   req.ProductID,
		CostPerBox:  req.CostPerBox,
		PricePerBox: req.PricePerBox,
	}
	if err := s.pricingRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("pricing updated",
		zap.Int64("product_id", req.ProductID),
		zap.Float64("price_per_box", req.PricePerBox),
	)
	return p, nil
}

// ListCurrent returns all currently effective pricing rows.
func (s *PricingService) ListCurrent(ctx context.Context) ([]catalog.Pricing, error) {
	return s.pricingRepo.ListCurrent(ctx)
}

// BuildDeliveryPricing multiplies the per-box rates out over the mix.
func BuildDeliveryPricing(fruits, sprouts *catalog.PricingInfo, mixFruits, mixSprouts int) *DeliveryPricing {
	fruitsCost := fruits.CostPerBox * float64(mixFruits)
	sproutsCost := sprouts.CostPerBox * float64(mixSprouts)
	fruitsPrice := fruits.PricePerBox * float64(mixFruits)
	sproutsPrice := sprouts.PricePerBox * float64(mixSprouts)

	totalCost := fruitsCost + sproutsCost
	totalPrice := fruitsPrice + sproutsPrice

	return &DeliveryPricing{
		FruitsCost:   fruitsCost,
		SproutsCost:  sproutsCost,
		FruitsPrice:  fruitsPrice,
		SproutsPrice: sproutsPrice,
		TotalCost:    totalCost,
		TotalPrice:   totalPrice,
		Margin:       totalPrice - totalCost,
	}
}

// QuotePlan applies the plan discount to a per-delivery price and totals the
// billing cycle. Only the Monthly plan carries a discount.
func QuotePlan(totalPrice float64, planName string, deliveriesPerCycle int) SubscriptionPricing {
	discount := DiscountFor(planName)
	pricePerDelivery := math.Round(totalPrice * (1 - discount))

	return SubscriptionPricing{
		PricePerDelivery: pricePerDelivery,
		CycleTotal:       pricePerDelivery * float64(deliveriesPerCycle),
		Savings:          math.Round(totalPrice * float64(deliveriesPerCycle) * discount),
	}
}

// DiscountFor returns the discount rate for a plan name.
func DiscountFor(planName string) float64 {
	if planName == monthlyPlanName {
		return monthlyDiscount
	}
	return 0
}
