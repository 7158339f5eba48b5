package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"

	"healthybowl-service/internal/domain/address"
	"healthybowl-service/internal/domain/billing"
	"healthybowl-service/internal/domain/checkout"
	"healthybowl-service/internal/domain/subscription"
	xerrors "healthybowl-service/internal/pkg/errors"
	"healthybowl-service/internal/repository/postgres"
	"healthybowl-service/internal/service/email"
	"healthybowl-service/internal/service/payment"
	"healthybowl-service/internal/service/pricing"
	"healthybowl-service/internal/service/schedule"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Base per-box price used when backfilling the subscription price at
// verification time.
const basePricePerBox = 50.0

type CheckoutService struct {
	userRepo         *postgres.UserRepository
	addressRepo      *postgres.AddressRepository
	planRepo         *postgres.PlanRepository
	subscriptionRepo *postgres.SubscriptionRepository
	invoiceRepo      *postgres.InvoiceRepository
	pricingSvc       *pricing.PricingService
	scheduleSvc      *schedule.ScheduleService
	gateway          *payment.Client
	emailSender      *email.EmailSender
	logger           *zap.Logger
}

func NewCheckoutService(
	userRepo *postgres.UserRepository,
	addressRepo *postgres.AddressRepository,
	planRepo *postgres.PlanRepository,
	subscriptionRepo *postgres.SubscriptionRepository,
	invoiceRepo *postgres.InvoiceRepository,
	pricingSvc *pricing.PricingService,
	scheduleSvc *schedule.ScheduleService,
	gateway *payment.Client,
	emailSender *email.EmailSender,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		userRepo:         userRepo,
		addressRepo:      addressRepo,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		invoiceRepo:      invoiceRepo,
		pricingSvc:       pricingSvc,
		scheduleSvc:      scheduleSvc,
		gateway:          gateway,
		emailSender:      emailSender,
		logger:           logger,
	}
}

// CreateSession quotes the plan, pins the delivery address and opens a
// payment gateway order for the cycle total.
func (s *CheckoutService) CreateSession(ctx context.Context, userID int64, req *checkout.CreateSessionRequest) (*checkout.CreateSessionResponse, error) {
	plan, err := s.planRepo.FindByID(ctx, req.PlanID)
	if err != nil {
		return nil, fmt.Errorf("plan not found: %w", err)
	}

	quote, err := s.pricingSvc.CalculateSubscriptionPricing(ctx, plan.ID, req.SizeML, req.MixFruits, req.MixSprouts)
	if err != nil {
		return nil, err
	}

	addr, err := s.findOrCreateAddress(ctx, userID, &req.Address)
	if err != nil {
		return nil, err
	}

	receipt := "sub_" + ulid.Make().String()
	notes := map[string]string{
		"user_id":    strconv.FormatInt(userID, 10),
		"plan_id":    strconv.FormatInt(plan.ID, 10),
		"address_id": strconv.FormatInt(addr.ID, 10),
		"size_ml":    strconv.Itoa(req.SizeML),
	}

	// Gateway amounts are in paise.
	order, err := s.gateway.CreateOrder(ctx, int64(quote.CycleTotal*100), "INR", receipt, notes)
	if err != nil {
		return nil, err
	}

	return &checkout.CreateSessionResponse{
		SessionID: order.ID,
		Key:       s.gateway.KeyID(),
	}, nil
}

// Verify checks the payment signature and, on success, creates the
// subscription, its first delivery cycle and a paid invoice. A signature
// mismatch is a hard reject with nothing created.
func (s *CheckoutService) Verify(ctx context.Context, userID int64, req *checkout.VerifyRequest) (*checkout.VerifyResponse, error) {
	if err := s.gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature); err != nil {
		s.logger.Warn("payment signature rejected",
			zap.Int64("user_id", userID),
			zap.String("gateway_order_id", req.GatewayOrderID),
		)
		return nil, err
	}

	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	plan, err := s.planRepo.FindByID(ctx, req.PlanID)
	if err != nil {
		return nil, fmt.Errorf("plan not found: %w", err)
	}

	addr, err := s.findOrCreateAddress(ctx, userID, &req.Address)
	if err != nil {
		return nil, err
	}

	nextBilling := req.StartDate.AddDate(0, 0, plan.CycleDays)
	sub := &subscription.Subscription{
		UserID:          u.ID,
		PlanID:          plan.ID,
		AddressID:       addr.ID,
		StartDate:       req.StartDate,
		Status:          subscription.StatusActive,
		SizeML:          req.SizeML,
		MixFruits:       req.MixFruits,
		MixSprouts:      req.MixSprouts,
		NextBillingDate: sql.NullTime{Time: nextBilling, Valid: true},
	}
	if err := s.subscriptionRepo.Create(ctx, nil, sub); err != nil {
		return nil, err
	}

	if err := s.scheduleSvc.GenerateDeliverySchedule(ctx, sub.ID, req.StartDate, plan.DeliveriesPerCycle); err != nil {
		return nil, err
	}

	// Base per-box pricing with the plan discount applied.
	totalPerDelivery := float64(req.MixFruits)*basePricePerBox + float64(req.MixSprouts)*basePricePerBox
	discount := pricing.DiscountFor(plan.Name)
	pricePerDelivery := math.Round(totalPerDelivery * (1 - discount))
	cycleAmount := math.Round(totalPerDelivery * (1 - discount) * float64(plan.DeliveriesPerCycle))

	if err := s.subscriptionRepo.UpdatePricePerDelivery(ctx, sub.ID, pricePerDelivery); err != nil {
		return nil, err
	}

	inv := &billing.Invoice{
		SubscriptionID: sub.ID,
		Amount:         cycleAmount,
		Currency:       "INR",
		Paid:           true,
		Gateway:        "razorpay",
		GatewayRef:     req.GatewayPaymentID,
	}
	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	// Confirmation email is best effort; checkout already succeeded.
	s.sendConfirmation(u.Email, plan.Name, req, pricePerDelivery)

	s.logger.Info("checkout verified",
		zap.Int64("user_id", u.ID),
		zap.Int64("subscription_id", sub.ID),
		zap.Int64("invoice_id", inv.ID),
	)

	return &checkout.VerifyResponse{
		SubscriptionID: sub.ID,
		InvoiceID:      inv.ID,
	}, nil
}

func (s *CheckoutService) findOrCreateAddress(ctx context.Context, userID int64, in *address.Input) (*address.Address, error) {
	addr, err := s.addressRepo.FindMatch(ctx, userID, in.Line1, in.City, in.Pincode)
	if err == nil {
		return addr, nil
	}
	if !errors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}

	addr = &address.Address{
		UserID:    userID,
		Line1:     in.Line1,
		Line2:     in.Line2,
		City:      in.City,
		State:     in.State,
		Pincode:   in.Pincode,
		IsDefault: true,
	}
	if err := s.addressRepo.Create(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *CheckoutService) sendConfirmation(to, planName string, req *checkout.VerifyRequest, pricePerDelivery float64) {
	subject, body := email.BuildOrderConfirmation(&email.OrderConfirmationDetails{
		PlanName:         planName,
		SizeML:           req.SizeML,
		MixFruits:        req.MixFruits,
		MixSprouts:       req.MixSprouts,
		PricePerDelivery: pricePerDelivery,
		StartDate:        req.StartDate.Format("02 Jan 2006"),
		Address: fmt.Sprintf("%s, %s, %s - %s",
			req.Address.Line1, req.Address.City, req.Address.State, req.Address.Pincode),
	})
	if err := s.emailSender.Send(to, subject, body); err != nil {
		s.logger.Warn("failed to send confirmation email", zap.Error(err))
	}
}
