package checkout

import (
	"time"

	"healthybowl-service/internal/domain/address"
)

type CreateSessionRequest struct {
	PlanID     int64         `json:"plan_id" binding:"required"`
	SizeML     int           `json:"size_ml" binding:"required"`
	MixFruits  int           `json:"mix_fruits" binding:"required,min=1"`
	MixSprouts int           `json:"mix_sprouts" binding:"required,min=1"`
	Address    address.Input `json:"address" binding:"required"`
	StartDate  time.Time     `json:"start_date" binding:"required"`
	TimeSlot   string        `json:"time_slot"`
}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	Key       string `json:"key"`
}

type VerifyRequest struct {
	GatewayOrderID   string        `json:"razorpay_order_id" binding:"required"`
	GatewayPaymentID string        `json:"razorpay_payment_id" binding:"required"`
	GatewaySignature string        `json:"razorpay_signature" binding:"required"`
	PlanID           int64         `json:"plan_id" binding:"required"`
	SizeML           int           `json:"size_ml" binding:"required"`
	MixFruits        int           `json:"mix_fruits" binding:"required,min=1"`
	MixSprouts       int           `json:"mix_sprouts" binding:"required,min=1"`
	Address          address.Input `json:"address" binding:"required"`
	StartDate        time.Time     `json:"start_date" binding:"required"`
	TimeSlot         string        `json:"time_slot"`
}

type VerifyResponse struct {
	SubscriptionID int64 `json:"subscription_id"`
	InvoiceID      int64 `json:"invoice_id"`
}
