package request

type ProviderNotificationRequest struct {
	SessionID         string `json:"session_id" binding:"required"`
	ExternalPaymentID string `json:"external_payment_id"`
	EventType         string `json:"event_type"`
}

type RefundPaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}
