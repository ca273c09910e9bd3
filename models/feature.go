package models

type FeatureType string

const (
	FeatureWhatsapp FeatureType = "WHATSAPP"
	FeatureEmail    FeatureType = "EMAIL"
	FeatureProduct  FeatureType = "PRODUCT"
)

// FeatureToggle switches a behaviour on or off for one commerce.
type FeatureToggle struct {
	ID         string      `bson:"id" json:"id"`
	CommerceID string      `bson:"commerceId" json:"commerceId"`
	Name       string      `bson:"name" json:"name"`
	Type       FeatureType `bson:"type" json:"type"`
	Active     bool        `bson:"active" json:"active"`
}

// Toggle names.
const (
	ToggleWhatsappNotifyNow       = "whatsapp-notify-now"
	ToggleWhatsappNotifyOne       = "whatsapp-notify-one"
	ToggleWhatsappNotifyFive      = "whatsapp-notify-five"
	ToggleWhatsappCsat            = "whatsapp-csat"
	ToggleWhatsappBooking         = "whatsapp-booking"
	ToggleBookingWhatsappConfirm  = "booking-whatsapp-confirm"
	ToggleBookingWhatsappCancel   = "booking-whatsapp-cancel"
	ToggleAttentionWhatsappCancel = "attention-whatsapp-cancel"

	ToggleEmailNotifyNow              = "email-notify-now"
	ToggleEmailAttention              = "email-attention"
	ToggleEmailCsat                   = "email-csat"
	ToggleEmailPostAttention          = "email-post-attention"
	ToggleEmailBooking                = "email-booking"
	ToggleBookingEmailConfirm         = "booking-email-confirm"
	ToggleEmailBookingTermsConditions = "email-bookings-terms-conditions"

	ToggleOnlySurvey              = "only-survey"
	ToggleAttentionConfirmPayment = "attention-confirm-payment"
	ToggleBookingConfirm          = "booking-confirm"
	ToggleBookingConfirmPayment   = "booking-confirm-payment"
)
