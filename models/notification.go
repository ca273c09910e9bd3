package models

import "time"

type NotificationChannel string

const (
	ChannelWhatsapp NotificationChannel = "WHATSAPP"
	ChannelEmail    NotificationChannel = "EMAIL"
)

type NotificationType string

const (
	NotificationAttentionNow     NotificationType = "NOW"
	NotificationAttentionOne     NotificationType = "ONE"
	NotificationAttentionFive    NotificationType = "FIVE"
	NotificationAttentionTicket  NotificationType = "ATTENTION"
	NotificationSurvey           NotificationType = "SURVEY"
	NotificationPostAttention    NotificationType = "POST_ATTENTION"
	NotificationAttentionCancel  NotificationType = "ATTENTION_CANCELLED"
	NotificationBookingCreated   NotificationType = "BOOKING"
	NotificationBookingConfirm   NotificationType = "BOOKING_CONFIRM"
	NotificationBookingCancelled NotificationType = "BOOKING_CANCELLED"
)

// Notification is the persisted record of one outbound message.
type Notification struct {
	ID          string              `bson:"id" json:"id"`
	Channel     NotificationChannel `bson:"channel" json:"channel"`
	Type        NotificationType    `bson:"type" json:"type"`
	Receiver    string              `bson:"receiver" json:"receiver"`
	AttentionID string              `bson:"attentionId,omitempty" json:"attentionId,omitempty"`
	BookingID   string              `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	CommerceID  string              `bson:"commerceId,omitempty" json:"commerceId,omitempty"`
	QueueID     string              `bson:"queueId,omitempty" json:"queueId,omitempty"`
	Provider    string              `bson:"provider,omitempty" json:"provider,omitempty"`
	ProviderID  string              `bson:"providerId,omitempty" json:"providerId,omitempty"`
	Comment     string              `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
}
