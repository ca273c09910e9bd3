package models

import "time"

type BookingStatus string

const (
	BookingPending         BookingStatus = "PENDING"
	BookingConfirmed       BookingStatus = "CONFIRMED"
	BookingProcessed       BookingStatus = "PROCESSED"
	BookingCancelled       BookingStatus = "CANCELLED"
	BookingReserveCanceled BookingStatus = "RESERVE_CANCELLED"
)

// ActiveBookingStatuses count against queue and block capacity.
var ActiveBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed}

// IsActive reports whether the booking can still be confirmed, cancelled or
// turned into a ticket.
func (b *Booking) IsActive() bool {
	for _, status := range ActiveBookingStatuses {
		if b.Status == status {
			return true
		}
	}
	return false
}

// Booking is a reservation for a future date, optionally pinned to a block.
type Booking struct {
	ID                           string               `bson:"id" json:"id"`
	CommerceID                   string               `bson:"commerceId" json:"commerceId"`
	QueueID                      string               `bson:"queueId" json:"queueId"`
	Number                       int                  `bson:"number" json:"number"`
	Date                         string               `bson:"date" json:"date"`                   // YYYY-MM-DD
	DateFormatted                time.Time            `bson:"dateFormatted" json:"dateFormatted"` // midnight UTC of Date
	Block                        *Block               `bson:"block,omitempty" json:"block,omitempty"`
	Status                       BookingStatus        `bson:"status" json:"status"`
	Type                         AttentionType        `bson:"type" json:"type"`
	Channel                      string               `bson:"channel,omitempty" json:"channel,omitempty"`
	User                         *User                `bson:"user,omitempty" json:"user,omitempty"`
	ClientID                     string               `bson:"clientId,omitempty" json:"clientId,omitempty"`
	PackageID                    string               `bson:"packageId,omitempty" json:"packageId,omitempty"`
	PackageProceduresTotalNumber int                  `bson:"packageProceduresTotalNumber,omitempty" json:"packageProceduresTotalNumber,omitempty"`
	PackageProcedureNumber       int                  `bson:"packageProcedureNumber,omitempty" json:"packageProcedureNumber,omitempty"`
	AttentionID                  string               `bson:"attentionId,omitempty" json:"attentionId,omitempty"`
	ServicesID                   []string             `bson:"servicesId,omitempty" json:"servicesId,omitempty"`
	ServicesDetails              []ServiceDetail      `bson:"servicesDetails,omitempty" json:"servicesDetails,omitempty"`
	CreatedAt                    time.Time            `bson:"createdAt" json:"createdAt"`
	Processed                    bool                 `bson:"processed" json:"processed"`
	ProcessedAt                  *time.Time           `bson:"processedAt,omitempty" json:"processedAt,omitempty"`
	Cancelled                    bool                 `bson:"cancelled" json:"cancelled"`
	CancelledAt                  *time.Time           `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	Confirmed                    bool                 `bson:"confirmed" json:"confirmed"`
	ConfirmedAt                  *time.Time           `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
	ConfirmedBy                  string               `bson:"confirmedBy,omitempty" json:"confirmedBy,omitempty"`
	ConfirmationData             *PaymentConfirmation `bson:"confirmationData,omitempty" json:"confirmationData,omitempty"`
	ConfirmNotified              bool                 `bson:"confirmNotified" json:"confirmNotified"`
	ConfirmNotifiedEmail         bool                 `bson:"confirmNotifiedEmail" json:"confirmNotifiedEmail"`
	ConfirmNotifiedWhatsapp      bool                 `bson:"confirmNotifiedWhatsapp" json:"confirmNotifiedWhatsapp"`
	Transfered                   bool                 `bson:"transfered" json:"transfered"`
	TransferedAt                 *time.Time           `bson:"transferedAt,omitempty" json:"transferedAt,omitempty"`
	TransferedOrigin             string               `bson:"transferedOrigin,omitempty" json:"transferedOrigin,omitempty"`
	TransferedBy                 string               `bson:"transferedBy,omitempty" json:"transferedBy,omitempty"`
	TransferedCount              int                  `bson:"transferedCount" json:"transferedCount"`
	Edited                       bool                 `bson:"edited" json:"edited"`
	EditedAt                     *time.Time           `bson:"editedAt,omitempty" json:"editedAt,omitempty"`
	EditedDateOrigin             string               `bson:"editedDateOrigin,omitempty" json:"editedDateOrigin,omitempty"`
	EditedBlockOrigin            *Block               `bson:"editedBlockOrigin,omitempty" json:"editedBlockOrigin,omitempty"`
	EditedCount                  int                  `bson:"editedCount" json:"editedCount"`
	EditedBy                     string               `bson:"editedBy,omitempty" json:"editedBy,omitempty"`
	TermsConditionsToAcceptCode  string               `bson:"termsConditionsToAcceptCode,omitempty" json:"termsConditionsToAcceptCode,omitempty"`
	Comment                      string               `bson:"comment,omitempty" json:"comment,omitempty"`
}

// BookingDetails is a booking joined with its queue and commerce.
type BookingDetails struct {
	Booking
	Queue     *Queue    `json:"queue,omitempty"`
	Commerce  *Commerce `json:"commerce,omitempty"`
	BeforeYou int       `json:"beforeYou"`
}

// ContainsBookingStatus reports whether status is one of statuses.
func ContainsBookingStatus(statuses []BookingStatus, status BookingStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
