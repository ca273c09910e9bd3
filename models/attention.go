package models

import "time"

type AttentionStatus string

const (
	AttentionPending                    AttentionStatus = "PENDING"
	AttentionProcessing                 AttentionStatus = "PROCESSING"
	AttentionTerminated                 AttentionStatus = "TERMINATED"
	AttentionSkipped                    AttentionStatus = "SKIPED"
	AttentionReactivated                AttentionStatus = "REACTIVATED"
	AttentionRated                      AttentionStatus = "RATED"
	AttentionUserCancelled              AttentionStatus = "USER_CANCELLED"
	AttentionTerminatedReserveCancelled AttentionStatus = "TERMINATED_RESERVE_CANCELLED"
	AttentionCancelled                  AttentionStatus = "CANCELLED"
)

// ActiveAttentionStatuses occupy a (queue, number, day) slot.
var ActiveAttentionStatuses = []AttentionStatus{
	AttentionPending,
	AttentionProcessing,
	AttentionRated,
	AttentionTerminated,
	AttentionReactivated,
}

// AvailableAttentionStatuses can still be called by number.
var AvailableAttentionStatuses = []AttentionStatus{AttentionUserCancelled, AttentionPending}

type AttentionType string

const (
	AttentionTypeStandard   AttentionType = "STANDARD"
	AttentionTypeNoDevice   AttentionType = "NODEVICE"
	AttentionTypeSurveyOnly AttentionType = "SURVEY_ONLY"
)

const (
	ChannelQR     = "QR"
	ChannelPortal = "PORTAL"
)

// ServiceDetail is the snapshot of a service attached to a ticket or booking.
type ServiceDetail struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name,omitempty" json:"name,omitempty"`
	Tag  string `bson:"tag,omitempty" json:"tag,omitempty"`
}

// Attention is a walk-in or slotted visit ticket.
type Attention struct {
	ID                               string               `bson:"id" json:"id"`
	CommerceID                       string               `bson:"commerceId" json:"commerceId"`
	QueueID                          string               `bson:"queueId" json:"queueId"`
	Number                           int                  `bson:"number" json:"number"`
	Block                            *Block               `bson:"block,omitempty" json:"block,omitempty"`
	Status                           AttentionStatus      `bson:"status" json:"status"`
	Type                             AttentionType        `bson:"type" json:"type"`
	Channel                          string               `bson:"channel,omitempty" json:"channel,omitempty"`
	CreatedAt                        time.Time            `bson:"createdAt" json:"createdAt"`
	ProcessedAt                      *time.Time           `bson:"processedAt,omitempty" json:"processedAt,omitempty"`
	EndAt                            *time.Time           `bson:"endAt,omitempty" json:"endAt,omitempty"`
	ReactivatedAt                    *time.Time           `bson:"reactivatedAt,omitempty" json:"reactivatedAt,omitempty"`
	CancelledAt                      *time.Time           `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	TransferedAt                     *time.Time           `bson:"transferedAt,omitempty" json:"transferedAt,omitempty"`
	PaidAt                           *time.Time           `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	ConfirmedAt                      *time.Time           `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
	Duration                         *float64             `bson:"duration,omitempty" json:"duration,omitempty"`
	UserID                           string               `bson:"userId,omitempty" json:"userId,omitempty"`
	ClientID                         string               `bson:"clientId,omitempty" json:"clientId,omitempty"`
	CollaboratorID                   string               `bson:"collaboratorId,omitempty" json:"collaboratorId,omitempty"`
	AssistingCollaboratorID          string               `bson:"assistingCollaboratorId,omitempty" json:"assistingCollaboratorId,omitempty"`
	ModuleID                         string               `bson:"moduleId,omitempty" json:"moduleId,omitempty"`
	BookingID                        string               `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	PackageID                        string               `bson:"packageId,omitempty" json:"packageId,omitempty"`
	PackageProceduresTotalNumber     int                  `bson:"packageProceduresTotalNumber,omitempty" json:"packageProceduresTotalNumber,omitempty"`
	PackageProcedureNumber           int                  `bson:"packageProcedureNumber,omitempty" json:"packageProcedureNumber,omitempty"`
	ServiceID                        string               `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	ServicesID                       []string             `bson:"servicesId,omitempty" json:"servicesId,omitempty"`
	ServicesDetails                  []ServiceDetail      `bson:"servicesDetails,omitempty" json:"servicesDetails,omitempty"`
	Comment                          string               `bson:"comment,omitempty" json:"comment,omitempty"`
	Reactivated                      bool                 `bson:"reactivated" json:"reactivated"`
	Cancelled                        bool                 `bson:"cancelled" json:"cancelled"`
	Transfered                       bool                 `bson:"transfered" json:"transfered"`
	TransferedOrigin                 string               `bson:"transferedOrigin,omitempty" json:"transferedOrigin,omitempty"`
	TransferedBy                     string               `bson:"transferedBy,omitempty" json:"transferedBy,omitempty"`
	Paid                             bool                 `bson:"paid" json:"paid"`
	Confirmed                        bool                 `bson:"confirmed" json:"confirmed"`
	ConfirmedBy                      string               `bson:"confirmedBy,omitempty" json:"confirmedBy,omitempty"`
	PaymentConfirmationData          *PaymentConfirmation `bson:"paymentConfirmationData,omitempty" json:"paymentConfirmationData,omitempty"`
	NotificationOn                   bool                 `bson:"notificationOn" json:"notificationOn"`
	NotificationEmailOn              bool                 `bson:"notificationEmailOn" json:"notificationEmailOn"`
	SurveyPostAttentionDateScheduled string               `bson:"surveyPostAttentionDateScheduled,omitempty" json:"surveyPostAttentionDateScheduled,omitempty"`
	NotificationSurveySent           bool                 `bson:"notificationSurveySent" json:"notificationSurveySent"`
	TermsConditionsToAcceptCode      string               `bson:"termsConditionsToAcceptCode,omitempty" json:"termsConditionsToAcceptCode,omitempty"`
	TermsConditionsAcceptedCode      string               `bson:"termsConditionsAcceptedCode,omitempty" json:"termsConditionsAcceptedCode,omitempty"`
	TermsConditionsToAcceptedAt      *time.Time           `bson:"termsConditionsToAcceptedAt,omitempty" json:"termsConditionsToAcceptedAt,omitempty"`
}

// AttentionDetails is an attention joined with the records it references.
type AttentionDetails struct {
	Attention
	Queue        *Queue        `json:"queue,omitempty"`
	Commerce     *Commerce     `json:"commerce,omitempty"`
	User         *User         `json:"user,omitempty"`
	Collaborator *Collaborator `json:"collaborator,omitempty"`
	Module       *Module       `json:"module,omitempty"`
}

// ContainsStatus reports whether status is one of statuses.
func ContainsStatus(statuses []AttentionStatus, status AttentionStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
