package models

import "time"

type IncomeType string

const (
	IncomeUnique      IncomeType = "UNIQUE"
	IncomeInstallment IncomeType = "INSTALLMENT"
)

type IncomeStatus string

const (
	IncomePending   IncomeStatus = "PENDING"
	IncomeConfirmed IncomeStatus = "CONFIRMED"
)

// Income is one money entry recorded against a visit or package.
type Income struct {
	ID                string       `bson:"id" json:"id"`
	CommerceID        string       `bson:"commerceId" json:"commerceId"`
	Type              IncomeType   `bson:"type" json:"type"`
	Status            IncomeStatus `bson:"status" json:"status"`
	BookingID         string       `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	AttentionID       string       `bson:"attentionId,omitempty" json:"attentionId,omitempty"`
	ClientID          string       `bson:"clientId,omitempty" json:"clientId,omitempty"`
	PackageID         string       `bson:"packageId,omitempty" json:"packageId,omitempty"`
	Amount            float64      `bson:"amount" json:"amount"`
	TotalAmount       float64      `bson:"totalAmount" json:"totalAmount"`
	InstallmentNumber int          `bson:"installmentNumber" json:"installmentNumber"`
	Installments      int          `bson:"installments" json:"installments"`
	PaymentMethod     string       `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	Commission        float64      `bson:"commission" json:"commission"`
	Comment           string       `bson:"comment,omitempty" json:"comment,omitempty"`
	FiscalNote        string       `bson:"fiscalNote,omitempty" json:"fiscalNote,omitempty"`
	PromotionalCode   string       `bson:"promotionalCode,omitempty" json:"promotionalCode,omitempty"`
	TransactionID     string       `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	BankEntity        string       `bson:"bankEntity,omitempty" json:"bankEntity,omitempty"`
	PaidAt            *time.Time   `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	CreatedAt         time.Time    `bson:"createdAt" json:"createdAt"`
	CreatedBy         string       `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
}
