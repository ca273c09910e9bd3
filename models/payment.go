package models

import "time"

// PaymentConfirmation is the payment capture attached to a ticket or booking.
type PaymentConfirmation struct {
	BankEntity                string     `bson:"bankEntity,omitempty" json:"bankEntity,omitempty"`
	ProcedureNumber           int        `bson:"procedureNumber,omitempty" json:"procedureNumber,omitempty"`
	ProceduresTotalNumber     int        `bson:"proceduresTotalNumber,omitempty" json:"proceduresTotalNumber,omitempty"`
	TransactionID             string     `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaymentType               string     `bson:"paymentType,omitempty" json:"paymentType,omitempty"`
	PaymentMethod             string     `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	Installments              int        `bson:"installments,omitempty" json:"installments,omitempty"`
	Paid                      *bool      `bson:"paid,omitempty" json:"paid,omitempty"`
	TotalAmount               float64    `bson:"totalAmount,omitempty" json:"totalAmount,omitempty"`
	PaymentAmount             *float64   `bson:"paymentAmount,omitempty" json:"paymentAmount,omitempty"`
	PaymentPercentage         float64    `bson:"paymentPercentage,omitempty" json:"paymentPercentage,omitempty"`
	PaymentDate               *time.Time `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`
	PaymentCommission         float64    `bson:"paymentCommission,omitempty" json:"paymentCommission,omitempty"`
	PaymentComment            string     `bson:"paymentComment,omitempty" json:"paymentComment,omitempty"`
	PaymentFiscalNote         string     `bson:"paymentFiscalNote,omitempty" json:"paymentFiscalNote,omitempty"`
	PromotionalCode           string     `bson:"promotionalCode,omitempty" json:"promotionalCode,omitempty"`
	PaymentDiscountAmount     float64    `bson:"paymentDiscountAmount,omitempty" json:"paymentDiscountAmount,omitempty"`
	PaymentDiscountPercentage float64    `bson:"paymentDiscountPercentage,omitempty" json:"paymentDiscountPercentage,omitempty"`
	User                      string     `bson:"user,omitempty" json:"user,omitempty"`
	PackageID                 string     `bson:"packageId,omitempty" json:"packageId,omitempty"`
	PendingPaymentID          string     `bson:"pendingPaymentId,omitempty" json:"pendingPaymentId,omitempty"`
	ProcessPaymentNow         bool       `bson:"processPaymentNow,omitempty" json:"processPaymentNow,omitempty"`
	ConfirmInstallments       bool       `bson:"confirmInstallments,omitempty" json:"confirmInstallments,omitempty"`
	SkipPayment               bool       `bson:"skipPayment,omitempty" json:"skipPayment,omitempty"`
}

// IsPaid is true only when paid was explicitly set to true.
func (p *PaymentConfirmation) IsPaid() bool {
	return p != nil && p.Paid != nil && *p.Paid
}

// ExplicitlyUnpaid is true when paid was sent as false.
func (p *PaymentConfirmation) ExplicitlyUnpaid() bool {
	return p != nil && p.Paid != nil && !*p.Paid
}

// Amount returns the payment amount or 0 when unset.
func (p *PaymentConfirmation) Amount() float64 {
	if p == nil || p.PaymentAmount == nil {
		return 0
	}
	return *p.PaymentAmount
}
