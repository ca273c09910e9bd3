package models

import "time"

type PackageStatus string

const (
	PackageRequested PackageStatus = "REQUESTED"
	PackageConfirmed PackageStatus = "CONFIRMED"
	PackageActive    PackageStatus = "ACTIVE"
	PackageCompleted PackageStatus = "COMPLETED"
	PackageCancelled PackageStatus = "CANCELLED"
)

const PackageTypeStandard = "STANDARD"

// Package is a prepaid bundle of procedures for one client.
type Package struct {
	ID               string        `bson:"id" json:"id"`
	CommerceID       string        `bson:"commerceId" json:"commerceId"`
	ClientID         string        `bson:"clientId" json:"clientId"`
	FirstBookingID   string        `bson:"firstBookingId,omitempty" json:"firstBookingId,omitempty"`
	FirstAttentionID string        `bson:"firstAttentionId,omitempty" json:"firstAttentionId,omitempty"`
	ProceduresAmount int           `bson:"proceduresAmount" json:"proceduresAmount"`
	Name             string        `bson:"name" json:"name"`
	ServicesID       []string      `bson:"servicesId,omitempty" json:"servicesId,omitempty"`
	BookingsID       []string      `bson:"bookingsId" json:"bookingsId"`
	AttentionsID     []string      `bson:"attentionsId" json:"attentionsId"`
	IncomesID        []string      `bson:"incomesId" json:"incomesId"`
	Type             string        `bson:"type" json:"type"`
	Status           PackageStatus `bson:"status" json:"status"`
	Paid             bool          `bson:"paid" json:"paid"`
	PaidAt           *time.Time    `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	CreatedAt        time.Time     `bson:"createdAt" json:"createdAt"`
	CreatedBy        string        `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	UpdatedBy        string        `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
}

// HasService reports whether the package covers serviceID.
func (p *Package) HasService(serviceID string) bool {
	for _, id := range p.ServicesID {
		if id == serviceID {
			return true
		}
	}
	return false
}
