package models

import "time"

// PersonalInfo holds optional profile data collected at check-in.
type PersonalInfo map[string]interface{}

// Client is the per-commerce customer record shared by visits.
type Client struct {
	ID               string       `bson:"id" json:"id"`
	BusinessID       string       `bson:"businessId,omitempty" json:"businessId,omitempty"`
	CommerceID       string       `bson:"commerceId" json:"commerceId"`
	Name             string       `bson:"name,omitempty" json:"name,omitempty"`
	LastName         string       `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Email            string       `bson:"email,omitempty" json:"email,omitempty"`
	Phone            string       `bson:"phone,omitempty" json:"phone,omitempty"`
	IDNumber         string       `bson:"idNumber,omitempty" json:"idNumber,omitempty"`
	PersonalInfo     PersonalInfo `bson:"personalInfo,omitempty" json:"personalInfo,omitempty"`
	Counter          int          `bson:"counter" json:"counter"`
	FrequentCustomer bool         `bson:"frequentCustomer" json:"frequentCustomer"`
	CreatedAt        time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time    `bson:"updatedAt" json:"updatedAt"`
}
