package models

import "time"

const (
	UserTypeStandard = "STANDARD"
	UserTypeNoDevice = "NODEVICE"
)

// User is the contact record captured for one visit.
type User struct {
	ID                       string       `bson:"id" json:"id"`
	Name                     string       `bson:"name,omitempty" json:"name,omitempty"`
	LastName                 string       `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Email                    string       `bson:"email,omitempty" json:"email,omitempty"`
	Phone                    string       `bson:"phone,omitempty" json:"phone,omitempty"`
	IDNumber                 string       `bson:"idNumber,omitempty" json:"idNumber,omitempty"`
	CommerceID               string       `bson:"commerceId,omitempty" json:"commerceId,omitempty"`
	QueueID                  string       `bson:"queueId,omitempty" json:"queueId,omitempty"`
	ClientID                 string       `bson:"clientId,omitempty" json:"clientId,omitempty"`
	BusinessID               string       `bson:"businessId,omitempty" json:"businessId,omitempty"`
	NotificationOn           bool         `bson:"notificationOn" json:"notificationOn"`
	NotificationEmailOn      bool         `bson:"notificationEmailOn" json:"notificationEmailOn"`
	PersonalInfo             PersonalInfo `bson:"personalInfo,omitempty" json:"personalInfo,omitempty"`
	AcceptTermsAndConditions bool         `bson:"acceptTermsAndConditions" json:"acceptTermsAndConditions"`
	Type                     string       `bson:"type,omitempty" json:"type,omitempty"`
	FrequentCustomer         bool         `bson:"frequentCustomer" json:"frequentCustomer"`
	CreatedAt                time.Time    `bson:"createdAt" json:"createdAt"`
}

// FullName joins name and last name for message templates.
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	if u.LastName == "" {
		return u.Name
	}
	return u.Name + " " + u.LastName
}
