package models

const DefaultLanguage = "es"

type LocaleInfo struct {
	Language string `bson:"language,omitempty" json:"language,omitempty"`
	Timezone string `bson:"timezone,omitempty" json:"timezone,omitempty"`
}

type ContactInfo struct {
	Whatsapp string `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
}

type WhatsappConnection struct {
	Whatsapp  string `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
	Connected bool   `bson:"connected" json:"connected"`
}

// Commerce is a branch of a business. Only the fields read by the
// lifecycle are modelled here.
type Commerce struct {
	ID                 string              `bson:"id" json:"id"`
	BusinessID         string              `bson:"businessId,omitempty" json:"businessId,omitempty"`
	Name               string              `bson:"name" json:"name"`
	KeyName            string              `bson:"keyName,omitempty" json:"keyName,omitempty"`
	Logo               string              `bson:"logo,omitempty" json:"logo,omitempty"`
	Email              string              `bson:"email,omitempty" json:"email,omitempty"`
	LocaleInfo         *LocaleInfo         `bson:"localeInfo,omitempty" json:"localeInfo,omitempty"`
	ContactInfo        *ContactInfo        `bson:"contactInfo,omitempty" json:"contactInfo,omitempty"`
	WhatsappConnection *WhatsappConnection `bson:"whatsappConnection,omitempty" json:"whatsappConnection,omitempty"`
	ServiceInfo        *ServiceInfo        `bson:"serviceInfo,omitempty" json:"serviceInfo,omitempty"`
}

// Language returns the commerce locale language, falling back to Spanish.
func (c *Commerce) Language() string {
	if c == nil || c.LocaleInfo == nil || c.LocaleInfo.Language == "" {
		return DefaultLanguage
	}
	return c.LocaleInfo.Language
}

// Timezone returns the configured IANA zone, or "" when unset.
func (c *Commerce) Timezone() string {
	if c == nil || c.LocaleInfo == nil {
		return ""
	}
	return c.LocaleInfo.Timezone
}

// SenderWhatsapp returns the connected WhatsApp sender number, if any.
func (c *Commerce) SenderWhatsapp() string {
	if c == nil || c.WhatsappConnection == nil || !c.WhatsappConnection.Connected {
		return ""
	}
	return c.WhatsappConnection.Whatsapp
}

type Collaborator struct {
	ID         string `bson:"id" json:"id"`
	CommerceID string `bson:"commerceId" json:"commerceId"`
	Name       string `bson:"name" json:"name"`
	Email      string `bson:"email,omitempty" json:"email,omitempty"`
	ModuleID   string `bson:"moduleId,omitempty" json:"moduleId,omitempty"`
	Bot        bool   `bson:"bot" json:"bot"`
}

type Module struct {
	ID         string `bson:"id" json:"id"`
	CommerceID string `bson:"commerceId" json:"commerceId"`
	Name       string `bson:"name" json:"name"`
}

type ServiceProcedures struct {
	Procedures int `bson:"procedures" json:"procedures"`
}

type Service struct {
	ID          string             `bson:"id" json:"id"`
	CommerceID  string             `bson:"commerceId" json:"commerceId"`
	Name        string             `bson:"name" json:"name"`
	Tag         string             `bson:"tag,omitempty" json:"tag,omitempty"`
	ServiceInfo *ServiceProcedures `bson:"serviceInfo,omitempty" json:"serviceInfo,omitempty"`
}

// Procedures is the number of sessions the service is sold in, at least 1.
func (s *Service) Procedures() int {
	if s == nil || s.ServiceInfo == nil || s.ServiceInfo.Procedures < 1 {
		return 1
	}
	return s.ServiceInfo.Procedures
}
