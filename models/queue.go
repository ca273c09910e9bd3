package models

import "time"

type QueueType string

const (
	QueueTypeStandard      QueueType = "STANDARD"
	QueueTypeCollaborator  QueueType = "COLLABORATOR"
	QueueTypeService       QueueType = "SERVICE"
	QueueTypeMultiService  QueueType = "MULTI_SERVICE"
	QueueTypeSelectService QueueType = "SELECT_SERVICE"
)

// Queue is one service line of a commerce. It carries the queue pointer:
// CurrentNumber is the last issued sequence number, CurrentAttentionNumber
// and CurrentAttentionID identify the next ticket to be served.
type Queue struct {
	ID                     string       `bson:"id" json:"id"`
	CommerceID             string       `bson:"commerceId" json:"commerceId"`
	Name                   string       `bson:"name" json:"name"`
	Tag                    string       `bson:"tag,omitempty" json:"tag,omitempty"`
	Type                   QueueType    `bson:"type" json:"type"`
	Active                 bool         `bson:"active" json:"active"`
	Available              bool         `bson:"available" json:"available"`
	Online                 bool         `bson:"online" json:"online"`
	Order                  int          `bson:"order" json:"order"`
	Limit                  int          `bson:"limit" json:"limit"`
	EstimatedTime          int          `bson:"estimatedTime" json:"estimatedTime"`
	BlockTime              int          `bson:"blockTime" json:"blockTime"`
	CollaboratorID         string       `bson:"collaboratorId,omitempty" json:"collaboratorId,omitempty"`
	ServiceID              string       `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	ServicesID             []string     `bson:"servicesId,omitempty" json:"servicesId,omitempty"`
	ServiceInfo            *ServiceInfo `bson:"serviceInfo,omitempty" json:"serviceInfo,omitempty"`
	CurrentNumber          int          `bson:"currentNumber" json:"currentNumber"`
	CurrentAttentionNumber int          `bson:"currentAttentionNumber" json:"currentAttentionNumber"`
	CurrentAttentionID     string       `bson:"currentAttentionId" json:"currentAttentionId"`
	Version                int          `bson:"version" json:"version"`
	CreatedAt              time.Time    `bson:"createdAt" json:"createdAt"`
}

// HourRange is an opening window in fractional hours (9.5 = 09:30).
type HourRange struct {
	AttentionHourFrom float64 `bson:"attentionHourFrom" json:"attentionHourFrom"`
	AttentionHourTo   float64 `bson:"attentionHourTo" json:"attentionHourTo"`
}

// ServiceInfo describes opening hours for a queue or a commerce.
type ServiceInfo struct {
	SameCommeceHours              bool                 `bson:"sameCommeceHours" json:"sameCommeceHours"`
	AttentionDays                 []int                `bson:"attentionDays,omitempty" json:"attentionDays,omitempty"`
	AttentionHourFrom             float64              `bson:"attentionHourFrom" json:"attentionHourFrom"`
	AttentionHourTo               float64              `bson:"attentionHourTo" json:"attentionHourTo"`
	Break                         bool                 `bson:"break" json:"break"`
	BreakHourFrom                 float64              `bson:"breakHourFrom" json:"breakHourFrom"`
	BreakHourTo                   float64              `bson:"breakHourTo" json:"breakHourTo"`
	Blocks                        []Block              `bson:"blocks,omitempty" json:"blocks,omitempty"`
	BlockLimit                    int                  `bson:"blockLimit" json:"blockLimit"`
	Personalized                  bool                 `bson:"personalized" json:"personalized"`
	PersonalizedHours             map[int]HourRange    `bson:"personalizedHours,omitempty" json:"personalizedHours,omitempty"`
	Walkin                        bool                 `bson:"walkin" json:"walkin"`
	SpecificCalendar              bool                 `bson:"specificCalendar" json:"specificCalendar"`
	SpecificCalendarDays          map[string]HourRange `bson:"specificCalendarDays,omitempty" json:"specificCalendarDays,omitempty"`
	ConfirmNotificationDaysBefore int                  `bson:"confirmNotificationDaysBefore,omitempty" json:"confirmNotificationDaysBefore,omitempty"`
	SurveyPostAttentionDaysAfter  int                  `bson:"surveyPostAttentionDaysAfter,omitempty" json:"surveyPostAttentionDaysAfter,omitempty"`
}

// BlockLimitOrDefault returns the per-block booking cap, 0 when unset.
func (s *ServiceInfo) BlockLimitOrDefault() int {
	if s == nil || s.BlockLimit < 0 {
		return 0
	}
	return s.BlockLimit
}
