package block

import (
	"fmt"
	"math"

	"queuedesk/models"
)

// ServiceHours is one day's opening window in fractional hours.
type ServiceHours struct {
	From      float64
	To        float64
	Break     bool
	BreakFrom float64
	BreakTo   float64
}

// HoursOf reads the uniform opening window of info.
func HoursOf(info *models.ServiceInfo) ServiceHours {
	return ServiceHours{
		From:      info.AttentionHourFrom,
		To:        info.AttentionHourTo,
		Break:     info.Break,
		BreakFrom: info.BreakHourFrom,
		BreakTo:   info.BreakHourTo,
	}
}

// BuildBlocks slices the opening window into consecutive blocks of
// blockTime minutes numbered from 1. With a break the window is split in
// two segments and numbering continues across them. A trailing remainder
// shorter than blockTime is dropped.
func BuildBlocks(blockTime int, hours ServiceHours) []models.Block {
	blocks := []models.Block{}
	if blockTime <= 0 || hours.From < 0 || hours.To < 0 {
		return blocks
	}

	if !hours.Break {
		return appendSegment(blocks, blockTime, toMinutes(hours.From), toMinutes(hours.To))
	}
	blocks = appendSegment(blocks, blockTime, toMinutes(hours.From), toMinutes(hours.BreakFrom))
	return appendSegment(blocks, blockTime, toMinutes(hours.BreakTo), toMinutes(hours.To))
}

func appendSegment(blocks []models.Block, blockTime, from, to int) []models.Block {
	total := to - from
	if total <= 0 {
		return blocks
	}
	amount := total / blockTime
	next := len(blocks) + 1
	for i := 0; i < amount; i++ {
		blocks = append(blocks, models.Block{
			Number:   next + i,
			HourFrom: FormatMinutes(from + blockTime*i),
			HourTo:   FormatMinutes(from + blockTime*(i+1)),
		})
	}
	return blocks
}

func toMinutes(hour float64) int {
	return int(math.Round(hour * 60))
}

// FormatMinutes renders minutes since midnight as H:MM.
func FormatMinutes(mins int) string {
	return fmt.Sprintf("%d:%02d", mins/60, mins%60)
}

// EffectiveServiceInfo resolves which opening hours a queue follows.
// It returns nil when neither the queue nor the commerce define any.
func EffectiveServiceInfo(commerce *models.Commerce, queue *models.Queue) *models.ServiceInfo {
	if queue.ServiceInfo == nil {
		return nil
	}
	if queue.ServiceInfo.SameCommeceHours {
		if commerce == nil {
			return nil
		}
		return commerce.ServiceInfo
	}
	return queue.ServiceInfo
}

// BlocksByDay maps ISO weekdays (1 = Monday) to the queue's blocks.
func BlocksByDay(commerce *models.Commerce, queue *models.Queue) map[int][]models.Block {
	result := map[int][]models.Block{}
	info := EffectiveServiceInfo(commerce, queue)
	if info == nil {
		return result
	}

	if !info.Personalized {
		blocks := BuildBlocks(queue.BlockTime, HoursOf(info))
		for day := 1; day <= 7; day++ {
			result[day] = blocks
		}
		return result
	}

	if info.PersonalizedHours == nil {
		return result
	}
	for _, day := range info.AttentionDays {
		window, ok := info.PersonalizedHours[day]
		if !ok {
			continue
		}
		hours := HoursOf(info)
		hours.From = window.AttentionHourFrom
		hours.To = window.AttentionHourTo
		result[day] = BuildBlocks(queue.BlockTime, hours)
	}
	return result
}

// BlocksBySpecificDate maps calendar dates (YYYY-MM-DD) to blocks for the
// specific-calendar overrides. The queue's own calendar wins over the
// commerce one when it is enabled. Specific days have no break.
func BlocksBySpecificDate(commerce *models.Commerce, queue *models.Queue) map[string][]models.Block {
	result := map[string][]models.Block{}
	if commerce == nil || commerce.ServiceInfo == nil {
		return result
	}
	info := commerce.ServiceInfo
	if queue.ServiceInfo != nil && queue.ServiceInfo.SpecificCalendar {
		info = queue.ServiceInfo
	}
	if !info.SpecificCalendar {
		return result
	}
	for date, window := range info.SpecificCalendarDays {
		result[date] = BuildBlocks(queue.BlockTime, ServiceHours{
			From: window.AttentionHourFrom,
			To:   window.AttentionHourTo,
		})
	}
	return result
}
