package block

import (
	"context"
	"testing"

	"queuedesk/database/repository/memory"
	"queuedesk/models"
)

func TestBuildBlocks(t *testing.T) {
	tests := []struct {
		name      string
		blockTime int
		hours     ServiceHours
		want      []models.Block
	}{
		{
			name:      "half hour blocks over two hours",
			blockTime: 30,
			hours:     ServiceHours{From: 9, To: 11},
			want: []models.Block{
				{Number: 1, HourFrom: "9:00", HourTo: "9:30"},
				{Number: 2, HourFrom: "9:30", HourTo: "10:00"},
				{Number: 3, HourFrom: "10:00", HourTo: "10:30"},
				{Number: 4, HourFrom: "10:30", HourTo: "11:00"},
			},
		},
		{
			name:      "break splits the day and numbering continues",
			blockTime: 60,
			hours:     ServiceHours{From: 9, To: 17, Break: true, BreakFrom: 12, BreakTo: 13},
			want: []models.Block{
				{Number: 1, HourFrom: "9:00", HourTo: "10:00"},
				{Number: 2, HourFrom: "10:00", HourTo: "11:00"},
				{Number: 3, HourFrom: "11:00", HourTo: "12:00"},
				{Number: 4, HourFrom: "13:00", HourTo: "14:00"},
				{Number: 5, HourFrom: "14:00", HourTo: "15:00"},
				{Number: 6, HourFrom: "15:00", HourTo: "16:00"},
				{Number: 7, HourFrom: "16:00", HourTo: "17:00"},
			},
		},
		{
			name:      "remainder is dropped and minutes are padded",
			blockTime: 25,
			hours:     ServiceHours{From: 9, To: 10},
			want: []models.Block{
				{Number: 1, HourFrom: "9:00", HourTo: "9:25"},
				{Number: 2, HourFrom: "9:25", HourTo: "9:50"},
			},
		},
		{
			name:      "fractional opening hour",
			blockTime: 15,
			hours:     ServiceHours{From: 8.5, To: 9},
			want: []models.Block{
				{Number: 1, HourFrom: "8:30", HourTo: "8:45"},
				{Number: 2, HourFrom: "8:45", HourTo: "9:00"},
			},
		},
		{name: "zero block time", blockTime: 0, hours: ServiceHours{From: 9, To: 11}},
		{name: "negative hours", blockTime: 30, hours: ServiceHours{From: -1, To: 11}},
		{name: "closed window", blockTime: 30, hours: ServiceHours{From: 11, To: 9}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildBlocks(tc.blockTime, tc.hours)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d blocks, got %d: %+v", len(tc.want), len(got), got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("block %d: expected %+v, got %+v", i, tc.want[i], got[i])
				}
			}
		})
	}
}

func TestBlocksByDayUniform(t *testing.T) {
	queue := &models.Queue{
		BlockTime:   60,
		ServiceInfo: &models.ServiceInfo{AttentionHourFrom: 9, AttentionHourTo: 12},
	}
	byDay := BlocksByDay(nil, queue)
	if len(byDay) != 7 {
		t.Fatalf("expected 7 days, got %d", len(byDay))
	}
	for day := 1; day <= 7; day++ {
		if len(byDay[day]) != 3 {
			t.Fatalf("day %d: expected 3 blocks, got %d", day, len(byDay[day]))
		}
	}
}

func TestBlocksByDayPersonalizedKeepsSharedBreak(t *testing.T) {
	queue := &models.Queue{
		BlockTime: 60,
		ServiceInfo: &models.ServiceInfo{
			Personalized:  true,
			AttentionDays: []int{1, 3},
			Break:         true,
			BreakHourFrom: 12,
			BreakHourTo:   13,
			PersonalizedHours: map[int]models.HourRange{
				1: {AttentionHourFrom: 9, AttentionHourTo: 14},
				3: {AttentionHourFrom: 10, AttentionHourTo: 12},
			},
		},
	}
	byDay := BlocksByDay(nil, queue)
	if len(byDay) != 2 {
		t.Fatalf("expected 2 days, got %d", len(byDay))
	}
	if len(byDay[1]) != 4 {
		t.Fatalf("monday: expected 4 blocks, got %d", len(byDay[1]))
	}
	if byDay[1][3].HourFrom != "13:00" {
		t.Fatalf("monday: expected last block after break, got %+v", byDay[1][3])
	}
	if len(byDay[3]) != 2 {
		t.Fatalf("wednesday: expected 2 blocks, got %d", len(byDay[3]))
	}
}

func TestBlocksBySpecificDateQueueWins(t *testing.T) {
	commerce := &models.Commerce{
		ServiceInfo: &models.ServiceInfo{
			SpecificCalendar: true,
			SpecificCalendarDays: map[string]models.HourRange{
				"2024-05-01": {AttentionHourFrom: 9, AttentionHourTo: 10},
			},
		},
	}
	queue := &models.Queue{
		BlockTime: 30,
		ServiceInfo: &models.ServiceInfo{
			SpecificCalendar: true,
			Break:            true,
			BreakHourFrom:    10,
			BreakHourTo:      11,
			SpecificCalendarDays: map[string]models.HourRange{
				"2024-05-02": {AttentionHourFrom: 9, AttentionHourTo: 12},
			},
		},
	}
	got := BlocksBySpecificDate(commerce, queue)
	if _, ok := got["2024-05-01"]; ok {
		t.Fatalf("commerce calendar should be ignored when the queue has its own")
	}
	if len(got["2024-05-02"]) != 6 {
		t.Fatalf("expected 6 blocks without break, got %d", len(got["2024-05-02"]))
	}
}

func TestServiceInheritsCommerceHours(t *testing.T) {
	store := memory.NewStore()
	store.PutCommerce(models.Commerce{
		ID:          "c1",
		ServiceInfo: &models.ServiceInfo{AttentionHourFrom: 9, AttentionHourTo: 11},
	})
	ctx := context.Background()
	queue := &models.Queue{
		ID:          "q1",
		CommerceID:  "c1",
		Active:      true,
		BlockTime:   30,
		ServiceInfo: &models.ServiceInfo{SameCommeceHours: true, AttentionHourFrom: 9, AttentionHourTo: 17},
	}
	if err := store.Queues().Create(ctx, queue); err != nil {
		t.Fatalf("create queue: %v", err)
	}

	svc := &DefaultBlockService{Queues: store.Queues(), Commerces: store.Commerces()}
	blocks, err := svc.GetQueueBlocks(ctx, "q1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 4 {
		t.Fatalf("expected commerce hours to give 4 blocks, got %d", len(blocks))
	}

	all, err := svc.GetCommerceBlocksByDay(ctx, "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all["q1"][5]) != 4 {
		t.Fatalf("expected 4 blocks on friday, got %d", len(all["q1"][5]))
	}

	if _, err := svc.GetQueueBlocks(ctx, "missing"); err == nil {
		t.Fatalf("expected not found error")
	}
}
