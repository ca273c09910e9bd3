package feature

import (
	"context"
	"testing"

	"queuedesk/database/repository/memory"
	"queuedesk/models"
)

func TestIsActiveWithoutCache(t *testing.T) {
	store := memory.NewStore()
	store.PutToggle(models.FeatureToggle{CommerceID: "c1", Name: models.ToggleBookingConfirm, Active: true})
	store.PutToggle(models.FeatureToggle{CommerceID: "c1", Name: models.ToggleOnlySurvey, Active: false})
	svc := &DefaultFeatureService{Repo: store.Features()}
	ctx := context.Background()

	tests := []struct {
		name       string
		commerceID string
		toggle     string
		want       bool
	}{
		{"active toggle", "c1", models.ToggleBookingConfirm, true},
		{"inactive toggle", "c1", models.ToggleOnlySurvey, false},
		{"undefined toggle", "c1", models.ToggleEmailCsat, false},
		{"other commerce", "c2", models.ToggleBookingConfirm, false},
		{"empty commerce", "", models.ToggleBookingConfirm, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := svc.IsActive(ctx, tc.commerceID, tc.toggle); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
