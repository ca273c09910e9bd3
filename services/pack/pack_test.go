package pack

import (
	"context"
	"testing"
	"time"

	"queuedesk/database/repository/memory"
	"queuedesk/models"
)

func newLedger(store *memory.Store) Ledger {
	return Ledger{
		Packages: &DefaultPackageService{Repo: store.Packages()},
		Incomes:  &DefaultIncomeService{Repo: store.Incomes()},
	}
}

func paid(amount float64) *models.PaymentConfirmation {
	yes := true
	now := time.Now()
	return &models.PaymentConfirmation{Paid: &yes, PaymentAmount: &amount, PaymentDate: &now}
}

func TestCreateIncomesSplitsInstallments(t *testing.T) {
	tests := []struct {
		name      string
		confirm   bool
		wantState []models.IncomeStatus
	}{
		{"first confirmed only", false, []models.IncomeStatus{models.IncomeConfirmed, models.IncomePending, models.IncomePending}},
		{"all confirmed", true, []models.IncomeStatus{models.IncomeConfirmed, models.IncomeConfirmed, models.IncomeConfirmed}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			svc := &DefaultIncomeService{Repo: store.Incomes()}
			data := paid(30)
			data.TotalAmount = 300
			data.Installments = 3
			data.ConfirmInstallments = tt.confirm

			first, err := svc.CreateIncomes(context.Background(), "u1", IncomeRef{CommerceID: "c1"}, data)
			if err != nil {
				t.Fatalf("create incomes: %v", err)
			}
			if first.InstallmentNumber != 1 {
				t.Fatalf("expected first installment back, got %d", first.InstallmentNumber)
			}
			incomes := store.IncomeList()
			if len(incomes) != 3 {
				t.Fatalf("expected 3 incomes, got %d", len(incomes))
			}
			for i, inc := range incomes {
				if inc.Amount != 100 {
					t.Fatalf("installment %d amount = %v, want 100", i+1, inc.Amount)
				}
				if inc.Status != tt.wantState[i] {
					t.Fatalf("installment %d status = %s, want %s", i+1, inc.Status, tt.wantState[i])
				}
				if inc.Type != models.IncomeInstallment {
					t.Fatalf("installment %d type = %s", i+1, inc.Type)
				}
			}
		})
	}
}

func TestResolvePackageOpensConfirmedPackage(t *testing.T) {
	store := memory.NewStore()
	ledger := newLedger(store)
	ctx := context.Background()
	data := paid(50)
	data.ProcedureNumber = 1
	data.ProceduresTotalNumber = 4
	ref := IncomeRef{CommerceID: "c1", ClientID: "cl1", AttentionID: "a1"}
	details := []models.ServiceDetail{{ID: "s1", Tag: "laser"}, {ID: "s2", Tag: "peel"}}

	p, err := ledger.ResolvePackage(ctx, "u1", ref, []string{"s1", "s2"}, details, data)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p == nil || p.Status != models.PackageConfirmed || p.Name != "LASER/PEEL" {
		t.Fatalf("unexpected package %+v", p)
	}
	if p.ProceduresAmount != 4 || p.FirstAttentionID != "a1" {
		t.Fatalf("unexpected package counters %+v", p)
	}

	income, err := ledger.RecordIncome(ctx, "u1", ref, p, data)
	if err != nil {
		t.Fatalf("record income: %v", err)
	}
	if income == nil || income.Type != models.IncomeUnique || income.PackageID != p.ID {
		t.Fatalf("unexpected income %+v", income)
	}
	stored, _ := store.Packages().GetByID(ctx, p.ID)
	if !stored.Paid || len(stored.IncomesID) != 1 {
		t.Fatalf("expected package paid with one income, got %+v", stored)
	}

	// A second payment against a paid package records no new income.
	again, err := ledger.RecordIncome(ctx, "u1", ref, stored, paid(50))
	if err != nil {
		t.Fatalf("record income: %v", err)
	}
	if again != nil {
		t.Fatalf("expected no income for a paid package, got %+v", again)
	}
}

func TestEnsureRequestedPackage(t *testing.T) {
	store := memory.NewStore()
	ledger := newLedger(store)
	ctx := context.Background()
	svc := &models.Service{ID: "s1", Tag: "laser", ServiceInfo: &models.ServiceProcedures{Procedures: 6}}
	ref := IncomeRef{CommerceID: "c1", ClientID: "cl1", AttentionID: "a1"}

	p, err := ledger.EnsureRequestedPackage(ctx, ref, []string{"s1"}, svc)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if p == nil || p.Status != models.PackageRequested || p.Name != "LASER" || p.CreatedBy != "ett" {
		t.Fatalf("unexpected package %+v", p)
	}
	p2, err := ledger.EnsureRequestedPackage(ctx, ref, []string{"s1"}, svc)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if p2 != nil {
		t.Fatalf("expected no second package for the same service")
	}

	single := &models.Service{ID: "s2"}
	if p3, _ := ledger.EnsureRequestedPackage(ctx, ref, []string{"s2"}, single); p3 != nil {
		t.Fatalf("single-session service must not open a package")
	}
}

func TestAddAndRemoveProcedure(t *testing.T) {
	store := memory.NewStore()
	svc := &DefaultPackageService{Repo: store.Packages()}
	ctx := context.Background()
	p, err := svc.CreatePackage(ctx, "u1", NewPackage{CommerceID: "c1", ClientID: "cl1", ProceduresAmount: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.AddProcedure(ctx, "u1", p.ID, []string{"b1"}, []string{"a1"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	p, err = svc.AddProcedure(ctx, "u1", p.ID, nil, []string{"a2", "a1"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(p.AttentionsID) != 2 || p.Status != models.PackageCompleted {
		t.Fatalf("expected completed package with 2 attentions, got %+v", p)
	}
	p, err = svc.RemoveProcedure(ctx, "u1", p.ID, "b1", "a2")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(p.BookingsID) != 0 || len(p.AttentionsID) != 1 || p.Status != models.PackageActive {
		t.Fatalf("unexpected package after removal %+v", p)
	}
}

func TestPayPendingIncomeMissing(t *testing.T) {
	svc := &DefaultIncomeService{Repo: memory.NewStore().Incomes()}
	if _, err := svc.PayPendingIncome(context.Background(), "u1", "nope", paid(1)); err == nil {
		t.Fatalf("expected not found")
	}
}
