package attention

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"queuedesk/database/repository"
	"queuedesk/database/repository/memory"
	"queuedesk/models"
	"queuedesk/services/batch"
	"queuedesk/services/client"
	"queuedesk/services/documents"
	"queuedesk/services/events"
	"queuedesk/services/feature"
	"queuedesk/services/notification"
	"queuedesk/services/pack"
	"queuedesk/services/queue"
	"queuedesk/utils"
)

type recordingWhatsApp struct {
	mu     sync.Mutex
	phones []string
}

func (r *recordingWhatsApp) SendMessage(_ context.Context, _, phone, _, _ string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phones = append(r.phones, phone)
	return "wa", nil
}

func (r *recordingWhatsApp) sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]string(nil), r.phones...)
	sort.Strings(out)
	return out
}

type nopEmail struct{}

func (nopEmail) SendEmail(context.Context, string, []string, map[string]interface{}) (string, error) {
	return "mail", nil
}

func (nopEmail) SendRawEmail(context.Context, notification.RawEmail) (string, error) {
	return "raw", nil
}

type fixture struct {
	svc    *DefaultAttentionService
	store  *memory.Store
	events *events.Recorder
	wa     *recordingWhatsApp
}

func newFixture(t *testing.T, toggles feature.Static) *fixture {
	t.Helper()
	store := memory.NewStore()
	rec := &events.Recorder{}
	clients := &client.DefaultClientService{Repo: store.Clients()}
	wa := &recordingWhatsApp{}
	svc := &DefaultAttentionService{
		Repo:      store.Attentions(),
		Queues:    &queue.DefaultQueueService{Repo: store.Queues(), Events: rec},
		Commerces: store.Commerces(),
		Users:     &client.DefaultUserService{Repo: store.Users(), Clients: clients},
		Clients:   clients,
		Ledger: pack.Ledger{
			Packages: &pack.DefaultPackageService{Repo: store.Packages()},
			Incomes:  &pack.DefaultIncomeService{Repo: store.Incomes()},
		},
		Features:      toggles,
		Notifications: &notification.DefaultNotificationService{Repo: store.Notifications(), WhatsApp: wa, Email: nopEmail{}},
		Documents:     documents.MapStore{},
		Events:        rec,
		Runner:        batch.Runner{MaxConcurrent: 4},
		BackendURL:    "http://localhost",
	}
	store.PutCommerce(models.Commerce{ID: "c1", Name: "Clinic", KeyName: "clinic"})
	store.PutCollaborator(models.Collaborator{ID: "col1", CommerceID: "c1", Name: "Bea", ModuleID: "m1"})
	store.PutModule(models.Module{ID: "m1", CommerceID: "c1", Name: "3"})
	if err := store.Queues().Create(context.Background(), &models.Queue{
		ID: "q1", CommerceID: "c1", Type: models.QueueTypeStandard, Active: true, Limit: 50,
	}); err != nil {
		t.Fatalf("seed queue: %v", err)
	}
	return &fixture{svc: svc, store: store, events: rec, wa: wa}
}

func (f *fixture) queue(t *testing.T) *models.Queue {
	t.Helper()
	q, err := f.store.Queues().GetByID(context.Background(), "q1")
	if err != nil || q == nil {
		t.Fatalf("load queue: %v", err)
	}
	return q
}

func (f *fixture) create(t *testing.T, in CreateAttentionInput) *models.Attention {
	t.Helper()
	if in.QueueID == "" {
		in.QueueID = "q1"
	}
	a, err := f.svc.CreateAttention(context.Background(), in)
	if err != nil {
		t.Fatalf("create attention: %v", err)
	}
	return a
}

func TestDefaultCreationsNumberSequentially(t *testing.T) {
	f := newFixture(t, nil)
	const n = 12
	var wg sync.WaitGroup
	numbers := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := f.svc.CreateAttention(context.Background(), CreateAttentionInput{QueueID: "q1"})
			if err != nil {
				t.Errorf("create attention: %v", err)
				return
			}
			numbers[i] = a.Number
		}(i)
	}
	wg.Wait()

	sort.Ints(numbers)
	for i, got := range numbers {
		if got != i+1 {
			t.Fatalf("numbers = %v, want 1..%d", numbers, n)
		}
	}
	q := f.queue(t)
	if q.CurrentNumber != n {
		t.Fatalf("currentNumber = %d, want %d", q.CurrentNumber, n)
	}
	if q.CurrentAttentionNumber != 1 || q.CurrentAttentionID == "" {
		t.Fatalf("expected cursor seeded at 1, got %+v", q)
	}
}

func TestReserveRejectsTakenSlot(t *testing.T) {
	f := newFixture(t, nil)
	day := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	block := &models.Block{Number: 3, HourFrom: "10:00", HourTo: "10:30"}

	first := f.create(t, CreateAttentionInput{Block: block, Date: &day})
	if first.Number != 3 || first.Block == nil {
		t.Fatalf("expected reserve at number 3, got %+v", first)
	}

	_, err := f.svc.CreateAttention(context.Background(), CreateAttentionInput{QueueID: "q1", Block: block, Date: &day})
	if utils.KindOf(err) != utils.KindBadRequest {
		t.Fatalf("expected BAD_REQUEST on taken slot, got %v", err)
	}

	nextDay := day.AddDate(0, 0, 1)
	if _, err := f.svc.CreateAttention(context.Background(), CreateAttentionInput{QueueID: "q1", Block: block, Date: &nextDay}); err != nil {
		t.Fatalf("same number on another day should succeed: %v", err)
	}

	if q := f.queue(t); q.CurrentNumber != 3 {
		t.Fatalf("currentNumber = %d, want 3", q.CurrentNumber)
	}
	walkIn := f.create(t, CreateAttentionInput{})
	if walkIn.Number != 4 {
		t.Fatalf("walk-in after reserve got %d, want 4", walkIn.Number)
	}
}

func TestReserveRequiresBlock(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.svc.build(context.Background(), BuilderReserve, CreateParams{Queue: f.queue(t)})
	if utils.KindOf(err) != utils.KindBadRequest {
		t.Fatalf("expected BAD_REQUEST, got %v", err)
	}
}

func TestCreateRequiresAcceptedTerms(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.svc.CreateAttention(context.Background(), CreateAttentionInput{
		QueueID: "q1",
		User:    &models.User{Name: "Ana"},
	})
	if utils.KindOf(err) != utils.KindInternal {
		t.Fatalf("expected INTERNAL, got %v", err)
	}
}

func TestAttendAdvancesCursorAndNotifies(t *testing.T) {
	f := newFixture(t, feature.Static{
		models.ToggleWhatsappNotifyNow: true,
		models.ToggleWhatsappNotifyOne: true,
	})
	var tickets []*models.Attention
	for _, phone := range []string{"111", "222", "333"} {
		tickets = append(tickets, f.create(t, CreateAttentionInput{
			User: &models.User{Phone: phone, NotificationOn: true, AcceptTermsAndConditions: true},
		}))
	}

	a, err := f.svc.Attend(context.Background(), "u1", 1, "q1", "col1", "es")
	if err != nil {
		t.Fatalf("attend: %v", err)
	}
	if a.Status != models.AttentionProcessing || a.ModuleID != "m1" || a.ProcessedAt == nil {
		t.Fatalf("unexpected attended ticket %+v", a)
	}
	q := f.queue(t)
	if q.CurrentAttentionNumber != 2 || q.CurrentAttentionID != tickets[1].ID {
		t.Fatalf("expected cursor on ticket 2, got %+v", q)
	}
	if got := f.wa.sent(); len(got) != 2 || got[0] != "111" || got[1] != "222" {
		t.Fatalf("whatsapp sent to %v, want [111 222]", got)
	}

	if _, err := f.svc.Attend(context.Background(), "u1", 1, "q1", "col1", "es"); utils.KindOf(err) != utils.KindNotFound {
		t.Fatalf("attending twice should be NOT_FOUND, got %v", err)
	}
}

func TestSkipReactivateFinishHasNoDuration(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.create(t, CreateAttentionInput{})
	f.create(t, CreateAttentionInput{})

	if _, err := f.svc.Attend(ctx, "u1", 1, "q1", "col1", ""); err != nil {
		t.Fatalf("attend: %v", err)
	}
	skipped, err := f.svc.Skip(ctx, "u1", 1, "q1", "col1")
	if err != nil {
		t.Fatalf("skip: %v", err)
	}
	if skipped.Status != models.AttentionSkipped {
		t.Fatalf("expected SKIPED, got %s", skipped.Status)
	}
	if q := f.queue(t); q.CurrentAttentionNumber != 2 || q.CurrentAttentionID == "" {
		t.Fatalf("skip should keep cursor on the pending ticket, got %+v", q)
	}

	reactivated, err := f.svc.Reactivate(ctx, "u1", 1, "q1", "col1")
	if err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	finished, err := f.svc.FinishAttention(ctx, "u1", reactivated.ID, "done", nil)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if finished.Status != models.AttentionTerminated || !finished.Reactivated || finished.Duration != nil {
		t.Fatalf("unexpected finished ticket %+v", finished)
	}
	if finished.Comment != "done" {
		t.Fatalf("comment = %q", finished.Comment)
	}
}

func TestFinishComputesDuration(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	created := f.create(t, CreateAttentionInput{})
	if _, err := f.svc.Attend(ctx, "u1", 1, "q1", "col1", ""); err != nil {
		t.Fatalf("attend: %v", err)
	}

	t0 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(90 * time.Second)
	stored, _ := f.store.Attentions().GetByID(ctx, created.ID)
	stored.ProcessedAt = &t0
	if err := f.store.Attentions().Update(ctx, stored); err != nil {
		t.Fatalf("update: %v", err)
	}

	finished, err := f.svc.FinishAttention(ctx, "u1", created.ID, "", &t1)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if finished.Duration == nil || *finished.Duration != 1.5 {
		t.Fatalf("duration = %v, want 1.5", finished.Duration)
	}

	again, err := f.svc.FinishAttention(ctx, "u1", created.ID, "late", nil)
	if err != nil {
		t.Fatalf("finish again: %v", err)
	}
	if again.Comment == "late" {
		t.Fatalf("finishing a terminated ticket must not change it")
	}
}

func TestFinishSchedulesSurvey(t *testing.T) {
	f := newFixture(t, nil)
	f.store.PutCommerce(models.Commerce{ID: "c1", Name: "Clinic", ServiceInfo: &models.ServiceInfo{SurveyPostAttentionDaysAfter: 2}})
	ctx := context.Background()
	created := f.create(t, CreateAttentionInput{})
	if _, err := f.svc.Attend(ctx, "u1", 1, "q1", "col1", ""); err != nil {
		t.Fatalf("attend: %v", err)
	}
	finished, err := f.svc.FinishAttention(ctx, "u1", created.ID, "", nil)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if want := utils.AddDays(time.Now(), 2); finished.SurveyPostAttentionDateScheduled != want {
		t.Fatalf("survey date = %q, want %q", finished.SurveyPostAttentionDateScheduled, want)
	}

	result, err := f.svc.SurveyPostAttention(ctx, finished.SurveyPostAttentionDateScheduled)
	if err != nil {
		t.Fatalf("survey: %v", err)
	}
	if result.ToProcess != 1 || result.Processed != 1 {
		t.Fatalf("unexpected survey result %+v", result)
	}
	stored, _ := f.store.Attentions().GetByID(ctx, created.ID)
	if !stored.NotificationSurveySent {
		t.Fatalf("expected survey marked as sent")
	}
}

func TestUserCancelledTicketIsClosedOnAttend(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	first := f.create(t, CreateAttentionInput{})
	second := f.create(t, CreateAttentionInput{})

	cancelled, err := f.svc.CancelAttention(ctx, "u1", first.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != models.AttentionUserCancelled || !cancelled.Cancelled {
		t.Fatalf("unexpected cancelled ticket %+v", cancelled)
	}

	closed, err := f.svc.Attend(ctx, "u1", 1, "q1", "col1", "")
	if err != nil {
		t.Fatalf("attend: %v", err)
	}
	if closed.Status != models.AttentionTerminatedReserveCancelled {
		t.Fatalf("expected TERMINATED_RESERVE_CANCELLED, got %s", closed.Status)
	}
	if q := f.queue(t); q.CurrentAttentionNumber != 2 || q.CurrentAttentionID != second.ID {
		t.Fatalf("expected cursor on ticket 2, got %+v", q)
	}
}

func TestCancelAttentionDetachesPackages(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	a := f.create(t, CreateAttentionInput{User: &models.User{Email: "ana@example.com", AcceptTermsAndConditions: true}})
	if a.ClientID == "" {
		t.Fatalf("expected a client on the ticket")
	}
	p, err := f.svc.Ledger.Packages.CreatePackage(ctx, "u1", pack.NewPackage{
		CommerceID: "c1", ClientID: a.ClientID, ProceduresAmount: 3, AttentionsID: []string{a.ID, "other"},
	})
	if err != nil {
		t.Fatalf("create package: %v", err)
	}

	if _, err := f.svc.CancelAttention(ctx, "u1", a.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	stored, _ := f.store.Packages().GetByID(ctx, p.ID)
	if len(stored.AttentionsID) != 1 || stored.AttentionsID[0] != "other" {
		t.Fatalf("expected ticket detached from package, got %v", stored.AttentionsID)
	}

	if _, err := f.svc.CancelAttention(ctx, "u1", "missing"); utils.KindOf(err) != utils.KindNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestCancelAttentionsClosesOpenTickets(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.create(t, CreateAttentionInput{})
	f.create(t, CreateAttentionInput{})
	f.create(t, CreateAttentionInput{})
	if _, err := f.svc.Attend(ctx, "u1", 1, "q1", "col1", ""); err != nil {
		t.Fatalf("attend: %v", err)
	}

	result, err := f.svc.CancelAttentions(ctx)
	if err != nil {
		t.Fatalf("cancel all: %v", err)
	}
	if result.ToProcess != 3 || result.Processed != 3 || result.Errors != 0 {
		t.Fatalf("unexpected batch result %+v", result)
	}
	left, _ := f.store.Attentions().Find(ctx, repository.AttentionFilter{Statuses: transitionMap[ActionBulkCancel]})
	if len(left) != 0 {
		t.Fatalf("expected no open tickets, got %d", len(left))
	}
}

func TestOnlySurveyCreatesFinishedTicket(t *testing.T) {
	f := newFixture(t, feature.Static{models.ToggleOnlySurvey: true})
	ctx := context.Background()
	if _, err := f.svc.CreateAttention(ctx, CreateAttentionInput{QueueID: "q1"}); utils.KindOf(err) != utils.KindInternal {
		t.Fatalf("expected INTERNAL without a bot collaborator, got %v", err)
	}

	f.store.PutCollaborator(models.Collaborator{ID: "bot", CommerceID: "c1", Bot: true})
	a := f.create(t, CreateAttentionInput{})
	if a.Type != models.AttentionTypeSurveyOnly || a.Status != models.AttentionTerminated || a.CollaboratorID != "bot" {
		t.Fatalf("unexpected survey ticket %+v", a)
	}
	if q := f.queue(t); q.CurrentAttentionNumber != 2 {
		t.Fatalf("survey ticket should move the cursor past it, got %+v", q)
	}
}

func TestTransferRequiresCollaboratorQueue(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_ = f.store.Queues().Create(ctx, &models.Queue{ID: "q2", CommerceID: "c1", Type: models.QueueTypeService})
	_ = f.store.Queues().Create(ctx, &models.Queue{ID: "q3", CommerceID: "c1", Type: models.QueueTypeCollaborator})
	a := f.create(t, CreateAttentionInput{})

	if _, err := f.svc.TransferAttentionToQueue(ctx, "u1", a.ID, "q2"); utils.KindOf(err) != utils.KindBadRequest {
		t.Fatalf("expected BAD_REQUEST, got %v", err)
	}
	if _, err := f.svc.TransferAttentionToQueue(ctx, "u1", a.ID, "nope"); utils.KindOf(err) != utils.KindNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	moved, err := f.svc.TransferAttentionToQueue(ctx, "u1", a.ID, "q3")
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if moved.QueueID != "q3" || moved.TransferedOrigin != "q1" || !moved.Transfered || moved.TransferedBy != "u1" {
		t.Fatalf("unexpected transferred ticket %+v", moved)
	}
	if q := f.queue(t); q.CurrentAttentionID != a.ID {
		t.Fatalf("transfer must not touch the origin pointer, got %+v", q)
	}
}

func TestPaymentConfirmRecordsIncome(t *testing.T) {
	f := newFixture(t, feature.Static{models.ToggleAttentionConfirmPayment: true})
	ctx := context.Background()
	a := f.create(t, CreateAttentionInput{})

	if _, err := f.svc.AttentionPaymentConfirm(ctx, "u1", a.ID, &models.PaymentConfirmation{}); utils.KindOf(err) != utils.KindInternal {
		t.Fatalf("expected INTERNAL on missing payment data, got %v", err)
	}

	yes := true
	amount := 80.0
	date := time.Now()
	paid, err := f.svc.AttentionPaymentConfirm(ctx, "cashier", a.ID, &models.PaymentConfirmation{
		Paid: &yes, PaymentAmount: &amount, PaymentDate: &date, PaymentMethod: "CASH",
	})
	if err != nil {
		t.Fatalf("payment confirm: %v", err)
	}
	if !paid.Paid || !paid.Confirmed || paid.ConfirmedBy != "cashier" || paid.PaymentConfirmationData.User != "cashier" {
		t.Fatalf("unexpected paid ticket %+v", paid)
	}
	incomes := f.store.IncomeList()
	if len(incomes) != 1 || incomes[0].Amount != 80 || incomes[0].Type != models.IncomeUnique || incomes[0].AttentionID != a.ID {
		t.Fatalf("unexpected incomes %+v", incomes)
	}
}

func TestEventsPublishedOnCreate(t *testing.T) {
	f := newFixture(t, nil)
	f.create(t, CreateAttentionInput{})
	names := f.events.Names()
	var sawQueue, sawCreated bool
	for _, n := range names {
		sawQueue = sawQueue || n == models.EventQueueUpdated
		sawCreated = sawCreated || n == models.EventAttentionCreated
	}
	if !sawQueue || !sawCreated {
		t.Fatalf("expected queue and attention events, got %v", names)
	}
}
