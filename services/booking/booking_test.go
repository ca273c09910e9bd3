package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"queuedesk/database/repository"
	"queuedesk/database/repository/memory"
	"queuedesk/models"
	"queuedesk/services/attention"
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

type countingClient struct {
	mu       sync.Mutex
	emails   int
	messages int
}

func (c *countingClient) SendMessage(context.Context, string, string, string, string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages++
	return "wa", nil
}

func (c *countingClient) SendEmail(context.Context, string, []string, map[string]interface{}) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.emails++
	return "mail", nil
}

func (c *countingClient) SendRawEmail(context.Context, notification.RawEmail) (string, error) {
	return "raw", nil
}

type fixture struct {
	svc     *DefaultBookingService
	store   *memory.Store
	clients *countingClient
}

func newFixture(t *testing.T, toggles feature.Static, q models.Queue) *fixture {
	t.Helper()
	store := memory.NewStore()
	rec := &events.Recorder{}
	queues := &queue.DefaultQueueService{Repo: store.Queues(), Events: rec}
	clients := &client.DefaultClientService{Repo: store.Clients()}
	users := &client.DefaultUserService{Repo: store.Users(), Clients: clients}
	ledger := pack.Ledger{
		Packages: &pack.DefaultPackageService{Repo: store.Packages()},
		Incomes:  &pack.DefaultIncomeService{Repo: store.Incomes()},
	}
	sender := &countingClient{}
	notifications := &notification.DefaultNotificationService{Repo: store.Notifications(), WhatsApp: sender, Email: sender}
	runner := batch.Runner{MaxConcurrent: 4}

	attentions := &attention.DefaultAttentionService{
		Repo:          store.Attentions(),
		Queues:        queues,
		Commerces:     store.Commerces(),
		Users:         users,
		Clients:       clients,
		Ledger:        ledger,
		Features:      toggles,
		Notifications: notifications,
		Documents:     documents.NoopStore{},
		Events:        rec,
		Runner:        runner,
	}
	svc := &DefaultBookingService{
		Repo:          store.Bookings(),
		Queues:        queues,
		Commerces:     store.Commerces(),
		Users:         users,
		Clients:       clients,
		Attentions:    attentions,
		Ledger:        ledger,
		Features:      toggles,
		Notifications: notifications,
		Events:        rec,
		Runner:        runner,
		BackendURL:    "http://localhost",
	}

	store.PutCommerce(models.Commerce{ID: "c1", Name: "Clinic", KeyName: "clinic"})
	store.PutCollaborator(models.Collaborator{ID: "col1", CommerceID: "c1", Name: "Bea", ModuleID: "m1"})
	store.PutModule(models.Module{ID: "m1", CommerceID: "c1", Name: "3"})
	if q.ID == "" {
		q.ID = "q1"
	}
	if q.Limit == 0 {
		q.Limit = 50
	}
	q.CommerceID = "c1"
	q.Active = true
	if q.Type == "" {
		q.Type = models.QueueTypeStandard
	}
	if err := store.Queues().Create(context.Background(), &q); err != nil {
		t.Fatalf("seed queue: %v", err)
	}
	return &fixture{svc: svc, store: store, clients: sender}
}

func visitor(email string) *models.User {
	return &models.User{Name: "Ana", Email: email, Phone: "5511", NotificationOn: true, AcceptTermsAndConditions: true}
}

func (f *fixture) book(t *testing.T, in CreateBookingInput) *models.Booking {
	t.Helper()
	if in.QueueID == "" {
		in.QueueID = "q1"
	}
	b, err := f.svc.CreateBooking(context.Background(), in)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return b
}

func TestCreateBookingRespectsQueueLimit(t *testing.T) {
	f := newFixture(t, nil, models.Queue{Limit: 2})
	f.book(t, CreateBookingInput{Date: "2030-05-02"})
	second := f.book(t, CreateBookingInput{Date: "2030-05-02"})
	if second.Number != 2 {
		t.Fatalf("second booking number = %d, want 2", second.Number)
	}

	_, err := f.svc.CreateBooking(context.Background(), CreateBookingInput{QueueID: "q1", Date: "2030-05-02"})
	if utils.KindOf(err) != utils.KindInternal {
		t.Fatalf("expected INTERNAL when the queue is full, got %v", err)
	}
	if _, err := f.svc.CreateBooking(context.Background(), CreateBookingInput{QueueID: "q1", Date: "2030-05-03"}); err != nil {
		t.Fatalf("another day should still accept bookings: %v", err)
	}
}

func TestCreateBookingOnZeroLimitQueue(t *testing.T) {
	f := newFixture(t, nil, models.Queue{})
	ctx := context.Background()
	closed := &models.Queue{ID: "q0", CommerceID: "c1", Active: true, Type: models.QueueTypeStandard}
	if err := f.store.Queues().Create(ctx, closed); err != nil {
		t.Fatalf("seed queue: %v", err)
	}
	if _, err := f.svc.CreateBooking(ctx, CreateBookingInput{QueueID: "q0", Date: "2030-05-02"}); utils.KindOf(err) != utils.KindInternal {
		t.Fatalf("expected INTERNAL for a queue with limit 0, got %v", err)
	}
	if n, _ := f.store.Bookings().Count(ctx, repository.BookingFilter{QueueID: "q0"}); n != 0 {
		t.Fatalf("bookings stored on a closed queue: %d", n)
	}
}

func TestCreateBookingRespectsBlockLimit(t *testing.T) {
	tests := []struct {
		name       string
		blockLimit int
		accepted   int
	}{
		{"default limit", 0, 1},
		{"limit of one", 1, 2},
		{"limit of three", 3, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil, models.Queue{ServiceInfo: &models.ServiceInfo{BlockLimit: tt.blockLimit}})
			block := &models.Block{Number: 2, HourFrom: "9:30", HourTo: "10:00"}
			for i := 0; i < tt.accepted; i++ {
				b := f.book(t, CreateBookingInput{Date: "2030-05-02", Block: block})
				if b.Number != 2 {
					t.Fatalf("block booking number = %d, want 2", b.Number)
				}
			}
			_, err := f.svc.CreateBooking(context.Background(), CreateBookingInput{QueueID: "q1", Date: "2030-05-02", Block: block})
			if utils.KindOf(err) != utils.KindInternal {
				t.Fatalf("expected INTERNAL once the block is full, got %v", err)
			}
		})
	}
}

func TestCreateBookingStatusAndTermsCode(t *testing.T) {
	f := newFixture(t, feature.Static{
		models.ToggleBookingConfirm:              true,
		models.ToggleEmailBookingTermsConditions: true,
	}, models.Queue{})
	b := f.book(t, CreateBookingInput{Date: "2030-05-02", User: visitor("")})
	if b.Status != models.BookingPending {
		t.Fatalf("status = %s, want PENDING", b.Status)
	}
	if len(b.TermsConditionsToAcceptCode) != termsCodeLength {
		t.Fatalf("terms code = %q", b.TermsConditionsToAcceptCode)
	}
	if want := time.Date(2030, 5, 2, 0, 0, 0, 0, time.UTC); !b.DateFormatted.Equal(want) {
		t.Fatalf("dateFormatted = %v, want %v", b.DateFormatted, want)
	}

	explicit := f.book(t, CreateBookingInput{Date: "2030-05-02", Status: models.BookingConfirmed})
	if explicit.Status != models.BookingConfirmed {
		t.Fatalf("explicit status should win, got %s", explicit.Status)
	}
}

func TestCreateBookingForUnknownClient(t *testing.T) {
	f := newFixture(t, nil, models.Queue{})
	_, err := f.svc.CreateBooking(context.Background(), CreateBookingInput{QueueID: "q1", Date: "2030-05-02", ClientID: "ghost"})
	if utils.KindOf(err) != utils.KindInternal {
		t.Fatalf("expected INTERNAL, got %v", err)
	}
}

func TestCreateBookingNotifies(t *testing.T) {
	f := newFixture(t, feature.Static{
		models.ToggleEmailBooking:    true,
		models.ToggleWhatsappBooking: true,
	}, models.Queue{})
	f.book(t, CreateBookingInput{Date: "2030-05-02", User: visitor("ana@example.com")})
	if f.clients.emails != 1 || f.clients.messages != 1 {
		t.Fatalf("emails=%d messages=%d, want 1 and 1", f.clients.emails, f.clients.messages)
	}
	if got := len(f.store.NotificationsSent()); got != 2 {
		t.Fatalf("recorded notifications = %d, want 2", got)
	}
}

func TestCancelBookingDetachesPackage(t *testing.T) {
	f := newFixture(t, nil, models.Queue{})
	ctx := context.Background()
	b := f.book(t, CreateBookingInput{Date: "2030-05-02", User: visitor("ana@example.com")})
	if b.ClientID == "" {
		t.Fatalf("expected the booking to carry a client")
	}
	p, err := f.svc.Ledger.Packages.CreatePackage(ctx, "u1", pack.NewPackage{
		CommerceID: "c1", ClientID: b.ClientID, ProceduresAmount: 4, BookingsID: []string{b.ID, "b-other"},
	})
	if err != nil {
		t.Fatalf("create package: %v", err)
	}

	cancelled, err := f.svc.CancelBooking(ctx, "u1", b.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != models.BookingReserveCanceled || !cancelled.Cancelled || cancelled.CancelledAt == nil {
		t.Fatalf("unexpected cancelled booking %+v", cancelled)
	}
	stored, _ := f.store.Packages().GetByID(ctx, p.ID)
	if len(stored.BookingsID) != 1 || stored.BookingsID[0] != "b-other" {
		t.Fatalf("booking still attached to package: %v", stored.BookingsID)
	}

	if _, err := f.svc.CancelBooking(ctx, "u1", "missing"); utils.KindOf(err) != utils.KindNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestCancelBookingLeavesProcessedBooking(t *testing.T) {
	f := newFixture(t, feature.Static{models.ToggleBookingWhatsappCancel: true}, models.Queue{})
	ctx := context.Background()
	b := f.book(t, CreateBookingInput{Date: "2030-05-02", User: visitor("")})
	if result, err := f.svc.ProcessBookingByID(ctx, "u1", b.ID); err != nil || result.Processed != 1 {
		t.Fatalf("process: %+v %v", result, err)
	}
	sentBefore := f.clients.messages

	got, err := f.svc.CancelBooking(ctx, "u1", b.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got.Status != models.BookingProcessed || got.Cancelled || got.AttentionID == "" {
		t.Fatalf("processed booking was cancelled: %+v", got)
	}
	stored, _ := f.store.Bookings().GetByID(ctx, b.ID)
	if stored.Status != models.BookingProcessed {
		t.Fatalf("stored status = %s, want PROCESSED", stored.Status)
	}
	if f.clients.messages != sentBefore {
		t.Fatalf("cancellation message sent for a processed booking")
	}
}

func TestConfirmBookingWithoutToggleIsNoop(t *testing.T) {
	f := newFixture(t, nil, models.Queue{})
	b := f.book(t, CreateBookingInput{Date: "2030-05-02", Status: models.BookingPending})
	got, err := f.svc.ConfirmBooking(context.Background(), "u1", b.ID, nil)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if got.Status != models.BookingPending || got.Confirmed {
		t.Fatalf("booking changed without booking-confirm: %+v", got)
	}
}

func TestConfirmBookingDueTodayCreatesAttention(t *testing.T) {
	f := newFixture(t, feature.Static{models.ToggleBookingConfirm: true}, models.Queue{})
	ctx := context.Background()
	today := utils.TodayIn("", time.Now())
	b := f.book(t, CreateBookingInput{Date: today, User: visitor("")})

	confirmed, err := f.svc.ConfirmBooking(ctx, "u1", b.ID, nil)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !confirmed.Confirmed || confirmed.Status != models.BookingProcessed || confirmed.AttentionID == "" {
		t.Fatalf("expected a processed booking with a ticket, got %+v", confirmed)
	}
	a, err := f.store.Attentions().GetByID(ctx, confirmed.AttentionID)
	if err != nil || a == nil {
		t.Fatalf("attention not stored: %v", err)
	}
	if a.BookingID != b.ID || a.QueueID != "q1" {
		t.Fatalf("unexpected attention %+v", a)
	}
}

func TestConfirmBookingTwiceKeepsProcessedBooking(t *testing.T) {
	f := newFixture(t, feature.Static{models.ToggleBookingConfirm: true}, models.Queue{})
	ctx := context.Background()
	b := f.book(t, CreateBookingInput{Date: utils.TodayIn("", time.Now()), User: visitor("")})

	first, err := f.svc.ConfirmBooking(ctx, "u1", b.ID, nil)
	if err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	second, err := f.svc.ConfirmBooking(ctx, "u1", b.ID, nil)
	if err != nil {
		t.Fatalf("second confirm: %v", err)
	}
	if second.Status != models.BookingProcessed || second.AttentionID != first.AttentionID {
		t.Fatalf("second confirm changed the booking: %+v", second)
	}
	stored, _ := f.store.Bookings().GetByID(ctx, b.ID)
	if stored.Status != models.BookingProcessed || stored.AttentionID != first.AttentionID {
		t.Fatalf("stored booking = %s/%s, want PROCESSED/%s", stored.Status, stored.AttentionID, first.AttentionID)
	}
	if found, _ := f.store.Attentions().Find(ctx, repository.AttentionFilter{QueueID: "q1"}); len(found) != 1 {
		t.Fatalf("attentions = %d, want 1", len(found))
	}
}

func TestConfirmBookingPayment(t *testing.T) {
	f := newFixture(t, feature.Static{
		models.ToggleBookingConfirm:        true,
		models.ToggleBookingConfirmPayment: true,
	}, models.Queue{})
	ctx := context.Background()
	b := f.book(t, CreateBookingInput{Date: "2030-05-02", User: visitor("ana@example.com")})

	no := false
	if _, err := f.svc.ConfirmBooking(ctx, "u1", b.ID, &models.PaymentConfirmation{Paid: &no}); utils.KindOf(err) != utils.KindInternal {
		t.Fatalf("expected INTERNAL for an unpaid confirmation, got %v", err)
	}

	skipped, err := f.svc.ConfirmBooking(ctx, "u1", b.ID, &models.PaymentConfirmation{SkipPayment: true})
	if err != nil {
		t.Fatalf("confirm with skipPayment: %v", err)
	}
	if !skipped.Confirmed || skipped.ConfirmationData != nil {
		t.Fatalf("skipPayment should confirm without payment data, got %+v", skipped)
	}

	amount := 120.0
	date := time.Now()
	paid, err := f.svc.ConfirmBooking(ctx, "cashier", b.ID, &models.PaymentConfirmation{
		PaymentAmount: &amount, PaymentDate: &date, ProcedureNumber: 1, ProceduresTotalNumber: 5,
	})
	if err != nil {
		t.Fatalf("confirm with payment: %v", err)
	}
	if paid.PackageID == "" || paid.PackageProceduresTotalNumber != 5 || paid.PackageProcedureNumber != 1 {
		t.Fatalf("expected package counters on the booking, got %+v", paid)
	}
	if paid.ConfirmedBy != "cashier" || paid.ConfirmationData.User != "cashier" {
		t.Fatalf("unexpected confirmation stamps %+v", paid)
	}
	incomes := f.store.IncomeList()
	if len(incomes) != 1 || incomes[0].BookingID != b.ID || incomes[0].PackageID != paid.PackageID {
		t.Fatalf("unexpected incomes %+v", incomes)
	}
	p, _ := f.store.Packages().GetByID(ctx, paid.PackageID)
	if !p.Paid {
		t.Fatalf("package should be paid")
	}
}

func TestProcessBookings(t *testing.T) {
	f := newFixture(t, nil, models.Queue{})
	ctx := context.Background()

	if _, err := f.svc.ProcessBookings(ctx, ""); utils.KindOf(err) != utils.KindBadRequest {
		t.Fatalf("expected BAD_REQUEST for an empty date, got %v", err)
	}

	f.book(t, CreateBookingInput{Date: "2030-05-02", User: visitor("")})
	f.book(t, CreateBookingInput{Date: "2030-05-02", User: visitor("")})
	f.book(t, CreateBookingInput{Date: "2030-05-03", User: visitor("")})

	result, err := f.svc.ProcessBookings(ctx, "2030-05-02")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.ToProcess != 2 || result.Processed != 2 || result.Errors != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
	left, _ := f.svc.GetPendingBookingsByQueueAndDate(ctx, "q1", "2030-05-02")
	if len(left) != 0 {
		t.Fatalf("expected every booking of the day processed, %d left", len(left))
	}
	q, _ := f.store.Queues().GetByID(ctx, "q1")
	if q.CurrentNumber != 2 {
		t.Fatalf("currentNumber = %d, want 2", q.CurrentNumber)
	}
}

func TestProcessBookingByID(t *testing.T) {
	f := newFixture(t, nil, models.Queue{})
	ctx := context.Background()
	if _, err := f.svc.ProcessBookingByID(ctx, "u1", ""); utils.KindOf(err) != utils.KindBadRequest {
		t.Fatalf("expected BAD_REQUEST, got %v", err)
	}
	b := f.book(t, CreateBookingInput{Date: "2030-05-02", User: visitor("")})
	result, err := f.svc.ProcessBookingByID(ctx, "u1", b.ID)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.ToProcess != 1 || result.Processed != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestProcessPastBooking(t *testing.T) {
	f := newFixture(t, nil, models.Queue{})
	b := f.book(t, CreateBookingInput{Date: "2020-02-10", User: visitor("")})

	result := f.svc.ProcessPastBooking(context.Background(), b.ID, "col1", "es")
	if result.Attention == nil || result.ProcessBooking == nil || result.Attend == nil || result.Finish == nil {
		t.Fatalf("expected every step to run, got %+v", result)
	}
	want := time.Date(2020, 2, 10, 0, 0, 0, 0, time.UTC)
	if !result.Attention.CreatedAt.Equal(want) {
		t.Fatalf("attention createdAt = %v, want %v", result.Attention.CreatedAt, want)
	}
	if result.Finish.Status != models.AttentionTerminated || result.Finish.Comment != migrationComment {
		t.Fatalf("unexpected finished attention %+v", result.Finish)
	}
	if result.ProcessBooking.Status != models.BookingProcessed {
		t.Fatalf("booking status = %s", result.ProcessBooking.Status)
	}

	missing := f.svc.ProcessPastBooking(context.Background(), "nope", "col1", "es")
	if missing.Booking != nil || missing.Attention != nil {
		t.Fatalf("missing booking should yield an empty result, got %+v", missing)
	}
}

func TestConfirmNotifyBookings(t *testing.T) {
	f := newFixture(t, feature.Static{
		models.ToggleBookingEmailConfirm:    true,
		models.ToggleBookingWhatsappConfirm: true,
	}, models.Queue{})
	ctx := context.Background()
	tomorrow := utils.AddDays(time.Now(), 1)
	first := f.book(t, CreateBookingInput{Date: tomorrow, User: visitor("ana@example.com")})
	f.book(t, CreateBookingInput{Date: tomorrow, User: &models.User{AcceptTermsAndConditions: true}})

	result, err := f.svc.ConfirmNotifyBookings(ctx, 1)
	if err != nil {
		t.Fatalf("confirm notify: %v", err)
	}
	if result.ToProcess != 2 || result.Processed != 2 || result.Emails != 1 || result.Messages != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	stored, _ := f.svc.GetBookingByID(ctx, first.ID)
	if !stored.ConfirmNotified || !stored.ConfirmNotifiedEmail || !stored.ConfirmNotifiedWhatsapp {
		t.Fatalf("flags not set: %+v", stored)
	}

	again, err := f.svc.ConfirmNotifyBookings(ctx, 1)
	if err != nil {
		t.Fatalf("confirm notify again: %v", err)
	}
	if again.ToProcess != 0 {
		t.Fatalf("already notified bookings were picked again: %+v", again)
	}
}

func TestCancelBookingsClosesPastDays(t *testing.T) {
	f := newFixture(t, nil, models.Queue{})
	ctx := context.Background()
	past := f.book(t, CreateBookingInput{Date: "2020-01-01"})
	future := f.book(t, CreateBookingInput{Date: "2030-01-01"})

	result, err := f.svc.CancelBookings(ctx)
	if err != nil {
		t.Fatalf("cancel bookings: %v", err)
	}
	if result.ToProcess != 1 || result.Processed != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if b, _ := f.svc.GetBookingByID(ctx, past.ID); b.Status != models.BookingCancelled || !b.Cancelled {
		t.Fatalf("past booking not cancelled: %+v", b)
	}
	if b, _ := f.svc.GetBookingByID(ctx, future.ID); b.Status == models.BookingCancelled {
		t.Fatalf("future booking must stay active")
	}
}

func TestTransferBookingToQueue(t *testing.T) {
	f := newFixture(t, nil, models.Queue{})
	ctx := context.Background()
	_ = f.store.Queues().Create(ctx, &models.Queue{ID: "q2", CommerceID: "c1", Type: models.QueueTypeCollaborator})
	_ = f.store.Queues().Create(ctx, &models.Queue{ID: "q3", CommerceID: "c1", Type: models.QueueTypeService})
	b := f.book(t, CreateBookingInput{Date: "2030-05-02"})

	if _, err := f.svc.TransferBookingToQueue(ctx, "u1", b.ID, "q3"); utils.KindOf(err) != utils.KindBadRequest {
		t.Fatalf("expected BAD_REQUEST, got %v", err)
	}
	moved, err := f.svc.TransferBookingToQueue(ctx, "u1", b.ID, "q2")
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	moved, err = f.svc.TransferBookingToQueue(ctx, "u2", moved.ID, "q2")
	if err != nil {
		t.Fatalf("second transfer: %v", err)
	}
	if moved.TransferedCount != 2 || moved.QueueID != "q2" || moved.TransferedBy != "u2" {
		t.Fatalf("unexpected transferred booking %+v", moved)
	}
}

func TestEditBookingDateAndBlock(t *testing.T) {
	f := newFixture(t, nil, models.Queue{})
	ctx := context.Background()
	origin := &models.Block{Number: 1, HourFrom: "9:00", HourTo: "9:30"}
	b := f.book(t, CreateBookingInput{Date: "2030-05-02", Block: origin})

	if _, err := f.svc.EditBookingDateAndBlock(ctx, "u1", b.ID, "2030-05-03", nil); utils.KindOf(err) != utils.KindBadRequest {
		t.Fatalf("expected BAD_REQUEST without a block, got %v", err)
	}
	if _, err := f.svc.EditBookingDateAndBlock(ctx, "u1", "missing", "2030-05-03", origin); utils.KindOf(err) != utils.KindNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}

	next := &models.Block{Number: 4, HourFrom: "10:30", HourTo: "11:00"}
	edited, err := f.svc.EditBookingDateAndBlock(ctx, "u1", b.ID, "2030-05-03", next)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.EditedDateOrigin != "2030-05-02" || edited.EditedBlockOrigin.Number != 1 || edited.EditedCount != 1 {
		t.Fatalf("origin not kept: %+v", edited)
	}
	if edited.Date != "2030-05-03" || edited.Block.Number != 4 || edited.DateFormatted.Day() != 3 {
		t.Fatalf("new date and block not applied: %+v", edited)
	}
}

func TestBookingDetailsCountsBookingsAhead(t *testing.T) {
	f := newFixture(t, nil, models.Queue{})
	ctx := context.Background()
	f.book(t, CreateBookingInput{Date: "2030-05-02"})
	second := f.book(t, CreateBookingInput{Date: "2030-05-02"})
	third := f.book(t, CreateBookingInput{Date: "2030-05-02"})
	if _, err := f.svc.CancelBooking(ctx, "u1", second.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	d, err := f.svc.GetBookingDetails(ctx, third.ID)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if d.BeforeYou != 1 {
		t.Fatalf("beforeYou = %d, want 1", d.BeforeYou)
	}
	if d.Queue == nil || d.Commerce == nil || d.Commerce.ID != "c1" {
		t.Fatalf("details missing joins: %+v", d)
	}
}

func TestPendingBookingsByClientFallsBackToIDNumber(t *testing.T) {
	f := newFixture(t, nil, models.Queue{})
	ctx := context.Background()
	f.book(t, CreateBookingInput{Date: "2030-05-02", User: &models.User{IDNumber: "123", AcceptTermsAndConditions: true}})

	found, err := f.svc.GetPendingBookingsByClient(ctx, "c1", "123", "client-without-bookings")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected the booking found by id number, got %d", len(found))
	}
}
