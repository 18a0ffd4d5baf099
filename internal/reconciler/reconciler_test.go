package reconciler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/trilhaufpb/caixinha/internal/ledger"
	"github.com/trilhaufpb/caixinha/internal/models"
)

// fakeStore is an in-memory ledger.Store. GetMembers returns deep copies to
// mimic the fresh-snapshot semantics of a real roster fetch.
type fakeStore struct {
	members []models.Member
	getErr  error
	markErr error
	marked  []string
}

var _ ledger.Store = (*fakeStore)(nil)

func (f *fakeStore) GetMembers(_ context.Context, _ string) ([]models.Member, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make([]models.Member, len(f.members))
	for i, m := range f.members {
		status := make(map[string]string, len(m.PaymentStatus))
		for k, v := range m.PaymentStatus {
			status[k] = v
		}
		out[i] = models.Member{Name: m.Name, Email: m.Email, PaymentStatus: status}
	}
	return out, nil
}

func (f *fakeStore) GetUnpaidMembers(ctx context.Context, period, sheet string) ([]models.Member, error) {
	members, err := f.GetMembers(ctx, sheet)
	if err != nil {
		return nil, err
	}
	var unpaid []models.Member
	for i := range members {
		if !members[i].PaidFor(period) {
			unpaid = append(unpaid, members[i])
		}
	}
	return unpaid, nil
}

func (f *fakeStore) MarkPaid(_ context.Context, name, period, _ string) error {
	if f.markErr != nil {
		return f.markErr
	}
	for i := range f.members {
		if f.members[i].Name == name {
			if f.members[i].PaymentStatus == nil {
				f.members[i].PaymentStatus = make(map[string]string)
			}
			f.members[i].PaymentStatus[period] = "Paid"
			f.marked = append(f.marked, name)
			return nil
		}
	}
	return ledger.ErrMemberNotFound
}

func (f *fakeStore) Close() error { return nil }

type confirmation struct {
	to, name, amount, period string
}

type fakeNotifier struct {
	confirmations []confirmation
	sendErr       error
}

func (f *fakeNotifier) SendCharge(context.Context, string, string, *models.Charge, string, string) error {
	return nil
}

func (f *fakeNotifier) SendReminder(context.Context, string, string, *models.Charge, string) error {
	return nil
}

func (f *fakeNotifier) SendConfirmation(_ context.Context, to, name, amount, period string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.confirmations = append(f.confirmations, confirmation{to, name, amount, period})
	return nil
}

// june pins the billing period to "Junho".
func june() time.Time {
	return time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
}

func newTestReconciler(store *fakeStore, notifier *fakeNotifier) *Reconciler {
	return New(store, notifier, "Sheet1").WithClock(june)
}

func TestProcessMarksMemberPaid(t *testing.T) {
	store := &fakeStore{members: []models.Member{
		{Name: "Maria Silva", Email: "m@x.com"},
	}}
	notifier := &fakeNotifier{}
	r := newTestReconciler(store, notifier)

	report := r.Process(context.Background(), []models.PaymentEvent{
		{TxID: "abc", Amount: "40.00", PayerName: "MARIA SILVA  "},
	})

	if report.Status != models.StatusSuccess {
		t.Fatalf("status = %q, want success", report.Status)
	}
	if len(report.Results) != 1 || report.Results[0].Outcome != models.OutcomeUpdated {
		t.Fatalf("unexpected results: %+v", report.Results)
	}
	if report.Results[0].Name != "Maria Silva" {
		t.Errorf("resolved name = %q, want Maria Silva", report.Results[0].Name)
	}
	if !store.members[0].PaidFor("Junho") {
		t.Error("ledger status not written for Junho")
	}
	if len(notifier.confirmations) != 1 {
		t.Fatalf("got %d confirmations, want 1", len(notifier.confirmations))
	}
	c := notifier.confirmations[0]
	if c.to != "m@x.com" || c.amount != "40.00" || c.period != "Junho" {
		t.Errorf("unexpected confirmation: %+v", c)
	}
}

func TestProcessIsIdempotent(t *testing.T) {
	store := &fakeStore{members: []models.Member{
		{Name: "Maria Silva", Email: "m@x.com"},
	}}
	notifier := &fakeNotifier{}
	r := newTestReconciler(store, notifier)

	ev := models.PaymentEvent{TxID: "abc", Amount: "40.00", PayerName: "Maria Silva"}

	first := r.Process(context.Background(), []models.PaymentEvent{ev})
	if first.Results[0].Outcome != models.OutcomeUpdated {
		t.Fatalf("first outcome = %q, want updated", first.Results[0].Outcome)
	}

	second := r.Process(context.Background(), []models.PaymentEvent{ev})
	if second.Results[0].Outcome != models.OutcomeAlreadyPaid {
		t.Fatalf("second outcome = %q, want already_paid", second.Results[0].Outcome)
	}

	if got := store.members[0].PaymentStatus["Junho"]; got != "Paid" {
		t.Errorf("ledger status = %q, want Paid", got)
	}
	if len(store.marked) != 1 {
		t.Errorf("ledger written %d times, want 1", len(store.marked))
	}
	if len(notifier.confirmations) != 1 {
		t.Errorf("confirmation re-sent on duplicate event: %d sends", len(notifier.confirmations))
	}
}

func TestProcessDuplicateWithinBatch(t *testing.T) {
	store := &fakeStore{members: []models.Member{
		{Name: "Maria Silva", Email: "m@x.com"},
	}}
	notifier := &fakeNotifier{}
	r := newTestReconciler(store, notifier)

	ev := models.PaymentEvent{TxID: "abc", Amount: "40.00", PayerName: "Maria Silva"}
	report := r.Process(context.Background(), []models.PaymentEvent{ev, ev})

	if report.Succeeded != 1 || report.AlreadyPaid != 1 {
		t.Errorf("succeeded=%d already_paid=%d, want 1/1", report.Succeeded, report.AlreadyPaid)
	}
	if len(store.marked) != 1 {
		t.Errorf("ledger written %d times, want 1", len(store.marked))
	}
}

func TestProcessSkipsEventWithoutTxID(t *testing.T) {
	store := &fakeStore{members: []models.Member{{Name: "Maria Silva"}}}
	r := newTestReconciler(store, &fakeNotifier{})

	report := r.Process(context.Background(), []models.PaymentEvent{
		{PayerName: "Maria Silva", Amount: "40.00"},
	})

	if report.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", report.Skipped)
	}
	if len(store.marked) != 0 {
		t.Error("ledger touched for event without transaction id")
	}
}

func TestProcessUnresolvedPayer(t *testing.T) {
	store := &fakeStore{members: []models.Member{{Name: "Maria Silva"}}}
	r := newTestReconciler(store, &fakeNotifier{})

	report := r.Process(context.Background(), []models.PaymentEvent{
		{TxID: "abc", PayerName: "Carlos Pereira"},
	})

	if report.NotFound != 1 {
		t.Errorf("not_found = %d, want 1", report.NotFound)
	}
	if report.Results[0].Payer != "Carlos Pereira" {
		t.Errorf("payer not recorded for follow-up: %+v", report.Results[0])
	}
	if len(store.marked) != 0 {
		t.Error("ledger touched for unresolved payer")
	}
}

func TestProcessSubstringFallback(t *testing.T) {
	store := &fakeStore{members: []models.Member{{Name: "Jose Silva"}}}
	r := newTestReconciler(store, &fakeNotifier{})

	report := r.Process(context.Background(), []models.PaymentEvent{
		{TxID: "abc", PayerName: "Jose Silva Junior"},
	})

	if report.Results[0].Outcome != models.OutcomeUpdated {
		t.Fatalf("outcome = %q, want updated", report.Results[0].Outcome)
	}
	if report.Results[0].Name != "Jose Silva" {
		t.Errorf("resolved name = %q, want Jose Silva", report.Results[0].Name)
	}
}

func TestProcessLedgerWriteFailure(t *testing.T) {
	store := &fakeStore{
		members: []models.Member{{Name: "Maria Silva"}},
		markErr: errors.New("sheet unavailable"),
	}
	r := newTestReconciler(store, &fakeNotifier{})

	report := r.Process(context.Background(), []models.PaymentEvent{
		{TxID: "abc", PayerName: "Maria Silva"},
	})

	res := report.Results[0]
	if res.Outcome != models.OutcomeUpdateFailed {
		t.Fatalf("outcome = %q, want update_failed", res.Outcome)
	}
	if res.Err == "" {
		t.Error("expected error detail in result")
	}
	// The run itself still completes.
	if report.Status != models.StatusSuccess {
		t.Errorf("status = %q, want success", report.Status)
	}
}

func TestProcessConfirmationFailureKeepsWrite(t *testing.T) {
	store := &fakeStore{members: []models.Member{
		{Name: "Maria Silva", Email: "m@x.com"},
	}}
	notifier := &fakeNotifier{sendErr: errors.New("smtp down")}
	r := newTestReconciler(store, notifier)

	report := r.Process(context.Background(), []models.PaymentEvent{
		{TxID: "abc", PayerName: "Maria Silva"},
	})

	if report.Results[0].Outcome != models.OutcomeUpdated {
		t.Fatalf("outcome = %q, want updated despite send failure", report.Results[0].Outcome)
	}
	if !store.members[0].PaidFor("Junho") {
		t.Error("ledger write reverted on notification failure")
	}
}

func TestProcessNoEmailSkipsConfirmation(t *testing.T) {
	store := &fakeStore{members: []models.Member{{Name: "Maria Silva"}}}
	notifier := &fakeNotifier{}
	r := newTestReconciler(store, notifier)

	report := r.Process(context.Background(), []models.PaymentEvent{
		{TxID: "abc", PayerName: "Maria Silva"},
	})

	if report.Results[0].Outcome != models.OutcomeUpdated {
		t.Fatalf("outcome = %q, want updated", report.Results[0].Outcome)
	}
	if len(notifier.confirmations) != 0 {
		t.Error("confirmation sent to member without email")
	}
}

func TestProcessRosterFetchFailureAborts(t *testing.T) {
	store := &fakeStore{getErr: errors.New("credentials expired")}
	r := newTestReconciler(store, &fakeNotifier{})

	report := r.Process(context.Background(), []models.PaymentEvent{
		{TxID: "abc", PayerName: "Maria Silva"},
	})

	if report.Status != models.StatusError {
		t.Errorf("status = %q, want error", report.Status)
	}
	if len(report.Results) != 0 {
		t.Errorf("expected no per-event results, got %d", len(report.Results))
	}
}

func TestProcessEmptyBatch(t *testing.T) {
	store := &fakeStore{getErr: errors.New("must not be called")}
	r := newTestReconciler(store, &fakeNotifier{})

	report := r.Process(context.Background(), nil)
	if report.Status != models.StatusSuccess {
		t.Errorf("status = %q, want success", report.Status)
	}
}
