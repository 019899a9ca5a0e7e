package passes

import (
	"errors"
	"testing"
	"time"

	passModel "bus-buddy/models/pass"
	"bus-buddy/types"
)

type stubStore struct {
	passes        []passModel.Pass
	createdPasses []*passModel.Pass
	upsertedCards []*passModel.PassCard
	purgedBefore  *time.Time
	tripCount     int

	createErr error
	queryErr  error
}

func (s *stubStore) PassesForUser(userID uint) ([]passModel.Pass, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.passes, nil
}

func (s *stubStore) CreatePassWithMarker(p *passModel.Pass) error {
	if s.createErr != nil {
		return s.createErr
	}
	p.ID = uint(len(s.createdPasses) + 1)
	s.createdPasses = append(s.createdPasses, p)
	return nil
}

func (s *stubStore) PurgeExpiredMarkers(userID uint, before time.Time) error {
	s.purgedBefore = &before
	return nil
}

func (s *stubStore) UpsertPassCard(card *passModel.PassCard) error {
	s.upsertedCards = append(s.upsertedCards, card)
	return nil
}

func (s *stubStore) TripCount(passID uint) (int, error) {
	return s.tripCount, nil
}

func (s *stubStore) CountPassesForUser(userID uint) (int64, error) {
	return int64(len(s.passes)), nil
}

func validParams() CreateParams {
	return CreateParams{
		UserID:       1,
		FullName:     "Asha Rao",
		Source:       "Central",
		Destination:  "Airport",
		Route:        "12A",
		StartDate:    date(2024, 6, 1),
		ValidityDays: 7,
		PaymentRef:   "pi_test",
	}
}

func TestCreatePass(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store)

	p, err := svc.CreatePass(validParams())
	if err != nil {
		t.Fatalf("CreatePass returned error: %v", err)
	}

	if !p.StartDate.Equal(date(2024, 6, 1)) || !p.EndDate.Equal(date(2024, 6, 7)) {
		t.Errorf("window = %v..%v, want 2024-06-01..2024-06-07", p.StartDate, p.EndDate)
	}
	if p.Amount != 500 {
		t.Errorf("amount = %d, want 500", p.Amount)
	}
	if store.purgedBefore == nil {
		t.Error("expired markers were not purged before creation")
	}
	if len(store.createdPasses) != 1 {
		t.Fatalf("created %d passes, want 1", len(store.createdPasses))
	}
}

func TestCreatePassValidation(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store)

	sameStops := validParams()
	sameStops.Destination = sameStops.Source
	if _, err := svc.CreatePass(sameStops); !errors.Is(err, types.ErrSameSourceDestination) {
		t.Errorf("same stops: err = %v, want ErrSameSourceDestination", err)
	}

	noPayment := validParams()
	noPayment.PaymentRef = ""
	if _, err := svc.CreatePass(noPayment); !errors.Is(err, types.ErrMissingPaymentRef) {
		t.Errorf("no payment: err = %v, want ErrMissingPaymentRef", err)
	}

	badDuration := validParams()
	badDuration.ValidityDays = 10
	if _, err := svc.CreatePass(badDuration); !errors.Is(err, types.ErrInvalidDuration) {
		t.Errorf("bad duration: err = %v, want ErrInvalidDuration", err)
	}

	if len(store.createdPasses) != 0 {
		t.Errorf("validation failures still created %d passes", len(store.createdPasses))
	}
}

func TestCreatePassSurfacesDuplicateGuard(t *testing.T) {
	store := &stubStore{createErr: types.ErrActivePassExists}
	svc := NewService(store)

	if _, err := svc.CreatePass(validParams()); !errors.Is(err, types.ErrActivePassExists) {
		t.Errorf("err = %v, want ErrActivePassExists", err)
	}
}

func TestActivePassNoneHeld(t *testing.T) {
	store := &stubStore{
		passes: []passModel.Pass{
			{ID: 1, UserID: 1, EndDate: date(2024, 5, 20)},
		},
	}
	svc := NewService(store)

	p, err := svc.ActivePass(1, date(2024, 6, 1))
	if err != nil {
		t.Fatalf("ActivePass returned error: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for expired-only history, got pass %d", p.ID)
	}
	if len(store.upsertedCards) != 0 {
		t.Error("pass card projected with no active pass")
	}
}

func TestActivePassLastDayInclusive(t *testing.T) {
	store := &stubStore{
		passes: []passModel.Pass{
			{ID: 1, UserID: 1, EndDate: date(2024, 6, 7)},
		},
	}
	svc := NewService(store)

	lastDayAfternoon := time.Date(2024, 6, 7, 15, 30, 0, 0, time.UTC)
	p, err := svc.ActivePass(1, lastDayAfternoon)
	if err != nil {
		t.Fatalf("ActivePass returned error: %v", err)
	}
	if p == nil {
		t.Fatal("pass should stay active through its whole last day")
	}
}

func TestActivePassTieBreakNewestCreation(t *testing.T) {
	older := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	store := &stubStore{
		passes: []passModel.Pass{
			{ID: 1, UserID: 1, EndDate: date(2024, 7, 1), CreatedAt: older},
			{ID: 2, UserID: 1, EndDate: date(2024, 6, 15), CreatedAt: newer},
		},
	}
	svc := NewService(store)

	p, err := svc.ActivePass(1, date(2024, 6, 1))
	if err != nil {
		t.Fatalf("ActivePass returned error: %v", err)
	}
	if p == nil || p.ID != 2 {
		t.Fatalf("tie-break picked pass %+v, want id 2 (newest creation)", p)
	}
}

func TestActivePassProjectsCard(t *testing.T) {
	store := &stubStore{
		passes: []passModel.Pass{
			{ID: 7, UserID: 1, FullName: "Asha Rao", StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 7)},
		},
	}
	svc := NewService(store)

	if _, err := svc.ActivePass(1, date(2024, 6, 3)); err != nil {
		t.Fatalf("ActivePass returned error: %v", err)
	}
	if len(store.upsertedCards) != 1 {
		t.Fatalf("projected %d cards, want 1", len(store.upsertedCards))
	}
	card := store.upsertedCards[0]
	if card.PassID != 7 || card.FullName != "Asha Rao" {
		t.Errorf("card = %+v, want pass 7 / Asha Rao", card)
	}
}

func TestLatestPass(t *testing.T) {
	svc := NewService(&stubStore{})
	p, err := svc.LatestPass(1)
	if err != nil {
		t.Fatalf("LatestPass returned error: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for empty history, got pass %d", p.ID)
	}

	older := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	svc = NewService(&stubStore{
		passes: []passModel.Pass{
			{ID: 1, UserID: 1, EndDate: date(2024, 5, 10), CreatedAt: older},
			{ID: 2, UserID: 1, EndDate: date(2024, 5, 28), CreatedAt: newer},
		},
	})
	p, err = svc.LatestPass(1)
	if err != nil {
		t.Fatalf("LatestPass returned error: %v", err)
	}
	if p == nil || p.ID != 2 {
		t.Fatalf("latest = %+v, want id 2", p)
	}
}

func TestHasActivePass(t *testing.T) {
	store := &stubStore{
		passes: []passModel.Pass{
			{ID: 1, UserID: 1, EndDate: date(2024, 6, 7)},
		},
	}
	svc := NewService(store)

	has, err := svc.HasActivePass(1, date(2024, 6, 3))
	if err != nil {
		t.Fatalf("HasActivePass returned error: %v", err)
	}
	if !has {
		t.Error("expected an active pass")
	}

	has, err = svc.HasActivePass(1, date(2024, 6, 8))
	if err != nil {
		t.Fatalf("HasActivePass returned error: %v", err)
	}
	if has {
		t.Error("expired pass reported as active")
	}
}
