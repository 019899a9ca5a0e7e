package passes

import (
	"sort"
	"time"

	passModel "bus-buddy/models/pass"
	"bus-buddy/types"
)

// CreateParams carries everything needed to persist a new pass. Payment must
// already have succeeded; PaymentRef is the gateway's reference.
type CreateParams struct {
	UserID                 uint
	FullName               string
	EmergencyContactName   string
	EmergencyContactMobile string
	Source                 string
	Destination            string
	Route                  string
	StartDate              time.Time
	ValidityDays           int
	PaymentRef             string
	ProfileImageURL        *string
}

// Service is the pass record manager: creation, active-pass resolution and
// the duplicate-active-pass guard.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreatePass validates the parameters, derives the validity window and
// persists the pass together with its active-pass marker. Returns
// ErrActivePassExists when the user already holds an active pass, including
// the case where two creations race.
func (s *Service) CreatePass(params CreateParams) (*passModel.Pass, error) {
	if params.Source == params.Destination {
		return nil, types.ErrSameSourceDestination
	}
	if params.PaymentRef == "" {
		return nil, types.ErrMissingPaymentRef
	}

	start, end, err := ValidityWindow(params.StartDate, params.ValidityDays)
	if err != nil {
		return nil, err
	}
	amount, err := FareForValidity(params.ValidityDays)
	if err != nil {
		return nil, err
	}

	// A marker left behind by an expired pass would block creation forever.
	if err := s.store.PurgeExpiredMarkers(params.UserID, time.Now()); err != nil {
		return nil, err
	}

	p := &passModel.Pass{
		UserID:                 params.UserID,
		FullName:               params.FullName,
		EmergencyContactName:   params.EmergencyContactName,
		EmergencyContactMobile: params.EmergencyContactMobile,
		Source:                 params.Source,
		Destination:            params.Destination,
		Route:                  params.Route,
		ProfileImageURL:        params.ProfileImageURL,
		StartDate:              start,
		EndDate:                end,
		ValidityDays:           params.ValidityDays,
		Amount:                 amount,
		PaymentRef:             params.PaymentRef,
	}

	if err := s.store.CreatePassWithMarker(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ActivePass resolves the user's single active pass: end date not yet passed,
// most-recently-created first when more than one qualifies. Returns nil with
// no error when the user holds no active pass.
func (s *Service) ActivePass(userID uint, at time.Time) (*passModel.Pass, error) {
	passes, err := s.store.PassesForUser(userID)
	if err != nil {
		return nil, err
	}

	var active []passModel.Pass
	for _, p := range passes {
		if p.IsActive(at) {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return nil, nil
	}

	// Deterministic tie-break for the (historically possible) case of more
	// than one active pass: newest creation wins, then highest id.
	sort.Slice(active, func(i, j int) bool {
		if !active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].CreatedAt.After(active[j].CreatedAt)
		}
		return active[i].ID > active[j].ID
	})

	resolved := active[0]

	// Project the static card for the scanning agent. The card carries only
	// the QR payload fields, so repeated resolutions are idempotent upserts.
	card := &passModel.PassCard{
		PassID:          resolved.ID,
		FullName:        resolved.FullName,
		StartDate:       resolved.StartDate,
		EndDate:         resolved.EndDate,
		ProfileImageURL: resolved.ProfileImageURL,
	}
	if err := s.store.UpsertPassCard(card); err != nil {
		return nil, err
	}

	return &resolved, nil
}

// LatestPass returns the user's most recently created pass whether or not it
// is still active; nil when the user never bought one.
func (s *Service) LatestPass(userID uint) (*passModel.Pass, error) {
	passes, err := s.store.PassesForUser(userID)
	if err != nil {
		return nil, err
	}
	if len(passes) == 0 {
		return nil, nil
	}

	sort.Slice(passes, func(i, j int) bool {
		if !passes[i].CreatedAt.Equal(passes[j].CreatedAt) {
			return passes[i].CreatedAt.After(passes[j].CreatedAt)
		}
		return passes[i].ID > passes[j].ID
	})

	latest := passes[0]
	return &latest, nil
}

// HasActivePass is the duplicate-active-pass guard called before the creation
// flow is allowed to proceed.
func (s *Service) HasActivePass(userID uint, at time.Time) (bool, error) {
	p, err := s.ActivePass(userID, at)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}

// TripsToday reads the pass's daily trip count; a pass never scanned today
// reads as zero.
func (s *Service) TripsToday(passID uint) (int, error) {
	return s.store.TripCount(passID)
}

// CountForUser returns how many passes the user has ever created.
func (s *Service) CountForUser(userID uint) (int64, error) {
	return s.store.CountPassesForUser(userID)
}
