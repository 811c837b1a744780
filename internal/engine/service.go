package engine

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"hunterquest/internal/storage"
)

// Service wires the progression engine to persistence and the content
// generator. A hunter and their trackers are one unit of progression:
// every mutating operation takes the hunter's lock and runs its
// tracker+user writes inside a single transaction.
type Service struct {
	db     *sql.DB
	gen    ContentGenerator
	ledger Ledger
	ranks  []RankThreshold
	now    func() time.Time

	users      *storage.UserRepo
	trackers   *storage.TrackerRepo
	missions   *storage.MissionRepo
	quests     *storage.QuestRepo
	sidequests *storage.SidequestRepo

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(db *sql.DB, gen ContentGenerator) *Service {
	return &Service{
		db:         db,
		gen:        gen,
		ledger:     DefaultLedger,
		ranks:      DefaultRankThresholds,
		now:        time.Now,
		users:      storage.NewUserRepo(db),
		trackers:   storage.NewTrackerRepo(db),
		missions:   storage.NewMissionRepo(db),
		quests:     storage.NewQuestRepo(db),
		sidequests: storage.NewSidequestRepo(db),
		locks:      map[string]*sync.Mutex{},
	}
}

// SetTuning swaps in tuned leveling curves and rank thresholds. Call
// before serving requests.
func (s *Service) SetTuning(ledger Ledger, ranks []RankThreshold) {
	s.ledger = ledger
	if len(ranks) > 0 {
		s.ranks = ranks
	}
}

// Ledger exposes the active leveling curves, tuned or default.
func (s *Service) Ledger() Ledger { return s.ledger }

func (s *Service) UserRepo() *storage.UserRepo           { return s.users }
func (s *Service) TrackerRepo() *storage.TrackerRepo     { return s.trackers }
func (s *Service) MissionRepo() *storage.MissionRepo     { return s.missions }
func (s *Service) QuestRepo() *storage.QuestRepo         { return s.quests }
func (s *Service) SidequestRepo() *storage.SidequestRepo { return s.sidequests }

// lockUser serializes mutating operations for one hunter in-process.
// The version columns catch whatever slips past (another process).
func (s *Service) lockUser(userID string) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// Hunter returns the named hunter, creating one on first use.
func (s *Service) Hunter(ctx context.Context, name string) (*storage.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ValidationError{Field: "hunter", Reason: "name is required"}
	}
	u, err := s.users.GetOrCreateByName(ctx, name)
	if err != nil {
		return nil, domainErr("hunter load", err)
	}
	return u, nil
}

func (s *Service) getUser(ctx context.Context, repo *storage.UserRepo, userID string) (*storage.User, error) {
	u, err := repo.Get(ctx, userID)
	if err != nil {
		return nil, domainErr("user load", err)
	}
	if u == nil {
		return nil, NotFoundError{Kind: "hunter", ID: userID}
	}
	return u, nil
}

func (s *Service) getActiveTracker(ctx context.Context, repo *storage.TrackerRepo, trackerID string) (*storage.Tracker, error) {
	t, err := repo.Get(ctx, trackerID)
	if err != nil {
		return nil, domainErr("tracker load", err)
	}
	if t == nil || t.Status != storage.TrackerActive {
		return nil, NotFoundError{Kind: "tracker", ID: trackerID}
	}
	return t, nil
}

// domainErr maps storage failures into the engine taxonomy. Typed
// domain errors pass through untouched.
func domainErr(op string, err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case ValidationError, NotFoundError, StateConflictError, PersistenceError, ExternalServiceError:
		return err
	}
	if errors.Is(err, storage.ErrVersionConflict) {
		return StateConflictError{Resource: op}
	}
	return PersistenceError{Op: op, Err: err}
}
