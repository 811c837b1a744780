package engine

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"hunterquest/internal/storage"
)

// Default sidequest rewards per difficulty. Used when the caller does
// not price the sidequest explicitly.
var sidequestRewards = map[SideDifficulty]struct {
	XP    int
	Coins int
}{
	SideTrivial: {XP: 5, Coins: 2},
	SideEasy:    {XP: 10, Coins: 5},
	SideMedium:  {XP: 20, Coins: 10},
	SideHard:    {XP: 40, Coins: 20},
}

type CreateSidequestInput struct {
	Title       string
	Description string
	Difficulty  SideDifficulty
	Stat        Stat
	// XP/Coins override the difficulty defaults when > 0.
	XP    int
	Coins int
}

func (s *Service) CreateSidequest(ctx context.Context, userID string, in CreateSidequestInput) (*storage.Sidequest, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ValidationError{Field: "title", Reason: "required"}
	}
	if !in.Difficulty.IsValid() {
		return nil, ValidationError{Field: "difficulty", Reason: "unknown difficulty " + string(in.Difficulty)}
	}
	stat := in.Stat
	if !stat.IsValid() {
		stat = DefaultStat
	}

	def := sidequestRewards[in.Difficulty]
	xp, coins := def.XP, def.Coins
	if in.XP > 0 {
		xp = clampQuestXP(in.XP)
	}
	if in.Coins > 0 {
		coins = in.Coins
	}

	sq := &storage.Sidequest{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: in.Description,
		Difficulty:  string(in.Difficulty),
		Stat:        string(stat),
		XP:          xp,
		Coins:       coins,
		Status:      storage.SidequestPending,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.sidequests.Insert(ctx, sq); err != nil {
		return nil, domainErr("sidequest create", err)
	}
	return sq, nil
}

// SidequestResult is the snapshot after completing a sidequest.
type SidequestResult struct {
	SidequestID  string
	Stat         Stat
	XPAwarded    int
	CoinsAwarded int
	StatLevel    int
	Coins        int
}

// CompleteSidequest settles a pending sidequest through the same
// ledger primitives as tracker quests: stat XP plus coins, once.
func (s *Service) CompleteSidequest(ctx context.Context, userID, sidequestID string) (*SidequestResult, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	var res *SidequestResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := storage.NewUserRepo(tx)
		sidequests := storage.NewSidequestRepo(tx)

		sq, err := sidequests.Get(ctx, sidequestID)
		if err != nil {
			return err
		}
		if sq == nil || sq.UserID != userID {
			return NotFoundError{Kind: "sidequest", ID: sidequestID}
		}
		if sq.Status != storage.SidequestPending {
			return ValidationError{Field: "sidequest", Reason: "already completed"}
		}
		u, err := s.getUser(ctx, users, userID)
		if err != nil {
			return err
		}

		stat := Stat(sq.Stat)
		if !stat.IsValid() {
			stat = DefaultStat
		}
		s.ledger.ApplyStatXP(u, stat, sq.XP)
		s.ledger.ApplyCoins(u, sq.Coins)

		now := s.now().UTC()
		sq.Status = storage.SidequestCompleted
		sq.CompletedAt = &now
		if err := sidequests.Update(ctx, sq); err != nil {
			return err
		}
		if err := users.Update(ctx, u); err != nil {
			return err
		}

		res = &SidequestResult{
			SidequestID:  sidequestID,
			Stat:         stat,
			XPAwarded:    sq.XP,
			CoinsAwarded: sq.Coins,
			StatLevel:    u.Stats[string(stat)].Level,
			Coins:        u.Coins,
		}
		return nil
	})
	if err != nil {
		return nil, domainErr("sidequest complete", err)
	}
	return res, nil
}
