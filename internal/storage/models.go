package storage

import "time"

// StatProgress is one stat's XP-within-level pair.
type StatProgress struct {
	Value int `json:"value"`
	Level int `json:"level"`
}

type User struct {
	ID            string
	Name          string
	Level         int
	XP            int
	Coins         int
	Rank          string
	Stats         map[string]StatProgress
	Titles        []string
	TotalMissions int
	// CompletedTrackers is the set of tracker ids whose missions the
	// hunter finished.
	CompletedTrackers []string
	CreatedAt         time.Time
	Version           int64
}

func (u *User) HasTitle(title string) bool {
	for _, t := range u.Titles {
		if t == title {
			return true
		}
	}
	return false
}

func (u *User) HasCompletedTracker(id string) bool {
	for _, t := range u.CompletedTrackers {
		if t == id {
			return true
		}
	}
	return false
}

// Quest is immutable once created.
type Quest struct {
	ID    string
	Title string
	Stat  string
	XP    int
}

type Reward struct {
	XP      int
	Coins   int
	Special string
}

type Penalty struct {
	Coins int
	Stats int
}

// Mission is a shared quest-bundle blueprint. Read-only after creation
// except for the participant list.
type Mission struct {
	ID           string
	Title        string
	Description  string
	Duration     int
	QuestIDs     []string
	Reward       Reward
	FailPenalty  Penalty
	SkipPenalty  Penalty
	Rank         string
	Participants []string
	CreatedAt    time.Time
}

const (
	TrackerActive    = "active"
	TrackerCompleted = "completed"
)

// Tracker is one hunter's live instance of a mission. The mission
// envelope (title, reward, penalties, rank) is flattened onto the
// tracker so upgrades can diverge from the shared template.
type Tracker struct {
	ID        string
	UserID    string
	MissionID string

	Title       string
	Description string
	Duration    int

	CurrentQuests   []string
	RemainingQuests []string
	// QuestCompletion is the append-only per-day completion log,
	// keyed by canonical day key.
	QuestCompletion map[string][]string

	Streak   int
	Daycount int

	Reward      Reward
	FailPenalty Penalty
	SkipPenalty Penalty
	Rank        string

	Status           string
	LastUpdated      time.Time
	LastCompleted    *time.Time
	PenaltiesApplied []time.Time
	CreatedAt        time.Time
	Version          int64
}

func (t *Tracker) HasRemaining(questID string) bool {
	for _, q := range t.RemainingQuests {
		if q == questID {
			return true
		}
	}
	return false
}

const (
	SidequestPending   = "pending"
	SidequestCompleted = "completed"
)

type Sidequest struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Difficulty  string
	Stat        string
	XP          int
	Coins       int
	Status      string
	CreatedAt   time.Time
	CompletedAt *time.Time
}
