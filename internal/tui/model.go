package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hunterquest/internal/engine"
	"hunterquest/internal/storage"
	"hunterquest/internal/ui"
)

type boardModel struct {
	ctx    context.Context
	svc    *engine.Service
	hunter string

	width  int
	height int

	user     *storage.User
	trackers []storage.Tracker
	quests   map[string]storage.Quest

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	user     *storage.User
	trackers []storage.Tracker
	quests   map[string]storage.Quest
	err      error
}

type completedMsg struct {
	res *engine.CompleteResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, hunter string) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		hunter:  hunter,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		u, err := m.svc.Hunter(m.ctx, m.hunter)
		if err != nil {
			return loadedMsg{err: err}
		}
		// Roll pending day boundaries before showing the board.
		if _, err := m.svc.SyncTrackers(m.ctx, u.ID); err != nil {
			return loadedMsg{err: err}
		}
		u, err = m.svc.Hunter(m.ctx, m.hunter)
		if err != nil {
			return loadedMsg{err: err}
		}
		trackers, err := m.svc.TrackerRepo().ListActiveByUser(m.ctx, u.ID)
		if err != nil {
			return loadedMsg{err: err}
		}
		quests := map[string]storage.Quest{}
		for _, t := range trackers {
			qs, err := m.svc.QuestRepo().GetMany(m.ctx, t.CurrentQuests)
			if err != nil {
				return loadedMsg{err: err}
			}
			for _, q := range qs {
				quests[q.ID] = q
			}
		}
		return loadedMsg{user: u, trackers: trackers, quests: quests}
	}
}

func (m boardModel) completeCmd(trackerID, questID string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteQuest(m.ctx, m.user.ID, trackerID, questID)
		return completedMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.user = msg.user
		m.trackers = msg.trackers
		m.quests = msg.quests
		if rows := m.rows(); m.selected >= len(rows) {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		log := fmt.Sprintf("+%d %s XP", msg.res.StatXPAwarded, msg.res.Stat)
		if msg.res.DayCompleted {
			log += fmt.Sprintf(" · day done, +%d XP +%d coins", msg.res.RewardXP, msg.res.RewardCoins)
		}
		if msg.res.MissionCompleted {
			log += " · " + ui.IconTrophy + " mission complete!"
		}
		m.lastLog = log
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if rows := m.rows(); m.selected < len(rows)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			rows := m.rows()
			if m.selected < 0 || m.selected >= len(rows) {
				return m, nil
			}
			row := rows[m.selected]
			if row.questID == "" {
				m.lastLog = "Select a quest to complete."
				return m, nil
			}
			if row.done {
				m.lastLog = "Already done today."
				return m, nil
			}
			m.lastLog = "Completing…"
			return m, m.completeCmd(row.trackerID, row.questID)
		}
	}
	return m, nil
}

// row is one selectable line: a tracker header (questID empty) or one
// of the tracker's quests for today.
type row struct {
	trackerID string
	questID   string
	label     string
	done      bool
}

func (m boardModel) rows() []row {
	var out []row
	for _, t := range m.trackers {
		remaining := map[string]bool{}
		for _, id := range t.RemainingQuests {
			remaining[id] = true
		}
		header := fmt.Sprintf("%s %s  %s  day %d/%d  streak %s",
			ui.RankBadge(t.Rank), ui.Title.Render(t.Title),
			ui.Muted.Render(shortID(t.ID)), t.Daycount, t.Duration, ui.StreakText(t.Streak))
		out = append(out, row{trackerID: t.ID, label: header})
		for _, qid := range t.CurrentQuests {
			q, ok := m.quests[qid]
			if !ok {
				continue
			}
			done := !remaining[qid]
			mark := "[ ]"
			if done {
				mark = ui.Good.Render("[x]")
			}
			label := fmt.Sprintf("  %s %s %s", mark, q.Title,
				ui.Muted.Render(fmt.Sprintf("(+%d %s)", q.XP, q.Stat)))
			out = append(out, row{trackerID: t.ID, questID: qid, label: label, done: done})
		}
	}
	return out
}

func (m boardModel) View() string {
	var b strings.Builder

	b.WriteString(ui.Heading(ui.IconSword, "HunterQuest Board") + "\n")
	if m.loading {
		b.WriteString(ui.Muted.Render("Loading…") + "\n")
		return b.String()
	}
	if m.err != nil {
		b.WriteString(ui.Bad.Render(ui.IconError+" "+m.err.Error()) + "\n")
		return b.String()
	}
	if m.user != nil {
		b.WriteString(fmt.Sprintf("%s  %s  Lv %d · %d XP · %s %d\n",
			ui.RankBadge(m.user.Rank), ui.Key.Render(m.user.Name),
			m.user.Level, m.user.XP, ui.IconCoin, m.user.Coins))
	}
	b.WriteString("\n")

	rows := m.rows()
	if len(rows) == 0 {
		b.WriteString(ui.Muted.Render("No active trackers. Join a mission with `hq join`.") + "\n")
	}
	for i, r := range rows {
		line := r.label
		if i == m.selected {
			line = ui.SelectedRow.Render("> " + stripForSelect(line))
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + ui.Muted.Render(m.lastLog) + "\n")
	b.WriteString(ui.Muted.Render("↑/↓ move · space complete · r refresh · q quit") + "\n")
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// stripForSelect drops ANSI styling so the selected-row style applies
// cleanly to the whole line.
func stripForSelect(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
