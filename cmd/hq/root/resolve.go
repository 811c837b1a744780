package root

import (
	"context"
	"fmt"
	"strings"

	"hunterquest/internal/engine"
	"hunterquest/internal/storage"
)

// Commands accept full ids or unique prefixes, so `hq join 3fa8` works
// with the short ids the CLI prints.

func resolveMissionID(ctx context.Context, svc *engine.Service, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	missions, err := svc.MissionRepo().ListAll(ctx)
	if err != nil {
		return "", err
	}
	var match string
	for _, m := range missions {
		if m.ID == arg {
			return m.ID, nil
		}
		if strings.HasPrefix(m.ID, arg) {
			if match != "" {
				return "", fmt.Errorf("mission id %q is ambiguous", arg)
			}
			match = m.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no mission matches %q", arg)
	}
	return match, nil
}

func resolveTrackerID(ctx context.Context, svc *engine.Service, userID, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	trackers, err := svc.TrackerRepo().ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	var match string
	for _, t := range trackers {
		if t.ID == arg {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, arg) {
			if match != "" {
				return "", fmt.Errorf("tracker id %q is ambiguous", arg)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no tracker matches %q", arg)
	}
	return match, nil
}

func resolveSidequestID(ctx context.Context, svc *engine.Service, userID, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	sidequests, err := svc.SidequestRepo().ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	var match string
	for _, s := range sidequests {
		if s.ID == arg {
			return s.ID, nil
		}
		if strings.HasPrefix(s.ID, arg) {
			if match != "" {
				return "", fmt.Errorf("sidequest id %q is ambiguous", arg)
			}
			match = s.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no sidequest matches %q", arg)
	}
	return match, nil
}

// resolveQuestID matches today's remaining quests by id prefix or by
// (case-insensitive) title.
func resolveQuestID(ctx context.Context, svc *engine.Service, t *storage.Tracker, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	quests, err := svc.QuestRepo().GetMany(ctx, t.RemainingQuests)
	if err != nil {
		return "", err
	}
	var match string
	for _, q := range quests {
		if q.ID == arg {
			return q.ID, nil
		}
		if strings.HasPrefix(q.ID, arg) || strings.EqualFold(q.Title, arg) {
			if match != "" {
				return "", fmt.Errorf("quest %q is ambiguous", arg)
			}
			match = q.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no remaining quest matches %q", arg)
	}
	return match, nil
}
