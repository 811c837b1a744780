package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"hunterquest/internal/engine"
)

const maxResponseBytes = 1 << 20

// Client talks to a remote content-generator endpoint over JSON/HTTP.
// Every call is bounded by the configured timeout; a timeout or
// transport failure surfaces as ExternalServiceError and the enclosing
// operation aborts with no partial state.
type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

type missionRequest struct {
	Goal         string `json:"goal"`
	DurationDays int    `json:"durationDays"`
}

type upgradeRequest struct {
	MissionTitle string      `json:"missionTitle"`
	Quests       []questWire `json:"existingQuests"`
	TargetXP     int         `json:"targetXp"`
	QuestCount   int         `json:"questCount"`
}

func (c *Client) GenerateMission(ctx context.Context, goal string, durationDays int) (*engine.MissionPlan, error) {
	raw, err := c.post(ctx, "/mission", missionRequest{Goal: goal, DurationDays: durationDays})
	if err != nil {
		return nil, err
	}
	return DecodeMission(raw)
}

func (c *Client) RegenerateQuests(ctx context.Context, req engine.UpgradeRequest) ([]engine.QuestPlan, error) {
	wire := upgradeRequest{
		MissionTitle: req.MissionTitle,
		TargetXP:     req.TargetXP,
		QuestCount:   req.QuestCount,
	}
	for _, q := range req.Quests {
		wire.Quests = append(wire.Quests, questWire{Title: q.Title, StatAffected: string(q.Stat), XP: q.XP})
	}
	raw, err := c.post(ctx, "/quests", wire)
	if err != nil {
		return nil, err
	}
	return DecodeQuests(raw)
}

func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, engine.ExternalServiceError{Service: "content generator", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return nil, engine.ExternalServiceError{Service: "content generator", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, engine.ExternalServiceError{Service: "content generator", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, engine.ExternalServiceError{
			Service: "content generator",
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, engine.ExternalServiceError{Service: "content generator", Err: err}
	}
	return raw, nil
}
