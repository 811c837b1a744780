package root

import (
	"context"

	"hunterquest/internal/config"
	"hunterquest/internal/engine"
	"hunterquest/internal/genai"
	"hunterquest/internal/storage"
	"hunterquest/internal/tuning"
)

func openService(ctx context.Context) (*engine.Service, config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, nil, err
	}

	path := cfg.DBPath
	if path == "" {
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, config.Config{}, nil, err
		}
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	var gen engine.ContentGenerator = genai.Template{}
	if cfg.GeneratorURL != "" {
		gen = genai.NewClient(cfg.GeneratorURL, cfg.GeneratorTimeout)
	}

	svc := engine.NewService(db, gen)

	tn, err := tuning.Load(cfg.TuningPath)
	if err != nil {
		cleanup()
		return nil, config.Config{}, nil, err
	}
	svc.SetTuning(tn.Ledger(), tn.RankThresholds())

	return svc, cfg, cleanup, nil
}
