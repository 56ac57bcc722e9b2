package app

import (
	"fmt"
	"strings"

	"github.com/cybertech-18/lakshpath-backend/internal/platform/gemini"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
	"github.com/cybertech-18/lakshpath-backend/internal/realtime/bus"
)

type Clients struct {
	Gemini gemini.Client
	// Bus is nil when REDIS_ADDR is unset.
	Bus bus.Bus
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	var gc gemini.Client
	if strings.TrimSpace(cfg.Gemini.APIKey) == "" {
		log.Warn("GEMINI_API_KEY not set; AI enrichment will use deterministic fallbacks")
		gc = gemini.Disabled()
	} else {
		c, err := gemini.New(log, cfg.Gemini)
		if err != nil {
			return Clients{}, fmt.Errorf("init gemini client: %w", err)
		}
		gc = c
	}

	var b bus.Bus
	if strings.TrimSpace(cfg.Redis.Addr) != "" {
		rb, err := bus.NewRedisBus(log, cfg.Redis)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis bus: %w", err)
		}
		b = rb
	}

	return Clients{Gemini: gc, Bus: b}, nil
}
