package app

import (
	"reflect"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("AI_MAX_RETRIES", "")
	t.Setenv("CAREER_MATCH_LIMIT", "9")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.dev, ,https://b.dev")

	cfg := LoadConfig()
	if cfg.Addr() != ":8080" {
		t.Fatalf("want=:8080 got=%s", cfg.Addr())
	}
	if cfg.CareerMatchLimit != 5 {
		t.Fatalf("want clamped limit=5 got=%d", cfg.CareerMatchLimit)
	}
	if want := []string{"https://a.dev", "https://b.dev"}; !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Fatalf("want=%v got=%v", want, cfg.CORSOrigins)
	}
	if cfg.AI.MaxRetries != 2 {
		t.Fatalf("want default retries=2 got=%d", cfg.AI.MaxRetries)
	}
}

func TestConfigAddr(t *testing.T) {
	if got := (Config{Port: "127.0.0.1:9000"}).Addr(); got != "127.0.0.1:9000" {
		t.Fatalf("got=%s", got)
	}
	if got := (Config{Port: "9000"}).Addr(); got != ":9000" {
		t.Fatalf("got=%s", got)
	}
}
