package config

import (
	"flag"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := parse(flag.NewFlagSet("test", flag.ContinueOnError), []string{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Addr != "0.0.0.0:3000" {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if cfg.APIUrl != DefaultAPIUrl {
		t.Fatalf("api url = %q, want %q", cfg.APIUrl, DefaultAPIUrl)
	}
	if cfg.SessionTTL != 8*time.Hour {
		t.Fatalf("session ttl = %v", cfg.SessionTTL)
	}
	if cfg.Url() != "http://localhost:3000" {
		t.Fatalf("url = %q", cfg.Url())
	}
}

func TestParseAPIUrlGetsTrailingSlash(t *testing.T) {
	cfg, err := parse(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-api-url", "http://backend:9000"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.APIUrl != "http://backend:9000/" {
		t.Fatalf("api url = %q", cfg.APIUrl)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	for _, args := range [][]string{
		{"-api-url", "not a url"},
		{"-session-ttl", "0"},
		{"-date-layout", ""},
	} {
		if _, err := parse(flag.NewFlagSet("test", flag.ContinueOnError), args); err == nil {
			t.Errorf("parse(%v): expected error", args)
		}
	}
}
