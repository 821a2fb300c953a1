package httpapi

import (
	"context"
	"testing"
)

func TestSetMaxBodyBytes_DefaultWhenNonPositive(t *testing.T) {
	SetMaxBodyBytes(-1)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("expected default 1MiB, got %d", maxBodyBytes)
	}
	SetMaxBodyBytes(0)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("expected default 1MiB on zero, got %d", maxBodyBytes)
	}
}

func TestSetMaxBodyBytes_PositiveSetsValue(t *testing.T) {
	SetMaxBodyBytes(1234)
	defer SetMaxBodyBytes(0)
	if maxBodyBytes != 1234 {
		t.Fatalf("expected 1234, got %d", maxBodyBytes)
	}
}

func TestSetRateLimit_Normalizes(t *testing.T) {
	defer SetRateLimit(0, 0)
	SetRateLimit(-1, 10)
	if rateLimitRPS != 0 || rateLimitBurst != 0 {
		t.Fatalf("non-positive rps should disable: %v/%d", rateLimitRPS, rateLimitBurst)
	}
	SetRateLimit(2, 0)
	if rateLimitRPS != 2 || rateLimitBurst != 1 {
		t.Fatalf("expected 2/1, got %v/%d", rateLimitRPS, rateLimitBurst)
	}
}

func TestSetBaseContext_NilResetsToBackground(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	SetBaseContext(ctx)
	cancel()
	if !shuttingDown() {
		t.Fatalf("canceled base context should report shutdown")
	}
	if BaseContext(nil) != ctx {
		t.Fatalf("BaseContext should return the installed context")
	}
	// nolint:staticcheck // SA1012: this test intentionally passes nil to verify fallback behavior
	SetBaseContext(nil)
	if shuttingDown() {
		t.Fatalf("background context must not report shutdown")
	}
}
