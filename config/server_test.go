package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadServerConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DASHBOARD_TIMEZONE", "DASHBOARD_TOP_DAYS",
		"DASHBOARD_CACHE_TTL", "NOTIFICATION_WINDOW", "MAX_ACTIVE_SESSIONS",
	} {
		// t.Setenv registers the restore, then the var is unset so
		// the loader sees it as absent rather than empty.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := LoadServerConfig()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.DashboardTopDays != 7 {
		t.Errorf("expected default top days 7, got %d", cfg.DashboardTopDays)
	}
	if cfg.DashboardCacheTTL != time.Minute {
		t.Errorf("expected default cache TTL 1m, got %v", cfg.DashboardCacheTTL)
	}
	if cfg.NotificationWindow != 6*time.Hour {
		t.Errorf("expected default notification window 6h, got %v", cfg.NotificationWindow)
	}
	if cfg.MaxActiveSessions != 5 {
		t.Errorf("expected default session cap 5, got %d", cfg.MaxActiveSessions)
	}
}

func TestLoadServerConfigOverrides(t *testing.T) {
	t.Setenv("DASHBOARD_TOP_DAYS", "3")
	t.Setenv("MAX_ACTIVE_SESSIONS", "2")
	t.Setenv("DASHBOARD_CACHE_TTL", "30s")

	cfg := LoadServerConfig()

	if cfg.DashboardTopDays != 3 {
		t.Errorf("expected top days 3, got %d", cfg.DashboardTopDays)
	}
	if cfg.MaxActiveSessions != 2 {
		t.Errorf("expected session cap 2, got %d", cfg.MaxActiveSessions)
	}
	if cfg.DashboardCacheTTL != 30*time.Second {
		t.Errorf("expected cache TTL 30s, got %v", cfg.DashboardCacheTTL)
	}
}

func TestLoadServerConfigInvalidTimezone(t *testing.T) {
	t.Setenv("DASHBOARD_TIMEZONE", "Not/AZone")

	cfg := LoadServerConfig()

	if cfg.DashboardTimezone != time.Local {
		t.Errorf("expected fallback to local timezone, got %v", cfg.DashboardTimezone)
	}
}
