package config

import (
	"log"
	"time"

	"main/utils"
)

type ServerConfig struct {
	Port               string
	DashboardTimezone  *time.Location
	DashboardTopDays   int
	DashboardCacheTTL  time.Duration
	NotificationWindow time.Duration
	MaxActiveSessions  int
}

func LoadServerConfig() ServerConfig {
	tzName := utils.GetEnvAsString("DASHBOARD_TIMEZONE", "Local")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Printf("Invalid DASHBOARD_TIMEZONE %q, falling back to local time: %v", tzName, err)
		loc = time.Local
	}

	return ServerConfig{
		Port:               utils.GetEnvAsString("PORT", "8080"),
		DashboardTimezone:  loc,
		DashboardTopDays:   utils.GetEnvAsInt("DASHBOARD_TOP_DAYS", 7),
		DashboardCacheTTL:  utils.GetEnvAsDuration("DASHBOARD_CACHE_TTL", time.Minute),
		NotificationWindow: utils.GetEnvAsDuration("NOTIFICATION_WINDOW", 6*time.Hour),
		MaxActiveSessions:  utils.GetEnvAsInt("MAX_ACTIVE_SESSIONS", 5),
	}
}
