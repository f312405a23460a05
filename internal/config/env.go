package config

import (
	"os"
	"strings"
	"time"
)

type Env struct {
	AppAddr        string
	GinMode        string
	BackendURL     string
	CORSOrigins    []string
	RequestTimeout time.Duration
	PollInterval   time.Duration
	SessionTTL     time.Duration
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":3000"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	backendURL := strings.TrimSpace(os.Getenv("BACKEND_URL"))
	if backendURL == "" {
		backendURL = "http://localhost:5000"
	}
	backendURL = strings.TrimRight(backendURL, "/")

	var corsOrigins []string
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}

	return Env{
		AppAddr:        appAddr,
		GinMode:        ginMode,
		BackendURL:     backendURL,
		CORSOrigins:    corsOrigins,
		RequestTimeout: durationEnv("REQUEST_TIMEOUT", 10*time.Second),
		PollInterval:   durationEnv("POLL_INTERVAL", 2*time.Second),
		SessionTTL:     durationEnv("SESSION_TTL", 30*time.Minute),
	}
}

func durationEnv(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
