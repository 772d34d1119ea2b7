package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=invest_platform_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultHTTPAddr = ":8080"
const defaultStoreBackend = "memory"
const defaultStoreFilePath = "data/registered_users.json"
const defaultSessionTTL = 12 * time.Hour

type Config struct {
	HTTPAddr      string
	StoreBackend  string
	StoreFilePath string
	DatabaseDSN   string
	MigrationsDir string
	SessionSecret string
	SessionTTL    time.Duration
}

func Load() (Config, error) {
	backend := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_BACKEND")))
	if backend == "" {
		backend = defaultStoreBackend
	}
	switch backend {
	case "memory", "file", "postgres":
	default:
		return Config{}, fmt.Errorf("unsupported STORE_BACKEND %q", backend)
	}

	addr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if addr == "" {
		addr = defaultHTTPAddr
	}

	filePath := strings.TrimSpace(os.Getenv("STORE_FILE_PATH"))
	if filePath == "" {
		filePath = defaultStoreFilePath
	}

	conn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if conn == "" {
		conn = defaultConnectionString
	}

	secret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if secret == "" && backend != "memory" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required for the %s backend", backend)
	}
	if secret == "" {
		secret = "dev-only-session-secret"
	}

	ttl := defaultSessionTTL
	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS")); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return Config{}, fmt.Errorf("SESSION_TTL_HOURS must be a positive integer, got %q", raw)
		}
		ttl = time.Duration(hours) * time.Hour
	}

	return Config{
		HTTPAddr:      addr,
		StoreBackend:  backend,
		StoreFilePath: filePath,
		DatabaseDSN:   normalizeConnectionString(conn),
		MigrationsDir: "migrations",
		SessionSecret: secret,
		SessionTTL:    ttl,
	}, nil
}

func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
