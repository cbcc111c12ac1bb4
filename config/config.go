package config

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	UpstreamAPIURL  string
	UpstreamTimeout time.Duration
	UploadsBaseURL  string
	SessionSecret   []byte
	ServerPort      int
	AllowedOrigins  []string
	SecureCookies   bool
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	apiURL := os.Getenv("UPSTREAM_API_URL")
	if apiURL == "" {
		return nil, fmt.Errorf("UPSTREAM_API_URL environment variable is not set")
	}
	parsed, err := url.ParseRequestURI(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_API_URL: %w", err)
	}

	secretHex := os.Getenv("SESSION_SECRET")
	if secretHex == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is not set")
	}
	secret, err := hex.DecodeString(secretHex)
	if err != nil {
		return nil, fmt.Errorf("SESSION_SECRET must be hex-encoded: %w", err)
	}
	if len(secret) != 32 {
		return nil, fmt.Errorf("SESSION_SECRET must decode to 32 bytes, got %d", len(secret))
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080" // Порт по умолчанию
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	timeout := 15 * time.Second
	if timeoutStr := os.Getenv("UPSTREAM_TIMEOUT_SECONDS"); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT_SECONDS environment variable")
		}
		timeout = time.Duration(seconds) * time.Second
	}

	// База для скачивания архивов. По умолчанию — origin бэкенда.
	uploadsBase := os.Getenv("UPLOADS_BASE_URL")
	if uploadsBase == "" {
		uploadsBase = parsed.Scheme + "://" + parsed.Host
	}

	origins := []string{"*"}
	if originsStr := os.Getenv("CORS_ALLOWED_ORIGINS"); originsStr != "" {
		origins = strings.Split(originsStr, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	cfg := &Config{
		UpstreamAPIURL:  apiURL,
		UpstreamTimeout: timeout,
		UploadsBaseURL:  uploadsBase,
		SessionSecret:   secret,
		ServerPort:      port,
		AllowedOrigins:  origins,
		SecureCookies:   os.Getenv("SECURE_COOKIES") == "true",
	}

	return cfg, nil
}
