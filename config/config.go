package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Source   SourceConfig
	Webhook  WebhookConfig
	Telegram TelegramConfig
	Schedule ScheduleConfig
	Render   RenderConfig
}

type ServerConfig struct {
	Port          string
	SendOnStartup bool
	AutoMigrate   bool
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type SourceConfig struct {
	Kind         string // "http" or "postgres"
	OrderAPIURL  string
	FetchTimeout time.Duration
}

type WebhookConfig struct {
	URL             string
	DeliveryTimeout time.Duration
}

type TelegramConfig struct {
	Token   string
	ChatID  int64 // mirror target; 0 disables mirroring
	Allowed []int64
}

// ScheduleConfig holds weekday trigger times in Location.
type ScheduleConfig struct {
	Location    string
	DailyHour   int
	DailyMinute int
	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int
}

type RenderConfig struct {
	Brand         string
	TestMode      bool
	TestMMID      string
	PickupNotice  string
	HiddenOptions []string // option keys or labels left out of the message
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	chatID, _ := strconv.ParseInt(getEnv("TELEGRAM_CHAT_ID", "0"), 10, 64)

	return &Config{
		Server: ServerConfig{
			Port:          getEnv("PORT", "3000"),
			SendOnStartup: getBool("SEND_ON_STARTUP", false),
			AutoMigrate:   getBool("AUTO_MIGRATE", false),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "coffee"),
		},
		Source: SourceConfig{
			Kind:         strings.ToLower(getEnv("ORDER_SOURCE", SourceHTTP)),
			OrderAPIURL:  getEnv("ORDER_API_URL", ""),
			FetchTimeout: getDuration("FETCH_TIMEOUT", 10*time.Second),
		},
		Webhook: WebhookConfig{
			URL:             getEnv("WEBHOOK_URL", ""),
			DeliveryTimeout: getDuration("DELIVERY_TIMEOUT", 10*time.Second),
		},
		Telegram: TelegramConfig{
			Token:   getEnv("TELEGRAM_TOKEN", ""),
			ChatID:  chatID,
			Allowed: parseIDs(getEnv("TELEGRAM_ALLOWED_CHATS", "")),
		},
		Schedule: ScheduleConfig{
			Location:    getEnv("TZ_NAME", "Asia/Seoul"),
			DailyHour:   getInt("DAILY_HOUR", 5),
			DailyMinute: getInt("DAILY_MINUTE", 30),
			OpenHour:    getInt("OPEN_HOUR", 9),
			OpenMinute:  getInt("OPEN_MINUTE", 0),
			CloseHour:   getInt("CLOSE_HOUR", 11),
			CloseMinute: getInt("CLOSE_MINUTE", 50),
		},
		Render: RenderConfig{
			Brand:         getEnv("BRAND_NAME", "싸피코피"),
			TestMode:      getBool("TEST_MODE", false),
			TestMMID:      getEnv("TEST_MM_ID", ""),
			PickupNotice:  getEnv("PICKUP_NOTICE", ""),
			HiddenOptions: parseList(getEnv("OPTION_LABELS_HIDDEN", "")),
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

// getBool accepts "1" or "true" (any case), like AUTO_MIGRATE always did.
func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v == "1" || strings.EqualFold(v, "true")
}

func getDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parseList(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseIDs(input string) []int64 {
	var out []int64
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}
