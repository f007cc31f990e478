package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DataURL          string
	Port             string
	DBPath           string
	PollInterval     time.Duration
	ThemeFile        string
	TelegramToken    string
	TelegramChatID   int64
	WebhookPublicURL string
	OpenAIKey        string
	LogFile          string
	TUI              bool
	Location         *time.Location
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env %s", k)
	}
	return v
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// loadLocation resolves the zone used for chart time labels, falling back to
// the host zone when tzdata has no entry for name.
func loadLocation(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("config: unknown DISPLAY_TZ %q, using local time", name)
		return time.Local
	}
	return loc
}

// Load reads the environment, after merging a .env file when one exists.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("config: loaded .env")
	}
	return fromEnv()
}

func fromEnv() Config {
	poll := 60 * time.Second
	if v := os.Getenv("POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			log.Fatalf("bad POLL_INTERVAL %q", v)
		}
		poll = d
	}
	var chatID int64
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Fatalf("bad TELEGRAM_CHAT_ID %q", v)
		}
		chatID = id
	}
	tui, _ := strconv.ParseBool(os.Getenv("TUI"))
	return Config{
		DataURL:          mustEnv("DATA_URL"),
		Port:             envOr("PORT", "9095"),
		DBPath:           envOr("DB_PATH", "/app/data/riskboard.db"),
		PollInterval:     poll,
		ThemeFile:        os.Getenv("THEME_FILE"),
		TelegramToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   chatID,
		WebhookPublicURL: os.Getenv("WEBHOOK_PUBLIC_URL"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		LogFile:          os.Getenv("LOG_FILE"),
		TUI:              tui,
		Location:         loadLocation(os.Getenv("DISPLAY_TZ")),
	}
}
