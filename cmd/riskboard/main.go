package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/natefinch/lumberjack.v2"

	"riskboard/internal/board"
	"riskboard/internal/config"
	"riskboard/internal/countdown"
	"riskboard/internal/dashboard"
	"riskboard/internal/feed"
	"riskboard/internal/metrics"
	"riskboard/internal/openai"
	"riskboard/internal/render"
	"riskboard/internal/report"
	"riskboard/internal/server"
	"riskboard/internal/storage"
	"riskboard/internal/telegram"
	"riskboard/internal/theme"
	"riskboard/internal/tui"
)

func main() {
	cfg := config.Load()

	logFile := cfg.LogFile
	if logFile == "" && cfg.TUI {
		// keep log lines off the terminal UI
		logFile = "riskboard.log"
	}
	if logFile != "" {
		log.SetOutput(&lumberjack.Logger{Filename: logFile, MaxSize: 10, MaxBackups: 3, MaxAge: 28})
	}

	th := theme.Default()
	if cfg.ThemeFile != "" {
		loaded, err := theme.Load(cfg.ThemeFile)
		if err != nil {
			log.Fatal(err)
		}
		th = loaded
		log.Printf("theme: loaded %q from %s", th.Name, cfg.ThemeFile)
	}

	render.TimeZone = cfg.Location

	b := board.New(board.DefaultLayout())
	loop := dashboard.NewLoop()
	dash := dashboard.New(b, th, countdown.SystemClock{}, countdown.NewTickerScheduler(loop.Post))
	trend := report.NewTrend()
	met := metrics.New(prometheus.DefaultRegisterer)
	listeners := []dashboard.ChangeListener{trend, met}

	_ = os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755)
	db, err := storage.OpenSQLite("file:" + cfg.DBPath + "?_fk=1")
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := storage.InitSchema(db); err != nil {
		log.Fatal(err)
	}
	archive := storage.NewStore(db)
	listeners = append(listeners, archive)
	log.Printf("db: opened sqlite at %s", cfg.DBPath)

	deps := server.Deps{Board: b, Trend: trend, Archive: archive, Metrics: promhttp.Handler()}
	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.WebhookPublicURL, trend)
		if err != nil {
			log.Fatal(err)
		}
		if cfg.WebhookPublicURL != "" {
			deps.Webhook = bot.WebhookHandler
		}
		if cfg.TelegramChatID != 0 {
			var brief telegram.Briefer
			if cfg.OpenAIKey != "" {
				brief = openai.NewBriefer(cfg.OpenAIKey)
			}
			listeners = append(listeners, telegram.NewNotifier(bot.API(), cfg.TelegramChatID, trend, brief))
			log.Printf("telegram: alert notifications to chat %d", cfg.TelegramChatID)
		}
	}

	rt := &dashboard.Runtime{
		Loop:      loop,
		Dashboard: dash,
		Poller:    dashboard.NewPoller(met.Instrument(feed.NewClient(cfg.DataURL)), dash, listeners...),
		Interval:  cfg.PollInterval,
	}
	b.OnResize(rt.Resize)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ThemeFile != "" {
		go func() {
			err := theme.Watch(ctx, cfg.ThemeFile, func(th theme.Theme) {
				loop.Post(func() { dash.SetTheme(th) })
			})
			if err != nil {
				log.Printf("theme: watch disabled: %v", err)
			}
		}()
	}

	go func() {
		addr := ":" + cfg.Port
		log.Println("http: listening on", addr)
		if err := server.ListenAndServe(addr, server.NewHTTPMux(deps)); err != nil {
			log.Println("server error:", err)
			stop()
		}
	}()

	if cfg.TUI {
		go func() {
			if _, err := tea.NewProgram(tui.New(b), tea.WithAltScreen()).Run(); err != nil {
				log.Println("tui error:", err)
			}
			stop()
		}()
	}

	log.Printf("poller: polling %s every %s", cfg.DataURL, cfg.PollInterval)
	if err := rt.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Println("runtime error:", err)
		os.Exit(1)
	}
}
