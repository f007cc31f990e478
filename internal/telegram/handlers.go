package telegram

import (
	"fmt"
	"regexp"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"riskboard/internal/risk"
)

var (
	reRisk  = regexp.MustCompile(`^/risk(?:@[\w_]+)?$`)
	reTrend = regexp.MustCompile(`^/trend(?:@[\w_]+)?$`)
	reHelp  = regexp.MustCompile(`^/(help|start)(?:@[\w_]+)?$`)
)

// Sender is the part of the Bot API used to reply.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// StatusSource supplies the latest snapshot and its trend image.
type StatusSource interface {
	Latest() *risk.Snapshot
	Render(s *risk.Snapshot) ([]byte, error)
}

type Handlers struct {
	api    Sender
	status StatusSource
}

func NewHandlers(api Sender, status StatusSource) *Handlers {
	return &Handlers{api: api, status: status}
}

func (h *Handlers) HandleMessage(m *tgbotapi.Message) {
	txt := strings.TrimSpace(m.Text)
	switch {
	case reRisk.MatchString(txt):
		s := h.status.Latest()
		if s == nil {
			h.reply(m.Chat.ID, "No data yet.")
			return
		}
		h.reply(m.Chat.ID, statusText(s))

	case reTrend.MatchString(txt):
		s := h.status.Latest()
		if s == nil {
			h.reply(m.Chat.ID, "No data yet.")
			return
		}
		img, err := h.status.Render(s)
		if err != nil {
			h.reply(m.Chat.ID, "Trend chart failed: "+err.Error())
			return
		}
		photo := tgbotapi.NewPhoto(m.Chat.ID, tgbotapi.FileBytes{Name: "trend.png", Bytes: img})
		photo.Caption = headline(s)
		h.api.Send(photo)

	case reHelp.MatchString(txt):
		h.reply(m.Chat.ID, "Commands\n\n"+
			"- /risk - Current total risk, alert level and every signal\n"+
			"- /trend - Total risk trend chart")
	}
}

func (h *Handlers) reply(chatID int64, text string) {
	h.api.Send(tgbotapi.NewMessage(chatID, text))
}

func headline(s *risk.Snapshot) string {
	if s.TotalRisk == nil {
		return "Total risk unavailable"
	}
	score := s.TotalRisk.Score()
	return fmt.Sprintf("Total risk %d • %s", score, risk.AlertLevel(score).Label)
}

// statusText formats the snapshot as a multi-line message.
func statusText(s *risk.Snapshot) string {
	var b strings.Builder
	b.WriteString(headline(s))
	for _, key := range risk.SignalKeys {
		sig := s.Signal(key)
		if sig == nil {
			continue
		}
		fmt.Fprintf(&b, "\n%s: %d (%s)", key, sig.Score(), risk.CardBucket(sig.Score()))
		if sig.Detail != "" {
			b.WriteString(" - " + sig.Detail)
		}
	}
	if t, err := risk.ParseTimestamp(s.LastUpdated); err == nil {
		b.WriteString("\nUpdated " + t.Format("2006-01-02 15:04 MST"))
	} else if s.LastUpdated != "" {
		b.WriteString("\nUpdated " + s.LastUpdated)
	}
	return b.String()
}
