package telegram

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"riskboard/internal/risk"
)

// Briefer optionally adds a prose summary to escalation messages.
type Briefer interface {
	Brief(ctx context.Context, s *risk.Snapshot) (string, error)
}

// Notifier posts to a chat when the alert level rises between two rendered
// snapshots.
type Notifier struct {
	api    Sender
	chatID int64
	charts StatusSource
	brief  Briefer
}

func NewNotifier(api Sender, chatID int64, charts StatusSource, brief Briefer) *Notifier {
	return &Notifier{api: api, chatID: chatID, charts: charts, brief: brief}
}

// SnapshotChanged sends asynchronously so the render loop is never blocked.
func (n *Notifier) SnapshotChanged(prev, cur *risk.Snapshot) {
	from, to, ok := Escalation(prev, cur)
	if !ok {
		return
	}
	go n.notify(cur, from, to)
}

// Escalation reports the alert levels when cur's total risk sits in a higher
// alert level than prev's.
func Escalation(prev, cur *risk.Snapshot) (from, to risk.Alert, ok bool) {
	if prev == nil || cur == nil || prev.TotalRisk == nil || cur.TotalRisk == nil {
		return risk.Alert{}, risk.Alert{}, false
	}
	from = risk.AlertLevel(prev.TotalRisk.Score())
	to = risk.AlertLevel(cur.TotalRisk.Score())
	return from, to, to.Level > from.Level
}

func (n *Notifier) notify(s *risk.Snapshot, from, to risk.Alert) {
	text := fmt.Sprintf("Alert level raised: %s → %s\n%s", from.Label, to.Label, statusText(s))
	if n.brief != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()
		if brief, err := n.brief.Brief(ctx, s); err != nil {
			log.Printf("telegram: brief failed: %v", err)
		} else if brief != "" {
			text += "\n\n" + brief
		}
	}
	if _, err := n.api.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		log.Printf("telegram: send alert failed: %v", err)
		return
	}
	if n.charts == nil {
		return
	}
	img, err := n.charts.Render(s)
	if err != nil {
		log.Printf("telegram: trend chart failed: %v", err)
		return
	}
	photo := tgbotapi.NewPhoto(n.chatID, tgbotapi.FileBytes{Name: "trend.png", Bytes: img})
	photo.Caption = headline(s)
	if _, err := n.api.Send(photo); err != nil {
		log.Printf("telegram: send chart failed: %v", err)
	}
}
