package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	oa "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"riskboard/internal/risk"
)

// Briefer writes a short plain-text situation brief for a snapshot.
type Briefer struct {
	cli oa.Client
}

func NewBriefer(apiKey string) *Briefer {
	client := oa.NewClient(option.WithAPIKey(apiKey))
	return &Briefer{cli: client}
}

func (b *Briefer) Brief(ctx context.Context, s *risk.Snapshot) (string, error) {
	facts := describe(s)
	if facts == "" {
		return "", errors.New("nothing to brief")
	}
	resp, err := b.cli.Chat.Completions.New(ctx, oa.ChatCompletionNewParams{
		Model: "gpt-4",
		Messages: []oa.ChatCompletionMessageParamUnion{
			oa.SystemMessage("You write two-sentence situation briefs for a risk dashboard. Plain text only. Mention the signals driving the score. Do not speculate beyond the data."),
			oa.UserMessage("Current readings:\n" + facts),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

const maxDetailRunes = 200

// describe lists the snapshot's readings one per line, signals in display order.
func describe(s *risk.Snapshot) string {
	if s == nil {
		return ""
	}
	var lines []string
	if tr := s.TotalRisk; tr != nil {
		lines = append(lines, fmt.Sprintf("total: %d (%s)", tr.Score(), risk.AlertLevel(tr.Score()).Label))
	}
	for _, key := range risk.SignalKeys {
		sig := s.Signal(key)
		if sig == nil {
			continue
		}
		line := fmt.Sprintf("%s: %d", key, sig.Score())
		if d := strings.TrimSpace(sig.Detail); d != "" {
			// cap free text from upstream sources
			if r := []rune(d); len(r) > maxDetailRunes {
				d = string(r[:maxDetailRunes])
			}
			line += " - " + d
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
