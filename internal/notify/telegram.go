// Package notify delivers a plain-text summary of a finished run. Delivery
// failures are the caller's to log; they never fail a run.
package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/stellarlinkco/photowrap/internal/config"
	"github.com/stellarlinkco/photowrap/internal/wrapped"
)

// Sender is the subset of the telegram bot API the notifier needs
// (allows mocking in tests).
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramNotifier struct {
	bot    Sender
	chatID int64
}

func NewTelegramNotifier(cfg config.TelegramConfig) (*TelegramNotifier, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: cfg.ChatID}, nil
}

// NewTelegramNotifierWithSender wires a custom sender (for testing).
func NewTelegramNotifierWithSender(sender Sender, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{bot: sender, chatID: chatID}
}

// RunCompleted sends the deck summary for one finished run.
func (n *TelegramNotifier) RunCompleted(run *wrapped.WrappedRun, cards []wrapped.CardModel) error {
	msg := tgbotapi.NewMessage(n.chatID, FormatRunSummary(run, cards))
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send run summary: %w", err)
	}
	return nil
}

// FormatRunSummary renders the card deck as a compact text message.
func FormatRunSummary(run *wrapped.WrappedRun, cards []wrapped.CardModel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Photo recap %s — %s\n",
		run.TimeRangeStart.Format("Jan 2 2006"), run.TimeRangeEnd.Format("Jan 2 2006"))

	for _, card := range cards {
		switch p := card.Payload.(type) {
		case wrapped.TrustPayload:
			fmt.Fprintf(&b, "• %d photos, %d%% with location\n", p.TotalPhotos, p.CoveragePct)
		case wrapped.TopPlacePayload:
			fmt.Fprintf(&b, "• Top place: %s (%d photos, %d days)\n",
				p.Place.Label, p.Place.PhotoCount, p.Place.DistinctDaysCount)
		case wrapped.TopPlacesPayload:
			fmt.Fprintf(&b, "• Also loved: %s, %s\n", p.Place2.Label, p.Place3.Label)
		case wrapped.PeakDayPayload:
			fmt.Fprintf(&b, "• Busiest day: %s (%d photos)\n", p.Date.Format("Jan 2"), p.Count)
		case wrapped.PeakMonthPayload:
			fmt.Fprintf(&b, "• Busiest month: %s (%d photos)\n", p.Month, p.Count)
		case wrapped.TimeOfDayPayload:
			fmt.Fprintf(&b, "• You shoot most in the %s\n", p.Window)
		case wrapped.DistinctPlacesPayload:
			fmt.Fprintf(&b, "• %d distinct places visited\n", p.Count)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
