package notify

import (
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/stellarlinkco/photowrap/internal/config"
	"github.com/stellarlinkco/photowrap/internal/wrapped"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func summaryRun() *wrapped.WrappedRun {
	return &wrapped.WrappedRun{
		ID:             "run1",
		TimeRangeStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		TimeRangeEnd:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func summaryCards() []wrapped.CardModel {
	return []wrapped.CardModel{
		{Type: wrapped.CardTitle, Payload: wrapped.TitlePayload{Year: 2025}},
		{Type: wrapped.CardTrust, Payload: wrapped.TrustPayload{TotalPhotos: 840, CoveragePct: 72}},
		{Type: wrapped.CardTopPlace1, Payload: wrapped.TopPlacePayload{
			Place: wrapped.PlaceCluster{Label: "Mitte", PhotoCount: 120, DistinctDaysCount: 14},
		}},
		{Type: wrapped.CardPeakDay, Payload: wrapped.PeakDayPayload{
			Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Count: 31,
		}},
		{Type: wrapped.CardTimeOfDay, Payload: wrapped.TimeOfDayPayload{Window: "evening", Hour: 19}},
		{Type: wrapped.CardDistinctPlaces, Payload: wrapped.DistinctPlacesPayload{Count: 8}},
	}
}

func TestFormatRunSummary(t *testing.T) {
	got := FormatRunSummary(summaryRun(), summaryCards())

	for _, want := range []string{
		"Photo recap Jan 1 2025 — Dec 31 2025",
		"840 photos, 72% with location",
		"Top place: Mitte (120 photos, 14 days)",
		"Busiest day: Jun 2 (31 photos)",
		"You shoot most in the evening",
		"8 distinct places visited",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary missing %q:\n%s", want, got)
		}
	}
	if strings.HasSuffix(got, "\n") {
		t.Fatal("summary must not end with a newline")
	}
}

func TestFormatRunSummaryMinimalDeck(t *testing.T) {
	cards := []wrapped.CardModel{
		{Type: wrapped.CardTitle, Payload: wrapped.TitlePayload{Year: 2025}},
		{Type: wrapped.CardCollage, Payload: wrapped.CollagePayload{AssetIDs: []string{"a"}}},
	}

	got := FormatRunSummary(summaryRun(), cards)
	if !strings.HasPrefix(got, "Photo recap") {
		t.Fatalf("unexpected summary: %s", got)
	}
	if strings.Contains(got, "•") {
		t.Fatalf("expected no bullet lines for title and collage only:\n%s", got)
	}
}

func TestRunCompleted(t *testing.T) {
	sender := &fakeSender{}
	n := NewTelegramNotifierWithSender(sender, 42)

	if err := n.RunCompleted(summaryRun(), summaryCards()); err != nil {
		t.Fatalf("RunCompleted error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.sent))
	}
	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("expected MessageConfig, got %T", sender.sent[0])
	}
	if msg.ChatID != 42 {
		t.Fatalf("expected chat 42, got %d", msg.ChatID)
	}
	if !strings.Contains(msg.Text, "Top place: Mitte") {
		t.Fatalf("unexpected message text:\n%s", msg.Text)
	}
}

func TestRunCompletedSendError(t *testing.T) {
	sender := &fakeSender{err: errors.New("telegram down")}
	n := NewTelegramNotifierWithSender(sender, 42)

	if err := n.RunCompleted(summaryRun(), summaryCards()); err == nil {
		t.Fatal("expected send error to surface")
	}
}

func TestNewTelegramNotifierRequiresToken(t *testing.T) {
	if _, err := NewTelegramNotifier(config.TelegramConfig{ChatID: 42}); err == nil {
		t.Fatal("expected error without token")
	}
}
