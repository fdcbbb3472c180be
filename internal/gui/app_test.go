package gui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"

	"codeberg.org/snonux/martian/internal/session"
	"codeberg.org/snonux/martian/internal/testutil"
	"codeberg.org/snonux/martian/internal/translation"
)

func newTestApplication(t *testing.T, config *Config) (*Application, *testutil.FakeClock) {
	t.Helper()

	a := newApplication(test.NewApp(), config)
	clock := testutil.NewFakeClock()
	a.session.SetClock(clock)
	t.Cleanup(func() {
		a.session.Close()
	})
	return a, clock
}

func TestNewApplication(t *testing.T) {
	a, _ := newTestApplication(t, nil)

	if a.sourceLabel.Text != "English" {
		t.Errorf("source label = %q, want English", a.sourceLabel.Text)
	}
	if a.targetLabel.Text != "Alien" {
		t.Errorf("target label = %q, want Alien", a.targetLabel.Text)
	}
	if a.countLabel.Text != "0 characters" {
		t.Errorf("count label = %q", a.countLabel.Text)
	}
	if !a.outputEntry.Disabled() {
		t.Error("output pane should be read-only")
	}
	if got := len(a.keyboard.Keys()); got != 26 {
		t.Errorf("keyboard has %d glyph keys, want 26", got)
	}
}

func TestNewApplicationToEnglish(t *testing.T) {
	a, _ := newTestApplication(t, &Config{Direction: translation.ToEnglish})

	if a.session.Direction() != translation.ToEnglish {
		t.Fatalf("direction = %v, want toEnglish", a.session.Direction())
	}
	if a.sourceLabel.Text != "Alien" || a.targetLabel.Text != "English" {
		t.Errorf("labels = %q/%q", a.sourceLabel.Text, a.targetLabel.Text)
	}
}

func TestTypingTranslates(t *testing.T) {
	a, _ := newTestApplication(t, nil)

	test.Type(a.inputEntry, "hi")

	if got := a.outputEntry.Text; got != "⊑⟟" {
		t.Errorf("output = %q, want ⊑⟟", got)
	}
	if a.countLabel.Text != "2 characters" {
		t.Errorf("count label = %q", a.countLabel.Text)
	}
}

func TestSwapExchangesPanes(t *testing.T) {
	a, _ := newTestApplication(t, nil)

	a.inputEntry.SetText("HELLO")
	a.onSwap()

	if a.inputEntry.Text != "⊑⟒⌰⌰⍜" {
		t.Errorf("input = %q after swap", a.inputEntry.Text)
	}
	if a.outputEntry.Text != "HELLO" {
		t.Errorf("output = %q after swap", a.outputEntry.Text)
	}
	if a.sourceLabel.Text != "Alien" {
		t.Errorf("source label = %q after swap", a.sourceLabel.Text)
	}
	if !strings.Contains(a.statusLabel.Text, "Alien to English") {
		t.Errorf("status = %q", a.statusLabel.Text)
	}
}

func TestGlyphKeyboardTypesIntoSession(t *testing.T) {
	a, _ := newTestApplication(t, &Config{Direction: translation.ToEnglish})

	keys := a.keyboard.Keys()
	test.Tap(keys[7]) // H
	test.Tap(keys[8]) // I

	if a.inputEntry.Text != "⊑⟟" {
		t.Errorf("input = %q", a.inputEntry.Text)
	}
	if a.outputEntry.Text != "HI" {
		t.Errorf("output = %q", a.outputEntry.Text)
	}
}

func TestCopyFeedback(t *testing.T) {
	a, clock := newTestApplication(t, nil)

	a.inputEntry.SetText("abc")
	if err := a.session.Copy(context.Background()); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}

	if got := a.app.Clipboard().Content(); got != "⏃⏚☊" {
		t.Errorf("clipboard = %q", got)
	}
	if a.copyButton.Icon.Name() != theme.ConfirmIcon().Name() {
		t.Errorf("copy icon = %q while feedback active", a.copyButton.Icon.Name())
	}

	clock.Advance(session.FeedbackWindow - time.Millisecond)
	if a.copyButton.Icon.Name() != theme.ConfirmIcon().Name() {
		t.Error("feedback cleared too early")
	}

	clock.Advance(time.Millisecond)
	if a.copyButton.Icon.Name() != theme.ContentCopyIcon().Name() {
		t.Error("feedback should clear after the window")
	}
}

func TestFyneClipboardMismatch(t *testing.T) {
	test.NewApp()
	err := fyneClipboard{clip: brokenClipboard{}}.Write(context.Background(), "x")
	if !errors.Is(err, errClipboardMismatch) {
		t.Fatalf("Write() error = %v, want mismatch", err)
	}
}

func TestFyneClipboardCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fyneClipboard{clip: brokenClipboard{}}.Write(ctx, "x")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Write() error = %v, want context.Canceled", err)
	}
}

func TestOnCopyRunsInBackground(t *testing.T) {
	a, _ := newTestApplication(t, nil)

	a.inputEntry.SetText("z")
	a.onCopy()
	a.wg.Wait()

	if got := a.app.Clipboard().Content(); got != "⋉" {
		t.Errorf("clipboard = %q", got)
	}
	if a.statusLabel.Text != "Copied to clipboard" {
		t.Errorf("status = %q", a.statusLabel.Text)
	}
}

func TestCloseCancelsCopies(t *testing.T) {
	a, clock := newTestApplication(t, nil)

	a.inputEntry.SetText("abc")
	a.window.Close()

	if a.ctx.Err() == nil {
		t.Fatal("closing the window should cancel pending copies")
	}

	a.onCopy()
	a.wg.Wait()

	if a.session.Snapshot().CopyFeedbackActive {
		t.Error("copy after close must not show feedback")
	}
	if clock.Pending() != 0 {
		t.Errorf("expected no feedback timer after close, got %d", clock.Pending())
	}
	if a.statusLabel.Text != "Copy failed (see diagnostics)" {
		t.Errorf("status = %q", a.statusLabel.Text)
	}
}

func TestFyneClipboardWrite(t *testing.T) {
	fyneApp := test.NewApp()

	err := fyneClipboard{clip: fyneApp.Clipboard()}.Write(context.Background(), "⏃⏚")
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := fyneApp.Clipboard().Content(); got != "⏃⏚" {
		t.Errorf("clipboard = %q", got)
	}
}

func TestLogViewer(t *testing.T) {
	test.NewApp()
	v := NewLogViewer()

	_, _ = v.Write([]byte("first\nsecond\n"))

	msgs := v.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if !strings.HasSuffix(msgs[0], "second") {
		t.Errorf("newest message = %q", msgs[0])
	}

	v.Clear()
	if len(v.Messages()) != 0 {
		t.Error("Clear() should drop all messages")
	}
}

func TestLogViewerLimit(t *testing.T) {
	test.NewApp()
	v := NewLogViewer()
	v.maxMessages = 3

	for i := 0; i < 5; i++ {
		v.AddMessage(time.Duration(i).String())
	}
	if got := len(v.Messages()); got != 3 {
		t.Errorf("got %d messages, want 3", got)
	}
}

type brokenClipboard struct{}

func (brokenClipboard) Content() string   { return "" }
func (brokenClipboard) SetContent(string) {}
