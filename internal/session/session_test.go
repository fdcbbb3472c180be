package session_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/martian/internal/clipboard"
	"codeberg.org/snonux/martian/internal/session"
	"codeberg.org/snonux/martian/internal/testutil"
	"codeberg.org/snonux/martian/internal/translation"
)

func newTestSession(t *testing.T) (*session.Session, *testutil.MockClipboard, *testutil.FakeClock) {
	t.Helper()
	cb := &testutil.MockClipboard{}
	clock := testutil.NewFakeClock()
	s := session.New(cb)
	s.SetClock(clock)
	t.Cleanup(s.Close)
	return s, cb, clock
}

func TestNew_Empty(t *testing.T) {
	s, _, _ := newTestSession(t)
	st := s.Snapshot()

	if st.SourceText != "" || st.TargetText != "" {
		t.Errorf("Expected empty texts, got %q / %q", st.SourceText, st.TargetText)
	}
	if st.Direction != translation.ToAlien {
		t.Errorf("Expected ToAlien, got %s", st.Direction)
	}
	if st.CopyFeedbackActive {
		t.Error("Expected copy feedback to be inactive")
	}
}

func TestEdit_DerivesTarget(t *testing.T) {
	s, _, _ := newTestSession(t)

	s.Edit("Hello")
	if got := s.OutputText(); got != "⊑⟒⌰⌰⍜" {
		t.Errorf("OutputText() = %q", got)
	}
	if got := s.InputText(); got != "Hello" {
		t.Errorf("InputText() = %q", got)
	}
	if s.CharCount() != 5 {
		t.Errorf("CharCount() = %d, want 5", s.CharCount())
	}

	s.Edit("")
	if s.OutputText() != "" || s.CharCount() != 0 {
		t.Errorf("Expected cleared session, got %q (%d)", s.OutputText(), s.CharCount())
	}
}

func TestCharCount_CountsRunes(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Swap()
	s.Edit("⊑⟟!")
	if s.CharCount() != 3 {
		t.Errorf("CharCount() = %d, want 3", s.CharCount())
	}
}

func TestSwap_ExchangesWithoutRetranslation(t *testing.T) {
	s, _, _ := newTestSession(t)

	s.Edit("HELLO")
	before := s.OutputText()

	s.Swap()
	st := s.Snapshot()
	if st.Direction != translation.ToEnglish {
		t.Errorf("Expected ToEnglish after swap, got %s", st.Direction)
	}
	if st.SourceText != before {
		t.Errorf("Editable text = %q, want previous target %q", st.SourceText, before)
	}
	if st.TargetText != "HELLO" {
		t.Errorf("Read-only text = %q, want HELLO", st.TargetText)
	}
}

func TestSwap_KeepsLowercaseVerbatim(t *testing.T) {
	s, _, _ := newTestSession(t)

	s.Edit("hi")
	s.Swap()

	// A retranslation would give "HI"
	if got := s.OutputText(); got != "hi" {
		t.Errorf("OutputText() = %q, want %q", got, "hi")
	}
}

func TestSwap_EmptyAndTwice(t *testing.T) {
	s, _, _ := newTestSession(t)

	s.Swap()
	if s.Direction() != translation.ToEnglish {
		t.Error("Swap on empty text should still flip direction")
	}
	s.Swap()
	if s.Direction() != translation.ToAlien {
		t.Error("Second swap should restore direction")
	}
}

func TestEdit_AfterSwapUsesNewDirection(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Swap()

	s.Edit("⏃⏚")
	if got := s.OutputText(); got != "AB" {
		t.Errorf("OutputText() = %q, want AB", got)
	}

	// Latin letters pass through in the toEnglish direction
	s.Edit("ab")
	if got := s.OutputText(); got != "ab" {
		t.Errorf("OutputText() = %q, want ab", got)
	}
}

func TestTypeAndBackspace(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Swap()

	s.Type("⊑")
	s.Type("⟟")
	if s.InputText() != "⊑⟟" || s.OutputText() != "HI" {
		t.Errorf("After typing got %q -> %q", s.InputText(), s.OutputText())
	}

	s.Backspace()
	if s.InputText() != "⊑" || s.OutputText() != "H" {
		t.Errorf("After backspace got %q -> %q", s.InputText(), s.OutputText())
	}

	s.Backspace()
	s.Backspace()
	if s.InputText() != "" || s.OutputText() != "" {
		t.Errorf("Expected empty after extra backspace, got %q -> %q", s.InputText(), s.OutputText())
	}
}

func TestCopy_WritesOutputText(t *testing.T) {
	s, cb, _ := newTestSession(t)

	s.Edit("HI")
	if err := s.Copy(context.Background()); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if cb.Last() != "⊑⟟" {
		t.Errorf("Copied %q, want output text", cb.Last())
	}

	s.Swap()
	if err := s.Copy(context.Background()); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if cb.Last() != "HI" {
		t.Errorf("Copied %q after swap, want HI", cb.Last())
	}
}

func TestCopy_FeedbackWindow(t *testing.T) {
	s, _, clock := newTestSession(t)
	s.Edit("A")

	if err := s.Copy(context.Background()); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if !s.Snapshot().CopyFeedbackActive {
		t.Fatal("Expected feedback after copy")
	}

	clock.Advance(1999 * time.Millisecond)
	if !s.Snapshot().CopyFeedbackActive {
		t.Error("Feedback cleared too early")
	}

	clock.Advance(time.Millisecond)
	if s.Snapshot().CopyFeedbackActive {
		t.Error("Expected feedback cleared after 2000ms")
	}
}

func TestCopy_RestartsWindow(t *testing.T) {
	s, _, clock := newTestSession(t)
	s.Edit("A")

	if err := s.Copy(context.Background()); err != nil {
		t.Fatal(err)
	}
	clock.Advance(1000 * time.Millisecond)
	if err := s.Copy(context.Background()); err != nil {
		t.Fatal(err)
	}

	// 2000ms after the first copy the stale timer must not clear feedback
	clock.Advance(1000 * time.Millisecond)
	if !s.Snapshot().CopyFeedbackActive {
		t.Error("Stale timer cleared feedback")
	}

	clock.Advance(999 * time.Millisecond)
	if !s.Snapshot().CopyFeedbackActive {
		t.Error("Feedback cleared before 3000ms")
	}

	clock.Advance(time.Millisecond)
	if s.Snapshot().CopyFeedbackActive {
		t.Error("Expected feedback cleared at 3000ms")
	}
	if clock.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", clock.Pending())
	}
}

func TestCopy_FailureLogsAndKeepsFeedback(t *testing.T) {
	s, cb, clock := newTestSession(t)
	var logs bytes.Buffer
	s.SetLogger(log.New(&logs, "", 0))
	cb.Err = clipboard.ErrUnavailable

	s.Edit("A")
	err := s.Copy(context.Background())
	if !errors.Is(err, clipboard.ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
	if s.Snapshot().CopyFeedbackActive {
		t.Error("Feedback should not be active after failed copy")
	}
	if clock.Pending() != 0 {
		t.Error("No timer should be started on failure")
	}
	if !strings.Contains(logs.String(), "copy failed") {
		t.Errorf("Expected diagnostic log, got %q", logs.String())
	}
}

func TestCopy_NoClipboard(t *testing.T) {
	s := session.New(nil)
	s.SetLogger(log.New(&bytes.Buffer{}, "", 0))
	defer s.Close()

	if err := s.Copy(context.Background()); !errors.Is(err, clipboard.ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
}

func TestOnChange_Notified(t *testing.T) {
	s, _, clock := newTestSession(t)

	var states []session.State
	s.OnChange(func(st session.State) {
		states = append(states, st)
	})

	s.Edit("A")
	s.Swap()
	if err := s.Copy(context.Background()); err != nil {
		t.Fatal(err)
	}
	clock.Advance(session.FeedbackWindow)

	if len(states) != 4 {
		t.Fatalf("Expected 4 notifications, got %d", len(states))
	}
	if !states[2].CopyFeedbackActive || states[3].CopyFeedbackActive {
		t.Errorf("Unexpected feedback sequence: %+v", states)
	}
}

func TestOnChange_RegisteredDuringNotify(t *testing.T) {
	s, _, _ := newTestSession(t)

	late := 0
	registered := false
	s.OnChange(func(session.State) {
		if !registered {
			registered = true
			s.OnChange(func(session.State) { late++ })
		}
	})

	s.Edit("A")
	if late != 0 {
		t.Errorf("Listener added during notify ran for the same change (%d)", late)
	}

	s.Edit("B")
	if late != 1 {
		t.Errorf("Expected late listener to run once, got %d", late)
	}
}

func TestClose_StopsTimer(t *testing.T) {
	cb := &testutil.MockClipboard{}
	clock := testutil.NewFakeClock()
	s := session.New(cb)
	s.SetClock(clock)

	notified := 0
	s.OnChange(func(session.State) { notified++ })

	if err := s.Copy(context.Background()); err != nil {
		t.Fatal(err)
	}
	s.Close()

	if clock.Pending() != 0 {
		t.Error("Close should stop the feedback timer")
	}
	clock.Advance(session.FeedbackWindow)
	if notified != 1 {
		t.Errorf("Expected no notification after close, got %d", notified)
	}
}
