package session

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"
	"unicode/utf8"

	"codeberg.org/snonux/martian/internal/clipboard"
	"codeberg.org/snonux/martian/internal/translation"
)

// FeedbackWindow is how long the copy feedback stays active
const FeedbackWindow = 2 * time.Second

// State is a snapshot of a session
type State struct {
	SourceText         string
	TargetText         string
	Direction          translation.Direction
	CopyFeedbackActive bool
}

// CharCount returns the rune length of the editable text
func (s State) CharCount() int {
	return utf8.RuneCountInString(s.SourceText)
}

// Session binds an editable source text to its derived translation.
// TargetText is only ever written by Edit (as a translation of the source)
// or by Swap (as the previous source).
type Session struct {
	mu    sync.Mutex
	state State

	clipboard clipboard.Writer
	clock     Clock
	logger    *log.Logger

	feedbackTimer Timer
	feedbackGen   uint64
	closed        bool

	listeners []func(State)
}

// New creates an empty session translating English to alien
func New(writer clipboard.Writer) *Session {
	return &Session{
		state:     State{Direction: translation.ToAlien},
		clipboard: writer,
		clock:     RealClock(),
		logger:    log.Default(),
	}
}

// SetClock replaces the clock used for the feedback timer
func (s *Session) SetClock(clock Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

// SetLogger replaces the diagnostic logger
func (s *Session) SetLogger(logger *log.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if logger != nil {
		s.logger = logger
	}
}

// OnChange registers a callback invoked after every state change,
// including the timer driven feedback clear.
func (s *Session) OnChange(f func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, f)
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Direction returns the current direction
func (s *Session) Direction() translation.Direction {
	return s.Snapshot().Direction
}

// InputText is the editable text
func (s *Session) InputText() string {
	return s.Snapshot().SourceText
}

// OutputText is the derived, read-only text
func (s *Session) OutputText() string {
	return s.Snapshot().TargetText
}

// CharCount returns the rune length of the editable text
func (s *Session) CharCount() int {
	return s.Snapshot().CharCount()
}

// Edit replaces the source text and re-derives the target text
func (s *Session) Edit(text string) {
	s.mutate(func(st *State) {
		st.SourceText = text
		st.TargetText = translation.Translate(text, st.Direction)
	})
}

// Type appends text to the source, as the on-screen glyph keyboard does
func (s *Session) Type(text string) {
	s.mutate(func(st *State) {
		st.SourceText += text
		st.TargetText = translation.Translate(st.SourceText, st.Direction)
	})
}

// Backspace removes the last character of the source text
func (s *Session) Backspace() {
	s.mutate(func(st *State) {
		if st.SourceText == "" {
			return
		}
		_, size := utf8.DecodeLastRuneInString(st.SourceText)
		st.SourceText = st.SourceText[:len(st.SourceText)-size]
		st.TargetText = translation.Translate(st.SourceText, st.Direction)
	})
}

// Swap flips the direction and exchanges the two texts verbatim.
// Nothing is retranslated.
func (s *Session) Swap() {
	s.mutate(func(st *State) {
		st.Direction = st.Direction.Other()
		st.SourceText, st.TargetText = st.TargetText, st.SourceText
	})
}

// Copy writes the output text to the clipboard. On success the copy
// feedback is active for FeedbackWindow; a later copy restarts the window.
// Failures are logged and returned, the feedback flag is left alone.
func (s *Session) Copy(ctx context.Context) error {
	s.mu.Lock()
	text := s.state.TargetText
	writer := s.clipboard
	logger := s.logger
	s.mu.Unlock()

	if writer == nil {
		err := fmt.Errorf("%w: no clipboard configured", clipboard.ErrUnavailable)
		logger.Printf("copy failed: %v", err)
		return err
	}

	if err := writer.Write(ctx, text); err != nil {
		logger.Printf("copy failed: %v", err)
		return fmt.Errorf("copy failed: %w", err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	if s.feedbackTimer != nil {
		s.feedbackTimer.Stop()
	}
	s.feedbackGen++
	gen := s.feedbackGen
	s.state.CopyFeedbackActive = true
	s.feedbackTimer = s.clock.AfterFunc(FeedbackWindow, func() {
		s.clearFeedback(gen)
	})
	st, listeners := s.state, s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, st)
	return nil
}

// clearFeedback resets the flag unless a newer copy started its own window
func (s *Session) clearFeedback(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.feedbackGen {
		s.mu.Unlock()
		return
	}
	s.state.CopyFeedbackActive = false
	s.feedbackTimer = nil
	st, listeners := s.state, s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, st)
}

// Close stops any pending timer. The session must not be used afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.feedbackTimer != nil {
		s.feedbackTimer.Stop()
		s.feedbackTimer = nil
	}
	s.listeners = nil
}

func (s *Session) mutate(f func(*State)) {
	s.mu.Lock()
	f(&s.state)
	st, listeners := s.state, s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, st)
}

func (s *Session) listenersLocked() []func(State) {
	return slices.Clone(s.listeners)
}

func notify(listeners []func(State), st State) {
	for _, f := range listeners {
		f(st)
	}
}
