package tui

// stateChangedMsg is sent when the session changes outside Update,
// e.g. when the copy feedback window ends.
type stateChangedMsg struct{}

type copyDoneMsg struct {
	err error
}
