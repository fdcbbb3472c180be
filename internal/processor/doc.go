// Package processor dispatches a martian invocation to the right mode:
// single text translation, batch translation, Anki export, or one of the
// interactive front-ends.
package processor
