// Package session holds the state of one translator interface: the
// editable source text, the derived target text, the translation
// direction and the copy feedback flag.
package session
