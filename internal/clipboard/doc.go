// Package clipboard writes text to the system clipboard through an ordered
// list of strategies. The first strategy that succeeds wins; when every
// strategy fails the write is abandoned with ErrUnavailable.
package clipboard
