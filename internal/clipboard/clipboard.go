package clipboard

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// ErrUnavailable is returned when no strategy could write the text
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer writes text to a clipboard
type Writer interface {
	Write(ctx context.Context, text string) error
}

// FuncWriter adapts a function to the Writer interface
type FuncWriter func(ctx context.Context, text string) error

// Write implements Writer
func (f FuncWriter) Write(ctx context.Context, text string) error {
	return f(ctx, text)
}

// Strategy is a named Writer
type Strategy struct {
	Name   string
	Writer Writer
}

// Chain tries each strategy once, in order
type Chain struct {
	strategies []Strategy
	logger     *log.Logger
}

// NewChain creates a chain from the given strategies. Nil writers are skipped.
func NewChain(strategies ...Strategy) *Chain {
	c := &Chain{logger: log.Default()}
	for _, s := range strategies {
		if s.Writer != nil {
			c.strategies = append(c.strategies, s)
		}
	}
	return c
}

// SetLogger replaces the diagnostic logger
func (c *Chain) SetLogger(logger *log.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Len returns the number of strategies in the chain
func (c *Chain) Len() int {
	return len(c.strategies)
}

// Write implements Writer
func (c *Chain) Write(ctx context.Context, text string) error {
	var lastErr error
	for _, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.Writer.Write(ctx, text)
		if err == nil {
			return nil
		}
		c.logger.Printf("clipboard: %s failed: %v", s.Name, err)
		lastErr = err
	}

	if lastErr == nil {
		return fmt.Errorf("%w: no strategy configured", ErrUnavailable)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, lastErr)
}
