// Package stream models the language-model boundary: a long-lived,
// cancellable stream of text chunks. The provider call itself is opaque;
// this package only owns collecting chunks and honoring cancellation.
// A cancelled generation keeps everything collected so far, because a
// partial response may still contain one complete, well-formed patch.
package stream

import (
	"context"
	"strings"
	"sync"
)

// RunFunc is the provider call: it emits chunks until done and returns
// when the stream ends or ctx is cancelled. Implementations should check
// ctx between chunk emissions.
type RunFunc func(ctx context.Context, emit func(chunk string)) error

// Generation is one in-flight model call.
type Generation struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu   sync.Mutex
	text strings.Builder
	err  error
}

// Start launches the provider call and begins collecting its output.
func Start(ctx context.Context, run RunFunc) *Generation {
	ctx, cancel := context.WithCancel(ctx)
	g := &Generation{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(g.done)
		err := run(ctx, func(chunk string) {
			g.mu.Lock()
			g.text.WriteString(chunk)
			g.mu.Unlock()
		})
		g.mu.Lock()
		if err != nil {
			g.err = err
		} else if ctx.Err() != nil {
			g.err = ctx.Err()
		}
		g.mu.Unlock()
	}()

	return g
}

// Cancel stops the generation. Chunks already collected are kept.
func (g *Generation) Cancel() {
	g.cancel()
}

// Text returns everything collected so far. Safe to call while the
// generation is still running.
func (g *Generation) Text() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.text.String()
}

// Wait blocks until the stream ends or is cancelled, then returns the
// full (possibly partial) transcript. On cancellation err is
// context.Canceled and text still holds what arrived before the cut.
func (g *Generation) Wait() (text string, err error) {
	<-g.done
	g.cancel()
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.text.String(), g.err
}

// Collect drains a chunk channel under ctx and returns the concatenated
// text. On cancellation it returns the partial text with ctx's error.
func Collect(ctx context.Context, chunks <-chan string) (string, error) {
	var sb strings.Builder
	for {
		select {
		case <-ctx.Done():
			return sb.String(), ctx.Err()
		case chunk, ok := <-chunks:
			if !ok {
				return sb.String(), nil
			}
			sb.WriteString(chunk)
		}
	}
}
