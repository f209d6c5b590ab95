// Package console reads debug commands from a line-oriented stream and
// hands them to the game loop.
//
// The listener never touches game state. Commands are delivered through
// the send callback (typically tea.Program.Send), and the loop that owns
// the session executes them between frames.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Prompt is written before each line when the listener has an output.
const Prompt = "> "

// Listener reads commands from In.
type Listener struct {
	In     io.Reader
	Out    io.Writer // optional prompt destination
	Logger *log.Logger
}

// Run reads lines until EOF, a read error, or ctx is cancelled, sending
// every non-empty trimmed line. Cancellation is noticed between lines; a
// blocked read returns only when the reader does.
func (l Listener) Run(ctx context.Context, send func(cmd string)) error {
	logger := l.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sc := bufio.NewScanner(l.In)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.Out != nil {
			fmt.Fprint(l.Out, Prompt)
		}
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return fmt.Errorf("console: read: %w", err)
			}
			logger.Debug("console input closed")
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		cmd := strings.TrimSpace(sc.Text())
		if cmd == "" {
			continue
		}
		logger.Debug("console command", "cmd", cmd)
		send(cmd)
	}
}

// Start runs the listener in its own goroutine. The returned channel
// yields the result of Run once and is then closed.
func (l Listener) Start(ctx context.Context, send func(cmd string)) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- l.Run(ctx, send)
	}()
	return done
}
