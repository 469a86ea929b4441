package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// InterruptHandler cancels a context on SIGINT/SIGTERM so an in-flight
// provider request or git call is abandoned cleanly
type InterruptHandler struct {
	cancel  context.CancelFunc
	sigChan chan os.Signal
	out     io.Writer
	done    chan struct{}
}

// NewInterruptHandler derives a cancellable context from parent and starts listening for signals
func NewInterruptHandler(parent context.Context, out io.Writer) (context.Context, *InterruptHandler) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	h := &InterruptHandler{
		cancel:  cancel,
		sigChan: make(chan os.Signal, 1),
		out:     out,
		done:    make(chan struct{}),
	}
	signal.Notify(h.sigChan, os.Interrupt, syscall.SIGTERM)
	go h.handleSignals()

	return ctx, h
}

func (h *InterruptHandler) handleSignals() {
	select {
	case <-h.sigChan:
		fmt.Fprintln(h.out, "\n\n⚠️  Received interrupt signal, cancelling...")
		h.cancel()
	case <-h.done:
	}
}

// Stop stops signal handling and releases the context
func (h *InterruptHandler) Stop() {
	signal.Stop(h.sigChan)
	close(h.done)
	h.cancel()
}
