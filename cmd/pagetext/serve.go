package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	pagehttp "github.com/fwojciec/pagetext/http"
)

// ShutdownTimeout bounds how long in-flight batches may finish after the
// server is asked to stop.
const ShutdownTimeout = 30 * time.Second

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	orch, closer, err := c.FetchFlags.build(deps.Stderr, c.Token)
	if err != nil {
		return err
	}
	defer closer.Close()

	mux := http.NewServeMux()
	mux.Handle("/multifetch", pagehttp.NewBatchHandler(orch, c.Token))

	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", c.Addr, err)
	}
	fmt.Fprintf(deps.Stderr, "listening on %s\n", ln.Addr())

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-deps.Ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
