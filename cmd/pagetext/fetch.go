package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pagetext"
	"github.com/fwojciec/pagetext/fanout"
	"github.com/fwojciec/pagetext/fs"
	"github.com/fwojciec/pagetext/goquery"
	"github.com/fwojciec/pagetext/htmltomarkdown"
	pagehttp "github.com/fwojciec/pagetext/http"
	"github.com/fwojciec/pagetext/readability"
	"github.com/fwojciec/pagetext/rod"
	pageslog "github.com/fwojciec/pagetext/slog"
	"github.com/fwojciec/pagetext/trafilatura"
	"github.com/google/uuid"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	orch, closer, err := c.FetchFlags.build(deps.Stderr, c.Token)
	if err != nil {
		return err
	}
	defer closer.Close()

	outcomes, runErr := orch.FetchAll(deps.Ctx, c.URLs)

	docs := make([]*pagetext.Document, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Success {
			docs = append(docs, pagetext.NewDocument(o.URL, o.Text, c.MirrorBase))
		}
	}

	if c.Out != "" && runErr == nil {
		ext := fs.DefaultExtension
		if c.Extractor == "markdown" {
			ext = ".md"
		}
		out := filepath.Clean(c.Out)
		store := fs.NewStore(filepath.Dir(out), filepath.Base(out), fs.WithExtension(ext))
		if err := saveDocuments(deps.Ctx, store, docs); err != nil {
			return fmt.Errorf("saving documents to %s: %w", out, err)
		}
		fmt.Fprintf(deps.Stderr, "saved %d documents to %s\n", len(docs), out)
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	if c.Documents {
		err = enc.Encode(docs)
	} else {
		err = enc.Encode(outcomes)
	}
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return runErr
}

// saveDocuments writes docs to store, committing only if every save
// succeeds.
func saveDocuments(ctx context.Context, store pagetext.DocumentStore, docs []*pagetext.Document) error {
	for _, doc := range docs {
		if err := store.Save(ctx, doc); err != nil {
			_ = store.Abort()
			return err
		}
	}
	return store.Commit()
}

// build wires an orchestrator from the flags. The returned closer releases
// the page fetcher.
func (f *FetchFlags) build(stderr io.Writer, token string) (*fanout.Orchestrator, io.Closer, error) {
	cfg := pagetext.DefaultConfig()
	cfg.Concurrency = f.Concurrency
	cfg.Timeout = f.Timeout
	if err := parseHeaders(f.Header, cfg.Headers); err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := f.logger(stderr)

	var batch pagetext.BatchFetcher
	var closer io.Closer = nopCloser{}
	if f.Remote != "" {
		batch = pagehttp.NewBatchClient(f.Remote, token)
	} else {
		fetcher, err := f.fetcher(cfg)
		if err != nil {
			return nil, nil, err
		}
		closer = fetcher
		if f.Verbose {
			fetcher = pageslog.NewLoggingFetcher(fetcher, logger)
		}

		var opts []fanout.DirectOption
		if f.RPS > 0 {
			opts = append(opts, fanout.WithLimiter(fanout.NewDomainLimiter(f.RPS)))
		}
		batch = fanout.NewDirect(fetcher, f.cleaner(), opts...)
	}
	if f.Verbose {
		batch = pageslog.NewLoggingBatchFetcher(batch, logger)
	}

	orch, err := fanout.New(cfg, batch, fanout.WithProgress(pageslog.LogProgress(logger)))
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return orch, closer, nil
}

// logger returns a stderr logger tagged with a fresh run ID.
func (f *FetchFlags) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if f.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run", uuid.NewString())
}

func (f *FetchFlags) fetcher(cfg pagetext.FetchConfig) (pagetext.Fetcher, error) {
	if f.Browser {
		fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cfg.Timeout))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		return fetcher, nil
	}
	return pagehttp.NewFetcherFromConfig(cfg, pagehttp.WithErrorStatusAsContent(f.ErrorPages)), nil
}

func (f *FetchFlags) cleaner() pagetext.Cleaner {
	body := goquery.NewExtractor(goquery.WithSelector(goquery.BodySelector))
	switch f.Extractor {
	case "readability":
		return readability.NewCleaner(body)
	case "trafilatura":
		return trafilatura.NewCleaner(body)
	case "markdown":
		return htmltomarkdown.NewCleaner(f.Selector)
	default:
		return goquery.NewExtractor(goquery.WithSelector(f.Selector))
	}
}

// parseHeaders adds each "Key: Value" entry to dst, replacing defaults.
func parseHeaders(entries []string, dst map[string]string) error {
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return pagetext.Errorf(pagetext.EINVALID, "invalid header %q, expected 'Key: Value'", entry)
		}
		dst[http.CanonicalHeaderKey(key)] = strings.TrimSpace(value)
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
