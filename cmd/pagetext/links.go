package main

import (
	"fmt"

	"github.com/fwojciec/pagetext"
	"github.com/fwojciec/pagetext/goquery"
	pagehttp "github.com/fwojciec/pagetext/http"
)

// Run executes the links command.
func (c *LinksCmd) Run(deps *Dependencies) error {
	cfg := pagetext.DefaultConfig()
	cfg.Timeout = c.Timeout
	if err := parseHeaders(c.Header, cfg.Headers); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fetcher := pagehttp.NewFetcherFromConfig(cfg)
	defer fetcher.Close()

	resp, err := fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagetext.ErrorMessage(err))
		return err
	}

	for _, href := range goquery.ExtractLinks(resp.Body) {
		fmt.Fprintln(deps.Stdout, href)
	}
	return nil
}
