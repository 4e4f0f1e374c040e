package main

import (
	"context"
	"io"
	"time"
)

// Dependencies holds the I/O and lifetime shared by every command.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Fetch FetchCmd `cmd:"" help:"Fetch pages and print their text as JSON outcomes"`
	Links LinksCmd `cmd:"" help:"Print the links found in a page"`
	Serve ServeCmd `cmd:"" help:"Serve the batch endpoint used for remote fan-out"`
}

// FetchFlags configure how pages are fetched and cleaned. They are shared
// by the fetch and serve commands.
type FetchFlags struct {
	Concurrency int           `short:"c" default:"5" help:"Pages fetched at once"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Timeout per page"`
	Selector    string        `short:"s" default:"article" help:"CSS selector of the content element"`
	Extractor   string        `short:"e" default:"selector" enum:"selector,readability,trafilatura,markdown" help:"Content extractor (${enum})"`
	Remote      string        `help:"Delegate each chunk to this batch endpoint"`
	Browser     bool          `help:"Render pages in headless Chrome"`
	RPS         float64       `name:"rps" help:"Requests per second per host (0 for unlimited)"`
	Header      []string      `short:"H" sep:"none" help:"Extra request header as 'Key: Value' (repeatable)"`
	ErrorPages  bool          `name:"error-pages" help:"Treat non-2xx responses as page content"`
	Verbose     bool          `short:"v" help:"Log every request"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	FetchFlags `embed:""`

	Token      string   `env:"PAGETEXT_TOKEN" help:"Credential for the remote batch endpoint"`
	Documents  bool     `short:"d" help:"Print documents with metadata instead of outcomes"`
	MirrorBase string   `name:"mirror-base" help:"Mirror base recorded in document metadata"`
	Out        string   `short:"o" type:"path" help:"Also write each document to a file under this directory"`
	URLs       []string `arg:"" name:"url" help:"Page addresses"`
}

// LinksCmd is the "links" subcommand.
type LinksCmd struct {
	Timeout time.Duration `short:"t" default:"10s" help:"Timeout for the page"`
	Header  []string      `short:"H" sep:"none" help:"Extra request header as 'Key: Value' (repeatable)"`
	URL     string        `arg:"" help:"Page address"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	FetchFlags `embed:""`

	Addr  string `default:":8080" help:"Listen address"`
	Token string `env:"PAGETEXT_TOKEN" required:"" help:"Credential clients must present"`
}
