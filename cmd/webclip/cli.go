package main

import (
	"context"
	"io"

	"github.com/fwojciec/webclip"
	"github.com/fwojciec/webclip/clip"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Registry   webclip.Registry
	Dispatcher webclip.Dispatcher
	Clipper    *clip.Clipper
	Notes      webclip.NoteService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log pipeline activity to stderr"`
	APIURL  string `name:"api-url" env:"WEBCLIP_API_URL" default:"http://localhost:3000" help:"Notes API base URL"`
	APIKey  string `name:"api-key" env:"WEBCLIP_API_KEY" help:"Notes API key"`

	Clip       ClipCmd       `cmd:"" help:"Clip one or more URLs to Markdown"`
	Extractors ExtractorsCmd `cmd:"" help:"List registered site extractors"`
	Categories CategoriesCmd `cmd:"" help:"List note categories available for filing"`
}

// ClipCmd is the "clip" subcommand.
type ClipCmd struct {
	URLs        []string `arg:"" name:"url" help:"Page URLs to clip"`
	Mode        string   `short:"m" default:"auto" enum:"auto,full" help:"Extraction mode"`
	Save        bool     `short:"s" help:"Save clips to the notes API instead of printing"`
	Category    string   `short:"C" help:"Category to file saved notes under"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS         float64  `name:"rps" default:"1" help:"Max requests per second per domain"`
}

// ExtractorsCmd is the "extractors" subcommand.
type ExtractorsCmd struct{}

// CategoriesCmd is the "categories" subcommand.
type CategoriesCmd struct{}
