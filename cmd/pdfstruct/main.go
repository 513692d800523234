// Command pdfstruct prints the reading structure reconstructed from a PDF:
// text blocks, lines, words or characters with their bounding boxes.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/tsawler/pdfstruct"
	"github.com/tsawler/pdfstruct/internal/config"
	"github.com/tsawler/pdfstruct/model"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion(stdout)
			return 0
		}
	}

	cfg, err := config.Load(args, stderr)
	if errors.Is(err, config.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "pdfstruct: %v\n", err)
		return 2
	}

	logger := setupLogging(cfg, stderr)
	if cfg.IsDebug() {
		logger.Debug("starting", "config", cfg.String())
	}

	ext := pdfstruct.Open(cfg.Input).
		Layout(cfg.LayoutConfig()).
		Logger(logger)
	if pages := cfg.PageNumbers(); len(pages) > 0 {
		ext = ext.Pages(pages...)
	}
	if cfg.ValidateFile {
		ext = ext.Validate()
	}

	doc, warnings, err := ext.Document()
	if err != nil {
		logger.Error("extraction failed", "path", cfg.Input, "err", err)
		return 1
	}
	logger.Info("extracted", "path", cfg.Input, "pages", doc.PageCount(), "warnings", len(warnings))

	printDocument(stdout, doc, cfg.Show)
	return 0
}

// setupLogging builds the logger writing to stderr
func setupLogging(cfg *config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

func printDocument(w io.Writer, doc *model.Document, show string) {
	if show == config.ShowText {
		fmt.Fprintln(w, doc.Text())
		return
	}
	for _, page := range doc.Pages {
		fmt.Fprintf(w, "=== page %d %s\n", page.Number, formatRect(page.CropBox))
		for _, block := range page.TextBlocks {
			printBlock(w, block, show)
		}
	}
}

func printBlock(w io.Writer, block *model.TextBlock, show string) {
	if show == config.ShowBlocks {
		fmt.Fprintf(w, "[block %s]\n%s\n\n", formatRect(block.Rect()), block.Text)
		return
	}
	for _, line := range block.Lines {
		if show == config.ShowLines {
			fmt.Fprintf(w, "%s %s\n", formatRect(line.Rect()), line.Text)
			continue
		}
		for _, word := range line.Words {
			if show == config.ShowWords {
				fmt.Fprintf(w, "%s %s\n", formatRect(word.Rect()), word.Text)
				continue
			}
			for _, c := range word.Characters {
				fmt.Fprintf(w, "%s %q %s %.4g\n", formatRect(c.Rect()), c.Text, c.FontFace.FamilyName(), c.FontFace.Size)
			}
		}
	}
	fmt.Fprintln(w)
}

func formatRect(r model.Rectangle) string {
	return fmt.Sprintf("(%g,%g %g,%g)", r.MinX, r.MinY, r.MaxX, r.MaxY)
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "pdfstruct\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}
