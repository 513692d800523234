package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tsawler/pdfstruct/layout"
)

const (
	// EnvPrefix prefixes the environment variables read by Load
	EnvPrefix = "PDFSTRUCT"

	// Output modes
	ShowBlocks = "blocks"
	ShowLines  = "lines"
	ShowWords  = "words"
	ShowChars  = "chars"
	ShowText   = "text"

	DefaultLogLevel = "warn"
	DefaultShow     = ShowBlocks
)

// ErrHelp is returned by Load when usage was requested
var ErrHelp = pflag.ErrHelp

// Config holds the command-line configuration
type Config struct {
	// Input is the PDF file to read
	Input string

	// Pages is a page selection such as "1-3,7"; empty means all pages
	Pages string

	LogLevel string
	Show     string

	// ValidateFile runs a structural check of the file before reading it
	ValidateFile bool

	WordGap   float64
	ColumnGap float64
	AreaGap   float64
	Tolerance float64
	Precision int
}

// DefaultConfig returns a configuration with the layout defaults
func DefaultConfig() *Config {
	l := layout.DefaultConfig()
	return &Config{
		LogLevel:  DefaultLogLevel,
		Show:      DefaultShow,
		WordGap:   l.WordGapFactor,
		ColumnGap: l.ColumnGapFactor,
		AreaGap:   l.AreaGapFactor,
		Tolerance: l.Tolerance,
		Precision: l.Precision,
	}
}

// Load parses args (without the program name) and the PDFSTRUCT_*
// environment. Flags take precedence over the environment.
func Load(args []string, usage io.Writer) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setupViperEnvironment(v, cfg)
	flags := defineCommandLineFlags(cfg)
	setupUsageMessage(flags, usage)
	bindFlagsToViper(v, flags)

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	populateConfigFromViper(v, cfg)

	if flags.NArg() > 0 {
		cfg.Input = flags.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setupViperEnvironment(v *viper.Viper, cfg *Config) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("pages", cfg.Pages)
	v.SetDefault("loglevel", cfg.LogLevel)
	v.SetDefault("show", cfg.Show)
	v.SetDefault("validate", cfg.ValidateFile)
	v.SetDefault("word-gap", cfg.WordGap)
	v.SetDefault("column-gap", cfg.ColumnGap)
	v.SetDefault("area-gap", cfg.AreaGap)
	v.SetDefault("tolerance", cfg.Tolerance)
	v.SetDefault("precision", cfg.Precision)
}

func defineCommandLineFlags(cfg *Config) *pflag.FlagSet {
	flags := pflag.NewFlagSet("pdfstruct", pflag.ContinueOnError)
	flags.String("pages", cfg.Pages, "Pages to process, e.g. 1-3,7 (default all)")
	flags.String("loglevel", cfg.LogLevel, "Log level (trace, debug, info, warn, error)")
	flags.String("show", cfg.Show, "Output: blocks, lines, words, chars or text")
	flags.Bool("validate", cfg.ValidateFile, "Check the file structure before reading it")
	flags.Float64("word-gap", cfg.WordGap, "Word gap as a fraction of the font size")
	flags.Float64("column-gap", cfg.ColumnGap, "Minimum column gap in character widths")
	flags.Float64("area-gap", cfg.AreaGap, "Minimum area gap in character heights")
	flags.Float64("tolerance", cfg.Tolerance, "Slack of the block rules, in points")
	flags.Int("precision", cfg.Precision, "Decimals kept in coordinates")
	return flags
}

func bindFlagsToViper(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})
}

func setupUsageMessage(flags *pflag.FlagSet, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	flags.SetOutput(w)
	flags.Usage = func() {
		fmt.Fprintf(w, "Usage: pdfstruct [options] file.pdf\n\n")
		fmt.Fprintf(w, "Prints the text blocks, lines and words reconstructed from a PDF.\n\n")
		fmt.Fprintf(w, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(w, "\nEnvironment Variables:\n")
		fmt.Fprintf(w, "  %s_PAGES, %s_LOGLEVEL, %s_SHOW, %s_WORD_GAP, ...\n",
			EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix)
	}
}

func populateConfigFromViper(v *viper.Viper, cfg *Config) {
	cfg.Pages = v.GetString("pages")
	cfg.LogLevel = strings.ToLower(v.GetString("loglevel"))
	cfg.Show = strings.ToLower(v.GetString("show"))
	cfg.ValidateFile = v.GetBool("validate")
	cfg.WordGap = v.GetFloat64("word-gap")
	cfg.ColumnGap = v.GetFloat64("column-gap")
	cfg.AreaGap = v.GetFloat64("area-gap")
	cfg.Tolerance = v.GetFloat64("tolerance")
	cfg.Precision = v.GetInt("precision")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("no input file")
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("invalid log level: %s (must be one of: trace, debug, info, warn, error)", c.LogLevel)
	}
	switch c.Show {
	case ShowBlocks, ShowLines, ShowWords, ShowChars, ShowText:
	default:
		return fmt.Errorf("invalid output: %s (must be one of: blocks, lines, words, chars, text)", c.Show)
	}
	if c.WordGap <= 0 || c.ColumnGap <= 0 || c.AreaGap <= 0 {
		return errors.New("gap factors must be positive")
	}
	if c.Tolerance < 0 {
		return errors.New("tolerance cannot be negative")
	}
	if c.Precision < 0 || c.Precision > 6 {
		return errors.New("precision must be between 0 and 6")
	}
	if _, err := ParsePages(c.Pages); err != nil {
		return err
	}
	return nil
}

// levelTrace matches the interpreter's trace level
const levelTrace = slog.Level(-8)

var logLevels = map[string]slog.Level{
	"trace": levelTrace,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// SlogLevel returns the configured log level
func (c *Config) SlogLevel() slog.Level {
	if l, ok := logLevels[c.LogLevel]; ok {
		return l
	}
	return slog.LevelWarn
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.SlogLevel() <= slog.LevelDebug
}

// LayoutConfig returns the tokenizer thresholds
func (c *Config) LayoutConfig() layout.Config {
	l := layout.DefaultConfig()
	l.WordGapFactor = c.WordGap
	l.ColumnGapFactor = c.ColumnGap
	l.AreaGapFactor = c.AreaGap
	l.Tolerance = c.Tolerance
	l.Precision = c.Precision
	return l
}

// PageNumbers returns the selected pages, nil for all
func (c *Config) PageNumbers() []int {
	pages, _ := ParsePages(c.Pages)
	return pages
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Input: %s, Pages: %q, LogLevel: %s, Show: %s, WordGap: %g, ColumnGap: %g, AreaGap: %g}",
		c.Input, c.Pages, c.LogLevel, c.Show, c.WordGap, c.ColumnGap, c.AreaGap)
}

// maxPageRange bounds a single range of a page selection
const maxPageRange = 100000

// ParsePages parses a selection of 1-indexed pages and inclusive ranges
// separated by commas, e.g. "1-3,7". The result is sorted without
// duplicates. An empty selection returns nil.
func ParsePages(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	seen := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")
		first, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid page %q", part)
		}
		last := first
		if isRange {
			if last, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
		}
		if first < 1 || last < first || last-first > maxPageRange {
			return nil, fmt.Errorf("invalid page range %q", part)
		}
		for p := first; p <= last; p++ {
			seen[p] = true
		}
	}
	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages, nil
}
