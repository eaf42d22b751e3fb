// Command fpinfo describes IEEE-754 bit patterns.
//
//	fpinfo -narrow 0x3f000000 0x477ff000
//	fpinfo -width 16 -format json 0x3c00
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	width     = flag.Uint("width", 32, "Width of the patterns in bits (32 or 16)")
	narrow    = flag.Bool("narrow", false, "Also narrow 32-bit patterns to half precision")
	maxLen    = flag.Int("max-len", 64, "Maximum length of a description")
	outFormat = flag.String("format", formatText, "Output format (text, json, cbor)")
	arrowPath = flag.String("arrow", "", "Also write the patterns as an Arrow IPC stream to this file")
	verbose   = flag.Bool("v", false, "Enable debug logging")
)

const (
	formatText = "text"
	formatJSON = "json"
	formatCBOR = "cbor"
)

type config struct {
	Width     uint
	Narrow    bool
	MaxLen    int
	Format    string
	ArrowPath string
}

func (c config) validate() error {
	if c.Width != 32 && c.Width != 16 {
		return fmt.Errorf("unsupported width %d", c.Width)
	}
	if c.Narrow && c.Width != 32 {
		return fmt.Errorf("only 32-bit patterns can be narrowed")
	}
	if c.MaxLen < 0 {
		return fmt.Errorf("negative max-len %d", c.MaxLen)
	}
	switch c.Format {
	case formatText, formatJSON, formatCBOR:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	return nil
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := config{
		Width:     *width,
		Narrow:    *narrow,
		MaxLen:    *maxLen,
		Format:    *outFormat,
		ArrowPath: *arrowPath,
	}
	if err := cfg.validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid flags")
	}
	if flag.NArg() == 0 {
		log.Fatal().Msg("No patterns given")
	}

	if err := run(cfg, flag.Args(), os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("Failed to describe patterns")
	}
}
