package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/float16"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog/log"

	"github.com/avdva/fpbits"
	"github.com/avdva/fpbits/arrowhalf"
)

type report struct {
	Bits     string `json:"bits" cbor:"bits"`
	Width    uint   `json:"width" cbor:"width"`
	Class    string `json:"class" cbor:"class"`
	Info     string `json:"info" cbor:"info"`
	Half     string `json:"half,omitempty" cbor:"half,omitempty"`
	HalfInfo string `json:"half_info,omitempty" cbor:"half_info,omitempty"`
}

func run(cfg config, args []string, w io.Writer) error {
	patterns, err := parsePatterns(args, cfg.Width)
	if err != nil {
		return err
	}
	reports := buildReports(cfg, patterns)
	if err := writeReports(w, cfg.Format, reports); err != nil {
		return fmt.Errorf("writing reports: %w", err)
	}
	if cfg.ArrowPath != "" {
		if err := writeArrowFile(cfg, patterns); err != nil {
			return fmt.Errorf("writing arrow stream: %w", err)
		}
		log.Info().Str("path", cfg.ArrowPath).Int("rows", len(patterns)).Msg("Arrow stream written")
	}
	return nil
}

// parsePatterns parses unsigned integers in Go syntax, like 0x3c00, 0b1010, or 15360.
func parsePatterns(args []string, width uint) ([]uint32, error) {
	patterns := make([]uint32, 0, len(args))
	for _, arg := range args {
		u, err := strconv.ParseUint(arg, 0, int(width))
		if err != nil {
			return nil, fmt.Errorf("bad %d-bit pattern %q: %w", width, arg, err)
		}
		patterns = append(patterns, uint32(u))
	}
	return patterns, nil
}

func formatBits(bits uint32, width uint) string {
	return fmt.Sprintf("0x%0*x", int(width/4), bits)
}

func buildReports(cfg config, patterns []uint32) []report {
	f := fpbits.Binary32
	if cfg.Width == 16 {
		f = fpbits.Binary16
	}
	reports := make([]report, 0, len(patterns))
	for _, p := range patterns {
		d := fpbits.Decompose(f, p)
		r := report{
			Bits:  formatBits(p, f.Width),
			Width: f.Width,
			Class: d.Class().String(),
			Info:  fpbits.Decode(p, cfg.MaxLen),
		}
		if f == fpbits.Binary16 {
			r.Info = fpbits.Decode16(uint16(p), cfg.MaxLen)
		}
		if cfg.Narrow {
			h := fpbits.Narrow(p)
			r.Half = formatBits(uint32(h), fpbits.Binary16.Width)
			r.HalfInfo = fpbits.Decode16(h, cfg.MaxLen)
		}
		log.Debug().Str("bits", r.Bits).Str("class", r.Class).Int("len", fpbits.InfoLen(d)).Msg("Pattern decoded")
		reports = append(reports, r)
	}
	return reports
}

func writeReports(w io.Writer, format string, reports []report) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		for _, r := range reports {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	case formatCBOR:
		return cbor.NewEncoder(w).Encode(reports)
	default:
		for _, r := range reports {
			line := r.Bits + " " + r.Class + " " + r.Info
			if r.Half != "" {
				line += " -> " + r.Half + " " + r.HalfInfo
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}
}

func writeArrowFile(cfg config, patterns []uint32) (err error) {
	f, err := os.Create(cfg.ArrowPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return writeArrow(f, memory.NewGoAllocator(), cfg, patterns)
}

// writeArrow writes a single record with a value column, its description,
// and, if narrowing is enabled, the half precision value with its description.
func writeArrow(w io.Writer, mem memory.Allocator, cfg config, patterns []uint32) error {
	values := newValueArray(mem, cfg.Width, patterns)
	defer values.Release()

	fields := []arrow.Field{{Name: "value", Type: values.DataType()}, {Name: "info", Type: arrow.BinaryTypes.String}}
	cols := []arrow.Array{values}

	info, err := arrowhalf.InfoArray(mem, values, cfg.MaxLen)
	if err != nil {
		return err
	}
	defer info.Release()
	cols = append(cols, info)

	if f32, ok := values.(*array.Float32); ok && cfg.Narrow {
		halves := arrowhalf.NarrowArray(mem, f32)
		defer halves.Release()
		halfInfo, err := arrowhalf.InfoArray(mem, halves, cfg.MaxLen)
		if err != nil {
			return err
		}
		defer halfInfo.Release()
		fields = append(fields,
			arrow.Field{Name: "half", Type: halves.DataType()},
			arrow.Field{Name: "half_info", Type: arrow.BinaryTypes.String})
		cols = append(cols, halves, halfInfo)
	}

	schema := arrow.NewSchema(fields, nil)
	rec := array.NewRecordBatch(schema, cols, int64(len(patterns)))
	defer rec.Release()

	iw := ipc.NewWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err := iw.Write(rec); err != nil {
		_ = iw.Close()
		return err
	}
	return iw.Close()
}

func newValueArray(mem memory.Allocator, width uint, patterns []uint32) arrow.Array {
	if width == 16 {
		b := array.NewFloat16Builder(mem)
		defer b.Release()
		for _, p := range patterns {
			b.Append(float16.FromBits(uint16(p)))
		}
		return b.NewArray()
	}
	b := array.NewFloat32Builder(mem)
	defer b.Release()
	for _, p := range patterns {
		b.Append(fpbits.Float32FromBits(p))
	}
	return b.NewArray()
}
