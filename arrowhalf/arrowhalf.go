// Package arrowhalf applies the fpbits codec to Apache Arrow columns.
package arrowhalf

import (
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/float16"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/avdva/fpbits"
)

// ErrUnsupportedType is returned for arrays, which are neither float32 nor float16.
var ErrUnsupportedType = errors.New("unsupported array type")

// NarrowArray converts every valid element of arr to half precision with fpbits.Narrow.
// Nulls stay null.
func NarrowArray(mem memory.Allocator, arr *array.Float32) *array.Float16 {
	b := array.NewFloat16Builder(mem)
	defer b.Release()

	b.Reserve(arr.Len())
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			b.AppendNull()
			continue
		}
		b.Append(float16.FromBits(fpbits.Narrow(fpbits.Float32Bits(arr.Value(i)))))
	}
	return b.NewFloat16Array()
}

// InfoArray describes every valid element of a float32 or float16 array,
// using at most maxLen bytes per element. Nulls stay null.
func InfoArray(mem memory.Allocator, arr arrow.Array, maxLen int) (*array.String, error) {
	var decode func(i int) string
	switch a := arr.(type) {
	case *array.Float32:
		decode = func(i int) string {
			return fpbits.Decode(fpbits.Float32Bits(a.Value(i)), maxLen)
		}
	case *array.Float16:
		decode = func(i int) string {
			return fpbits.Decode16(a.Value(i).Uint16(), maxLen)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, arr.DataType())
	}

	b := array.NewStringBuilder(mem)
	defer b.Release()

	b.Reserve(arr.Len())
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			b.AppendNull()
			continue
		}
		b.Append(decode(i))
	}
	return b.NewStringArray(), nil
}

// NarrowRecord returns a record, where each top-level float32 column of rec
// is replaced with its half precision version. Other columns are shared with rec.
// The caller must release the result.
func NarrowRecord(mem memory.Allocator, rec arrow.RecordBatch) arrow.RecordBatch {
	schema := rec.Schema()
	fields := make([]arrow.Field, 0, len(schema.Fields()))
	cols := make([]arrow.Array, 0, len(schema.Fields()))
	defer func() {
		for _, col := range cols {
			col.Release()
		}
	}()

	for i, field := range schema.Fields() {
		col := rec.Column(i)
		if f32, ok := col.(*array.Float32); ok {
			field.Type = arrow.FixedWidthTypes.Float16
			cols = append(cols, NarrowArray(mem, f32))
		} else {
			col.Retain()
			cols = append(cols, col)
		}
		fields = append(fields, field)
	}

	md := schema.Metadata()
	return array.NewRecordBatch(arrow.NewSchema(fields, &md), cols, rec.NumRows())
}
