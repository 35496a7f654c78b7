// Copyright (C) 2024 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package content

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"strconv"

	"github.com/Ellipse0934/awkward-1.0/index"
)

// Sink is the upward JSON interface spec §6.2 names (treated there as
// an external collaborator): every node's tojson_part call drives one
// of these methods per element instead of building an intermediate
// tree. Records fabricate string keys "0","1",... via Record.FieldName
// when recordlookup is absent, matching spec §6.2.
type Sink interface {
	BeginList()
	EndList()
	BeginRecord()
	EndRecord()
	Field(key string)
	Null()
	Bool(b bool)
	Int64(v int64)
	Float64(v float64)
}

// ToJSON drives sink with c's contents in row order by dispatching
// tojson_part across every row of c.
func ToJSON(c Content, sink Sink) error {
	for i := 0; i < c.Length(); i++ {
		if err := tojsonPart(c, i, sink); err != nil {
			return err
		}
	}
	return nil
}

// tojsonPart emits the single logical element at row i of c, per
// variant, mirroring how each awkward array class implements its own
// tojson_part rather than a single central switch over leaf bytes.
func tojsonPart(c Content, i int, sink Sink) error {
	switch n := c.(type) {
	case *Empty:
		return unsupportedf(n.kind(), "tojson_part: EmptyArray has no elements")
	case *Numpy:
		return emitNumpyScalar(n.buf, i, sink)
	case *Record:
		sink.BeginRecord()
		for f := 0; f < n.numFields(); f++ {
			sink.Field(n.FieldName(f))
			if err := tojsonPart(n.trimmedField(f), i, sink); err != nil {
				return err
			}
		}
		sink.EndRecord()
		return nil
	case *Union:
		tag := n.tags.Get(i)
		pos := n.idx.Get(i)
		return tojsonPart(n.contents[tag], int(pos), sink)
	default:
		if ol, ok := asOptionLayer(c); ok {
			idx := ol.optionIndex64()
			pos := idx.Get(i)
			if pos < 0 {
				sink.Null()
				return nil
			}
			return tojsonPart(ol.optionContent(), int(pos), sink)
		}
		if ll, ok := c.(listLike); ok {
			offs := ll.listOffsets()
			s, e := offs.Get(i), offs.Get(i+1)
			child := ll.listChild()
			sink.BeginList()
			for k := s; k < e; k++ {
				if err := tojsonPart(child, int(k), sink); err != nil {
					return err
				}
			}
			sink.EndList()
			return nil
		}
		if il, ok := c.(indexedLayer); ok {
			pos := il.indexValues().Get(i)
			return tojsonPart(il.indexedChild(), int(pos), sink)
		}
		return unsupportedf(c.kind(), "tojson_part: no rule for this variant")
	}
}

// emitNumpyScalar reads element i of buf and emits it as a JSON
// scalar. Multi-dimensional buffers (inner shape beyond the outer
// node axis) are out of scope for the JSON sink, matching spec §1's
// exclusion of tensor materialization.
func emitNumpyScalar(buf index.Numeric, i int, sink Sink) error {
	if len(buf.Shape) > 1 {
		return unsupportedf("NumpyArray", "tojson_part: multidimensional buffers are not supported")
	}
	itemsize := buf.Type.ItemSize()
	row := buf.Bytes()
	off := i * itemsize
	b := row[off : off+itemsize]
	switch buf.Type {
	case index.Bool:
		sink.Bool(b[0] != 0)
	case index.Int8:
		sink.Int64(int64(int8(b[0])))
	case index.Uint8:
		sink.Int64(int64(b[0]))
	case index.Int32:
		sink.Int64(int64(int32(binary.LittleEndian.Uint32(b))))
	case index.Int64:
		sink.Int64(int64(binary.LittleEndian.Uint64(b)))
	case index.Float32:
		sink.Float64(float64(math.Float32frombits(binary.LittleEndian.Uint32(b))))
	case index.Float64:
		sink.Float64(math.Float64frombits(binary.LittleEndian.Uint64(b)))
	default:
		sink.Null()
	}
	return nil
}

// writerSink is the default Sink, writing compact JSON text directly
// to a byte stream the way ion/reader.go's toJSON writes straight
// into a jswriter without building an intermediate value.
type writerSink struct {
	w        *bufio.Writer
	needComma []bool
	needColon bool
}

// NewWriterSink wraps w as a Sink that emits compact JSON text;
// consecutive top-level values are written back to back with no
// separator between them.
func NewWriterSink(w io.Writer) Sink {
	return &writerSink{w: bufio.NewWriter(w)}
}

func (s *writerSink) top() int { return len(s.needComma) - 1 }

func (s *writerSink) beforeValue() {
	t := s.top()
	if t < 0 {
		return
	}
	if s.needColon {
		s.w.WriteByte(':')
		s.needColon = false
		return
	}
	if s.needComma[t] {
		s.w.WriteByte(',')
	}
	s.needComma[t] = true
}

func (s *writerSink) BeginList() {
	s.beforeValue()
	s.w.WriteByte('[')
	s.needComma = append(s.needComma, false)
}

func (s *writerSink) EndList() {
	s.needComma = s.needComma[:len(s.needComma)-1]
	s.w.WriteByte(']')
	s.w.Flush()
}

func (s *writerSink) BeginRecord() {
	s.beforeValue()
	s.w.WriteByte('{')
	s.needComma = append(s.needComma, false)
}

func (s *writerSink) EndRecord() {
	s.needComma = s.needComma[:len(s.needComma)-1]
	s.w.WriteByte('}')
	s.w.Flush()
}

func (s *writerSink) Field(key string) {
	t := s.top()
	if s.needComma[t] {
		s.w.WriteByte(',')
	}
	s.needComma[t] = true
	s.w.WriteString(strconv.Quote(key))
	s.needColon = true
}

// flushIfTop flushes after a value emitted with no enclosing list or
// record still open, since nothing else will trigger a Flush before
// ToJSON's caller reads the underlying writer.
func (s *writerSink) flushIfTop() {
	if s.top() < 0 {
		s.w.Flush()
	}
}

func (s *writerSink) Null()         { s.beforeValue(); s.w.WriteString("null"); s.flushIfTop() }
func (s *writerSink) Bool(b bool)   { s.beforeValue(); s.w.WriteString(strconv.FormatBool(b)); s.flushIfTop() }
func (s *writerSink) Int64(v int64) { s.beforeValue(); s.w.WriteString(strconv.FormatInt(v, 10)); s.flushIfTop() }
func (s *writerSink) Float64(v float64) {
	s.beforeValue()
	s.w.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	s.flushIfTop()
}
