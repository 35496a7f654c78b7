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
	"bytes"
	"testing"

	"github.com/Ellipse0934/awkward-1.0/index"
)

func TestToJSONListOfRecords(t *testing.T) {
	xs := i64(1, 2, 3)
	ys := f64(1.5, 2.5, 3.5)
	rec := recordOf(t, []string{"x", "y"}, xs, ys)
	lo := listOffsetOf(t, []int64{0, 2, 3}, rec)

	var buf bytes.Buffer
	sink := NewWriterSink(&buf)
	if err := ToJSON(lo, sink); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got := buf.String()
	want := `[{"x":1,"y":1.5},{"x":2,"y":2.5}][{"x":3,"y":3.5}]`
	if got != want {
		t.Fatalf("ToJSON output = %q, want %q", got, want)
	}
}

func TestToJSONOptionEmitsNull(t *testing.T) {
	opt, err := NewIndexedOption(index.New([]int64{0, -1, 1}), i64(7, 8))
	if err != nil {
		t.Fatalf("NewIndexedOption: %v", err)
	}
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)
	if err := ToJSON(opt, sink); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if got, want := buf.String(), "7null8"; got != want {
		t.Fatalf("ToJSON output = %q, want %q", got, want)
	}
}

func TestToJSONNestedList(t *testing.T) {
	lo := listOffsetOf(t, []int64{0, 2, 2, 3}, i64(10, 20, 30))
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)
	if err := ToJSON(lo, sink); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if got, want := buf.String(), "[10,20][][30]"; got != want {
		t.Fatalf("ToJSON output = %q, want %q", got, want)
	}
}

func TestToJSONTupleFabricatesPositionalKeys(t *testing.T) {
	tup := recordOf(t, nil, i64(1), i64(2))
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)
	if err := ToJSON(tup, sink); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if got, want := buf.String(), `{"0":1,"1":2}`; got != want {
		t.Fatalf("ToJSON output = %q, want %q", got, want)
	}
}
