// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dialog

import (
	"testing"
	"testing/quick"
)

func respN(n int) *Response { return &Response{StatusCode: n} }

func TestAccumulatorTable(t *testing.T) {
	r1, r2, r3 := respN(1), respN(2), respN(3)
	empty := Result{}
	single := appendOne(empty, r1)
	sequence := appendBatch(empty, []*Response{r1, r2})

	cases := []struct {
		name     string
		got      Result
		wantKind Kind
		want     []*Response
	}{
		{"empty+one", appendOne(empty, r2), KindSingle, []*Response{r2}},
		{"single+one", appendOne(single, r2), KindSequence, []*Response{r1, r2}},
		{"sequence+one", appendOne(sequence, r3), KindSequence, []*Response{r1, r2, r3}},
		{"empty+batch", appendBatch(empty, []*Response{r2, r3}), KindSequence, []*Response{r2, r3}},
		{"single+batch", appendBatch(single, []*Response{r2, r3}), KindSequence, []*Response{r1, r2, r3}},
		{"sequence+batch", appendBatch(sequence, []*Response{r3}), KindSequence, []*Response{r1, r2, r3}},
	}
	for _, tc := range cases {
		if tc.got.Kind() != tc.wantKind {
			t.Fatalf("%s: kind got %d, want %d", tc.name, tc.got.Kind(), tc.wantKind)
		}
		rs := tc.got.Responses()
		if len(rs) != len(tc.want) {
			t.Fatalf("%s: length got %d, want %d", tc.name, len(rs), len(tc.want))
		}
		for i := range rs {
			if rs[i] != tc.want[i] {
				t.Fatalf("%s: response %d out of order", tc.name, i)
			}
		}
	}
}

func TestAccumulatorDoesNotAliasInput(t *testing.T) {
	base := appendBatch(Result{}, []*Response{respN(1), respN(2)})
	grown1 := appendOne(base, respN(3))
	grown2 := appendOne(base, respN(4))

	if base.Responses()[1].StatusCode != 2 {
		t.Fatal("base mutated by append")
	}
	if grown1.Responses()[2].StatusCode != 3 || grown2.Responses()[2].StatusCode != 4 {
		t.Fatal("appends share backing storage")
	}
}

// TestPropertyAccumulatorTotal proves that any arbitrary arrival
// sequence of single responses and batches yields a defined variant,
// the variant never shrinks, and the final ordering is exactly the
// flattened arrival order.
func TestPropertyAccumulatorTotal(t *testing.T) {
	propertyTotal := func(arrivals []uint8) bool {
		cur := Result{}
		var want []*Response
		n := 0
		for _, a := range arrivals {
			prev := cur.Kind()
			if a%2 == 0 {
				r := respN(n)
				n++
				cur = appendOne(cur, r)
				want = append(want, r)
			} else {
				batch := make([]*Response, int(a%4))
				for i := range batch {
					batch[i] = respN(n)
					n++
				}
				cur = appendBatch(cur, batch)
				want = append(want, batch...)
			}
			if cur.Kind() < prev {
				return false
			}
		}
		got := cur.Responses()
		if len(got) != len(want) {
			return false
		}
		for i := range got {
			if got[i] != want[i] {
				return false
			}
		}
		return true
	}

	if err := quick.Check(propertyTotal, nil); err != nil {
		t.Error(err)
	}
}
