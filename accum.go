// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dialog

// Kind tags the accumulated-result variant. The variant only ever grows
// in cardinality (Empty → Single → Sequence) as sends are appended.
type Kind uint8

const (
	// KindEmpty — no request has been issued.
	KindEmpty Kind = iota
	// KindSingle — exactly one response accumulated.
	KindSingle
	// KindSequence — an ordered sequence of responses.
	KindSequence
)

// Result is the accumulated outcome of a dialog: a tagged union over
// {empty, single response, ordered responses}. The zero value is the
// empty result.
type Result struct {
	kind      Kind
	responses []*Response
}

// Kind returns the variant tag.
func (r Result) Kind() Kind { return r.kind }

// Response returns the single accumulated response. The second return
// is false unless the variant is KindSingle.
func (r Result) Response() (*Response, bool) {
	if r.kind != KindSingle {
		return nil, false
	}
	return r.responses[0], true
}

// Responses returns the accumulated responses in request-issue order.
func (r Result) Responses() []*Response {
	return append([]*Response(nil), r.responses...)
}

// appendOne combines one newly arrived response with the current result.
// Total over the variant set: Empty → Single, Single and Sequence grow
// into Sequence.
func appendOne(cur Result, resp *Response) Result {
	switch cur.kind {
	case KindEmpty:
		return Result{kind: KindSingle, responses: []*Response{resp}}
	case KindSingle, KindSequence:
		rs := make([]*Response, 0, len(cur.responses)+1)
		rs = append(rs, cur.responses...)
		rs = append(rs, resp)
		return Result{kind: KindSequence, responses: rs}
	default:
		panic("dialog: invalid result kind")
	}
}

// appendBatch combines an ordered batch of responses with the current
// result. Total over the variant set: every combination yields a
// Sequence, existing responses first, batch order preserved.
func appendBatch(cur Result, batch []*Response) Result {
	switch cur.kind {
	case KindEmpty, KindSingle, KindSequence:
		rs := make([]*Response, 0, len(cur.responses)+len(batch))
		rs = append(rs, cur.responses...)
		rs = append(rs, batch...)
		return Result{kind: KindSequence, responses: rs}
	default:
		panic("dialog: invalid result kind")
	}
}
