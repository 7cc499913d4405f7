// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dialog

import "code.hybscloud.com/kont"

// sendChunked appends a chunked exchange: the request is started on the
// connection, the caller's chunker streams the body on the executor, and
// the eventual response accumulates exactly like a plain send's.
//
// The connection chain advances when the chunker has finished emitting
// the body, not when the response arrives — a later send never waits on
// the chunked response, but no pipelined send can interleave with body
// streaming either. A chunker error fails both the exchange's response
// and the connection chain.
func (s dialogState) sendChunked(req *Request, chunker Chunker) dialogState {
	pending := NewTask[*Response](s.exec)
	conn := bindTask(s.conn, func(c Connection) *Task[Connection] {
		s.emit(EventIssue, req.Target)
		cr, err := c.StartChunked(req)
		if err != nil {
			pending.settle(kont.Left[error, *Response](err))
			return failedTask[Connection](s.exec, err)
		}
		pending.completeWith(cr.Response())
		next := NewTask[Connection](s.exec)
		s.exec.Execute(func() {
			if err := chunker(cr); err != nil {
				pending.settle(kont.Left[error, *Response](err))
				next.Fail(err)
				return
			}
			next.Complete(c)
		})
		return next
	})
	forwardFailure(s.conn, pending)
	result := bindTask(s.result, func(cur Result) *Task[Result] {
		return mapTask(pending, func(resp *Response) Result { return appendOne(cur, resp) })
	})
	s.conn, s.result = conn, result
	return s
}
