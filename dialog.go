// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dialog

import (
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/kont"
)

// dialogState couples one connection chain and one result chain.
// Values are immutable: every fluent operation copies the state with the
// extended chains. The executor, scheduler, hook, serial, close guard
// and root connection handle are shared across all values of a dialog.
type dialogState struct {
	serial Serial
	exec   Executor
	sched  Scheduler
	hook   Hook
	closed *atomix.Uint32

	// root is the resolved connection handle; conn is the head of the
	// connection chain, threading the same connection linearly.
	root   *Task[Connection]
	conn   *Task[Connection]
	result *Task[Result]
}

// Empty is a dialog that has issued no request yet.
type Empty struct{ s dialogState }

// Single is a dialog with exactly one pending response.
type Single struct{ s dialogState }

// Sequence is a dialog with an ordered sequence of pending responses.
type Sequence struct{ s dialogState }

// New starts a dialog on a connection resolved from the registry.
// Resolution runs asynchronously on the dialog executor; the returned
// Empty dialog is usable immediately.
func New(reg Registry, host string, port uint16, endpoint string, opts ...Option) Empty {
	s := dialogState{
		serial: nextSerial(),
		exec:   defaultExecutor,
		sched:  defaultScheduler,
		closed: new(atomix.Uint32),
	}
	for _, opt := range opts {
		opt(&s)
	}
	root := NewTask[Connection](s.exec)
	s.exec.Execute(func() {
		c, err := reg.Resolve(host, port, endpoint)
		if err != nil {
			root.Fail(err)
			return
		}
		root.Complete(c)
	})
	s.root = root
	s.conn = root
	s.result = settledTask(s.exec, Result{})
	return Empty{s: s}
}

func (s dialogState) emit(kind EventKind, target string) {
	if s.hook != nil {
		s.hook(Event{Serial: s.serial, Kind: kind, Target: target})
	}
}

// send appends an issue step to the connection chain and the matching
// combine step to the result chain. The connection step settles as soon
// as the request has been issued, not when its response arrives, so
// adjacent sends pipeline.
func (s dialogState) send(req *Request) dialogState {
	pending := NewTask[*Response](s.exec)
	conn := bindTask(s.conn, func(c Connection) *Task[Connection] {
		s.emit(EventIssue, req.Target)
		pending.completeWith(c.Send(req))
		return settledTask(s.exec, c)
	})
	forwardFailure(s.conn, pending)
	result := bindTask(s.result, func(cur Result) *Task[Result] {
		return mapTask(pending, func(resp *Response) Result { return appendOne(cur, resp) })
	})
	s.conn, s.result = conn, result
	return s
}

// sendBatch issues the requests back-to-back as one pipelined batch and
// appends their responses to the result as an ordered sequence.
func (s dialogState) sendBatch(reqs []*Request) dialogState {
	pending := NewTask[[]*Response](s.exec)
	conn := bindTask(s.conn, func(c Connection) *Task[Connection] {
		handles := make([]*Task[*Response], len(reqs))
		for i, req := range reqs {
			s.emit(EventIssue, req.Target)
			handles[i] = c.Send(req)
		}
		pending.completeWith(gatherTasks(s.exec, handles))
		return settledTask(s.exec, c)
	})
	forwardFailure(s.conn, pending)
	result := bindTask(s.result, func(cur Result) *Task[Result] {
		return mapTask(pending, func(batch []*Response) Result { return appendBatch(cur, batch) })
	})
	s.conn, s.result = conn, result
	return s
}

// awaitPending defers the connection chain on the current result chain
// value: every send appended afterwards waits for all prior responses.
func (s dialogState) awaitPending() dialogState {
	prev := s.result
	s.conn = bindTask(s.conn, func(c Connection) *Task[Connection] {
		s.emit(EventAwait, "")
		return mapTask(prev, func(Result) Connection { return c })
	})
	return s
}

// idle defers the connection chain on the scheduler for d. Pending
// responses are not waited on.
func (s dialogState) idle(d time.Duration) dialogState {
	s.conn = bindTask(s.conn, func(c Connection) *Task[Connection] {
		s.emit(EventIdle, "")
		t := NewTask[Connection](s.exec)
		s.sched.ScheduleOnce(d, func() { t.Complete(c) })
		return t
	})
	return s
}

// finish drains the result chain. Once it settles, successfully or not,
// the terminal connection handle is awaited and the connection closed
// exactly once; the returned handle settles strictly after the close.
// The close is fire-and-forget: its error is not folded into the result.
func (s dialogState) finish() *Task[Result] {
	final := NewTask[Result](s.exec)
	s.result.onSettle(func(out kont.Either[error, Result]) {
		s.conn.onSettle(func(kont.Either[error, Connection]) {
			s.root.onSettle(func(ro kont.Either[error, Connection]) {
				if c, ok := ro.GetRight(); ok && s.closed.Add(1) == 1 {
					s.emit(EventClose, "")
					_ = c.Close()
				}
				final.settle(out)
			})
		})
	})
	return final
}

// Send issues the request. The dialog advances to a single pending
// response.
func (d Empty) Send(req *Request) Single { return Single{s: d.s.send(req)} }

// SendBatch issues the requests as one pipelined batch.
func (d Empty) SendBatch(reqs ...*Request) Sequence { return Sequence{s: d.s.sendBatch(reqs)} }

// SendChunked issues the request as a chunked exchange driven by the
// chunker. The response accumulates exactly like a plain send's.
func (d Empty) SendChunked(req *Request, chunker Chunker) Single {
	return Single{s: d.s.sendChunked(req, chunker)}
}

// WaitIdle keeps the connection idle for d before the next step.
func (d Empty) WaitIdle(idle time.Duration) Empty { return Empty{s: d.s.idle(idle)} }

// End settles to the empty accumulated result after the connection has
// been closed.
func (d Empty) End() *Task[Result] { return d.s.finish() }

// Send pipelines another request after the pending one.
func (d Single) Send(req *Request) Sequence { return Sequence{s: d.s.send(req)} }

// SendBatch pipelines a batch of requests after the pending one.
func (d Single) SendBatch(reqs ...*Request) Sequence { return Sequence{s: d.s.sendBatch(reqs)} }

// SendChunked appends a chunked exchange after the pending response.
func (d Single) SendChunked(req *Request, chunker Chunker) Sequence {
	return Sequence{s: d.s.sendChunked(req, chunker)}
}

// Reply waits for the pending response, derives a follow-up request
// from it and issues that. Only a dialog with exactly one pending
// response can reply; on Empty and Sequence dialogs the operation does
// not exist.
func (d Single) Reply(f func(*Response) *Request) Sequence {
	s := d.s
	prev := s.result
	pending := NewTask[*Response](s.exec)
	conn := bindTask(s.conn, func(c Connection) *Task[Connection] {
		return mapTask(prev, func(cur Result) Connection {
			resp, _ := cur.Response()
			req := f(resp)
			s.emit(EventIssue, req.Target)
			pending.completeWith(c.Send(req))
			return c
		})
	})
	forwardFailure(s.conn, pending)
	forwardFailure(prev, pending)
	result := bindTask(prev, func(cur Result) *Task[Result] {
		return mapTask(pending, func(resp *Response) Result { return appendOne(cur, resp) })
	})
	s.conn, s.result = conn, result
	return Sequence{s: s}
}

// AwaitResponse turns off pipelining: the next step waits for the
// pending response first.
func (d Single) AwaitResponse() Single { return Single{s: d.s.awaitPending()} }

// WaitIdle keeps the connection idle for d before the next step.
func (d Single) WaitIdle(idle time.Duration) Single { return Single{s: d.s.idle(idle)} }

// End settles to the single response after the connection has been
// closed.
func (d Single) End() *Task[*Response] {
	return mapTask(d.s.finish(), func(r Result) *Response {
		resp, _ := r.Response()
		return resp
	})
}

// Send pipelines another request after the pending ones.
func (d Sequence) Send(req *Request) Sequence { return Sequence{s: d.s.send(req)} }

// SendBatch pipelines a batch of requests after the pending ones.
func (d Sequence) SendBatch(reqs ...*Request) Sequence { return Sequence{s: d.s.sendBatch(reqs)} }

// SendChunked appends a chunked exchange after the pending responses.
func (d Sequence) SendChunked(req *Request, chunker Chunker) Sequence {
	return Sequence{s: d.s.sendChunked(req, chunker)}
}

// AwaitResponse turns off pipelining: the next step waits for all
// pending responses first.
func (d Sequence) AwaitResponse() Sequence { return Sequence{s: d.s.awaitPending()} }

// WaitIdle keeps the connection idle for d before the next step.
func (d Sequence) WaitIdle(idle time.Duration) Sequence { return Sequence{s: d.s.idle(idle)} }

// End settles to the ordered responses after the connection has been
// closed.
func (d Sequence) End() *Task[[]*Response] {
	return mapTask(d.s.finish(), func(r Result) []*Response { return r.Responses() })
}
