// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dialog

import (
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// exchangeCapacity bounds the per-connection exchange queue. 16 leaves
// headroom for pipelined bursts while keeping the ring buffer small.
const exchangeCapacity = 16

// EchoHandler answers every request with status 200, reflecting the
// request headers and body. The default Loopback handler.
func EchoHandler(req *Request) (*Response, error) {
	return &Response{
		StatusCode: 200,
		Headers:    append([]Header(nil), req.Headers...),
		Body:       append([]byte(nil), req.Body...),
	}, nil
}

// Loopback is an in-memory Registry for tests and examples. Every
// Resolve creates a fresh LoopbackConn answered by the handler.
type Loopback struct {
	handler func(*Request) (*Response, error)

	mu    sync.Mutex
	conns []*LoopbackConn
}

// NewLoopback creates a loopback registry. A nil handler selects
// EchoHandler.
func NewLoopback(handler func(*Request) (*Response, error)) *Loopback {
	if handler == nil {
		handler = EchoHandler
	}
	return &Loopback{handler: handler}
}

// Resolve implements Registry.
func (l *Loopback) Resolve(host string, port uint16, endpoint string) (Connection, error) {
	c := newLoopbackConn(l.handler)
	l.mu.Lock()
	l.conns = append(l.conns, c)
	l.mu.Unlock()
	return c, nil
}

// Conns returns every connection resolved so far, in resolution order.
func (l *Loopback) Conns() []*LoopbackConn {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*LoopbackConn(nil), l.conns...)
}

// exchange is one issued request awaiting its response.
type exchange struct {
	req  *Request
	resp *Task[*Response]
}

// LoopbackConn is an in-memory Connection. Issued exchanges travel
// through a bounded SPSC queue to a serve goroutine that answers them
// strictly FIFO, so response order always matches issue order.
//
// The producer side is the dialog's connection chain, which is linear:
// each issue step happens-before the next, satisfying the queue's
// single-producer requirement.
type LoopbackConn struct {
	handler func(*Request) (*Response, error)

	exchQ lfq.SPSC[*exchange]
	slot  *exchange

	closed atomix.Uint32

	mu     sync.Mutex
	issued []*Request
}

func newLoopbackConn(handler func(*Request) (*Response, error)) *LoopbackConn {
	c := &LoopbackConn{handler: handler}
	c.exchQ.Init(exchangeCapacity)
	go c.serve()
	return c
}

// serve dequeues exchanges FIFO and settles each response before the
// next, backing off on an empty queue. Exits once the connection is
// closed and the queue drained.
func (c *LoopbackConn) serve() {
	var bo iox.Backoff
	for {
		ex, err := c.exchQ.Dequeue()
		if err != nil {
			if c.closed.Load() > 0 {
				return
			}
			bo.Wait()
			continue
		}
		bo.Reset()
		resp, herr := c.handler(ex.req)
		if herr != nil {
			ex.resp.Fail(herr)
			continue
		}
		ex.resp.Complete(resp)
	}
}

// enqueue blocks past queue-full boundaries with adaptive backoff.
func (c *LoopbackConn) enqueue(ex *exchange) {
	var bo iox.Backoff
	for {
		c.slot = ex
		if err := c.exchQ.Enqueue(&c.slot); err == nil {
			return
		}
		bo.Wait()
	}
}

// Send implements Connection. The request is recorded and queued
// immediately; the returned task settles when the handler has answered
// every earlier exchange and this one.
func (c *LoopbackConn) Send(req *Request) *Task[*Response] {
	t := NewTask[*Response](nil)
	if c.closed.Load() > 0 {
		t.Fail(ErrClosed)
		return t
	}
	c.mu.Lock()
	c.issued = append(c.issued, req)
	c.mu.Unlock()
	c.enqueue(&exchange{req: req, resp: t})
	return t
}

// StartChunked implements Connection. The exchange is recorded as
// issued now; it is queued for answering once the body is finished.
func (c *LoopbackConn) StartChunked(req *Request) (ChunkedRequester, error) {
	if c.closed.Load() > 0 {
		return nil, ErrClosed
	}
	c.mu.Lock()
	c.issued = append(c.issued, req)
	c.mu.Unlock()
	return &loopbackChunked{
		conn: c,
		req:  req,
		body: append([]byte(nil), req.Body...),
		resp: NewTask[*Response](nil),
	}, nil
}

// Close implements Connection. Every call is counted; calls after the
// first report ErrClosed.
func (c *LoopbackConn) Close() error {
	if c.closed.Add(1) > 1 {
		return ErrClosed
	}
	return nil
}

// Closes returns how many times Close has been called.
func (c *LoopbackConn) Closes() uint32 { return c.closed.Load() }

// Issued returns the requests issued so far, in issue order. Chunked
// exchanges are recorded when started, with the initial request value.
func (c *LoopbackConn) Issued() []*Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Request(nil), c.issued...)
}

// loopbackChunked accumulates emitted chunks and queues the assembled
// request on Finish.
type loopbackChunked struct {
	conn *LoopbackConn
	req  *Request
	resp *Task[*Response]

	mu       sync.Mutex
	body     []byte
	finished bool
}

// Emit implements ChunkedRequester.
func (cr *loopbackChunked) Emit(chunk []byte) error {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	if cr.finished {
		return ErrChunkFinished
	}
	if cr.conn.closed.Load() > 0 {
		return ErrClosed
	}
	cr.body = append(cr.body, chunk...)
	return nil
}

// Finish implements ChunkedRequester.
func (cr *loopbackChunked) Finish() error {
	cr.mu.Lock()
	if cr.finished {
		cr.mu.Unlock()
		return ErrChunkFinished
	}
	cr.finished = true
	body := cr.body
	cr.mu.Unlock()
	if cr.conn.closed.Load() > 0 {
		return ErrClosed
	}
	full := &Request{
		Method:  cr.req.Method,
		Target:  cr.req.Target,
		Headers: cr.req.Headers,
		Body:    body,
	}
	cr.conn.enqueue(&exchange{req: full, resp: cr.resp})
	return nil
}

// Response implements ChunkedRequester.
func (cr *loopbackChunked) Response() *Task[*Response] { return cr.resp }
