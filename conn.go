// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dialog

import "time"

// Connection is the transport capability a dialog threads through its
// connection chain. The dialog never constructs one; it issues requests
// on it in chain order and closes it exactly once after the final result
// settles.
//
// Send must issue the request immediately and return an asynchronous
// handle for its response, so that adjacent sends pipeline. Responses
// must be delivered in request order (the HTTP/1.1 guarantee); the
// dialog combines them in issue order and never re-sorts.
type Connection interface {
	Send(req *Request) *Task[*Response]
	StartChunked(req *Request) (ChunkedRequester, error)
	Close() error
}

// ChunkedRequester is the transient capability of one chunked exchange:
// the caller-supplied Chunker emits body chunks through it and the
// response resolves once the exchange completes.
type ChunkedRequester interface {
	// Emit sends one body chunk.
	Emit(chunk []byte) error
	// Finish signals the end of the body.
	Finish() error
	// Response resolves once the peer has answered the exchange.
	Response() *Task[*Response]
}

// Chunker produces a request body incrementally. It runs on the dialog
// executor once the connection is available; returning an error fails
// the exchange's response and breaks the connection chain.
type Chunker func(ChunkedRequester) error

// Registry resolves a named endpoint to a connection. Resolution runs
// on the dialog executor, so it may dial.
type Registry interface {
	Resolve(host string, port uint16, endpoint string) (Connection, error)
}

// RegistryFunc adapts a plain function to Registry.
type RegistryFunc func(host string, port uint16, endpoint string) (Connection, error)

// Resolve implements Registry.
func (f RegistryFunc) Resolve(host string, port uint16, endpoint string) (Connection, error) {
	return f(host, port, endpoint)
}

// Scheduler supplies the timer capability behind WaitIdle.
type Scheduler interface {
	ScheduleOnce(d time.Duration, f func())
}

// timerScheduler is the default Scheduler, backed by the runtime timer.
type timerScheduler struct{}

func (timerScheduler) ScheduleOnce(d time.Duration, f func()) { time.AfterFunc(d, f) }

var defaultScheduler Scheduler = timerScheduler{}
