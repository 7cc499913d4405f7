// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dialog_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	dialog "github.com/wishbear/dialog"
)

var errSettleTimeout = errors.New("task did not settle in time")

// timedAwait waits for a task with a deadline instead of forever.
func timedAwait[T any](task *dialog.Task[T]) (T, error) {
	select {
	case <-task.Done():
		return task.Await()
	case <-time.After(5 * time.Second):
		var zero T
		return zero, errSettleTimeout
	}
}

// awaitTask waits for a task and fails the test on a missed deadline.
func awaitTask[T any](t testing.TB, task *dialog.Task[T]) (T, error) {
	t.Helper()
	v, err := timedAwait(task)
	if errors.Is(err, errSettleTimeout) {
		t.Fatal(errSettleTimeout)
	}
	return v, err
}

// eventually polls cond until it holds or the deadline passes.
func eventually(t testing.TB, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal(msg)
}

// waitConn waits for the loopback to resolve its first connection.
func waitConn(t testing.TB, lb *dialog.Loopback) *dialog.LoopbackConn {
	t.Helper()
	eventually(t, func() bool { return len(lb.Conns()) > 0 }, "connection was not resolved")
	return lb.Conns()[0]
}

// waitIssued waits until at least n requests have been issued on c.
func waitIssued(t testing.TB, c *dialog.LoopbackConn, n int) {
	t.Helper()
	eventually(t, func() bool { return len(c.Issued()) >= n }, "requests were not issued")
}

func get(target string) *dialog.Request {
	return &dialog.Request{Method: "GET", Target: target}
}

func post(target, body string) *dialog.Request {
	return &dialog.Request{Method: "POST", Target: target, Body: []byte(body)}
}

// manualScheduler records scheduled timers and fires them on demand.
type manualScheduler struct {
	mu   sync.Mutex
	durs []time.Duration
	fns  []func()
}

func (m *manualScheduler) ScheduleOnce(d time.Duration, f func()) {
	m.mu.Lock()
	m.durs = append(m.durs, d)
	m.fns = append(m.fns, f)
	m.mu.Unlock()
}

func (m *manualScheduler) pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.fns)
}

func (m *manualScheduler) duration(i int) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.durs[i]
}

func (m *manualScheduler) fire(i int) {
	m.mu.Lock()
	f := m.fns[i]
	m.mu.Unlock()
	f()
}
