// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dialog

import (
	"sync"

	"code.hybscloud.com/kont"
)

// Executor runs chain continuations. It is supplied once at dialog
// construction and reused for every continuation appended afterwards.
type Executor interface {
	Execute(func())
}

// ExecutorFunc adapts a plain function to Executor.
type ExecutorFunc func(func())

// Execute implements Executor.
func (f ExecutorFunc) Execute(fn func()) { f(fn) }

// goroutineExecutor runs every continuation on its own goroutine.
type goroutineExecutor struct{}

func (goroutineExecutor) Execute(fn func()) { go fn() }

var defaultExecutor Executor = goroutineExecutor{}

// Task is a one-shot asynchronous result handle. It settles at most once
// with kont.Either[error, T]: Right carries the value, Left the first
// error that broke the producing chain. Continuations registered before
// settlement run on the task's Executor after it; continuations
// registered after settlement run immediately on the Executor.
//
// Affine semantics follow kont's Suspension: Complete and Fail panic on
// reuse.
type Task[T any] struct {
	exec Executor

	mu      sync.Mutex
	settled bool
	out     kont.Either[error, T]
	conts   []func(kont.Either[error, T])
	done    chan struct{}
}

// NewTask returns an unsettled task. A nil exec selects the default
// executor (one goroutine per continuation).
func NewTask[T any](exec Executor) *Task[T] {
	if exec == nil {
		exec = defaultExecutor
	}
	return &Task[T]{exec: exec, done: make(chan struct{})}
}

func settledTask[T any](exec Executor, v T) *Task[T] {
	t := NewTask[T](exec)
	t.settle(kont.Right[error, T](v))
	return t
}

func failedTask[T any](exec Executor, err error) *Task[T] {
	t := NewTask[T](exec)
	t.settle(kont.Left[error, T](err))
	return t
}

// settle records the outcome and schedules pending continuations.
// Returns false if the task was already settled.
func (t *Task[T]) settle(out kont.Either[error, T]) bool {
	t.mu.Lock()
	if t.settled {
		t.mu.Unlock()
		return false
	}
	t.settled = true
	t.out = out
	conts := t.conts
	t.conts = nil
	close(t.done)
	t.mu.Unlock()
	for _, f := range conts {
		f := f
		t.exec.Execute(func() { f(out) })
	}
	return true
}

// Complete settles the task with a value. Panics if already settled.
func (t *Task[T]) Complete(v T) {
	if !t.settle(kont.Right[error, T](v)) {
		panic("dialog: task settled twice")
	}
}

// Fail settles the task with an error. Panics if already settled.
func (t *Task[T]) Fail(err error) {
	if !t.settle(kont.Left[error, T](err)) {
		panic("dialog: task settled twice")
	}
}

// Done returns a channel closed when the task settles.
func (t *Task[T]) Done() <-chan struct{} { return t.done }

// Settled reports whether the task has settled.
func (t *Task[T]) Settled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settled
}

// Await blocks the calling goroutine until the task settles and unwraps
// the outcome.
func (t *Task[T]) Await() (T, error) {
	<-t.done
	if err, ok := t.out.GetLeft(); ok {
		var zero T
		return zero, err
	}
	v, _ := t.out.GetRight()
	return v, nil
}

// onSettle registers a continuation on the outcome. Runs on the
// task's executor, immediately if the task has already settled.
func (t *Task[T]) onSettle(f func(kont.Either[error, T])) {
	t.mu.Lock()
	if !t.settled {
		t.conts = append(t.conts, f)
		t.mu.Unlock()
		return
	}
	out := t.out
	t.mu.Unlock()
	t.exec.Execute(func() { f(out) })
}

// completeWith links the task to settle with src's outcome. Linking
// never panics: if the task has settled through another path, the late
// outcome is dropped.
func (t *Task[T]) completeWith(src *Task[T]) {
	src.onSettle(func(out kont.Either[error, T]) { t.settle(out) })
}

// forwardFailure fails to with from's error, if from fails. The success
// outcome of from is not forwarded.
func forwardFailure[A, B any](from *Task[A], to *Task[B]) {
	from.onSettle(func(out kont.Either[error, A]) {
		if err, ok := out.GetLeft(); ok {
			to.settle(kont.Left[error, B](err))
		}
	})
}

// bindTask sequences f after t. f runs only on success; a failure
// short-circuits past it unchanged.
func bindTask[A, B any](t *Task[A], f func(A) *Task[B]) *Task[B] {
	next := NewTask[B](t.exec)
	t.onSettle(func(out kont.Either[error, A]) {
		if err, ok := out.GetLeft(); ok {
			next.settle(kont.Left[error, B](err))
			return
		}
		v, _ := out.GetRight()
		next.completeWith(f(v))
	})
	return next
}

// mapTask applies f to t's eventual value.
func mapTask[A, B any](t *Task[A], f func(A) B) *Task[B] {
	next := NewTask[B](t.exec)
	t.onSettle(func(out kont.Either[error, A]) {
		if err, ok := out.GetLeft(); ok {
			next.settle(kont.Left[error, B](err))
			return
		}
		v, _ := out.GetRight()
		next.settle(kont.Right[error, B](f(v)))
	})
	return next
}

// gatherTasks combines the tasks into one settling with all values in
// slice order, waiting on each in order. The first failure wins.
func gatherTasks[T any](exec Executor, ts []*Task[T]) *Task[[]T] {
	acc := settledTask(exec, make([]T, 0, len(ts)))
	for _, t := range ts {
		t := t
		acc = bindTask(acc, func(vs []T) *Task[[]T] {
			return mapTask(t, func(v T) []T { return append(vs, v) })
		})
	}
	return acc
}
