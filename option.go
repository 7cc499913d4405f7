// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dialog

// Option configures a dialog at construction.
type Option func(*dialogState)

// WithExecutor sets the execution context for every chain continuation.
func WithExecutor(exec Executor) Option {
	return func(s *dialogState) { s.exec = exec }
}

// WithScheduler sets the timer capability behind WaitIdle.
func WithScheduler(sched Scheduler) Option {
	return func(s *dialogState) { s.sched = sched }
}

// WithHook sets the step-boundary observer.
func WithHook(hook Hook) Option {
	return func(s *dialogState) { s.hook = hook }
}
