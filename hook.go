// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dialog

// EventKind identifies a step boundary in a dialog's chains.
type EventKind uint8

const (
	// EventIssue — a request is issued on the connection.
	EventIssue EventKind = iota + 1
	// EventAwait — the connection chain defers on pending responses.
	EventAwait
	// EventIdle — the connection chain defers on a timer.
	EventIdle
	// EventClose — the connection is closed.
	EventClose
)

// Event is delivered to the dialog Hook at each step boundary.
// Target carries the request target for EventIssue, empty otherwise.
type Event struct {
	Serial Serial
	Kind   EventKind
	Target string
}

// Hook observes step boundaries. Not part of the dialog contract; a nil
// hook disables observation.
type Hook func(Event)
