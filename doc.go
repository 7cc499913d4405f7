// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package dialog provides a fluent builder for sequences of HTTP
// request/response exchanges over a single persistent connection.
//
// A dialog couples two chains of deferred steps: a connection chain
// (issue request, await pending responses, idle) threading the one
// [Connection] linearly through every step, and a result chain
// accumulating responses in request-issue order. Every fluent call
// returns a fresh dialog value wrapping both extended chains; previously
// returned values stay valid but are not reused by convention.
//
// # Architecture
//
//   - Chains: One-shot asynchronous handles ([Task]) composed with
//     bind/map continuations, settled as [code.hybscloud.com/kont.Either].
//   - Execution: Continuations run on an [Executor] supplied once at
//     construction; nothing blocks inside the package.
//   - Variants: The accumulated result grows Empty → Single → Sequence
//     and never shrinks. [Empty], [Single] and [Sequence] carry the
//     variant in the type, so Reply on anything but a single pending
//     response is a compile error.
//   - Transport: The [Connection] is an external capability. [Loopback]
//     provides an in-memory implementation backed by bounded SPSC queues
//     via [code.hybscloud.com/lfq] for tests and examples.
//
// # Pipelining
//
// Adjacent sends are pipelined: a send's connection step runs as soon as
// the previous send has been issued, not when its response arrives.
// AwaitResponse defers the connection chain on the current result chain
// value, so every later send waits for all prior responses first.
// In-order response delivery is assumed from the transport (HTTP/1.1);
// responses are combined in issue order, never re-sorted.
//
// # Lifecycle
//
// End returns the final asynchronous accumulated result. Once the result
// chain settles, successfully or not, the terminal connection handle is
// awaited and the connection closed exactly once; the returned handle
// settles only after the close, so an observer of the result sees no
// further traffic. Abandoning a dialog value does not cancel anything:
// chain construction already registered continuations on shared handles,
// and in-flight exchanges and timers run to completion unobserved.
//
// # Example
//
//	lb := dialog.NewLoopback(nil)
//	resps, err := dialog.New(lb, "localhost", 8080, "api").
//		Send(&dialog.Request{Method: "GET", Target: "/a"}).
//		Send(&dialog.Request{Method: "GET", Target: "/b"}).
//		End().
//		Await()
package dialog
