// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dialog

// Header is a single header field. Dialog messages keep headers as an
// ordered list; names may repeat.
type Header struct {
	Name  string
	Value string
}

// Request is an HTTP request flowing into the connection chain.
// Treated as immutable once handed to a dialog.
type Request struct {
	Method  string
	Target  string
	Headers []Header
	Body    []byte
}

// Response is an HTTP response produced by the connection.
// Treated as immutable.
type Response struct {
	StatusCode int
	Headers    []Header
	Body       []byte
}
