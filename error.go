// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dialog

import "errors"

// ErrClosed is returned by transport operations on a closed connection.
var ErrClosed = errors.New("dialog: connection closed")

// ErrChunkFinished is returned by ChunkedRequester operations after the
// terminal signal has been emitted.
var ErrChunkFinished = errors.New("dialog: chunked request already finished")
