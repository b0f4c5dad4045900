// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package narration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// StreamingError is returned when relaying audio fails part way. Response
// headers have already been sent at that point so the transfer can only be
// cut short.
type StreamingError struct {
	Written int64
	Err     error
}

func (e *StreamingError) Error() string {
	return fmt.Sprintf("narration: streaming audio after %d bytes: %v", e.Written, e.Err)
}

func (e *StreamingError) Unwrap() error {
	return e.Err
}

const relayChunkSize = 32 << 10

// Relay copies audio from src to dst as it arrives, flushing after every
// chunk when dst supports it. Nothing is buffered beyond a single chunk.
func Relay(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	flusher, _ := dst.(http.Flusher)
	buf := make([]byte, relayChunkSize)

	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return written, &StreamingError{Written: written, Err: err}
		}

		n, rerr := src.Read(buf)
		if n > 0 {
			wn, werr := dst.Write(buf[:n])
			written += int64(wn)
			if werr == nil && wn < n {
				werr = io.ErrShortWrite
			}
			if werr != nil {
				return written, &StreamingError{Written: written, Err: werr}
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if errors.Is(rerr, io.EOF) {
			return written, nil
		}
		if rerr != nil {
			return written, &StreamingError{Written: written, Err: rerr}
		}
	}
}
