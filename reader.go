package subprocrun

import (
	"bytes"
	"errors"
	"io"

	"github.com/gospawn/subprocrun/internal/result"
)

// readChunkSize is the per-read buffer size: 4 KiB, per spec.md §4.3.
const readChunkSize = 4096

// drain repeatedly reads up to readChunkSize bytes from r until EOF or a
// read error. On a nonzero read it calls onChunk (if non-nil) with a view
// of exactly the bytes read, and always appends to an internal buffer that
// backs the returned Result. On io.EOF it closes r and returns the
// accumulated bytes as success. On any other error it stops and returns
// failure *without* closing r. Closing the read end mid-stream can deliver
// SIGPIPE to a child still writing, per spec.md §4.3's rationale, so a
// child that never exits after a reader error can leak this descriptor.
// That is documented, not accidental, behavior.
func drain(r io.ReadCloser, onChunk func([]byte)) result.Result[[]byte] {
	var buf bytes.Buffer
	chunk := make([]byte, readChunkSize)

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			if onChunk != nil {
				onChunk(chunk[:n])
			}
			buf.Write(chunk[:n])
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				_ = r.Close()
				return result.Ok(buf.Bytes())
			}
			// Go's runtime poller already retries transparently on EINTR
			// for pipe-backed *os.File reads, so unlike spec.md's manual
			// retry loop there is no EINTR case to special-case here; any
			// error surfacing past Read is a genuine ReadSyscallError.
			return result.Failed(buf.Bytes(), &ReadSyscallError{Errno: err})
		}

		if n == 0 {
			// A zero-length, nil-error read: treat as "try again" rather
			// than EOF, matching io.Reader's contract.
			continue
		}
	}
}
