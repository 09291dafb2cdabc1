// Package dirstream produces a tar archive of a directory subtree as a
// pull-based stream of byte chunks, without materializing the archive in
// memory.
//
// A tar writer is push-based: it writes sequentially and expects a sink
// that can absorb backpressure. An HTTP response body is pull-based: the
// server asks for the next chunk. The package bridges the two with one
// worker goroutine per stream that walks the filesystem and serializes tar
// blocks into a bounded buffer, while the consumer drains chunks through
// Next. A full buffer blocks the worker, so memory stays bounded no matter
// how large the tree is or how slow the consumer drains.
//
//	stream, err := dirstream.New("/srv/share/photos",
//		dirstream.WithCompression(dirstream.Gzip),
//	)
//	if err != nil {
//		return err
//	}
//	defer func() { _ = stream.Close() }()
//
//	w.Header().Set("Content-Type", stream.ContentType())
//	w.Header().Set("Content-Disposition", `attachment; filename="`+stream.Name()+`"`)
//	for {
//		chunk, err := stream.Next()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			return err // headers already sent; the connection drops
//		}
//		if _, err := w.Write(chunk); err != nil {
//			return err
//		}
//	}
//
// Close must be called when the consumer abandons the stream early (for
// example on client disconnect): it wakes a worker blocked on a full
// buffer and waits for it to exit, so no goroutine or file descriptor
// outlives the call. Closing an already-drained stream is a no-op.
//
// Chunks are delivered in exact byte order; a chunk is "whatever is
// buffered, up to the buffer size", never a promised fixed size. A
// filesystem error during the walk is captured once and returned from the
// next Next call. Bytes already delivered cannot be retracted; partial
// output on mid-stream failure is inherent to streaming downloads.
package dirstream
