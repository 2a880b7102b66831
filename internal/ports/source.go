package ports

// ByteSource abstracts one side's byte stream: a plain file, a
// decompressed stream, or a queue fed by an upstream producer.
type ByteSource interface {
	// Read fills dst as completely as the stream allows and returns the
	// number of bytes written. A count smaller than len(dst), including
	// zero, signals end of data for this side; callers must not call
	// Read again after a short count. A non-nil error reports an I/O
	// failure, never end of data.
	Read(dst []byte) (int, error)

	// Close releases the underlying stream.
	Close() error
}
