package timestamp

import (
	"context"
	"io"
	"time"
)

// TimestampVerifier checks a timestamp token ts against the data it claims to
// cover and returns the attested time.
type TimestampVerifier interface {
	Verify(ctx context.Context, ts io.Reader, data io.Reader) (time.Time, error)
}

// Timestamper obtains a timestamp token over the contents of the reader.
type Timestamper interface {
	Timestamp(context.Context, io.Reader) ([]byte, error)
}
