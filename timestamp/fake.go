package timestamp

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/in-toto/go-vts/protocol"
)

type ErrMismatchedTime struct {
	Expected string
	Actual   string
}

func (e ErrMismatchedTime) Error() string {
	return fmt.Sprintf("mismatched time: expected %s, got %s", e.Expected, e.Actual)
}

// FakeTimestamper returns T formatted with the VTS timestamp layout. It attests
// nothing and exists for tests.
type FakeTimestamper struct {
	T time.Time
}

func (ft FakeTimestamper) Timestamp(context.Context, io.Reader) ([]byte, error) {
	return []byte(protocol.FormatTimestamp(ft.T)), nil
}

func (ft FakeTimestamper) Verify(ctx context.Context, ts io.Reader, data io.Reader) (time.Time, error) {
	b, err := io.ReadAll(ts)
	if err != nil {
		return time.Time{}, err
	}

	expected := protocol.FormatTimestamp(ft.T)
	if string(b) != expected {
		return time.Time{}, ErrMismatchedTime{Expected: expected, Actual: string(b)}
	}

	return protocol.ParseTimestamp(expected)
}
