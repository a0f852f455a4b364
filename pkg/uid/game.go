package uid

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"io"
	"sync/atomic"
	"time"
)

var (
	source  io.Reader = rand.Reader
	counter atomic.Uint64
)

// GenerateMatchID returns a random 32 character hex identifier used to tag
// the log lines of one match. If the random source fails it falls back to
// the clock plus a process-wide counter.
func GenerateMatchID() string {
	bytes := make([]byte, 16)
	if _, err := io.ReadFull(source, bytes); err != nil {
		binary.BigEndian.PutUint64(bytes[:8], uint64(time.Now().UnixNano()))
		binary.BigEndian.PutUint64(bytes[8:], counter.Add(1))
	}
	return hex.EncodeToString(bytes)
}
