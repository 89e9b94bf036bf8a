package value

import "time"

// Layout constants for the three temporal textual shapes spec §3 names.
// A full datetime/date-parsing library is treated as an opaque
// collaborator per spec §1 ("implementation may delegate to any correct
// RFC 3339-compatible library"); internal/engine owns the codec that reads
// and writes these layouts, Value only carries the parsed instant.
const (
	DateTimeLayout = time.RFC3339
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
)

// Time is the temporal payload carried by KindDateTime/KindDate/KindTime
// values. It wraps time.Time rather than reimplementing calendar math,
// matching spec §1's instruction to treat date/time parsing as an opaque,
// already-solved concern.
type Time struct {
	time.Time
}

// NewTime wraps a time.Time.
func NewTime(t time.Time) Time { return Time{Time: t} }

// Equal reports whether two Time values denote the same instant.
func (t Time) Equal(o Time) bool { return t.Time.Equal(o.Time) }
