package spool

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NamingScheme produces a new base filename for each stored payload. Names
// must be unique within the store directory and totally orderable by the
// store's Comparator, since eviction ranks files by name alone.
type NamingScheme func() string

// Comparator defines a total order over base filenames. It reports a
// negative value when a sorts before b, zero when equal, and a positive
// value otherwise. Eviction deletes from the front of this order.
type Comparator func(a, b string) int

// TimestampNaming returns the default scheme: a millisecond creation
// timestamp followed by a UUID disambiguator, e.g.
// "1755907200123_4f9d...c2.json". The timestamp carries the order, the
// UUID guarantees collision-free names across concurrent producers.
func TimestampNaming(ext string) NamingScheme {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return func() string {
		return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
	}
}

// CompareTimestamp orders names produced by TimestampNaming: numeric
// timestamp prefix first, full name lexically as tie-breaker. Names without
// a numeric prefix sort before timestamped ones so foreign files are
// evicted first.
func CompareTimestamp(a, b string) int {
	ta, oka := timestampPrefix(a)
	tb, okb := timestampPrefix(b)
	switch {
	case oka && okb:
		if ta != tb {
			if ta < tb {
				return -1
			}
			return 1
		}
	case oka:
		return 1
	case okb:
		return -1
	}
	return strings.Compare(a, b)
}

func timestampPrefix(name string) (int64, bool) {
	end := strings.IndexByte(name, '_')
	if end <= 0 {
		return 0, false
	}
	value, err := strconv.ParseInt(name[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
