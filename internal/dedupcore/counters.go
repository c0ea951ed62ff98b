package dedupcore

import "sync/atomic"

// Counters holds the three monotonic, relaxed-atomic counters from spec
// §3: total_checked, duplicates_found, urls_inserted.
type Counters struct {
	totalChecked    atomic.Int64
	duplicatesFound atomic.Int64
	urlsInserted    atomic.Int64
}

// Snapshot reads each counter independently. The result is not guaranteed
// to be a consistent cross-counter instant (spec §4.4).
type Snapshot struct {
	TotalChecked    int64
	DuplicatesFound int64
	URLsInserted    int64
}

func (c *Counters) snapshot() Snapshot {
	return Snapshot{
		TotalChecked:    c.totalChecked.Load(),
		DuplicatesFound: c.duplicatesFound.Load(),
		URLsInserted:    c.urlsInserted.Load(),
	}
}
