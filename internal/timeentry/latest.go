package timeentry

import (
	"sort"

	"github.com/google/uuid"
)

func newer(a, b TimeEntry) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// LatestByEmployee keeps the most recent event per employee. Equal timestamps
// fall back to insertion time.
func LatestByEmployee(entries []TimeEntry) map[uuid.UUID]TimeEntry {
	latest := make(map[uuid.UUID]TimeEntry, len(entries))
	for _, e := range entries {
		cur, ok := latest[e.EmployeeID]
		if !ok || newer(e, cur) {
			latest[e.EmployeeID] = e
		}
	}
	return latest
}

// ClockedIn returns the latest events that are punch-ins, ordered by employee id.
func ClockedIn(latest map[uuid.UUID]TimeEntry) []TimeEntry {
	out := make([]TimeEntry, 0, len(latest))
	for _, e := range latest {
		if e.IsPunchIn() {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EmployeeID.String() < out[j].EmployeeID.String()
	})
	return out
}
