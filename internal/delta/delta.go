package delta

import "github.com/angeloszaimis/lb-dashboard/internal/snapshot"

// NoWinner is the WinnerIndex of a cycle without routing activity.
const NoWinner = -1

// Result is the outcome of comparing a snapshot with the retained counts.
type Result struct {
	Deltas      map[string]int64
	Winner      string
	WinnerIndex int
	WinnerDelta int64
}

// HasWinner reports whether any server received traffic this cycle.
func (r Result) HasWinner() bool {
	return r.WinnerIndex != NoWinner
}

// IsWinner reports whether name is this cycle's winner.
func (r Result) IsWinner(name string) bool {
	return r.HasWinner() && r.Winner == name
}

// Compute diffs current against previous. Names missing from previous are
// treated as zero. Neither argument is modified.
func Compute(previous map[string]int64, current *snapshot.Snapshot) Result {
	res := Result{
		Deltas:      make(map[string]int64, len(current.Servers)),
		WinnerIndex: NoWinner,
	}

	for i, srv := range current.Servers {
		d := srv.Requests - previous[srv.Name]
		if d < 0 {
			d = 0
		}
		res.Deltas[srv.Name] = d

		if d > res.WinnerDelta {
			res.Winner = srv.Name
			res.WinnerIndex = i
			res.WinnerDelta = d
		}
	}

	return res
}
