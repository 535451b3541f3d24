package levenshtein

// Automaton is a Levenshtein automaton over Pattern bounded by Max edits.
// The state it steps through is a SparseVector: for each reachable position
// in Pattern, the minimal number of edits needed to reach it having consumed
// the runes fed to Step so far.
//
// The recurrence below is the same Levenshtein-NFA family aaw/levtrie
// simulates with a diagonal sliding window (see aaw-levtrie's nfa.transition
// for the windowed form); it is re-expressed directly over (position, value)
// pairs here since that is what the DFA cache canonicalizes states on.
type Automaton struct {
	Pattern []rune
	Max     int
}

// New builds an automaton matching pattern within max edits.
func New(pattern []rune, max int) *Automaton {
	return &Automaton{Pattern: pattern, Max: max}
}

const infeasible = -1

// Start returns the initial state: position i reachable via i deletions,
// for i from 0 up to max, truncated at the pattern length.
func (a *Automaton) Start() SparseVector {
	n := a.Max
	if n > len(a.Pattern) {
		n = len(a.Pattern)
	}
	v := make(SparseVector, 0, n+1)
	for i := 0; i <= n; i++ {
		v = append(v, Pair{Index: i, Value: i})
	}
	return v
}

// valueAt returns the distance recorded for position i in state, or
// infeasible if i is not present.
func valueAt(state SparseVector, i int) int {
	for _, p := range state {
		if p.Index == i {
			return p.Value
		}
		if p.Index > i {
			break
		}
	}
	return infeasible
}

// Step computes the state reached after consuming one more rune c, via the
// standard bounded edit-distance recurrence: deletion (prevRow[j]+1),
// insertion (newRow[j-1]+1), match/substitution (prevRow[j-1] + 0 or 1).
// Entries whose value would exceed Max are omitted.
func (a *Automaton) Step(state SparseVector, c rune) SparseVector {
	n := len(a.Pattern)
	newRow := make([]int, n+1)
	for j := 0; j <= n; j++ {
		newRow[j] = infeasible
	}

	// j == 0: consuming one more candidate rune with an empty pattern
	// prefix costs one more deletion than the previous row's column 0.
	if v := valueAt(state, 0); v != infeasible && v+1 <= a.Max {
		newRow[0] = v + 1
	}

	for j := 1; j <= n; j++ {
		best := infeasible

		// deletion: drop the new candidate rune, reuse prevRow[j]
		if v := valueAt(state, j); v != infeasible {
			best = minFeasible(best, v+1)
		}

		// insertion: candidate rune inserted relative to pattern, reuse
		// the row under construction at j-1
		if newRow[j-1] != infeasible {
			best = minFeasible(best, newRow[j-1]+1)
		}

		// match / substitution
		if v := valueAt(state, j-1); v != infeasible {
			cost := 1
			if a.Pattern[j-1] == c {
				cost = 0
			}
			best = minFeasible(best, v+cost)
		}

		if best != infeasible && best <= a.Max {
			newRow[j] = best
		}
	}

	out := make(SparseVector, 0, n+1)
	for j := 0; j <= n; j++ {
		if newRow[j] != infeasible {
			out = append(out, Pair{Index: j, Value: newRow[j]})
		}
	}
	return out
}

func minFeasible(a, b int) int {
	if a == infeasible {
		return b
	}
	if b == infeasible {
		return a
	}
	if a < b {
		return a
	}
	return b
}

// IsMatch reports whether v reaches the end of Pattern within Max edits.
func (a *Automaton) IsMatch(v SparseVector) bool {
	return valueAt(v, len(a.Pattern)) != infeasible
}

// CanMatch reports whether v has any reachable state at all; an empty vector
// means every continuation exceeds the edit budget and traversal can prune.
func (a *Automaton) CanMatch(v SparseVector) bool {
	return !v.IsEmpty()
}
