package core

import (
	"timeclock/models"
)

// punchOrder is the canonical order of punches within a day.
var punchOrder = []models.PunchKind{
	models.PunchEntry,
	models.PunchBreakStart,
	models.PunchBreakEnd,
	models.PunchExit,
}

func kindIndex(k models.PunchKind) int {
	for i, kind := range punchOrder {
		if kind == k {
			return i
		}
	}
	return -1
}

// ValidSequence reports whether candidate is the expected next punch
// given the day's records so far (ordered by time ascending). It only
// reports; whether an out-of-sequence punch is rejected or merely
// flagged is the engine's call.
func ValidSequence(today []models.TimeRecord, candidate models.PunchKind) bool {
	idx := kindIndex(candidate)
	if idx < 0 {
		return false
	}
	if len(today) == 0 {
		return candidate == models.PunchEntry
	}
	last := today[len(today)-1]
	return idx == kindIndex(last.Kind)+1
}

// NextExpectedKind returns the punch that would continue the day's
// sequence, shared by the engine and the suggestion endpoint so the
// two can't drift. ok is false when the day is already complete.
func NextExpectedKind(today []models.TimeRecord) (models.PunchKind, bool) {
	if len(today) == 0 {
		return models.PunchEntry, true
	}
	last := kindIndex(today[len(today)-1].Kind)
	if last < 0 || last+1 >= len(punchOrder) {
		return "", false
	}
	return punchOrder[last+1], true
}
