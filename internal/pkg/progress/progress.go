// Package progress holds the pure completion math for the production
// dashboard. Nothing in here touches the database: callers load the rows,
// these functions fold them into a 0-100 percentage.
package progress

import (
	"math"

	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/model"
	"github.com/samber/lo"
)

// PhaseCompletion returns the completion percentage of a phase given its
// tasks. A phase with no tasks is not started, not vacuously complete, so
// the empty slice yields 0. Ties round half up.
func PhaseCompletion(tasks []model.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := lo.CountBy(tasks, func(t model.Task) bool { return t.Completed })
	return int(math.Round(100 * float64(done) / float64(len(tasks))))
}

// ProjectProgress returns the mean of the stored progress of each phase,
// rounded to the nearest integer, or 0 when the project has no phases. It
// trusts the persisted per-phase progress and does not recompute it from
// tasks; the task repositories keep that value current transactionally.
func ProjectProgress(phases []model.Phase) int {
	if len(phases) == 0 {
		return 0
	}
	sum := lo.SumBy(phases, func(p model.Phase) int { return Clamp(p.Progress) })
	return int(math.Round(float64(sum) / float64(len(phases))))
}

// Clamp bounds a percentage to [0,100]. Malformed rows (hand-edited or
// migrated) must not leak out-of-range values to clients.
func Clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
