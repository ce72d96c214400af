package progress

import (
	"testing"

	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/model"
	"github.com/stretchr/testify/assert"
)

func tasks(completed ...bool) []model.Task {
	out := make([]model.Task, 0, len(completed))
	for _, c := range completed {
		out = append(out, model.Task{Completed: c})
	}
	return out
}

func TestPhaseCompletion(t *testing.T) {
	tests := []struct {
		name  string
		tasks []model.Task
		want  int
	}{
		{name: "no tasks means not started", tasks: nil, want: 0},
		{name: "empty slice", tasks: []model.Task{}, want: 0},
		{name: "all complete", tasks: tasks(true, true), want: 100},
		{name: "half complete", tasks: tasks(true, false), want: 50},
		{name: "one of three rounds to 33", tasks: tasks(true, false, false), want: 33},
		{name: "two of three rounds to 67", tasks: tasks(true, true, false), want: 67},
		{name: "none complete", tasks: tasks(false, false, false), want: 0},
		{name: "half up tie", tasks: tasks(true, true, true, false, false, false, false, false), want: 38},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PhaseCompletion(tt.tasks))
		})
	}
}

func TestProjectProgress(t *testing.T) {
	phases := func(progresses ...int) []model.Phase {
		out := make([]model.Phase, 0, len(progresses))
		for _, p := range progresses {
			out = append(out, model.Phase{Progress: p})
		}
		return out
	}

	tests := []struct {
		name   string
		phases []model.Phase
		want   int
	}{
		{name: "no phases", phases: nil, want: 0},
		{name: "single phase", phases: phases(50), want: 50},
		{name: "mean of extremes", phases: phases(100, 0), want: 50},
		{name: "mean of three", phases: phases(40, 60, 80), want: 60},
		{name: "rounds to nearest", phases: phases(33, 33, 34), want: 33},
		{name: "out of range values clamped", phases: phases(150, -10), want: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectProgress(tt.phases))
		})
	}
}

func TestAggregationIsPure(t *testing.T) {
	ts := tasks(true, false, true)
	assert.Equal(t, PhaseCompletion(ts), PhaseCompletion(ts))

	ps := []model.Phase{{Progress: 10}, {Progress: 90}}
	assert.Equal(t, ProjectProgress(ps), ProjectProgress(ps))

	// inputs must not be mutated
	assert.True(t, ts[0].Completed)
	assert.Equal(t, 10, ps[0].Progress)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-5))
	assert.Equal(t, 0, Clamp(0))
	assert.Equal(t, 42, Clamp(42))
	assert.Equal(t, 100, Clamp(100))
	assert.Equal(t, 100, Clamp(250))
}
