package postprocess

import (
	"slices"

	"chaptercut/internal/timestamps"
)

// State is a job's position in the stage chain.
type State string

const (
	StatePending State = "pending"
	StateSliced  State = "sliced"
	StateFaded   State = "faded"
	StateTagged  State = "tagged"
	StateDone    State = "done"
	StateFailed  State = "failed"
	StateSkipped State = "skipped"
)

// Terminal reports whether no further stage will run.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed || s == StateSkipped
}

// Job tracks one segment through the pipeline. A job is owned by a single
// worker; nothing else mutates it while Run is in progress.
type Job struct {
	Segment    timestamps.Segment
	Name       string
	SlicePath  string
	FadePath   string
	OutputPath string
	State      State
	Err        error
	Warnings   []string

	// produced lists files this job created that are not yet deliverables.
	produced []string
}

func (j *Job) advance(state State) {
	j.State = state
}

func (j *Job) fail(err error) {
	j.State = StateFailed
	j.Err = err
}

func (j *Job) record(path string) {
	if !slices.Contains(j.produced, path) {
		j.produced = append(j.produced, path)
	}
}

func (j *Job) forget(path string) {
	j.produced = slices.DeleteFunc(j.produced, func(p string) bool { return p == path })
}

// Produced returns the files the job still owns as intermediates.
func (j *Job) Produced() []string {
	return slices.Clone(j.produced)
}

// Result is the per-segment outcome reported to callers.
type Result struct {
	Index    int
	Title    string
	State    State
	Output   string
	Err      error
	Warnings []string
}

func (j *Job) result() Result {
	r := Result{
		Index:    j.Segment.Index,
		Title:    j.Segment.Title,
		State:    j.State,
		Err:      j.Err,
		Warnings: slices.Clone(j.Warnings),
	}
	if j.State == StateDone {
		r.Output = j.OutputPath
	}
	return r
}

// Completed counts results that reached StateDone.
func Completed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.State == StateDone {
			n++
		}
	}
	return n
}
