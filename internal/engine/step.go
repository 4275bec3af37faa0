package engine

import "fmt"

// Step identifies one mutation inside a transaction. Sub is non-zero for the
// relocation steps that run nested inside a capture.
type Step struct {
	Number int
	Sub    int
	Name   string
}

// String renders the step as "step 2 (vacate origin)" or "step 6.2 (vacate origin)".
func (s Step) String() string {
	if s.Sub > 0 {
		return fmt.Sprintf("step %d.%d (%s)", s.Number, s.Sub, s.Name)
	}
	return fmt.Sprintf("step %d (%s)", s.Number, s.Name)
}

// Step names.
const (
	stepOccupy     = "occupy destination"
	stepVacate     = "vacate origin"
	stepAdvance    = "advance position"
	stepSetCaptor  = "set captor"
	stepRoster     = "remove from roster"
	stepHostage    = "take hostage"
	stepLeaveBoard = "remove from board"
	stepClearDest  = "clear destination"
)

// captureRelocation is the capture step under which the actor's relocation runs.
const captureRelocation = 6

var relocationNames = [...]string{stepOccupy, stepVacate, stepAdvance}

// relocationStep returns relocation step n (1-based). A non-zero parent nests
// it as a sub-step.
func relocationStep(parent, n int) Step {
	name := relocationNames[n-1]
	if parent == 0 {
		return Step{Number: n, Name: name}
	}
	return Step{Number: parent, Sub: n, Name: name}
}

// RelocationSteps lists the steps of a relocation in execution order.
func RelocationSteps() []Step {
	steps := make([]Step, len(relocationNames))
	for i := range relocationNames {
		steps[i] = relocationStep(0, i+1)
	}
	return steps
}

// CaptureSteps lists the steps of a capture in execution order, with the
// closing relocation expanded into its sub-steps.
func CaptureSteps() []Step {
	steps := []Step{
		{Number: 1, Name: stepSetCaptor},
		{Number: 2, Name: stepRoster},
		{Number: 3, Name: stepHostage},
		{Number: 4, Name: stepLeaveBoard},
		{Number: 5, Name: stepClearDest},
	}
	for i := range relocationNames {
		steps = append(steps, relocationStep(captureRelocation, i+1))
	}
	return steps
}
