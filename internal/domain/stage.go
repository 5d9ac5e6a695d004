package domain

// Stage is a state of the deployment pipeline.
type Stage string

const (
	StageStart        Stage = "Start"
	StageDeploying    Stage = "Deploying"
	StageConfirmed    Stage = "Confirmed"
	StageInspecting   Stage = "Inspecting"
	StageInitializing Stage = "Initializing"
	StagePersisting   Stage = "Persisting"
	StageDone         Stage = "Done"
	StageFailed       Stage = "Failed"
)

// pipelineOrder lists the non-failure stages in the only order they may occur.
var pipelineOrder = []Stage{
	StageStart,
	StageDeploying,
	StageConfirmed,
	StageInspecting,
	StageInitializing,
	StagePersisting,
	StageDone,
}

// IsTerminal reports whether no transition leaves the stage.
func (s Stage) IsTerminal() bool {
	return s == StageDone || s == StageFailed
}

// CanTransition reports whether the pipeline may move from s to next.
// Every non-terminal stage may fail; otherwise only the next stage in order is allowed.
func (s Stage) CanTransition(next Stage) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StageFailed {
		return true
	}
	for i, stage := range pipelineOrder[:len(pipelineOrder)-1] {
		if stage == s {
			return pipelineOrder[i+1] == next
		}
	}
	return false
}
