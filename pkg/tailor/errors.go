package tailor

import "fmt"

// Stage names a pipeline step.
type Stage string

// Pipeline stages, in run order.
const (
	StageLoad    Stage = "load"
	StageTailor  Stage = "tailor"
	StageParse   Stage = "parse"
	StagePin     Stage = "pin"
	StageRender  Stage = "render"
	StageTypeset Stage = "typeset"
	StageCover   Stage = "cover"
	StageCleanup Stage = "cleanup"
)

// StageError tags a failure with the stage that raised it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage Stage, err error) (wrapped error) {
	if err == nil {
		return nil
	}
	wrapped = &StageError{Stage: stage, Err: err}
	return wrapped
}
