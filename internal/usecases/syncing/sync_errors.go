package syncing

import (
	"errors"
	"fmt"
)

type Stage string

const (
	StageWatermark Stage = "watermark"
	StageExtract   Stage = "extract"
	StageTransform Stage = "transform"
	StageLoad      Stage = "load"
	StageMerge     Stage = "merge"
	StageWrite     Stage = "write"
)

var ErrInvalidPipeline = errors.New("pipeline sem dependências obrigatórias")

// SyncError identifica a etapa em que a execução foi interrompida
type SyncError struct {
	Stage Stage
	Err   error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("etapa %s: %s", e.Stage, e.Err.Error())
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func newSyncError(stage Stage, err error) *SyncError {
	return &SyncError{Stage: stage, Err: err}
}

// StageOf devolve a etapa do erro, ou "" quando ele não veio do pipeline
func StageOf(err error) Stage {
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Stage
	}
	return ""
}
