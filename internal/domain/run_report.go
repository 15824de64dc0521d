package domain

import "time"

type RunStatus string

const (
	RunStatusSucceeded RunStatus = "SUCCEEDED"
	RunStatusNoChanges RunStatus = "NO_CHANGES"
	RunStatusDryRun    RunStatus = "DRY_RUN"
	RunStatusFailed    RunStatus = "FAILED"
)

// RunReport resume uma execução da sincronização
type RunReport struct {
	RunID           string     `json:"run_id"`
	Status          RunStatus  `json:"status"`
	Bootstrap       bool       `json:"bootstrap"`
	Watermark       *time.Time `json:"watermark,omitempty"`
	NextWatermark   *time.Time `json:"next_watermark,omitempty"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      time.Time  `json:"finished_at"`
	RowsExtracted   int        `json:"rows_extracted"`
	RowsUpdated     int        `json:"rows_updated"`
	RowsInserted    int        `json:"rows_inserted"`
	RowsUnchanged   int        `json:"rows_unchanged"`
	StoreRows       int        `json:"store_rows"`
	ArtifactsRead   []string   `json:"artifacts_read,omitempty"`
	ArtifactWritten string     `json:"artifact_written,omitempty"`
	Error           string     `json:"error,omitempty"`
}

func (r RunReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
