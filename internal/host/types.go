package host

// StatusResponse reports the runner's state.
type StatusResponse struct {
	Running       bool   `json:"running"`
	PID           int    `json:"pid,omitempty"`
	RunID         string `json:"run_id,omitempty"`
	Model         string `json:"model,omitempty"`
	LogfilePath   string `json:"logfile_path,omitempty"`
	ModulePattern string `json:"module_pattern,omitempty"`
}

// RunLogResponse carries the historical log content of one run.
type RunLogResponse struct {
	RunID string   `json:"run_id"`
	Lines []string `json:"lines"`
}

// OutputBatch carries incremental output from the active run. Next is the
// cursor for the following request.
type OutputBatch struct {
	Lines []string `json:"lines"`
	Next  uint64   `json:"next"`
}
