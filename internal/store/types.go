package store

// Run status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Program is a stored program source.
type Program struct {
	Hash   string `json:"hash"`
	Source []byte `json:"source"`
	Size   int    `json:"size"`
}

// Run is one recorded execution.
type Run struct {
	ID          string `json:"id"`
	Seq         int64  `json:"seq"`
	ProgramHash string `json:"program_hash"`
	Input       []byte `json:"input"`
	Output      []byte `json:"output"`
	Status      string `json:"status"`
	ErrorCode   string `json:"error_code,omitempty"`
	ErrorOffset int    `json:"error_offset"`
	Steps       int64  `json:"steps"`
	MaxSteps    int64  `json:"max_steps"`
	Strict      bool   `json:"strict"`
	ResultHash  string `json:"result_hash"`
}

// RunFilter narrows ListRuns.
type RunFilter struct {
	ProgramHash string // empty for all programs
	Status      string // empty for any status
	Limit       int    // 0 for no limit
}
