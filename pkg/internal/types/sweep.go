package types

// SweepRequest 触发孤儿文件清理，body 可省略.
type SweepRequest struct {
	DryRun bool `json:"dryRun"`
}

// SweepResult 清理结果.
//
// TotalFiles 为匹配文件名规则的候选数，OrphanedFiles 为其中未被任何记录引用的文件名，
// DeletedFilenames 为实际删除的文件名（dry run 时为空）.
type SweepResult struct {
	Message          string   `json:"message"`
	DeletedFiles     int      `json:"deletedFiles"`
	TotalFiles       int      `json:"totalFiles"`
	OrphanedFiles    []string `json:"orphanedFiles"`
	DeletedFilenames []string `json:"deletedFilenames"`
	FailedFiles      int      `json:"failedFiles"`
	SkippedRecent    int      `json:"skippedRecent"`
	DryRun           bool     `json:"dryRun"`
}
