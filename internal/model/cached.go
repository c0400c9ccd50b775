package model

// CachedClassification is a pattern-cache record of a prior decision, kept
// for diagnostics and reuse. The cleanup tags never influence future
// arbitration priority.
type CachedClassification struct {
	Result          Result
	RemovedPatterns int
	CleanedUsable   bool
}
