package domain

// SaveItem is a single document to persist in a batch.
type SaveItem struct {
	Path    string
	Content []byte
}

// BatchFailure records why one item of a batch could not be saved.
type BatchFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// BatchResult partitions the items of a batch into successes and failures.
// Every input item appears in exactly one of the two lists.
type BatchResult struct {
	Successful []string       `json:"successful"`
	Failed     []BatchFailure `json:"failed"`
}

// OK reports whether every item succeeded.
func (r BatchResult) OK() bool {
	return len(r.Failed) == 0
}
