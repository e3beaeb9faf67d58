package domain

// DocumentState is the single cross-flow value: whether the backend holds an
// ingested document and under what name. It is owned by the shell, written by
// the upload flow on success, and refreshed advisorily from the status echo.
type DocumentState struct {
	Loaded bool
	Name   string
}

// UploadResult is produced once per successful upload and immutable after
// creation. The flow holds at most one at a time.
type UploadResult struct {
	Filename        string `json:"filename"`
	ChunksCreated   int    `json:"chunks_created"`
	TotalCharacters int    `json:"total_characters"`
}

// StatusSnapshot is recomputed on every poll. It is never partially merged
// with a previous snapshot on success; a failed check resets Online to false
// instead of retaining a stale true.
type StatusSnapshot struct {
	Online         bool
	DocumentLoaded bool
	DocumentName   string
}

// FileInfo is display-only local metadata about a candidate upload. Pages is
// zero when unknown (non-PDF files, or a PDF the local reader cannot open).
type FileInfo struct {
	SizeBytes int64
	Pages     int
}

// APIInfo describes the backend, as reported by its root endpoint.
type APIInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
}
