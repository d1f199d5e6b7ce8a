package report

// Report is the JSON summary a batch run writes next to its outputs.
type Report struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Operation   string           `json:"operation"`
	Profile     string           `json:"profile,omitempty"`
	BasePath    string           `json:"base_path"`
	RunInfo     *RunInfo         `json:"run_info,omitempty"`
	Entries     map[string]Entry `json:"entries"`
	Stats       Stats            `json:"stats"`
}

// RunInfo captures run-time parameters for diagnostics.
type RunInfo struct {
	Workers       int `json:"workers"`
	MaxDimension  int `json:"max_dimension"`
	UpscaleFactor int `json:"upscale_factor"`
}

// Entry describes one source image and its enhanced output.
type Entry struct {
	Original ImageInfo `json:"original"`
	Result   Result    `json:"result"`
}

// ImageInfo holds dimensions and size of the source image.
type ImageInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}

// Result is the enhanced output written to disk.
type Result struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
	Hash   string `json:"hash"` // first 16 hex chars of xxhash64
	Path   string `json:"path"` // relative to base_path
}

// Stats aggregates run metrics.
type Stats struct {
	TotalImages      int   `json:"total_images"`
	TotalFailed      int   `json:"total_failed,omitempty"`
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
}

// SupportedReportVersion is the current schema version.
const SupportedReportVersion = 1
