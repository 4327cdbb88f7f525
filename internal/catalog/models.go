package catalog

import "time"

// Status represents the lifecycle of a catalog resource.
type Status string

const (
	StatusPending     Status = "pending"
	StatusDownloading Status = "downloading"
	StatusDownloaded  Status = "downloaded"
	StatusOrganizing  Status = "organizing"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
	StatusReview      Status = "review"
)

var allStatuses = []Status{
	StatusPending,
	StatusDownloading,
	StatusDownloaded,
	StatusOrganizing,
	StatusCompleted,
	StatusFailed,
	StatusReview,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

var processingStatuses = map[Status]struct{}{
	StatusDownloading: {},
	StatusOrganizing:  {},
}

// ValidStatus reports whether value names a known lifecycle status.
func ValidStatus(value Status) bool {
	_, ok := statusSet[value]
	return ok
}

// Kind classifies the media type of a resource.
type Kind string

const (
	KindVideo      Kind = "video"
	KindAudio      Kind = "audio"
	KindTranscript Kind = "transcript"
)

// Resource is a streaming resource persisted in SQLite. URLs are unique at
// the storage layer: inserting a duplicate fails, it never overwrites.
type Resource struct {
	ID              int64
	ExternalID      string
	URL             string
	Title           string
	Kind            Kind
	Status          Status
	LocalPath       string
	FinalPath       string
	DurationSeconds float64
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HealthSummary describes aggregated resource counts per key lifecycle states.
type HealthSummary struct {
	Total      int
	Pending    int
	Processing int
	Failed     int
	Review     int
	Completed  int
}

// DatabaseHealth captures diagnostic information about the catalog database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	TableExists      bool
	IntegrityCheck   bool
	TotalResources   int
	Error            string
}
