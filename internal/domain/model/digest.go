package model

import "time"

// JobState is the lifecycle state of a digest job.
//
// Pending is set when the controller accepts a submission; the external
// worker moves the job to Running and then to exactly one terminal state.
// Terminal states never transition back; a new submission over a terminal
// record supersedes it with a fresh record and id.
type JobState string

const (
	JobStatePending   JobState = "PENDING"
	JobStateRunning   JobState = "RUNNING"
	JobStateSucceeded JobState = "SUCCEEDED"
	JobStateFailed    JobState = "FAILED"
)

// InFlight returns true for states that block a concurrent submission.
func (s JobState) InFlight() bool {
	return s == JobStatePending || s == JobStateRunning
}

// Terminal returns true for states the worker never leaves.
func (s JobState) Terminal() bool {
	return s == JobStateSucceeded || s == JobStateFailed
}

// DigestRequest carries the caller-supplied generation parameters.
// Immutable once the job is created.
type DigestRequest struct {
	// Voices selects the narration voices, in speaker order.
	Voices []string `json:"voices,omitempty"`
	// Language is a BCP 47 tag, e.g. "en".
	Language string `json:"language,omitempty"`
	// Rate is the narration rate, e.g. "1.0".
	Rate string `json:"rate,omitempty"`
	// LibraryItemIDs optionally pins the digest to an explicit set of
	// saved items instead of letting the worker choose.
	LibraryItemIDs []string `json:"libraryItemIds,omitempty"`
	// Schedule optionally requests recurring generation ("daily" or "weekdays").
	Schedule string `json:"schedule,omitempty"`
}

// Chapter is one section of a rendered digest.
type Chapter struct {
	Title     string `json:"title"`
	ID        string `json:"id"`
	URL       string `json:"url,omitempty"`
	WordCount int    `json:"wordCount,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// SpeechFile describes one generated audio segment.
type SpeechFile struct {
	Text        string `json:"text,omitempty"`
	AudioURL    string `json:"audioUrl"`
	SpeechMarks string `json:"speechMarks,omitempty"`
}

// DigestResult is the worker's output, present only once the job succeeded.
type DigestResult struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Byline      string       `json:"byline,omitempty"`
	URL         string       `json:"url,omitempty"`
	Content     string       `json:"content,omitempty"`
	Chapters    []Chapter    `json:"chapters,omitempty"`
	AudioURLs   []string     `json:"urlsToAudio,omitempty"`
	SpeechFiles []SpeechFile `json:"speechFiles,omitempty"`
}

// DigestJob is the record held in the job state store, keyed by user id.
// At most one job exists per user at a time; the store key is the user,
// not the job id.
type DigestJob struct {
	ID        string        `json:"id"`
	State     JobState      `json:"state"`
	Request   DigestRequest `json:"request"`
	Result    *DigestResult `json:"result,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// JobStatus is the partial view returned while a job is running.
// It deliberately carries no result fields.
type JobStatus struct {
	JobID string   `json:"jobId"`
	State JobState `json:"state"`
}

// Status returns the partial view of the job.
func (j *DigestJob) Status() JobStatus {
	return JobStatus{JobID: j.ID, State: j.State}
}
