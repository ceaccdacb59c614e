package model

// TaskStatus represents the status of a single file conversion
type TaskStatus string

const (
	// TaskStatusPending means the file is selected but not yet handed to the encoder
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusConverting means the encoder is running for the file
	TaskStatusConverting TaskStatus = "Converting"

	// TaskStatusCompleted means the .ogg output was written
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the encoder failed for the file
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the encoder is running
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusConverting
}

// IsFinished returns true if the task resolved (completed or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusError
}
