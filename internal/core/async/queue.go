package async

import (
	"context"
	"time"
)

// Job is one document waiting to be processed.
type Job struct {
	Path           string
	AttachmentName string // defaults to the base name of Path
	SubmittedAt    time.Time
	TraceID        string
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
