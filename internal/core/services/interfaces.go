package services

import (
	"context"
	"io"
)

// Mailer delivers a plain-text message. Implementations return an error on
// any delivery failure; callers decide whether it is fatal.
type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, to, subject, body string) error
}

// ImageStore persists candidate portraits by sanitized file name
type ImageStore interface {
	Save(filename string, r io.Reader) (string, error)
	Delete(name string) error
}
