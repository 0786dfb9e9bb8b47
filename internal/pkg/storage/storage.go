// Package storage abstracts where uploaded images live. Handlers and
// middleware program against Storage; the concrete driver is picked from
// config at startup.
package storage

import (
	"context"
	"mime/multipart"
)

// Storage is a blob store for uploaded images. Save returns the path a
// record should persist; Remove deletes by that same path.
type Storage interface {
	Save(ctx context.Context, file multipart.File, name string) (string, error)
	Remove(ctx context.Context, path string) error
}
