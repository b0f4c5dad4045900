// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package file writes publicly readable files to Cloud Storage.
package file

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// Writer stores a file and returns the URL it can be read from.
type Writer interface {
	WriteFile(ctx context.Context, path string, contentType string, data []byte) (string, error)
}

// IO writes files to a single bucket.
type IO struct {
	storage *storage.Client
	bucket  string
}

// NewIO returns an IO writing to bucket.
func NewIO(storage *storage.Client, bucket string) *IO {
	return &IO{
		storage: storage,
		bucket:  bucket,
	}
}

func (io *IO) WriteFile(ctx context.Context, path string, contentType string, data []byte) (string, error) {
	wc := io.storage.Bucket(io.bucket).Object(path).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("file: writing %s: %w", path, err)
	}
	// The object is only committed on Close.
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("file: closing %s: %w", path, err)
	}
	return PublicURL(io.bucket, path), nil
}

// PublicURL returns the public URL of an object.
func PublicURL(bucket string, path string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, path)
}
