// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// objectWriterFunc opens a writer for an object in the bucket. It is a
// seam so uploads can be tested without GCS.
type objectWriterFunc func(ctx context.Context, object string) io.WriteCloser

type Client struct {
	storageClient *storage.Client
	newWriter     objectWriterFunc
	BucketName    string
}

// NewClient connects to GCS for bucketName.
//
// An empty saKeyPath uses Application Default Credentials; a non-empty
// one must point at an existing service account key.
func NewClient(ctx context.Context, bucketName, saKeyPath string) (*Client, error) {
	var opts []option.ClientOption
	if saKeyPath != "" {
		info, err := os.Stat(saKeyPath)
		if err != nil {
			return nil, fmt.Errorf("service account key not found at path: %s: %w", saKeyPath, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("service account key path is a directory: %s", saKeyPath)
		}
		opts = append(opts, option.WithCredentialsFile(saKeyPath))
	}

	storageClient, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS storage client: %w", err)
	}

	c := &Client{
		storageClient: storageClient,
		BucketName:    bucketName,
	}
	c.newWriter = c.bucketWriter
	return c, nil
}

func (c *Client) bucketWriter(ctx context.Context, object string) io.WriteCloser {
	w := c.storageClient.Bucket(c.BucketName).Object(object).NewWriter(ctx)
	w.ContentType = contentType(object)
	w.CacheControl = "no-cache, no-store, must-revalidate"
	return w
}

// Close releases the underlying storage client.
func (c *Client) Close() error {
	if c.storageClient == nil {
		return nil
	}
	return c.storageClient.Close()
}

// UploadFile copies localPath to the object gcsPath.
func (c *Client) UploadFile(ctx context.Context, localPath, gcsPath string) error {
	localFile, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open the local file: %s: %w", localPath, err)
	}
	defer localFile.Close()

	writer := c.newWriter(ctx, gcsPath)
	if _, err := io.Copy(writer, localFile); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to copy local file %s to GCS object %s: %w", localPath, gcsPath, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer for %s: %w", gcsPath, err)
	}
	return nil
}

// UploadArtifacts uploads each file under "<prefix>/<run-id>/<basename>".
//
// The run id is a fresh UUID so repeated runs never overwrite each other.
// It returns the gs:// URLs in the order of localPaths. Files uploaded
// before a failure stay in the bucket.
func (c *Client) UploadArtifacts(ctx context.Context, prefix string, localPaths ...string) ([]string, error) {
	runID := uuid.NewString()
	urls := make([]string, 0, len(localPaths))
	for _, localPath := range localPaths {
		object := ObjectName(prefix, runID, localPath)
		if err := c.UploadFile(ctx, localPath, object); err != nil {
			return urls, err
		}
		urls = append(urls, fmt.Sprintf("gs://%s/%s", c.BucketName, object))
	}
	return urls, nil
}

// ObjectName joins prefix, runID and the base name of localPath with "/".
func ObjectName(prefix, runID, localPath string) string {
	prefix = strings.Trim(prefix, "/")
	base := filepath.Base(localPath)
	if prefix == "" {
		return path.Join(runID, base)
	}
	return path.Join(prefix, runID, base)
}

func contentType(object string) string {
	switch strings.ToLower(path.Ext(object)) {
	case ".md":
		return "text/markdown; charset=utf-8"
	case ".json":
		return "application/json"
	case ".prom":
		return "text/plain; version=0.0.4"
	default:
		return "application/octet-stream"
	}
}
