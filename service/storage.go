package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"

	"cloud.google.com/go/storage"
	"go.opencensus.io/trace"
)

// Storage publishes artifacts too large to stream back in a response.
type Storage interface {
	Upload(ctx context.Context, rc io.ReadCloser, fileName string) (string, error)
}

type StorageService struct {
	bucket string
}

func NewStorage(bucket string) Storage {
	return &StorageService{bucket: bucket}
}

// Upload copies rc to a publicly readable object and returns its URL.
func (s *StorageService) Upload(ctx context.Context, rc io.ReadCloser, fileName string) (string, error) {
	defer rc.Close()
	ctx, span := trace.StartSpan(ctx, "service.Upload")
	defer span.End()

	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("storage client: %w", err)
	}
	defer client.Close()

	w := client.Bucket(s.bucket).Object(fileName).NewWriter(ctx)
	w.ACL = []storage.ACLRule{{Entity: storage.AllUsers, Role: storage.RoleReader}}
	w.CacheControl = "no-cache"
	w.ContentType = contentType(fileName)
	w.ContentDisposition = ContentDisposition(fileName)

	if _, err := io.Copy(w, rc); err != nil {
		w.Close()
		return "", fmt.Errorf("uploading %s: %w", fileName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("uploading %s: %w", fileName, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, fileName), nil
}

// ContentDisposition is the attachment header value for fileName, quoting or
// encoding the name when it is not a plain token.
func ContentDisposition(fileName string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": fileName}); v != "" {
		return v
	}
	return "attachment"
}

func contentType(fileName string) string {
	if t := mime.TypeByExtension(path.Ext(fileName)); t != "" {
		return t
	}
	return "application/octet-stream"
}
