// Package storage persists uploaded avatar blobs and hands back durable
// public URLs. The rest of the system only ever sees the URL.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BlobStore stores one blob under a key and returns its public URL.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ObjectKey builds a unique avatar key. The original file name only
// contributes its extension; the rest of the key is server-generated so
// visitor-supplied names never reach the store.
func ObjectKey(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".jpg"
	}
	stamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("avatars/%s_%s%s", stamp, uuid.New().String()[:8], ext)
}

// ContentTypeFor maps a file name to the content type recorded with the blob.
func ContentTypeFor(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
