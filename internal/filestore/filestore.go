package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/watchair/watchair/internal/config"
)

// ErrFileNotFound is returned when reading a name that was never stored.
var ErrFileNotFound = errors.New("file not found")

// FileStore keeps uploaded workbooks under flat names.
type FileStore interface {
	Save(ctx context.Context, name string, content io.Reader) error
	Read(ctx context.Context, name string) ([]byte, error)
	Type() string
}

// New builds the file store selected by the storage configuration.
func New(cfg config.StorageConfig) (FileStore, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStore(cfg.UploadFolder)
	case "minio", "s3":
		return NewMinioStore(
			WithEndpoint(cfg.Endpoint),
			WithBucket(cfg.Bucket),
			WithAccessKey(cfg.AccessKey),
			WithSecretKey(cfg.SecretKey),
			WithSSL(cfg.UseSSL),
		)
	}
	return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
}

func checkName(name string) error {
	if name == "" || name == "." || filepath.Base(name) != name {
		return fmt.Errorf("invalid file name %q", name)
	}
	return nil
}
