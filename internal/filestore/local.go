package filestore

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type localStore struct {
	folder string
}

var _ FileStore = (*localStore)(nil)

func NewLocalStore(folder string) (*localStore, error) {
	if err := os.MkdirAll(folder, 0o750); err != nil {
		return nil, errors.Wrapf(err, "failed to create upload folder %s", folder)
	}
	return &localStore{folder: folder}, nil
}

func (s *localStore) Save(_ context.Context, name string, content io.Reader) error {
	if err := checkName(name); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(s.folder, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", name)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return errors.Wrapf(err, "failed to write %s", name)
	}
	return nil
}

func (s *localStore) Read(_ context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(filepath.Join(s.folder, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrFileNotFound, name)
		}
		return nil, errors.Wrapf(err, "failed to read %s", name)
	}
	return content, nil
}

func (s *localStore) Type() string {
	return "local"
}
