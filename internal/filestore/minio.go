package filestore

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type MinioOpts func(c *minioConfig)

type minioConfig struct {
	endpoint        string
	bucket          string
	accessKey       string
	secretAccessKey string
	useSSL          bool
}

type minioStore struct {
	cfg    *minioConfig
	client *minio.Client
}

var _ FileStore = (*minioStore)(nil)

func NewMinioStore(opts ...MinioOpts) (*minioStore, error) {
	cfg := &minioConfig{}
	for _, o := range opts {
		o(cfg)
	}

	client, err := minio.New(cfg.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.accessKey, cfg.secretAccessKey, ""),
		Secure: cfg.useSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create minio client")
	}

	return &minioStore{cfg: cfg, client: client}, nil
}

func (s *minioStore) Save(ctx context.Context, name string, content io.Reader) error {
	if err := checkName(name); err != nil {
		return err
	}

	exists, err := s.client.BucketExists(ctx, s.cfg.bucket)
	if err != nil {
		return errors.Wrapf(err, "failed to check bucket %s", s.cfg.bucket)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.cfg.bucket, minio.MakeBucketOptions{}); err != nil {
			return errors.Wrapf(err, "failed to create bucket %s", s.cfg.bucket)
		}
	}

	if _, err := s.client.PutObject(ctx, s.cfg.bucket, name, content, -1, minio.PutObjectOptions{ContentType: xlsxContentType}); err != nil {
		return errors.Wrapf(err, "failed to upload %s", name)
	}
	return nil
}

func (s *minioStore) Read(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	object, err := s.client.GetObject(ctx, s.cfg.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get %s", name)
	}
	defer object.Close()

	content, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, errors.Wrap(ErrFileNotFound, name)
		}
		return nil, errors.Wrapf(err, "failed to download %s", name)
	}
	return content, nil
}

func (s *minioStore) Type() string {
	return "minio"
}

func WithEndpoint(endpoint string) MinioOpts {
	return func(c *minioConfig) {
		c.endpoint = endpoint
	}
}

func WithBucket(bucket string) MinioOpts {
	return func(c *minioConfig) {
		c.bucket = bucket
	}
}

func WithAccessKey(accessKey string) MinioOpts {
	return func(c *minioConfig) {
		c.accessKey = accessKey
	}
}

func WithSecretKey(secretKey string) MinioOpts {
	return func(c *minioConfig) {
		c.secretAccessKey = secretKey
	}
}

func WithSSL(useSSL bool) MinioOpts {
	return func(c *minioConfig) {
		c.useSSL = useSSL
	}
}
