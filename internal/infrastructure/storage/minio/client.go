package minio

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"

	"github.com/turtacn/GeoRose/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/GeoRose/pkg/errors"
)

// ObjectAPI is the subset of *minio.Client used by the archive.
type ObjectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	SetBucketLifecycle(ctx context.Context, bucketName string, config *lifecycle.Configuration) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expiry time.Duration, reqParams url.Values) (*url.URL, error)
}

// ClientConfig holds the archive connection parameters.
type ClientConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	UseSSL        bool
	Region        string
	Bucket        string
	PresignExpiry time.Duration
	// RetentionDays expires archived objects; 0 keeps them forever.
	RetentionDays int
}

func applyDefaults(cfg *ClientConfig) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.Bucket == "" {
		cfg.Bucket = "rose-diagrams"
	}
	if cfg.PresignExpiry == 0 {
		cfg.PresignExpiry = time.Hour
	}
}

type MinIOClient struct {
	client ObjectAPI
	config ClientConfig
	logger logging.Logger
}

// NewMinIOClient connects to the object store and makes sure the archive
// bucket exists.
func NewMinIOClient(cfg ClientConfig, log logging.Logger) (*MinIOClient, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	applyDefaults(&cfg)

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeArchiveFailed, "failed to create minio client")
	}

	client := newClientWithAPI(mc, cfg, log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	log.Info("minio connected", logging.String("endpoint", cfg.Endpoint), logging.String("bucket", cfg.Bucket), logging.Bool("ssl", cfg.UseSSL))
	return client, nil
}

func newClientWithAPI(api ObjectAPI, cfg ClientConfig, log logging.Logger) *MinIOClient {
	applyDefaults(&cfg)
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &MinIOClient{client: api, config: cfg, logger: log}
}

// EnsureBucket creates the archive bucket if needed and installs the
// retention rule.  A lifecycle failure is logged, not returned; some
// S3-compatible stores do not support it.
func (c *MinIOClient) EnsureBucket(ctx context.Context) error {
	bucket := c.config.Bucket
	exists, err := c.client.BucketExists(ctx, bucket)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeArchiveFailed, "failed to check bucket existence")
	}
	if !exists {
		if err := c.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: c.config.Region}); err != nil {
			return errors.Wrap(err, errors.ErrCodeArchiveFailed, "failed to create bucket "+bucket)
		}
		c.logger.Info("created bucket", logging.String("bucket", bucket))
	}

	if c.config.RetentionDays > 0 {
		rules := lifecycle.NewConfiguration()
		rules.Rules = []lifecycle.Rule{{
			ID:         "diagram-retention",
			Status:     "Enabled",
			RuleFilter: lifecycle.Filter{Prefix: DiagramPrefix},
			Expiration: lifecycle.Expiration{Days: lifecycle.ExpirationDays(c.config.RetentionDays)},
		}}
		if err := c.client.SetBucketLifecycle(ctx, bucket, rules); err != nil {
			c.logger.Warn("failed to set bucket lifecycle", logging.String("bucket", bucket), logging.Err(err))
		}
	}
	return nil
}

func (c *MinIOClient) GetClient() ObjectAPI { return c.client }

func (c *MinIOClient) Bucket() string { return c.config.Bucket }

// GeneratePresignedGetURL signs a download link; expiry 0 uses the
// configured default.
func (c *MinIOClient) GeneratePresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	if expiry == 0 {
		expiry = c.config.PresignExpiry
	}
	u, err := c.client.PresignedGetObject(ctx, c.config.Bucket, objectName, expiry, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeArchiveFailed, "failed to presign object")
	}
	return u.String(), nil
}

//Personal.AI order the ending
