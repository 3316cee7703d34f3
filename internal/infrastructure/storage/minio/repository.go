package minio

import (
	"bytes"
	"context"
	"net/http"
	"path"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/GeoRose/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/GeoRose/pkg/errors"
)

// DiagramPrefix is the key prefix of every archived diagram artifact.
const DiagramPrefix = "diagrams/"

var ErrInvalidRequest = errors.New(errors.ErrCodeBadRequest, "invalid archive request")

// Artifact is one file produced by a diagram generation.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// ArchivedObject describes a stored artifact.
type ArchivedObject struct {
	Name       string
	ObjectKey  string
	ETag       string
	Size       int64
	URL        string
	UploadedAt time.Time
}

// DiagramArchive stores generated artifacts and hands back signed links.
type DiagramArchive interface {
	// Archive uploads artifacts under diagrams/<yyyy>/<mm>/<dd>/<id>/ and
	// returns one ArchivedObject per artifact with a presigned URL.
	Archive(ctx context.Context, id string, artifacts []Artifact, tags map[string]string) ([]ArchivedObject, error)
	Exists(ctx context.Context, objectKey string) (bool, error)
	Delete(ctx context.Context, objectKey string) error
}

type minioArchive struct {
	client *MinIOClient
	logger logging.Logger
	now    func() time.Time
}

func NewDiagramArchive(client *MinIOClient, log logging.Logger) DiagramArchive {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &minioArchive{client: client, logger: log, now: time.Now}
}

// ObjectKey builds the storage key of one artifact.
func ObjectKey(at time.Time, id, name string) string {
	return path.Join(DiagramPrefix, at.UTC().Format("2006/01/02"), id, name)
}

func (r *minioArchive) Archive(ctx context.Context, id string, artifacts []Artifact, tags map[string]string) ([]ArchivedObject, error) {
	if id == "" || len(artifacts) == 0 {
		return nil, ErrInvalidRequest
	}

	at := r.now()
	out := make([]ArchivedObject, 0, len(artifacts))
	for _, a := range artifacts {
		if a.Name == "" {
			return nil, ErrInvalidRequest.WithDetail("artifact name is empty")
		}
		contentType := a.ContentType
		if contentType == "" {
			contentType = http.DetectContentType(a.Data)
		}
		key := ObjectKey(at, id, a.Name)

		info, err := r.client.GetClient().PutObject(ctx, r.client.Bucket(), key,
			bytes.NewReader(a.Data), int64(len(a.Data)),
			minio.PutObjectOptions{ContentType: contentType, UserTags: tags})
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeArchiveFailed, "upload failed").WithDetail(key)
		}

		link, err := r.client.GeneratePresignedGetURL(ctx, key, 0)
		if err != nil {
			return nil, err
		}

		out = append(out, ArchivedObject{
			Name:       a.Name,
			ObjectKey:  key,
			ETag:       info.ETag,
			Size:       info.Size,
			URL:        link,
			UploadedAt: at,
		})
		r.logger.Debug("artifact archived", logging.String("key", key), logging.Int64("size", info.Size))
	}
	return out, nil
}

func (r *minioArchive) Exists(ctx context.Context, objectKey string) (bool, error) {
	_, err := r.client.GetClient().StatObject(ctx, r.client.Bucket(), objectKey, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, errors.Wrap(err, errors.ErrCodeArchiveFailed, "stat failed")
	}
	return true, nil
}

func (r *minioArchive) Delete(ctx context.Context, objectKey string) error {
	if err := r.client.GetClient().RemoveObject(ctx, r.client.Bucket(), objectKey, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(err, errors.ErrCodeArchiveFailed, "delete failed")
	}
	return nil
}

//Personal.AI order the ending
