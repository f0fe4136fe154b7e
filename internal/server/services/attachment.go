package services

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dkarpovs/epitrello/internal/common"
	sc "github.com/dkarpovs/epitrello/internal/server/config"
	"github.com/dkarpovs/epitrello/internal/server/repositories/repomanager"
)

// Test seams for the AWS SDK surface.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

const presignExpiry = 15 * time.Minute

// UploadSlot is a minted destination for one attachment upload: the object
// key the file will live under and a presigned PUT URL for it.
type UploadSlot struct {
	StoredName string `json:"storedName"`
	URL        string `json:"url"`
}

// AttachmentService mints presigned S3 URLs for attachment upload and
// download. File bytes never pass through the API server.
type AttachmentService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	config *sc.Config
}

func NewAttachmentService(db *sql.DB, rm repomanager.RepositoryManager, config *sc.Config) *AttachmentService {
	return &AttachmentService{db: db, rm: rm, config: config}
}

// StorageKeyFor mints the object key for an uploaded file: date-bucketed,
// uuid-named, original extension preserved.
func StorageKeyFor(fileName string) string {
	d := time.Now()
	return fmt.Sprintf("cards/%d/%02d/%02d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), filepath.Ext(fileName))
}

func (s *AttachmentService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// CreateUploadSlot mints a stored name for fileName and a presigned PUT URL
// the client uploads the bytes to directly.
func (s *AttachmentService) CreateUploadSlot(ctx context.Context, fileName string) (*UploadSlot, error) {

	if fileName == "" {
		return nil, common.ErrValidation
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := StorageKeyFor(fileName)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, err
	}

	return &UploadSlot{StoredName: key, URL: req.URL}, nil
}

// GetDownloadURL returns a presigned GET URL for a recorded attachment.
// Unknown stored names yield common.ErrNotFound from the repository.
func (s *AttachmentService) GetDownloadURL(ctx context.Context, storedName string) (string, error) {

	if _, err := s.rm.Attachments(s.db).GetByStoredName(ctx, storedName); err != nil {
		return "", err
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &storedName,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
