package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/agencydesk/internal/common"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// AttachmentURLValidity is how long a presigned attachment URL stays usable.
const AttachmentURLValidity = 15 * time.Minute

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

// AttachmentStorageKey builds a fresh object key for an invoice attachment.
func AttachmentStorageKey(invoiceID string) string {
	d := time.Now()
	return fmt.Sprintf("invoices/%s/%d/%d/%d/%v", invoiceID, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *InvoiceService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
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
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignAttachmentUpload allocates a new storage key for the invoice's
// attachment, records it, and returns a presigned PUT URL for it. A previous
// attachment key is replaced.
func (s *InvoiceService) PresignAttachmentUpload(ctx context.Context, invoiceID string) (*models.AttachmentURL, error) {
	repo := s.repomanager.Invoices(s.db)
	if _, err := repo.Get(ctx, invoiceID); err != nil {
		return nil, invoiceErr(err)
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: presign client: %w", common.ErrorInternal, err)
	}

	bucket := s.config.S3Bucket
	key := AttachmentStorageKey(invoiceID)
	expires := time.Now().Add(AttachmentURLValidity)

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(AttachmentURLValidity))
	if err != nil {
		return nil, fmt.Errorf("%w: presign put: %w", common.ErrorInternal, err)
	}

	if err := repo.SetAttachmentKey(ctx, invoiceID, key); err != nil {
		return nil, invoiceErr(err)
	}

	return &models.AttachmentURL{StorageKey: key, URL: req.URL, ExpiresAt: expires}, nil
}

// PresignAttachmentDownload returns a presigned GET URL for the invoice's
// attachment, or common.ErrNoAttachment if none was uploaded.
func (s *InvoiceService) PresignAttachmentDownload(ctx context.Context, invoiceID string) (*models.AttachmentURL, error) {
	inv, err := s.repomanager.Invoices(s.db).Get(ctx, invoiceID)
	if err != nil {
		return nil, invoiceErr(err)
	}
	if inv.AttachmentKey == nil || *inv.AttachmentKey == "" {
		return nil, common.ErrNoAttachment
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: presign client: %w", common.ErrorInternal, err)
	}

	bucket := s.config.S3Bucket
	key := *inv.AttachmentKey
	expires := time.Now().Add(AttachmentURLValidity)

	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(AttachmentURLValidity))
	if err != nil {
		return nil, fmt.Errorf("%w: presign get: %w", common.ErrorInternal, err)
	}

	return &models.AttachmentURL{StorageKey: key, URL: req.URL, ExpiresAt: expires}, nil
}
