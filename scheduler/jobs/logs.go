package jobs

import (
	"context"
	"fmt"
	"time"

	"riftrewind/pkg/config"
)

// LogUploader ships the local log file.
type LogUploader interface {
	UploadToS3Bucket(ctx context.Context, bucket config.BucketConfiguration, objectKey string) error
}

// UploadLogs sends the scheduler log to the bucket, named by the upload time.
func UploadLogs(uploader LogUploader, bucket config.BucketConfiguration, prefix string) error {
	if bucket.LogBucket == "" {
		return nil
	}

	ctx, cancel := jobContext()
	defer cancel()

	key := fmt.Sprintf("%s/%s.log", prefix, time.Now().UTC().Format("2006-01-02T15-04-05"))
	if err := uploader.UploadToS3Bucket(ctx, bucket, key); err != nil {
		return fmt.Errorf("couldn't upload the log: %w", err)
	}
	return nil
}
