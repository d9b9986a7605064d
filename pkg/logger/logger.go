package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"riftrewind/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// Logger writes structured logs to the console and to a local file that can be shipped to a bucket.
type Logger struct {
	mu       sync.Mutex
	log      zerolog.Logger
	logFile  *os.File
	filePath string
}

// Create the log instance with a temporary file.
// The console output is only added when console is not nil.
func CreateLogger(level string, console io.Writer) (*Logger, error) {
	f, err := os.CreateTemp("", "log-*.log")
	if err != nil {
		return nil, err
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}

	l := &Logger{
		logFile:  f,
		filePath: f.Name(),
	}

	// The file always gets JSON lines, the console gets the human readable format.
	var output io.Writer = lockedWriter{l}
	if console != nil {
		output = zerolog.MultiLevelWriter(
			zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339},
			output,
		)
	}

	l.log = zerolog.New(output).Level(parsed).With().Timestamp().Logger()
	return l, nil
}

// Zerolog returns the underlying logger for structured events.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.log
}

// Path of the local log file.
func (l *Logger) Path() string {
	return l.filePath
}

// Log a simple info.
func (l *Logger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

// Log a warning.
func (l *Logger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

// Log a error.
func (l *Logger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}

// Clean the file contents.
func (l *Logger) CleanFile() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logFile.Truncate(0)
	l.logFile.Seek(0, io.SeekStart)
}

// Close the underlying file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.logFile.Close()
}

// Upload the log to a s3 bucket.
func (l *Logger) UploadToS3Bucket(ctx context.Context, bucket config.BucketConfiguration, objectKey string) error {
	if bucket.LogBucket == "" {
		return fmt.Errorf("no log bucket configured")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.logFile.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind file: %w", err)
	}

	// Get the config.
	cfg := aws.Config{
		Region: bucket.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				bucket.AccessKey,
				bucket.AccessSecret,
				"",
			),
		),
	}

	// Create the client.
	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if bucket.Endpoint != "" {
			o.BaseEndpoint = aws.String(bucket.Endpoint)
		}
	})

	// Run the put.
	_, err := s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket.LogBucket),
		Key:    aws.String(objectKey),
		Body:   l.logFile,
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3 bucket: %w", objectKey, err)
	}

	// Clean the file after sending.
	l.logFile.Truncate(0)
	l.logFile.Seek(0, io.SeekStart)

	return nil
}

// lockedWriter serializes the writes with the upload.
type lockedWriter struct {
	l *Logger
}

func (w lockedWriter) Write(p []byte) (int, error) {
	w.l.mu.Lock()
	defer w.l.mu.Unlock()

	return w.l.logFile.Write(p)
}
