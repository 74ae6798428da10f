// Package archive writes point-in-time CSV snapshots of the enquiry
// collection to S3, for the sales team's spreadsheet-driven follow-up.
package archive

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/meridianfx/enquiries-api/internal/enquiries"
	"github.com/meridianfx/enquiries-api/pkg/logging"
)

// S3API is the subset of the S3 client used by Exporter.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Exporter snapshots enquiries to S3. If bucket is empty all
// operations are no-ops.
type Exporter struct {
	bucket   string
	s3Client S3API
	logger   *logging.Logger
	now      func() time.Time
}

// NewExporter creates an Exporter writing into the given bucket.
func NewExporter(s3Client S3API, bucket string, logger *logging.Logger) *Exporter {
	if logger == nil {
		logger = logging.Default()
	}
	return &Exporter{bucket: bucket, s3Client: s3Client, logger: logger, now: time.Now}
}

// Enabled returns true if export is configured (bucket is set).
func (e *Exporter) Enabled() bool {
	return e != nil && e.bucket != "" && e.s3Client != nil
}

var csvHeader = []string{"id", "name", "email", "phone", "country", "company", "message", "date", "resolved", "created_at"}

// Export writes one CSV object containing the given enquiries and
// returns its key.
func (e *Exporter) Export(ctx context.Context, list []*enquiries.Enquiry) (string, error) {
	if !e.Enabled() {
		return "", fmt.Errorf("archive: exporter not configured")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("archive: write header: %w", err)
	}
	for _, enq := range list {
		record := []string{
			enq.ID,
			enq.Name,
			enq.Email,
			enq.Phone,
			enq.Country,
			enq.Company,
			enq.Message,
			enq.Date,
			strconv.FormatBool(enq.Resolved),
			enq.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("archive: write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("archive: flush csv: %w", err)
	}

	now := e.now().UTC()
	key := fmt.Sprintf("enquiries/exports/%d/%02d/enquiries-%s.csv",
		now.Year(), now.Month(), now.Format("20060102T150405Z"))

	_, err := e.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("archive: s3 put %s: %w", key, err)
	}

	e.logger.Info("exported enquiries snapshot", "key", key, "count", len(list))
	return key, nil
}
