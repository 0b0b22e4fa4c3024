package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fibercare/backend-go/internal/domain"
)

// objectPutter is the slice of the S3 client the archiver needs
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archiver stores topology analysis reports as JSON objects in S3 so field
// teams can pull historical loss audits per OLT.
type Archiver struct {
	client objectPutter
	bucket string
}

// NewArchiver creates an Archiver for the given region and bucket
func NewArchiver(ctx context.Context, region, bucket string) (*Archiver, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	return &Archiver{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// ArchiveAnalysis writes one analysis report and returns its object key.
// Keys are time-prefixed per root element, newest last under the prefix.
func (a *Archiver) ArchiveAnalysis(ctx context.Context, analysis *domain.ExistingAnalysis) (string, error) {
	body, err := json.Marshal(analysis)
	if err != nil {
		return "", fmt.Errorf("marshal analysis report: %w", err)
	}

	key := fmt.Sprintf("analyses/%s/%s.json",
		analysis.RootBusinessID, time.Now().UTC().Format("20060102T150405Z"))

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("put analysis report: %w", err)
	}

	log.Printf("Archived analysis report for %s to s3://%s/%s", analysis.RootBusinessID, a.bucket, key)
	return key, nil
}
