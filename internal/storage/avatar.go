package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"

	appconfig "github.com/alphaclinic/clinic-manager/internal/config"
)

const (
	avatarMaxDim  = 512
	webpQuality   = 85
	avatarKeyTmpl = "staff/avatars/%s.webp"
)

// AvatarStore transcodes uploaded staff avatars to WebP, bounds their
// dimensions and uploads them to S3-compatible storage.
type AvatarStore struct {
	client *s3.Client
	bucket string
	base   string
}

func NewAvatarStore(cfg *appconfig.Config) *AvatarStore {
	creds := credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")

	client := s3.New(s3.Options{
		Region:       cfg.S3Region,
		Credentials:  creds,
		UsePathStyle: cfg.S3Endpoint != "",
		BaseEndpoint: optionalEndpoint(cfg.S3Endpoint),
	})

	base := cfg.S3Endpoint
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &AvatarStore{
		client: client,
		bucket: cfg.S3Bucket,
		base:   base,
	}
}

func optionalEndpoint(endpoint string) *string {
	if endpoint == "" {
		return nil
	}
	return aws.String(endpoint)
}

// Upload decodes the image, scales it down to at most 512px on the long
// edge, re-encodes as WebP and uploads. Returns the public URL.
func (s *AvatarStore) Upload(ctx context.Context, r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode avatar: %w", err)
	}

	scaled := scaleDown(src, avatarMaxDim)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, scaled, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := fmt.Sprintf(avatarKeyTmpl, uuid.NewString())

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.base, key), nil
}

func scaleDown(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return src
	}

	if w >= h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
