package filestore

import (
	"bytes"
	"os"

	"github.com/EmmanuellaOsikoya/melodymatch/utils"
	Logger "github.com/EmmanuellaOsikoya/melodymatch/utils/log"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

const (
	DefaultS3ImageBucket = "melodymatch-post-images"
	defaultRegion        = "eu-west-1"
)

type S3FileStore struct {
	bucket    string
	cdnPrefix string
	uploader  *s3manager.Uploader
	svc       *s3.S3
}

// NewS3FileStore builds the production image store. The served url prefix
// comes from IMAGE_CDN_PREFIX so the bucket can sit behind a CDN.
func NewS3FileStore(bucket string) (*S3FileStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(defaultRegion),
	})
	if err != nil {
		return nil, err
	}

	cdnPrefix := os.Getenv("IMAGE_CDN_PREFIX")
	if cdnPrefix == "" {
		cdnPrefix = "https://" + bucket + ".s3.amazonaws.com/"
	}

	return &S3FileStore{
		bucket:    bucket,
		cdnPrefix: cdnPrefix,
		uploader:  s3manager.NewUploader(sess),
		svc:       s3.New(sess),
	}, nil
}

// GenerateKey derives the object key from the image content so identical
// uploads collapse onto one object.
func (s *S3FileStore) GenerateKey(data []byte, ext string) (string, error) {
	key, err := utils.TextToMd5Hash(string(data))
	if err != nil {
		return "", err
	}
	if len(key) == 0 {
		return "", errors.New("generate empty s3 key, invalid")
	}
	return key + ext, nil
}

// Store uploads the image bytes unless an object with the same content is
// already there.
func (s *S3FileStore) Store(data []byte, ext string) (key string, err error) {
	key, err = s.GenerateKey(data, ext)
	if err != nil {
		return "", err
	}

	if !s.IsKeyExisted(key) {
		_, err = s.uploader.Upload(&s3manager.UploadInput{
			ACL:    aws.String("public-read"),
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(data),
		})
		if err != nil {
			Logger.Log.Warn("fail to upload image to s3, key:", key, " err:", err)
			return "", err
		}
	}
	return key, nil
}

func (s *S3FileStore) IsKeyExisted(key string) bool {
	_, err := s.svc.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

func (s *S3FileStore) GetUrlFromKey(key string) string {
	return s.cdnPrefix + key
}

func (s *S3FileStore) CleanUp() {
	// do nothing for s3
}
