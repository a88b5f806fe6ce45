package service

import (
	"context"
	"fmt"
	"time"

	"pixelgram/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// 上传 key 的命名空间前缀
const (
	UploadPrefixPosts   = "posts"
	UploadPrefixAvatars = "avatars"
)

// 预签名 URL 有效期
const presignTTL = time.Hour

// UploadTicket 直传凭证
// 客户端用 uploadUrl 直接 PUT 到对象存储，本服务不经手文件内容
type UploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	Key       string `json:"key"`
}

type UploadService struct {
	presigner *s3.PresignClient
	bucket    string
	region    string
}

func NewUploadService(cfg *config.Config) *UploadService {
	client := s3.New(s3.Options{
		Region: cfg.S3.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			"",
		),
	})

	return &UploadService{
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.S3.Bucket,
		region:    cfg.S3.Region,
	}
}

// PresignUpload 签发一小时有效的直传 URL
// key = <prefix>/<毫秒时间戳>-<原文件名>，时间戳避免同名文件互相覆盖
// 不校验文件大小和内容，上传本身完全绕过本服务
func (s *UploadService) PresignUpload(ctx context.Context, prefix, filename, contentType string) (*UploadTicket, error) {
	key := fmt.Sprintf("%s/%d-%s", prefix, time.Now().UnixMilli(), filename)

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return nil, InternalErr("Failed to create upload URL", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)

	return &UploadTicket{
		UploadURL: req.URL,
		PublicURL: publicURL,
		Key:       key,
	}, nil
}
