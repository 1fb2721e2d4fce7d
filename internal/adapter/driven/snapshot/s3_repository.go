package snapshot

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/repository"
)

// s3API is the part of the S3 client the repository uses.
type s3API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3RepositoryImpl implementa o SnapshotRepository sobre um bucket S3, com cache do cliente.
type S3RepositoryImpl struct {
	bucket  string
	prefix  string
	profile string

	client s3API
	mu     sync.Mutex
}

// NewS3Repository cria um SnapshotRepository para bucket/prefix usando o profile AWS informado.
// Um profile vazio usa a cadeia de credenciais padrão.
func NewS3Repository(bucket, prefix, profile string) repository.SnapshotRepository {
	return &S3RepositoryImpl{bucket: bucket, prefix: prefix, profile: profile}
}

// newS3RepositoryWithClient is used by tests to inject a fake client.
func newS3RepositoryWithClient(bucket, prefix string, client s3API) *S3RepositoryImpl {
	return &S3RepositoryImpl{bucket: bucket, prefix: prefix, client: client}
}

func (r *S3RepositoryImpl) Describe() string {
	return fmt.Sprintf("s3://%s/%s", r.bucket, strings.TrimPrefix(r.prefix, "/"))
}

// getClient carrega a configuração AWS uma única vez por repositório.
func (r *S3RepositoryImpl) getClient(ctx context.Context) (s3API, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client != nil {
		return r.client, nil
	}

	var opts []func(*config.LoadOptions) error
	if r.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(r.profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %s: %w", r.profile, err)
	}

	r.client = s3.NewFromConfig(cfg)
	return r.client, nil
}

// Files lista o prefixo e baixa cada objeto cujo nome contém a data do download.
func (r *S3RepositoryImpl) Files(ctx context.Context, downloadDate string) ([]entity.SnapshotFile, error) {
	client, err := r.getClient(ctx)
	if err != nil {
		return nil, err
	}

	var keys []string
	p := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: aws.String(r.bucket),
		Prefix: aws.String(r.prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing s3://%s/%s: %w", r.bucket, r.prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") || !strings.Contains(path.Base(key), downloadDate) {
				continue
			}
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	files := make([]entity.SnapshotFile, 0, len(keys))
	for _, key := range keys {
		data, err := r.getObject(ctx, client, key)
		if err != nil {
			return nil, err
		}
		files = append(files, entity.SnapshotFile{Name: path.Base(key), Data: data})
	}
	return files, nil
}

func (r *S3RepositoryImpl) getObject(ctx context.Context, client s3API, key string) ([]byte, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("error downloading s3://%s/%s: %w", r.bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading s3://%s/%s: %w", r.bucket, key, err)
	}
	return data, nil
}
