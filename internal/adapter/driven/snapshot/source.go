package snapshot

import (
	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/repository"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/shared/types"
)

// FromArgs escolhe a fonte do snapshot. Um bucket S3 tem prioridade sobre o diretório local.
func FromArgs(args *types.CLIArgs) (repository.SnapshotRepository, error) {
	switch {
	case args.S3Bucket != "":
		return NewS3Repository(args.S3Bucket, args.S3Prefix, args.AWSProfile), nil
	case args.SourceDir != "":
		return NewDirectoryRepository(args.SourceDir), nil
	default:
		return nil, types.ErrNoSnapshotSource
	}
}
