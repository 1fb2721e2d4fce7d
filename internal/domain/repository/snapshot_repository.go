package repository

import (
	"context"

	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"
)

// SnapshotRepository lists the named data files of one snapshot.
type SnapshotRepository interface {
	// Files returns every file whose name contains the download date string.
	Files(ctx context.Context, downloadDate string) ([]entity.SnapshotFile, error)
	// Describe names the source for console output, e.g. a directory or s3:// URL.
	Describe() string
}
