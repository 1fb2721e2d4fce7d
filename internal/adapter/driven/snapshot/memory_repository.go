package snapshot

import (
	"context"
	"sort"
	"strings"

	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/repository"
)

// MemoryRepositoryImpl serves snapshot files held in memory.
type MemoryRepositoryImpl struct {
	files []entity.SnapshotFile
}

// NewMemoryRepository returns a SnapshotRepository over the given files.
func NewMemoryRepository(files ...entity.SnapshotFile) repository.SnapshotRepository {
	return &MemoryRepositoryImpl{files: files}
}

func (r *MemoryRepositoryImpl) Describe() string {
	return "memory"
}

func (r *MemoryRepositoryImpl) Files(_ context.Context, downloadDate string) ([]entity.SnapshotFile, error) {
	var out []entity.SnapshotFile
	for _, f := range r.files {
		if strings.Contains(f.Name, downloadDate) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
