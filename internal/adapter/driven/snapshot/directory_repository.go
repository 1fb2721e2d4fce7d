package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/repository"
)

// DirectoryRepositoryImpl lê os arquivos do snapshot de um diretório local.
type DirectoryRepositoryImpl struct {
	dir string
}

// NewDirectoryRepository cria um SnapshotRepository sobre o diretório informado.
func NewDirectoryRepository(dir string) repository.SnapshotRepository {
	return &DirectoryRepositoryImpl{dir: dir}
}

// Describe returns the absolute directory path when it can be resolved.
func (r *DirectoryRepositoryImpl) Describe() string {
	if abs, err := filepath.Abs(r.dir); err == nil {
		return abs
	}
	return r.dir
}

// Files lista o diretório e lê cada arquivo cujo nome contém a data do download.
func (r *DirectoryRepositoryImpl) Files(ctx context.Context, downloadDate string) ([]entity.SnapshotFile, error) {
	fileInfo, err := os.Stat(r.dir)
	if err != nil {
		return nil, fmt.Errorf("error accessing snapshot directory: %w", err)
	}
	if !fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", r.dir)
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("error listing snapshot directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.Contains(entry.Name(), downloadDate) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	files := make([]entity.SnapshotFile, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(r.dir, name))
		if err != nil {
			return nil, fmt.Errorf("error reading snapshot file %s: %w", name, err)
		}
		files = append(files, entity.SnapshotFile{Name: name, Data: data})
	}
	return files, nil
}
