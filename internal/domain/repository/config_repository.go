package repository

import (
	"github.com/rpnorth/LichtBlick-Case-Study/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration files.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
}
