package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/repository"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/shared/types"
)

// decoder parses one config file format.
type decoder struct {
	format    string
	unmarshal func([]byte, interface{}) error
}

var decoders = map[string]decoder{
	".toml": {format: "TOML", unmarshal: toml.Unmarshal},
	".yaml": {format: "YAML", unmarshal: yaml.Unmarshal},
	".yml":  {format: "YAML", unmarshal: yaml.Unmarshal},
	".json": {format: "JSON", unmarshal: json.Unmarshal},
}

var supportedReportTypes = map[string]bool{"csv": true, "json": true, "pdf": true, "xlsx": true}

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile lê um arquivo TOML, YAML ou JSON e valida os valores do relatório.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	dec, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg types.Config
	if err := dec.unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s file: %w", dec.format, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return &cfg, nil
}

// validate rejeita valores que a CLI também rejeitaria.
func validate(cfg *types.Config) error {
	if cfg.MaxUsage < 0 {
		return fmt.Errorf("invalid max_usage %v: must be positive", cfg.MaxUsage)
	}
	if cfg.Top < 0 {
		return fmt.Errorf("invalid top %d: must not be negative", cfg.Top)
	}
	for i, rt := range cfg.ReportType {
		rt = strings.ToLower(strings.TrimSpace(rt))
		if !supportedReportTypes[rt] {
			return fmt.Errorf("invalid report_type %q: use csv, json, pdf or xlsx", cfg.ReportType[i])
		}
		cfg.ReportType[i] = rt
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log_format %q: use console or json", cfg.LogFormat)
	}
	return nil
}
