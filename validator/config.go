package validator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// TransactionFee is the flat amount of prisms debited from the payer of
// every transaction, regardless of how many instructions it carries.
const TransactionFee uint64 = 5000

type Config struct {
	DataDir        string `json:"data_dir"`
	MaxSegmentSize uint64 `json:"max_segment_size"`
	LogLevel       string `json:"log_level"`
}

var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".bifrost"
	}
	return filepath.Join(home, ".bifrost")
}

func DefaultConfig() Config {
	return Config{
		DataDir:        DefaultDataDir(),
		MaxSegmentSize: 10 * 1024 * 1024,
		LogLevel:       "info",
	}
}

func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.DataDir) == "" {
		return errors.New("data_dir is required")
	}
	if cfg.MaxSegmentSize == 0 {
		return errors.New("max_segment_size must be > 0")
	}
	logLevel := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if _, ok := allowedLogLevels[logLevel]; !ok {
		return errors.New("invalid log_level")
	}
	return nil
}
