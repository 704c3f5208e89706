package logging

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/gravity2d/config"
)

// LevelOff disables logging entirely
const LevelOff = "off"

// New builds a logger from the logging section
// With a file configured, output never touches the terminal; an oversized file is rotated to <file>.old first
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	if cfg.Level == LevelOff {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}

	output := "stderr"
	if cfg.File != "" {
		if err := prepareFile(cfg.File, int64(cfg.MaxSizeMB)<<20); err != nil {
			return nil, err
		}
		output = cfg.File
	}

	encoding := cfg.Encoding
	if encoding == "" {
		encoding = "console"
	}
	encoder := zap.NewProductionEncoderConfig()
	encoder.EncodeTime = zapcore.ISO8601TimeEncoder
	if encoding == "console" {
		encoder.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	zc := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         encoding,
		EncoderConfig:    encoder,
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{output},
		DisableCaller:    true,
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}

// prepareFile creates the log directory and rotates the file when it exceeds maxSize
func prepareFile(path string, maxSize int64) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create log directory")
		}
	}
	if maxSize <= 0 {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "stat log file")
	}
	if info.Size() <= maxSize {
		return nil
	}
	if err := os.Rename(path, path+".old"); err != nil {
		return errors.Wrap(err, "rotate log file")
	}
	return nil
}
