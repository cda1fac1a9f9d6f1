package talorgan_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-talorgan"
)

func TestConfigValidateRequiresOutputDir(t *testing.T) {
	cfg := talorgan.DefaultConfig()
	cfg.OutputDir = ""
	if err := cfg.Validate(); !errors.Is(err, talorgan.ErrOutputDirRequired) {
		t.Fatalf("expected ErrOutputDirRequired, got %v", err)
	}
}

func TestConfigValidateLoggingProviderUnknown(t *testing.T) {
	cfg := talorgan.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); !errors.Is(err, talorgan.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := talorgan.DefaultConfig()
	cfg.FileTypes = nil
	if _, err := talorgan.New(cfg); !errors.Is(err, talorgan.ErrFileTypesRequired) {
		t.Fatalf("expected ErrFileTypesRequired, got %v", err)
	}
}
