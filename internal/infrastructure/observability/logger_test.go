package observability_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/greencycle/greencycle/backend/internal/infrastructure/observability"
	"github.com/greencycle/greencycle/backend/pkg/config"
)

func TestInitLogger_AppliesLevel(t *testing.T) {
	logger := observability.InitLogger(config.LoggingConfig{Level: "warn"}, "greencycle-test")

	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestInitLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	logger := observability.InitLogger(config.LoggingConfig{Level: "chatty"}, "greencycle-test")

	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
