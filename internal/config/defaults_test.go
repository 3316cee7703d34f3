package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultTitle, cfg.Diagram.DefaultTitle)
	assert.Equal(t, 10, cfg.Diagram.DefaultBinWidth)
	assert.Equal(t, "viridis", cfg.Diagram.DefaultPalette)
	assert.Equal(t, 10.0, cfg.Diagram.WidthInches)
	assert.Equal(t, 300, cfg.Diagram.DPI)
	assert.Equal(t, DefaultRedisTTL, cfg.Redis.TTL)
	assert.Equal(t, []string{DefaultKafkaBroker}, cfg.Kafka.Brokers)
	assert.Equal(t, time.Hour, cfg.MinIO.PresignExpiry)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{Diagram: DiagramConfig{DefaultBinWidth: 15, DefaultPalette: "turbo", DPI: 100}}
	ApplyDefaults(cfg)

	assert.Equal(t, 15, cfg.Diagram.DefaultBinWidth)
	assert.Equal(t, "turbo", cfg.Diagram.DefaultPalette)
	assert.Equal(t, 100, cfg.Diagram.DPI)
}

func TestApplyDefaults_Nil(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

//Personal.AI order the ending
