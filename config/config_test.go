package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_DefaultsFromEnvironment(t *testing.T) {
	t.Setenv("GO_ENV", "config-test-missing")
	t.Setenv("MONGODB_CONNECTION_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DBNAME_DATA", "marketplace")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Address)
	assert.Equal(t, 300*time.Second, cfg.CacheTTL())
	assert.Equal(t, "store", cfg.Analytics_HistorySource)
	assert.True(t, cfg.Analytics_SingleFlight)
	assert.Equal(t, []int{7, 30, 90}, cfg.WarmupWindows())
}

func TestNewConfig_MissingRequired(t *testing.T) {
	t.Setenv("GO_ENV", "config-test-missing")
	// t.Setenv để khôi phục giá trị cũ sau test, rồi xóa hẳn biến
	t.Setenv("MONGODB_CONNECTION_URI", "")
	t.Setenv("MONGODB_DBNAME_DATA", "")
	require.NoError(t, os.Unsetenv("MONGODB_CONNECTION_URI"))
	require.NoError(t, os.Unsetenv("MONGODB_DBNAME_DATA"))

	_, err := NewConfig()
	assert.Error(t, err, "thiếu MONGODB_CONNECTION_URI phải báo lỗi")
}

func TestNewConfig_RejectsUnknownHistorySource(t *testing.T) {
	t.Setenv("GO_ENV", "config-test-missing")
	t.Setenv("MONGODB_CONNECTION_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DBNAME_DATA", "marketplace")
	t.Setenv("ANALYTICS_HISTORY_SOURCE", "redis")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestConfiguration_Helpers(t *testing.T) {
	cfg := &Configuration{Analytics_CacheTTL: 0, Analytics_RequestTimeout: -1, ReportWarmup_Windows: " 14, abc,0, 30 "}

	assert.Equal(t, 300*time.Second, cfg.CacheTTL())
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	assert.Equal(t, []int{14, 30}, cfg.WarmupWindows())
}
