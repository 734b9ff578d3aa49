package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	t.Setenv("GCS_BUCKET_NAME", "")
	cfg := fromViper(newTestViper())

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, LLMProviderGoogleAI, cfg.LLM.Provider)
	assert.Equal(t, cfg.LLM.Model, cfg.LLM.VisionModel)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 15*time.Minute, cfg.Storage.UploadURLExpiry)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 10*1024*1024, cfg.Extraction.MaxBytes)
	assert.Empty(t, cfg.Storage.Bucket)
	assert.False(t, cfg.DatabaseEnabled())
}

func TestFromViper_BucketEnvOverride(t *testing.T) {
	t.Setenv("GCS_BUCKET_NAME", "env-bucket")
	v := newTestViper()
	v.Set("storage.bucket", "file-bucket")

	cfg := fromViper(v)
	assert.Equal(t, "env-bucket", cfg.Storage.Bucket)
}

func TestFromViper_ProviderIsCaseInsensitive(t *testing.T) {
	v := newTestViper()
	v.Set("llm.provider", "OpenAI")
	v.Set("llm.vision_model", "gpt-4o")

	cfg := fromViper(v)
	assert.Equal(t, LLMProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.VisionModel)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := fromViper(newTestViper())
		cfg.LLM.APIKey = "key"
		cfg.Session.JWTSecret = "secret"
		cfg.Redis.Address = "localhost:6379"
		return cfg
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.LLM.APIKey = ""
	assert.ErrorContains(t, cfg.Validate(), "llm.api_key")

	cfg = valid()
	cfg.LLM.Provider = LLMProviderOllama
	assert.ErrorContains(t, cfg.Validate(), "llm.server_url")
	cfg.LLM.ServerURL = "http://localhost:11434"
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.LLM.Provider = "anthropic"
	assert.ErrorContains(t, cfg.Validate(), "unsupported llm.provider")

	cfg = valid()
	cfg.Session.JWTSecret = ""
	cfg.Redis.Address = ""
	err := cfg.Validate()
	assert.ErrorContains(t, err, "session.jwt_secret")
	assert.ErrorContains(t, err, "redis.address")
}

func TestConfig_GetDSN(t *testing.T) {
	cfg := &Config{DB: DBConfig{Host: "db.local", Port: 1521, User: "quiz", Password: "p@ss", DBName: "FREEPDB1"}}
	dsn := cfg.GetDSN()
	assert.Contains(t, dsn, "oracle://")
	assert.Contains(t, dsn, "db.local:1521/FREEPDB1")
	assert.NotContains(t, dsn, "p@ss@")
	assert.True(t, cfg.DatabaseEnabled())
}
