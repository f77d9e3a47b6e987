package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"profile_api_url": "http://api.local/api/profile",
		"autofill_url": "http://parser.local/api/auto-fill-resume",
		"port": 8080,
		"timeout_seconds": 15,
		"verbose": true
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://api.local/api/profile", cfg.ProfileAPIURL)
	assert.Equal(t, "http://parser.local/api/auto-fill-resume", cfg.AutofillURL)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.Timeout())
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty", Config{}, false},
		{"defaults", Defaults(), false},
		{"relative url", Config{ProfileAPIURL: "/api/profile"}, true},
		{"bad scheme", Config{AutofillURL: "ftp://parser/x"}, true},
		{"port too large", Config{Port: 70000}, true},
		{"negative timeout", Config{TimeoutSeconds: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{AutofillURL: "http://custom/parse", Port: 9000}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, DefaultProfileAPIURL, merged.ProfileAPIURL)
	assert.Equal(t, "http://custom/parse", merged.AutofillURL)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "*", merged.CORSOrigin)
	assert.Equal(t, DefaultTimeout, merged.Timeout())
	assert.Equal(t, "http://custom/parse", cfg.AutofillURL, "receiver is not modified")
}

func TestMergeWithDefaults_Layered(t *testing.T) {
	t.Setenv("PROFILE_API_URL", "http://env/api/profile")
	t.Setenv("AUTOFILL_URL", "")
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("CORS_ORIGIN", "")

	file := Config{AutofillURL: "http://file/parse", ProfileAPIURL: "http://file/api/profile"}
	env := FromEnv()

	merged := env.MergeWithDefaults(file.MergeWithDefaults(Defaults()))

	assert.Equal(t, "http://env/api/profile", merged.ProfileAPIURL)
	assert.Equal(t, "http://file/parse", merged.AutofillURL)
	assert.Equal(t, "postgres://env", merged.DatabaseURL)
}
