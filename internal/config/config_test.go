package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func stubGhToken(t *testing.T, token, source string) {
	t.Helper()
	prev := tokenForHost
	tokenForHost = func(string) (string, string) { return token, source }
	t.Cleanup(func() { tokenForHost = prev })
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GHCTL_TOKEN", "GITHUB_TOKEN", "GH_TOKEN", "GHCTL_BASE_URL", "GHCTL_MAX_WORKERS", "GHCTL_RATE_LIMIT", "GHCTL_DEBUG"} {
		t.Setenv(k, "")
	}
}

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("token", "", "")
	fs.String("base-url", "", "")
	fs.Int("max-workers", 0, "")
	fs.Float64("rate-limit", 0, "")
	fs.Bool("debug", false, "")
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return fs
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWithGhFallback(t *testing.T) {
	clearEnv(t)
	stubGhToken(t, "gho_fromgh", "oauth_token")

	cfg, err := Load(testFlags(t), Options{ConfigFile: writeFile(t, "ghctl.yaml", "{}\n")})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL || cfg.MaxWorkers != DefaultMaxWorkers || cfg.RateLimit != 0 {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
	if cfg.Token != "gho_fromgh" || cfg.TokenOrigin != "oauth_token" {
		t.Errorf("token = %q from %q, want gh credentials", cfg.Token, cfg.TokenOrigin)
	}
}

func TestLoadEmptyTokenAllowed(t *testing.T) {
	clearEnv(t)
	stubGhToken(t, "", "")

	cfg, err := Load(testFlags(t), Options{ConfigFile: writeFile(t, "ghctl.yaml", "{}\n")})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Token != "" || cfg.TokenOrigin != "" {
		t.Errorf("token = %q from %q, want none", cfg.Token, cfg.TokenOrigin)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	stubGhToken(t, "gho_fromgh", "oauth_token")
	file := writeFile(t, "ghctl.yaml", "token: from-file\nmax_workers: 7\nrate_limit: 1.5\nbase_url: https://ghe.example.com/api/v3/\n")

	t.Setenv("GITHUB_TOKEN", "from-env")
	t.Setenv("GHCTL_MAX_WORKERS", "9")

	cfg, err := Load(testFlags(t, "--max-workers=3"), Options{ConfigFile: file})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Token != "from-env" {
		t.Errorf("Token = %q, want env to beat the config file", cfg.Token)
	}
	if cfg.MaxWorkers != 3 {
		t.Errorf("MaxWorkers = %d, want flag to beat env", cfg.MaxWorkers)
	}
	if cfg.RateLimit != 1.5 || cfg.BaseURL != "https://ghe.example.com/api/v3/" {
		t.Errorf("config file values not applied: %+v", cfg)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("GHCTL_RATE_LIMIT")
	t.Cleanup(func() { os.Unsetenv("GHCTL_RATE_LIMIT") })
	stubGhToken(t, "", "")

	envFile := writeFile(t, ".env", "GHCTL_RATE_LIMIT=4\n")
	cfg, err := Load(testFlags(t), Options{EnvFile: envFile, ConfigFile: writeFile(t, "ghctl.yaml", "{}\n")})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RateLimit != 4 {
		t.Errorf("RateLimit = %v, want 4 from env file", cfg.RateLimit)
	}
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(testFlags(t), Options{EnvFile: filepath.Join(t.TempDir(), "missing.env")}); err == nil {
		t.Error("Load() succeeded with a missing env file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{BaseURL: DefaultBaseURL, MaxWorkers: 1}, false},
		{"relative url", Config{BaseURL: "api.github.com", MaxWorkers: 1}, true},
		{"zero workers", Config{BaseURL: DefaultBaseURL, MaxWorkers: 0}, true},
		{"negative rate", Config{BaseURL: DefaultBaseURL, MaxWorkers: 1, RateLimit: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGhHost(t *testing.T) {
	tests := map[string]string{
		"https://api.github.com/":         "github.com",
		"https://ghe.example.com/api/v3/": "ghe.example.com",
		"not a url":                       "github.com",
	}
	for in, want := range tests {
		if got := ghHost(in); got != want {
			t.Errorf("ghHost(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadTokenOrigin(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  string
		file string
		want string
	}{
		{"flag", []string{"--token=from-flag"}, "from-env", "token: from-file\n", "flag"},
		{"env", nil, "from-env", "token: from-file\n", "env GITHUB_TOKEN"},
		{"config file", nil, "", "token: from-file\n", "config file"},
		{"none", nil, "", "{}\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			stubGhToken(t, "", "")
			t.Setenv("GITHUB_TOKEN", tt.env)

			cfg, err := Load(testFlags(t, tt.args...), Options{ConfigFile: writeFile(t, "ghctl.yaml", tt.file)})
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.TokenOrigin != tt.want {
				t.Errorf("TokenOrigin = %q, want %q", cfg.TokenOrigin, tt.want)
			}
		})
	}
}
