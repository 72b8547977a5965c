package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rkuiper/encore/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"ENCORE_CONFIG",
		"ENCORE_ADDR",
		"ENCORE_LOG_LEVEL",
		"ENCORE_DATA_FILE",
		"ENCORE_DEFAULT_SAMPLE_COUNT",
		"ENCORE_MAX_SAMPLE_COUNT",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":3000")
				convey.So(cfg.DataFile, convey.ShouldEqual, "bands.json")
				convey.So(cfg.DefaultSampleCount, convey.ShouldEqual, 1)
				convey.So(cfg.MaxSampleCount, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ENCORE_ADDR", ":8080")
			_ = os.Setenv("ENCORE_DATA_FILE", "other.json")
			_ = os.Setenv("ENCORE_MAX_SAMPLE_COUNT", "10")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataFile, convey.ShouldEqual, "other.json")
				convey.So(cfg.MaxSampleCount, convey.ShouldEqual, 10)
				convey.So(cfg.DefaultSampleCount, convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
addr: ":9090"
data_file: "fixtures/bands.json"
default_sample_count: 2
max_sample_count: 4
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("ENCORE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataFile, convey.ShouldEqual, "fixtures/bands.json")
				convey.So(cfg.DefaultSampleCount, convey.ShouldEqual, 2)
				convey.So(cfg.MaxSampleCount, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When env vars and file disagree", func() {
			tmpFile := createTempConfigFile(t, `addr: ":9090"`)
			_ = os.Setenv("ENCORE_CONFIG", tmpFile)
			_ = os.Setenv("ENCORE_ADDR", ":7070")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env vars should take precedence", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			})
		})

		convey.Convey("When the config file is missing", func() {
			_ = os.Setenv("ENCORE_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then loading should fail", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When validation fails", func() {
			convey.Convey("And addr is empty", func() {
				_ = os.Setenv("ENCORE_ADDR", "")
				defer clearConfigEnvVars()

				cfg, err := config.Load(ctx)
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})

			convey.Convey("And the default sample count is below one", func() {
				_ = os.Setenv("ENCORE_DEFAULT_SAMPLE_COUNT", "0")
				defer clearConfigEnvVars()

				cfg, err := config.Load(ctx)
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})

			convey.Convey("And the max sample count is below the default", func() {
				_ = os.Setenv("ENCORE_MAX_SAMPLE_COUNT", "0")
				defer clearConfigEnvVars()

				cfg, err := config.Load(ctx)
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
