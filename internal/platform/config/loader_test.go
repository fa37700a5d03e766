package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"topbrands_backend/internal/platform/config"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DBDriver, convey.ShouldEqual, "postgres")
				convey.So(cfg.FallbackYear, convey.ShouldEqual, 2025)
				convey.So(cfg.DefaultPageSize, convey.ShouldEqual, 20)
				convey.So(cfg.MaxPageSize, convey.ShouldEqual, 100)
				convey.So(cfg.CacheTTL, convey.ShouldEqual, 5*time.Minute)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("TOPBRANDS_ADDR", ":9090")
			_ = os.Setenv("TOPBRANDS_DB_DRIVER", "sqlite")
			_ = os.Setenv("TOPBRANDS_FALLBACK_YEAR", "2026")
			_ = os.Setenv("TOPBRANDS_JWT_EXPIRATION", "2h")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DBDriver, convey.ShouldEqual, "sqlite")
				convey.So(cfg.FallbackYear, convey.ShouldEqual, 2026)
				convey.So(cfg.JWTExpiration, convey.ShouldEqual, 2*time.Hour)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, `
addr: ":7070"
db_driver: sqlite
max_page_size: 50
`)
			_ = os.Setenv("TOPBRANDS_CONFIG", tmpFile)
			_ = os.Setenv("TOPBRANDS_ADDR", ":8081")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8081")       // env
				convey.So(cfg.DBDriver, convey.ShouldEqual, "sqlite")  // file
				convey.So(cfg.MaxPageSize, convey.ShouldEqual, 50)     // file
				convey.So(cfg.DefaultPageSize, convey.ShouldEqual, 20) // default
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("TOPBRANDS_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unsupported driver", func() {
			_ = os.Setenv("TOPBRANDS_DB_DRIVER", "mysql")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "unsupported db_driver")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the fallback year is outside the valid range", func() {
			_ = os.Setenv("TOPBRANDS_FALLBACK_YEAR", "1999")
			defer clearConfigEnvVars()

			_, err := config.Load()

			convey.Convey("Then it should be rejected", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func createTempConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"TOPBRANDS_CONFIG",
		"TOPBRANDS_ADDR",
		"TOPBRANDS_DB_DRIVER",
		"TOPBRANDS_FALLBACK_YEAR",
		"TOPBRANDS_JWT_EXPIRATION",
	} {
		_ = os.Unsetenv(key)
	}
}
