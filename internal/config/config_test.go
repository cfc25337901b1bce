package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/traineval/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.StorageBackend, convey.ShouldEqual, config.StorageFile)
			convey.So(cfg.StoragePath, convey.ShouldEqual, "data")
			convey.So(cfg.KeyNamespace, convey.ShouldEqual, "traineval")
			convey.So(cfg.MaxDays, convey.ShouldEqual, 30)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("When fields are out of range", func() {
			cases := []func(c *config.Config){
				func(c *config.Config) { c.Addr = " " },
				func(c *config.Config) { c.LogFormat = "xml" },
				func(c *config.Config) { c.StorageBackend = "redis" },
				func(c *config.Config) { c.StoragePath = "" },
				func(c *config.Config) { c.KeyNamespace = "" },
				func(c *config.Config) { c.MaxDays = 0 },
				func(c *config.Config) { c.ShareOrigin = "eval.example.com" },
			}

			convey.Convey("Then each should wrap ErrInvalidConfig", func() {
				for _, mutate := range cases {
					c := *cfg
					mutate(&c)
					err := c.Validate()
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				}
			})
		})

		convey.Convey("When the memory backend has no path", func() {
			cfg.StorageBackend = "MEMORY"
			cfg.StoragePath = ""
			cfg.ShareOrigin = "https://eval.example.com/"

			convey.Convey("Then it should validate and normalise", func() {
				convey.So(cfg.Validate(), convey.ShouldBeNil)
				convey.So(cfg.StorageBackend, convey.ShouldEqual, config.StorageMemory)
				convey.So(cfg.ShareOrigin, convey.ShouldEqual, "https://eval.example.com")
			})
		})
	})
}
