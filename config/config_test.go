package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/lb-dashboard/config"
)

var _ = Describe("Config", func() {
	var (
		tempDir string
		origDir string
	)

	BeforeEach(func() {
		var err error
		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		tempDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())

		Expect(os.Chdir(tempDir)).To(Succeed())
	})

	AfterEach(func() {
		Expect(os.Chdir(origDir)).To(Succeed())
		os.RemoveAll(tempDir)
		os.Unsetenv("POLL_INTERVAL")
		os.Unsetenv("POLL_ENDPOINT")
	})

	Describe("Load", func() {
		Context("with valid config file", func() {
			BeforeEach(func() {
				configContent := `
server:
  address: "127.0.0.1:9191"
  environment: "staging"

poll:
  endpoint: "http://lb.internal:8000/metrics"
  interval: "3s"
  timeout: "1s"

eventlog:
  capacity: 25

logging:
  level: "debug"
  file: "dash.log"

ui:
  headless: true
`
				configPath := filepath.Join(tempDir, "config.yaml")
				Expect(os.WriteFile(configPath, []byte(configContent), 0644)).To(Succeed())
			})

			It("should load configuration successfully", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg).NotTo(BeNil())
			})

			It("should parse poll settings", func() {
				cfg, _ := config.Load()
				Expect(cfg.Poll.Endpoint).To(Equal("http://lb.internal:8000/metrics"))
				Expect(cfg.PollInterval()).To(Equal(3 * time.Second))
				Expect(cfg.PollTimeout()).To(Equal(time.Second))
			})

			It("should parse event log, logging and ui sections", func() {
				cfg, _ := config.Load()
				Expect(cfg.EventLog.Capacity).To(Equal(25))
				Expect(cfg.Logging.Level).To(Equal("debug"))
				Expect(cfg.Logging.File).To(Equal("dash.log"))
				Expect(cfg.UI.Headless).To(BeTrue())
			})
		})

		Context("without a config file", func() {
			It("should use defaults", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Poll.Endpoint).To(Equal(config.DefaultEndpoint))
				Expect(cfg.PollInterval()).To(Equal(2 * time.Second))
				Expect(cfg.PollTimeout()).To(Equal(1500 * time.Millisecond))
				Expect(cfg.EventLog.Capacity).To(Equal(40))
				Expect(cfg.Server.Address).To(Equal(":9090"))
				Expect(cfg.UI.Headless).To(BeFalse())
			})

			It("should honour environment overrides", func() {
				os.Setenv("POLL_ENDPOINT", "https://example.com/metrics")
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Poll.Endpoint).To(Equal("https://example.com/metrics"))
			})

			It("should reject a timeout that is not shorter than the interval", func() {
				os.Setenv("POLL_INTERVAL", "1s")
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Validate", func() {
		var cfg *config.Config

		BeforeEach(func() {
			cfg = &config.Config{
				Server:   config.ServerConfig{Address: ":9090", Environment: config.EnvDev},
				Poll:     config.PollConfig{Endpoint: config.DefaultEndpoint, Interval: "2s", Timeout: "1s"},
				EventLog: config.EventLogConfig{Capacity: 40},
				Logging:  config.LoggingConfig{Level: config.LogLevelInfo},
			}
		})

		It("should accept a complete configuration", func() {
			Expect(cfg.Validate()).To(Succeed())
		})

		DescribeTable("should reject invalid values",
			func(mutate func(c *config.Config)) {
				mutate(cfg)
				Expect(cfg.Validate()).NotTo(Succeed())
			},
			Entry("unknown environment", func(c *config.Config) { c.Server.Environment = "qa" }),
			Entry("address without port", func(c *config.Config) { c.Server.Address = "localhost" }),
			Entry("unknown log level", func(c *config.Config) { c.Logging.Level = "trace" }),
			Entry("non-http endpoint", func(c *config.Config) { c.Poll.Endpoint = "ftp://lb/metrics" }),
			Entry("endpoint without host", func(c *config.Config) { c.Poll.Endpoint = "http:///metrics" }),
			Entry("unparsable interval", func(c *config.Config) { c.Poll.Interval = "soon" }),
			Entry("zero timeout", func(c *config.Config) { c.Poll.Timeout = "0s" }),
			Entry("timeout equal to interval", func(c *config.Config) { c.Poll.Timeout = "2s" }),
			Entry("empty event log", func(c *config.Config) { c.EventLog.Capacity = 0 }),
			Entry("oversized event log", func(c *config.Config) { c.EventLog.Capacity = 5000 }),
		)
	})
})
