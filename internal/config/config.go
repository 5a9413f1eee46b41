// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults and Load(ctx) to layer
//   file and environment overrides on top.
// - External errors must be wrapped via this package's sentinel errors.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Input names the command stream source. "-" reads stdin.
	Input string `koanf:"input"`

	// Output names the response destination. "-" writes stdout.
	Output string `koanf:"output"`

	// MetricsAddr configures the Prometheus listen address, e.g. ":9090".
	// Empty disables the metrics endpoint.
	MetricsAddr string `koanf:"metrics_addr"`

	// CustomerCapacity sizes the customer table.
	CustomerCapacity int `koanf:"customer_capacity"`

	// FreelancerCapacity sizes the freelancer table.
	FreelancerCapacity int `koanf:"freelancer_capacity"`

	// EmploymentCapacity sizes the active employment table.
	EmploymentCapacity int `koanf:"employment_capacity"`

	// BlacklistCapacity sizes the per-customer blacklist registry.
	BlacklistCapacity int `koanf:"blacklist_capacity"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Input:              "-",
		Output:             "-",
		MetricsAddr:        "",
		CustomerCapacity:   50_000,
		FreelancerCapacity: 100_000,
		EmploymentCapacity: 10_000,
		BlacklistCapacity:  50_000,
	}
}
