package tls

import (
	"crypto/tls"
	"fmt"
	"os"
)

// Config is sepulcherd's TLS termination configuration.
type Config struct {
	// Enabled indicates whether TLS should be used.
	Enabled bool `yaml:"enabled"`
	// CertFile is the path to the PEM-encoded certificate file.
	CertFile string `yaml:"cert_file"`
	// KeyFile is the path to the PEM-encoded private key file.
	KeyFile string `yaml:"key_file"`
}

// ToTLSConfig loads the configured certificate and returns a *tls.Config
// enforcing TLS 1.3. It returns (nil, nil) when TLS is disabled.
func (c *Config) ToTLSConfig() (*tls.Config, error) {
	if !c.Enabled {
		return nil, nil
	}

	if c.CertFile == "" {
		return nil, fmt.Errorf("cert_file is required when TLS is enabled")
	}
	if c.KeyFile == "" {
		return nil, fmt.Errorf("key_file is required when TLS is enabled")
	}
	if _, err := os.Stat(c.CertFile); err != nil {
		return nil, fmt.Errorf("certificate file not found: %s: %w", c.CertFile, err)
	}
	if _, err := os.Stat(c.KeyFile); err != nil {
		return nil, fmt.Errorf("key file not found: %s: %w", c.KeyFile, err)
	}

	cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load certificate: %w", err)
	}
	if err := ValidateCertificate(&cert); err != nil {
		return nil, fmt.Errorf("certificate validation failed: %w", err)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS13,
	}, nil
}
