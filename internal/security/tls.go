package security

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

// TLSConfig holds the file paths for serving TLS, optionally with client
// certificate verification when CAFile is set and RequireClientAuth is true.
type TLSConfig struct {
	CertFile          string
	KeyFile           string
	CAFile            string
	RequireClientAuth bool
}

// LoadServerTLSConfig builds a TLS 1.3 server configuration from cfg.
func LoadServerTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load server certificate and key: %w", err)
	}

	clientAuth := tls.NoClientCert
	if cfg.RequireClientAuth {
		clientAuth = tls.RequireAndVerifyClientCert
	}

	tlsCfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS13,
		CipherSuites: []uint16{
			tls.TLS_AES_256_GCM_SHA384,
			tls.TLS_CHACHA20_POLY1305_SHA256,
		},
		ClientAuth: clientAuth,
	}

	if cfg.CAFile != "" {
		caData, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}

		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caData) {
			return nil, errors.New("failed to parse CA certificate")
		}

		tlsCfg.ClientCAs = caCertPool
	}

	return tlsCfg, nil
}

// VerifyTLSFiles checks that the certificate and key exist before the
// listener starts. The CA file is only required when provided.
func VerifyTLSFiles(certFile, keyFile, caFile string) error {
	if certFile == "" || keyFile == "" {
		return errors.New("TLS certificate and key paths must not be empty")
	}
	files := []string{certFile, keyFile}
	if caFile != "" {
		files = append(files, caFile)
	}
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("TLS file not found: %s - %w", file, err)
		}
	}
	return nil
}
