package security

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"testing"
	"time"
)

func generateSelfSignedCert(t *testing.T, commonName string) (certFile, keyFile string) {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate private key: %v", err)
	}

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			CommonName: commonName,
		},
		NotBefore: time.Now(),
		NotAfter:  time.Now().Add(time.Hour),
		KeyUsage:  x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	if err != nil {
		t.Fatalf("Failed to create certificate: %v", err)
	}

	tmpDir := t.TempDir()
	certFile = tmpDir + "/test.crt"
	keyFile = tmpDir + "/test.key"

	certPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "CERTIFICATE",
		Bytes: certDER,
	})
	if err := os.WriteFile(certFile, certPEM, 0600); err != nil {
		t.Fatalf("Failed to write certificate: %v", err)
	}

	keyDER, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		t.Fatalf("Failed to marshal private key: %v", err)
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyDER,
	})
	if err := os.WriteFile(keyFile, keyPEM, 0600); err != nil {
		t.Fatalf("Failed to write key: %v", err)
	}

	return certFile, keyFile
}

func TestLoadServerTLSConfig(t *testing.T) {
	certFile, keyFile := generateSelfSignedCert(t, "api")

	cfg, err := LoadServerTLSConfig(TLSConfig{CertFile: certFile, KeyFile: keyFile})
	if err != nil {
		t.Fatalf("LoadServerTLSConfig failed: %v", err)
	}

	if cfg.MinVersion != tls.VersionTLS13 {
		t.Errorf("Expected TLS 1.3 minimum, got %d", cfg.MinVersion)
	}
	if cfg.ClientAuth != tls.NoClientCert {
		t.Errorf("Client auth should be off without RequireClientAuth")
	}
}

func TestLoadServerTLSConfigClientAuth(t *testing.T) {
	certFile, keyFile := generateSelfSignedCert(t, "api")
	caFile, _ := generateSelfSignedCert(t, "ca")

	cfg, err := LoadServerTLSConfig(TLSConfig{
		CertFile:          certFile,
		KeyFile:           keyFile,
		CAFile:            caFile,
		RequireClientAuth: true,
	})
	if err != nil {
		t.Fatalf("LoadServerTLSConfig failed: %v", err)
	}

	if cfg.ClientAuth != tls.RequireAndVerifyClientCert {
		t.Error("Client certificates should be required")
	}
	if cfg.ClientCAs == nil {
		t.Error("Client CA pool should be populated")
	}
}

func TestVerifyTLSFilesExists(t *testing.T) {
	certFile, keyFile := generateSelfSignedCert(t, "test")

	if err := VerifyTLSFiles(certFile, keyFile, ""); err != nil {
		t.Errorf("VerifyTLSFiles should not fail with existing files: %v", err)
	}
}

func TestVerifyTLSFilesMissing(t *testing.T) {
	err := VerifyTLSFiles("/nonexistent/cert.crt", "/nonexistent/key.key", "/nonexistent/ca.crt")
	if err == nil {
		t.Error("VerifyTLSFiles should fail with missing files")
	}
}

func TestVerifyTLSFilesEmpty(t *testing.T) {
	if err := VerifyTLSFiles("", "", ""); err == nil {
		t.Error("VerifyTLSFiles should fail with empty paths")
	}
}
