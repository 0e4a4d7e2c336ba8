package server

import (
	"crypto/tls"
	"log"
	"os"

	"golang.org/x/crypto/acme/autocert"
)

// setupTLS builds a TLS config backed by an autocert manager restricted to
// the configured domain. Certificates are cached on disk so restarts do not
// re-issue them.
func setupTLS(domain string) *tls.Config {
	if err := os.MkdirAll("certs", 0700); err != nil {
		log.Printf("Warning: Failed to create certs directory: %v", err)
	}

	manager := &autocert.Manager{
		Cache:      autocert.DirCache("certs"),
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(domain),
	}

	return &tls.Config{
		GetCertificate:   manager.GetCertificate,
		MinVersion:       tls.VersionTLS12,
		CurvePreferences: []tls.CurveID{tls.X25519, tls.CurveP256},
	}
}
