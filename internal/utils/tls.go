package utils

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/voidshard/sslcheck/pkg/errors"
)

func setDefaults(cfg *tls.Config) {
	cfg.MinVersion = tls.VersionTLS12
	cfg.CurvePreferences = []tls.CurveID{tls.CurveP521, tls.CurveP384, tls.CurveP256}
}

// TLSConfig returns a client config trusting the given CA bundle, for talking
// to a private mirror of the assessment API. No bundle means nil, ie. the
// system defaults.
func TLSConfig(cacert string) (*tls.Config, error) {
	if cacert == "" {
		return nil, nil
	}

	cfg := &tls.Config{}
	setDefaults(cfg)

	pem, err := os.ReadFile(cacert)
	if err != nil {
		return nil, err
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("%w: no certificates found in %s", errors.ErrInvalidArg, cacert)
	}
	cfg.RootCAs = pool

	return cfg, nil
}
