package ranger

import (
	"crypto/tls"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xy-planning-network/accounts"
)

// loadTLSConfig reads privkey.pem and cert.pem from dir.
// Certificates found in an optional chain.pem are appended to the leaf's chain.
func loadTLSConfig(dir string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(filepath.Join(dir, certFile), filepath.Join(dir, keyFile))
	if err != nil {
		return nil, fmt.Errorf("%w: failed loading key pair: %s", accounts.ErrBadConfig, err)
	}

	chain, err := os.ReadFile(filepath.Join(dir, chainFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("%w: failed reading chain: %s", accounts.ErrBadConfig, err)
	default:
		for {
			var block *pem.Block
			block, chain = pem.Decode(chain)
			if block == nil {
				break
			}

			if block.Type == "CERTIFICATE" {
				cert.Certificate = append(cert.Certificate, block.Bytes)
			}
		}
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
