package kalshi

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// RequestSigner produces the RSA-PSS signature Kalshi requires on every
// authenticated request: sign(timestamp_ms + METHOD + path) with the
// account's RSA-2048 key, base64-encoded.
type RequestSigner struct {
	apiKey string
	key    *rsa.PrivateKey
}

// NewRequestSigner parses a PKCS#8 PEM private key and returns a signer for
// the given API key ID.
func NewRequestSigner(apiKey string, privateKeyPEM []byte) (*RequestSigner, error) {
	block, _ := pem.Decode(privateKeyPEM)
	if block == nil {
		return nil, fmt.Errorf("kalshi: failed to decode PEM block")
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("kalshi: parse private key: %w", err)
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("kalshi: key is not RSA")
	}

	return &RequestSigner{apiKey: apiKey, key: rsaKey}, nil
}

// Sign returns the base64 RSA-PSS signature over ts + method + path.
func (s *RequestSigner) Sign(ts time.Time, method, path string) (string, error) {
	msg := strconv.FormatInt(ts.UnixMilli(), 10) + method + path

	h := sha256.Sum256([]byte(msg))
	sig, err := rsa.SignPSS(rand.Reader, s.key, crypto.SHA256, h[:], &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
	})
	if err != nil {
		return "", fmt.Errorf("kalshi: sign: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Headers builds the three KALSHI-ACCESS-* headers for one request.
func (s *RequestSigner) Headers(method, path string) (http.Header, error) {
	ts := time.Now()
	sig, err := s.Sign(ts, method, path)
	if err != nil {
		return nil, err
	}

	headers := http.Header{}
	headers.Set("KALSHI-ACCESS-KEY", s.apiKey)
	headers.Set("KALSHI-ACCESS-TIMESTAMP", strconv.FormatInt(ts.UnixMilli(), 10))
	headers.Set("KALSHI-ACCESS-SIGNATURE", sig)
	return headers, nil
}

// AuthHeaders computes the handshake headers for the WebSocket feed upgrade
// request.
func AuthHeaders(apiKey string, privateKeyPEM []byte) (http.Header, error) {
	signer, err := NewRequestSigner(apiKey, privateKeyPEM)
	if err != nil {
		return nil, err
	}
	return signer.Headers(http.MethodGet, wsPath)
}
