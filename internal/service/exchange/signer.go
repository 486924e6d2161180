package exchange

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/krobus00/roostoo-tester/internal/constant"
	"github.com/krobus00/roostoo-tester/internal/entity"
)

// Signer authenticates Roostoo requests with an API key and an HMAC-SHA256
// signature over the canonical parameter string.
type Signer struct {
	apiKey    string
	apiSecret string
}

func NewSigner(apiKey, apiSecret string) *Signer {
	return &Signer{
		apiKey:    strings.TrimSpace(apiKey),
		apiSecret: strings.TrimSpace(apiSecret),
	}
}

// Sign returns the canonical payload and its hex signature.
func (s *Signer) Sign(params entity.Params) (payload string, signature string, err error) {
	if s.apiKey == "" || s.apiSecret == "" {
		return "", "", ErrMissingCredentials
	}

	payload = Canonicalize(params)
	return payload, hmacSHA256Hex(s.apiSecret, payload), nil
}

// Headers returns the authentication headers for params.
func (s *Signer) Headers(params entity.Params) (map[string]string, error) {
	_, signature, err := s.Sign(params)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		constant.RoostooAPIKeyHeader:    s.apiKey,
		constant.RoostooSignatureHeader: signature,
	}, nil
}

// Canonicalize sorts params by key and joins them as key=value pairs with '&'.
// Values are not escaped.
func Canonicalize(params entity.Params) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	return strings.Join(pairs, "&")
}

func hmacSHA256Hex(secret, payload string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payload))
	return fmt.Sprintf("%x", h.Sum(nil))
}
