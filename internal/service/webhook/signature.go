package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifySignature checks that a webhook body was signed by the provider.
//
// The provider signs the exact raw body with HMAC-SHA256 and sends the hex
// digest as "sha256=<hash>". Verification is skipped (returning true) when no
// secret is configured or when the provider sent no signature; only an
// explicit mismatch between a configured secret and a provided signature
// returns false. The caller logs the permissive no-secret case.
func VerifySignature(body []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return true
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	provided := strings.TrimPrefix(signature, "sha256=")
	return hmac.Equal([]byte(expected), []byte(provided))
}
