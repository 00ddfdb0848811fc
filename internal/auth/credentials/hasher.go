package credentials

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// DeriveIdentifier turns an email into the provider username: the local
// part with everything but ASCII letters and digits removed.
// An email without '@' is treated as all local part.
func DeriveIdentifier(email string) (string, error) {
	if email == "" {
		return "", ErrInvalidEmail
	}

	local := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		local = email[:at]
	}

	var b strings.Builder
	b.Grow(len(local))
	for i := 0; i < len(local); i++ {
		c := local[i]
		if isASCIIUpper(c) || isASCIILower(c) || isASCIIDigit(c) {
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// DeriveSignature computes the secret hash the provider expects:
// base64(HMAC-SHA256(clientSecret, identifier+clientID)).
func DeriveSignature(identifier, clientID, clientSecret string) string {
	mac := hmac.New(sha256.New, []byte(clientSecret))
	mac.Write([]byte(identifier + clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Derive builds the full credential for email. Unlike DeriveIdentifier it
// rejects emails whose local part has no usable characters.
func Derive(email, clientID, clientSecret string) (Credential, error) {
	identifier, err := DeriveIdentifier(email)
	if err != nil {
		return Credential{}, err
	}
	if identifier == "" {
		return Credential{}, ErrInvalidEmail
	}

	return Credential{
		Identifier: identifier,
		Signature:  DeriveSignature(identifier, clientID, clientSecret),
	}, nil
}
