// Package share converts a conlang record to and from its portable
// representations: a JSON file and a URL-embeddable token.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"glossa/internal/conlang"
	"glossa/internal/logging"
)

// TokenParam is the query parameter carrying a share token.
const TokenParam = "lang"

// ExportJSON serializes a record for file export.
func ExportJSON(c *conlang.Conlang) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize language: %w", err)
	}
	return data, nil
}

// ImportJSON parses an exported file back into a record. Malformed
// input is reported, never a panic.
func ImportJSON(data []byte) (*conlang.Conlang, error) {
	var c conlang.Conlang
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("imported file is not a valid language: %w", err)
	}
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("imported file is not a valid language: missing name")
	}
	return &c, nil
}

// EncodeToken encodes a record as a URL-safe token. JSON then raw
// base64url, which round-trips every IPA glyph byte-for-byte.
func EncodeToken(c *conlang.Conlang) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to serialize language: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(data)
	logging.Share("Encoded share token for %q (%d bytes)", c.Name, len(token))
	return token, nil
}

// DecodeToken decodes a share token. Truncated or corrupted tokens are
// reported, not silently ignored.
func DecodeToken(token string) (*conlang.Conlang, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("share token is empty")
	}
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("share token is not valid: %w", err)
	}
	c, err := ImportJSON(data)
	if err != nil {
		return nil, fmt.Errorf("share token does not contain a language: %w", err)
	}
	return c, nil
}

// ShareURL builds a full share link for a record.
func ShareURL(baseURL string, c *conlang.Conlang) (string, error) {
	token, err := EncodeToken(c)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid share base URL: %w", err)
	}
	q := u.Query()
	q.Set(TokenParam, token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FromURL extracts and decodes the record from a share link.
func FromURL(raw string) (*conlang.Conlang, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("share link is not a valid URL: %w", err)
	}
	token := u.Query().Get(TokenParam)
	if token == "" {
		return nil, fmt.Errorf("share link has no %q parameter", TokenParam)
	}
	return DecodeToken(token)
}
