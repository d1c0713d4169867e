package models

import "strings"

// DefaultTokenType is used when the service does not name a scheme.
const DefaultTokenType = "Bearer"

// Credential identifies an authenticated session. Token and User are set
// and cleared together; a credential missing either is treated as absent.
type Credential struct {
	Token     string
	TokenType string
	User      *User
}

// Valid reports whether the credential can authenticate a request.
func (c *Credential) Valid() bool {
	return c != nil && c.Token != "" && c.User != nil
}

// AuthorizationHeader renders the value of the Authorization header.
func (c *Credential) AuthorizationHeader() string {
	scheme := strings.TrimSpace(c.TokenType)
	if scheme == "" {
		scheme = DefaultTokenType
	}
	// services commonly send "bearer" in lower case
	if strings.EqualFold(scheme, DefaultTokenType) {
		scheme = DefaultTokenType
	}
	return scheme + " " + c.Token
}
