// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package authtoken

import (
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenIssuer identifies tokens minted by this service.
const TokenIssuer = "chainlog"

// TokenExpiration is how long generated tokens remain valid.
const TokenExpiration = 24 * time.Hour

// New factory to create a new Token instance.
func New(
	logger *slog.Logger,
) *Token {
	return &Token{
		logger: logger,
	}
}

// GenerateAllowedRoles returns the role names defined in the given hierarchy.
func GenerateAllowedRoles(
	hierarchy map[string]int,
) []string {
	roles := make([]string, 0, len(hierarchy))
	for role := range hierarchy {
		roles = append(roles, role)
	}

	return roles
}

// Generate creates a signed JWT carrying the given roles and subject.
// Non-empty permissions are embedded directly and bypass role expansion
// during authorization.
func (t *Token) Generate(
	signingKey string,
	roles []string,
	subject string,
	permissions []string,
) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		Roles:       roles,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(signingKey))
}
