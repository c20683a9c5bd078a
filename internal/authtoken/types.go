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

// Package authtoken issues and validates the JWTs used to authenticate
// API requests.
package authtoken

import (
	"log/slog"

	"github.com/golang-jwt/jwt/v4"
)

// Token handles JWT generation and validation.
type Token struct {
	logger *slog.Logger
}

// CustomClaims represents the JWT claims carried by chainlog tokens.
type CustomClaims struct {
	// Roles granted to the token subject.
	Roles []string `json:"roles"                 validate:"required,dive,oneof=admin write read"`
	// Permissions optionally bypass role expansion. Set by external identity
	// providers that manage fine-grained grants themselves.
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// RoleHierarchy orders the built-in roles from least to most privileged.
var RoleHierarchy = map[string]int{
	"read":  1,
	"write": 2,
	"admin": 3,
}
