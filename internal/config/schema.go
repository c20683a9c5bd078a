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

package config

import (
	"fmt"

	masker "github.com/ggwhite/go-masker/v2"

	"github.com/retr0h/chainlog/internal/validation"
)

// maskedSecret replaces secret values in debug dumps.
const maskedSecret = "************"

// Validate checks the loaded configuration against its struct tags.
func Validate(
	cfg *Config,
) error {
	if msg, ok := validation.Struct(cfg); !ok {
		return fmt.Errorf("invalid configuration: %s", msg)
	}

	return nil
}

// Masked returns a copy of the configuration safe for debug dumps: tagged
// secrets go through go-masker, and the secret containers the masker cannot
// reach (maps and slices) are replaced wholesale.
func Masked(
	cfg *Config,
) (*Config, error) {
	m := masker.NewMaskerMarshaler()

	masked, err := m.Struct(cfg)
	if err != nil {
		return nil, fmt.Errorf("masking config: %w", err)
	}

	out, ok := masked.(*Config)
	if !ok {
		return nil, fmt.Errorf("masking config: unexpected type %T", masked)
	}

	keys := make(map[string]string, len(out.Audit.Signing.Keys))
	for id := range out.Audit.Signing.Keys {
		keys[id] = maskedSecret
	}
	out.Audit.Signing.Keys = keys

	out.Worker.NATS.Auth.Password = maskValue(out.Worker.NATS.Auth.Password)
	out.API.Server.NATS.Auth.Password = maskValue(out.API.Server.NATS.Auth.Password)

	users := make([]NATSServerUser, len(out.NATS.Server.Auth.Users))
	for i, u := range out.NATS.Server.Auth.Users {
		users[i] = NATSServerUser{Username: u.Username, Password: maskValue(u.Password)}
	}
	out.NATS.Server.Auth.Users = users

	return out, nil
}

func maskValue(
	v string,
) string {
	if v == "" {
		return ""
	}

	return maskedSecret
}
