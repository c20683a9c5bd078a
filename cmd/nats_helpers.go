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

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"

	"github.com/retr0h/chainlog/internal/cli"
)

// natsReadyTimeout bounds how long setupNATSServer waits for the embedded
// server to accept connections.
const natsReadyTimeout = 10 * time.Second

// natsLifecycle adapts the embedded NATS server to the Lifecycle interface.
// Start is a no-op since setupNATSServer starts the server before any
// client connects.
type natsLifecycle struct {
	server *natsserver.Server
}

func (n *natsLifecycle) Start() {}

func (n *natsLifecycle) Stop(
	_ context.Context,
) {
	n.server.Shutdown()
	n.server.WaitForShutdown()
}

// setupNATSServer starts the embedded NATS server with JetStream enabled
// and blocks until it accepts connections.
func setupNATSServer(
	_ context.Context,
	log *slog.Logger,
) *natsserver.Server {
	srvCfg := appConfig.NATS.Server

	opts := &natsserver.Options{
		Host:      srvCfg.Host,
		Port:      srvCfg.Port,
		JetStream: true,
		StoreDir:  srvCfg.StoreDir,
	}

	switch srvCfg.Auth.Type {
	case "user_pass":
		users := make([]*natsserver.User, 0, len(srvCfg.Auth.Users))
		for _, u := range srvCfg.Auth.Users {
			users = append(users, &natsserver.User{
				Username: u.Username,
				Password: u.Password,
			})
		}
		opts.Users = users
	case "nkey":
		nkeys := make([]*natsserver.NkeyUser, 0, len(srvCfg.Auth.NKeys))
		for _, pub := range srvCfg.Auth.NKeys {
			nkeys = append(nkeys, &natsserver.NkeyUser{Nkey: pub})
		}
		opts.Nkeys = nkeys
	}

	s, err := natsserver.NewServer(opts)
	if err != nil {
		cli.LogFatal(log, "failed to create NATS server", err)
	}

	go s.Start()

	if !s.ReadyForConnections(natsReadyTimeout) {
		cli.LogFatal(
			log,
			"failed to start NATS server",
			fmt.Errorf("not ready after %s", natsReadyTimeout),
		)
	}

	log.Info(
		"embedded NATS server ready",
		slog.String("host", srvCfg.Host),
		slog.Int("port", srvCfg.Port),
		slog.String("store_dir", srvCfg.StoreDir),
	)

	return s
}
