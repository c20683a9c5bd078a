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

package worker

import (
	"context"
	"errors"
	"log/slog"

	natsclient "github.com/osapi-io/nats-client/pkg/client"
)

// Start starts the worker without blocking.
func (w *Worker) Start() {
	w.ctx, w.cancel = context.WithCancel(context.Background())

	w.logger.Info("starting ingest worker")

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(w.ctx)
	}()
}

// run contains the main worker loop. It blocks inside ConsumeMessages
// until the context is canceled.
func (w *Worker) run(
	ctx context.Context,
) {
	consumerName := w.appConfig.NATS.Ingest.Consumer.Name

	w.logger.Info(
		"ingest worker started successfully",
		slog.String("stream", w.streamName),
		slog.String("consumer", consumerName),
		slog.Int("max_inflight", w.appConfig.Worker.MaxInflight),
	)

	opts := &natsclient.ConsumeOptions{
		MaxInFlight: w.appConfig.Worker.MaxInflight,
	}

	err := w.natsClient.ConsumeMessages(
		ctx,
		w.streamName,
		consumerName,
		w.handleEntryMessage,
		opts,
	)
	if err != nil && !errors.Is(err, context.Canceled) {
		w.logger.Error(
			"error consuming append requests",
			slog.String("consumer", consumerName),
			slog.String("error", err.Error()),
		)
	}

	w.logger.Info("ingest worker stopped")
}

// Stop cancels the consume loop and waits for in-flight appends to
// finish, up to the context deadline.
func (w *Worker) Stop(
	ctx context.Context,
) {
	w.logger.Info("ingest worker shutting down")

	if w.cancel != nil {
		w.cancel()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		w.logger.Warn("ingest worker shutdown timed out")
	}
}
