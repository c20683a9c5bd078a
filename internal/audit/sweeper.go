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

package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically verifies the whole chain on a cron schedule and
// keeps the latest report for the health surface. A break is logged at
// Error level on every sweep until it is dealt with; a finding that
// stops being reported would defeat the log's purpose.
type Sweeper struct {
	verifier *Verifier
	logger   *slog.Logger
	cron     *cron.Cron

	mu   sync.RWMutex
	last *VerificationReport
}

// NewSweeper creates a Sweeper running verification on the given cron
// schedule expression (for example "@every 10m").
func NewSweeper(
	logger *slog.Logger,
	verifier *Verifier,
	schedule string,
) (*Sweeper, error) {
	s := &Sweeper{
		verifier: verifier,
		logger:   logger,
		cron:     cron.New(),
	}

	if _, err := s.cron.AddFunc(schedule, s.sweep); err != nil {
		return nil, fmt.Errorf("parse verify schedule %q: %w", schedule, err)
	}

	return s, nil
}

// Start begins scheduled sweeps without blocking.
func (s *Sweeper) Start() {
	s.logger.Info("starting chain verification sweeper")
	s.cron.Start()
}

// Stop halts scheduling and waits for an in-flight sweep to finish, or
// for ctx to expire.
func (s *Sweeper) Stop(
	ctx context.Context,
) {
	stopped := s.cron.Stop()

	select {
	case <-stopped.Done():
	case <-ctx.Done():
	}
}

// LastReport returns the most recent sweep report, or nil before the
// first sweep completes.
func (s *Sweeper) LastReport() *VerificationReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.last
}

func (s *Sweeper) sweep() {
	report, err := s.verifier.VerifyRange(context.Background(), 1, 0)
	if err != nil {
		s.logger.Error(
			"chain verification sweep failed",
			slog.String("error", err.Error()),
		)

		return
	}

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()

	if report.Valid {
		s.logger.Info(
			"chain verification sweep clean",
			slog.Int("entries", report.EntriesChecked),
		)

		return
	}

	s.logger.Error(
		"chain verification sweep found a break",
		slog.Int64("first_break_seq", *report.FirstBreakSeq),
		slog.String("break_kind", string(report.BreakKind)),
	)
}
