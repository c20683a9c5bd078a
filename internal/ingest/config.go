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

package ingest

import (
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/retr0h/chainlog/internal/config"
)

// GetIngestStreamConfig returns the stream configuration for queued
// append requests. The stream discards new messages when full, so a
// saturated queue rejects submissions instead of silently dropping
// entries already accepted.
func GetIngestStreamConfig(
	streamName string,
	ingestConfig *config.NATSIngest,
) *nats.StreamConfig {
	// Parse duration string to time.Duration
	maxAge, _ := time.ParseDuration(ingestConfig.MaxAge)

	// Parse storage type
	var storage nats.StorageType
	if ingestConfig.Storage == "memory" {
		storage = nats.MemoryStorage
	} else {
		storage = nats.FileStorage
	}

	return &nats.StreamConfig{
		Name:        streamName,
		Description: "Stream for queued audit append requests",
		Subjects:    []string{StreamSubjects()},
		Storage:     storage,
		Replicas:    ingestConfig.Replicas,
		MaxAge:      maxAge,
		MaxMsgs:     ingestConfig.MaxMsgs,
		Discard:     nats.DiscardNew,
	}
}

// GetIngestConsumerConfig returns the durable consumer configuration
// for the append worker.
func GetIngestConsumerConfig(
	consumerConfig *config.NATSIngestConsumer,
	filterSubject string,
) jetstream.ConsumerConfig {
	// Parse duration string to time.Duration
	ackWait, _ := time.ParseDuration(consumerConfig.AckWait)

	return jetstream.ConsumerConfig{
		Name:          consumerConfig.Name,
		Description:   "Consumer for appending queued audit entries",
		Durable:       consumerConfig.Name,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    consumerConfig.MaxDeliver,
		AckWait:       ackWait,
		MaxAckPending: consumerConfig.MaxAckPending,
		FilterSubject: filterSubject,
		BackOff:       parseBackOff(consumerConfig.BackOff),
	}
}

// parseBackOff converts configured backoff strings to durations,
// skipping any that do not parse.
func parseBackOff(
	backOff []string,
) []time.Duration {
	var out []time.Duration
	for _, b := range backOff {
		d, err := time.ParseDuration(b)
		if err != nil {
			continue
		}
		out = append(out, d)
	}

	return out
}
