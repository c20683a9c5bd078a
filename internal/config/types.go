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

// Config represents the root structure of the YAML configuration file.
// This struct is used to unmarshal configuration data from Viper.
type Config struct {
	API       API       `mapstructure:"api"       mask:"struct"`
	Audit     Audit     `mapstructure:"audit"     mask:"struct"`
	Worker    Worker    `mapstructure:"worker"`
	NATS      NATS      `mapstructure:"nats"`
	Telemetry Telemetry `mapstructure:"telemetry"`
	// Debug enable or disable debug option set from CLI.
	Debug bool `mapstructure:"debug"`
}

// Audit configuration for the append pipeline, redaction, and verification.
type Audit struct {
	Signing   Signing   `mapstructure:"signing"             mask:"struct"`
	Redaction Redaction `mapstructure:"redaction,omitempty"`
	Retry     Retry     `mapstructure:"retry,omitempty"`
	// VerifySchedule is the cron schedule for background chain verification
	// (e.g. "@every 10m"). Empty disables the sweeper.
	VerifySchedule string `mapstructure:"verify_schedule" validate:"omitempty,cron_schedule"`
}

// Signing holds the keyring used to sign audit entries.
type Signing struct {
	// ActiveKeyID names the key in Keys used to sign new entries.
	ActiveKeyID string `mapstructure:"active_key_id" validate:"required"`
	// Keys maps key ids to secret key material. Retired keys stay listed so
	// entries they signed remain verifiable.
	Keys map[string]string `mapstructure:"keys" validate:"required"`
}

// Redaction controls how PII fields are transformed before signing.
type Redaction struct {
	// Policy is the redaction policy: "mask", "hash", or "drop".
	Policy string `mapstructure:"policy" validate:"omitempty,oneof=mask hash drop"`
	// Fields lists the change and metadata keys treated as PII. The actor
	// email is always redacted regardless of this list.
	Fields []string `mapstructure:"fields"`
}

// Retry bounds the append retries after a sequence allocation conflict.
type Retry struct {
	// Attempts is the maximum number of full append attempts.
	Attempts int `mapstructure:"attempts" validate:"omitempty,min=1,max=10"`
	// BaseBackoff is the initial delay between attempts. e.g. "25ms"
	BaseBackoff string `mapstructure:"base_backoff"`
}

// Worker configuration settings for the async ingest worker.
type Worker struct {
	// NATS connection settings for the worker.
	NATS NATSConnection `mapstructure:"nats"`
	// MaxInflight maximum number of append requests processed concurrently.
	MaxInflight int `mapstructure:"max_inflight"`
}

// Telemetry configuration settings.
type Telemetry struct {
	Tracing TracingConfig `mapstructure:"tracing,omitempty"`
	Metrics MetricsConfig `mapstructure:"metrics,omitempty"`
}

// MetricsConfig configuration settings for Prometheus metrics.
type MetricsConfig struct {
	// Path is the HTTP path for the Prometheus scrape endpoint.
	// Defaults to "/metrics" when empty.
	Path string `mapstructure:"path"`
}

// TracingConfig configuration settings for distributed tracing.
type TracingConfig struct {
	// Enabled enables or disables tracing.
	Enabled bool `mapstructure:"enabled"`
	// Exporter selects the trace exporter: "stdout" or "otlp".
	Exporter string `mapstructure:"exporter"`
	// OTLPEndpoint is the gRPC endpoint for the OTLP exporter (e.g., "localhost:4317").
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// NATSAuth holds client-side authentication settings for connecting to NATS.
type NATSAuth struct {
	// Type is the auth method: "none", "user_pass", or "nkey".
	Type string `mapstructure:"type"`
	// Username for user_pass auth.
	Username string `mapstructure:"username"`
	// Password for user_pass auth.
	Password string `mapstructure:"password"  mask:"password"`
	// NKeyFile path to the NKey seed file for nkey auth.
	NKeyFile string `mapstructure:"nkey_file"`
}

// NATSServerAuth holds server-side authentication settings for the embedded NATS server.
type NATSServerAuth struct {
	// Type is the auth method: "none", "user_pass", or "nkey".
	Type string `mapstructure:"type"`
	// Users allowed to connect (for user_pass auth).
	Users []NATSServerUser `mapstructure:"users"`
	// NKeys is a list of allowed public NKeys (for nkey auth).
	NKeys []string `mapstructure:"nkeys"`
}

// NATSServerUser represents an allowed username/password pair for the NATS server.
type NATSServerUser struct {
	// Username for the user.
	Username string `mapstructure:"username"`
	// Password for the user.
	Password string `mapstructure:"password" mask:"password"`
}

// NATS configuration settings.
type NATS struct {
	Server NATSServer `mapstructure:"server,omitempty"`
	Audit  NATSAudit  `mapstructure:"audit,omitempty"`
	Ingest NATSIngest `mapstructure:"ingest,omitempty"`
}

// NATSAudit configuration for the KV bucket backing the audit chain.
// The bucket carries no TTL: committed entries never expire.
type NATSAudit struct {
	// Bucket is the KV bucket name for audit entries.
	Bucket   string `mapstructure:"bucket"`
	MaxBytes int64  `mapstructure:"max_bytes"`
	Storage  string `mapstructure:"storage"` // "file" or "memory"
	Replicas int    `mapstructure:"replicas"`
}

// NATSIngest configuration for the async ingestion stream and its consumer.
type NATSIngest struct {
	// Stream is the JetStream stream name for queued append requests.
	Stream   string `mapstructure:"stream"`
	MaxAge   string `mapstructure:"max_age"` // e.g. "24h", "1h30m"
	MaxMsgs  int64  `mapstructure:"max_msgs"`
	Storage  string `mapstructure:"storage"` // "file" or "memory"
	Replicas int    `mapstructure:"replicas"`
	// Consumer settings for the worker's durable pull consumer.
	Consumer NATSIngestConsumer `mapstructure:"consumer,omitempty"`
}

// NATSIngestConsumer configuration for the worker's JetStream consumer settings.
type NATSIngestConsumer struct {
	// Name is the durable consumer name.
	Name string `mapstructure:"name"`
	// MaxDeliver is the maximum number of redelivery attempts.
	MaxDeliver int `mapstructure:"max_deliver"`
	// AckWait is the time to wait for an ACK before redelivering.
	AckWait string `mapstructure:"ack_wait"` // e.g. "30s", "1m"
	// MaxAckPending is the maximum outstanding unacknowledged messages.
	MaxAckPending int `mapstructure:"max_ack_pending"`
	// BackOff durations between redelivery attempts.
	BackOff []string `mapstructure:"back_off"` // e.g. ["30s", "2m", "5m"]
}

// NATSServer configuration settings for the embedded NATS server.
type NATSServer struct {
	// Host the server will bind to.
	Host string `mapstructure:"host"`
	// Port the server will bind to.
	Port int `mapstructure:"port"`
	// StoreDir the directory for JetStream file storage.
	StoreDir string `mapstructure:"store_dir"`
	// Namespace is a prefix for all NATS subjects and infrastructure names.
	Namespace string `mapstructure:"namespace"`
	// Auth holds server-side authentication configuration.
	Auth NATSServerAuth `mapstructure:"auth,omitempty"`
}

// NATSConnection is a reusable NATS connection configuration block.
type NATSConnection struct {
	// Host the NATS server hostname.
	Host string `mapstructure:"host"`
	// Port the NATS server port.
	Port int `mapstructure:"port"`
	// ClientName the NATS client name for identification.
	ClientName string `mapstructure:"client_name"`
	// Namespace is a prefix for all NATS subjects used by this client.
	Namespace string `mapstructure:"namespace"`
	// Auth holds client-side authentication configuration.
	Auth NATSAuth `mapstructure:"auth,omitempty"`
}

// API configuration settings.
type API struct {
	Client `mask:"struct"`
	Server `mask:"struct"`
}

// Client configuration settings.
type Client struct {
	// URL the client will connect to
	URL string `mapstructure:"url"`
	// Security contains security-related configuration for the client, such as access tokens.
	Security ClientSecurity `mapstructure:"security" mask:"struct"`
}

// Server configuration settings.
type Server struct {
	// Port the server will bind to.
	Port int `mapstructure:"port"`
	// NATS connection settings for the API server.
	NATS NATSConnection `mapstructure:"nats"`
	// Security contains security-related configuration for the server, such as CORS and tokens.
	Security ServerSecurity `mapstructure:"security" mask:"struct"`
}

// CustomRole defines a named set of permissions that can be assigned to tokens.
type CustomRole struct {
	// Permissions granted to this role.
	Permissions []string `mapstructure:"permissions"`
}

// ServerSecurity represents security-related settings for the server.
type ServerSecurity struct {
	// CORS Cross-Origin Resource Sharing (CORS) settings for the server.
	CORS CORS `mapstructure:"cors"`
	// SigningKey is the key used for signing or validating tokens.
	SigningKey string `mapstructure:"signing_key" validate:"required" mask:"password"`
	// Roles defines custom roles with fine-grained permissions.
	Roles map[string]CustomRole `mapstructure:"roles"`
}

// ClientSecurity represents security-related settings for the client.
type ClientSecurity struct {
	// BearerToken is the JWT used for role-based access control.
	BearerToken string `mapstructure:"bearer_token" validate:"required" mask:"password"`
}

// CORS represents the CORS (Cross-Origin Resource Sharing) settings.
type CORS struct {
	// List of origins allowed to access the server (e.g., "foo").
	AllowOrigins []string `mapstructure:"allow_origins,omitempty"`
}
