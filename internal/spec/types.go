package spec

// Config is the parsed benchmark configuration.
type Config struct {
	Version    int              `yaml:"version" json:"version"`
	Dataset    DatasetConfig    `yaml:"dataset" json:"dataset"`
	Providers  []ProviderConfig `yaml:"providers" json:"providers"`
	Execution  ExecutionConfig  `yaml:"execution" json:"execution"`
	Evaluation EvaluationConfig `yaml:"evaluation" json:"evaluation"`
	Output     OutputConfig     `yaml:"output" json:"output"`
}

// ProviderNames returns the configured provider names in order.
func (c Config) ProviderNames() []string {
	names := make([]string, 0, len(c.Providers))
	for _, provider := range c.Providers {
		names = append(names, provider.Name)
	}
	return names
}

type DatasetConfig struct {
	Path               string `yaml:"path" json:"path"`
	MaxQuestionsPerDoc int    `yaml:"max_questions_per_doc" json:"max_questions_per_doc"`
}

// ProviderConfig describes one document-understanding provider under test.
// Type selects the registered constructor; Name identifies the instance in
// results. Settings carries adapter-specific options.
type ProviderConfig struct {
	Name     string            `yaml:"name" json:"name"`
	Type     string            `yaml:"type" json:"type"`
	Model    string            `yaml:"model" json:"model"`
	Settings map[string]string `yaml:"settings" json:"settings,omitempty"`
}

// ExecutionConfig bounds the run's concurrency and external call timeouts.
type ExecutionConfig struct {
	Workers             int `yaml:"workers" json:"workers"`
	ProviderConcurrency int `yaml:"provider_concurrency" json:"provider_concurrency"`
	ScoringConcurrency  int `yaml:"scoring_concurrency" json:"scoring_concurrency"`

	IngestTimeoutSeconds int `yaml:"ingest_timeout_seconds" json:"ingest_timeout_seconds"`
	QueryTimeoutSeconds  int `yaml:"query_timeout_seconds" json:"query_timeout_seconds"`
	ScoreTimeoutSeconds  int `yaml:"score_timeout_seconds" json:"score_timeout_seconds"`
}

type EvaluationConfig struct {
	Model                  string   `yaml:"model" json:"model"`
	Metrics                []string `yaml:"metrics" json:"metrics"`
	NaNPolicy              string   `yaml:"nan_policy" json:"nan_policy"`
	ScoreAttempts          int      `yaml:"score_attempts" json:"score_attempts"`
	ScoreRetryDelaySeconds int      `yaml:"score_retry_delay_seconds" json:"score_retry_delay_seconds"`
}

type OutputConfig struct {
	Backend    string      `yaml:"backend" json:"backend"`
	ResultsDir string      `yaml:"results_dir" json:"results_dir"`
	Resume     bool        `yaml:"resume" json:"resume"`
	DuckDBPath string      `yaml:"duckdb_path" json:"duckdb_path,omitempty"`
	Redis      RedisConfig `yaml:"redis" json:"redis,omitempty"`
	S3         S3Config    `yaml:"s3" json:"s3,omitempty"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr,omitempty"`
	Password string `yaml:"password" json:"-"`
	DB       int    `yaml:"db" json:"db,omitempty"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint" json:"endpoint,omitempty"`
	Region    string `yaml:"region" json:"region,omitempty"`
	Bucket    string `yaml:"bucket" json:"bucket,omitempty"`
	AccessKey string `yaml:"access_key" json:"-"`
	SecretKey string `yaml:"secret_key" json:"-"`
	UseSSL    bool   `yaml:"use_ssl" json:"use_ssl,omitempty"`
}
