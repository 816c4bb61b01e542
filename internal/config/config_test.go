package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP:      HTTPConfig{Port: 8080},
		Embedding: EmbeddingConfig{APIKey: "test-key"},
	}
}

func lambdaPtr(v float64) *float64 { return &v }

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.APIKey = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing embedding api key")
	}
}

func TestValidate_DatabaseEnabledWithoutAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Enabled = true

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for enabled database without addrs")
	}
}

func TestValidate_DatabaseDisabledWithoutAddrs(t *testing.T) {
	cfg := validConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MMRLambdaBounds(t *testing.T) {
	for _, lambda := range []float64{-0.1, 1.1} {
		cfg := validConfig()
		cfg.Ranking.MMRLambda = lambdaPtr(lambda)

		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for mmr_lambda=%g", lambda)
		}
	}

	for _, lambda := range []float64{0, 0.5, 1} {
		cfg := validConfig()
		cfg.Ranking.MMRLambda = lambdaPtr(lambda)

		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error for mmr_lambda=%g: %v", lambda, err)
		}
	}
}

func TestValidate_Similarity(t *testing.T) {
	for _, name := range []string{"", "category", "cosine"} {
		cfg := validConfig()
		cfg.Ranking.Similarity = name

		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error for similarity %q: %v", name, err)
		}
	}

	cfg := validConfig()
	cfg.Ranking.Similarity = "euclidean"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown similarity strategy")
	}
}

func TestValidate_NegativeRRFConstant(t *testing.T) {
	cfg := validConfig()
	cfg.Ranking.RRFConstant = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for negative rrf_constant")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Embedding.Provider != "openai" {
		t.Errorf("expected default provider, got %q", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("expected default model, got %q", cfg.Embedding.Model)
	}
	if cfg.Cache.Capacity != 100 {
		t.Errorf("expected Capacity=100, got %d", cfg.Cache.Capacity)
	}
	if cfg.Ranking.MMRLambda == nil || *cfg.Ranking.MMRLambda != 0.7 {
		t.Errorf("expected MMRLambda=0.7, got %v", cfg.Ranking.MMRLambda)
	}
	if cfg.Channels.TopN != 50 {
		t.Errorf("expected TopN=50, got %d", cfg.Channels.TopN)
	}
	if cfg.Channels.TimeoutSec != 5 {
		t.Errorf("expected TimeoutSec=5, got %d", cfg.Channels.TimeoutSec)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Cache:    CacheConfig{Capacity: 500},
		Ranking:  RankingConfig{MMRLambda: lambdaPtr(0.5)},
		Channels: ChannelsConfig{TopN: 25, TimeoutSec: 2},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Cache.Capacity != 500 {
		t.Errorf("expected Capacity=500, got %d", cfg.Cache.Capacity)
	}
	if cfg.Ranking.MMRLambda == nil || *cfg.Ranking.MMRLambda != 0.5 {
		t.Errorf("expected MMRLambda=0.5, got %v", cfg.Ranking.MMRLambda)
	}
	if cfg.Channels.TopN != 25 {
		t.Errorf("expected TopN=25, got %d", cfg.Channels.TopN)
	}
}

func TestApplyDefaults_ZeroLambdaPreserved(t *testing.T) {
	cfg := Config{Ranking: RankingConfig{MMRLambda: lambdaPtr(0)}}
	cfg.ApplyDefaults()

	if cfg.Ranking.MMRLambda == nil || *cfg.Ranking.MMRLambda != 0 {
		t.Errorf("explicit mmr_lambda=0 must survive defaults, got %v", cfg.Ranking.MMRLambda)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FURNISH_TEST_KEY", "sk-secret")

	data := []byte("api_key: ${FURNISH_TEST_KEY}\nmodel: ${FURNISH_TEST_MODEL:-text-embedding-3-small}")
	out := string(expandEnvVars(data))

	if out != "api_key: sk-secret\nmodel: text-embedding-3-small" {
		t.Errorf("unexpected expansion: %q", out)
	}
}
