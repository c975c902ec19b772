package scoringconfig

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Load reads YAML file and returns Config with raw bytes
// SSOT 핵심: KnownFields(true)로 오타/미사용 필드 즉시 실패
func Load(path string) (*Config, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, data, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, data, nil
}

// LoadDefault returns the embedded default configuration
func LoadDefault() (*Config, []byte, error) {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return nil, nil, fmt.Errorf("embedded default: %w", err)
	}
	return cfg, defaultYAML, nil
}

// LoadOrDefault loads path, or the embedded default when path is empty
func LoadOrDefault(path string) (*Config, []byte, error) {
	if path == "" {
		return LoadDefault()
	}
	return Load(path)
}

// Parse decodes and validates YAML bytes
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 알 수 없는 필드 발견 시 에러 반환
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Hash generates SHA256 hash from Config (canonical JSON)
// 주의: map 대신 struct/slice 사용으로 해시 재현성 보장
func Hash(cfg *Config) (string, error) {
	jsonBytes, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}

// NewSnapshot creates a snapshot identifying the config used by a run
func NewSnapshot(cfg *Config, runID string) (*Snapshot, error) {
	hash, err := Hash(cfg)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		ConfigHash: hash,
		ConfigID:   cfg.Meta.ConfigID,
		Version:    cfg.Meta.Version,
		RunID:      runID,
		CreatedAt:  time.Now(),
	}, nil
}
