package driver

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"

	"github.com/vmihailenco/msgpack/v5"

	"effectlint/internal/analysis"
	"effectlint/internal/config"
)

// Digest is a SHA-256 sum.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// ConfigDigest hashes cfg with map keys sorted, so equal configs hash equal.
func ConfigDigest(cfg *config.AnalysisConfig) (Digest, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(canonicalConfig(cfg)); err != nil {
		return Digest{}, err
	}
	return sha256.Sum256(buf.Bytes()), nil
}

// CacheKey identifies one analysis: H(content || filename || config ||
// catalog version || analysis type || schema). Fields are separated by a
// zero byte.
func CacheKey(content []byte, filename string, cfg Digest, catalogVersion string, typ analysis.Type) Digest {
	h := sha256.New()
	sep := []byte{0}
	_, _ = h.Write(content)
	_, _ = h.Write(sep)
	_, _ = h.Write([]byte(filename))
	_, _ = h.Write(sep)
	_, _ = h.Write(cfg[:])
	_, _ = h.Write(sep)
	_, _ = h.Write([]byte(catalogVersion))
	_, _ = h.Write(sep)
	_, _ = h.Write([]byte(typ))
	_, _ = h.Write([]byte{0, byte(diskCacheSchemaVersion >> 8), byte(diskCacheSchemaVersion)})
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// canonicalConfig rebuilds cfg from string-keyed maps only; the encoder
// sorts those, not maps of other types.
func canonicalConfig(cfg *config.AnalysisConfig) map[string]any {
	if cfg == nil {
		return nil
	}
	rules := make(map[string]any, len(cfg.Rules))
	for id, s := range cfg.Rules {
		severity := ""
		if s.Severity != nil {
			severity = string(*s.Severity)
		}
		rules[id] = map[string]any{
			"level":    string(s.Level),
			"severity": severity,
			"options":  s.Options,
			"tuple":    s.Tuple,
		}
	}
	return map[string]any{"ignore": cfg.Ignore, "include": cfg.Include, "rules": rules}
}
