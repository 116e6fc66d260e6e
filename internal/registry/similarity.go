package registry

import (
	"crypto/sha256"
	"encoding/binary"
)

// SimilarityScorer computes a similarity score for two feature digests on the
// registry's fixed-point scale. Implementations must be pure and
// deterministic so scan results are reproducible.
type SimilarityScorer interface {
	Score(digestA, digestB FeatureDigest, confA, confB int) int
}

// DigestScorer is a deterministic placeholder for an external
// vector-similarity service. It mixes the two digests into a base value in
// [0, 3000) and adds a confidence-weighted offset, so the result lands in
// [7000, 10100). It is NOT a real similarity metric; deployments needing one
// substitute their own SimilarityScorer.
type DigestScorer struct{}

func (DigestScorer) Score(digestA, digestB FeatureDigest, confA, confB int) int {
	h := sha256.New()
	h.Write(digestA[:])
	h.Write(digestB[:])
	sum := h.Sum(nil)

	base := int(binary.BigEndian.Uint64(sum[:8]) % 3000)
	return 7000 + base + (confA+confB)/200
}
