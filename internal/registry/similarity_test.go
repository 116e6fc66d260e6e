package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigestScorerDeterministic(t *testing.T) {
	scorer := DigestScorer{}
	var a, b FeatureDigest
	a[0] = 0x01
	b[0] = 0x02

	first := scorer.Score(a, b, 9000, 9200)
	for range 10 {
		assert.Equal(t, first, scorer.Score(a, b, 9000, 9200))
	}
}

func TestDigestScorerRange(t *testing.T) {
	scorer := DigestScorer{}

	for seed := byte(0); seed < 50; seed++ {
		var a, b FeatureDigest
		a[0] = seed
		b[31] = seed + 1

		score := scorer.Score(a, b, 0, 0)
		assert.GreaterOrEqual(t, score, 7000)
		assert.Less(t, score, 10000)
	}
}

func TestDigestScorerConfidenceOffset(t *testing.T) {
	scorer := DigestScorer{}
	var a, b FeatureDigest
	a[5] = 0xAA
	b[5] = 0xBB

	// Same digests, different confidences: the base term is identical, so
	// the difference is exactly the confidence averaging term.
	low := scorer.Score(a, b, 0, 0)
	high := scorer.Score(a, b, 10000, 10000)
	assert.Equal(t, (10000+10000)/200, high-low)
}

func TestDigestScorerOrderSensitive(t *testing.T) {
	// The placeholder concatenates digests, so argument order matters; the
	// scan always passes (candidate, new) in a fixed order.
	scorer := DigestScorer{}

	orderMatters := false
	for seed := byte(0); seed < 20; seed++ {
		var a, b FeatureDigest
		a[0] = seed
		b[0] = seed + 100
		if scorer.Score(a, b, 9000, 9000) != scorer.Score(b, a, 9000, 9000) {
			orderMatters = true
			break
		}
	}
	assert.True(t, orderMatters)
}
