// Package scoring computes the composite ranking score for a freelancer
// against a service definition, caching the result on the freelancer until
// an invalidation trigger (skill write, rating update, burnout flip, or
// service reassignment) marks it stale.
package scoring

import (
	"math"

	"github.com/okian/souk/internal/domain/catalog"
	"github.com/okian/souk/internal/domain/model"
	"github.com/okian/souk/pkg/metrics"
)

// Composite score formula weights. The result is scaled to an integer and
// truncated toward negative infinity, so it can be negative under burnout.
const (
	skillWeight       = 0.55
	ratingWeight      = 0.25
	reliabilityWeight = 0.20
	burnoutPenalty    = 0.45
	scoreScale        = 10000
	ratingCeiling     = 5.0
)

// Composite returns the freelancer's composite score for svc, recomputing
// only when the cache is stale.
func Composite(f *model.Freelancer, svc *catalog.Service) int {
	if !f.ScoreStale {
		metrics.RecordScoreCacheHit()
		return f.CachedScore
	}
	metrics.RecordScoreCacheMiss()

	dot := 0
	for i := 0; i < catalog.Dimensions; i++ {
		dot += f.SkillAt(i) * svc.Weights[i]
	}
	skillScore := float64(dot) / svc.Denominator

	ratingScore := f.Rating / ratingCeiling

	totalJobs := f.CompletedJobs + f.CancelledJobs
	reliabilityScore := 1.0
	if totalJobs != 0 {
		reliabilityScore = 1.0 - float64(f.CancelledJobs)/float64(totalJobs)
	}

	penalty := 0.0
	if f.Burnout {
		penalty = burnoutPenalty
	}

	composite := skillWeight*skillScore + ratingWeight*ratingScore + reliabilityWeight*reliabilityScore - penalty
	f.CachedScore = int(math.Floor(scoreScale * composite))
	f.ScoreStale = false
	return f.CachedScore
}
