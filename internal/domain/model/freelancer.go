package model

import "github.com/okian/souk/internal/domain/catalog"

// Skill evolution constants.
const (
	initialRating    = 5.0
	skillCeiling     = 100
	degradationStep  = 3
	topSkillGain     = 2
	runnerUpGain     = 1
	gainRatingFloor  = 4
	topGainDimension = 3
)

// Freelancer holds the full mutable state for one registered freelancer.
//
// PositionInService and PositionInAvailable mirror the freelancer's current
// slot in its service group's two arrays; keeping them exact after every
// index mutation is what makes removal O(1).
type Freelancer struct {
	ID          string
	ServiceName string
	BasePrice   float64

	Technical     int
	Communication int
	Creativity    int
	Efficiency    int
	Attention     int

	Rating               float64
	CompletedJobs        int
	CancelledJobs        int
	MonthlyCancellations int
	MonthlyCompletedJobs int
	Available            bool
	Burnout              bool

	QueuedService string
	QueuedPrice   float64

	PositionInService   int
	PositionInAvailable int

	// Cached composite score; valid iff ScoreStale is false.
	CachedScore int
	ScoreStale  bool
}

// NewFreelancer creates a freelancer that is available and rated 5.0.
func NewFreelancer(id, serviceName string, basePrice float64, t, c, r, e, a int) *Freelancer {
	return &Freelancer{
		ID:                  id,
		ServiceName:         serviceName,
		BasePrice:           basePrice,
		Technical:           t,
		Communication:       c,
		Creativity:          r,
		Efficiency:          e,
		Attention:           a,
		Rating:              initialRating,
		Available:           true,
		PositionInService:   -1,
		PositionInAvailable: -1,
		ScoreStale:          true,
	}
}

// InvalidateScore marks the cached composite score as stale.
func (f *Freelancer) InvalidateScore() {
	f.ScoreStale = true
}

// SkillAt returns the skill value for a catalog dimension index.
func (f *Freelancer) SkillAt(idx int) int {
	switch idx {
	case catalog.IdxTechnical:
		return f.Technical
	case catalog.IdxCommunication:
		return f.Communication
	case catalog.IdxCreativity:
		return f.Creativity
	case catalog.IdxEfficiency:
		return f.Efficiency
	case catalog.IdxAttention:
		return f.Attention
	}
	return 0
}

// addSkill raises one dimension by gain, capped at the skill ceiling.
func (f *Freelancer) addSkill(idx, gain int) {
	switch idx {
	case catalog.IdxTechnical:
		f.Technical = clampSkill(f.Technical + gain)
	case catalog.IdxCommunication:
		f.Communication = clampSkill(f.Communication + gain)
	case catalog.IdxCreativity:
		f.Creativity = clampSkill(f.Creativity + gain)
	case catalog.IdxEfficiency:
		f.Efficiency = clampSkill(f.Efficiency + gain)
	case catalog.IdxAttention:
		f.Attention = clampSkill(f.Attention + gain)
	}
}

// GainSkillsFromJob grants skill points after a well-rated job: +2 to the
// service's top weighted dimension, +1 to each of the next two. Ties pick
// the earliest-scanned dimension; zero-weight dimensions never gain.
func (f *Freelancer) GainSkillsFromJob(svc *catalog.Service, rating int) {
	if rating < gainRatingFloor {
		return
	}

	remaining := svc.Weights
	var top [topGainDimension]int
	for i := range top {
		top[i] = -1
	}
	for i := 0; i < topGainDimension; i++ {
		maxIdx, maxVal := -1, -1
		for j := 0; j < catalog.Dimensions; j++ {
			if remaining[j] > maxVal {
				maxVal = remaining[j]
				maxIdx = j
			}
		}
		if maxIdx == -1 || maxVal <= 0 {
			break
		}
		top[i] = maxIdx
		remaining[maxIdx] = -1
	}

	if top[0] != -1 {
		f.addSkill(top[0], topSkillGain)
	}
	if top[1] != -1 {
		f.addSkill(top[1], runnerUpGain)
	}
	if top[2] != -1 {
		f.addSkill(top[2], runnerUpGain)
	}

	f.InvalidateScore()
}

// ApplySkillDegradation drops every dimension by the degradation step,
// clamped to [0,100]. Applied when the freelancer cancels a job.
func (f *Freelancer) ApplySkillDegradation() {
	f.Technical = clampSkill(f.Technical - degradationStep)
	f.Communication = clampSkill(f.Communication - degradationStep)
	f.Creativity = clampSkill(f.Creativity - degradationStep)
	f.Efficiency = clampSkill(f.Efficiency - degradationStep)
	f.Attention = clampSkill(f.Attention - degradationStep)
	f.InvalidateScore()
}

// SetSkills overwrites all five dimensions, clamped to [0,100].
func (f *Freelancer) SetSkills(t, c, r, e, a int) {
	f.Technical = clampSkill(t)
	f.Communication = clampSkill(c)
	f.Creativity = clampSkill(r)
	f.Efficiency = clampSkill(e)
	f.Attention = clampSkill(a)
	f.InvalidateScore()
}

func clampSkill(v int) int {
	if v < 0 {
		return 0
	}
	if v > skillCeiling {
		return skillCeiling
	}
	return v
}
