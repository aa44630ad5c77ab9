package stats

// Sample is one externally reported (epoch, stake) pair, stake in lamports
type Sample struct {
	Epoch uint64
	Stake uint64
}

// EpochStake is the projected stake of one tracked epoch, in stake units
type EpochStake struct {
	Epoch uint64
	Stake float64
}

// Growth is the change between two group averages
type Growth struct {
	From     float64
	To       float64
	Absolute float64

	relative    float64
	hasBaseline bool
}

// NewGrowth computes the change from one average to another.
// A zero baseline leaves the relative change undefined.
func NewGrowth(from, to float64) Growth {
	g := Growth{
		From:     from,
		To:       to,
		Absolute: to - from,
	}
	if from != 0 {
		g.relative = (to - from) / from
		g.hasBaseline = true
	}
	return g
}

// Relative returns (to-from)/from, and false when from is zero
func (g Growth) Relative() (float64, bool) {
	return g.relative, g.hasBaseline
}

// Percent returns the relative change in percent, and false when from is zero
func (g Growth) Percent() (float64, bool) {
	return g.relative * 100, g.hasBaseline
}

// HasBaseline reports whether the relative change is defined
func (g Growth) HasBaseline() bool { return g.hasBaseline }

// Project maps samples onto the tracked epochs: one entry per tracked epoch,
// ascending, taking the first sample for that epoch or zero if there is none.
func (s Schedule) Project(samples []Sample) []EpochStake {
	projected := make([]EpochStake, len(s.epochs))
	for i, epoch := range s.epochs {
		projected[i] = EpochStake{Epoch: epoch}
		for _, sample := range samples {
			if sample.Epoch == epoch {
				projected[i].Stake = float64(sample.Stake) / LamportsPerSOL
				break
			}
		}
	}
	return projected
}

// GroupAverage is the unweighted mean of the group's epochs in projected.
// An epoch missing from projected counts as zero; an empty group averages zero.
func GroupAverage(projected []EpochStake, group Group) float64 {
	if len(group.Epochs) == 0 {
		return 0
	}

	byEpoch := make(map[uint64]float64, len(projected))
	for _, p := range projected {
		byEpoch[p.Epoch] = p.Stake
	}

	var sum float64
	for _, epoch := range group.Epochs {
		sum += byEpoch[epoch]
	}
	return sum / float64(len(group.Epochs))
}

// Averages returns GroupAverage for every group, in group order
func (s Schedule) Averages(projected []EpochStake) []float64 {
	averages := make([]float64, len(s.groups))
	for i, g := range s.groups {
		averages[i] = GroupAverage(projected, g)
	}
	return averages
}

// Growths compares the averages for every configured pair, in pair order
func (s Schedule) Growths(averages []float64) []Growth {
	growths := make([]Growth, len(s.pairs))
	for i, p := range s.pairs {
		growths[i] = NewGrowth(averages[p.From], averages[p.To])
	}
	return growths
}

// IdentityStats is the full stats path output for one identity
type IdentityStats struct {
	Identity  string
	Fetch     FetchStatus
	Projected []EpochStake
	Averages  []float64
	Growths   []Growth
}

// Evaluate runs projection, aggregation and growth for one identity
func (s Schedule) Evaluate(identity string, result FetchResult) IdentityStats {
	projected := s.Project(result.Samples)
	averages := s.Averages(projected)
	return IdentityStats{
		Identity:  identity,
		Fetch:     result.Status,
		Projected: projected,
		Averages:  averages,
		Growths:   s.Growths(averages),
	}
}
