// Package stats projects per-identity epoch stake samples onto a tracked
// epoch schedule and computes group averages and growth between groups.
package stats

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// LamportsPerSOL rescales raw lamports to stake units
const LamportsPerSOL = 1e9

// Schedule validation errors
var (
	ErrInvalidSchedule = errors.New("invalid schedule")
	ErrNoEpochs        = errors.New("no tracked epochs")
	ErrGroupName       = errors.New("group name must be unique and non-empty")
	ErrPairIndex       = errors.New("growth pair refers to unknown group")
	ErrUntrackedEpoch  = errors.New("group epoch is not tracked")
)

// Group is a named subset of tracked epochs
type Group struct {
	Name   string
	Epochs []uint64
}

// Pair selects two groups, by index, to compare
type Pair struct {
	From int
	To   int
}

// Schedule is the tracked epoch set, its groups, and the group pairs to
// compare. It is immutable once built; use NewSchedule.
type Schedule struct {
	epochs []uint64
	groups []Group
	pairs  []Pair
}

// DefaultSchedule is the reference schedule: three groups of three epochs
func DefaultSchedule() Schedule {
	s, err := NewSchedule(
		[]uint64{805, 806, 807, 823, 824, 825, 796, 795, 797},
		[]Group{
			{Name: "G1", Epochs: []uint64{795, 796, 797}},
			{Name: "G2", Epochs: []uint64{805, 806, 807}},
			{Name: "G3", Epochs: []uint64{823, 824, 825}},
		},
	)
	if err != nil {
		panic(err)
	}
	return s
}

// NewSchedule sorts and deduplicates epochs and validates groups and pairs.
// Every group member must be a tracked epoch.
// Without pairs, every consecutive pair of groups is compared, followed by
// first against last when there are more than two groups.
func NewSchedule(epochs []uint64, groups []Group, pairs ...Pair) (Schedule, error) {
	if len(epochs) == 0 {
		return Schedule{}, fmt.Errorf("%w: %w", ErrInvalidSchedule, ErrNoEpochs)
	}

	tracked := slices.Clone(epochs)
	slices.Sort(tracked)
	tracked = slices.Compact(tracked)

	names := make(map[string]struct{}, len(groups))
	copied := make([]Group, len(groups))
	for i, g := range groups {
		if _, dup := names[g.Name]; dup || g.Name == "" {
			return Schedule{}, fmt.Errorf("%w: %w: %q", ErrInvalidSchedule, ErrGroupName, g.Name)
		}
		names[g.Name] = struct{}{}

		members := slices.Clone(g.Epochs)
		slices.Sort(members)
		for _, e := range members {
			if _, ok := slices.BinarySearch(tracked, e); !ok {
				return Schedule{}, fmt.Errorf("%w: %w: group %q epoch %d", ErrInvalidSchedule, ErrUntrackedEpoch, g.Name, e)
			}
		}
		copied[i] = Group{Name: g.Name, Epochs: slices.Compact(members)}
	}

	if len(pairs) == 0 {
		pairs = DefaultPairs(len(groups))
	}
	for _, p := range pairs {
		if p.From < 0 || p.From >= len(groups) || p.To < 0 || p.To >= len(groups) {
			return Schedule{}, fmt.Errorf("%w: %w: %d->%d", ErrInvalidSchedule, ErrPairIndex, p.From, p.To)
		}
	}

	return Schedule{
		epochs: tracked,
		groups: copied,
		pairs:  slices.Clone(pairs),
	}, nil
}

// DefaultPairs returns consecutive group pairs plus first->last when n > 2
func DefaultPairs(n int) []Pair {
	var pairs []Pair
	for i := 0; i+1 < n; i++ {
		pairs = append(pairs, Pair{From: i, To: i + 1})
	}
	if n > 2 {
		pairs = append(pairs, Pair{From: 0, To: n - 1})
	}
	return pairs
}

// ParseSchedule builds a schedule from text, e.g.
// epochs "795,796,797,805" and groups "G1=795,796,797;G2=805".
// An empty groups string places all tracked epochs in a single group.
func ParseSchedule(epochs, groups string) (Schedule, error) {
	tracked, err := parseEpochList(epochs)
	if err != nil {
		return Schedule{}, fmt.Errorf("%w: epochs: %w", ErrInvalidSchedule, err)
	}

	if strings.TrimSpace(groups) == "" {
		return NewSchedule(tracked, []Group{{Name: "all", Epochs: tracked}})
	}

	var parsed []Group
	for _, part := range strings.Split(groups, ";") {
		name, list, ok := strings.Cut(part, "=")
		if !ok {
			return Schedule{}, fmt.Errorf("%w: group %q: missing '='", ErrInvalidSchedule, part)
		}
		members, err := parseEpochList(list)
		if err != nil {
			return Schedule{}, fmt.Errorf("%w: group %q: %w", ErrInvalidSchedule, name, err)
		}
		parsed = append(parsed, Group{Name: strings.TrimSpace(name), Epochs: members})
	}

	return NewSchedule(tracked, parsed)
}

func parseEpochList(s string) ([]uint64, error) {
	var out []uint64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		epoch, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, epoch)
	}
	return out, nil
}

// Epochs returns the tracked epochs in ascending order
func (s Schedule) Epochs() []uint64 { return slices.Clone(s.epochs) }

// Groups returns the groups in their configured order
func (s Schedule) Groups() []Group {
	out := make([]Group, len(s.groups))
	for i, g := range s.groups {
		out[i] = Group{Name: g.Name, Epochs: slices.Clone(g.Epochs)}
	}
	return out
}

// Pairs returns the group pairs compared by Growths
func (s Schedule) Pairs() []Pair { return slices.Clone(s.pairs) }

// PairName renders a pair as "From->To" using group names
func (s Schedule) PairName(p Pair) string {
	return s.groups[p.From].Name + "->" + s.groups[p.To].Name
}
