package stakepool

import "strings"

// Correlation is the result of joining caller keys with the validator list
type Correlation struct {
	Matches   []Match
	Unmatched []ValidatorKeys
}

// Correlate joins keys with validators on the vote account, compared
// case-insensitively on its base58 text. The first validator in list order
// wins when the list repeats a vote account, and a vote account repeated in
// keys is handled once. Keys without a validator end up in Unmatched.
func Correlate(validators []ValidatorStakeInfo, keys []ValidatorKeys) Correlation {
	byVote := make(map[string]ValidatorStakeInfo, len(validators))
	for _, v := range validators {
		k := voteKey(v.VoteAccount.String())
		if _, seen := byVote[k]; !seen {
			byVote[k] = v
		}
	}

	var result Correlation
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		k := voteKey(key.VoteAccount)
		if _, done := seen[k]; done {
			continue
		}
		seen[k] = struct{}{}

		info, ok := byVote[k]
		if !ok {
			result.Unmatched = append(result.Unmatched, key)
			continue
		}

		result.Matches = append(result.Matches, Match{
			Identity:    key.Identity,
			VoteAccount: key.VoteAccount,
			Stake:       info,
		})
	}

	return result
}

func voteKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
