package analyze

import (
	"encoding/json"
	"sort"
	"strings"

	"sgf_review/internal/domain"
	apperr "sgf_review/internal/errors"
)

// DecodeResponses parses a newline-delimited JSON response stream. An empty
// stream, or a stream whose first record is an error object, is a terminal
// engine failure surfaced with the raw payload.
func DecodeResponses(stream []byte) ([]domain.Response, error) {
	var responses []domain.Response
	for _, line := range strings.Split(string(stream), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var resp domain.Response
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			return nil, &apperr.EngineError{Payload: line, Err: err}
		}
		if resp.Error != "" {
			return nil, &apperr.EngineError{Payload: line}
		}
		responses = append(responses, resp)
	}
	if len(responses) == 0 {
		return nil, &apperr.EngineError{Payload: string(stream), Err: apperr.ErrEmptyEngineStream}
	}
	return responses, nil
}

// DropTurns flags turns worth a deeper look: the input is sorted ascending
// by turn number (streamed order is untrusted) and for every pair of
// consecutive turns whose win rate declines by more than threshold, the
// earlier turn is emitted — that is where a stronger search can produce a
// corrective continuation. Rises never flag, and turns that are not
// consecutive never pair up. The result is ordered and deduplicated; empty
// means no revisit is needed, which is a valid terminal outcome.
func DropTurns(responses []domain.Response, threshold float64) []int {
	sorted := make([]domain.Response, len(responses))
	copy(sorted, responses)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].TurnNumber < sorted[j].TurnNumber
	})

	var turns []int
	seen := make(map[int]bool)
	for i := 1; i < len(sorted); i++ {
		if sorted[i].TurnNumber != sorted[i-1].TurnNumber+1 {
			continue
		}
		drop := sorted[i-1].RootInfo.Winrate - sorted[i].RootInfo.Winrate
		if drop <= threshold {
			continue
		}
		t := sorted[i-1].TurnNumber
		if !seen[t] {
			seen[t] = true
			turns = append(turns, t)
		}
	}
	return turns
}

// Merge removes every original record whose turn number is in turns, then
// appends the revisit records verbatim. The merged output is deliberately
// not re-sorted; consumers must tolerate non-monotonic turn numbers.
func Merge(original, revisit []domain.Response, turns []int) []domain.Response {
	drop := make(map[int]bool, len(turns))
	for _, t := range turns {
		drop[t] = true
	}
	merged := make([]domain.Response, 0, len(original)+len(revisit))
	for _, resp := range original {
		if !drop[resp.TurnNumber] {
			merged = append(merged, resp)
		}
	}
	return append(merged, revisit...)
}
