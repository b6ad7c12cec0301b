package pagewire

import (
	"log/slog"
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggestionMaxDistance bounds how far a "did you mean" id hint may be
// from the id that missed.
const suggestionMaxDistance = 3

// logSelectorMiss records a widget selector that matched nothing. For
// id selectors it adds the nearest existing id as a hint, since a miss
// there is almost always a typo in config or markup.
func (s *Session) logSelectorMiss(widget, selector string) {
	if s.logger == nil {
		return
	}

	args := []any{
		slog.String("widget", widget),
		slog.String("selector", selector),
	}
	if id, ok := strings.CutPrefix(selector, "#"); ok {
		if near := s.nearestID(id); near != "" {
			args = append(args, slog.String("did_you_mean", "#"+near))
		}
	}
	s.logger.Info("widget elements not found, skipping", args...)
}

// nearestID returns the document id closest to the missed one, empty
// when nothing is plausibly close.
func (s *Session) nearestID(miss string) string {
	best := ""
	bestDist := suggestionMaxDistance + 1
	for _, id := range s.doc.ElementIDs() {
		if d := levenshtein.ComputeDistance(miss, id); d < bestDist {
			best, bestDist = id, d
		}
	}
	return best
}
