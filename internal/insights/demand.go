// Package insights implements the demand aggregation and cached
// insight generation engine.
package insights

import (
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/analytics"
)

// Demand score weights. A WhatsApp contact click is a stronger
// purchase-intent signal than a page view; the ratio is a tunable
// constant, not derived.
const (
	viewWeight  = 1
	clickWeight = 3
)

// NoDataSentinel is reported in place of a top item when no meaningful
// result exists. It is a defined placeholder, distinct from an error.
const NoDataSentinel = "N/A"

// ComputeDemandScores maps item identifiers to weighted demand scores.
// Items with zero events are absent from the result; events with a
// missing item identifier are skipped. The function performs no I/O.
func ComputeDemandScores(views []analytics.ViewEvent, clicks []analytics.ClickEvent) map[string]int {
	scores := make(map[string]int)

	for _, v := range views {
		if v.ItemID == "" {
			continue
		}
		scores[v.ItemID] += viewWeight
	}

	for _, c := range clicks {
		if c.ItemID == "" {
			continue
		}
		scores[c.ItemID] += clickWeight
	}

	return scores
}

// TopDemandItemID returns the item with the maximum demand score and
// true, or ("", false) when no item has any events. Ties break to the
// first item encountered in event-processing order, so the result is
// deterministic for a stable input ordering.
func TopDemandItemID(views []analytics.ViewEvent, clicks []analytics.ClickEvent) (string, bool) {
	scores := ComputeDemandScores(views, clicks)
	if len(scores) == 0 {
		return "", false
	}

	// Rebuild the first-encounter order of item ids so the scan below
	// stays deterministic; map iteration order would not be.
	seen := make(map[string]bool, len(scores))
	order := make([]string, 0, len(scores))
	for _, v := range views {
		if v.ItemID != "" && !seen[v.ItemID] {
			seen[v.ItemID] = true
			order = append(order, v.ItemID)
		}
	}
	for _, c := range clicks {
		if c.ItemID != "" && !seen[c.ItemID] {
			seen[c.ItemID] = true
			order = append(order, c.ItemID)
		}
	}

	topID := ""
	maxScore := 0
	for _, id := range order {
		if scores[id] > maxScore {
			maxScore = scores[id]
			topID = id
		}
	}

	return topID, true
}
