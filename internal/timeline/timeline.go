// Package timeline merges launch and event feeds into one ordered window.
package timeline

import (
	"sort"

	"livelaunch/internal/domain"
)

const DefaultMaxItems = 64

// Build unions launches and events keyed by item id (last wins), sorts the
// result by start time and keeps the first maxItems. It returns nil only
// when both inputs are empty.
func Build(launches, events []domain.TimelineItem, maxItems int) []domain.TimelineItem {
	if len(launches) == 0 && len(events) == 0 {
		return nil
	}
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	index := make(map[string]int, len(launches)+len(events))
	merged := make([]domain.TimelineItem, 0, len(launches)+len(events))

	for _, batch := range [][]domain.TimelineItem{launches, events} {
		for _, item := range batch {
			if i, ok := index[item.ID]; ok {
				merged[i] = item
				continue
			}
			index[item.ID] = len(merged)
			merged = append(merged, item)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Start.Before(merged[j].Start)
	})

	if len(merged) > maxItems {
		merged = merged[:maxItems]
	}
	return merged
}

// Index maps item ids to their items.
func Index(items []domain.TimelineItem) map[string]domain.TimelineItem {
	out := make(map[string]domain.TimelineItem, len(items))
	for _, item := range items {
		out[item.ID] = item
	}
	return out
}
