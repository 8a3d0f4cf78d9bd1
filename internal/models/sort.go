package models

import (
	"fmt"
	"slices"
	"strings"
)

// SortOrder names a dashboard ordering.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortAZ     SortOrder = "a-z"
	SortZA     SortOrder = "z-a"
)

// SortOrders lists every ordering in menu order.
var SortOrders = []SortOrder{SortNewest, SortOldest, SortAZ, SortZA}

// ParseSortOrder validates s, defaulting to [SortNewest] when empty.
func ParseSortOrder(s string) (SortOrder, error) {
	if s == "" {
		return SortNewest, nil
	}
	o := SortOrder(strings.ToLower(s))
	if !slices.Contains(SortOrders, o) {
		return "", fmt.Errorf("unknown sort order %q (want newest, oldest, a-z or z-a)", s)
	}
	return o, nil
}

// Next cycles through [SortOrders].
func (o SortOrder) Next() SortOrder {
	i := slices.Index(SortOrders, o)
	return SortOrders[(i+1)%len(SortOrders)]
}

// SortNotes returns a sorted copy of notes.
//
// The alphabetical orders sort by id, matching how the web dashboard labelled them.
func SortNotes(notes []NoteSummary, order SortOrder) []NoteSummary {
	sorted := slices.Clone(notes)
	slices.SortStableFunc(sorted, func(a, b NoteSummary) int {
		switch order {
		case SortAZ:
			return cmpInt64(a.ID, b.ID)
		case SortZA:
			return cmpInt64(b.ID, a.ID)
		case SortOldest:
			return a.CreatedAt.Compare(b.CreatedAt)
		default:
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	})
	return sorted
}

// FilterNotes keeps notes whose URL or video id contains query, case-insensitively.
func FilterNotes(notes []NoteSummary, query string) []NoteSummary {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return slices.Clone(notes)
	}

	var out []NoteSummary
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.YouTubeURL), query) || strings.Contains(strings.ToLower(VideoID(n.YouTubeURL)), query) {
			out = append(out, n)
		}
	}
	return out
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
