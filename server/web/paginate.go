package web

import (
	"strings"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/clubapi"
)

const (
	// clubListPageSize is the page size of the public club list.
	clubListPageSize = 20
	// myClubsPageSize is the page size of the viewer's own club list.
	myClubsPageSize = 5
)

// Page is one fixed-size slice of a filtered collection.
type Page[T any] struct {
	Items   []T
	Current int
	Total   int
}

func (p Page[T]) HasPrev() bool {
	return p.Current > 1
}

func (p Page[T]) HasNext() bool {
	return p.Current < p.Total
}

func (p Page[T]) Prev() int {
	return clampPage(p.Current-1, p.Total)
}

func (p Page[T]) Next() int {
	return clampPage(p.Current+1, p.Total)
}

func totalPages(n int, size int) int {
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// clampPage bounds a requested page number to the valid range. An empty
// collection still renders as page 1.
func clampPage(page int, total int) int {
	if total < 1 || page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

func paginate[T any](items []T, page int, size int) Page[T] {
	total := totalPages(len(items), size)
	page = clampPage(page, total)

	start := (page - 1) * size
	end := min(start+size, len(items))
	if start > len(items) {
		start = len(items)
	}

	return Page[T]{
		Items:   items[start:end],
		Current: page,
		Total:   total,
	}
}

// filterClubs applies the committed search term as a case-insensitive
// substring match over club name and description.
func filterClubs(clubs []clubapi.Club, query string) []clubapi.Club {
	query = strings.TrimSpace(query)
	if query == "" {
		return clubs
	}
	query = strings.ToLower(query)

	var filtered []clubapi.Club
	for _, club := range clubs {
		if strings.Contains(strings.ToLower(club.Name), query) ||
			strings.Contains(strings.ToLower(club.Description), query) {
			filtered = append(filtered, club)
		}
	}
	return filtered
}

// activeClubs keeps only clubs the public list may show.
func activeClubs(clubs []clubapi.Club) []clubapi.Club {
	var filtered []clubapi.Club
	for _, club := range clubs {
		if club.Status == clubapi.ClubStatusActive {
			filtered = append(filtered, club)
		}
	}
	return filtered
}
