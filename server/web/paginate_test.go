package web

import (
	"testing"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/clubapi"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		n    int
		size int
		want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 20, 5},
		{5, 5, 1},
		{6, 5, 2},
	}
	for _, tt := range tests {
		if got := totalPages(tt.n, tt.size); got != tt.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tt.n, tt.size, got, tt.want)
		}
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page  int
		total int
		want  int
	}{
		{0, 5, 1},
		{-3, 5, 1},
		{1, 5, 1},
		{5, 5, 5},
		{9, 5, 5},
		{2, 0, 1},
		{0, 0, 1},
	}
	for _, tt := range tests {
		if got := clampPage(tt.page, tt.total); got != tt.want {
			t.Errorf("clampPage(%d, %d) = %d, want %d", tt.page, tt.total, got, tt.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 12)
	for i := range items {
		items[i] = i
	}

	t.Run("first page", func(t *testing.T) {
		page := paginate(items, 1, 5)
		if len(page.Items) != 5 || page.Items[0] != 0 {
			t.Errorf("unexpected items: %v", page.Items)
		}
		if page.Current != 1 || page.Total != 3 {
			t.Errorf("Current = %d, Total = %d", page.Current, page.Total)
		}
		if page.HasPrev() {
			t.Error("first page must not have a previous page")
		}
		if !page.HasNext() {
			t.Error("first page of three must have a next page")
		}
	})

	t.Run("last page is short", func(t *testing.T) {
		page := paginate(items, 3, 5)
		if len(page.Items) != 2 || page.Items[0] != 10 {
			t.Errorf("unexpected items: %v", page.Items)
		}
		if page.HasNext() {
			t.Error("last page must not have a next page")
		}
	})

	t.Run("overflow clamps to last page", func(t *testing.T) {
		page := paginate(items, 99, 5)
		if page.Current != 3 {
			t.Errorf("Current = %d, want 3", page.Current)
		}
	})

	t.Run("empty collection", func(t *testing.T) {
		page := paginate([]int{}, 4, 5)
		if len(page.Items) != 0 || page.Current != 1 || page.Total != 0 {
			t.Errorf("unexpected page: %+v", page)
		}
		if page.HasPrev() || page.HasNext() {
			t.Error("empty page must not paginate")
		}
	})
}

func TestFilterClubs(t *testing.T) {
	clubs := []clubapi.Club{
		{ID: 1, Name: "Chess Club", Description: "We play chess."},
		{ID: 2, Name: "Hiking Society", Description: "Weekend hikes around Taipei."},
		{ID: 3, Name: "Photography", Description: "Chasing light."},
	}

	t.Run("empty query returns all", func(t *testing.T) {
		if got := filterClubs(clubs, "  "); len(got) != 3 {
			t.Errorf("got %d clubs, want 3", len(got))
		}
	})

	t.Run("matches name case-insensitively", func(t *testing.T) {
		got := filterClubs(clubs, "CHESS")
		if len(got) != 1 || got[0].ID != 1 {
			t.Errorf("unexpected result: %v", got)
		}
	})

	t.Run("matches description", func(t *testing.T) {
		got := filterClubs(clubs, "taipei")
		if len(got) != 1 || got[0].ID != 2 {
			t.Errorf("unexpected result: %v", got)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if got := filterClubs(clubs, "rowing"); len(got) != 0 {
			t.Errorf("unexpected result: %v", got)
		}
	})
}

func TestActiveClubs(t *testing.T) {
	clubs := []clubapi.Club{
		{ID: 1, Status: clubapi.ClubStatusActive},
		{ID: 2, Status: clubapi.ClubStatusPending},
		{ID: 3, Status: clubapi.ClubStatusSuspended},
		{ID: 4, Status: clubapi.ClubStatusActive},
		{ID: 5, Status: clubapi.ClubStatusDisbanded},
	}
	got := activeClubs(clubs)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 4 {
		t.Errorf("unexpected result: %v", got)
	}
}
