// Package table holds the member table's state and the pure transitions and
// derivations the view layer drives.
package table

import (
	"strings"

	"github.com/deathrjj/member-admin-tui/models"
)

// PageSize is the number of rows shown per page.
const PageSize = 10

// View is everything derived from (records, search, page) for one render.
type View struct {
	Filtered   []models.Member
	Rows       []models.Member
	Page       int
	TotalPages int
}

// ContainsCaseInsensitive returns true if s contains substr (case-insensitive).
func ContainsCaseInsensitive(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Matches reports whether term occurs in the member's name, email or role.
func Matches(m models.Member, term string) bool {
	return ContainsCaseInsensitive(m.Name, term) ||
		ContainsCaseInsensitive(m.Email, term) ||
		ContainsCaseInsensitive(m.Role, term)
}

// Filter returns the members matching term, in their original order.
// The result never aliases records.
func Filter(records []models.Member, term string) []models.Member {
	out := make([]models.Member, 0, len(records))
	for _, m := range records {
		if term == "" || Matches(m, term) {
			out = append(out, m)
		}
	}
	return out
}

// TotalPages is ceil(count / PageSize).
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + PageSize - 1) / PageSize
}

// ClampPage keeps page inside [1, total]. With no pages it returns 1.
func ClampPage(page, total int) int {
	if total <= 0 || page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// Derive computes the filtered set, the current page slice and the page count.
func Derive(records []models.Member, search string, page int) View {
	filtered := Filter(records, search)
	total := TotalPages(len(filtered))
	page = ClampPage(page, total)

	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	var rows []models.Member
	if start < end {
		rows = filtered[start:end:end]
	}
	return View{
		Filtered:   filtered,
		Rows:       rows,
		Page:       page,
		TotalPages: total,
	}
}
