package table

import (
	"github.com/deathrjj/member-admin-tui/models"
)

// Draft is the single uncommitted edit buffer.
type Draft struct {
	ID     int
	Values map[models.Field]string
}

// State is the whole table controller state. Transitions take a State by value
// and return the next one without mutating the receiver's slices or maps.
type State struct {
	Records  []models.Member
	Search   string
	Page     int
	Selected models.SelectionSet
	Draft    *Draft
}

// New returns an empty state on page 1.
func New() State {
	return State{Page: 1, Selected: models.SelectionSet{}}
}

// Load replaces the working set with the fetched records. Later duplicates of
// an id are dropped so ids stay unique.
func (s State) Load(records []models.Member) State {
	seen := make(map[int]bool, len(records))
	out := make([]models.Member, 0, len(records))
	for _, m := range records {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	s.Records = out
	s.Selected = models.SelectionSet{}
	s.Draft = nil
	return s.normalize()
}

// View derives the current render values.
func (s State) View() View {
	return Derive(s.Records, s.Search, s.Page)
}

// SetSearch sets the filter term and returns to the first page. A pending
// draft is kept; it never reaches the record unless committed.
func (s State) SetSearch(term string) State {
	s.Search = term
	s.Page = 1
	return s
}

// FirstPage moves to page 1.
func (s State) FirstPage() State {
	return s.GoToPage(1)
}

// PrevPage moves back one page; no-op on the first page.
func (s State) PrevPage() State {
	return s.GoToPage(s.View().Page - 1)
}

// NextPage moves forward one page; no-op on the last page.
func (s State) NextPage() State {
	return s.GoToPage(s.View().Page + 1)
}

// LastPage moves to the last page.
func (s State) LastPage() State {
	return s.GoToPage(s.View().TotalPages)
}

// GoToPage jumps to page n. Out of range pages are ignored. Like SetSearch it
// leaves the draft in place.
func (s State) GoToPage(n int) State {
	v := s.View()
	if n < 1 || n > v.TotalPages {
		return s
	}
	s.Page = n
	return s
}

// BeginEdit seeds the edit buffer from the record, replacing any other draft.
func (s State) BeginEdit(id int) State {
	m, ok := s.find(id)
	if !ok {
		return s
	}
	values := make(map[models.Field]string, len(models.Fields))
	for _, f := range models.Fields {
		values[f] = m.Get(f)
	}
	s.Draft = &Draft{ID: id, Values: values}
	return s
}

// UpdateField changes one draft value. Only the row being edited accepts input.
func (s State) UpdateField(id int, f models.Field, value string) State {
	if !s.Editing(id) {
		return s
	}
	values := make(map[models.Field]string, len(s.Draft.Values)+1)
	for k, v := range s.Draft.Values {
		values[k] = v
	}
	values[f] = value
	s.Draft = &Draft{ID: id, Values: values}
	return s
}

// CommitEdit merges the draft into the record and clears the buffer.
func (s State) CommitEdit(id int) State {
	if !s.Editing(id) {
		return s
	}
	records := make([]models.Member, len(s.Records))
	copy(records, s.Records)
	for i := range records {
		if records[i].ID != id {
			continue
		}
		for f, v := range s.Draft.Values {
			switch f {
			case models.FieldName:
				records[i].Name = v
			case models.FieldEmail:
				records[i].Email = v
			case models.FieldRole:
				records[i].Role = v
			}
		}
	}
	s.Records = records
	s.Draft = nil
	return s.normalize()
}

// DeleteRow removes the record with id. Only that id leaves the selection;
// other selected rows stay checked.
func (s State) DeleteRow(id int) State {
	return s.remove(models.SelectionSet{id: true}, false)
}

// DeleteSelected removes every selected record and clears the selection.
func (s State) DeleteSelected() State {
	return s.remove(s.Selected, true)
}

// ToggleRow flips the selection of id.
func (s State) ToggleRow(id int) State {
	sel := s.Selected.Clone()
	if sel[id] {
		delete(sel, id)
	} else {
		sel[id] = true
	}
	s.Selected = sel
	return s
}

// ToggleSelectAllOnPage clears the selection when every row on the current
// page is selected, otherwise selects exactly the current page's rows.
// Selections on other pages are replaced, not merged.
func (s State) ToggleSelectAllOnPage() State {
	if s.AllOnPageSelected() {
		s.Selected = models.SelectionSet{}
		return s
	}
	sel := models.SelectionSet{}
	for _, m := range s.View().Rows {
		sel[m.ID] = true
	}
	s.Selected = sel
	return s
}

// AllOnPageSelected reports whether every row of the current page is selected.
func (s State) AllOnPageSelected() bool {
	for _, m := range s.View().Rows {
		if !s.Selected.Has(m.ID) {
			return false
		}
	}
	return true
}

// IsSelected reports whether id is checked.
func (s State) IsSelected(id int) bool {
	return s.Selected.Has(id)
}

// Editing reports whether id owns the edit buffer.
func (s State) Editing(id int) bool {
	return s.Draft != nil && s.Draft.ID == id
}

// SelectedMembers returns the selected records in working-set order.
func (s State) SelectedMembers() []models.Member {
	var out []models.Member
	for _, m := range s.Records {
		if s.Selected.Has(m.ID) {
			out = append(out, m)
		}
	}
	return out
}

func (s State) find(id int) (models.Member, bool) {
	for _, m := range s.Records {
		if m.ID == id {
			return m, true
		}
	}
	return models.Member{}, false
}

// remove drops the records in ids. The selection is cleared when clearAll is
// set, otherwise only the removed ids leave it. A draft for a removed record
// is dropped.
func (s State) remove(ids models.SelectionSet, clearAll bool) State {
	records := make([]models.Member, 0, len(s.Records))
	for _, m := range s.Records {
		if !ids.Has(m.ID) {
			records = append(records, m)
		}
	}
	if clearAll {
		s.Selected = models.SelectionSet{}
	} else {
		sel := s.Selected.Clone()
		for id := range ids {
			delete(sel, id)
		}
		s.Selected = sel
	}
	if s.Draft != nil && ids.Has(s.Draft.ID) {
		s.Draft = nil
	}
	s.Records = records
	return s.normalize()
}

// normalize clamps the page back into range after the record set changed.
func (s State) normalize() State {
	s.Page = ClampPage(s.Page, TotalPages(len(Filter(s.Records, s.Search))))
	return s
}
