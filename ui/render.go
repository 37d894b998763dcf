package ui

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/deathrjj/member-admin-tui/models"
	"github.com/deathrjj/member-admin-tui/table"
)

// Table columns.
const (
	colCheck = iota
	colID
	colName
	colEmail
	colRole
	colActions
)

// render recomputes the derived view once and refreshes every widget.
func (a *App) render() {
	v := a.State.View()
	a.renderTable(v)
	a.pager.SetText(PagerText(v.Page, v.TotalPages))
	a.renderStatus(v)
	a.syncEditForm()
	a.updateBottomBar(a.focusedArea())
}

func (a *App) renderTable(v table.View) {
	row, _ := a.grid.GetSelection()
	a.grid.Clear()

	a.grid.SetCell(0, colCheck, headerCell(checkbox(len(v.Rows) > 0 && a.State.AllOnPageSelected())))
	for col, title := range []string{"ID", "Name", "Email", "Role", "Actions"} {
		a.grid.SetCell(0, col+1, headerCell(title))
	}

	if len(v.Rows) == 0 {
		a.grid.SetCell(1, colName, tview.NewTableCell("No members").
			SetSelectable(false).
			SetTextColor(tcell.ColorGray))
		return
	}

	for i, m := range v.Rows {
		a.renderRow(i+1, m)
	}

	if row < 1 {
		row = 1
	}
	if row > len(v.Rows) {
		row = len(v.Rows)
	}
	a.grid.Select(row, 0)
}

func (a *App) renderRow(r int, m models.Member) {
	selected := a.State.IsSelected(m.ID)
	editing := a.State.Editing(m.ID)

	color := tcell.ColorWhite
	switch {
	case editing:
		color = tcell.ColorYellow
	case selected:
		color = tcell.ColorGreen
	}

	values := map[models.Field]string{}
	for _, f := range models.Fields {
		values[f] = m.Get(f)
		if editing {
			values[f] = a.State.Draft.Values[f]
		}
	}
	email := values[models.FieldEmail]
	if a.demo {
		email = MaskEmail(email)
	}

	actions := "edit  delete"
	if editing {
		actions = "save  delete"
	}

	cells := []string{
		colCheck:   checkbox(selected),
		colID:      strconv.Itoa(m.ID),
		colName:    values[models.FieldName],
		colEmail:   email,
		colRole:    values[models.FieldRole],
		colActions: actions,
	}
	for col, text := range cells {
		cell := tview.NewTableCell(tview.Escape(text)).SetTextColor(color)
		if col == colName || col == colEmail {
			cell.SetExpansion(1)
		}
		a.grid.SetCell(r, col, cell)
	}
}

func (a *App) renderStatus(v table.View) {
	text := fmt.Sprintf("%d members · %d selected · page %d/%d",
		len(v.Filtered), len(a.State.Selected), v.Page, v.TotalPages)
	if a.message != "" {
		text += " · [green]" + tview.Escape(a.message) + "[-]"
	}
	a.status.SetText(text)
}

// syncEditForm rebuilds the edit panel when the draft appears, changes owner
// or is re-seeded, and clears it when the draft goes away.
func (a *App) syncEditForm() {
	d := a.State.Draft
	defer func() { a.formDirty = false }()

	if d == nil {
		if a.formOpen {
			hadFocus := a.editForm.HasFocus()
			a.editForm.Clear(true)
			a.editForm.SetTitle("Edit")
			a.formOpen = false
			if hadFocus {
				a.App.SetFocus(a.grid)
			}
		}
		return
	}
	if a.formOpen && a.formID == d.ID && !a.formDirty {
		return
	}

	id := d.ID
	a.editForm.Clear(true)
	a.editForm.SetTitle(fmt.Sprintf("Edit member %d", id))
	for _, f := range models.Fields {
		a.editForm.AddInputField(fieldLabel(f), d.Values[f], 0, nil, func(text string) {
			a.onFieldChanged(id, f, text)
		})
	}
	a.editForm.AddButton("Save", func() {
		a.commit(id)
	})
	a.formOpen = true
	a.formID = id
}

func fieldLabel(f models.Field) string {
	switch f {
	case models.FieldName:
		return "Name"
	case models.FieldEmail:
		return "Email"
	case models.FieldRole:
		return "Role"
	}
	return string(f)
}
