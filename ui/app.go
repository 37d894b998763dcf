package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"github.com/rivo/tview"

	"github.com/deathrjj/member-admin-tui/export"
	"github.com/deathrjj/member-admin-tui/models"
	"github.com/deathrjj/member-admin-tui/table"
)

type focusArea int

const (
	focusTable focusArea = iota
	focusSearch
	focusEdit
	focusPrompt
)

const (
	pageMain   = "main"
	pagePrompt = "goto"
	pageModal  = "modal"
)

// MemberSource fetches the working set once.
type MemberSource interface {
	FetchMembers(ctx context.Context) ([]models.Member, error)
}

// Options configures an App.
type Options struct {
	Source   MemberSource
	Exporter *export.Exporter
	Log      logr.Logger
	// Demo masks emails in the table.
	Demo bool
}

// App is the member table screen. All state lives in one table.State; every
// input event applies one transition and renders once.
type App struct {
	App   *tview.Application
	State table.State

	source   MemberSource
	exporter *export.Exporter
	log      logr.Logger
	demo     bool
	message  string

	pages       *tview.Pages
	layout      *tview.Flex
	searchInput *tview.InputField
	grid        *tview.Table
	editForm    *tview.Form
	pager       *tview.TextView
	status      *tview.TextView
	bottomBar   *tview.TextView
	pageInput   *tview.InputField

	formOpen  bool
	formID    int
	formDirty bool
}

// NewApp creates the member table UI.
func NewApp(app *tview.Application, opts Options) *App {
	a := &App{
		App:      app,
		State:    table.New(),
		source:   opts.Source,
		exporter: opts.Exporter,
		log:      opts.Log,
		demo:     opts.Demo,
	}
	a.build()
	return a
}

// Start shows the loading screen and fetches members in the background.
func (a *App) Start(ctx context.Context) {
	loadingText := tview.NewTextView().
		SetText("Loading members...").
		SetTextAlign(tview.AlignCenter)
	a.App.SetRoot(loadingText, true)

	go func() {
		members, err := a.source.FetchMembers(ctx)
		a.App.QueueUpdateDraw(func() {
			a.applyLoad(members, err)
			a.App.SetRoot(a.pages, true)
			a.focus(focusTable)
		})
	}()
}

// applyLoad installs the fetch result. A failed load is logged and leaves the
// table empty.
func (a *App) applyLoad(members []models.Member, err error) {
	if err != nil {
		a.log.Error(err, "Error fetching members")
		members = nil
	} else {
		a.log.Info("Loaded members", "count", len(members))
	}
	a.State = a.State.Load(members)
	a.render()
}

func (a *App) build() {
	header := tview.NewTextView().
		SetText("Admin UI").
		SetTextAlign(tview.AlignCenter)

	a.searchInput = tview.NewInputField().
		SetLabel("Search: ").
		SetPlaceholder("Search by name, email or role")
	a.searchInput.SetChangedFunc(a.onSearch)
	a.searchInput.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown, tcell.KeyEnter, tcell.KeyTab, tcell.KeyEscape:
			a.focus(focusTable)
			return nil
		}
		return event
	})

	a.grid = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	a.grid.SetInputCapture(a.tableKey)

	a.editForm = tview.NewForm()
	a.editForm.SetBorder(true).SetTitle("Edit")
	a.editForm.SetCancelFunc(func() {
		a.focus(focusTable)
	})

	a.pager = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignRight)
	a.status = tview.NewTextView().
		SetDynamicColors(true)
	a.bottomBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	membersPanel := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.searchInput, 1, 0, false).
		AddItem(a.grid, 0, 1, true)
	membersPanel.SetBorder(true).SetTitle("Members")

	body := tview.NewFlex().
		AddItem(membersPanel, 0, 2, true).
		AddItem(a.editForm, 0, 1, false)

	footer := tview.NewFlex().
		AddItem(a.status, 0, 1, false).
		AddItem(a.pager, 0, 1, false)

	a.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(body, 0, 1, true).
		AddItem(footer, 1, 0, false).
		AddItem(a.bottomBar, 1, 0, false)

	a.pageInput = tview.NewInputField().
		SetLabel("Page: ").
		SetAcceptanceFunc(tview.InputFieldInteger)
	a.pageInput.SetBorder(true).SetTitle("Go to page")
	a.pageInput.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			a.goToPage(a.pageInput.GetText())
		}
		a.pages.HidePage(pagePrompt)
		a.focus(focusTable)
	})

	a.pages = tview.NewPages().
		AddPage(pageMain, a.layout, true, true).
		AddPage(pagePrompt, centered(a.pageInput, 30, 3), true, false)
}

func (a *App) apply(next table.State) {
	a.State = next
	a.render()
}

func (a *App) onSearch(text string) {
	a.apply(a.State.SetSearch(text))
}

func (a *App) onFieldChanged(id int, f models.Field, text string) {
	a.apply(a.State.UpdateField(id, f, text))
}

func (a *App) goToPage(text string) {
	n, err := strconv.Atoi(text)
	if err != nil {
		return
	}
	a.apply(a.State.GoToPage(n))
}

// cursorID returns the id of the highlighted row.
func (a *App) cursorID() (int, bool) {
	rows := a.State.View().Rows
	row, _ := a.grid.GetSelection()
	idx := row - 1
	if idx < 0 || idx >= len(rows) {
		return 0, false
	}
	return rows[idx].ID, true
}

func (a *App) tableKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyHome:
		a.apply(a.State.FirstPage())
		return nil
	case tcell.KeyLeft:
		a.apply(a.State.PrevPage())
		return nil
	case tcell.KeyRight:
		a.apply(a.State.NextPage())
		return nil
	case tcell.KeyEnd:
		a.apply(a.State.LastPage())
		return nil
	case tcell.KeyEnter:
		a.toggleCursor()
		return nil
	case tcell.KeyTab:
		if a.State.Draft != nil {
			a.focus(focusEdit)
		}
		return nil
	case tcell.KeyRune:
	default:
		return event
	}

	switch r := event.Rune(); r {
	case ' ':
		a.toggleCursor()
	case 'a':
		a.apply(a.State.ToggleSelectAllOnPage())
	case 'e':
		a.beginEdit()
	case 'd':
		if id, ok := a.cursorID(); ok {
			a.log.V(1).Info("Deleting member", "id", id)
			a.apply(a.State.DeleteRow(id))
		}
	case 'D':
		a.log.V(1).Info("Deleting selected members", "ids", a.State.Selected.IDs())
		a.apply(a.State.DeleteSelected())
	case 'g':
		a.apply(a.State.FirstPage())
	case 'h':
		a.apply(a.State.PrevPage())
	case 'l':
		a.apply(a.State.NextPage())
	case 'G':
		a.apply(a.State.LastPage())
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		a.apply(a.State.GoToPage(int(r - '0')))
	case 'p':
		a.pageInput.SetText("")
		a.pages.ShowPage(pagePrompt)
		a.focus(focusPrompt)
	case '/':
		a.focus(focusSearch)
	case 'y':
		a.exportSelected(false)
	case 'x':
		a.exportSelected(true)
	case 'q':
		a.App.Stop()
	default:
		return event
	}
	return nil
}

func (a *App) toggleCursor() {
	if id, ok := a.cursorID(); ok {
		a.apply(a.State.ToggleRow(id))
	}
}

func (a *App) beginEdit() {
	id, ok := a.cursorID()
	if !ok {
		return
	}
	a.formDirty = true
	a.apply(a.State.BeginEdit(id))
	a.focus(focusEdit)
}

func (a *App) commit(id int) {
	a.apply(a.State.CommitEdit(id))
	a.log.V(1).Info("Saved member", "id", id)
	a.focus(focusTable)
}

func (a *App) exportSelected(encrypted bool) {
	members := a.State.SelectedMembers()
	var err error
	if encrypted {
		_, err = a.exporter.CopyEncrypted(members)
	} else {
		_, err = a.exporter.CopyJSON(members)
	}
	if err != nil {
		a.log.Error(err, "Export failed", "encrypted", encrypted)
		a.showError(fmt.Sprintf("Export failed: %v", err))
		return
	}
	a.log.Info("Exported members", "count", len(members), "encrypted", encrypted)
	kind := "JSON"
	if encrypted {
		kind = "encrypted JSON"
	}
	a.message = fmt.Sprintf("Copied %d members as %s", len(members), kind)
	a.render()
}

func (a *App) showError(message string) {
	modal := CreateErrorModal(message, func() {
		a.pages.RemovePage(pageModal)
		a.focus(focusTable)
	})
	a.pages.AddPage(pageModal, modal, false, true)
	a.App.SetFocus(modal)
}

func (a *App) focus(area focusArea) {
	switch area {
	case focusTable:
		a.App.SetFocus(a.grid)
	case focusSearch:
		a.App.SetFocus(a.searchInput)
	case focusEdit:
		if !a.formOpen {
			a.App.SetFocus(a.grid)
			area = focusTable
			break
		}
		a.App.SetFocus(a.editForm)
	case focusPrompt:
		a.App.SetFocus(a.pageInput)
	}
	a.updateBottomBar(area)
}

func (a *App) focusedArea() focusArea {
	switch a.App.GetFocus() {
	case a.searchInput:
		return focusSearch
	case a.pageInput:
		return focusPrompt
	}
	if a.formOpen && a.editForm.HasFocus() {
		return focusEdit
	}
	return focusTable
}

func (a *App) updateBottomBar(area focusArea) {
	a.bottomBar.SetText(bottomBarText(area, a.State.Draft != nil, len(a.State.Selected) > 0))
}
