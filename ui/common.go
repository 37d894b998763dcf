package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	checkedBox   = "☑"
	uncheckedBox = "☐"
)

// MaskEmail censors every character after the first two of the local part,
// keeping the domain readable. Used in demo mode.
func MaskEmail(email string) string {
	local, domain, found := strings.Cut(email, "@")
	if len(local) > 2 {
		local = local[:2] + strings.Repeat("*", len(local)-2)
	}
	if !found {
		return local
	}
	return local + "@" + domain
}

func checkbox(checked bool) string {
	if checked {
		return checkedBox
	}
	return uncheckedBox
}

// PagerText renders the pagination controls. Boundary controls are dimmed and
// the current page is highlighted. Page numbers are omitted when there are
// no pages.
func PagerText(page, total int) string {
	control := func(label string, enabled bool) string {
		if !enabled {
			return "[gray]" + label + "[-]"
		}
		return label
	}
	atFirst := page <= 1
	atLast := page >= total

	parts := []string{control("<<", !atFirst), control("<", !atFirst)}
	for n := 1; n <= total; n++ {
		if n == page {
			parts = append(parts, fmt.Sprintf("[black:white]%d[-:-]", n))
			continue
		}
		parts = append(parts, fmt.Sprintf("%d", n))
	}
	parts = append(parts, control(">", !atLast), control(">>", !atLast))
	return strings.Join(parts, " ")
}

// bottomBarText returns the key hints for the focused area.
func bottomBarText(area focusArea, editing, anySelected bool) string {
	var text string
	switch area {
	case focusTable:
		text = "␣: Select | a: Select Page | e: Edit | d: Delete"
		if anySelected {
			text += " | D: Delete Selected | y: Copy | x: Copy Encrypted"
		}
		text += " | ←/→: Page | /: Search | q: Quit"
		if editing {
			text += " | ⇥ : Switch to Edit"
		}
	case focusSearch:
		text = "Type to filter | ↑/↓/⏎ : Switch to Members"
	case focusEdit:
		text = "⇥ : Next Field | ⏎ on Save: Save | Esc: Back to Members"
	case focusPrompt:
		text = "⏎ : Go to Page | Esc: Cancel"
	}
	return text
}

// CreateErrorModal creates a modal to display error messages
func CreateErrorModal(message string, done func()) *tview.Modal {
	return tview.NewModal().
		SetText(message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			done()
		})
}

// centered wraps p in a fixed-size box in the middle of the screen.
func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

func headerCell(text string) *tview.TableCell {
	return tview.NewTableCell(text).
		SetSelectable(false).
		SetAttributes(tcell.AttrBold).
		SetTextColor(tcell.ColorYellow)
}
