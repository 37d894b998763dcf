package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deathrjj/member-admin-tui/export"
	"github.com/deathrjj/member-admin-tui/models"
)

// gatedSource blocks the fetch until release is closed.
type gatedSource struct {
	release chan struct{}
	members []models.Member
}

func (g gatedSource) FetchMembers(ctx context.Context) ([]models.Member, error) {
	select {
	case <-g.release:
		return g.members, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func screenText(screen tcell.SimulationScreen) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for i, cell := range cells {
		if len(cell.Runes) > 0 {
			b.WriteRune(cell.Runes[0])
		} else {
			b.WriteByte(' ')
		}
		if (i+1)%width == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func TestStartSwapsLoadingScreenForTable(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	app := tview.NewApplication().SetScreen(screen)
	screen.SetSize(120, 30)

	src := gatedSource{release: make(chan struct{}), members: members(3)}
	a := NewApp(app, Options{
		Source:   src,
		Exporter: &export.Exporter{Clipboard: &fakeClipboard{}},
		Log:      logr.Discard(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.Start(ctx)

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	// inLoop reads UI state on the event loop, after the last draw.
	inLoop := func(f func()) {
		app.QueueUpdate(f)
	}

	require.Eventually(t, func() bool {
		var text string
		inLoop(func() { text = screenText(screen) })
		return strings.Contains(text, "Loading members...")
	}, 2*time.Second, 10*time.Millisecond)

	var loaded int
	inLoop(func() { loaded = len(a.State.Records) })
	assert.Zero(t, loaded, "nothing is installed before the fetch returns")

	close(src.release)

	require.Eventually(t, func() bool {
		var ok bool
		inLoop(func() {
			ok = len(a.State.Records) == 3 && app.GetFocus() == a.grid
		})
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	var text string
	app.Draw()
	inLoop(func() { text = screenText(screen) })
	assert.NotContains(t, text, "Loading members...")
	assert.Contains(t, text, "User 1")
	assert.Contains(t, text, "Search:")

	app.Stop()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("application did not stop")
	}
}
