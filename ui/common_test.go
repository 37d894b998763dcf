package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "an*@example.com", MaskEmail("ann@example.com"))
	assert.Equal(t, "bo@x.io", MaskEmail("bo@x.io"))
	assert.Equal(t, "no******", MaskEmail("nodomain"))
}

func TestPagerText(t *testing.T) {
	assert.Equal(t, "[gray]<<[-] [gray]<[-] [black:white]1[-:-] 2 > >>", PagerText(1, 2))
	assert.Equal(t, "<< < 1 [black:white]2[-:-] [gray]>[-] [gray]>>[-]", PagerText(2, 2))
	assert.Equal(t, "[gray]<<[-] [gray]<[-] [gray]>[-] [gray]>>[-]", PagerText(1, 0))
}

func TestBottomBarText(t *testing.T) {
	assert.NotContains(t, bottomBarText(focusTable, false, false), "Delete Selected")
	assert.Contains(t, bottomBarText(focusTable, false, true), "D: Delete Selected")
	assert.Contains(t, bottomBarText(focusTable, true, false), "Switch to Edit")
	assert.Contains(t, bottomBarText(focusSearch, false, false), "Switch to Members")
	assert.Contains(t, bottomBarText(focusEdit, true, false), "Save")
}
