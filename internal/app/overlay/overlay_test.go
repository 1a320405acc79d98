package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ToggleSelection(t *testing.T) {
	o := New()

	o.ToggleSelection("h1")

	assert.True(t, o.Selected().Has("h1"))
	assert.Equal(t, "h1", o.LastSelected())

	o.ToggleSelection("h1")

	assert.False(t, o.Selected().Has("h1"))
	assert.Equal(t, "", o.LastSelected())
}

func Test_ToggleSelection_DeselectingNonAnchorKeepsAnchor(t *testing.T) {
	o := New()

	o.ToggleSelection("h1")
	o.ToggleSelection("h2")
	o.ToggleSelection("h1")

	assert.Equal(t, "h2", o.LastSelected())
	assert.True(t, o.Selected().Has("h2"))
	assert.False(t, o.Selected().Has("h1"))
}

func Test_SelectRange(t *testing.T) {
	ordered := []string{"h1", "h2", "h3", "h4", "h5"}

	o := New()
	o.SelectRange("h2", "h4", ordered)

	assert.Equal(t, []string{"h2", "h3", "h4"}, o.Selected().Values())
	assert.Equal(t, "h4", o.LastSelected())
}

func Test_SelectRange_ReversedEnds(t *testing.T) {
	ordered := []string{"h1", "h2", "h3", "h4", "h5"}

	o := New()
	o.SelectRange("h4", "h2", ordered)

	assert.Equal(t, []string{"h2", "h3", "h4"}, o.Selected().Values())
	assert.Equal(t, "h2", o.LastSelected())
}

func Test_SelectRange_MissingEndIsNoOp(t *testing.T) {
	ordered := []string{"h1", "h2", "h3"}

	o := New()
	o.SelectRange("h1", "stale", ordered)
	o.SelectRange("stale", "h2", ordered)

	assert.Equal(t, 0, o.Selected().Len())
	assert.Equal(t, "", o.LastSelected())
}

func Test_SelectRange_SingleEntry(t *testing.T) {
	ordered := []string{"h1", "h2", "h3"}

	o := New()
	o.SelectRange("h2", "h2", ordered)

	assert.Equal(t, []string{"h2"}, o.Selected().Values())
}

func Test_SelectAll(t *testing.T) {
	o := New()

	o.SelectAll([]string{"h3", "h1", "h2"})

	assert.Equal(t, 3, o.Selected().Len())
	assert.Equal(t, []string{"h1", "h2", "h3"}, o.Selected().Values())
}

func Test_SelectAll_ReplacesPriorSelection(t *testing.T) {
	o := New()
	o.ToggleSelection("h9")

	o.SelectAll([]string{"h1", "h2"})

	assert.Equal(t, []string{"h1", "h2"}, o.Selected().Values())
	assert.False(t, o.Selected().Has("h9"))
}

func Test_DeleteSelected(t *testing.T) {
	o := New()
	o.SelectAll([]string{"h1", "h2"})

	deleted := o.DeleteSelected()

	assert.Equal(t, 2, deleted)
	assert.Equal(t, 0, o.Selected().Len())
	assert.Equal(t, "", o.LastSelected())
	assert.True(t, o.Deleted().Has("h1"))
	assert.True(t, o.Deleted().Has("h2"))
}

func Test_DeleteSelected_EmptySelection(t *testing.T) {
	o := New()

	assert.Equal(t, 0, o.DeleteSelected())
	assert.Equal(t, 0, o.Deleted().Len())
}

func Test_ClearSelection(t *testing.T) {
	o := New()
	o.ToggleSelection("h1")

	o.ClearSelection()

	assert.Equal(t, 0, o.Selected().Len())
	assert.Equal(t, "", o.LastSelected())
}

func Test_ClearDeleted(t *testing.T) {
	o := New()
	o.SelectAll([]string{"h1", "h2"})
	o.DeleteSelected()

	o.ClearDeleted()

	assert.Equal(t, 0, o.Deleted().Len())
}

func Test_ToggleWrap(t *testing.T) {
	o := New()

	o.ToggleWrap("h1")
	assert.True(t, o.Wrapped().Has("h1"))

	o.ToggleWrap("h1")
	assert.False(t, o.Wrapped().Has("h1"))
}

func Test_Reconcile(t *testing.T) {
	o := New()
	o.SelectAll([]string{"h1", "h2", "h3"})
	o.ToggleWrap("h2")
	o.ToggleWrap("gone")
	o.ToggleSelection("h4")
	o.DeleteSelected()
	o.SelectAll([]string{"h1", "h5"})

	o.Reconcile([]string{"h1", "h2", "h3"})

	assert.Equal(t, []string{"h1"}, o.Selected().Values())
	assert.Equal(t, []string{"h1", "h2", "h3"}, o.Deleted().Values())
	assert.Equal(t, []string{"h2"}, o.Wrapped().Values())
}

func Test_Reconcile_ClearsStaleAnchor(t *testing.T) {
	o := New()
	o.ToggleSelection("stale")

	o.Reconcile([]string{"h1"})

	assert.Equal(t, "", o.LastSelected())
	assert.Equal(t, 0, o.Selected().Len())
}

func Test_Reconcile_KeepsLiveAnchor(t *testing.T) {
	o := New()
	o.ToggleSelection("h1")

	o.Reconcile([]string{"h1", "h2"})

	assert.Equal(t, "h1", o.LastSelected())
	assert.True(t, o.Selected().Has("h1"))
}

func Test_Reconcile_SelectionsSurviveReload(t *testing.T) {
	o := New()
	o.ToggleSelection("h2")

	// Same entries come back after a reload, only order and extras change.
	o.Reconcile([]string{"h9", "h2", "h7"})

	assert.True(t, o.Selected().Has("h2"))
	assert.Equal(t, "h2", o.LastSelected())
}
