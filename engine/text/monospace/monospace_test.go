package monospace

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/lineflow/core/dimen"
)

func TestMeasure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.text")
	defer teardown()
	//
	m := New(10*dimen.PX, nil)
	w, h, b := m.Measure("Hello ", 0)
	assert.Equal(t, 60*dimen.PX, w)
	assert.Equal(t, 10*dimen.PX, h)
	assert.Equal(t, 2*dimen.PX, b)
	w, _, _ = m.Measure("世界", 0)
	assert.Equal(t, 40*dimen.PX, w, "wide characters take two cells")
	w, h, _ = m.Measure("", 0)
	assert.Equal(t, dimen.Zero, w)
	assert.Equal(t, 10*dimen.PX, h, "empty text still has a line height")
}

func TestMeasureWithFontSize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lineflow.text")
	defer teardown()
	//
	m := New(0, nil)
	w, h, _ := m.Measure("abc", 8*dimen.PX)
	assert.Equal(t, 24*dimen.PX, w)
	assert.Equal(t, 8*dimen.PX, h)
	w, _, _ = m.Measure("abc", 0)
	assert.Equal(t, dimen.Zero, w)
}
