package listener

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmercer/pagewire/pkg/pagewire/dom"
)

func testDoc(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(`<html><body>
		<button id="a">A</button>
		<button id="b">B</button>
	</body></html>`)
	require.NoError(t, err)
	return doc
}

func TestAddTracksAndAttaches(t *testing.T) {
	doc := testDoc(t)
	reg := NewRegistry(nil)
	btn := doc.GetElementByID("a")

	fired := 0
	id := reg.Add(btn, "click", func(*dom.Event) { fired++ }, dom.ListenerOptions{})
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, reg.Len())

	btn.Dispatch(dom.ClickEvent())
	assert.Equal(t, 1, fired)
}

func TestAddNilTargetIsNoOp(t *testing.T) {
	reg := NewRegistry(nil)

	id := reg.Add(nil, "click", func(*dom.Event) {}, dom.ListenerOptions{})
	assert.Empty(t, id)
	assert.Equal(t, 0, reg.Len())
}

func TestRemoveAllDetachesEverything(t *testing.T) {
	doc := testDoc(t)
	reg := NewRegistry(nil)
	a := doc.GetElementByID("a")
	b := doc.GetElementByID("b")

	fired := 0
	reg.Add(a, "click", func(*dom.Event) { fired++ }, dom.ListenerOptions{})
	reg.Add(b, "click", func(*dom.Event) { fired++ }, dom.ListenerOptions{})
	require.Equal(t, 2, reg.Len())

	reg.RemoveAll()
	assert.Equal(t, 0, reg.Len())

	a.Dispatch(dom.ClickEvent())
	b.Dispatch(dom.ClickEvent())
	assert.Equal(t, 0, fired, "handlers detached by the sweep")
}

func TestRemoveAllIsIdempotent(t *testing.T) {
	doc := testDoc(t)
	reg := NewRegistry(nil)
	reg.Add(doc.GetElementByID("a"), "click", func(*dom.Event) {}, dom.ListenerOptions{})

	reg.RemoveAll()
	reg.RemoveAll()
	assert.Equal(t, 0, reg.Len())
}

func TestRemoveAllSurvivesOnceListeners(t *testing.T) {
	// A Once listener already removed itself by the time the sweep runs;
	// the dom reports a failed removal and the sweep carries on.
	doc := testDoc(t)
	reg := NewRegistry(nil)
	a := doc.GetElementByID("a")
	b := doc.GetElementByID("b")

	reg.Add(a, "click", func(*dom.Event) {}, dom.ListenerOptions{Once: true})
	stillOn := 0
	reg.Add(b, "click", func(*dom.Event) { stillOn++ }, dom.ListenerOptions{})

	a.Dispatch(dom.ClickEvent())
	reg.RemoveAll()
	assert.Equal(t, 0, reg.Len())

	b.Dispatch(dom.ClickEvent())
	assert.Equal(t, 0, stillOn)
}

func TestRemoveSingleRecord(t *testing.T) {
	doc := testDoc(t)
	reg := NewRegistry(nil)
	a := doc.GetElementByID("a")

	fired := 0
	id := reg.Add(a, "click", func(*dom.Event) { fired++ }, dom.ListenerOptions{})
	other := reg.Add(a, "keydown", func(*dom.Event) {}, dom.ListenerOptions{})

	assert.True(t, reg.Remove(id))
	assert.False(t, reg.Remove(id))
	assert.Equal(t, 1, reg.Len())

	a.Dispatch(dom.ClickEvent())
	assert.Equal(t, 0, fired)

	assert.True(t, reg.Remove(other))
}

func TestRecordsReturnsCopy(t *testing.T) {
	doc := testDoc(t)
	reg := NewRegistry(nil)
	reg.Add(doc.GetElementByID("a"), "click", func(*dom.Event) {}, dom.ListenerOptions{})

	recs := reg.Records()
	require.Len(t, recs, 1)
	recs[0].ID = "mutated"
	assert.NotEqual(t, "mutated", reg.Records()[0].ID)
}
