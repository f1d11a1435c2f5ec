package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	var got []EventKind
	stop := d.Subscribe(HandlerFunc(func(ev Event) bool {
		got = append(got, ev.Kind)
		return true
	}))
	assert.Equal(t, 1, d.Len())

	assert.True(t, d.Dispatch(Event{Kind: Click}))
	stop()
	stop()
	assert.Zero(t, d.Len())
	assert.False(t, d.Dispatch(Event{Kind: Scroll}))
	assert.Equal(t, []EventKind{Click}, got)
}

func TestDispatchStopsAtFirstConsumer(t *testing.T) {
	d := NewDispatcher()
	var calls []string
	d.Subscribe(HandlerFunc(func(ev Event) bool {
		calls = append(calls, "a")
		return ev.Kind == Key
	}))
	d.Subscribe(HandlerFunc(func(Event) bool {
		calls = append(calls, "b")
		return true
	}))

	d.Dispatch(Event{Kind: Key, Key: KeyEscape})
	assert.Equal(t, []string{"a"}, calls)
	d.Dispatch(Event{Kind: Click})
	assert.Equal(t, []string{"a", "a", "b"}, calls)
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	var stop func()
	n := 0
	stop = d.Subscribe(HandlerFunc(func(Event) bool {
		n++
		stop()
		return false
	}))
	d.Dispatch(Event{Kind: PointerMove})
	d.Dispatch(Event{Kind: PointerMove})
	assert.Equal(t, 1, n)
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "secondary-click", SecondaryClick.String())
	assert.Equal(t, "unknown", EventKind(99).String())
}
