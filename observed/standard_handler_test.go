package observed_test

import (
	"errors"
	"fmt"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/observed-collections-go/containers"
	"github.com/AntonStoeckl/observed-collections-go/observed"
)

type recordingListener struct {
	modifying []observed.ModificationEvent[string]
	modified  []observed.ModificationEvent[string]
}

func (l *recordingListener) Modifying(event observed.ModificationEvent[string]) error {
	l.modifying = append(l.modifying, event)
	return nil
}

func (l *recordingListener) Modified(event observed.ModificationEvent[string]) error {
	l.modified = append(l.modified, event)
	return nil
}

func wrapStandard(t *testing.T, elements ...string) (*observed.Collection[string], *observed.StandardHandler[string]) {
	t.Helper()

	coll, err := observed.Wrap[string](containers.NewList[string](elements...))
	require.NoError(t, err)

	handler, ok := coll.Handler().(*observed.StandardHandler[string])
	require.True(t, ok)

	return coll, handler
}

func Test_BaseHandler_Bind(t *testing.T) {
	var handler observed.BaseHandler[int]

	assert.ErrorIs(t, handler.Bind(nil), observed.ErrInvalidArgument)

	list := containers.NewList[int]()
	require.NoError(t, handler.Bind(list))
	assert.Same(t, list, handler.View())
	assert.ErrorIs(t, handler.Bind(list), observed.ErrHandlerAlreadyBound)
}

func Test_StandardHandler_ListenerReceivesEvents(t *testing.T) {
	listener := &recordingListener{}
	coll, err := observed.WrapWith[string](containers.NewList[string]("a"), listener)
	require.NoError(t, err)

	_, err = coll.AddAll([]string{"b", "c"})
	require.NoError(t, err)

	require.Len(t, listener.modifying, 1)
	require.Len(t, listener.modified, 1)

	before := listener.modifying[0]
	assert.Equal(t, observed.EventTypeAddAll, before.Type)
	assert.Equal(t, []string{"b", "c"}, before.Elements)
	assert.Equal(t, 1, before.PreSize)
	assert.Same(t, coll, before.Source)

	after := listener.modified[0]
	assert.True(t, after.Changed)
	assert.Equal(t, 1, after.PreSize)
	assert.Equal(t, 3, after.PostSize)
}

func Test_StandardHandler_ClearEvent(t *testing.T) {
	coll, handler := wrapStandard(t, "a", "b")
	listener := &recordingListener{}
	handler.AddListener(listener)

	require.NoError(t, coll.Clear())

	require.Len(t, listener.modified, 1)
	assert.Equal(t, observed.EventTypeClear, listener.modified[0].Type)
	assert.Nil(t, listener.modified[0].Elements)
	assert.Equal(t, 2, listener.modified[0].PreSize)
	assert.Zero(t, listener.modified[0].PostSize)
}

func Test_StandardHandler_VetoStopsFurtherPreListeners(t *testing.T) {
	coll, handler := wrapStandard(t)
	var order []string

	handler.AddPreListener(observed.PreListenerFunc[string](func(observed.ModificationEvent[string]) error {
		order = append(order, "first")
		return fmt.Errorf("reserved name: %w", observed.ErrVetoed)
	}))
	handler.AddPreListener(observed.PreListenerFunc[string](func(observed.ModificationEvent[string]) error {
		order = append(order, "second")
		return nil
	}))

	changed, err := coll.Add("root")

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, []string{"first"}, order)
	assert.Zero(t, coll.Len())
}

func Test_StandardHandler_PreListenerErrorAborts(t *testing.T) {
	coll, handler := wrapStandard(t)
	listenerErr := errors.New("quota service unavailable")
	handler.AddPreListener(observed.PreListenerFunc[string](func(observed.ModificationEvent[string]) error {
		return listenerErr
	}))

	changed, err := coll.Add("x")

	assert.False(t, changed)
	assert.ErrorIs(t, err, observed.ErrPreHookFailed)
	assert.ErrorIs(t, err, listenerErr)
}

func Test_StandardHandler_AllPostListenersAreNotified(t *testing.T) {
	coll, handler := wrapStandard(t)
	errA, errB := errors.New("a failed"), errors.New("b failed")
	notified := 0

	for _, listenerErr := range []error{errA, nil, errB} {
		handler.AddPostListener(observed.PostListenerFunc[string](func(observed.ModificationEvent[string]) error {
			notified++
			return listenerErr
		}))
	}

	changed, err := coll.Add("x")

	assert.True(t, changed)
	assert.Equal(t, 3, notified)
	assert.ErrorIs(t, err, observed.ErrPostHookFailed)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func Test_StandardHandler_EventTypeMask(t *testing.T) {
	coll, handler := wrapStandard(t)
	var seen []observed.EventType

	handler.AddPostListener(observed.PostListenerFunc[string](func(event observed.ModificationEvent[string]) error {
		seen = append(seen, event.Type)
		return nil
	}), observed.EventTypeRemove, observed.EventTypeClear)

	_, err := coll.Add("a")
	require.NoError(t, err)
	_, err = coll.Remove("a")
	require.NoError(t, err)
	require.NoError(t, coll.Clear())

	assert.Equal(t, []observed.EventType{observed.EventTypeRemove, observed.EventTypeClear}, seen)
}

func Test_StandardHandler_RemoveListener(t *testing.T) {
	coll, handler := wrapStandard(t)
	listener := &recordingListener{}

	id := handler.AddListener(listener)
	assert.Equal(t, 1, handler.PreListenerCount())
	assert.Equal(t, 1, handler.PostListenerCount())

	assert.True(t, handler.RemoveListener(id))
	assert.False(t, handler.RemoveListener(id))
	assert.Zero(t, handler.PreListenerCount())
	assert.Zero(t, handler.PostListenerCount())

	_, err := coll.Add("a")
	require.NoError(t, err)
	assert.Empty(t, listener.modifying)
	assert.Empty(t, listener.modified)
}

func Test_StandardHandler_ListenerIDsAreUnique(t *testing.T) {
	handler := observed.NewStandardHandler[string]()
	noop := observed.PreListenerFunc[string](func(observed.ModificationEvent[string]) error { return nil })

	first := handler.AddPreListener(noop)
	second := handler.AddPreListener(noop)

	assert.NotEqual(t, first, second)
	assert.Len(t, first.String(), 36)
}

func Test_EventType_Valid(t *testing.T) {
	for _, eventType := range observed.AllEventTypes() {
		assert.True(t, eventType.Valid(), eventType.String())
	}

	assert.False(t, observed.EventType("upsert").Valid())
}

func Test_ModificationEvent_JSON(t *testing.T) {
	coll, _ := wrapStandard(t, "a")
	event := observed.ModificationEvent[string]{
		Type:     observed.EventTypeRemoveAll,
		Elements: []string{"a", "b"},
		Changed:  true,
		PreSize:  2,
		PostSize: 0,
		Source:   coll,
	}

	data, err := jsoniter.Marshal(event)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"remove_all","elements":["a","b"],"changed":true,"pre_size":2,"post_size":0}`,
		string(data),
	)

	var decoded observed.ModificationEvent[string]
	require.NoError(t, jsoniter.Unmarshal(data, &decoded))

	event.Source = nil
	assert.Equal(t, event, decoded)
}
