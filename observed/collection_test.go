package observed_test

import (
	"errors"
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/observed-collections-go/containers"
	"github.com/AntonStoeckl/observed-collections-go/observed"
	"github.com/AntonStoeckl/observed-collections-go/testutil/handlerspy"
	"github.com/AntonStoeckl/observed-collections-go/testutil/observability/testdoubles"
)

func wrapWithSpy(t *testing.T, container observed.Container[int]) (*observed.Collection[int], *handlerspy.RecordingHandler[int]) {
	t.Helper()

	spy := handlerspy.NewRecordingHandler[int]()
	coll, err := observed.WrapWith[int](container, spy)
	require.NoError(t, err)

	return coll, spy
}

func Test_Wrap_RejectsNilContainer(t *testing.T) {
	coll, err := observed.Wrap[int](nil)

	assert.ErrorIs(t, err, observed.ErrNilContainer)
	assert.ErrorIs(t, err, observed.ErrInvalidArgument)
	assert.Nil(t, coll)
}

func Test_Wrap_IsEquivalentToWrapWithNil(t *testing.T) {
	plain, err := observed.Wrap[int](containers.NewList[int]())
	require.NoError(t, err)

	withNil, err := observed.WrapWith[int](containers.NewList[int](), nil)
	require.NoError(t, err)

	assert.IsType(t, &observed.StandardHandler[int]{}, plain.Handler())
	assert.IsType(t, plain.Handler(), withNil.Handler())
	assert.Same(t, plain, plain.Handler().(*observed.StandardHandler[int]).View())
}

func Test_WrapWith_RejectsUnsupportedListener(t *testing.T) {
	testCases := []struct {
		name     string
		listener any
	}{
		{name: "string", listener: "not a listener"},
		{name: "raw func", listener: func(observed.ModificationEvent[int]) error { return nil }},
		{name: "listener of another element type", listener: observed.PreListenerFunc[string](nil)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			coll, err := observed.WrapWith[int](containers.NewList[int](), tc.listener)

			assert.ErrorIs(t, err, observed.ErrUnsupportedListener)
			assert.Nil(t, coll)
		})
	}
}

func Test_WrapWith_RejectsBoundHandler(t *testing.T) {
	spy := handlerspy.NewRecordingHandler[int]()

	_, err := observed.WrapWith[int](containers.NewList[int](), spy)
	require.NoError(t, err)

	_, err = observed.WrapWith[int](containers.NewList[int](), spy)
	assert.ErrorIs(t, err, observed.ErrHandlerAlreadyBound)
}

func Test_WrapWith_RejectsNilRegistry(t *testing.T) {
	_, err := observed.Wrap[int](containers.NewList[int](), observed.WithRegistry[int](nil))

	assert.ErrorIs(t, err, observed.ErrInvalidArgument)
}

func Test_Collection_HooksSurroundTheModification(t *testing.T) {
	coll, spy := wrapWithSpy(t, containers.NewList[int](1, 2))

	changed, err := coll.Add(3)
	require.NoError(t, err)
	assert.True(t, changed)

	calls := spy.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, handlerspy.Call[int]{Hook: handlerspy.HookPreAdd, Element: 3, SizeAtCall: 2}, calls[0])
	assert.Equal(t, handlerspy.Call[int]{Hook: handlerspy.HookPostAdd, Element: 3, Changed: true, SizeAtCall: 3}, calls[1])
}

func Test_Collection_OperationsCallTheirHooks(t *testing.T) {
	testCases := []struct {
		name      string
		operation func(coll *observed.Collection[int]) (bool, error)
		hooks     []string
		changed   bool
		remaining []int
	}{
		{
			name:      "add",
			operation: func(c *observed.Collection[int]) (bool, error) { return c.Add(4) },
			hooks:     []string{handlerspy.HookPreAdd, handlerspy.HookPostAdd},
			changed:   true,
			remaining: []int{1, 2, 3, 4},
		},
		{
			name:      "add all",
			operation: func(c *observed.Collection[int]) (bool, error) { return c.AddAll([]int{4, 5}) },
			hooks:     []string{handlerspy.HookPreAddAll, handlerspy.HookPostAddAll},
			changed:   true,
			remaining: []int{1, 2, 3, 4, 5},
		},
		{
			name:      "remove",
			operation: func(c *observed.Collection[int]) (bool, error) { return c.Remove(2) },
			hooks:     []string{handlerspy.HookPreRemove, handlerspy.HookPostRemove},
			changed:   true,
			remaining: []int{1, 3},
		},
		{
			name:      "remove missing",
			operation: func(c *observed.Collection[int]) (bool, error) { return c.Remove(9) },
			hooks:     []string{handlerspy.HookPreRemove, handlerspy.HookPostRemove},
			changed:   false,
			remaining: []int{1, 2, 3},
		},
		{
			name:      "remove all",
			operation: func(c *observed.Collection[int]) (bool, error) { return c.RemoveAll([]int{1, 3}) },
			hooks:     []string{handlerspy.HookPreRemoveAll, handlerspy.HookPostRemoveAll},
			changed:   true,
			remaining: []int{2},
		},
		{
			name:      "retain all",
			operation: func(c *observed.Collection[int]) (bool, error) { return c.RetainAll([]int{1, 2, 3}) },
			hooks:     []string{handlerspy.HookPreRetainAll, handlerspy.HookPostRetainAll},
			changed:   false,
			remaining: []int{1, 2, 3},
		},
		{
			name:      "clear",
			operation: func(c *observed.Collection[int]) (bool, error) { return true, c.Clear() },
			hooks:     []string{handlerspy.HookPreClear, handlerspy.HookPostClear},
			changed:   true,
			remaining: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			coll, spy := wrapWithSpy(t, containers.NewList[int](1, 2, 3))

			changed, err := tc.operation(coll)
			require.NoError(t, err)

			assert.Equal(t, tc.changed, changed)
			assert.Equal(t, tc.hooks, spy.Hooks())
			assert.Equal(t, tc.remaining, slices.Collect(coll.All()))
		})
	}
}

func Test_Collection_VetoLeavesContainerUntouched(t *testing.T) {
	testCases := []struct {
		name      string
		veto      func(spy *handlerspy.RecordingHandler[int])
		operation func(coll *observed.Collection[int]) (bool, error)
		preHook   string
	}{
		{
			name:      "add",
			veto:      func(s *handlerspy.RecordingHandler[int]) { s.VetoAdd = func(int) bool { return true } },
			operation: func(c *observed.Collection[int]) (bool, error) { return c.Add(4) },
			preHook:   handlerspy.HookPreAdd,
		},
		{
			name:      "add all",
			veto:      func(s *handlerspy.RecordingHandler[int]) { s.VetoAddAll = func([]int) bool { return true } },
			operation: func(c *observed.Collection[int]) (bool, error) { return c.AddAll([]int{4}) },
			preHook:   handlerspy.HookPreAddAll,
		},
		{
			name:      "remove",
			veto:      func(s *handlerspy.RecordingHandler[int]) { s.VetoRemove = func(int) bool { return true } },
			operation: func(c *observed.Collection[int]) (bool, error) { return c.Remove(1) },
			preHook:   handlerspy.HookPreRemove,
		},
		{
			name:      "remove all",
			veto:      func(s *handlerspy.RecordingHandler[int]) { s.VetoRemoveAll = func([]int) bool { return true } },
			operation: func(c *observed.Collection[int]) (bool, error) { return c.RemoveAll([]int{1}) },
			preHook:   handlerspy.HookPreRemoveAll,
		},
		{
			name:      "retain all",
			veto:      func(s *handlerspy.RecordingHandler[int]) { s.VetoRetainAll = func([]int) bool { return true } },
			operation: func(c *observed.Collection[int]) (bool, error) { return c.RetainAll(nil) },
			preHook:   handlerspy.HookPreRetainAll,
		},
		{
			name:      "clear",
			veto:      func(s *handlerspy.RecordingHandler[int]) { s.VetoClear = func() bool { return true } },
			operation: func(c *observed.Collection[int]) (bool, error) { return false, c.Clear() },
			preHook:   handlerspy.HookPreClear,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			coll, spy := wrapWithSpy(t, containers.NewList[int](1, 2, 3))
			tc.veto(spy)

			changed, err := tc.operation(coll)

			require.NoError(t, err)
			assert.False(t, changed)
			assert.Equal(t, []int{1, 2, 3}, slices.Collect(coll.All()))
			assert.Equal(t, []string{tc.preHook}, spy.Hooks())
		})
	}
}

func Test_Collection_BatchHooksReceiveCallersSlice(t *testing.T) {
	coll, spy := wrapWithSpy(t, containers.NewList[int]())
	elements := []int{1, 2, 3}

	_, err := coll.AddAll(elements)
	require.NoError(t, err)

	calls := spy.Calls()
	require.Len(t, calls, 2)

	for _, call := range calls {
		require.Len(t, call.Elements, len(elements))
		assert.Same(t, &elements[0], &call.Elements[0])
	}
}

func Test_Collection_ContainerErrorSkipsPostHook(t *testing.T) {
	bounded, err := containers.NewBoundedList[int](1)
	require.NoError(t, err)
	coll, spy := wrapWithSpy(t, bounded)

	_, err = coll.Add(1)
	require.NoError(t, err)
	spy.Reset()

	changed, err := coll.Add(2)

	assert.ErrorIs(t, err, containers.ErrCapacityExceeded)
	assert.NotErrorIs(t, err, observed.ErrPreHookFailed)
	assert.NotErrorIs(t, err, observed.ErrPostHookFailed)
	assert.False(t, changed)
	assert.Equal(t, []string{handlerspy.HookPreAdd}, spy.Hooks())
	assert.Equal(t, 1, coll.Len())
}

func Test_Collection_PreHookErrorAbortsTheModification(t *testing.T) {
	coll, spy := wrapWithSpy(t, containers.NewList[int]())
	hookErr := errors.New("validation backend unavailable")
	spy.PreErr = hookErr

	changed, err := coll.Add(1)

	assert.ErrorIs(t, err, observed.ErrPreHookFailed)
	assert.ErrorIs(t, err, hookErr)
	assert.False(t, changed)
	assert.Zero(t, coll.Len())
	assert.Equal(t, []string{handlerspy.HookPreAdd}, spy.Hooks())
}

func Test_Collection_PostHookErrorKeepsTheModification(t *testing.T) {
	coll, spy := wrapWithSpy(t, containers.NewList[int]())
	hookErr := errors.New("subscriber failed")
	spy.PostErr = hookErr

	changed, err := coll.Add(1)

	assert.ErrorIs(t, err, observed.ErrPostHookFailed)
	assert.ErrorIs(t, err, hookErr)
	assert.True(t, changed)
	assert.True(t, coll.Contains(1))
}

func Test_Collection_ReadOperationsAreNotObserved(t *testing.T) {
	coll, spy := wrapWithSpy(t, containers.NewSet[int](1, 2, 3))

	assert.Equal(t, 3, coll.Len())
	assert.True(t, coll.Contains(2))
	assert.True(t, coll.ContainsAll([]int{1, 3}))
	assert.False(t, coll.ContainsAll([]int{1, 4}))
	assert.ElementsMatch(t, []int{1, 2, 3}, slices.Collect(coll.All()))
	assert.Empty(t, spy.Calls())
}

func Test_Collection_RejectsDuplicatesThroughSet(t *testing.T) {
	var events []observed.ModificationEvent[string]
	recorder := observed.PostListenerFunc[string](func(event observed.ModificationEvent[string]) error {
		events = append(events, event)
		return nil
	})

	coll, err := observed.WrapWith[string](containers.NewSet[string](), recorder)
	require.NoError(t, err)

	first, err := coll.Add("a")
	require.NoError(t, err)
	second, err := coll.Add("a")
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
	require.Len(t, events, 2)
	assert.True(t, events[0].Changed)
	assert.False(t, events[1].Changed)
	assert.Equal(t, 1, events[1].PostSize)
}

func Test_Collection_VetoingListenerScenario(t *testing.T) {
	noNegatives := observed.PreListenerFunc[int](func(event observed.ModificationEvent[int]) error {
		for _, element := range event.Elements {
			if element < 0 {
				return observed.ErrVetoed
			}
		}

		return nil
	})

	coll, err := observed.WrapWith[int](containers.NewList[int](), noNegatives)
	require.NoError(t, err)

	changed, err := coll.AddAll([]int{1, -2, 3})
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = coll.AddAll([]int{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = coll.Add(-1)
	require.NoError(t, err)
	assert.False(t, changed)

	assert.Equal(t, []int{1, 2, 3}, slices.Collect(coll.All()))
}

func Test_Collection_CanBeStacked(t *testing.T) {
	inner, innerSpy := wrapWithSpy(t, containers.NewList[int]())
	outer, outerSpy := wrapWithSpy(t, inner)

	_, err := outer.Add(1)
	require.NoError(t, err)

	assert.Equal(t, []string{handlerspy.HookPreAdd, handlerspy.HookPostAdd}, outerSpy.Hooks())
	assert.Equal(t, []string{handlerspy.HookPreAdd, handlerspy.HookPostAdd}, innerSpy.Hooks())
	assert.Equal(t, 1, inner.Len())
}

func Test_Collection_LogsVetoesAndFailures(t *testing.T) {
	logHandler := testdoubles.NewLogHandlerSpy(false)
	spy := handlerspy.NewRecordingHandler[int]()
	spy.VetoAdd = func(int) bool { return true }

	bounded, err := containers.NewBoundedList[int](1)
	require.NoError(t, err)

	coll, err := observed.WrapWith[int](bounded, spy, observed.WithLogger[int](slog.New(logHandler)))
	require.NoError(t, err)

	_, err = coll.Add(1)
	require.NoError(t, err)
	assert.True(t, logHandler.HasLogWithAttr(slog.LevelDebug, "modification vetoed", "operation", "add"))

	_, err = coll.AddAll([]int{1, 2})
	require.ErrorIs(t, err, containers.ErrCapacityExceeded)
	assert.True(t, logHandler.HasLogWithAttr(slog.LevelError, "container modification failed", "operation", "add_all"))

	spy.PostErr = errors.New("boom")
	_, err = coll.Remove(1)
	require.Error(t, err)
	assert.True(t, logHandler.HasLogWithAttr(slog.LevelError, "post modification hook failed", "error", "boom"))
}
