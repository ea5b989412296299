package sectiondata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildtrack/buildtrack/internal/backend"
	"github.com/buildtrack/buildtrack/internal/rbac"
)

const waitFor = 2 * time.Second
const tick = 5 * time.Millisecond

var employee = &rbac.User{ID: "u-employee", Name: "Eve Employee", Role: rbac.RoleEmployee}

func newHarness(t *testing.T) (*fakeBackend, *recordingObserver, *Client) {
	t.Helper()
	fake := newFakeBackend()
	observer := &recordingObserver{}
	return fake, observer, NewClient(fake, nil, observer)
}

func TestQueryWithoutUserNeverCallsBackend(t *testing.T) {
	fake, _, client := newHarness(t)
	q := client.NewQuery(SectionTasks)
	defer q.Close()

	q.Bind(nil)
	q.Refresh()

	state := q.State()
	assert.Nil(t, state.Data)
	assert.False(t, state.Loading)
	assert.NoError(t, state.Err)
	assert.Zero(t, fake.count.Load())

	_, err := client.Fetch(context.Background(), SectionTasks, nil)
	assert.ErrorIs(t, err, ErrNoUser)
	assert.Zero(t, fake.count.Load())
}

func TestQueryUnknownSectionSurfacesError(t *testing.T) {
	fake, observer, client := newHarness(t)
	q := client.NewQuery(Section("payroll"))
	defer q.Close()

	q.Bind(employee)
	require.Eventually(t, func() bool { return !q.State().Loading }, waitFor, tick)

	state := q.State()
	assert.Nil(t, state.Data)
	var unknown *UnknownSectionError
	require.ErrorAs(t, state.Err, &unknown)
	assert.Equal(t, "Unknown section: payroll", state.Err.Error())
	assert.True(t, IsUnknownSection(state.Err))
	assert.Zero(t, fake.count.Load())
	assert.Equal(t, 1, observer.count(outcomeError))
}

func TestQueryAppliesSuccess(t *testing.T) {
	fake, observer, client := newHarness(t)
	q := client.NewQuery(SectionTasks)
	defer q.Close()

	changes := make(chan State, 8)
	q.OnChange(func(s State) { changes <- s })

	q.Bind(employee)
	assert.True(t, q.State().Loading)

	call := fake.next(t)
	assert.Equal(t, "tasks", call.section)
	assert.Equal(t, employee.ID, call.user.ID)
	call.succeed(tasksWith("t-1", "t-2"))

	require.NoError(t, q.Wait(context.Background()))
	state := q.State()
	assert.True(t, state.Ready())
	assert.Equal(t, []string{"t-1", "t-2"}, taskIDs(t, state))
	assert.False(t, state.Updated.IsZero())
	assert.Equal(t, 1, observer.count(outcomeSuccess))

	first := <-changes
	assert.True(t, first.Loading)
	second := <-changes
	assert.False(t, second.Loading)
}

func TestQueryRejectsStaleResponse(t *testing.T) {
	fake, observer, client := newHarness(t)
	q := client.NewQuery(SectionTasks)
	defer q.Close()

	q.Bind(employee)
	a := fake.next(t)
	q.Refresh()
	b := fake.next(t)

	b.succeed(tasksWith("from-b"))
	require.NoError(t, q.Wait(context.Background()))
	assert.Equal(t, []string{"from-b"}, taskIDs(t, q.State()))

	a.succeed(tasksWith("from-a"))
	require.Eventually(t, func() bool { return observer.count(outcomeDiscarded) == 1 }, waitFor, tick)

	state := q.State()
	assert.Equal(t, []string{"from-b"}, taskIDs(t, state))
	assert.False(t, state.Loading)
}

func TestQueryLoadingClearsOnlyWithNewestRequest(t *testing.T) {
	fake, _, client := newHarness(t)
	q := client.NewQuery(SectionTasks)
	defer q.Close()

	q.Bind(employee)
	a := fake.next(t)
	q.Refresh()
	b := fake.next(t)

	a.succeed(tasksWith("from-a"))
	require.Eventually(t, func() bool { return len(taskIDs(t, q.State())) == 1 }, waitFor, tick)
	state := q.State()
	assert.Equal(t, []string{"from-a"}, taskIDs(t, state))
	assert.True(t, state.Loading)

	b.succeed(tasksWith("from-b"))
	require.NoError(t, q.Wait(context.Background()))
	assert.Equal(t, []string{"from-b"}, taskIDs(t, q.State()))
}

func TestQueryFailureKeepsPreviousData(t *testing.T) {
	fake, observer, client := newHarness(t)
	q := client.NewQuery(SectionTasks)
	defer q.Close()

	q.Bind(employee)
	fake.next(t).succeed(tasksWith("t-1"))
	require.NoError(t, q.Wait(context.Background()))

	q.Refresh()
	assert.Equal(t, []string{"t-1"}, taskIDs(t, q.State()), "refresh keeps prior data visible")
	fake.next(t).fail("Failed to fetch tasks data")
	require.NoError(t, q.Wait(context.Background()))

	state := q.State()
	require.Error(t, state.Err)
	assert.Equal(t, "Failed to fetch tasks data", state.Err.Error())
	assert.Equal(t, []string{"t-1"}, taskIDs(t, state))
	assert.Equal(t, 1, observer.count(outcomeFailure))

	boom := errors.New("connection reset")
	q.Refresh()
	fake.next(t).broken(boom)
	require.NoError(t, q.Wait(context.Background()))

	state = q.State()
	assert.Equal(t, MsgNetwork, state.Err.Error())
	assert.ErrorIs(t, state.Err, boom)
	assert.Equal(t, []string{"t-1"}, taskIDs(t, state))
}

func TestQueryEmptyFailureMessageFallsBack(t *testing.T) {
	fake, _, client := newHarness(t)
	q := client.NewQuery(SectionOrders)
	defer q.Close()

	q.Bind(employee)
	fake.next(t).fail("")
	require.NoError(t, q.Wait(context.Background()))
	assert.Equal(t, MsgFetchDefault, q.State().Err.Error())
}

func TestQueryCloseDiscardsLateCompletion(t *testing.T) {
	fake, observer, client := newHarness(t)
	q := client.NewQuery(SectionTasks)

	q.Bind(employee)
	call := fake.next(t)
	q.Close()
	call.succeed(tasksWith("late"))

	require.Eventually(t, func() bool { return observer.count(outcomeDiscarded) == 1 }, waitFor, tick)
	state := q.State()
	assert.Nil(t, state.Data)
	assert.False(t, state.Loading)
	assert.NoError(t, q.Wait(context.Background()))

	q.Refresh()
	assert.Equal(t, int32(1), fake.count.Load())
}

func TestQueryRebindingClearsPreviousUser(t *testing.T) {
	fake, observer, client := newHarness(t)
	q := client.NewQuery(SectionTasks)
	defer q.Close()

	q.Bind(employee)
	fake.next(t).succeed(tasksWith("eve"))
	require.NoError(t, q.Wait(context.Background()))

	q.Bind(employee)
	assert.Equal(t, int32(1), fake.count.Load(), "same identity does not refetch")

	supervisor := &rbac.User{ID: "u-super", Name: "Sue", Role: rbac.RoleSupervisor}
	q.Bind(supervisor)
	assert.Nil(t, q.State().Data)
	call := fake.next(t)
	assert.Equal(t, supervisor.ID, call.user.ID)

	q.Bind(nil)
	state := q.State()
	assert.Nil(t, state.Data)
	assert.False(t, state.Loading)

	call.succeed(tasksWith("sue"))
	require.Eventually(t, func() bool { return observer.count(outcomeDiscarded) == 1 }, waitFor, tick)
	assert.Nil(t, q.State().Data)
}

func TestQueryWaitHonoursContext(t *testing.T) {
	fake, _, client := newHarness(t)
	q := client.NewQuery(SectionTasks)
	defer q.Close()

	q.Bind(employee)
	call := fake.next(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Wait(ctx), context.DeadlineExceeded)

	call.succeed(tasksWith("t-1"))
	require.NoError(t, q.Wait(context.Background()))
}

func TestClientFetchAgainstMockBackend(t *testing.T) {
	client := NewClient(backend.NewMock(backend.MockOptions{}), nil, nil)
	supplier := &rbac.User{ID: "u-supplier", Role: rbac.RoleSupplier}

	for _, section := range All() {
		data, err := client.Fetch(context.Background(), section, supplier)
		require.NoError(t, err, section)
		require.NotNil(t, data, section)
	}

	data, err := client.Fetch(context.Background(), SectionInventory, supplier)
	require.NoError(t, err)
	inventory, ok := data.(backend.InventoryData)
	require.True(t, ok)
	assert.Len(t, inventory.LowStockAlerts, len(backend.LowStock(inventory.Items)))

	_, err = client.Fetch(context.Background(), Section("deliveries"), supplier)
	assert.True(t, IsUnknownSection(err))
}

func TestParseSection(t *testing.T) {
	s, ok := Parse("inventory")
	assert.True(t, ok)
	assert.Equal(t, SectionInventory, s)

	for _, raw := range []string{" inventory", "Inventory", "INVENTORY"} {
		_, ok = Parse(raw)
		assert.False(t, ok, raw)
	}

	_, ok = Parse("settings")
	assert.False(t, ok)
	assert.Len(t, All(), 10)
}
