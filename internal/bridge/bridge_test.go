package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zukus-desktop/internal/commands"
	"zukus-desktop/internal/logger"
)

func newBridge(t *testing.T, descs ...commands.Descriptor) *Bridge {
	t.Helper()
	registry := commands.NewRegistry().MustDeclare(descs...)
	registry.Seal()
	return New(registry, logger.NoOp{}, nil)
}

func pingCommand() commands.Descriptor {
	return commands.Descriptor{
		Name:    "ping",
		Returns: "string",
		Handler: commands.Func(func() string { return "pong" }),
	}
}

func TestCallPing(t *testing.T) {
	b := newBridge(t, pingCommand())

	req, err := NewRequest("ping", nil)
	require.NoError(t, err)
	require.NotEmpty(t, req.ID)

	resp := b.Call(context.Background(), req)
	require.True(t, resp.OK)
	assert.Equal(t, req.ID, resp.ID)
	assert.Nil(t, resp.Error)

	var got string
	require.NoError(t, json.Unmarshal(resp.Result, &got))
	assert.Equal(t, "pong", got)
}

func TestCallUnknownCommand(t *testing.T) {
	b := newBridge(t, pingCommand())

	resp := b.Call(context.Background(), Request{Command: "roll_dice"})
	assert.False(t, resp.OK)
	assert.NotEmpty(t, resp.ID)
	require.NotNil(t, resp.Error)
	assert.Equal(t, KindNotFound, resp.Error.Kind)
	assert.Contains(t, resp.Error.Message, "roll_dice")
}

func TestCallOnEmptyRegistry(t *testing.T) {
	b := New(commands.Default(), logger.NoOp{}, nil)

	resp := b.Call(context.Background(), Request{ID: "1", Command: "ping"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, KindNotFound, resp.Error.Kind)
}

func TestCallClassifiesErrors(t *testing.T) {
	type args struct {
		N int `json:"n"`
	}
	b := newBridge(t,
		commands.Descriptor{
			Name:     "fail",
			Fallible: true,
			Handler: func(context.Context, json.RawMessage) (any, error) {
				return nil, errors.New("nope")
			},
		},
		commands.Descriptor{
			Name:    "boom",
			Handler: func(context.Context, json.RawMessage) (any, error) { panic("bad") },
		},
		commands.Descriptor{
			Name:    "double",
			Params:  []commands.Param{{Name: "n", Type: "int"}},
			Returns: "int",
			Handler: commands.Typed(func(_ context.Context, a args) (int, error) { return a.N * 2, nil }),
		},
	)

	cases := []struct {
		req  Request
		kind ErrorKind
	}{
		{Request{Command: "fail"}, KindFailed},
		{Request{Command: "boom"}, KindPanicked},
		{Request{Command: "double", Args: json.RawMessage(`"x"`)}, KindInvalidArgs},
	}
	for _, tc := range cases {
		resp := b.Call(context.Background(), tc.req)
		require.NotNil(t, resp.Error, tc.req.Command)
		assert.Equal(t, tc.kind, resp.Error.Kind, tc.req.Command)
	}

	req, err := NewRequest("double", args{N: 21})
	require.NoError(t, err)
	resp := b.Call(context.Background(), req)
	require.True(t, resp.OK)
	assert.JSONEq(t, "42", string(resp.Result))
}

func TestCallCancelledContext(t *testing.T) {
	b := newBridge(t, pingCommand())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := b.Call(ctx, Request{Command: "ping"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, KindCancelled, resp.Error.Kind)
}

func TestCallUnencodableResult(t *testing.T) {
	b := newBridge(t, commands.Descriptor{
		Name:    "chan",
		Returns: "chan",
		Handler: commands.Func(func() chan int { return make(chan int) }),
	})

	resp := b.Call(context.Background(), Request{Command: "chan"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, KindFailed, resp.Error.Kind)
}

func TestDispatchDeliversThroughScheduler(t *testing.T) {
	registry := commands.NewRegistry().MustDeclare(pingCommand())
	scheduled := make(chan func(), 1)
	b := New(registry, logger.NoOp{}, func(fn func()) { scheduled <- fn })

	got := make(chan Response, 1)
	require.NoError(t, b.Dispatch(context.Background(), Request{ID: "abc", Command: "ping"}, func(r Response) {
		got <- r
	}))

	select {
	case fn := <-scheduled:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("response was not scheduled")
	}

	resp := <-got
	assert.True(t, resp.OK)
	assert.Equal(t, "abc", resp.ID)
}

func TestShutdownWaitsAndRejects(t *testing.T) {
	release := make(chan struct{})
	b := newBridge(t, commands.Descriptor{
		Name: "slow",
		Handler: func(context.Context, json.RawMessage) (any, error) {
			<-release
			return nil, nil
		},
	})

	delivered := make(chan struct{})
	require.NoError(t, b.Dispatch(context.Background(), Request{Command: "slow"}, func(Response) {
		close(delivered)
	}))

	stopped := make(chan struct{})
	go func() {
		b.Shutdown()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("shutdown returned with a call in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-stopped
	<-delivered

	err := b.Dispatch(context.Background(), Request{Command: "slow"}, func(Response) {})
	assert.ErrorIs(t, err, ErrClosed)
}
