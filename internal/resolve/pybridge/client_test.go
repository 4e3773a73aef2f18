package pybridge

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wireRequest struct {
	ID     int64           `json:"id"`
	Handle int64           `json:"handle"`
	Method string          `json:"method"`
	Args   json.RawMessage `json:"args"`
}

// fakeHelper stands in for helper.py on the other end of a pipe pair.
type fakeHelper struct {
	out *io.PipeWriter

	mu       sync.Mutex
	requests []wireRequest
}

func (f *fakeHelper) send(line string) {
	_, _ = io.WriteString(f.out, line+"\n")
}

func (f *fakeHelper) seen() []wireRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]wireRequest(nil), f.requests...)
}

func reply(id int64, result string) string {
	return fmt.Sprintf(`{"id":%d,"result":%s}`, id, result)
}

// startHelper wires a Client to a fake helper. respond returns the lines to
// write back for each request.
func startHelper(t *testing.T, respond func(req wireRequest) []string) (*Client, *fakeHelper) {
	t.Helper()
	clientIn, helperOut := io.Pipe()
	helperIn, clientOut := io.Pipe()
	fake := &fakeHelper{out: helperOut}
	client := NewClient(clientIn, clientOut, zerolog.Nop())

	go func() {
		scanner := bufio.NewScanner(helperIn)
		for scanner.Scan() {
			var req wireRequest
			if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
				continue
			}
			fake.mu.Lock()
			fake.requests = append(fake.requests, req)
			fake.mu.Unlock()
			for _, line := range respond(req) {
				fake.send(line)
			}
		}
	}()
	t.Cleanup(func() {
		_ = clientOut.Close()
		_ = helperOut.Close()
	})
	return client, fake
}

func methodTable(results map[string]string) func(req wireRequest) []string {
	return func(req wireRequest) []string {
		result, found := results[req.Method]
		if !found {
			return []string{fmt.Sprintf(`{"id":%d,"error":"AttributeError: %s"}`, req.ID, req.Method)}
		}
		return []string{reply(req.ID, result)}
	}
}

func TestAwaitReady(t *testing.T) {
	t.Run("ready after noise", func(t *testing.T) {
		client, fake := startHelper(t, methodTable(nil))
		go func() {
			fake.send(`{"log":"loading"}`)
			fake.send(`{"ready":true}`)
		}()
		require.NoError(t, client.AwaitReady(context.Background()))
	})

	t.Run("not ready", func(t *testing.T) {
		client, fake := startHelper(t, methodTable(nil))
		go fake.send(`{"ready":false,"error":"DaVinci Resolve is not running"}`)
		err := client.AwaitReady(context.Background())
		require.Error(t, err)
		assert.Equal(t, "DaVinci Resolve is not running", err.Error())
	})

	t.Run("helper exits", func(t *testing.T) {
		client, fake := startHelper(t, methodTable(nil))
		require.NoError(t, fake.out.Close())
		err := client.AwaitReady(context.Background())
		assert.ErrorIs(t, err, ErrClosed)
	})
}

func TestCallRoundTrip(t *testing.T) {
	client, fake := startHelper(t, methodTable(map[string]string{
		"GetProductName": `"DaVinci Resolve"`,
		"OpenPage":       `true`,
	}))
	ctx := context.Background()

	v, err := client.Call(ctx, 0, "GetProductName")
	require.NoError(t, err)
	assert.Equal(t, "DaVinci Resolve", v.String())

	v, err = client.Call(ctx, 0, "OpenPage", "color")
	require.NoError(t, err)
	assert.True(t, v.Bool())

	reqs := fake.seen()
	require.Len(t, reqs, 2)
	assert.Equal(t, int64(1), reqs[0].ID)
	assert.JSONEq(t, `[]`, string(reqs[0].Args))
	assert.Equal(t, int64(2), reqs[1].ID)
	assert.Equal(t, "OpenPage", reqs[1].Method)
	assert.JSONEq(t, `["color"]`, string(reqs[1].Args))
}

func TestCallRemoteError(t *testing.T) {
	client, _ := startHelper(t, methodTable(nil))

	_, err := client.Call(context.Background(), 4, "GetName")
	var remote *RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, "GetName", remote.Method)
	assert.Equal(t, "AttributeError: GetName", remote.Message)
}

func TestCallDiscardsStaleReplies(t *testing.T) {
	client, _ := startHelper(t, func(req wireRequest) []string {
		return []string{
			reply(req.ID-1, `"late"`),
			"",
			reply(req.ID, `"fresh"`),
		}
	})

	v, err := client.Call(context.Background(), 0, "GetCurrentPage")
	require.NoError(t, err)
	assert.Equal(t, "fresh", v.String())
}

func TestCallHonoursContext(t *testing.T) {
	client, _ := startHelper(t, func(wireRequest) []string { return nil })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.Call(ctx, 0, "StartRendering")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCallAfterHelperExit(t *testing.T) {
	client, fake := startHelper(t, methodTable(nil))
	require.NoError(t, fake.out.Close())

	_, err := client.Call(context.Background(), 0, "GetProductName")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestDrainDiscardsUnreadOutput(t *testing.T) {
	client, fake := startHelper(t, methodTable(nil))
	go func() {
		fake.send(`{"log":"one"}`)
		fake.send(`{"log":"two"}`)
		_ = fake.out.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, client.drain(ctx))

	_, open := <-client.lines
	assert.False(t, open)
}

func TestDrainStopsAtDeadline(t *testing.T) {
	client, _ := startHelper(t, methodTable(nil))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, client.drain(ctx), context.DeadlineExceeded)
}
