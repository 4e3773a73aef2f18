// Package pybridge drives the Resolve scripting module through a small
// Python helper process. The module only loads into a Python interpreter,
// so the helper imports it, holds the live objects in a handle table and
// answers line-delimited JSON requests on stdio.
//
// Wire format, one JSON document per line:
//
//	helper -> {"ready":true} | {"ready":false,"error":"..."}
//	client -> {"id":N,"handle":H,"method":"Name","args":[...]}
//	helper -> {"id":N,"result":V} | {"id":N,"error":"..."}
//
// Handle 0 is the application. Objects that are not plain JSON travel as
// {"$handle":H} in both directions.
package pybridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// ErrClosed is returned once the helper's output has ended.
var ErrClosed = errors.New("pybridge: helper closed")

// RemoteError is an exception raised inside the helper.
type RemoteError struct {
	Method  string
	Message string
}

func (e *RemoteError) Error() string {
	return e.Method + ": " + e.Message
}

type request struct {
	ID     int64  `json:"id"`
	Handle int64  `json:"handle"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

type line struct {
	data []byte
	err  error
}

// Client talks to one helper over a reader/writer pair. One request is in
// flight at a time.
type Client struct {
	writer io.WriteCloser
	lines  chan line
	logger zerolog.Logger

	mu     sync.Mutex
	nextID int64
}

// NewClient starts reading helper output from r. Requests are written to w.
func NewClient(r io.Reader, w io.WriteCloser, logger zerolog.Logger) *Client {
	c := &Client{
		writer: w,
		lines:  make(chan line),
		logger: logger,
	}
	go c.readLoop(bufio.NewReader(r))
	return c
}

func (c *Client) readLoop(reader *bufio.Reader) {
	defer close(c.lines)
	for {
		data, err := readStdioLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.lines <- line{err: err}
			}
			return
		}
		c.lines <- line{data: data}
	}
}

func (c *Client) next(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case l, open := <-c.lines:
		if !open {
			return nil, ErrClosed
		}
		if l.err != nil {
			return nil, l.err
		}
		return l.data, nil
	}
}

// AwaitReady reads the helper's startup line.
func (c *Client) AwaitReady(ctx context.Context) error {
	for {
		data, err := c.next(ctx)
		if err != nil {
			return fmt.Errorf("await helper ready: %w", err)
		}
		ready := gjson.GetBytes(data, "ready")
		if !ready.Exists() {
			c.logger.Debug().Bytes("line", data).Msg("ignoring helper output before ready")
			continue
		}
		if ready.Bool() {
			return nil
		}
		msg := gjson.GetBytes(data, "error").String()
		if msg == "" {
			msg = "helper not ready"
		}
		return errors.New(msg)
	}
}

// Call invokes method on the object behind handle and returns the raw
// result.
func (c *Client) Call(ctx context.Context, handle int64, method string, args ...any) (gjson.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	if args == nil {
		args = []any{}
	}
	if err := c.write(request{ID: id, Handle: handle, Method: method, Args: args}); err != nil {
		return gjson.Result{}, err
	}

	for {
		data, err := c.next(ctx)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("%s: %w", method, err)
		}
		if gjson.GetBytes(data, "id").Int() != id {
			// Late answer to a request that already timed out.
			c.logger.Debug().Bytes("line", data).Msg("discarding stale helper reply")
			continue
		}
		if e := gjson.GetBytes(data, "error"); e.Exists() && e.Type != gjson.Null {
			return gjson.Result{}, &RemoteError{Method: method, Message: e.String()}
		}
		return gjson.GetBytes(data, "result"), nil
	}
}

func (c *Client) write(req request) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	data = append(data, '\n')
	if _, err := c.writer.Write(data); err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	return nil
}

// closeInput closes the request stream; the helper exits on EOF.
func (c *Client) closeInput() error {
	return c.writer.Close()
}

// drain discards helper output until the read loop has reached its end.
func (c *Client) drain(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, open := <-c.lines:
			if !open {
				return nil
			}
		}
	}
}

func readStdioLine(reader *bufio.Reader) ([]byte, error) {
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && len(bytes.TrimSpace(line)) > 0 {
				return bytes.TrimSpace(line), nil
			}
			if errors.Is(err, io.EOF) {
				return nil, err
			}
			return nil, fmt.Errorf("read line: %w", err)
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		return line, nil
	}
}
