package wshost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"pkt.systems/pslog"
	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/schema"
)

// ErrConnClosed indicates the client connection is gone.
var ErrConnClosed = errors.New("websocket connection closed")

// ErrFormTimeout indicates the client did not answer a form in time.
var ErrFormTimeout = errors.New("form answer timed out")

// Conn is one connected client. It implements host.Player; the player is
// valid until the socket closes.
type Conn struct {
	ws             *websocket.Conn
	name           string
	log            pslog.Logger
	commandTimeout time.Duration
	formTimeout    time.Duration

	writeMu sync.Mutex
	mu      sync.Mutex
	pending map[string]chan Frame
	seq     atomic.Uint64

	closed    chan struct{}
	closeOnce sync.Once
}

func newConn(ws *websocket.Conn, name string, cfg Config, log pslog.Logger) *Conn {
	return &Conn{
		ws:             ws,
		name:           name,
		log:            log,
		commandTimeout: cfg.CommandTimeout,
		formTimeout:    cfg.FormTimeout,
		pending:        make(map[string]chan Frame),
		closed:         make(chan struct{}),
	}
}

// Name implements host.Player.
func (c *Conn) Name() string { return c.name }

// IsValid implements host.Player.
func (c *Conn) IsValid() bool {
	select {
	case <-c.closed:
		return false
	default:
		return true
	}
}

// Done is closed when the connection ends.
func (c *Conn) Done() <-chan struct{} { return c.closed }

// Close ends the connection and fails every pending request.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.ws.Close()
		c.log.Debug("wshost connection closed")
	})
	return err
}

// RunCommand implements host.Player. It waits CommandTimeout for the client
// to report the command result.
func (c *Conn) RunCommand(command string) (host.CommandResult, error) {
	ctx := context.Background()
	if c.commandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.commandTimeout)
		defer cancel()
	}
	reply, err := c.request(ctx, FrameCommand, "c", CommandRequest{Command: command})
	if err != nil {
		return host.CommandResult{}, err
	}
	if reply.Type != FrameCommandResult {
		return host.CommandResult{}, fmt.Errorf("unexpected %s reply to command", reply.Type)
	}
	var result CommandResult
	if err := json.Unmarshal(reply.Payload, &result); err != nil {
		return host.CommandResult{}, fmt.Errorf("decode command result: %w", err)
	}
	if result.Error != "" {
		return host.CommandResult{SuccessCount: result.SuccessCount}, errors.New(result.Error)
	}
	return host.CommandResult{SuccessCount: result.SuccessCount}, nil
}

func (c *Conn) showForm(ctx context.Context, form FormRequest) (host.Response, error) {
	if c.formTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.formTimeout)
		defer cancel()
	}
	reply, err := c.request(ctx, FrameForm, "f", form)
	switch {
	case errors.Is(err, ErrConnClosed):
		return host.Response{}, &host.RejectError{Reason: schema.RejectUserQuit, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return host.Response{}, ErrFormTimeout
	case err != nil:
		return host.Response{}, err
	}
	switch reply.Type {
	case FrameFormResponse:
		var resp host.Response
		if err := json.Unmarshal(reply.Payload, &resp); err != nil {
			return host.Response{}, &host.RejectError{Reason: schema.RejectMalformedResponse, Err: err}
		}
		if resp.Canceled {
			resp.CancelReason = schema.ParseCancelReason(string(resp.CancelReason))
		}
		return resp, nil
	case FrameFormRejected:
		var rejection FormRejection
		if err := json.Unmarshal(reply.Payload, &rejection); err != nil {
			return host.Response{}, &host.RejectError{Reason: schema.RejectMalformedResponse, Err: err}
		}
		return host.Response{}, host.NewRejectError(schema.ParseRejectReason(rejection.Reason), rejection.Message)
	default:
		return host.Response{}, host.NewRejectError(schema.RejectMalformedResponse,
			fmt.Sprintf("unexpected %s reply to form", reply.Type))
	}
}

func (c *Conn) request(ctx context.Context, frameType FrameType, prefix string, payload any) (Frame, error) {
	id := prefix + strconv.FormatUint(c.seq.Add(1), 10)
	frame, err := newFrame(frameType, id, payload)
	if err != nil {
		return Frame{}, err
	}
	reply := make(chan Frame, 1)
	c.mu.Lock()
	c.pending[id] = reply
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	if !c.IsValid() {
		return Frame{}, ErrConnClosed
	}
	if err := c.write(frame); err != nil {
		c.Close()
		return Frame{}, fmt.Errorf("%w: %v", ErrConnClosed, err)
	}
	select {
	case r := <-reply:
		return r, nil
	case <-c.closed:
		return Frame{}, ErrConnClosed
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	}
}

func (c *Conn) write(frame Frame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteJSON(frame)
}

// readLoop routes replies to their pending requests until the socket fails.
func (c *Conn) readLoop() {
	defer c.Close()
	for {
		var frame Frame
		if err := c.ws.ReadJSON(&frame); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Debug("wshost read failed", "err", err)
			}
			return
		}
		c.mu.Lock()
		reply, ok := c.pending[frame.ID]
		c.mu.Unlock()
		if !ok {
			c.log.Trace("wshost unmatched frame", "type", frame.Type, "id", frame.ID)
			continue
		}
		select {
		case reply <- frame:
		default:
		}
	}
}
