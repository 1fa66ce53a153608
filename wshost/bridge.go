package wshost

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"pkt.systems/pslog"
	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/internal/logx"
	"pkt.systems/scriptdialogue/schema"
)

const (
	helloTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// ErrNotConnected indicates a form was shown to a player that is not a bridge connection.
var ErrNotConnected = errors.New("player is not connected through the bridge")

// Config configures a Bridge.
type Config struct {
	Path           string
	CommandTimeout time.Duration
	FormTimeout    time.Duration
	// AllowedOrigins lists accepted Origin headers. Empty means same origin
	// only; "*" accepts any origin.
	AllowedOrigins []string
}

// ConnectFunc runs for every client after its hello. The context ends when
// the connection closes.
type ConnectFunc func(ctx context.Context, conn *Conn)

// Bridge is a host.Forms backed by websocket clients.
type Bridge struct {
	cfg       Config
	upgrader  websocket.Upgrader
	onConnect ConnectFunc

	mu    sync.Mutex
	conns map[string]*Conn
}

// New constructs a Bridge.
func New(cfg Config, onConnect ConnectFunc) *Bridge {
	if cfg.Path == "" {
		cfg.Path = "/dialogue"
	}
	b := &Bridge{cfg: cfg, onConnect: onConnect, conns: make(map[string]*Conn)}
	b.upgrader = websocket.Upgrader{CheckOrigin: b.checkOrigin}
	return b
}

// Handler returns an http.Handler serving the websocket endpoint.
func (b *Bridge) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(b.cfg.Path, b.serveWS)
	return mux
}

// Players returns the names of connected players.
func (b *Bridge) Players() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.conns))
	for name := range b.conns {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Player returns the connection for name.
func (b *Bridge) Player(name string) (*Conn, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.conns[name]
	return c, ok
}

// ShowMessageForm implements host.Forms.
func (b *Bridge) ShowMessageForm(ctx context.Context, player host.Player, form host.MessageForm) (host.Response, error) {
	return b.show(ctx, player, FormRequest{Form: host.FormMessage, Message: &form})
}

// ShowActionForm implements host.Forms.
func (b *Bridge) ShowActionForm(ctx context.Context, player host.Player, form host.ActionForm) (host.Response, error) {
	return b.show(ctx, player, FormRequest{Form: host.FormAction, Action: &form})
}

// ShowModalForm implements host.Forms.
func (b *Bridge) ShowModalForm(ctx context.Context, player host.Player, form host.ModalForm) (host.Response, error) {
	return b.show(ctx, player, FormRequest{Form: host.FormModal, Modal: &form})
}

func (b *Bridge) show(ctx context.Context, player host.Player, form FormRequest) (host.Response, error) {
	conn, ok := player.(*Conn)
	if !ok {
		return host.Response{}, ErrNotConnected
	}
	if !conn.IsValid() {
		return host.Response{}, &host.RejectError{Reason: schema.RejectUserQuit, Err: ErrConnClosed}
	}
	return conn.showForm(ctx, form)
}

func (b *Bridge) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if len(b.cfg.AllowedOrigins) == 0 {
		return strings.EqualFold(strings.TrimPrefix(strings.TrimPrefix(origin, "http://"), "https://"), r.Host)
	}
	for _, allowed := range b.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

func (b *Bridge) serveWS(w http.ResponseWriter, r *http.Request) {
	log := pslog.Ctx(r.Context())
	ws, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug("wshost upgrade failed", "err", err, "remote", r.RemoteAddr)
		return
	}
	name, err := readHello(ws)
	if err != nil {
		log.Debug("wshost hello failed", "err", err, "remote", r.RemoteAddr)
		refuse(ws, err.Error())
		return
	}

	playerLog := logx.WithPlayer(r.Context(), name)
	ctx, cancel := context.WithCancel(logx.ContextWithPlayerLogger(r.Context(), playerLog, name))
	defer cancel()
	conn := newConn(ws, name, b.cfg, playerLog)
	if !b.register(conn) {
		log.Warn("wshost duplicate player", "player", name)
		refuse(ws, "player already connected")
		return
	}
	defer b.unregister(conn)
	conn.log.Info("wshost player connected", "remote", r.RemoteAddr)

	go conn.readLoop()
	flowDone := make(chan struct{})
	go func() {
		defer close(flowDone)
		if b.onConnect != nil {
			b.onConnect(ctx, conn)
		}
	}()
	select {
	case <-conn.Done():
	case <-r.Context().Done():
		_ = conn.Close()
	}
	cancel()
	<-flowDone
	conn.log.Info("wshost player disconnected")
}

func readHello(ws *websocket.Conn) (string, error) {
	if err := ws.SetReadDeadline(time.Now().Add(helloTimeout)); err != nil {
		return "", err
	}
	var frame Frame
	if err := ws.ReadJSON(&frame); err != nil {
		return "", err
	}
	if frame.Type != FrameHello {
		return "", errors.New("expected hello frame")
	}
	var hello Hello
	if err := json.Unmarshal(frame.Payload, &hello); err != nil {
		return "", err
	}
	hello.Player = strings.TrimSpace(hello.Player)
	if hello.Player == "" {
		return "", errors.New("hello frame without player")
	}
	if err := ws.SetReadDeadline(time.Time{}); err != nil {
		return "", err
	}
	return hello.Player, nil
}

func refuse(ws *websocket.Conn, message string) {
	if frame, err := newFrame(FrameError, "", ErrorPayload{Message: message}); err == nil {
		_ = ws.WriteJSON(frame)
	}
	_ = ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, message),
		time.Now().Add(time.Second))
	_ = ws.Close()
}

func (b *Bridge) register(conn *Conn) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.conns[conn.name]; exists {
		return false
	}
	b.conns[conn.name] = conn
	return true
}

func (b *Bridge) unregister(conn *Conn) {
	b.mu.Lock()
	if b.conns[conn.name] == conn {
		delete(b.conns, conn.name)
	}
	b.mu.Unlock()
	_ = conn.Close()
}

// ListenAndServe starts an HTTP server and shuts it down on context cancellation.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	logger := pslog.Ctx(ctx)
	server := &http.Server{
		Addr:     addr,
		Handler:  handler,
		ErrorLog: pslog.LogLoggerWithLevel(logger, pslog.ErrorLevel),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
