package navigator

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	qerrors "github.com/vango-dev/querystate/internal/errors"
	"github.com/vango-dev/querystate/pkg/querycodec"
	"github.com/vango-dev/querystate/pkg/querysync"
)

const (
	defaultWriteTimeout   = 10 * time.Second
	defaultMaxMessageSize = 64 * 1024
)

// Handler serves query state over WebSocket, one provider per connection.
type Handler struct {
	mapping        *querycodec.Mapping
	upgrader       websocket.Upgrader
	providerOpts   []querysync.Option
	logger         *slog.Logger
	writeTimeout   time.Duration
	maxMessageSize int64
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithProviderOptions passes options to every per-connection provider.
func WithProviderOptions(opts ...querysync.Option) HandlerOption {
	return func(h *Handler) {
		h.providerOpts = append(h.providerOpts, opts...)
	}
}

// WithLogger sets the structured logger. If unset, slog.Default() is used.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithCheckOrigin sets the upgrade origin check.
func WithCheckOrigin(fn func(*http.Request) bool) HandlerOption {
	return func(h *Handler) {
		h.upgrader.CheckOrigin = fn
	}
}

// WithWriteTimeout bounds every frame write.
func WithWriteTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) {
		h.writeTimeout = d
	}
}

// NewHandler creates a handler binding m for every connection.
func NewHandler(m *querycodec.Mapping, opts ...HandlerOption) *Handler {
	h := &Handler{
		mapping:        m,
		writeTimeout:   defaultWriteTimeout,
		maxMessageSize: defaultMaxMessageSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	return h
}

// ServeHTTP upgrades the request and runs the connection until the client
// disconnects.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(h.maxMessageSize)

	logger := h.logger.With("remote", r.RemoteAddr)
	c := &connection{conn: conn, writeTimeout: h.writeTimeout}
	nav := New(nil, c.send, logger)
	p := querysync.NewProvider(nav, append([]querysync.Option{querysync.WithLogger(logger)}, h.providerOpts...)...)
	defer p.Close()
	b := p.Bind(h.mapping)

	logger.Debug("navigator session started")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("navigator read failed", "error", err)
			}
			return
		}

		if err := h.handle(nav, b, data); err != nil {
			if sendErr := c.send(errorMessage(err)); sendErr != nil {
				return
			}
			continue
		}

		if err := c.send(valuesMessage(b)); err != nil {
			logger.Warn("navigator write failed", "error", err)
			return
		}
	}
}

// handle applies one client message.
func (h *Handler) handle(nav *Navigator, b *querysync.Binding, data []byte) error {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return qerrors.New("Q201").Wrap(err)
	}

	switch msg.Type {
	case TypeLocation:
		u, err := url.Parse(msg.URL)
		if err != nil {
			return qerrors.New("Q201").Wrap(err)
		}
		nav.SetURL(u)

	case TypeUpdate:
		var opts []querysync.UpdateOption
		if msg.Immediate {
			opts = append(opts, querysync.Immediate())
		}
		b.Update(querysync.Update(msg.Values), opts...)

	case TypeReset:
		b.Reset()

	default:
		return qerrors.New("Q201").WithDetail("unknown message type " + string(msg.Type))
	}
	return nil
}

func valuesMessage(b *querysync.Binding) Message {
	values, err := b.Values()
	if err != nil {
		return errorMessage(err)
	}
	return Message{Type: TypeValues, Values: values}
}

func errorMessage(err error) Message {
	body := &ErrorBody{Code: "unknown", Message: err.Error()}
	var qe *qerrors.QueryError
	if errors.As(err, &qe) {
		body.Code = qe.Code
		body.Message = qe.FormatCompact()
		body.Field = qe.Field
	}
	return Message{Type: TypeError, Error: body}
}

// connection serializes writes; gorilla/websocket allows one writer at a
// time and the flush timer writes from its own goroutine.
type connection struct {
	mu           sync.Mutex
	conn         *websocket.Conn
	writeTimeout time.Duration
}

func (c *connection) send(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeTimeout > 0 {
		c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}
