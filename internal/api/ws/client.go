package ws

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
	"github.com/GriffinCanCode/skydesk/internal/domain/pointer"
	"github.com/GriffinCanCode/skydesk/internal/domain/surface"
	"github.com/GriffinCanCode/skydesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/skydesk/internal/shared/utils"
)

const writeWait = 10 * time.Second

// client is one renderer connection
type client struct {
	id      string
	hub     *Hub
	conn    *websocket.Conn
	bus     *pointer.Bus
	tracker *pointer.Tracker
	logger  *zap.Logger

	out     chan ServerMessage
	dirty   chan struct{} // coalesces scene pushes
	done    chan struct{} // reader finished
	stopped chan struct{} // writer finished

	mu       sync.Mutex
	viewport surface.Viewport // Protected by mu

	listeners atomic.Int64
}

// run serves the connection until the renderer goes away. Everything the
// connection holds is released on the way out.
func (cl *client) run() {
	defer cl.conn.Close()

	if err := cl.write(ServerMessage{Type: TypeHello, ConnID: cl.id, Timestamp: time.Now().Unix()}); err != nil {
		cl.tracker.Close()
		return
	}

	unsubscribe := cl.hub.store.Subscribe(cl.onState)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		cl.writePump()
	}()
	cl.markDirty()

	cl.readPump()

	unsubscribe()
	cl.tracker.Close()
	close(cl.done)
	wg.Wait()
}

func (cl *client) readPump() {
	cl.conn.SetReadLimit(cl.hub.maxMessageSize)
	cl.conn.SetReadDeadline(time.Now().Add(cl.hub.pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(cl.hub.pongWait))
	})

	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				cl.logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}

		var msg ClientMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			cl.sendError(fmt.Errorf("invalid message: %w", err))
			continue
		}
		cl.record("in", msg.Type)

		if err := cl.handle(msg); err != nil {
			cl.sendError(err)
		}
	}
}

func (cl *client) handle(msg ClientMessage) error {
	switch msg.Type {
	case TypeIntent:
		if msg.Intent == nil {
			return ErrMissingBody
		}
		return cl.handleIntent(*msg.Intent)
	case TypePointer:
		if msg.Pointer == nil {
			return ErrMissingBody
		}
		return cl.handlePointer(*msg.Pointer)
	case TypeViewport:
		if msg.Viewport == nil {
			return ErrMissingBody
		}
		if !msg.Viewport.Valid() {
			return errors.New("viewport must leave room above the taskbar")
		}
		cl.mu.Lock()
		cl.viewport = *msg.Viewport
		cl.mu.Unlock()
		cl.markDirty()
		return nil
	case TypePing:
		cl.enqueue(ServerMessage{Type: TypePong})
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownType, msg.Type)
}

func (cl *client) handleIntent(m IntentMessage) error {
	switch m.Kind {
	case desktop.KindOpen:
		if err := utils.ValidateID(m.AppID, "app_id", true); err != nil {
			return err
		}
		if m.Overrides != nil {
			if err := utils.ValidateProps(m.Overrides.Props); err != nil {
				return err
			}
		}
		_, err := cl.hub.launcher.Launch(m.AppID, m.Overrides)
		return err
	case KindActivate:
		cl.hub.taskbar.Activate(m.WindowID)
		return nil
	case desktop.KindNotify:
		m.Message = cl.hub.sanitizer.Sanitize(m.Message)
		if err := utils.ValidateMessage(m.Message); err != nil {
			return err
		}
	}

	in, err := m.ToIntent()
	if errors.Is(err, ErrUnknownKind) {
		cl.logger.Debug("Ignoring intent", zap.String("kind", string(m.Kind)))
		return nil
	}
	if err != nil {
		return err
	}
	cl.hub.store.Dispatch(in)
	return nil
}

func (cl *client) handlePointer(m PointerMessage) error {
	switch m.Action {
	case ActionDown:
		if cl.tracker.Down(m.WindowID, m.Region, m.Point()) && cl.hub.metrics != nil {
			cl.hub.metrics.RecordInteraction(string(m.Region))
		}
	case ActionMove:
		cl.tracker.Move(m.Point())
	case ActionUp:
		cl.tracker.Up(m.Point())
	case ActionCancel:
		cl.tracker.Cancel()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, m.Action)
	}
	return nil
}

// onState runs on the dispatching goroutine; it only flags the connection
// and forgets controllers of closed windows
func (cl *client) onState(desktop.State) {
	s := cl.hub.store.Snapshot()
	cl.tracker.Prune(func(windowID string) bool {
		_, ok := s.Windows[windowID]
		return ok
	})
	cl.markDirty()
}

func (cl *client) markDirty() {
	select {
	case cl.dirty <- struct{}{}:
	default:
	}
}

func (cl *client) enqueue(msg ServerMessage) {
	msg.Timestamp = time.Now().Unix()
	select {
	case cl.out <- msg:
	case <-cl.done:
	case <-cl.stopped:
	}
}

func (cl *client) sendError(err error) {
	cl.enqueue(ServerMessage{Type: TypeError, Error: err.Error()})
}

// writePump is the only goroutine writing data frames
func (cl *client) writePump() {
	defer close(cl.stopped)

	ticker := time.NewTicker(cl.hub.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-cl.done:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			cl.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case msg := <-cl.out:
			if err := cl.write(msg); err != nil {
				cl.fail(err)
				return
			}
		case <-cl.dirty:
			if err := cl.write(cl.scene()); err != nil {
				cl.fail(err)
				return
			}
		case <-ticker.C:
			if err := cl.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				cl.fail(err)
				return
			}
		}
	}
}

// scene composes the latest state, not the one that triggered the push,
// so coalesced updates never go backwards
func (cl *client) scene() ServerMessage {
	cl.mu.Lock()
	vp := cl.viewport
	cl.mu.Unlock()

	timer := monitoring.NewTimer(cl.hub.metrics, "compose")
	scene := cl.hub.compositor.Compose(cl.hub.store.Snapshot(), vp)
	timer.Stop()

	return ServerMessage{Type: TypeScene, Scene: &scene, Timestamp: time.Now().Unix()}
}

func (cl *client) write(msg ServerMessage) error {
	timer := monitoring.NewTimer(cl.hub.metrics, "encode")
	data, err := sonic.Marshal(msg)
	timer.Stop()
	if err != nil {
		return fmt.Errorf("encode %s: %w", msg.Type, err)
	}

	cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	cl.record("out", msg.Type)
	return nil
}

// fail unblocks the reader after a write error
func (cl *client) fail(err error) {
	cl.logger.Debug("WebSocket write failed", zap.Error(err))
	cl.conn.Close()
}

func (cl *client) record(direction, msgType string) {
	if cl.hub.metrics != nil {
		cl.hub.metrics.RecordWSMessage(direction, msgType)
	}
}

// trackListeners re-reads the bus count so racing notifications still
// settle on the true value
func (cl *client) trackListeners(int) {
	now := cl.bus.Listeners()
	prev := cl.listeners.Swap(int64(now))
	cl.hub.metrics.AddPointerListeners(now - int(prev))
}
