package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/vec"
	"golang.org/x/sync/errgroup"
)

const inputBuffer = 64

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server feeds one world to websocket clients.
type Server[V vec.Vector[V]] struct {
	world  *sim.World[V]
	hub    *Hub
	logger *log.Logger
	rate   float64
	inputs chan InputMsg
	done   chan struct{}

	held InputMsg
}

// NewServer builds a server that advances w rate times per second. w must
// not be used by anything else once Run starts.
func NewServer[V vec.Vector[V]](w *sim.World[V], rate float64, logger *log.Logger) *Server[V] {
	if rate <= 0 {
		rate = 60
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server[V]{
		world:  w,
		hub:    NewHub(),
		logger: logger,
		rate:   rate,
		inputs: make(chan InputMsg, inputBuffer),
		done:   make(chan struct{}),
	}
}

func (s *Server[V]) Hub() *Hub { return s.hub }

// Handler serves the websocket at /ws and a plain status line at /.
func (s *Server[V]) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ballsim: %d clients, connect to /ws\n", s.hub.Len())
	})
	return mux
}

func (s *Server[V]) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", "err", err)
		return
	}
	s.hub.Add(conn)
	defer func() {
		s.hub.Remove(conn)
		conn.Close()
	}()
	s.logger.Info("client connected", "remote", r.RemoteAddr, "clients", s.hub.Len())

	p := s.world.Params()
	hello := HelloMsg{
		Type:       TypeHello,
		Dimensions: p.Extent.Dim(),
		Extent:     vec.Slice(p.Extent),
		Radius:     p.BodyRadius,
		Rate:       s.rate,
	}
	if err := s.hub.Send(conn, hello); err != nil {
		s.logger.Warn("send hello", "err", err)
		return
	}

	for {
		var msg InputMsg
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket read", "err", err)
			}
			s.logger.Info("client disconnected", "remote", r.RemoteAddr)
			return
		}
		select {
		case s.inputs <- msg:
		case <-s.done:
			return
		}
	}
}

// Run advances the world at the configured rate and broadcasts every frame
// until ctx is done. It may be called once.
func (s *Server[V]) Run(ctx context.Context) error {
	defer close(s.done)
	every := time.Duration(float64(time.Second) / s.rate)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if err := s.step(dt); err != nil {
				return err
			}
		}
	}
}

// step drains pending input, runs one frame and broadcasts it.
func (s *Server[V]) step(dt float64) error {
	in := s.drain()
	in.Dt = dt
	snap := s.world.Frame(in)

	data, err := json.Marshal(NewFrameMsg(snap))
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	msg, err := websocket.NewPreparedMessage(websocket.TextMessage, data)
	if err != nil {
		return fmt.Errorf("prepare frame: %w", err)
	}
	if dropped := s.hub.Broadcast(msg); dropped > 0 {
		s.logger.Warn("dropped clients", "count", dropped)
	}
	if snap.Frame%600 == 0 {
		s.logger.Debug("frame", "n", snap.Frame, "fps", snap.FPS, "steps", snap.SimSteps, "bodies", snap.Stats.Bodies)
	}
	return nil
}

func (s *Server[V]) drain() sim.Input[V] {
	merged := s.held
	merged.ToggleGravity, merged.CycleDisplay = false, false
	merged.StepUp, merged.StepDown, merged.Delete = false, false, false
	merged.AutoSteps = nil
	for drained := false; !drained; {
		select {
		case msg := <-s.inputs:
			merged = merged.merge(msg)
		default:
			drained = true
		}
	}
	s.held = merged

	if merged.AutoSteps != nil {
		s.world.SetAutoSteps(*merged.AutoSteps)
	}
	in := sim.Input[V]{
		Pointer:       s.world.Params().Extent.Mul(0.5),
		Attract:       merged.Attract,
		Spawn:         merged.Spawn,
		ToggleGravity: merged.ToggleGravity,
		CycleDisplay:  merged.CycleDisplay,
		StepUp:        merged.StepUp,
		StepDown:      merged.StepDown,
		Delete:        merged.Delete,
	}
	var zero V
	if len(merged.Pointer) == zero.Dim() {
		in.Pointer = vec.FromSlice[V](merged.Pointer)
	}
	return in
}

// ListenAndServe serves on addr and runs the world until ctx is done.
func (s *Server[V]) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Run(ctx) })
	g.Go(func() error {
		s.logger.Info("serving", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.hub.CloseAll()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	})
	return g.Wait()
}
