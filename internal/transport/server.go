package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"spatialreq/internal/domain"
	"spatialreq/internal/geometry"
	"spatialreq/internal/planner"
	"spatialreq/internal/request"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins; deployments that need origin checking should
		// front this handler with a reverse proxy that enforces it.
		return true
	},
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithTokenVerifier attaches bearer-token verification to init messages.
// Passing a verifier built from an empty secret disables auth.
func WithTokenVerifier(v *TokenVerifier) ServerOption {
	return func(s *Server) { s.verifier = v }
}

// WithAuditLog attaches an AuditLog that records every emitted command.
func WithAuditLog(a *AuditLog) ServerOption {
	return func(s *Server) { s.audit = a }
}

// WithPhraser overrides the default deterministic request phraser used for
// planners constructed by this server.
func WithPhraser(p request.Phraser) ServerOption {
	return func(s *Server) { s.phraser = p }
}

// WithInvertY flips the sign of every incoming point's Y coordinate before
// it reaches the planner core, for clients whose coordinate system has Y
// growing downward (e.g. screen/image pixel coordinates).
func WithInvertY(invert bool) ServerOption {
	return func(s *Server) { s.invertY = invert }
}

// Server serves the spec.md §6 request/response protocol over a
// websocket: one connection holds exactly one Planner instance and
// processes messages synchronously in arrival order, matching spec.md
// §5's single-writer planner contract.
type Server struct {
	log      zerolog.Logger
	verifier *TokenVerifier
	audit    *AuditLog
	phraser  request.Phraser
	invertY  bool
}

// NewServer builds a Server. Pass zerolog.Nop() to disable logging.
func NewServer(log zerolog.Logger, opts ...ServerOption) *Server {
	s := &Server{
		log:      log,
		verifier: NewTokenVerifier(""),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ServeHTTP upgrades the connection and runs its session loop until the
// client disconnects or sends a malformed message.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sess := &session{server: s, conn: conn, log: s.log}
	sess.run()
}

// session holds the per-connection Planner and its conversion settings.
type session struct {
	server *Server
	conn   *websocket.Conn
	log    zerolog.Logger
	pl     *planner.Planner
}

func (sess *session) run() {
	for {
		_, raw, err := sess.conn.ReadMessage()
		if err != nil {
			return
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			sess.writeError("malformed message envelope: " + err.Error())
			continue
		}

		switch env.Action {
		case "init":
			sess.handleInit(raw)
		case "observation":
			sess.handleObservation(raw)
		case "plan_request":
			sess.handlePlanRequest()
		default:
			sess.writeError("unknown action: " + env.Action)
		}
	}
}

func (sess *session) handleInit(raw []byte) {
	var msg InitMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		sess.writeError("malformed init message: " + err.Error())
		return
	}

	if sess.server.verifier.Enabled() {
		if err := sess.server.verifier.Verify(msg.Token); err != nil {
			sess.writeError(err.Error())
			return
		}
	}

	bounds, err := domain.NewBounds(msg.Workspace[0][0], msg.Workspace[1][0], msg.Workspace[0][1], msg.Workspace[1][1])
	if err != nil {
		sess.writeError("invalid workspace: " + err.Error())
		return
	}

	objects := make(map[string]*domain.Object, len(msg.Objects))
	observations := make(map[string]geometry.Polygon, len(msg.Objects))
	for name, cloud := range msg.Objects {
		shape, err := sess.pointCloudToPolygon(cloud)
		if err != nil {
			sess.writeError("invalid points for object " + name + ": " + err.Error())
			return
		}
		movable := true
		if v, ok := msg.Movable[name]; ok {
			movable = v
		}
		objects[name] = domain.NewObject(name, shape, name, movable)
		observations[name] = shape
	}

	samples := msg.Samples
	if samples <= 0 {
		samples = 400
	}

	opts := []planner.Option{planner.WithLogger(sess.log)}
	if sess.server.phraser != nil {
		opts = append(opts, planner.WithPhraser(sess.server.phraser))
	}

	pl, err := planner.New(msg.Specification, objects, bounds, samples, opts...)
	if err != nil {
		sess.writeError("failed to build planner: " + err.Error())
		return
	}
	sess.pl = pl

	// Construction only assigns scene variables for gradient evaluation;
	// the automaton's current state starts at the DFA's start node and is
	// advanced here against the scene init carried, per spec.md's Current
	// State definition and the original's dfa_step call at the end of
	// __init__.
	if err := pl.RegisterObservation(observations); err != nil {
		sess.writeError(err.Error())
		return
	}

	sess.write(Response{Response: "ack", SpecSatisfied: pl.SpecSatisfied()})
}

func (sess *session) handleObservation(raw []byte) {
	if sess.pl == nil {
		sess.writeError("no planner initialized: send an init message first")
		return
	}

	var msg ObservationMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		sess.writeError("malformed observation message: " + err.Error())
		return
	}

	observations := make(map[string]geometry.Polygon, len(msg.Objects))
	for name, cloud := range msg.Objects {
		shape, err := sess.pointCloudToPolygon(cloud)
		if err != nil {
			sess.writeError("invalid points for object " + name + ": " + err.Error())
			return
		}
		observations[name] = shape
	}

	if err := sess.pl.RegisterObservation(observations); err != nil {
		sess.writeError(err.Error())
		return
	}

	sess.write(Response{Response: "ack", SpecSatisfied: sess.pl.SpecSatisfied()})
}

func (sess *session) handlePlanRequest() {
	if sess.pl == nil {
		sess.writeError("no planner initialized: send an init message first")
		return
	}

	cmd, err := sess.pl.GetNextStep()
	if err != nil {
		sess.writeError(err.Error())
		return
	}

	if sess.server.audit != nil {
		sess.server.audit.Record(sess.pl.InstanceID, cmd)
	}

	resp := Response{SpecSatisfied: sess.pl.SpecSatisfied()}
	switch cmd.Kind {
	case domain.CommandNone:
		resp.Response = "none"
	case domain.CommandExecute:
		resp.Response = "execute"
		resp.Object = cmd.ObjectName
		pos := [2]float64{cmd.NewPos.X, cmd.NewPos.Y}
		if sess.server.invertY {
			pos[1] = -pos[1]
		}
		resp.NewPos = &pos
	case domain.CommandRequest:
		resp.Response = "request"
		resp.RequestText = cmd.RequestText
	}
	sess.write(resp)
}

func (sess *session) pointCloudToPolygon(cloud PointCloud) (geometry.Polygon, error) {
	points := make([]geometry.Point, len(cloud))
	for i, xy := range cloud {
		y := xy[1]
		if sess.server.invertY {
			y = -y
		}
		points[i] = geometry.Point{X: xy[0], Y: y}
	}
	return geometry.NewPolygon(points), nil
}

func (sess *session) write(resp Response) {
	if err := sess.conn.WriteJSON(resp); err != nil {
		sess.log.Error().Err(err).Msg("failed to write response")
	}
}

func (sess *session) writeError(msg string) {
	sess.write(Response{Response: "error", Error: msg})
}
