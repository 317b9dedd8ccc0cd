package transport

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func dialServer(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()
	httpSrv := httptest.NewServer(srv)
	t.Cleanup(httpSrv.Close)

	wsURL := "ws" + strings.TrimPrefix(httpSrv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func square(cx, cy, half float64) PointCloud {
	return PointCloud{
		{cx - half, cy - half},
		{cx + half, cy - half},
		{cx + half, cy + half},
		{cx - half, cy + half},
	}
}

// init with an already-satisfying scene must ack spec_satisfied=true,
// without requiring a separate observation message (mirrors seed
// scenario S1: blue already left of red).
func TestServer_InitAlreadySatisfyingScene(t *testing.T) {
	srv := NewServer(zerolog.Nop())
	conn := dialServer(t, srv)

	init := InitMessage{
		Action:        "init",
		Specification: "F(blue leftof red)",
		Workspace:     [2][2]float64{{-5, -5}, {5, 5}},
		Objects: map[string]PointCloud{
			"blue": square(0, 0, 0.1),
			"red":  square(1, 0, 0.1),
		},
	}
	require.NoError(t, conn.WriteJSON(init))

	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	require.Equal(t, "ack", resp.Response)
	require.Equal(t, "", resp.Error)
	require.True(t, resp.SpecSatisfied, "init must step the automaton against the initial scene, not just ack blindly")

	require.NoError(t, conn.WriteJSON(PlanRequestMessage{Action: "plan_request"}))
	require.NoError(t, conn.ReadJSON(&resp))
	require.Equal(t, "none", resp.Response)
	require.True(t, resp.SpecSatisfied)
}

// A not-yet-satisfying initial scene should ack spec_satisfied=false and
// a following plan_request should propose moving the movable object.
func TestServer_InitThenPlanRequestExecute(t *testing.T) {
	srv := NewServer(zerolog.Nop())
	conn := dialServer(t, srv)

	init := InitMessage{
		Action:        "init",
		Specification: "F(blue leftof red)",
		Workspace:     [2][2]float64{{-5, -5}, {5, 5}},
		Objects: map[string]PointCloud{
			"blue": square(2, 0, 0.1),
			"red":  square(1, 0, 0.1),
		},
		Movable: map[string]bool{"blue": true, "red": false},
		Samples: 200,
	}
	require.NoError(t, conn.WriteJSON(init))

	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	require.Equal(t, "ack", resp.Response)
	require.False(t, resp.SpecSatisfied)

	require.NoError(t, conn.WriteJSON(PlanRequestMessage{Action: "plan_request"}))
	require.NoError(t, conn.ReadJSON(&resp))
	require.Equal(t, "execute", resp.Response)
	require.Equal(t, "blue", resp.Object)
	require.NotNil(t, resp.NewPos)
	require.Less(t, resp.NewPos[0], 1.0)
}

// plan_request before init must fail, not panic.
func TestServer_PlanRequestBeforeInit(t *testing.T) {
	srv := NewServer(zerolog.Nop())
	conn := dialServer(t, srv)

	require.NoError(t, conn.WriteJSON(PlanRequestMessage{Action: "plan_request"}))

	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	require.Equal(t, "error", resp.Response)
	require.NotEmpty(t, resp.Error)
}
