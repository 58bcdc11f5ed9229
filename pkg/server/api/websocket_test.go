package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StrathCole/oracle-script/pkg/aggregator"
	"github.com/StrathCole/oracle-script/pkg/logging"
	"github.com/StrathCole/oracle-script/pkg/script"
)

func TestWebSocketClient_Filter(t *testing.T) {
	views := newResponseViews(script.Output{Responses: []script.Response{
		script.NewResponse("WBTC", aggregator.Success, 1),
		script.NewResponse("PHB", aggregator.NotEnoughSources, 0),
	}})

	client := &WebSocketClient{subscribedAll: true, subscribedSyms: map[string]bool{}, server: NewWebSocketServer(":0", logging.NewNoopLogger())}
	assert.Len(t, client.filter(views), 2)

	client.subscribe([]string{"PHB"})
	selected := client.filter(views)
	require.Len(t, selected, 1)
	assert.Equal(t, "PHB", selected[0].Symbol)

	client.unsubscribe([]string{"PHB"})
	assert.Empty(t, client.filter(views))

	client.subscribe([]string{"*"})
	assert.Len(t, client.filter(views), 2)
}

func TestWebSocketServer_Broadcast(t *testing.T) {
	ws := NewWebSocketServer(":0", logging.NewNoopLogger())
	defer ws.Stop()
	go ws.broadcastUpdates()

	srv := httptest.NewServer(http.HandlerFunc(ws.handleWebSocket))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool { return ws.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	ws.SendUpdate(script.Output{Responses: []script.Response{
		script.NewResponse("WBTC", aggregator.Success, 27_050_000_000_000),
	}})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg ResultMessage
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, "result", msg.Type)
	require.Len(t, msg.Responses, 1)
	assert.Equal(t, "WBTC", msg.Responses[0].Symbol)
	assert.Equal(t, "27050", msg.Responses[0].Price)
}
