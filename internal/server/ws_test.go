package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/anchal00/blackjack/internal/game"
	"github.com/anchal00/blackjack/internal/parser"
)

func (suite *GameServerTestSuite) dial(userAgent string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(suite.server.URL, "http") + HTTP_API_V1_PREFIX + "/connect"
	conn, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"User-Agent": {userAgent}})
	suite.Require().NoError(err)
	suite.Equal(http.StatusSwitchingProtocols, resp.StatusCode)
	suite.T().Cleanup(func() { conn.Close() })
	return conn
}

func (suite *GameServerTestSuite) send(conn *websocket.Conn, input parser.GamePlayerInput) parser.GameServerMessage {
	suite.Require().NoError(conn.WriteJSON(input))
	suite.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	var reply parser.GameServerMessage
	suite.Require().NoError(conn.ReadJSON(&reply))
	return reply
}

func (suite *GameServerTestSuite) TestWebsocketPlaysRound() {
	conn := suite.dial("rookie")
	suite.Eventually(func() bool { return suite.gs.ConnStore.Count() == 1 }, time.Second, 10*time.Millisecond)

	reply := suite.send(conn, parser.GamePlayerInput{Action: parser.ActionDeal})
	suite.Require().Nil(reply.Error)
	suite.Require().NotNil(reply.Game)
	suite.Equal(parser.ActionDeal, reply.Action)
	suite.Equal(game.StatusPlaying, reply.Game.Status)
	suite.Empty(reply.Game.DealerCards)
	token := reply.Game.Token

	reply = suite.send(conn, parser.GamePlayerInput{Action: parser.ActionGame})
	suite.Require().NotNil(reply.Game)
	suite.Equal(token, reply.Game.Token)

	reply = suite.send(conn, parser.GamePlayerInput{Action: parser.ActionStand, Token: token})
	suite.Require().NotNil(reply.Game)
	suite.True(reply.Game.Status.Terminal())
	suite.NotEmpty(reply.Game.DealerCards)

	reply = suite.send(conn, parser.GamePlayerInput{Action: parser.ActionStats})
	suite.Require().NotNil(reply.Stats)
	suite.Equal(int64(1), reply.Stats.Wins+reply.Stats.Losses+reply.Stats.Draws)

	// The play channel and the REST API see the same device.
	resp := suite.call("GET", "/history", "rookie")
	suite.Len(decode[[]parser.GameResponse](suite.T(), resp), 1)

	reply = suite.send(conn, parser.GamePlayerInput{Action: parser.ActionHit, Token: token})
	suite.Require().NotNil(reply.Error)
	suite.Equal(http.StatusNotFound, reply.Error.Status)

	conn.Close()
	suite.Eventually(func() bool { return suite.gs.ConnStore.Count() == 0 }, time.Second, 10*time.Millisecond)
}

func (suite *GameServerTestSuite) TestWebsocketRejectsBadInput() {
	conn := suite.dial("rookie")

	reply := suite.send(conn, parser.GamePlayerInput{Action: "split"})
	suite.Require().NotNil(reply.Error)
	suite.Equal(http.StatusBadRequest, reply.Error.Status)
	suite.Nil(reply.Game)

	suite.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte("{")))
	var raw parser.GameServerMessage
	suite.Require().NoError(conn.ReadJSON(&raw))
	suite.Require().NotNil(raw.Error)

	reply = suite.send(conn, parser.GamePlayerInput{Action: parser.ActionStats})
	suite.Require().NotNil(reply.Error, "channel survives bad input")
	suite.Equal(http.StatusNotFound, reply.Error.Status)
}

func (suite *GameServerTestSuite) TestPlainRequestToConnectFails() {
	resp := suite.call("GET", "/connect", "rookie")
	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	suite.Zero(suite.gs.ConnStore.Count())
}
