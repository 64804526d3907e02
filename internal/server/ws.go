package server

import (
	"context"
	"net/http"

	"github.com/anchal00/blackjack/internal/game"
	"github.com/anchal00/blackjack/internal/parser"
	"github.com/anchal00/blackjack/internal/utils"
)

// HandlePlayerInput runs the websocket play channel. Each text message is a
// parser.GamePlayerInput and gets exactly one parser.GameServerMessage back.
func (s *GameServer) HandlePlayerInput(writer http.ResponseWriter, request *http.Request) {
	clientID := utils.ClientHash(request)
	wssConn := s.UpgradeToWebsocket(writer, request)
	if wssConn == nil {
		return
	}
	log := s.Logger.With("client", clientID)
	s.ConnStore.AddConnection(clientID, wssConn)
	defer func() {
		s.ConnStore.RemoveConnection(clientID, wssConn)
		wssConn.Close()
	}()
	log.Info("Player connected")
	for {
		_, data, err := wssConn.ReadMessage()
		if err != nil {
			log.Info("Player disconnected")
			return
		}
		reply := s.handlePlayerAction(request.Context(), clientID, data)
		if err := wssConn.WriteJSON(reply); err != nil {
			log.Error("Failed to send reply", err)
			return
		}
	}
}

func (s *GameServer) handlePlayerAction(ctx context.Context, clientID string, data []byte) parser.GameServerMessage {
	input, err := parser.ParseGamePlayerInput(data)
	if err != nil {
		return parser.GameServerMessage{
			Error: &parser.ErrorResponse{Status: http.StatusBadRequest, Message: err.Error()},
		}
	}
	reply := parser.GameServerMessage{Action: input.Action}
	var g *game.Game
	switch input.Action {
	case parser.ActionStats:
		stat, err := s.Service.Stats(ctx, clientID)
		if err != nil {
			reply.Error = s.errorResponse(err)
			return reply
		}
		stats := parser.NewStatsResponse(stat)
		reply.Stats = &stats
		return reply
	case parser.ActionDeal:
		g, err = s.Service.Deal(ctx, clientID)
	case parser.ActionGame:
		g, err = s.Service.ActiveGame(ctx, clientID, input.Token)
	case parser.ActionHit:
		g, err = s.Service.Hit(ctx, clientID, input.Token)
	case parser.ActionStand:
		g, err = s.Service.Stand(ctx, clientID, input.Token)
	}
	if err != nil {
		reply.Error = s.errorResponse(err)
		return reply
	}
	resp := parser.NewGameResponse(g)
	reply.Game = &resp
	return reply
}
