package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/anchal00/blackjack/internal/db"
	"github.com/anchal00/blackjack/internal/game"
	"github.com/anchal00/blackjack/internal/parser"
	"github.com/anchal00/blackjack/internal/service"
	"github.com/anchal00/blackjack/internal/utils"
)

func (s *GameServer) sendResponse(writer http.ResponseWriter, body any, status int) {
	respBody, err := json.Marshal(body)
	if err != nil {
		s.Logger.Error("Failed to encode response body", err)
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if _, err := writer.Write(respBody); err != nil {
		s.Logger.Error("Failed to write response body", err)
	}
}

func (s *GameServer) sendError(writer http.ResponseWriter, err error) {
	resp := s.errorResponse(err)
	s.sendResponse(writer, resp, resp.Status)
}

// errorResponse maps service and store errors onto HTTP statuses.
func (s *GameServer) errorResponse(err error) *parser.ErrorResponse {
	switch {
	case errors.Is(err, service.ErrNoActiveGame):
		return &parser.ErrorResponse{Status: http.StatusNotFound, Message: "Missing Game"}
	case errors.Is(err, service.ErrNoStats):
		return &parser.ErrorResponse{Status: http.StatusNotFound, Message: "Missing Device"}
	case errors.Is(err, db.ErrStaleGame), errors.Is(err, game.ErrGameOver):
		return &parser.ErrorResponse{Status: http.StatusConflict, Message: "Game changed by another request"}
	}
	s.Logger.Error("Request failed", err)
	return &parser.ErrorResponse{Status: http.StatusInternalServerError, Message: http.StatusText(http.StatusInternalServerError)}
}

func (s *GameServer) sendGame(writer http.ResponseWriter, g *game.Game, err error) {
	if err != nil {
		s.sendError(writer, err)
		return
	}
	s.sendResponse(writer, parser.NewGameResponse(g), http.StatusOK)
}

func (s *GameServer) Deal(writer http.ResponseWriter, request *http.Request) {
	clientID := utils.ClientHash(request)
	g, err := s.Service.Deal(request.Context(), clientID)
	if err == nil {
		s.Logger.Debug(fmt.Sprintf("DEAL: %s", g.Token))
	}
	s.sendGame(writer, g, err)
}

func (s *GameServer) ActiveGame(writer http.ResponseWriter, request *http.Request) {
	clientID := utils.ClientHash(request)
	g, err := s.Service.ActiveGame(request.Context(), clientID, request.URL.Query().Get("token"))
	s.sendGame(writer, g, err)
}

func (s *GameServer) Hit(writer http.ResponseWriter, request *http.Request) {
	clientID := utils.ClientHash(request)
	g, err := s.Service.Hit(request.Context(), clientID, request.URL.Query().Get("token"))
	s.sendGame(writer, g, err)
}

func (s *GameServer) Stand(writer http.ResponseWriter, request *http.Request) {
	clientID := utils.ClientHash(request)
	g, err := s.Service.Stand(request.Context(), clientID, request.URL.Query().Get("token"))
	s.sendGame(writer, g, err)
}

func (s *GameServer) Stats(writer http.ResponseWriter, request *http.Request) {
	clientID := utils.ClientHash(request)
	stat, err := s.Service.Stats(request.Context(), clientID)
	if err != nil {
		s.sendError(writer, err)
		return
	}
	s.sendResponse(writer, parser.NewStatsResponse(stat), http.StatusOK)
}

// History answers an unparsable start with an empty list.
func (s *GameServer) History(writer http.ResponseWriter, request *http.Request) {
	clientID := utils.ClientHash(request)
	since, ok := parser.ParseHistoryStart(request.URL.Query().Get("start"))
	if !ok {
		s.Logger.Debug(fmt.Sprintf("Ignoring history request with bad start %q", request.URL.Query().Get("start")))
		s.sendResponse(writer, []parser.GameResponse{}, http.StatusOK)
		return
	}
	games, err := s.Service.History(request.Context(), clientID, since)
	if err != nil {
		s.sendError(writer, err)
		return
	}
	s.sendResponse(writer, parser.NewHistoryResponse(games), http.StatusOK)
}

func (s *GameServer) DeleteHistory(writer http.ResponseWriter, request *http.Request) {
	clientID := utils.ClientHash(request)
	if sure, _ := strconv.ParseBool(request.URL.Query().Get("sure")); !sure {
		s.sendResponse(writer, parser.ErrorResponse{
			Status:  http.StatusBadRequest,
			Message: "Delete did not have sure set",
		}, http.StatusBadRequest)
		return
	}
	deleted, err := s.Service.DeleteHistory(request.Context(), clientID, mux.Vars(request)["token"])
	if err != nil {
		s.sendError(writer, err)
		return
	}
	s.Logger.Info(fmt.Sprintf("Deleted %d games of %s", deleted, clientID))
	s.sendResponse(writer, parser.DeleteResponse{Deleted: deleted > 0, Count: deleted}, http.StatusOK)
}

func (s *GameServer) Health(writer http.ResponseWriter, _ *http.Request) {
	s.sendResponse(writer, map[string]string{"status": "ok"}, http.StatusOK)
}
