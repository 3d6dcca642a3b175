package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"cribbage/internal/app"
	"cribbage/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

type rpcFunc func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error)

// rpcHandlers binds the RPC endpoints to one app.Service.
type rpcHandlers struct {
	service    *app.Service
	identities *IdentitySource
	tokens     *app.PlayerTokens
}

func newRPCHandlers(service *app.Service, identities *IdentitySource, tokens *app.PlayerTokens) *rpcHandlers {
	return &rpcHandlers{service: service, identities: identities, tokens: tokens}
}

// RegisterRPCs registers the cribbage RPC endpoints.
func (h *rpcHandlers) RegisterRPCs(initializer runtime.Initializer) error {
	rpcs := []struct {
		id string
		fn rpcFunc
	}{
		{RpcCreateGame, h.rpcCreateGame},
		{RpcJoinGame, h.rpcJoinGame},
		{RpcGetGame, h.rpcGetGame},
		{RpcSubmitMove, h.rpcSubmitMove},
		{RpcForfeit, h.rpcForfeit},
		{RpcPlayerToken, h.rpcPlayerToken},
		{RpcScoreHand, rpcScoreHand},
	}
	for _, rpc := range rpcs {
		if err := initializer.RegisterRpc(rpc.id, rpc.fn); err != nil {
			return fmt.Errorf("failed to register rpc %s: %w", rpc.id, err)
		}
	}
	return nil
}

// authRequest is embedded by requests that may be sent with the server key.
type authRequest struct {
	Token string `json:"token,omitempty"`
}

type gameRequest struct {
	authRequest
	GameID string `json:"game_id"`
}

type createGameRequest struct {
	authRequest
	app.CreateRequest
}

type moveRequest struct {
	authRequest
	GameID  string          `json:"game_id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MoveResponse is returned by the move and forfeit RPCs.
type MoveResponse struct {
	Description   string       `json:"description"`
	ScoreDelta    [2]int       `json:"score_delta"`
	NextTurn      string       `json:"next_turn,omitempty"`
	ComputerMoves []string     `json:"computer_moves,omitempty"`
	Game          app.GameView `json:"game"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type scoreHandRequest struct {
	Cards   []string `json:"cards"`
	Starter string   `json:"starter"`
	Crib    bool     `json:"crib"`
}

func decodeRequest(payload string, v any) error {
	if payload == "" {
		payload = "{}"
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return runtime.NewError("invalid payload", codeInvalidArgument)
	}
	return nil
}

func encodeResponse(logger runtime.Logger, v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to marshal response: %v", err)
		return "", runtime.NewError("internal error", codeInternal)
	}
	return string(b), nil
}

// errorToRuntime maps service errors to gRPC-coded runtime errors. The message
// starts with the stable error code so clients can branch on it.
func errorToRuntime(err error) error {
	if errors.Is(err, errUnauthenticated) {
		return runtime.NewError(err.Error(), codeUnauthenticated)
	}
	msg := domain.CodeOf(err) + ": " + err.Error()
	switch {
	case errors.Is(err, domain.ErrGameNotFound):
		return runtime.NewError(msg, codeNotFound)
	case errors.Is(err, domain.ErrGameNotActive):
		return runtime.NewError(msg, codeFailedPrecondition)
	}
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return runtime.NewError(msg, codeInvalidArgument)
	case domain.KindAuthorization:
		return runtime.NewError(msg, codePermissionDenied)
	case domain.KindConflict:
		return runtime.NewError(msg, codeAborted)
	case domain.KindInvariant:
		return runtime.NewError(msg, codeInternal)
	default:
		return runtime.NewError("internal error", codeInternal)
	}
}

func (h *rpcHandlers) rpcCreateGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req createGameRequest
	if err := decodeRequest(payload, &req); err != nil {
		return "", err
	}
	caller, err := h.identities.Resolve(ctx, logger, req.Token)
	if err != nil {
		return "", errorToRuntime(err)
	}
	g, err := h.service.CreateGame(ctx, caller, req.CreateRequest)
	if err != nil {
		logger.Warn("rpcCreateGame [User:%s]: %v", caller.PlayerID, err)
		return "", errorToRuntime(err)
	}
	return encodeResponse(logger, app.View(g, caller.PlayerID, h.service.Settings().PollInterval))
}

func (h *rpcHandlers) rpcJoinGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req gameRequest
	if err := decodeRequest(payload, &req); err != nil {
		return "", err
	}
	caller, err := h.identities.Resolve(ctx, logger, req.Token)
	if err != nil {
		return "", errorToRuntime(err)
	}
	g, _, err := h.service.JoinGame(ctx, req.GameID, caller)
	if err != nil {
		return "", errorToRuntime(err)
	}
	return encodeResponse(logger, app.View(g, caller.PlayerID, h.service.Settings().PollInterval))
}

func (h *rpcHandlers) rpcGetGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req gameRequest
	if err := decodeRequest(payload, &req); err != nil {
		return "", err
	}
	caller, err := h.identities.Resolve(ctx, logger, req.Token)
	if err != nil {
		return "", errorToRuntime(err)
	}
	view, err := h.service.Get(ctx, req.GameID, caller.PlayerID)
	if err != nil {
		return "", errorToRuntime(err)
	}
	return encodeResponse(logger, view)
}

func (h *rpcHandlers) rpcSubmitMove(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req moveRequest
	if err := decodeRequest(payload, &req); err != nil {
		return "", err
	}
	caller, err := h.identities.Resolve(ctx, logger, req.Token)
	if err != nil {
		return "", errorToRuntime(err)
	}
	res, err := h.service.Submit(ctx, req.GameID, caller, req.Type, req.Payload)
	if err != nil {
		return "", errorToRuntime(err)
	}
	return encodeResponse(logger, h.moveResponse(res, caller.PlayerID))
}

func (h *rpcHandlers) rpcForfeit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req gameRequest
	if err := decodeRequest(payload, &req); err != nil {
		return "", err
	}
	caller, err := h.identities.Resolve(ctx, logger, req.Token)
	if err != nil {
		return "", errorToRuntime(err)
	}
	res, err := h.service.Forfeit(ctx, req.GameID, caller)
	if err != nil {
		return "", errorToRuntime(err)
	}
	logger.Info("rpcForfeit [User:%s]: Forfeited game %s", caller.PlayerID, req.GameID)
	return encodeResponse(logger, h.moveResponse(res, caller.PlayerID))
}

func (h *rpcHandlers) moveResponse(res app.MoveResult, viewerID string) MoveResponse {
	out := MoveResponse{
		Description: res.Description,
		ScoreDelta:  res.ScoreDelta,
		NextTurn:    res.NextTurn,
		Game:        app.View(res.Game, viewerID, h.service.Settings().PollInterval),
	}
	for _, cm := range res.ComputerMoves {
		out.ComputerMoves = append(out.ComputerMoves, cm.Description)
	}
	return out
}

// rpcPlayerToken issues a token for the session user, for clients that relay
// moves through a trusted backend.
func (h *rpcHandlers) rpcPlayerToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("session required", codeUnauthenticated)
	}
	if h.tokens == nil {
		return "", runtime.NewError("player tokens are not configured", codeFailedPrecondition)
	}
	caller, err := h.identities.Resolve(ctx, logger, "")
	if err != nil {
		return "", errorToRuntime(err)
	}
	token, err := h.tokens.Issue(caller.PlayerID, caller.Display)
	if err != nil {
		logger.Error("rpcPlayerToken [User:%s]: Failed to issue token: %v", userID, err)
		return "", runtime.NewError("internal error", codeInternal)
	}
	return encodeResponse(logger, tokenResponse{Token: token})
}

// rpcScoreHand scores four cards against a starter. It needs no session.
func rpcScoreHand(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req scoreHandRequest
	if err := decodeRequest(payload, &req); err != nil {
		return "", err
	}
	if len(req.Cards) != domain.KeepSize {
		return "", runtime.NewError(fmt.Sprintf("need %d cards, got %d", domain.KeepSize, len(req.Cards)), codeInvalidArgument)
	}
	cards, err := domain.ParseCards(req.Cards)
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}
	starter, err := domain.ParseCard(req.Starter)
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}
	seen := map[domain.Card]bool{starter: true}
	for _, c := range cards {
		if seen[c] {
			return "", runtime.NewError(fmt.Sprintf("duplicate card %s", c), codeInvalidArgument)
		}
		seen[c] = true
	}
	return encodeResponse(logger, domain.ScoreHand(cards, starter, req.Crib))
}
