package nakama

const (
	// RPC ids registered with Nakama.
	RpcCreateGame  = "cribbage_create_game"
	RpcJoinGame    = "cribbage_join_game"
	RpcGetGame     = "cribbage_get_game"
	RpcSubmitMove  = "cribbage_move"
	RpcForfeit     = "cribbage_forfeit"
	RpcPlayerToken = "cribbage_player_token"
	RpcScoreHand   = "cribbage_score_hand"

	// GameCollection holds one system-owned storage object per game.
	GameCollection = "cribbage_games"
)

// Runtime env keys.
const (
	EnvConfigPath  = "cribbage_config_path"
	EnvDeckSecret  = "cribbage_deck_secret"
	EnvTokenSecret = "cribbage_token_secret"
	EnvTokenIssuer = "cribbage_token_issuer"
)

const (
	DefaultConfigPath        = "data/game_config.json"
	DefaultBotIdentitiesPath = "data/bot_identities.json"
	DefaultTokenIssuer       = "cribbage"
)

// gRPC status codes used in runtime.NewError.
const (
	codeInvalidArgument    = 3
	codeNotFound           = 5
	codePermissionDenied   = 7
	codeFailedPrecondition = 9
	codeAborted            = 10
	codeInternal           = 13
	codeUnauthenticated    = 16
)
