package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// RpcRoundRecord returns the stored snapshot of a finished round.
	RpcRoundRecord = "round_record"

	// MatchNameMendikot is the authoritative match handler name registered with Nakama.
	MatchNameMendikot = "mendikot_match"

	// GameLabel identifies Mendikot matches in the match listing.
	GameLabel = "mendikot"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartRound   int64 = 1
	OpPlayCard     int64 = 2
	OpRequestState int64 = 3

	// Server -> Client events
	OpMatchState     int64 = 101
	OpRoundStarted   int64 = 102
	OpHandDealt      int64 = 103 // send privately
	OpCardPlayed     int64 = 104
	OpTrumpRevealed  int64 = 105
	OpTrickCompleted int64 = 106
	OpRoundEnded     int64 = 107
	OpStateSnapshot  int64 = 108 // send privately
	OpGameError      int64 = 109
)

const (
	botIdentitiesPath = "data/bot_identities.json"
	gameConfigPath    = "data/game_config.json"

	envBotsEnabled   = "mendikot_bots_enabled"
	envAdvisorSecret = "mendikot_advisor_secret"
)
