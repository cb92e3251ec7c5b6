package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"mendikot/internal/app"
	"mendikot/internal/bot"
	"mendikot/internal/config"
	"mendikot/internal/domain"
	"mendikot/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	MatchLabelKey_OpenSeats = "open" // Key for the open seats in the match label

	matchStateLobby   = "lobby"
	matchStatePlaying = "playing"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	MatchID              string                      `json:"match_id"`
	Seats                [domain.SeatCount]string    `json:"seats"`                   // User IDs, empty string means seat is empty
	Names                [domain.SeatCount]string    `json:"names"`                   // Table names shown for each seat
	OwnerSeat            int                         `json:"owner_seat"`              // Seat index of the match owner
	Dealer               int                         `json:"dealer"`                  // Dealer of the next round
	LastRoundID          string                      `json:"last_round_id"`
	Tick                 int64                       `json:"tick"`                    // Current tick, one per second
	Presences            map[string]runtime.Presence `json:"-"`                       // Map UserId -> Presence for targeted messaging
	App                  *app.Service                `json:"-"`
	Round                *domain.RoundState          `json:"-"`                       // Current or last finished round, nil before the first one
	Config               config.GameConfig           `json:"config"`
	BotsEnabled          bool                        `json:"bots_enabled"`
	BotWaitUntil         int64                       `json:"bot_wait_until"`          // Tick when the bot should act
	TurnDeadline         int64                       `json:"turn_deadline"`           // Tick when a human's turn is played for them
	LastSinglePlayerTick int64                       `json:"last_single_player_tick"` // Tick when the humans started waiting for bots
	Bots                 map[string]*bot.Agent       `json:"-"`
	Rounds               ports.RoundStore            `json:"-"`
	Accounts             ports.AccountPort           `json:"-"`
	Advisor              *app.AdvisorTokenService    `json:"-"`

	rng *rand.Rand
}

// Playing reports whether a round is in progress.
func (ms *MatchState) Playing() bool {
	return ms.Round != nil && !ms.Round.Ended()
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return domain.SeatCount - ms.GetOpenSeatsCount()
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

func (ms *MatchState) seatOf(userID string) int {
	for i, seatUserId := range ms.Seats {
		if seatUserId != "" && seatUserId == userID {
			return i
		}
	}
	return -1
}

func (ms *MatchState) random() *rand.Rand {
	if ms.rng == nil {
		ms.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return ms.rng
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)

	state := &MatchState{
		MatchID:     matchID,
		Tick:        time.Now().Unix(),
		Presences:   make(map[string]runtime.Presence),
		App:         app.NewService(nil),
		OwnerSeat:   -1,
		Config:      config.GetGameConfig().WithEnv(env),
		BotsEnabled: env[envBotsEnabled] != "false",
		Bots:        make(map[string]*bot.Agent),
		Rounds:      NewNakamaRoundStore(nk),
		Accounts:    NewNakamaAccountAdapter(nk),
	}
	if state.Config.Advisor.Enabled() {
		state.Advisor = app.NewAdvisorTokenService(env[envAdvisorSecret], state.Config.Advisor.Issuer)
		if !state.Advisor.Enabled() {
			logger.Warn("MatchInit: Advisor URL set but %s is empty; bots play locally.", envAdvisorSecret)
		}
	}

	label, err := matchLabel(state.GetOpenSeatsCount(), matchStateLobby)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // one tick per second; all timers count ticks
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// A returning player keeps their seat.
	if matchState.seatOf(presence.GetUserId()) >= 0 {
		return state, true, ""
	}

	// Allow join if there is an empty seat OR a bot to replace (if no round is running)
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if !matchState.Playing() {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p
		if matchState.seatOf(p.GetUserId()) >= 0 {
			logger.Debug("MatchJoin: User %s rejoined.", p.GetUserId())
			continue
		}

		// Assign seat: Try empty seats first, then bots (if lobby)
		assigned := -1
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				assigned = i
				break
			}
		}

		if assigned < 0 && !matchState.Playing() {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					assigned = i
					break
				}
			}
		}

		if assigned < 0 {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}
		matchState.Seats[assigned] = p.GetUserId()
		matchState.Names[assigned] = p.GetUsername()
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	// Players joining mid-round need the table as it stands.
	if matchState.Playing() {
		for _, p := range presences {
			mh.sendSnapshot(matchState, dispatcher, logger, p.GetUserId())
		}
	}

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	ownerLeft := false
	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		seat := matchState.seatOf(p.GetUserId())
		if seat < 0 {
			continue
		}
		// During a round the seat stays reserved; the turn timer plays for it.
		if matchState.Playing() {
			logger.Debug("MatchLeave: User %s left mid-round, seat %d kept.", p.GetUserId(), seat)
			continue
		}
		matchState.Seats[seat] = ""
		matchState.Names[seat] = ""
		logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), seat)
		if matchState.OwnerSeat == seat {
			ownerLeft = true
		}
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no connected humans.")
		return nil
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats[:])
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		} else if ownerLeft {
			logger.Debug("MatchLeave: Owner left and no human owner is available.")
		}
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartRound:
			mh.handleStartRound(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg)
		case OpRequestState:
			mh.handleRequestState(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}
	mh.processTurnTimer(ctx, matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill the lobby with bots once the humans have waited long enough.
	if !state.Playing() {
		if state.GetHumanPlayerCount() > 0 && state.GetOpenSeatsCount() > 0 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Open seats detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.Config.BotAutoFillDelaySeconds) {
				for i, seat := range state.Seats {
					if seat != "" {
						continue
					}
					identity := bot.GetBotIdentity(i)
					state.Seats[i] = identity.UserID
					state.Names[i] = identity.DisplayName
					state.Bots[identity.UserID] = mh.newAgent(state, identity)
					logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, identity.UserID, i)
				}
				mh.updateLabel(state, dispatcher, logger)
				mh.broadcastMatchState(state, dispatcher, logger)
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
		return
	}

	// 2. Handle bot turns in-round.
	seat := state.Round.CurrentSeat
	currentUserID := state.Seats[seat]
	agent, isBot := state.Bots[currentUserID]
	if !isBot {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		minDelay, maxDelay := state.Config.BotMinDelaySeconds, state.Config.BotMaxDelaySeconds
		delay := minDelay + state.random().Intn(maxDelay-minDelay+1)
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s (seat %d) will act at tick %d (current %d)", currentUserID, seat, state.BotWaitUntil, state.Tick)
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	decision, err := agent.Play(ctx, state.Round, seat)
	if err != nil {
		logger.Error("processBots: Bot %s failed to choose a card: %v", currentUserID, err)
		return
	}
	if decision.Fallback != nil {
		logger.Warn("processBots: Bot %s used the fallback choice: %v", currentUserID, decision.Fallback)
	}
	if err := mh.applyPlay(ctx, state, dispatcher, logger, seat, decision.Card); err != nil {
		logger.Error("processBots: Bot %s play %s rejected: %v", currentUserID, decision.Card.ID(), err)
	}
}

// processTurnTimer plays the standard choice for a human seat whose turn ran out.
func (mh *matchHandler) processTurnTimer(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if !state.Playing() || state.TurnDeadline == 0 || state.Tick < state.TurnDeadline {
		return
	}
	seat := state.Round.CurrentSeat
	if _, isBot := state.Bots[state.Seats[seat]]; isBot {
		state.TurnDeadline = 0
		return
	}

	autopilot := &bot.Agent{ID: state.Seats[seat], Name: state.Names[seat], Level: bot.BotLevelMedium}
	decision, err := autopilot.Play(ctx, state.Round, seat)
	if err != nil {
		logger.Error("processTurnTimer: No card for seat %d: %v", seat, err)
		return
	}
	logger.Info("processTurnTimer: Seat %d timed out, playing %s", seat, decision.Card.ID())
	if err := mh.applyPlay(ctx, state, dispatcher, logger, seat, decision.Card); err != nil {
		logger.Error("processTurnTimer: Play for seat %d rejected: %v", seat, err)
	}
}

// armTurnTimer starts the turn clock when the seat to play is a human.
func (mh *matchHandler) armTurnTimer(state *MatchState) {
	state.TurnDeadline = 0
	if !state.Playing() || state.Config.TurnDurationSeconds <= 0 {
		return
	}
	if _, isBot := state.Bots[state.Seats[state.Round.CurrentSeat]]; isBot {
		return
	}
	state.TurnDeadline = state.Tick + int64(state.Config.TurnDurationSeconds)
}

// newAgent builds the bot for an identity, backed by the remote advisor when one is configured.
func (mh *matchHandler) newAgent(state *MatchState, identity bot.BotIdentity) *bot.Agent {
	level := identity.Level(mustLevel(state.Config.DefaultBotLevel))
	brain, err := bot.NewBrain(level, state.random())
	if err != nil {
		brain = &bot.StandardBot{}
	}
	if state.Advisor.Enabled() {
		timeout := time.Duration(state.Config.Advisor.TimeoutMs) * time.Millisecond
		brain = bot.NewRemoteBrain(state.Config.Advisor.URL, state.MatchID, level, state.Advisor, timeout, brain)
	}
	return &bot.Agent{ID: identity.UserID, Name: identity.DisplayName, Level: level, Strategy: brain}
}

func mustLevel(name string) bot.BotLevel {
	level, err := bot.ParseLevel(name)
	if err != nil {
		return bot.BotLevelMedium
	}
	return level
}

func (mh *matchHandler) handleStartRound(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	logger.Info("StartRound: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if senderSeat < 0 || senderSeat != state.OwnerSeat {
		logger.Warn("StartRound: User %s tried to start a round but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		mh.sendError(state, dispatcher, logger, senderID, 403, "only the table owner can start a round")
		return
	}
	if state.Playing() {
		mh.sendError(state, dispatcher, logger, senderID, 409, "a round is already in progress")
		return
	}

	mh.refreshNames(ctx, state, logger)

	var seats [domain.SeatCount]app.SeatInfo
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		seats[i] = app.SeatInfo{UserID: userID, Name: state.Names[i], Bot: isBotUserId(userID) || state.Bots[userID] != nil}
		if seats[i].Bot && state.Bots[userID] == nil {
			identity, ok := bot.GetBotConfig(userID)
			if !ok {
				identity = bot.BotIdentity{UserID: userID, DisplayName: state.Names[i]}
			}
			state.Bots[userID] = mh.newAgent(state, identity)
		}
	}

	round, events, err := state.App.StartRound(seats, state.Dealer)
	if err != nil {
		logger.Warn("StartRound: Cannot start: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	state.Round = round
	state.BotWaitUntil = 0
	mh.armTurnTimer(state)
	mh.updateLabel(state, dispatcher, logger)

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.broadcastSnapshots(state, dispatcher, logger)

	logger.Info("StartRound: Round %s started, dealer seat %d.", round.ID, round.Dealer)
}

// refreshNames replaces seat names with the bot pool's names and the humans'
// account display names.
func (mh *matchHandler) refreshNames(ctx context.Context, state *MatchState, logger runtime.Logger) {
	for i, userID := range state.Seats {
		if userID == "" || !isBotUserId(userID) {
			continue
		}
		if name := bot.GetBotDisplayName(userID); name != "" {
			state.Names[i] = name
		}
	}

	if state.Accounts == nil {
		return
	}
	var humans []string
	for i := range state.Seats {
		if isHumanSeat(state.Seats[:], i) {
			humans = append(humans, state.Seats[i])
		}
	}
	names, err := state.Accounts.DisplayNames(ctx, humans)
	if err != nil {
		logger.Warn("StartRound: Failed to resolve display names: %v", err)
		return
	}
	for i, userID := range state.Seats {
		if name, ok := names[userID]; ok && name != "" {
			state.Names[i] = name
		}
	}
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	if !state.Playing() {
		logger.Warn("handlePlayCard: No round in progress.")
		mh.sendError(state, dispatcher, logger, senderID, 409, app.ErrNoRound.Error())
		return
	}

	request := PlayCardRequest{}
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("handlePlayCard: Failed to unmarshal PlayCardRequest from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "malformed play request")
		return
	}
	card, err := domain.ParseCardID(request.CardID)
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	if err := mh.applyPlay(ctx, state, dispatcher, logger, senderSeat, card); err != nil {
		logger.Warn("handlePlayCard: User %s (seat %d) failed to play %s: %v", senderID, senderSeat, card.ID(), err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
	}
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotYourTurn), errors.Is(err, domain.ErrWrongPhase):
		return 409
	case errors.Is(err, domain.ErrUnknownSeat):
		return 403
	}
	return 400
}

func (mh *matchHandler) handleRequestState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	mh.broadcastMatchState(state, dispatcher, logger)
	mh.sendSnapshot(state, dispatcher, logger, msg.GetUserId())
}

// applyPlay runs a play through the engine and publishes the outcome. The
// round is left untouched when the engine rejects the play.
func (mh *matchHandler) applyPlay(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, seat int, card domain.Card) error {
	next, events, err := state.App.PlayCard(state.Round, seat, card)
	if err != nil {
		return err
	}
	state.Round = next

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.broadcastSnapshots(state, dispatcher, logger)

	if next.Ended() {
		mh.finishRound(ctx, state, dispatcher, logger)
		return nil
	}
	mh.armTurnTimer(state)
	return nil
}

// finishRound stores the finished round, rotates the deal and reopens the lobby.
func (mh *matchHandler) finishRound(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	round := state.Round
	if state.Rounds != nil {
		if err := state.Rounds.SaveRound(ctx, state.MatchID, round); err != nil {
			logger.Error("finishRound: Failed to store round %s: %v", round.ID, err)
		}
	}
	state.LastRoundID = round.ID
	state.Dealer = app.NextDealer(round.Dealer)
	state.TurnDeadline = 0
	state.BotWaitUntil = 0

	// Seats of players who left during the round are released now.
	for i, userID := range state.Seats {
		if isHumanSeat(state.Seats[:], i) {
			if _, connected := state.Presences[userID]; !connected {
				state.Seats[i] = ""
				state.Names[i] = ""
			}
		}
	}
	state.OwnerSeat = findFirstHumanSeat(state.Seats[:])

	logger.Info("finishRound: Round %s won by team %s. %s", round.ID, round.Winner, round.Message)
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastMatchState(state, dispatcher, logger)
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	msg := MatchStateMessage{
		Seats:       make([]SeatMessage, 0, domain.SeatCount),
		OwnerSeat:   state.OwnerSeat,
		Dealer:      state.Dealer,
		State:       matchStateLobby,
		LastRoundID: state.LastRoundID,
		Tick:        state.Tick,
	}
	if state.Playing() {
		msg.State = matchStatePlaying
	}
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		_, connected := state.Presences[userID]
		_, isBot := state.Bots[userID]
		msg.Seats = append(msg.Seats, SeatMessage{
			Seat:      i,
			UserID:    userID,
			Name:      state.Names[i],
			Team:      string(domain.TeamForSeat(i)),
			Bot:       isBot || isBotUserId(userID),
			Connected: connected,
		})
	}

	bytes, err := json.Marshal(msg)
	if err != nil {
		logger.Error("broadcastMatchState: Failed to marshal: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpMatchState, bytes, nil, nil, true)
}

// broadcastSnapshots sends every connected seated player their own view of the round.
func (mh *matchHandler) broadcastSnapshots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	for _, userID := range state.Seats {
		if _, ok := state.Presences[userID]; ok {
			mh.sendSnapshot(state, dispatcher, logger, userID)
		}
	}
}

// sendSnapshot sends the round as seen by userID's seat. Spectators see no hands.
func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	if state.Round == nil {
		return
	}
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	viewer := state.seatOf(userID)
	if viewer < 0 {
		viewer = domain.SeatCount
	}
	bytes, err := EncodeSnapshot(state.Round, viewer)
	if err != nil {
		logger.Error("sendSnapshot: Failed to marshal snapshot for %s: %v", userID, err)
		return
	}
	dispatcher.BroadcastMessage(OpStateSnapshot, bytes, []runtime.Presence{presence}, nil, true)
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, payload, err := eventMessage(ev)
	if err != nil {
		logger.Warn("broadcastEvent: %v", err)
		return
	}
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// Private events for bots or disconnected players go nowhere.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// sendError sends a GameErrorMessage to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := json.Marshal(GameErrorMessage{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal GameErrorMessage: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	matchState := matchStateLobby
	if state.Playing() {
		matchState = matchStatePlaying
	}

	label, err := matchLabel(state.GetOpenSeatsCount(), matchState)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
