package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"cribbage/internal/bot"
	"cribbage/internal/config"
	"cribbage/internal/domain"
	"cribbage/internal/ports"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
)

// Settings are the server-wide defaults applied to new games.
type Settings struct {
	TargetScore       int
	DefaultDifficulty domain.Difficulty
	MugginsPolicy     string
	MugginsPoints     int
	// ConflictRetries is how often a write is retried after a version conflict.
	// Zero means DefaultConflictRetries.
	ConflictRetries int
	PollInterval    time.Duration
}

// SettingsFrom converts the loaded game configuration.
func SettingsFrom(c config.GameConfig) Settings {
	d, _ := domain.ParseDifficulty(c.DefaultDifficulty)
	return Settings{
		TargetScore:       c.TargetScore,
		DefaultDifficulty: d,
		MugginsPolicy:     c.MugginsPolicy,
		MugginsPoints:     c.MugginsPenaltyPoints,
		ConflictRetries:   c.ConflictRetries,
		PollInterval:      c.PollInterval(),
	}
}

func (s Settings) withDefaults() Settings {
	if s.TargetScore <= 0 {
		s.TargetScore = domain.DefaultTargetScore
	}
	if s.DefaultDifficulty == "" {
		s.DefaultDifficulty = domain.DifficultyNormal
	}
	if s.MugginsPolicy == "" {
		s.MugginsPolicy = domain.PolicyNoPenalty
	}
	if s.ConflictRetries <= 0 {
		s.ConflictRetries = DefaultConflictRetries
	}
	if s.PollInterval <= 0 {
		s.PollInterval = DefaultPollInterval
	}
	return s
}

// StrategyFactory builds the computer strategy for a difficulty.
type StrategyFactory func(domain.Difficulty) (bot.Strategy, error)

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Nil keeps the silent default.
func WithLogger(logger runtime.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRand sets the source used for dealer selection, unseeded deals and computer cuts.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDeckSecret makes every deal derive its seed from the secret, the game id
// and the round, so a deal can be reproduced later.
func WithDeckSecret(secret []byte) Option {
	return func(s *Service) {
		s.deckSecret = append([]byte(nil), secret...)
	}
}

// WithStrategies replaces bot.NewStrategy.
func WithStrategies(f StrategyFactory) Option {
	return func(s *Service) {
		if f != nil {
			s.strategies = f
		}
	}
}

// WithIDGenerator replaces uuid.NewString for game ids.
func WithIDGenerator(f func() string) Option {
	return func(s *Service) {
		if f != nil {
			s.newID = f
		}
	}
}

// Service contains the cribbage use-cases. All writes go through the store's
// version check; the rules themselves live in domain.Transition.
type Service struct {
	store      ports.GameStore
	settings   Settings
	logger     runtime.Logger
	now        func() time.Time
	deckSecret []byte
	strategies StrategyFactory
	newID      func() string

	strategyMu    sync.Mutex
	strategyCache map[domain.Difficulty]bot.Strategy

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService constructs a Service on top of store.
func NewService(store ports.GameStore, settings Settings, opts ...Option) *Service {
	s := &Service{
		store:      store,
		settings:   settings.withDefaults(),
		logger:     noopLogger{},
		now:        time.Now,
		strategies: bot.NewStrategy,
		newID:      uuid.NewString,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// strategyFor returns the shared strategy for a difficulty, building it on first use.
func (s *Service) strategyFor(d domain.Difficulty) (bot.Strategy, error) {
	s.strategyMu.Lock()
	defer s.strategyMu.Unlock()
	if strategy, ok := s.strategyCache[d]; ok {
		return strategy, nil
	}
	strategy, err := s.strategies(d)
	if err != nil {
		return nil, err
	}
	if s.strategyCache == nil {
		s.strategyCache = make(map[domain.Difficulty]bot.Strategy)
	}
	s.strategyCache[d] = strategy
	return strategy, nil
}

// Settings returns the effective defaults.
func (s *Service) Settings() Settings { return s.settings }

func (s *Service) int63() int64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Int63()
}

func (s *Service) intn(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}

// CreateRequest describes a new game. Zero fields take the server defaults.
type CreateRequest struct {
	Opponent      string `json:"opponent"`
	Difficulty    string `json:"difficulty,omitempty"`
	TargetScore   int    `json:"target_score,omitempty"`
	MugginsPolicy string `json:"muggins_policy,omitempty"`
	MugginsPoints int    `json:"muggins_points,omitempty"`
}

func (s *Service) options(req CreateRequest) (domain.Options, error) {
	opts := domain.Options{
		TargetScore:   req.TargetScore,
		Difficulty:    s.settings.DefaultDifficulty,
		MugginsPolicy: req.MugginsPolicy,
		MugginsPoints: req.MugginsPoints,
	}
	if opts.TargetScore == 0 {
		opts.TargetScore = s.settings.TargetScore
	}
	if opts.TargetScore < 0 {
		return opts, fmt.Errorf("%w: target score %d", domain.ErrInvalidPayload, req.TargetScore)
	}
	if req.Difficulty != "" {
		d, ok := domain.ParseDifficulty(req.Difficulty)
		if !ok {
			return opts, fmt.Errorf("%w: unknown difficulty %q", domain.ErrInvalidPayload, req.Difficulty)
		}
		opts.Difficulty = d
	}
	if opts.MugginsPolicy == "" {
		opts.MugginsPolicy = s.settings.MugginsPolicy
		opts.MugginsPoints = s.settings.MugginsPoints
	}
	if _, err := opts.Policy(); err != nil {
		return opts, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	return opts, nil
}

// CreateGame opens a game with creator in seat 0. A human game waits for a
// second player; a computer game starts immediately.
func (s *Service) CreateGame(ctx context.Context, creator ports.Identity, req CreateRequest) (*domain.Game, error) {
	if creator.PlayerID == "" {
		return nil, fmt.Errorf("%w: missing player id", domain.ErrNotParticipant)
	}
	opponent := req.Opponent
	if opponent == "" {
		opponent = OpponentHuman
	}
	if opponent != OpponentHuman && opponent != OpponentComputer {
		return nil, fmt.Errorf("%w: unknown opponent %q", domain.ErrInvalidPayload, req.Opponent)
	}
	opts, err := s.options(req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	g := &domain.Game{
		ID:      s.newID(),
		Version: 1,
		Players: [2]*domain.Player{
			{ID: creator.PlayerID, Display: creator.Display, LastSeen: now},
		},
		Status:    domain.StatusWaiting,
		Winner:    domain.NoSeat,
		Options:   opts,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if opponent == OpponentComputer {
		identity := bot.IdentityFor(opts.Difficulty)
		if identity.UserID == creator.PlayerID {
			return nil, fmt.Errorf("%w: cannot play against yourself", domain.ErrInvalidPayload)
		}
		g.Players[1] = &domain.Player{ID: identity.UserID, Display: identity.DisplayName, Computer: true, LastSeen: now}
		s.start(g)
		g, _ = s.runComputer(g)
	}

	if err := s.store.Put(ctx, g, 0); err != nil {
		s.logger.Error("CreateGame [User:%s]: Failed to store game %s: %v", creator.PlayerID, g.ID, err)
		return nil, err
	}
	s.logger.Info("CreateGame [User:%s]: Created game %s against %s (target %d, muggins %s)", creator.PlayerID, g.ID, opponent, opts.TargetScore, opts.MugginsPolicy)
	return g, nil
}

// start seats both players in round one with a random first dealer.
func (s *Service) start(g *domain.Game) {
	g.Status = domain.StatusActive
	g.State = domain.NewRound(1, domain.Seat(s.intn(2)))
}

// JoinGame seats joiner opposite the creator and starts the game. Joining a
// game one already sits in returns it unchanged.
func (s *Service) JoinGame(ctx context.Context, gameID string, joiner ports.Identity) (*domain.Game, []Event, error) {
	if joiner.PlayerID == "" {
		return nil, nil, fmt.Errorf("%w: missing player id", domain.ErrNotParticipant)
	}
	var events []Event
	g, err := s.update(ctx, gameID, func(current *domain.Game) (*domain.Game, error) {
		events = nil
		if current.SeatOf(joiner.PlayerID).Valid() {
			return nil, nil
		}
		if current.Players[1] != nil {
			return nil, domain.ErrGameFull
		}
		if current.Status != domain.StatusWaiting {
			return nil, domain.ErrGameNotActive
		}
		next := current.Clone()
		now := s.now()
		next.Players[1] = &domain.Player{ID: joiner.PlayerID, Display: joiner.Display, LastSeen: now}
		s.start(next)
		next.Version++
		next.UpdatedAt = now
		events = []Event{
			{Kind: EventPlayerJoined, Payload: PlayerJoinedPayload{PlayerID: joiner.PlayerID, Seat: 1}},
			{Kind: EventPhaseChanged, Payload: PhaseChangedPayload{Round: next.State.Round, Phase: next.State.Phase()}},
		}
		return next, nil
	})
	if err != nil {
		s.logger.Warn("JoinGame [User:%s]: Failed to join game %s: %v", joiner.PlayerID, gameID, err)
		return nil, nil, err
	}
	s.logger.Info("JoinGame [User:%s]: Joined game %s", joiner.PlayerID, gameID)
	return g, events, nil
}

// Submit applies a wire move for actor and persists the result, followed by
// any computer moves it unlocks.
func (s *Service) Submit(ctx context.Context, gameID string, actor ports.Identity, moveType string, payload []byte) (MoveResult, error) {
	return s.submit(ctx, gameID, actor, moveType, func(g *domain.Game) MoveResult {
		return s.ApplyMove(g, actor.PlayerID, moveType, payload)
	})
}

// SubmitMove is Submit for an already decoded move.
func (s *Service) SubmitMove(ctx context.Context, gameID string, actor ports.Identity, m domain.Move) (MoveResult, error) {
	return s.submit(ctx, gameID, actor, string(m.Type()), func(g *domain.Game) MoveResult {
		return s.Apply(g, actor.PlayerID, m)
	})
}

// Forfeit concedes gameID for actor.
func (s *Service) Forfeit(ctx context.Context, gameID string, actor ports.Identity) (MoveResult, error) {
	return s.SubmitMove(ctx, gameID, actor, domain.ForfeitMove{})
}

func (s *Service) submit(ctx context.Context, gameID string, actor ports.Identity, moveType string, apply func(*domain.Game) MoveResult) (MoveResult, error) {
	var result MoveResult
	_, err := s.update(ctx, gameID, func(current *domain.Game) (*domain.Game, error) {
		result = apply(current)
		if !result.Success {
			return nil, result.Err
		}
		next, computer := s.runComputer(result.Game)
		result.Game = next
		result.ComputerMoves = computer
		result.NextTurn = turnPlayer(next)
		return next, nil
	})
	if err != nil {
		s.logRejection(gameID, actor.PlayerID, moveType, err)
		return MoveResult{Err: err}, err
	}
	s.logger.Debug("Submit [Game:%s User:%s]: %s (version %d, %d computer moves)", gameID, actor.PlayerID, result.Description, result.Game.Version, len(result.ComputerMoves))
	if result.Game.Status.Terminal() {
		s.logger.Info("Submit [Game:%s]: Game ended %s, scores %d-%d", gameID, result.Game.Status, result.Game.Scores[0], result.Game.Scores[1])
	}
	return result, nil
}

func (s *Service) logRejection(gameID, playerID, moveType string, err error) {
	switch domain.KindOf(err) {
	case domain.KindInvariant:
		s.logger.Error("Submit [Game:%s User:%s]: Refusing %s on corrupt game: %v", gameID, playerID, moveType, err)
	case domain.KindConflict:
		s.logger.Warn("Submit [Game:%s User:%s]: Gave up on %s after %d conflicts", gameID, playerID, moveType, s.settings.ConflictRetries)
	case domain.KindUnknown:
		s.logger.Error("Submit [Game:%s User:%s]: Failed to apply %s: %v", gameID, playerID, moveType, err)
	default:
		s.logger.Debug("Submit [Game:%s User:%s]: Rejected %s: %v", gameID, playerID, moveType, err)
	}
}

// update runs a version-checked read-modify-write. fn returns nil to leave the
// document unchanged. Conflicts re-read and re-run fn.
func (s *Service) update(ctx context.Context, gameID string, fn func(*domain.Game) (*domain.Game, error)) (*domain.Game, error) {
	var lastErr error
	for attempt := 0; attempt <= s.settings.ConflictRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		current, err := s.store.Get(ctx, gameID)
		if err != nil {
			return nil, err
		}
		next, err := fn(current)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return current, nil
		}
		err = s.store.Put(ctx, next, current.Version)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			return nil, err
		}
		lastErr = err
		s.logger.Debug("update [Game:%s]: Version %d is stale, retrying (attempt %d)", gameID, current.Version, attempt+1)
	}
	return nil, lastErr
}

// Get returns the game as viewerID may see it.
func (s *Service) Get(ctx context.Context, gameID, viewerID string) (GameView, error) {
	g, err := s.store.Get(ctx, gameID)
	if err != nil {
		return GameView{}, err
	}
	return View(g, viewerID, s.settings.PollInterval), nil
}
