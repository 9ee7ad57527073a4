package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/touchline/internal/domain/fixture"
	"github.com/riskibarqy/touchline/internal/domain/lineup"
	"github.com/riskibarqy/touchline/internal/domain/period"
	"github.com/riskibarqy/touchline/internal/domain/player"
	"github.com/riskibarqy/touchline/internal/domain/squad"
	"github.com/riskibarqy/touchline/internal/platform/logging"
	"github.com/riskibarqy/touchline/internal/platform/resilience"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultSaveWorkers = 4
	boardLoadTasks     = 3
)

// Recorder receives selection metrics. A nil Recorder disables them.
type Recorder interface {
	RecordDrop(outcome lineup.Outcome)
	ObservePersist(operation string, elapsed time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordDrop(lineup.Outcome)                    {}
func (nopRecorder) ObservePersist(string, time.Duration, error) {}

type BoardOptions struct {
	Publisher   lineup.ChangePublisher
	Recorder    Recorder
	Logger      *logging.Logger
	SaveWorkers int
}

// board is the in-memory editing state of one fixture. Every event on a board
// runs under mu, so selection transitions never interleave.
type board struct {
	mu         sync.Mutex
	fixture    fixture.Fixture
	plans      map[int]*period.Plan
	categories map[string]lineup.PerformanceCategory
	selections *lineup.Partition
	gate       *squad.Gate
	pending    map[lineup.Scope]lineup.Map
	revisions  map[lineup.Scope]int64
}

func newBoard(item fixture.Fixture) *board {
	b := &board{
		fixture:    item,
		plans:      make(map[int]*period.Plan),
		categories: make(map[string]lineup.PerformanceCategory),
		gate:       squad.NewGate(nil, squad.ModePickingSquad),
		pending:    make(map[lineup.Scope]lineup.Map),
		revisions:  make(map[lineup.Scope]int64),
	}
	b.selections = lineup.NewPartition(b.recordChange)
	return b
}

func (b *board) recordChange(scope lineup.Scope, snapshot lineup.Map) {
	b.pending[scope] = snapshot
	b.revisions[scope]++
}

func (b *board) plan(team int) *period.Plan {
	if p, ok := b.plans[team]; ok {
		return p
	}
	p := period.NewPlan(team, nil)
	b.plans[team] = p
	return p
}

func (b *board) category(scope lineup.Scope) lineup.PerformanceCategory {
	return b.categories[period.MetaKey(scope.Period, scope.Team)]
}

func (b *board) teams() []int {
	teams := make([]int, 0, len(b.plans))
	for team := range b.plans {
		teams = append(teams, team)
	}
	sort.Ints(teams)
	return teams
}

// BoardService owns the per-fixture boards and their persistence.
type BoardService struct {
	fixtureRepo   fixture.Repository
	playerRepo    player.Repository
	selectionRepo lineup.Repository
	periodRepo    period.Repository
	squadRepo     squad.Repository
	publisher     lineup.ChangePublisher
	recorder      Recorder
	logger        *logging.Logger
	saveWorkers   int
	now           func() time.Time

	mu     sync.Mutex
	boards map[string]*board
	loads  resilience.SingleFlight
}

func NewBoardService(
	fixtureRepo fixture.Repository,
	playerRepo player.Repository,
	selectionRepo lineup.Repository,
	periodRepo period.Repository,
	squadRepo squad.Repository,
	opts BoardOptions,
) *BoardService {
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.SaveWorkers <= 0 {
		opts.SaveWorkers = defaultSaveWorkers
	}

	return &BoardService{
		fixtureRepo:   fixtureRepo,
		playerRepo:    playerRepo,
		selectionRepo: selectionRepo,
		periodRepo:    periodRepo,
		squadRepo:     squadRepo,
		publisher:     opts.Publisher,
		recorder:      opts.Recorder,
		logger:        opts.Logger,
		saveWorkers:   opts.SaveWorkers,
		now:           time.Now,
		boards:        make(map[string]*board),
	}
}

type PeriodView struct {
	period.Period
	Category lineup.PerformanceCategory
}

type BoardView struct {
	Fixture    fixture.Fixture
	Periods    map[int][]PeriodView
	Selections map[lineup.Scope]lineup.Map
	Squad      []string
	Mode       squad.Mode
}

type SaveResult struct {
	FixtureID string
	Scopes    int
	Periods   int
	SavedAt   time.Time
}

func (s *BoardService) Get(ctx context.Context, fixtureID string) (BoardView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.Get", fixtureAttr(fixtureID))
	defer span.End()

	var view BoardView
	err := s.withBoard(ctx, fixtureID, func(b *board) error {
		view = BoardView{
			Fixture:    b.fixture,
			Periods:    make(map[int][]PeriodView, len(b.plans)),
			Selections: make(map[lineup.Scope]lineup.Map),
			Squad:      b.gate.Members(),
			Mode:       b.gate.Mode(),
		}
		for _, team := range b.teams() {
			view.Periods[team] = periodViews(b, team)
		}
		for _, scope := range b.selections.Scopes() {
			store, _ := b.selections.Lookup(scope)
			view.Selections[scope] = store.Snapshot()
		}
		return nil
	})
	if err != nil {
		return BoardView{}, err
	}
	return view, nil
}

// Save writes every scope, period and the squad of a fixture in parallel.
func (s *BoardService) Save(ctx context.Context, fixtureID string) (SaveResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.Save", fixtureAttr(fixtureID))
	defer span.End()

	var result SaveResult
	err := s.withBoard(ctx, fixtureID, func(b *board) error {
		workers, err := ants.NewPool(s.saveWorkers)
		if err != nil {
			return fmt.Errorf("create save pool: %w", err)
		}
		defer workers.Release()

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			errs []error
		)
		submit := func(task func() error) {
			wg.Add(1)
			if err := workers.Submit(func() {
				defer wg.Done()
				if err := task(); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}); err != nil {
				wg.Done()
				mu.Lock()
				errs = append(errs, fmt.Errorf("submit save task: %w", err))
				mu.Unlock()
			}
		}

		scopes := b.selections.Scopes()
		for _, scope := range scopes {
			store, _ := b.selections.Lookup(scope)
			scope, snapshot := scope, store.Snapshot()
			submit(func() error {
				return s.persistScope(ctx, fixtureID, scope, snapshot)
			})
		}

		periods := 0
		for _, team := range b.teams() {
			for _, item := range b.plans[team].Periods() {
				record := period.Record{Period: item, Category: string(b.categories[period.MetaKey(item.ID, item.Team)])}
				periods++
				submit(func() error {
					return s.persistPeriod(ctx, fixtureID, record)
				})
			}
		}

		squadRecord := squad.Record{FixtureID: fixtureID, PlayerIDs: b.gate.Members(), Mode: b.gate.Mode()}
		submit(func() error {
			return s.persistSquad(ctx, squadRecord)
		})

		wg.Wait()
		if len(errs) > 0 {
			return fmt.Errorf("%w: save board %s: %w", ErrDependencyUnavailable, fixtureID, errors.Join(errs...))
		}

		// Scopes still pending here failed their first write and were never announced.
		for _, scope := range pendingScopes(b) {
			store, ok := b.selections.Lookup(scope)
			delete(b.pending, scope)
			if !ok {
				continue
			}
			s.publish(ctx, s.changeEvent(fixtureID, b, scope, store.Snapshot()))
		}
		result = SaveResult{FixtureID: fixtureID, Scopes: len(scopes), Periods: periods, SavedAt: s.now().UTC()}
		return nil
	})
	if err != nil {
		return SaveResult{}, err
	}

	s.logger.InfoContext(ctx, "board saved", "fixture_id", fixtureID, "scopes", result.Scopes, "periods", result.Periods)
	return result, nil
}

// Evict drops the cached board so the next call reloads it from storage.
func (s *BoardService) Evict(fixtureID string) {
	s.mu.Lock()
	delete(s.boards, strings.TrimSpace(fixtureID))
	s.mu.Unlock()
}

// withBoard runs fn with exclusive access to the fixture board and then
// persists and publishes whatever selection changes fn committed.
func (s *BoardService) withBoard(ctx context.Context, fixtureID string, fn func(b *board) error) error {
	b, err := s.acquire(ctx, fixtureID)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	fnErr := fn(b)
	if flushErr := s.flush(ctx, fixtureID, b); flushErr != nil {
		return errors.Join(fnErr, flushErr)
	}
	return fnErr
}

func (s *BoardService) acquire(ctx context.Context, fixtureID string) (*board, error) {
	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return nil, fmt.Errorf("%w: fixture_id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	b, ok := s.boards[fixtureID]
	s.mu.Unlock()
	if ok {
		return b, nil
	}

	v, err, _ := s.loads.Do(fixtureID, func() (any, error) {
		s.mu.Lock()
		if existing, ok := s.boards[fixtureID]; ok {
			s.mu.Unlock()
			return existing, nil
		}
		s.mu.Unlock()

		loaded, err := s.load(ctx, fixtureID)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.boards[fixtureID] = loaded
		s.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*board), nil
}

func (s *BoardService) load(ctx context.Context, fixtureID string) (*board, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.load", fixtureAttr(fixtureID))
	defer span.End()

	item, exists, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("%w: get fixture: %w", ErrDependencyUnavailable, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
	}

	var (
		selections  map[lineup.Scope]lineup.Map
		periods     []period.Record
		squadRecord squad.Record
		squadFound  bool
	)

	loaders := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(boardLoadTasks)
	loaders.Go(func(ctx context.Context) error {
		items, err := s.selectionRepo.ListByFixture(ctx, fixtureID)
		if err != nil {
			return fmt.Errorf("list selections: %w", err)
		}
		selections = items
		return nil
	})
	loaders.Go(func(ctx context.Context) error {
		items, err := s.periodRepo.ListByFixture(ctx, fixtureID)
		if err != nil {
			return fmt.Errorf("list periods: %w", err)
		}
		periods = items
		return nil
	})
	loaders.Go(func(ctx context.Context) error {
		record, found, err := s.squadRepo.GetByFixture(ctx, fixtureID)
		if err != nil {
			return fmt.Errorf("get squad: %w", err)
		}
		squadRecord, squadFound = record, found
		return nil
	})
	if err := loaders.Wait(); err != nil {
		return nil, fmt.Errorf("%w: load board %s: %w", ErrDependencyUnavailable, fixtureID, err)
	}

	b := newBoard(item)

	byTeam := make(map[int][]period.Period)
	for _, record := range periods {
		if !item.HasTeam(record.Team) {
			s.logger.WarnContext(ctx, "skip period outside fixture teams", "fixture_id", fixtureID, "team", record.Team, "period", record.ID)
			continue
		}
		byTeam[record.Team] = append(byTeam[record.Team], record.Period)
		if category, ok := lineup.ParseCategory(record.Category); ok && category != lineup.CategoryNone {
			b.categories[period.MetaKey(record.ID, record.Team)] = category
		}
	}
	for team, items := range byTeam {
		b.plans[team] = period.NewPlan(team, items)
	}

	for scope, snapshot := range selections {
		if _, ok := b.plans[scope.Team]; !ok {
			s.logger.WarnContext(ctx, "skip selection without period", "fixture_id", fixtureID, "team", scope.Team, "period", scope.Period)
			continue
		}
		if _, ok := b.plans[scope.Team].Get(scope.Period); !ok {
			s.logger.WarnContext(ctx, "skip selection without period", "fixture_id", fixtureID, "team", scope.Team, "period", scope.Period)
			continue
		}
		b.selections.Seed(scope, snapshot)
	}

	if squadFound {
		b.gate = squad.NewGate(squadRecord.PlayerIDs, squadRecord.Mode)
	}

	s.logger.DebugContext(ctx, "board loaded", "fixture_id", fixtureID, "teams", len(b.plans), "scopes", len(b.selections.Scopes()))
	return b, nil
}

// flush persists pending selection changes in scope order and publishes them.
// A scope that fails to persist stays pending for the next flush or Save.
func (s *BoardService) flush(ctx context.Context, fixtureID string, b *board) error {
	if len(b.pending) == 0 {
		return nil
	}

	for _, scope := range pendingScopes(b) {
		snapshot := b.pending[scope]
		if err := s.persistScope(ctx, fixtureID, scope, snapshot); err != nil {
			return fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
		}
		delete(b.pending, scope)
		s.publish(ctx, s.changeEvent(fixtureID, b, scope, snapshot))
	}
	return nil
}

func (s *BoardService) changeEvent(fixtureID string, b *board, scope lineup.Scope, snapshot lineup.Map) lineup.ChangeEvent {
	return lineup.ChangeEvent{
		FixtureID:  fixtureID,
		Scope:      scope,
		Revision:   b.revisions[scope],
		Selection:  snapshot,
		OccurredAt: s.now().UTC(),
	}
}

// pendingScopes returns the unpublished scopes ordered by team then period.
func pendingScopes(b *board) []lineup.Scope {
	scopes := make([]lineup.Scope, 0, len(b.pending))
	for scope := range b.pending {
		scopes = append(scopes, scope)
	}
	sort.Slice(scopes, func(i, j int) bool {
		if scopes[i].Team != scopes[j].Team {
			return scopes[i].Team < scopes[j].Team
		}
		return scopes[i].Period < scopes[j].Period
	})
	return scopes
}

func (s *BoardService) publish(ctx context.Context, event lineup.ChangeEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSelectionChanged(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "publish selection change failed",
			"fixture_id", event.FixtureID,
			"team", event.Scope.Team,
			"period", event.Scope.Period,
			"revision", event.Revision,
			"error", err,
		)
	}
}

func (s *BoardService) persistScope(ctx context.Context, fixtureID string, scope lineup.Scope, snapshot lineup.Map) error {
	start := s.now()
	err := s.selectionRepo.ReplaceScope(ctx, fixtureID, scope, snapshot)
	s.recorder.ObservePersist("replace_selection", s.now().Sub(start), err)
	if err != nil {
		return fmt.Errorf("persist selection team=%d period=%d: %w", scope.Team, scope.Period, err)
	}
	return nil
}

func (s *BoardService) persistPeriod(ctx context.Context, fixtureID string, record period.Record) error {
	start := s.now()
	err := s.periodRepo.Upsert(ctx, fixtureID, record)
	s.recorder.ObservePersist("upsert_period", s.now().Sub(start), err)
	if err != nil {
		return fmt.Errorf("persist period team=%d period=%d: %w", record.Team, record.ID, err)
	}
	return nil
}

func (s *BoardService) persistSquad(ctx context.Context, record squad.Record) error {
	start := s.now()
	err := s.squadRepo.Upsert(ctx, record)
	s.recorder.ObservePersist("upsert_squad", s.now().Sub(start), err)
	if err != nil {
		return fmt.Errorf("persist squad: %w", err)
	}
	return nil
}

func (s *BoardService) persistSquadMode(ctx context.Context, fixtureID string, mode squad.Mode) (bool, error) {
	start := s.now()
	updated, err := s.squadRepo.UpdateMode(ctx, fixtureID, mode)
	s.recorder.ObservePersist("update_squad_mode", s.now().Sub(start), err)
	if err != nil {
		return false, fmt.Errorf("persist squad mode: %w", err)
	}
	return updated, nil
}

func (s *BoardService) roster(ctx context.Context, clubID string) ([]player.Player, error) {
	items, err := s.playerRepo.ListByClub(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("%w: list roster: %w", ErrDependencyUnavailable, err)
	}
	return items, nil
}

func periodViews(b *board, team int) []PeriodView {
	plan, ok := b.plans[team]
	if !ok {
		return []PeriodView{}
	}
	items := plan.Periods()
	out := make([]PeriodView, 0, len(items))
	for _, item := range items {
		out = append(out, PeriodView{Period: item, Category: b.categories[period.MetaKey(item.ID, item.Team)]})
	}
	return out
}

// resolveScope validates that the team belongs to the fixture and the period exists.
func resolveScope(b *board, team, periodID int) (lineup.Scope, error) {
	if err := ensureTeam(b, team); err != nil {
		return lineup.Scope{}, err
	}
	if _, ok := b.plan(team).Get(periodID); !ok {
		return lineup.Scope{}, fmt.Errorf("%w: period=%d team=%d", ErrNotFound, periodID, team)
	}
	return lineup.Scope{Team: team, Period: periodID}, nil
}

func ensureEditable(b *board) error {
	if fixture.IsLocked(b.fixture.Status) {
		return fmt.Errorf("%w: fixture %s is %s", ErrConflict, b.fixture.ID, strings.ToLower(fixture.NormalizeStatus(b.fixture.Status)))
	}
	return nil
}
