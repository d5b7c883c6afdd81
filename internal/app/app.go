// Package app wires configuration, persistence, the reward pipeline, and the
// TUI into a runnable program.
package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/divvy/internal/artcache"
	"github.com/abhisek/divvy/internal/config"
	"github.com/abhisek/divvy/internal/game"
	"github.com/abhisek/divvy/internal/genimg"
	"github.com/abhisek/divvy/internal/logging"
	"github.com/abhisek/divvy/internal/problemgen"
	"github.com/abhisek/divvy/internal/rewards"
	"github.com/abhisek/divvy/internal/router"
	"github.com/abhisek/divvy/internal/save"
	"github.com/abhisek/divvy/internal/screens/home"
	playscreen "github.com/abhisek/divvy/internal/screens/play"
	"github.com/abhisek/divvy/internal/taskq"
	"github.com/abhisek/divvy/internal/ui/layout"
)

// Options configures a program run. Zero values fall back to the config file
// and then to defaults.
type Options struct {
	PlayerName string
	ConfigPath string
	DataDir    string
	Verbose    bool
}

// Run builds all dependencies and blocks until the player quits.
func Run(ctx context.Context, opts Options) error {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	playerName := opts.PlayerName
	if playerName == "" && fileCfg.Player.Name != nil {
		playerName = *fileCfg.Player.Name
	}
	if playerName == "" {
		playerName = "player"
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = config.DefaultDataDir()
	}

	logger, err := logging.NewFileLogger(config.LogPath(dataDir), opts.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	provider := buildProvider(ctx, fileCfg.Art, logger)
	cache := artcache.New(
		artcache.NewContentStore(config.ArtDir(dataDir)),
		provider,
		artTimeout(fileCfg.Art),
		logger,
	)

	saveMgr := save.NewManager(config.SaveDir(dataDir))
	saveFile, err := saveMgr.Load(playerName)
	if err != nil {
		return fmt.Errorf("load save: %w", err)
	}

	state := stateFromSave(saveFile)

	queue := taskq.New()
	defer queue.Close()

	session := openSession(saveFile)
	persist := &persister{mgr: saveMgr, file: saveFile}
	if err := persist.write(); err != nil {
		return err
	}

	events := make(chan playscreen.RewardEvent, 16)

	orch := game.New(game.Config{
		Generator: problemgen.New(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))),
		Resolver:  rewards.NewResolver(),
		Cache:     cache,
		Queue:     queue,
		Logger:    logger,
		OnReward: func(r rewards.UnlockedReward) {
			persist.appendReward(r)
			if err := persist.write(); err != nil {
				logger.Warn("save after reward failed", zap.Error(err))
			}
			select {
			case events <- playscreen.RewardEvent{Reward: &r}:
			default:
			}
		},
		OnRewardError: func(c rewards.Crossing, err error) {
			select {
			case events <- playscreen.RewardEvent{Crossing: &c, Err: err}:
			default:
			}
		},
	})

	model := newAppModel(orch, state, cache, events)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}

	// Let in-flight reward tasks land before the final save.
	queue.Wait()
	closeSession(session, state)
	persist.syncProgress(state)
	return persist.write()
}

// buildProvider constructs the configured image provider, falling back to the
// offline mock when no API key is available.
func buildProvider(ctx context.Context, art config.ArtConfig, logger *zap.Logger) genimg.Provider {
	cfg := genimg.ConfigFromEnv()
	if cfg.OpenAI.APIKey == "" && cfg.Gemini.APIKey == "" {
		if discovered, ok := genimg.DiscoverConfig(); ok {
			discovered.Timeout = cfg.Timeout
			cfg = discovered
		}
	}

	if art.Provider != nil {
		cfg.Provider = *art.Provider
	}
	if art.Model != nil {
		cfg.OpenAI.Model = *art.Model
		cfg.Gemini.Model = *art.Model
	}
	if t := artTimeout(art); t > 0 {
		cfg.Timeout = t
	}

	provider, err := genimg.NewProvider(ctx, cfg, logger)
	if err != nil {
		logger.Warn("image provider not configured, rewards use placeholder art", zap.Error(err))
		return genimg.NewMockProvider()
	}
	return provider
}

func artTimeout(art config.ArtConfig) time.Duration {
	if art.TimeoutSeconds == nil || *art.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(*art.TimeoutSeconds) * time.Second
}

// stateFromSave rebuilds in-memory game state from the persisted file.
func stateFromSave(f *save.File) *game.GameState {
	state := game.NewGameState(game.LifetimeProgress{
		TotalProblemsSolved:    f.TotalProblemsSolved,
		TotalProblemsAttempted: f.TotalProblemsAttempted,
		CurrentDifficultyLevel: f.CurrentDifficultyLevel,
		RewardsUnlocked:        len(f.UnlockedRewards),
	})
	for _, r := range f.UnlockedRewards {
		state.UnlockedRewards = append(state.UnlockedRewards, rewards.UnlockedReward{
			RewardID:             uuid.NewString(),
			SubjectName:          r.SubjectName,
			ImagePath:            r.ImagePath,
			EarnedAt:             r.EarnedAt,
			MilestoneSolvedCount: r.MilestoneSolvedCount,
		})
	}
	return state
}

// openSession appends a fresh history entry and returns it for closing later.
func openSession(f *save.File) *save.SessionEntry {
	f.SessionsPlayed++
	f.SessionHistory = append(f.SessionHistory, save.SessionEntry{
		SessionID: uuid.NewString(),
		StartedAt: time.Now().UTC(),
	})
	return &f.SessionHistory[len(f.SessionHistory)-1]
}

func closeSession(entry *save.SessionEntry, state *game.GameState) {
	now := time.Now().UTC()
	entry.EndedAt = &now
	entry.SolvedProblems = state.Progress.Session.SolvedProblems
	entry.AttemptedProblems = state.Progress.Session.AttemptedProblems
}

// persister serializes save-file mutations between the reward pipeline
// goroutine and the main goroutine.
type persister struct {
	mu   sync.Mutex
	mgr  *save.Manager
	file *save.File
}

func (p *persister) write() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mgr.Write(p.file)
}

func (p *persister) appendReward(r rewards.UnlockedReward) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.file.UnlockedRewards = append(p.file.UnlockedRewards, save.RewardEntry{
		SubjectName:          r.SubjectName,
		ImagePath:            r.ImagePath,
		EarnedAt:             r.EarnedAt,
		MilestoneSolvedCount: r.MilestoneSolvedCount,
	})
}

func (p *persister) syncProgress(state *game.GameState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	lifetime := state.Progress.Lifetime
	p.file.TotalProblemsSolved = lifetime.TotalProblemsSolved
	p.file.TotalProblemsAttempted = lifetime.TotalProblemsAttempted
	p.file.CurrentDifficultyLevel = lifetime.CurrentDifficultyLevel
}

// appModel is the root Bubble Tea model.
type appModel struct {
	router   *router.Router
	orch     *game.Orchestrator
	state    *game.GameState
	resolver *rewards.Resolver
	width    int
	height   int
}

func newAppModel(orch *game.Orchestrator, state *game.GameState, cache *artcache.Cache, events <-chan playscreen.RewardEvent) appModel {
	homeScreen := home.New(orch, state, cache, events)
	return appModel{
		router:   router.New(homeScreen),
		orch:     orch,
		state:    state,
		resolver: rewards.NewResolver(),
	}
}

func (m appModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m appModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	solved := m.orch.Stats(m.state).TotalProblemsSolved
	nextMilestone := 0
	if next := m.resolver.Next(solved); !next.PoolExhausted {
		nextMilestone = next.SolvedCount
	}
	header := layout.RenderHeader(title, solved, nextMilestone, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(interface{ KeyHints() []layout.KeyHint }); ok {
		footerHints = provider.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}
