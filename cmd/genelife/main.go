package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/genelife/genelife/internal/config"
	"github.com/genelife/genelife/internal/core/event"
	coresys "github.com/genelife/genelife/internal/core/system"
	"github.com/genelife/genelife/internal/data"
	"github.com/genelife/genelife/internal/persist"
	"github.com/genelife/genelife/internal/scripting"
	"github.com/genelife/genelife/internal/sim"
	"github.com/genelife/genelife/internal/system"
	"github.com/genelife/genelife/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Console display helpers ───────────────────────────────────────

var printer = message.NewPrinter(language.English)

func printBanner(w, h uint32, seed int64) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              genelife  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       gene-program artificial life        \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	printer.Printf("  \033[1mworld:\033[0m %d x %d \033[90m(seed: %d)\033[0m\n\n", w, h, seed)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int64) {
	numStr := printer.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Simulation host ───────────────────────────────────────────────

func run() error {
	// 1. Load config; a missing file means built-in defaults
	cfgPath := "config/genelife.toml"
	if p := os.Getenv("GENELIFE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	printBanner(cfg.World.Width, cfg.World.Height, seed)

	// 3. Load genome presets
	printSection("data")
	genomes, err := data.LoadGenomeTable(cfg.Data.Genomes)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn("genome table missing, using built-in", zap.String("path", cfg.Data.Genomes))
		genomes = data.NewGenomeTable()
	} else if err != nil {
		return fmt.Errorf("load genomes: %w", err)
	}
	printStat("genome presets", int64(genomes.Count()))
	genes, err := genomes.Get(cfg.Population.Genome)
	if err != nil {
		return fmt.Errorf("population genome: %w", err)
	}

	// 4. Build the world and seed the population
	bus := event.NewBus()
	w := world.New(cfg.World.Width, cfg.World.Height, cfg.World.FoodPerTile)
	s := sim.New(w, rand.New(rand.NewSource(seed)), bus, log)
	if err := s.Seed(cfg.Population.Size, genes); err != nil {
		return fmt.Errorf("seed population: %w", err)
	}
	printStat("tiles", int64(cfg.World.Width)*int64(cfg.World.Height))
	printStat("creatures", int64(s.Store.Live()))
	printStat("food", int64(w.TotalFood()))
	fmt.Println()

	// 5. Lua observers
	printSection("scripting")
	engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	if engine.HasHook("on_round") {
		printOK("on_round observer loaded")
	}
	if engine.HasHook("on_extinction") {
		printOK("on_extinction observer loaded")
	}
	fmt.Println()

	// 6. Optional census recording
	var (
		runRepo *persist.RunRepo
		runID   int64
		persSys *system.PersistenceSystem
	)
	rounds := system.NewRoundSystem(s, cfg.Simulation.MaxRounds, log)
	census := system.NewCensusSystem(s, bus)

	if cfg.Database.DSN != "" {
		printSection("database")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK("migrations applied")

		runRepo = persist.NewRunRepo(db)
		runID, err = runRepo.Start(ctx, persist.RunRow{
			Width:      cfg.World.Width,
			Height:     cfg.World.Height,
			Population: cfg.Population.Size,
			Genome:     cfg.Population.Genome,
			Seed:       seed,
		})
		if err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		printStat("run id", runID)
		fmt.Println()

		persSys = system.NewPersistenceSystem(persist.NewCensusRepo(db), runID, census, log, cfg.Database.FlushInterval)
	}

	// 7. Create systems and register with runner
	runner := coresys.NewRunner()
	runner.Register(rounds)
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(census)
	runner.Register(system.NewScriptSystem(engine, census, rounds, log))
	if persSys != nil {
		runner.Register(persSys)
	}
	runner.Register(system.NewStatusSystem(census, log, cfg.Simulation.StatusInterval))

	// 8. Run rounds until extinction, max_rounds, a script halt or a signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	printSection("simulation")
	if cfg.Simulation.TickRate > 0 {
		printReady(fmt.Sprintf("round loop started (tick: %s)", cfg.Simulation.TickRate))
	} else {
		printReady("round loop started (unthrottled)")
	}
	fmt.Println()

	loop(runner, rounds, cfg.Simulation.TickRate, shutdownCh, log)

	// 9. Wrap up
	if rounds.Outcome() == system.OutcomeExtinct {
		engine.OnExtinction(s.Round())
	}
	if persSys != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		persSys.Flush(ctx)
		if err := runRepo.Finish(ctx, runID, s.Round(), rounds.Outcome()); err != nil {
			log.Error("finish run", zap.Error(err))
		}
	}
	printSummary(s, census, rounds.Outcome())
	return nil
}

// loop ticks the runner until the round system reports the run is over.
// A zero rate runs rounds back to back, checking for signals between them.
func loop(runner *coresys.Runner, rounds *system.RoundSystem, rate time.Duration, shutdownCh <-chan os.Signal, log *zap.Logger) {
	if rate <= 0 {
		for !rounds.Done() {
			select {
			case sig := <-shutdownCh:
				log.Info("shutdown signal", zap.String("signal", sig.String()))
				rounds.Stop(system.OutcomeInterrupted)
				return
			default:
				runner.Tick(0)
			}
		}
		return
	}

	ticker := time.NewTicker(rate)
	defer ticker.Stop()
	for !rounds.Done() {
		select {
		case <-ticker.C:
			runner.Tick(rate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			rounds.Stop(system.OutcomeInterrupted)
			return
		}
	}
}

func printSummary(s *sim.Sim, census *system.CensusSystem, outcome string) {
	c := s.Survey()
	tot := census.Totals()

	fmt.Println()
	printSection("summary")
	printReady("outcome: " + outcome)
	printStat("rounds", int64(s.Round()))
	printStat("survivors", int64(c.Population))
	printStat("births", int64(tot.Births))
	printStat("starved", int64(tot.Starved))
	printStat("killed", int64(tot.Killed))
	printStat("distinct genomes", int64(c.Genomes))
	if c.DominantCount > 0 {
		printReady(printer.Sprintf("dominant genome %s x%d: %s", c.Dominant, c.DominantCount, c.DominantGenes))
	}

	// Show the creature holding the lowest live slot.
	for i := 0; i < s.Store.Count(); i++ {
		h, ok := s.Store.HandleAt(i)
		if !ok {
			continue
		}
		if cr, ok := s.Store.Get(h); ok {
			fmt.Println()
			fmt.Println(s.Describe(cr.X, cr.Y))
		}
		break
	}
	fmt.Println()
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
