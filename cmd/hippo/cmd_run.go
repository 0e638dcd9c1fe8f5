package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vantorre/hippo/internal/agent"
	"github.com/vantorre/hippo/internal/config"
	"github.com/vantorre/hippo/internal/events"
	"github.com/vantorre/hippo/internal/logging"
	"github.com/vantorre/hippo/internal/models"
	"github.com/vantorre/hippo/internal/vecmath"
)

// agentSummary is the per-agent result printed after a run.
type agentSummary struct {
	Agent              string  `json:"agent"`
	Landmarks          int     `json:"landmarks"`
	Connections        int     `json:"connections"`
	Synapses           int     `json:"synapses"`
	GridCells          int     `json:"grid_cells"`
	PositionConfidence float64 `json:"position_confidence"`
	ExplorationRate    float64 `json:"exploration_rate"`
	StrategyConfidence float64 `json:"strategy_confidence"`
	Events             int     `json:"events"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a random-walk cognition simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			configPath, _ := cmd.Flags().GetString("config")

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			applyRunFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			log := logging.NewLogger(cfg.Logging.Level, os.Stderr)

			seed := cfg.Simulation.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			var sink events.Sink
			memory := events.NewMemorySink(0)
			sink = memory
			if cfg.Simulation.EventDB != "" {
				db, err := events.NewSQLiteSink(cfg.Simulation.EventDB)
				if err != nil {
					return fmt.Errorf("opening event database: %w", err)
				}
				defer db.Close()
				sink = events.NewMultiSink(memory, db)
			}

			summaries := make([]agentSummary, 0, cfg.Simulation.Agents)
			for i := 0; i < cfg.Simulation.Agents; i++ {
				id := fmt.Sprintf("agent-%d", i+1)
				rng := rand.New(rand.NewSource(seed + int64(i)))
				cog := agent.New(id, cfg.AgentConfig(), worldPlaceCells(), rng, sink, log)

				summaries = append(summaries, runAgent(cog, memory, rng, cfg))
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(summaries)
			}
			for _, s := range summaries {
				fmt.Fprintf(cmd.OutOrStdout(),
					"%s: %d landmarks, %d connections, %d synapses, %d grid cells, confidence %.2f, exploration %.2f\n",
					s.Agent, s.Landmarks, s.Connections, s.Synapses, s.GridCells,
					s.PositionConfidence, s.ExplorationRate)
			}
			return nil
		},
	}

	cmd.Flags().Int("ticks", 0, "Number of simulation ticks (overrides config)")
	cmd.Flags().Int("agents", 0, "Number of agents (overrides config)")
	cmd.Flags().Int64("seed", 0, "RNG seed, 0 for time-based (overrides config)")
	cmd.Flags().String("db", "", "SQLite path for persisting events (overrides config)")

	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetInt("ticks"); v > 0 {
		cfg.Simulation.Ticks = v
	}
	if v, _ := cmd.Flags().GetInt("agents"); v > 0 {
		cfg.Simulation.Agents = v
	}
	if v, _ := cmd.Flags().GetInt64("seed"); v != 0 {
		cfg.Simulation.Seed = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Simulation.EventDB = v
	}
}

// worldPlaceCells lays out place fields on a fixed grid covering the
// simulated arena.
func worldPlaceCells() []models.PlaceCell {
	var cells []models.PlaceCell
	for x := 0.0; x <= 400; x += 40 {
		for y := 0.0; y <= 400; y += 40 {
			cells = append(cells, models.PlaceCell{
				Center:        vecmath.Vec2{X: x, Y: y},
				Radius:        60,
				MaxActivation: 1.0,
			})
		}
	}
	return cells
}

func runAgent(cog *agent.Cognition, memory *events.MemorySink, rng *rand.Rand, cfg *config.Config) agentSummary {
	now := time.Now()
	dt := cfg.Simulation.Dt
	pos := vecmath.Vec2{X: 200, Y: 200}

	for i := 0; i < cfg.Simulation.Ticks; i++ {
		pos.X = vecmath.Clamp(pos.X+(rng.Float64()*2-1)*2, 0, 400)
		pos.Y = vecmath.Clamp(pos.Y+(rng.Float64()*2-1)*2, 0, 400)
		now = now.Add(time.Duration(dt * float64(time.Second)))
		cog.Tick(pos, now, dt)
	}

	snap := cog.Snapshot()
	return agentSummary{
		Agent:              snap.Agent,
		Landmarks:          len(snap.Landmarks),
		Connections:        len(snap.Connections),
		Synapses:           snap.SynapseCount,
		GridCells:          snap.GridCells,
		PositionConfidence: snap.PositionConfidence,
		ExplorationRate:    snap.ExplorationRate,
		StrategyConfidence: snap.StrategyConfidence,
		Events:             len(memory.Events(events.Filter{Agent: snap.Agent})),
	}
}
