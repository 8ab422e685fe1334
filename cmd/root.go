package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cortexsim/engine/engine"
	"github.com/cortexsim/engine/cellgroup"
	"github.com/cortexsim/engine/dist"
	"github.com/cortexsim/engine/recipe"
	"github.com/cortexsim/engine/threadpool"
)

var (
	configPath string
	logLevel   string

	numCells     int
	ringWeight   float64
	ringDelay    float64
	driveRate    float64
	seed         int64
	horizon      float64
	dt           float64
	threshold    float64
	tau          float64
	refractory   float64
)

var rootCmd = &cobra.Command{
	Use:   "cortexsim",
	Short: "Distributed simulator for networks of compartmental and point neuron models",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a ring network simulation and report spike statistics",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if numCells < 2 {
			logrus.Fatalf("--num-cells must be >= 2 (one driver plus at least one integrate-and-fire cell)")
		}

		var cfg *recipe.Config
		if configPath != "" {
			cfg, err = recipe.LoadConfig(configPath)
			if err != nil {
				logrus.Fatalf("loading run config: %v", err)
			}
			dt = cfg.DT
		}

		r := buildRingRecipe(numCells, ringWeight, ringDelay, driveRate, seed, threshold, tau, refractory)

		startTime := time.Now()

		driverGID := engine.GID(0)
		lifGIDs := make([]engine.GID, 0, numCells-1)
		for g := 1; g < numCells; g++ {
			lifGIDs = append(lifGIDs, engine.GID(g))
		}

		driverGen := r.Generators[driverGID][0]
		driverGroup := cellgroup.NewSpikeSourceGroup(map[engine.GID]engine.Generator{driverGID: driverGen})

		lifGroup, err := recipe.BuildLIFGroup(r, lifGIDs)
		if err != nil {
			logrus.Fatalf("building lif group: %v", err)
		}

		groups := []engine.Group{driverGroup, lifGroup}
		// The driver group owns group index 0, the LIF group index 1; every
		// connection in this ring targets a LIF cell, so LocalGroup is
		// always 1.
		for g := range r.Conns {
			for i := range r.Conns[g] {
				r.Conns[g][i].LocalGroup = 1
			}
		}

		allGIDs := append([]engine.GID{driverGID}, lifGIDs...)
		ctx := dist.NewLocalContext()
		comm, err := engine.NewCommunicator(allGIDs, r, func(engine.GID) int { return 0 }, 1, ctx)
		if err != nil {
			logrus.Fatalf("building communicator: %v", err)
		}

		pool := threadpool.New(0)
		eng, err := engine.New(groups, comm, ctx, pool, dt)
		if err != nil {
			logrus.Fatalf("constructing engine: %v", err)
		}

		logrus.Infof("cortexsim: running ring of %d cells (1 driver + %d integrate-and-fire) for %.3fms at dt=%.4fms",
			numCells, numCells-1, horizon, dt)

		if err := eng.Run(horizon); err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}

		elapsed := time.Since(startTime)
		logrus.Infof("simulation complete in %v wall-clock, %d spikes in final epoch", elapsed, len(eng.CurrentSpikes()))
	},
}

// buildRingRecipe builds a StaticRecipe for a ring network: gid 0 is a
// Poisson spike source, gids 1..n-1 are LIF cells wired in a ring
// (gid i excites gid i+1, with the last wrapping back to gid 1), driven
// by gid 0's output onto gid 1.
func buildRingRecipe(n int, weight, delay, rateKHz float64, seed int64, thresh, tau, tref float64) *recipe.StaticRecipe {
	r := recipe.NewStaticRecipe(n)

	driverGID := engine.GID(0)
	r.Kinds[driverGID] = engine.CellKindSpikeSource
	gen := &engine.PoissonGenerator{
		Target: engine.CellAddress{GID: driverGID, LID: 0},
		Rate:   rateKHz, T0: 0, TStop: 1e18, Weight: weight, Seed: seed,
	}
	r.Generators[driverGID] = []engine.Generator{gen}
	r.Conns[engine.GID(1)] = append(r.Conns[engine.GID(1)], engine.Connection{
		Source: engine.CellAddress{GID: driverGID, LID: 0},
		Dest:   engine.CellAddress{GID: engine.GID(1), LID: 0},
		Weight: weight, Delay: delay,
	})

	for g := 1; g < n; g++ {
		gid := engine.GID(g)
		r.Kinds[gid] = engine.CellKindLIF
		r.Descs[gid] = &recipe.LIFCellDescription{Vrest: -65, Vreset: -70, Threshold: thresh, Tau: tau, Tref: tref}

		next := g + 1
		if next >= n {
			next = 1
		}
		r.Conns[engine.GID(next)] = append(r.Conns[engine.GID(next)], engine.Connection{
			Source: engine.CellAddress{GID: gid, LID: 0},
			Dest:   engine.CellAddress{GID: engine.GID(next), LID: 0},
			Weight: weight, Delay: delay,
		})
	}
	return r
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML run configuration (overrides --dt if set)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().IntVar(&numCells, "num-cells", 8, "total cells in the ring (1 spike-source driver plus N-1 integrate-and-fire cells)")
	runCmd.Flags().Float64Var(&ringWeight, "weight", 1.0, "synaptic weight applied on every ring connection")
	runCmd.Flags().Float64Var(&ringDelay, "delay", 1.0, "ms delay on every ring connection")
	runCmd.Flags().Float64Var(&driveRate, "drive-rate", 0.05, "driver Poisson rate in kHz (events per ms)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "seed for the driver's Poisson process")
	runCmd.Flags().Float64Var(&horizon, "horizon", 1000, "simulation horizon in ms")
	runCmd.Flags().Float64Var(&dt, "dt", 0.1, "integration step in ms")
	runCmd.Flags().Float64Var(&threshold, "threshold", -50, "LIF spike threshold in mV")
	runCmd.Flags().Float64Var(&tau, "tau", 10, "LIF membrane time constant in ms")
	runCmd.Flags().Float64Var(&refractory, "refractory", 2, "LIF refractory period in ms")

	rootCmd.AddCommand(runCmd)
}
