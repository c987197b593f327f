package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glasswing-dev/spawnpool/internal/bootstrap"
	"github.com/glasswing-dev/spawnpool/pkg/config"
	"github.com/glasswing-dev/spawnpool/pkg/logger"
	"github.com/glasswing-dev/spawnpool/pkg/scene"
	"github.com/glasswing-dev/spawnpool/pkg/spawnpool"
	"github.com/glasswing-dev/spawnpool/pkg/transform"
)

var version = "0.1.0"

// simStats summarizes a simulation run for JSON output.
type simStats struct {
	Cycles       int    `json:"cycles"`
	Prefabs      int    `json:"prefabs"`
	Spawns       uint64 `json:"spawns"`
	Recycles     uint64 `json:"recycles"`
	FinalPooled  int    `json:"final_pooled"`
	FinalSpawned int    `json:"final_spawned"`
	SceneNodes   int    `json:"scene_nodes"`
}

// poolStats reports per-prefab pool occupancy after warm-up.
type poolStats struct {
	Mode        string      `json:"mode"`
	Pools       []poolEntry `json:"pools"`
	TotalPooled int         `json:"total_pooled"`
}

type poolEntry struct {
	Prefab string `json:"prefab"`
	Pooled int    `json:"pooled"`
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "spawnpool",
		Short: "spawnpool - runtime object-recycling pool for scene objects",
		Long: `spawnpool maintains per-prefab free lists of inactive instances and a
live set of spawned instances, reusing objects instead of destroying and
recreating them.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("spawnpool v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	var configFile string
	var cycles int
	var churn int
	var seed int64
	var jsonOutput bool

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a spawn/recycle churn simulation against an in-memory scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(configFile, cycles, churn, seed, jsonOutput)
		},
	}
	simulateCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file with warmup pools")
	simulateCmd.Flags().IntVarP(&cycles, "cycles", "n", 100, "number of churn cycles")
	simulateCmd.Flags().IntVar(&churn, "churn", 8, "max spawns per prefab per cycle")
	simulateCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	simulateCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit stats as JSON")
	root.AddCommand(simulateCmd)

	var poolsConfigFile string
	var poolsJSON bool

	poolsCmd := &cobra.Command{
		Use:   "pools",
		Short: "Warm the configured pools and report per-prefab occupancy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPools(poolsConfigFile, poolsJSON)
		},
	}
	poolsCmd.Flags().StringVarP(&poolsConfigFile, "config", "c", "", "YAML config file with warmup pools")
	poolsCmd.Flags().BoolVar(&poolsJSON, "json", false, "emit stats as JSON")
	root.AddCommand(poolsCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadOrDemoConfig loads the given config file, or falls back to a demo
// configuration that warms a couple of pools up front.
func loadOrDemoConfig(configFile string) (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	cfg := config.Default()
	cfg.Warmup.Mode = config.WarmupModeLoad
	cfg.Warmup.Pools = []config.PoolSpec{
		{Prefab: "bullet", Size: 32},
		{Prefab: "explosion", Size: 8},
	}
	return cfg, nil
}

// buildRegistry assembles a scene world with one prefab node per configured
// warm-up pool and a registry bootstrapped from the config, firing whichever
// lifecycle hook the warm-up mode selects.
func buildRegistry(cfg *config.Config, sceneName string) (*scene.World, *spawnpool.Registry[*scene.Node], []*scene.Node) {
	world := scene.NewWorld(sceneName)
	holder := world.NewNode("recycled")
	registry := spawnpool.New[*scene.Node](world,
		spawnpool.WithHolder(holder),
		spawnpool.WithLogger[*scene.Node](logger.With(zap.String("component", "spawnpool"))),
	)

	prefabs := make([]*scene.Node, 0, len(cfg.Warmup.Pools))
	for _, spec := range cfg.Warmup.Pools {
		prefabs = append(prefabs, world.NewNode(spec.Prefab))
	}

	boot := bootstrap.New(registry, cfg.Warmup, func(name string) (*scene.Node, bool) {
		n := world.Find(name)
		return n, n != nil
	})
	boot.OnLoad()
	boot.OnStart()
	if boot.Mode() == config.WarmupModeManual {
		boot.Trigger()
	}
	return world, registry, prefabs
}

func runSimulation(configFile string, cycles, churn int, seed int64, jsonOutput bool) error {
	cfg, err := loadOrDemoConfig(configFile)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	world, registry, prefabs := buildRegistry(cfg, "simulation")

	rng := rand.New(rand.NewSource(seed))
	stats := simStats{Cycles: cycles, Prefabs: len(prefabs)}
	live := make([]*scene.Node, 0, 256)

	for cycle := 0; cycle < cycles; cycle++ {
		for _, prefab := range prefabs {
			n := rng.Intn(churn + 1)
			for i := 0; i < n; i++ {
				inst, err := registry.Spawn(prefab, spawnpool.SpawnOptions[*scene.Node]{
					Position: transform.Vec3{
						X: rng.Float64() * 100,
						Y: rng.Float64() * 100,
					},
				})
				if err != nil {
					return err
				}
				live = append(live, inst)
				stats.Spawns++
			}
		}

		// Recycle roughly half of the live instances each cycle.
		keep := live[:0]
		for _, inst := range live {
			if rng.Intn(2) == 0 {
				registry.Recycle(inst)
				stats.Recycles++
			} else {
				keep = append(keep, inst)
			}
		}
		live = keep
	}

	registry.RecycleAll()
	stats.Recycles += uint64(len(live))
	stats.FinalPooled = registry.CountAllPooled()
	for _, prefab := range prefabs {
		stats.FinalSpawned += registry.CountSpawned(prefab)
	}
	stats.SceneNodes = world.Len()

	if jsonOutput {
		out, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Simulation complete: %s cycles, %s prefabs\n",
		humanize.Comma(int64(stats.Cycles)), humanize.Comma(int64(stats.Prefabs)))
	fmt.Printf("  spawns:       %s\n", humanize.Comma(int64(stats.Spawns)))
	fmt.Printf("  recycles:     %s\n", humanize.Comma(int64(stats.Recycles)))
	fmt.Printf("  final pooled: %s\n", humanize.Comma(int64(stats.FinalPooled)))
	fmt.Printf("  scene nodes:  %s\n", humanize.Comma(int64(stats.SceneNodes)))
	return nil
}

// gatherPoolStats warms the configured pools against a fresh scene and
// reports per-prefab free-list occupancy.
func gatherPoolStats(cfg *config.Config) *poolStats {
	_, registry, prefabs := buildRegistry(cfg, "pools")

	stats := &poolStats{
		Mode:  cfg.Warmup.Mode.String(),
		Pools: make([]poolEntry, 0, len(prefabs)),
	}
	for _, prefab := range prefabs {
		stats.Pools = append(stats.Pools, poolEntry{
			Prefab: prefab.Name(),
			Pooled: registry.CountPooled(prefab),
		})
	}
	stats.TotalPooled = registry.CountAllPooled()
	return stats
}

func runPools(configFile string, jsonOutput bool) error {
	cfg, err := loadOrDemoConfig(configFile)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	stats := gatherPoolStats(cfg)

	if jsonOutput {
		out, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Warmed %s pools (%s mode)\n",
		humanize.Comma(int64(len(stats.Pools))), stats.Mode)
	for _, entry := range stats.Pools {
		fmt.Printf("  %-12s %s\n", entry.Prefab, humanize.Comma(int64(entry.Pooled)))
	}
	fmt.Printf("  total pooled: %s\n", humanize.Comma(int64(stats.TotalPooled)))
	return nil
}
