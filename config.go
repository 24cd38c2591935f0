package main

import "sync"

type Config struct {
	GridSize       int             `json:"grid_size"`
	SolverWorkers  int             `json:"solver_workers"`
	SolverTopMoves int             `json:"solver_top_moves"`
	SolverMaxDepth int             `json:"solver_max_depth"`
	LogSearchStats bool            `json:"log_search_stats"`
	MaxPieces      int             `json:"max_pieces"`
	Heuristics     HeuristicConfig `json:"heuristics"`
}

type HeuristicConfig struct {
	LineClear     float64 `json:"line_clear"`
	HolePenalty   float64 `json:"hole_penalty"`
	Coverage      float64 `json:"coverage"`
	NearComplete  float64 `json:"near_complete"`
	Fragmentation float64 `json:"fragmentation"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		GridSize: 8,

		// Workers > 1 parallelizes candidate evaluation; the merge is
		// deterministic either way.
		SolverWorkers:  1,
		SolverTopMoves: 5,

		// Lookahead beyond a single ply is not implemented; the solver
		// evaluates the board one move deep regardless of this value.
		SolverMaxDepth: 1,

		LogSearchStats: false,
		MaxPieces:      3,

		Heuristics: HeuristicConfig{
			LineClear:     100.0,
			HolePenalty:   -10.0,
			Coverage:      1.0,
			NearComplete:  5.0,
			Fragmentation: 5.0,
		},
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
