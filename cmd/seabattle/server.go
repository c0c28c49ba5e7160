package main

import (
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"

	"github.com/mrsobakin/seabattle/internal/console"
	"github.com/mrsobakin/seabattle/internal/game/field"
	"github.com/mrsobakin/seabattle/internal/game/placement"
	"github.com/mrsobakin/seabattle/internal/judge"
)

const (
	ErrBadFormat string = "bad_format"
	ErrBusy      string = "busy"
	ErrUnknown   string = "unknown"
)

type server struct {
	judge   *judge.Judge
	jobs    *semaphore.Weighted
	maxJobs int64
	seed    func() int64
	logger  *log.Logger
}

func newServer(j *judge.Judge, maxJobs int, seed func() int64, logger *log.Logger) *server {
	return &server{
		judge:   j,
		jobs:    semaphore.NewWeighted(int64(maxJobs)),
		maxJobs: int64(maxJobs),
		seed:    seed,
		logger:  logger,
	}
}

func (s *server) seedOr(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return s.seed()
}

func rows(v field.View) []string {
	return strings.Split(console.Render(v), "\n")
}

func (s *server) handleBoard(c *gin.Context) {
	var params struct {
		Seed *int64 `json:"seed"`
	}

	if !tryBindParams(c, &params) {
		return
	}

	seed := s.seedOr(params.Seed)

	planner := placement.New(rand.New(rand.NewSource(seed)))
	planner.Logger = s.logger

	grid := planner.Generate(s.judge.Conf)

	ships := make([]map[string]any, 0, s.judge.Conf.ShipCount())
	for _, ship := range grid.Ships() {
		ships = append(ships, map[string]any{
			"row":         ship.Bow.Row,
			"col":         ship.Bow.Col,
			"size":        ship.Size,
			"orientation": ship.Orientation.String(),
		})
	}

	c.JSON(200, map[string]any{
		"seed":  seed,
		"ships": ships,
		"rows":  rows(grid),
	})
}

func (s *server) handleMatch(c *gin.Context) {
	var params struct {
		Seed *int64 `json:"seed"`
	}

	if !tryBindParams(c, &params) {
		return
	}

	if !s.acquire(c, 1) {
		return
	}
	defer s.jobs.Release(1)

	seed := s.seedOr(params.Seed)
	matchId := uuid.NewString()

	first, second := s.judge.RandomSides(seed)

	start := time.Now()
	verdict := s.judge.Judge(c.Request.Context(), first, second)

	s.logger.Debug("match played", "id", matchId, "seed", seed, "took", time.Since(start))

	second.Field.SetHidden(false)

	c.JSON(200, map[string]any{
		"match_id": matchId,
		"seed":     seed,
		"verdict":  verdict,
		"boards": map[string]any{
			"first":  rows(first.Field),
			"second": rows(second.Field),
		},
	})
}

func (s *server) handleSimulate(c *gin.Context) {
	var params struct {
		Games    int    `json:"games" binding:"required,min=1,max=10000"`
		Seed     *int64 `json:"seed"`
		Parallel int64  `json:"parallel" binding:"min=0"`
	}

	if !tryBindParams(c, &params) {
		return
	}

	weight := params.Parallel
	if weight == 0 || weight > s.maxJobs {
		weight = s.maxJobs
	}

	if !s.acquire(c, weight) {
		return
	}
	defer s.jobs.Release(weight)

	seed := s.seedOr(params.Seed)

	summary, err := s.judge.Series(c.Request.Context(), params.Games, seed, int(weight))
	if err != nil {
		c.JSON(500, map[string]any{
			"error":   ErrUnknown,
			"details": err.Error(),
		})
		return
	}

	c.JSON(200, map[string]any{
		"seed":    seed,
		"summary": summary,
	})
}

func (s *server) acquire(c *gin.Context, n int64) bool {
	if err := s.jobs.Acquire(c.Request.Context(), n); err != nil {
		c.JSON(503, map[string]any{
			"error":   ErrBusy,
			"details": err.Error(),
		})
		return false
	}
	return true
}

func (s *server) RegisterEndpoints(e *gin.Engine) {
	e.POST("/board", s.handleBoard)
	e.POST("/run_match", s.handleMatch)
	e.POST("/simulate", s.handleSimulate)
}

func (a *app) newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve computer matches over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			}

			if a.logger.GetLevel() > log.DebugLevel {
				gin.SetMode(gin.ReleaseMode)
			}

			e := gin.New()
			e.Use(requestLogger(a.logger), gin.Recovery())

			newServer(a.newJudge(), a.cfg.MaxJobs, a.newSeed, a.logger).RegisterEndpoints(e)

			a.logger.Info("listening", "addr", a.cfg.Addr)
			return e.Run(a.cfg.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "address to listen on")

	return cmd
}
