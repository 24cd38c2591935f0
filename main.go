package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type pieceDTO struct {
	// Cells are [x,y] pairs, the order the vision collaborator emits.
	Cells [][2]int `json:"cells"`
}

type solveRequest struct {
	Grid     [][]bool   `json:"grid,omitempty"`
	GridFlat []bool     `json:"grid_flat,omitempty"`
	Pieces   []pieceDTO `json:"pieces"`
	TopN     int        `json:"top_n,omitempty"`
}

type moveDTO struct {
	PieceIndex   int      `json:"piece_index"`
	ShapeName    string   `json:"shape_name"`
	Anchor       Cell     `json:"anchor"`
	Cells        []Cell   `json:"cells"`
	LinesCleared int      `json:"lines_cleared"`
	Score        float64  `json:"score"`
	Board        [][]bool `json:"board"`
}

type solveResponse struct {
	Best        *moveDTO  `json:"best,omitempty"`
	Top         []moveDTO `json:"top,omitempty"`
	NoLegalMove bool      `json:"no_legal_move"`
	Candidates  int       `json:"candidates"`
	DurationMs  int64     `json:"duration_ms"`
}

type statusResponse struct {
	HasPuzzle   bool      `json:"has_puzzle"`
	Grid        [][]bool  `json:"grid,omitempty"`
	Pieces      []Shape   `json:"pieces,omitempty"`
	Best        *moveDTO  `json:"best,omitempty"`
	NoLegalMove bool      `json:"no_legal_move"`
	Candidates  int       `json:"candidates"`
	SolveCount  int       `json:"solve_count"`
	Config      Config    `json:"config"`
}

type shapesResponse struct {
	Shapes []Shape `json:"shapes"`
}

type matchRequest struct {
	Cells [][2]int `json:"cells"`
}

type matchResponse struct {
	Name string `json:"name"`
}

func main() {
	controller := NewSolveController()
	hub := NewAnalysisHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx.Done())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/solve", func(w http.ResponseWriter, r *http.Request) {
		var payload solveRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		grid, pieces, err := decodePuzzle(payload)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		result, err := controller.Solve(grid, pieces, payload.TopN)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		hub.Publish(analysisResultPayload("solve", result, controller.SolveCount()))
		writeJSON(w, http.StatusOK, solveResponseFromResult(result))
	})

	r.Get("/api/shapes", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, shapesResponse{Shapes: StandardShapes()})
	})

	r.Post("/api/shapes/match", func(w http.ResponseWriter, r *http.Request) {
		var payload matchRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		shape, err := ShapeFromPoints(payload.Cells)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, matchResponse{Name: MatchShapeName(shape.Cells)})
	})

	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, GetConfig())
	})

	r.Post("/api/config", func(w http.ResponseWriter, r *http.Request) {
		var payload Config
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		configStore.Update(payload)
		writeJSON(w, http.StatusOK, GetConfig())
	})

	r.Get("/ws/analysis", func(w http.ResponseWriter, r *http.Request) {
		serveAnalysisWS(hub, controller, w, r)
	})

	server := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Println("backend listening on :8080")
	select {
	case <-sigCtx.Done():
		log.Printf("[backend] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			log.Printf("[backend] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[backend] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[backend] forced close failed: %v", closeErr)
		}
	}
	cancel()
}

// decodePuzzle turns a solve request into validated core inputs. The
// grid may arrive as rows or as the vision collaborator's flat list.
func decodePuzzle(payload solveRequest) (Grid, []Shape, error) {
	var grid Grid
	var err error
	switch {
	case len(payload.Grid) > 0:
		grid, err = GridFromRows(payload.Grid)
	case len(payload.GridFlat) > 0:
		grid, err = GridFromFlat(payload.GridFlat, GetConfig().GridSize)
	default:
		err = ErrInvalidGrid
	}
	if err != nil {
		return Grid{}, nil, err
	}
	pieces := make([]Shape, 0, len(payload.Pieces))
	for _, piece := range payload.Pieces {
		shape, err := ShapeFromPoints(piece.Cells)
		if err != nil {
			return Grid{}, nil, err
		}
		shape.Name = MatchShapeName(shape.Cells)
		pieces = append(pieces, shape)
	}
	return grid, pieces, nil
}

func moveToDTO(move Move) moveDTO {
	return moveDTO{
		PieceIndex:   move.PieceIndex,
		ShapeName:    MatchShapeName(move.Cells),
		Anchor:       move.Anchor,
		Cells:        move.Cells,
		LinesCleared: move.LinesCleared,
		Score:        move.Score,
		Board:        move.Result.Rows(),
	}
}

func movesToDTO(moves []Move) []moveDTO {
	dtos := make([]moveDTO, 0, len(moves))
	for _, move := range moves {
		dtos = append(dtos, moveToDTO(move))
	}
	return dtos
}

func solveResponseFromResult(result SolveResult) solveResponse {
	resp := solveResponse{
		NoLegalMove: !result.HasBest,
		Candidates:  result.Candidates,
		DurationMs:  result.Duration.Milliseconds(),
	}
	if result.HasBest {
		best := moveToDTO(result.Best)
		resp.Best = &best
		resp.Top = movesToDTO(result.Top)
	}
	return resp
}

func controllerStatus(controller *SolveController) statusResponse {
	status := statusResponse{
		SolveCount: controller.SolveCount(),
		Config:     GetConfig(),
	}
	grid, pieces, ok := controller.Puzzle()
	if !ok {
		return status
	}
	status.HasPuzzle = true
	status.Grid = grid.Rows()
	status.Pieces = pieces
	result, _ := controller.LastResult()
	status.NoLegalMove = !result.HasBest
	status.Candidates = result.Candidates
	if result.HasBest {
		best := moveToDTO(result.Best)
		status.Best = &best
	}
	return status
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
