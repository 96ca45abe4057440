package reachability

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/reach/internal/config"
	"github.com/xonecas/reach/internal/slice"
	"github.com/xonecas/reach/internal/treesitter"
)

// DirectionAuto lets the question under the caret pick the direction.
const DirectionAuto = "auto"

// Handler runs the reachability action for a caret position.
type Handler struct {
	MaxDepth  int
	Strategy  string // hydration strategy name
	Direction string // "auto", "forward" or "backward"
}

// NewHandler builds a handler from the slice configuration.
func NewHandler(cfg config.SliceConfig) *Handler {
	return &Handler{
		MaxDepth:  cfg.MaxDepth,
		Strategy:  cfg.Strategy,
		Direction: cfg.Direction,
	}
}

// Entry is one hydrated slice node.
type Entry struct {
	Label string
	Text  string
	Kind  string
	Line  int
	Owner string
}

// Report is the result of one Invoke.
type Report struct {
	Path      string
	Line      int
	Language  string
	Question  Question
	Direction treesitter.Direction
	Strategy  string
	MaxDepth  int
	Entries   []Entry // collection order, root first
}

// Invoke slices the data flow of the identifier at line:col in path, bounds
// it to MaxDepth hops and describes every collected statement. Each label
// is logged as it is produced.
func (h *Handler) Invoke(ctx context.Context, path string, line, col int) (*Report, error) {
	f, err := treesitter.OpenFile(ctx, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	id, err := f.IdentAt(line, col)
	if err != nil {
		if errors.Is(err, treesitter.ErrNoExpression) {
			log.Warn().Str("path", path).Int("line", line).Int("col", col).Msg("failed to get relevant expression under cursor")
		}
		return nil, err
	}

	q := Classify(id)
	dir, err := h.direction(q)
	if err != nil {
		return nil, err
	}
	hydrator, err := slice.LookupHydrator(h.Strategy, f.Lang.Name)
	if err != nil {
		return nil, err
	}

	root, err := f.Slice(id, dir)
	if err != nil {
		return nil, err
	}
	nodes, err := slice.Collect(root, h.MaxDepth)
	if err != nil {
		return nil, fmt.Errorf("collect slice: %w", err)
	}
	labels := slice.Hydrate(hydrator, nodes)

	rep := &Report{
		Path:      path,
		Line:      line,
		Language:  f.Lang.Name,
		Question:  q,
		Direction: dir,
		Strategy:  hydrator.Name(),
		MaxDepth:  h.MaxDepth,
	}
	for _, n := range nodes {
		e := Entry{Label: labels[n], Text: n.Text()}
		if sn, ok := n.(*treesitter.SliceNode); ok {
			src := sn.Source()
			e.Kind, e.Line, e.Owner = src.Kind, src.Line, src.Owner()
		}
		log.Info().Str("owner", e.Owner).Int("line", e.Line).Msgf("SLICE: %s", e.Label)
		rep.Entries = append(rep.Entries, e)
	}
	return rep, nil
}

// Ask returns the question for the identifier at line:col in path without
// building a slice.
func Ask(ctx context.Context, path string, line, col int) (Question, error) {
	f, err := treesitter.OpenFile(ctx, path)
	if err != nil {
		return Question{}, err
	}
	defer f.Close()

	id, err := f.IdentAt(line, col)
	if err != nil {
		return Question{}, err
	}
	return Classify(id), nil
}

func (h *Handler) direction(q Question) (treesitter.Direction, error) {
	if h.Direction == "" || h.Direction == DirectionAuto {
		return q.Direction(), nil
	}
	return treesitter.ParseDirection(h.Direction)
}
