// File: internal/render/summary.go
// Brief: Machine-readable plan summaries.

package render

import (
	"encoding/json"
	"io"

	"github.com/example/tplan/internal/plan"
	"sigs.k8s.io/yaml"
)

type CycleSummary struct {
	Stuck []string `json:"stuck"`
	Path  []string `json:"path,omitempty"`
}

type Summary struct {
	Root         string              `json:"root"`
	Status       string              `json:"status"`
	ClosureMode  string              `json:"closureMode"`
	Targets      int                 `json:"targets"`
	Levels       [][]string          `json:"levels,omitempty"`
	Cycle        *CycleSummary       `json:"cycle,omitempty"`
	Closure      map[string][]string `json:"closure,omitempty"`
	ClosureError string              `json:"closureError,omitempty"`
}

func BuildSummary(p *plan.Plan) Summary {
	order := p.Order()
	s := Summary{
		Root:        p.Root(),
		Status:      order.Status.String(),
		ClosureMode: p.ClosureMode().String(),
		Targets:     p.Graph().Len(),
		Levels:      order.Levels,
	}
	if order.Status == plan.OrderCyclic {
		s.Cycle = &CycleSummary{Stuck: order.Stuck, Path: order.CyclePath}
	}
	closure, err := p.Closure()
	if err != nil {
		s.ClosureError = err.Error()
		return s
	}
	s.Closure = make(map[string][]string, len(closure))
	for id, set := range closure {
		s.Closure[id] = set.Sorted()
	}
	return s
}

func WriteJSON(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func WriteYAML(w io.Writer, s Summary) error {
	raw, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	_, err = w.Write(raw)
	return err
}
