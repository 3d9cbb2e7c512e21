package plan

import (
	"errors"
	"testing"
)

func TestCheckOrder(t *testing.T) {
	g := BuildGraph(diamond(), "A")
	if err := CheckOrder(g, ScheduleLevels(g)); err != nil {
		t.Fatalf("valid order rejected: %v", err)
	}
	cases := map[string]ExecutionOrder{
		"cyclic":     {Status: OrderCyclic},
		"missing":    {Status: OrderAcyclic, Levels: [][]string{{"D"}, {"B"}, {"A"}}},
		"duplicate":  {Status: OrderAcyclic, Levels: [][]string{{"D"}, {"B", "C"}, {"C", "A"}}},
		"misordered": {Status: OrderAcyclic, Levels: [][]string{{"D"}, {"B", "C", "A"}}},
		"foreign":    {Status: OrderAcyclic, Levels: [][]string{{"D", "Z"}, {"B", "C"}, {"A"}}},
		"empty":      {Status: OrderAcyclic, Levels: [][]string{{"D"}, {}, {"B", "C"}, {"A"}}},
	}
	for name, order := range cases {
		if err := CheckOrder(g, order); !errors.Is(err, ErrInvalidOrder) {
			t.Fatalf("%s: expected ErrInvalidOrder, got %v", name, err)
		}
	}
}
