package graph_test

import (
	"fmt"

	"github.com/matzehuels/graphsketch/pkg/graph"
)

func ExampleSnapshot_InsertEdge() {
	s := graph.Empty()
	s, a := s.InsertNode(graph.Point{X: 10, Y: 10})
	s, b := s.InsertNode(graph.Point{X: 50, Y: 50})

	s, _, _ = s.InsertEdge(a, b, graph.DefaultWeight)
	_, _, err := s.InsertEdge(a, b, graph.DefaultWeight)
	fmt.Println("duplicate:", err)

	s, _, _ = s.InsertEdge(b, a, graph.DefaultWeight)
	fmt.Println("edges:", s.EdgeCount())
	fmt.Println("curved:", s.HasReverse(a, b))
	// Output:
	// duplicate: duplicate edge
	// edges: 2
	// curved: true
}

func ExampleIndex_Pairs() {
	s, _ := graph.Empty().InsertNode(graph.Point{})
	s, _ = s.InsertNode(graph.Point{})
	s, _ = s.InsertNode(graph.Point{})
	s, _, _ = s.InsertEdge(2, 0, 1)
	s, _, _ = s.InsertEdge(0, 1, 1)

	for _, p := range s.Index().Pairs() {
		fmt.Printf("%d→%d\n", p.U, p.V)
	}
	// Output:
	// 0→1
	// 2→0
}
