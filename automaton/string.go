package automaton

import (
	"fmt"

	"github.com/dekarrin/finlang/internal/util"
	"github.com/dekarrin/rosed"
)

// String renders d as a state/transition table, state ids down the rows
// and alphabet symbols across the columns, for debugging and test
// failure output. Grounded on the teacher's slrTable.String, which lays
// out its own transition table the same way via rosed.InsertTableOpts.
func (d DFA[S]) String() string {
	syms := util.OrderedOf(d.Alphabet())

	headers := make([]string, 0, len(syms)+2)
	headers = append(headers, "state")
	for _, sym := range syms {
		headers = append(headers, fmt.Sprintf("%v", sym))
	}
	headers = append(headers, "final")

	data := [][]string{headers}
	for s := 0; s < len(d.states); s++ {
		row := make([]string, 0, len(syms)+2)

		label := fmt.Sprintf("%d", s)
		if s == d.initial {
			label = "->" + label
		}
		row = append(row, label)

		for _, sym := range syms {
			cell := ""
			if to, ok := d.Step(s, sym); ok {
				cell = fmt.Sprintf("%d", to)
			}
			row = append(row, cell)
		}

		finalCell := ""
		if d.IsFinal(s) {
			finalCell = "*"
		}
		row = append(row, finalCell)

		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 100, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
