// Package demo fills a grid with the sample order sheet shown by the
// matrixgl and matrixterm commands.
package demo

import (
	"fmt"
	"strconv"

	"github.com/go-theft-auto/matrix"
)

// Statuses are the choices of the status column's list editor.
var Statuses = []string{"open", "packed", "shipped", "closed"}

const (
	colItem = iota + 1
	colQty
	colPrice
	colStatus
	colTotal
)

var items = []string{
	"bolts", "nuts", "washers", "brackets", "hinges", "screws",
	"rivets", "springs", "gaskets", "clamps", "pins", "anchors",
}

// Populate sizes g for the sheet and writes titles and rows. It keeps at
// least as many rows and columns as g already has.
func Populate(g *matrix.Grid) {
	g.Update(func() {
		g.SetCols(max(g.Cols(), colTotal))
		g.SetRows(max(g.Rows(), len(items)))
		g.SetColumnTitles("Item", "Qty", "Price", "Status", "Total")
		g.SetColumnStyle(colQty, matrix.Style{}.WithAlign(matrix.AlignRight))
		g.SetColumnStyle(colPrice, matrix.Style{}.WithAlign(matrix.AlignRight))
		g.SetColumnStyle(colTotal, matrix.Style{}.WithAlign(matrix.AlignRight))

		for i, name := range items {
			row := i + 1
			g.SetValue(row, 0, strconv.Itoa(row))
			g.SetValue(row, colItem, name)
			g.SetValue(row, colQty, strconv.Itoa((i*7)%23+1))
			g.SetValue(row, colPrice, fmt.Sprintf("%.2f", float64(i%5)+0.25*float64(i%4)+0.5))
			g.SetValue(row, colStatus, Statuses[i%len(Statuses)])
			updateTotal(g, row)
		}
	})
}

// Callbacks returns the sheet's behavior: numeric validation for
// quantity and price, a list editor for status and a read-only total
// that follows its row.
func Callbacks(g *matrix.Grid) matrix.Callbacks {
	return matrix.Callbacks{
		Validate: func(row, col int, text string) matrix.Action {
			switch col {
			case colQty:
				if _, err := strconv.Atoi(text); err != nil && text != "" {
					return matrix.ActionIgnore
				}
			case colPrice:
				if _, err := strconv.ParseFloat(text, 64); err != nil && text != "" {
					return matrix.ActionIgnore
				}
			}
			return matrix.ActionDefault
		},
		Edition: func(row, col int) matrix.Action {
			if col == colTotal {
				return matrix.ActionIgnore
			}
			return matrix.ActionDefault
		},
		Drop: func(row, col int) ([]string, bool) {
			if col != colStatus {
				return nil, false
			}
			return Statuses, true
		},
		ValueChanged: func(row, col int) {
			if col == colQty || col == colPrice {
				updateTotal(g, row)
			}
		},
	}
}

func updateTotal(g *matrix.Grid, row int) {
	qs, _ := g.Value(row, colQty)
	ps, _ := g.Value(row, colPrice)
	q, qerr := strconv.Atoi(qs)
	p, perr := strconv.ParseFloat(ps, 64)
	if qerr != nil || perr != nil {
		g.UnsetValue(row, colTotal)
		return
	}
	g.SetValue(row, colTotal, fmt.Sprintf("%.2f", float64(q)*p))
}
