package main

import (
	"context"
	"time"
)

// ChartData is the server side of the chart module. Its JSON form has the
// shape of web/chart.js's exports, so the browser adopts it in place of the
// module.
type ChartData struct {
	Title  string `msgpack:"title" json:"title"`
	Series []int  `msgpack:"series" json:"series"`
}

// TableData mirrors web/table.js.
type TableData struct {
	Rows []TableRow `msgpack:"rows" json:"rows"`
}

// TableRow is one row of the sales table.
type TableRow struct {
	Region string `msgpack:"region" json:"region"`
	Total  int    `msgpack:"total" json:"total"`
}

//hxsplit:module web/chart.js
func loadChart(ctx context.Context) (*ChartData, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(20 * time.Millisecond):
	}
	return &ChartData{Title: "Weekly sales", Series: []int{1200, 1850, 990, 2400}}, nil
}

//hxsplit:module web/table.js
func loadTable(ctx context.Context) (*TableData, error) {
	return &TableData{Rows: []TableRow{{Region: "north", Total: 5300}, {Region: "south", Total: 4100}}}, nil
}
