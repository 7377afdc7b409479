package web

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/peterkuimelis/crdeck/internal/deck"
)

// curveBuckets labels the elixir curve columns; the last one collects 7+.
var curveBuckets = []string{"1", "2", "3", "4", "5", "6", "7+"}

// elixirCurve counts cards per elixir cost bucket.
func elixirCurve(cards []deck.Card) []int {
	counts := make([]int, len(curveBuckets))
	for _, c := range cards {
		i := min(max(c.Elixir, 1), len(curveBuckets)) - 1
		counts[i]++
	}
	return counts
}

// renderElixirChart writes an interactive bar chart of the deck's elixir
// curve.
func renderElixirChart(w io.Writer, cards []deck.Card, a *deck.Analysis) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "crdeck elixir curve",
			Width:     "720px",
			Height:    "400px",
			Theme:     "dark",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Elixir curve",
			Subtitle: fmt.Sprintf("%s · avg %.1f", a.Archetype, a.AvgElixir),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Elixir"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Cards"}),
	)

	counts := elixirCurve(cards)
	data := make([]opts.BarData, len(counts))
	for i, n := range counts {
		data[i] = opts.BarData{Value: n}
	}
	bar.SetXAxis(curveBuckets).
		AddSeries("Cards", data).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Position: "top",
		}))

	return bar.Render(w)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	var names []string
	for _, name := range strings.Split(r.URL.Query().Get("cards"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 || len(names) > deck.DeckSize {
		writeError(w, http.StatusBadRequest, "cards must list 1 to 8 card names")
		return
	}
	cards, missing := s.engine.Catalog().Resolve(names)
	if len(missing) > 0 {
		writeError(w, http.StatusBadRequest, "unknown cards: "+strings.Join(missing, ", "))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderElixirChart(w, cards, deck.Analyze(cards)); err != nil {
		http.Error(w, "could not render chart", http.StatusInternalServerError)
	}
}
