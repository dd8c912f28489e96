package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/menta2k/hoiview/pkg/dataset"
)

// viridis ramp for the visual map of the spatial scatter.
var scatterColors = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// WriteReport renders an HTML report of summary to w: bar charts for the
// category, verb and split distributions, a histogram of entities per sample
// and a spatial scatter of box centers colored by area. Chart axes follow
// the dataset's manifest order.
func WriteReport(w io.Writer, ds dataset.Dataset, summary Summary) error {
	page := components.NewPage()
	page.AddCharts(
		countBar("Entities per category", fmt.Sprintf("%d entities total", summary.Entities),
			ds.Categories(), summary.Categories),
		countBar("Actions per verb", fmt.Sprintf("%d actions total, %.0f%% interactive",
			summary.Actions, 100*summary.InteractiveFraction()),
			ds.Verbs(), summary.Verbs),
		countBar("Samples per split", fmt.Sprintf("%d samples total", summary.Samples),
			ds.Splits(), summary.Splits),
		entityHistogram(summary),
		centerScatter(summary),
	)
	return page.Render(w)
}

func countBar(title, subtitle string, keys []string, counts map[string]int) *charts.Bar {
	y := make([]opts.BarData, 0, len(keys))
	for _, key := range keys {
		y = append(y, opts.BarData{Value: counts[key]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(keys).
		AddSeries("count", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

func entityHistogram(summary Summary) *charts.Bar {
	sizes := make([]int, 0, len(summary.EntitiesPerSample))
	for n := range summary.EntitiesPerSample {
		sizes = append(sizes, n)
	}
	sort.Ints(sizes)

	x := make([]string, 0, len(sizes))
	y := make([]opts.BarData, 0, len(sizes))
	for _, n := range sizes {
		x = append(x, fmt.Sprintf("%d", n))
		y = append(y, opts.BarData{Value: summary.EntitiesPerSample[n]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Entities per sample", Subtitle: fmt.Sprintf("%d samples total", summary.Samples)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "entities"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "samples"}),
	)
	bar.SetXAxis(x).AddSeries("samples", y)
	return bar
}

func centerScatter(summary Summary) *charts.Scatter {
	data := make([]opts.ScatterData, 0, len(summary.BoxCenters))
	maxArea := 0.0
	for i, center := range summary.BoxCenters {
		area := summary.BoxAreas[i]
		if area > maxArea {
			maxArea = area
		}
		// Flip Y so the plot matches image orientation (origin top-left).
		data = append(data, opts.ScatterData{Value: []interface{}{center[0], 1 - center[1], area}})
	}
	if maxArea == 0 {
		maxArea = 1
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "700px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{Title: "Box centers", Subtitle: fmt.Sprintf("%d boxes, colored by area", len(data))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: 1, Name: "cx", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 1, Name: "cy", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxArea),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: scatterColors},
		}),
	)
	scatter.AddSeries("centers", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}))
	return scatter
}
