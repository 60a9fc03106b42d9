package util

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/simulation"
)

// CostCurves accumulates the mean cost of every slot per ratio and policy.
// It is a simulation.RecordSink.
type CostCurves struct {
	slots  int
	curves map[float64]*curve
}

type curve struct {
	static   []float64
	temporal []float64
	samples  []int
}

var _ simulation.RecordSink = &CostCurves{}

func NewCostCurves() *CostCurves {
	return &CostCurves{curves: map[float64]*curve{}}
}

func (c *CostCurves) Record(r simulation.SlotRecord) error {
	if r.Slot < 1 {
		return fmt.Errorf("slot %d out of range", r.Slot)
	}
	cv, ok := c.curves[r.Ratio]
	if !ok {
		cv = &curve{}
		c.curves[r.Ratio] = cv
	}
	for len(cv.samples) < r.Slot {
		cv.static = append(cv.static, 0)
		cv.temporal = append(cv.temporal, 0)
		cv.samples = append(cv.samples, 0)
	}
	i := r.Slot - 1
	cv.static[i] += r.Static.Cost
	cv.temporal[i] += r.Temporal.Cost
	cv.samples[i]++
	c.slots = max(c.slots, r.Slot)
	return nil
}

// Ratios returns the recorded ratios in ascending order
func (c *CostCurves) Ratios() []float64 {
	ratios := make([]float64, 0, len(c.curves))
	for r := range c.curves {
		ratios = append(ratios, r)
	}
	sort.Float64s(ratios)
	return ratios
}

// Mean returns the mean static and temporal cost per slot for a ratio
func (c *CostCurves) Mean(ratio float64) (static, temporal []float64) {
	cv, ok := c.curves[ratio]
	if !ok {
		return nil, nil
	}
	static = make([]float64, len(cv.samples))
	temporal = make([]float64, len(cv.samples))
	for i, n := range cv.samples {
		if n == 0 {
			continue
		}
		static[i] = cv.static[i] / float64(n)
		temporal[i] = cv.temporal[i] / float64(n)
	}
	return static, temporal
}

// Render draws one line per policy and ratio
func (c *CostCurves) Render(w io.Writer) error {
	if c.slots == 0 {
		return fmt.Errorf("no slot records to plot")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Mean slot cost, static vs temporal placement",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "slot",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "cost",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	axis := make([]string, c.slots)
	for i := range axis {
		axis[i] = strconv.Itoa(i + 1)
	}
	line.SetXAxis(axis)

	for _, ratio := range c.Ratios() {
		static, temporal := c.Mean(ratio)
		label := strconv.FormatFloat(ratio, 'f', -1, 64)
		line.AddSeries("static R="+label, lineData(static, c.slots)).
			AddSeries("temporal R="+label, lineData(temporal, c.slots))
	}
	line.SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(false),
		}),
	)
	return line.Render(w)
}

// PlotCostCurves renders the curves into an HTML file
func PlotCostCurves(c *CostCurves, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return c.Render(f)
}

func lineData(values []float64, slots int) []opts.LineData {
	data := make([]opts.LineData, slots)
	for i := range data {
		if i < len(values) {
			data[i] = opts.LineData{Value: values[i]}
		}
	}
	return data
}
