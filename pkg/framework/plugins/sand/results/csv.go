// Package results writes benchmark and oracle records as CSV.
package results

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/oracle"
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/simulation"
)

// SlotHeader is the column layout of the benchmark output
var SlotHeader = []string{"Ratio_R", "PodCount", "NodeCount", "Execution", "Slot", "Pods", "Cost_Static", "Cost_Temporal"}

// OracleHeader is the column layout of the oracle output
var OracleHeader = []string{"N", "P", "Iteration", "Status", "Time_s", "Optimal_Cost"}

// FloatFormat selects how the ratio and cost columns are printed
type FloatFormat int

const (
	// FloatShortest prints the shortest exact decimal, 1 for 1.0
	FloatShortest FloatFormat = iota
	// FloatHistorical keeps a fractional digit and switches to E notation
	// outside [1e-3, 1e7), matching CSVs of the historical benchmark
	FloatHistorical
)

// SlotWriter writes slot records separated by ';'. The header is written
// before the first record.
type SlotWriter struct {
	w           *csv.Writer
	format      func(float64) string
	wroteHeader bool
}

var _ simulation.RecordSink = &SlotWriter{}

func NewSlotWriter(out io.Writer) *SlotWriter {
	w := csv.NewWriter(out)
	w.Comma = ';'
	return &SlotWriter{w: w, format: formatFloat}
}

// SetFloatFormat changes how later records print their float columns
func (s *SlotWriter) SetFloatFormat(f FloatFormat) {
	if f == FloatHistorical {
		s.format = formatHistorical
		return
	}
	s.format = formatFloat
}

func (s *SlotWriter) Record(r simulation.SlotRecord) error {
	if err := s.header(); err != nil {
		return err
	}
	return s.w.Write([]string{
		s.format(r.Ratio),
		strconv.Itoa(r.PodCount),
		strconv.Itoa(r.NodeCount),
		strconv.Itoa(r.Execution),
		strconv.Itoa(r.Slot),
		strconv.Itoa(r.Target),
		s.format(r.Static.Cost),
		s.format(r.Temporal.Cost),
	})
}

func (s *SlotWriter) header() error {
	if s.wroteHeader {
		return nil
	}
	s.wroteHeader = true
	return s.w.Write(SlotHeader)
}

// Flush writes the header if nothing was recorded and flushes buffered rows
func (s *SlotWriter) Flush() error {
	if err := s.header(); err != nil {
		return err
	}
	s.w.Flush()
	return s.w.Error()
}

// OracleWriter writes oracle records separated by ','. Every row is flushed
// as soon as it is recorded.
type OracleWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

var _ oracle.Sink = &OracleWriter{}

func NewOracleWriter(out io.Writer) *OracleWriter {
	return &OracleWriter{w: csv.NewWriter(out)}
}

func (o *OracleWriter) RecordOracle(r oracle.Record) error {
	if !o.wroteHeader {
		o.wroteHeader = true
		if err := o.w.Write(OracleHeader); err != nil {
			return err
		}
	}
	// -1 marks a missing objective, errors report zero
	cost := -1.0
	switch {
	case r.HasCost:
		cost = r.Cost
	case r.Status == oracle.StatusError:
		cost = 0
	}
	if err := o.w.Write([]string{
		strconv.Itoa(r.Nodes),
		strconv.Itoa(r.Pods),
		strconv.Itoa(r.Iteration),
		r.Status.String(),
		strconv.FormatFloat(r.SolveTime.Seconds(), 'f', 3, 64),
		strconv.FormatFloat(cost, 'f', 2, 64),
	}); err != nil {
		return err
	}
	o.w.Flush()
	return o.w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatHistorical(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if abs := math.Abs(v); abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		out := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(out, ".") {
			out += ".0"
		}
		return out
	}
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(v, 'E', -1, 64), "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	e, _ := strconv.Atoi(exp)
	return mantissa + "E" + strconv.Itoa(e)
}
