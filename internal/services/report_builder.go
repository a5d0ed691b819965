package services

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"pnovbridge/internal/domain"
	"pnovbridge/internal/domain/models"
	"pnovbridge/internal/utils"
)

// DefaultHighValueMin is the smallest cost listed in the high value section.
const DefaultHighValueMin = 50.0

const (
	headerRepeatMisses = "DAs with Over 1 MM still missing:"
	headerHighValue    = "High Value MM still missing DAs"
	labelGrandTotal    = "Grand Total"
)

type CarrierTotal struct {
	DSPName string
	Count   int
}

type DriverMisses struct {
	DAName  string
	DSPName string
	Route   string
	Count   int
}

type HighValueMiss struct {
	Route      string
	DSPName    string
	DAName     string
	TrackingID string
	Cost       float64
}

// Report is the aggregated form of one upload. HighValue is only
// meaningful when HasHighValue is true.
type Report struct {
	Carriers     []CarrierTotal
	GrandTotal   int
	RepeatMisses []DriverMisses
	HasHighValue bool
	HighValue    []HighValueMiss
}

// ReportBuilder aggregates a missort table into a Report.
// HighValueMin is inclusive; use NewReportBuilder for the standard threshold.
type ReportBuilder struct {
	HighValueMin float64
}

func NewReportBuilder() ReportBuilder {
	return ReportBuilder{HighValueMin: DefaultHighValueMin}
}

// BuildReport renders the text report for t with default settings.
func BuildReport(t models.Table) (string, error) {
	r, err := NewReportBuilder().Build(t)
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

func (b ReportBuilder) Build(t models.Table) (Report, error) {
	if missing := t.MissingColumns(); len(missing) > 0 {
		return Report{}, domain.SchemaError{Missing: missing}
	}
	t = t.Normalized()

	carriers, total := totalsByCarrier(t.Rows)
	r := Report{
		Carriers:     carriers,
		GrandTotal:   total,
		RepeatMisses: repeatMisses(t.Rows),
	}
	if t.HasColumn(domain.ColCost) && t.HasColumn(domain.ColRoute) {
		r.HasHighValue = true
		r.HighValue = highValueMisses(t.Rows, b.HighValueMin)
	}
	return r, nil
}

func totalsByCarrier(rows []models.Missort) ([]CarrierTotal, int) {
	counts := map[string]int{}
	for _, r := range rows {
		counts[r.DSPName]++
	}
	out := make([]CarrierTotal, 0, len(counts))
	for name, n := range counts {
		out = append(out, CarrierTotal{DSPName: name, Count: n})
	}
	slices.SortFunc(out, func(a, b CarrierTotal) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.DSPName, b.DSPName)
	})
	return out, len(rows)
}

type driverKey struct {
	da, dsp, route string
}

func repeatMisses(rows []models.Missort) []DriverMisses {
	counts := map[driverKey]int{}
	for _, r := range rows {
		counts[driverKey{r.DAName, r.DSPName, r.Route}]++
	}
	var out []DriverMisses
	for k, n := range counts {
		if k.dsp == domain.CarrierFlex || k.dsp == domain.CarrierSnow || n <= 1 {
			continue
		}
		out = append(out, DriverMisses{DAName: k.da, DSPName: k.dsp, Route: k.route, Count: n})
	}
	slices.SortFunc(out, func(a, b DriverMisses) int {
		return cmp.Or(
			cmp.Compare(b.Count, a.Count),
			cmp.Compare(a.Route, b.Route),
			cmp.Compare(a.DAName, b.DAName),
			cmp.Compare(a.DSPName, b.DSPName),
		)
	})
	return out
}

func highValueMisses(rows []models.Missort, minCost float64) []HighValueMiss {
	var out []HighValueMiss
	for _, r := range rows {
		if !r.HasCost || math.IsNaN(r.Cost) || math.IsInf(r.Cost, 0) {
			continue
		}
		if r.Cost < minCost || r.DSPName == domain.CarrierFlex {
			continue
		}
		out = append(out, HighValueMiss{
			Route:      r.Route,
			DSPName:    r.DSPName,
			DAName:     r.DAName,
			TrackingID: r.TrackingID,
			Cost:       r.Cost,
		})
	}
	// equal costs keep upload order
	slices.SortStableFunc(out, func(a, b HighValueMiss) int {
		return cmp.Compare(b.Cost, a.Cost)
	})
	return out
}

// Lines returns the report as text lines, section separators included.
func (r Report) Lines() []string {
	lines := make([]string, 0, len(r.Carriers)+len(r.RepeatMisses)+len(r.HighValue)+6)
	for _, c := range r.Carriers {
		lines = append(lines, fmt.Sprintf("%s\t%d", c.DSPName, c.Count))
	}
	lines = append(lines, fmt.Sprintf("%s\t%d", labelGrandTotal, r.GrandTotal), "")

	lines = append(lines, headerRepeatMisses)
	for _, d := range r.RepeatMisses {
		lines = append(lines, fmt.Sprintf("%s / %s / %d", d.Route, d.DAName, d.Count))
	}
	lines = append(lines, "")

	if r.HasHighValue {
		lines = append(lines, headerHighValue)
		for _, h := range r.HighValue {
			lines = append(lines, fmt.Sprintf("%s/ %s / %s / %s\t%s",
				h.Route, h.DAName, h.DSPName, h.TrackingID, utils.FormatMoney(h.Cost)))
		}
	}
	return lines
}

func (r Report) String() string {
	return strings.Join(r.Lines(), "\n")
}
