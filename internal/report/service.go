// Package report extracts structured physical-chemistry measurements from
// laboratory gas-adsorption PDF reports and derives the pore-size metrics
// built on the NLDFT series. Extraction runs through one of two independent
// pipelines, linearized-text regex scanning or table-geometry scanning,
// selected per request and never reconciled within one request.
package report

import (
	"fmt"

	"github.com/porelab/poresight/internal/report/document"
)

// Service analyzes porosity report documents. It holds no per-request state;
// concurrent Analyze calls are independent.
type Service struct {
	maxFileSize int64
}

// NewService creates an analysis service. maxFileSize bounds the accepted
// document size in bytes; zero disables the check.
func NewService(maxFileSize int64) *Service {
	return &Service{maxFileSize: maxFileSize}
}

// Analyze converts one PDF document into its canonical analysis record using
// the selected extraction strategy. Document-level failures return a
// structured *Error; field-level misses degrade to absent values on the
// result.
func (s *Service) Analyze(data []byte, strategy Strategy) (*AnalysisResult, error) {
	if !strategy.Valid() {
		return nil, fmt.Errorf("unsupported strategy %q", strategy)
	}
	if s.maxFileSize > 0 && int64(len(data)) > s.maxFileSize {
		return nil, fmt.Errorf("document too large: %d bytes (max: %d bytes)", len(data), s.maxFileSize)
	}

	doc, err := document.Parse(data)
	if err != nil {
		return nil, NewError(KindDocumentParse, "cannot parse document", err)
	}

	switch strategy {
	case StrategyTable:
		return s.analyzeTables(doc.Tables(), doc.RawText())
	default:
		return s.analyzeText(doc.Lines(), doc.RawText())
	}
}

// analyzeText runs the regex pipeline over linearized lines.
func (s *Service) analyzeText(lines []string, rawText string) (*AnalysisResult, error) {
	candidates := scanFields(lines)
	anchor := findSeriesAnchor(lines)
	if cand, ok := resolveMostProbable(lines, anchor); ok {
		candidates[FieldMostProbable] = cand
	}
	series := NormalizeSeries(scanSeries(lines, anchor))
	meta := scanMetadata(lines)
	return assemble(candidates, meta, series, rawText), nil
}

// analyzeTables runs the table pipeline over located tables. Selecting the
// table strategy on a document with no geometric tables is a request-level
// failure.
func (s *Service) analyzeTables(tables []document.Table, rawText string) (*AnalysisResult, error) {
	if len(tables) == 0 {
		return nil, NewError(KindNoTablesFound, "no geometric tables located in document", nil)
	}
	candidates := scanTableFields(tables)
	rawSeries, anchor := scanTableSeries(tables)
	if cand, ok := resolveTableMostProbable(tables, anchor); ok {
		candidates[FieldMostProbable] = cand
	}
	series := NormalizeSeries(rawSeries)
	meta := scanTableMetadata(tables)
	return assemble(candidates, meta, series, rawText), nil
}

// assemble merges resolved candidates, metadata, the normalized series, and
// derived metrics into one immutable record. No field is defaulted: absent
// inputs stay absent, and an insufficient series leaves every derived metric
// nil without failing the request.
func assemble(candidates map[string]FieldCandidate, meta SampleInfo, series []NldftPoint, rawText string) *AnalysisResult {
	res := &AnalysisResult{
		NldftData: series,
		RawText:   rawText,
	}

	assign := map[string]*string{
		FieldSpBET:        &res.SpBET,
		FieldMpBET:        &res.MpBET,
		FieldTotalPoreVol: &res.TotalPoreVol,
		FieldAvgPoreD:     &res.AvgPoreD,
		FieldMostProbable: &res.MostProbable,
	}
	for field, dst := range assign {
		cand, ok := candidates[field]
		if !ok {
			continue
		}
		*dst = cand.Value
		if res.Sources == nil {
			res.Sources = make(map[string]Strategy)
		}
		res.Sources[field] = cand.Strategy
	}

	var ref *float64
	if res.AvgPoreD != "" {
		if v, ok := parseFloat(res.AvgPoreD); ok {
			ref = &v
		}
	}
	if derived, err := ComputeDerived(series, ref); err == nil {
		res.D10 = derived.D10
		res.D90 = derived.D90
		res.D90D10Ratio = derived.D90D10Ratio
		res.PoreVolumeA = derived.PoreVolumeA
		res.LessThan05D = derived.LessThan05D
		res.GreaterThan15D = derived.GreaterThan15D
	}

	if !meta.Empty() {
		m := meta
		res.Sample = &m
	}
	return res
}
