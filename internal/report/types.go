package report

// Strategy selects which extraction pipeline processes a document. The two
// pipelines are alternatives chosen by the caller; their candidates are never
// merged within a single request.
type Strategy string

const (
	// StrategyText scans linearized text with ordered regex pattern sets.
	StrategyText Strategy = "text"
	// StrategyTable scans geometrically located tables for labeled cells.
	StrategyTable Strategy = "table"
)

// Valid reports whether the strategy is one of the supported pipelines.
func (s Strategy) Valid() bool {
	return s == StrategyText || s == StrategyTable
}

// Field names shared by both extraction pipelines and the result record.
const (
	FieldSpBET        = "sp_bet"
	FieldMpBET        = "mp_bet"
	FieldTotalPoreVol = "total_pore_vol"
	FieldAvgPoreD     = "avg_pore_d"
	FieldMostProbable = "most_probable"
)

// FieldCandidate is one possible value for a named field, produced by either
// pipeline. Position is a line index for the text pipeline and a table row
// index for the table pipeline. At most one candidate per field is selected
// into the final record; a field with no surviving candidate stays absent.
type FieldCandidate struct {
	Field    string   `json:"field"`
	Value    string   `json:"value"`
	Position int      `json:"position"`
	Strategy Strategy `json:"strategy"`
}

// NldftPoint is one row of the NLDFT pore-size distribution: the average pore
// diameter in nm and the cumulative pore integral volume in cm³/g.
type NldftPoint struct {
	AveragePoreDiameter float64 `json:"average_pore_diameter"`
	PoreIntegralVolume  float64 `json:"pore_integral_volume"`
}

// SampleInfo holds report metadata. Every field is independently optional;
// an empty string means the label was not found in the document.
type SampleInfo struct {
	SampleName      string `json:"sample_name,omitempty"`
	InstrumentModel string `json:"instrument_model,omitempty"`
	Tester          string `json:"tester,omitempty"`
	SubmissionDate  string `json:"submission_date,omitempty"`
}

// Empty reports whether no metadata field was resolved.
func (s SampleInfo) Empty() bool {
	return s.SampleName == "" && s.InstrumentModel == "" && s.Tester == "" && s.SubmissionDate == ""
}

// AnalysisResult is the canonical record produced for one document. Scalar
// physical fields keep the exact numeric text extracted from the report (empty
// when unmatched); derived metrics are nil when the series was insufficient or
// a required input was absent. The record is built once by the assembler and
// never mutated afterwards.
type AnalysisResult struct {
	SpBET        string `json:"sp_bet,omitempty"`
	MpBET        string `json:"mp_bet,omitempty"`
	TotalPoreVol string `json:"total_pore_vol,omitempty"`
	AvgPoreD     string `json:"avg_pore_d,omitempty"`
	MostProbable string `json:"most_probable,omitempty"`

	D10            *float64 `json:"d10,omitempty"`
	D90            *float64 `json:"d90,omitempty"`
	D90D10Ratio    *float64 `json:"d90_d10_ratio,omitempty"`
	PoreVolumeA    *float64 `json:"pore_volume_A,omitempty"`
	LessThan05D    *float64 `json:"less_than_0_5D,omitempty"`
	GreaterThan15D *float64 `json:"greater_than_1_5D,omitempty"`

	Sample    *SampleInfo  `json:"sample_info,omitempty"`
	NldftData []NldftPoint `json:"nldft_data,omitempty"`
	RawText   string       `json:"raw_text,omitempty"`

	// Sources records which pipeline supplied each resolved field, keyed by
	// field name. Diagnostics only; not part of the physical record.
	Sources map[string]Strategy `json:"sources,omitempty"`
}
