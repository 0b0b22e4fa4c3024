package domain

// TopologyType classifies the shape of a planned topology
type TopologyType string

const (
	// TopologyDirect feeds subscribers straight from the OLT port, no
	// passive splitter stages
	TopologyDirect TopologyType = "direct"
	// TopologyTubeSystem is the fixed two-stage splitter template
	// (1x16 then 1x4) used at or above the direct threshold
	TopologyTubeSystem TopologyType = "tube_system"
	// TopologyCustom marks requests the fixed templates cannot serve
	// (subscriber count over PON capacity)
	TopologyCustom TopologyType = "custom"
)

// Stage is one passive stage of a planned topology. Stage losses are
// negative dB; CumulativeLossDB of stage i is the sum of stage losses 1..i.
type Stage struct {
	Index            int         `json:"index"`
	ElementType      ElementType `json:"element_type"`
	SplitterLabel    string      `json:"splitter_label,omitempty"`
	StageLossDB      float64     `json:"stage_loss_db"`
	CumulativeLossDB float64     `json:"cumulative_loss_db"`
	OutputPorts      int         `json:"output_ports"`
	CanExtend        bool        `json:"can_extend"`
}

// TopologyPlan is the planner's structured outcome. An unplannable request
// (capacity exceeded) is a valid result with IsValid=false, not an error.
// TotalLossDB is the absolute cumulative passive loss in dB.
type TopologyPlan struct {
	Type           TopologyType `json:"type"`
	TotalLossDB    float64      `json:"total_loss_db"`
	Stages         []Stage      `json:"stages"`
	MaxSubscribers int          `json:"max_subscribers"`
	IsValid        bool         `json:"is_valid"`
	Message        string       `json:"message"`
}

// ValidationResult is the validator's structured outcome; structural
// non-conformance is reported as error strings, never thrown
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// AnalysisStage is one resolved passive stage of a deployed chain
type AnalysisStage struct {
	Stage            int         `json:"stage"`
	DeviceType       ElementType `json:"device_type"`
	DeviceID         string      `json:"device_id"`
	SplitterLabel    string      `json:"splitter_label"`
	LossDB           float64     `json:"loss_db"`
	CumulativeLossDB float64     `json:"cumulative_loss_db"`
}

// ExistingAnalysis is the result of walking a deployed element's outputs
// and summing real passive loss against the budget
type ExistingAnalysis struct {
	RootBusinessID  string          `json:"root_business_id"`
	TotalLossDB     float64         `json:"total_loss_db"`
	RemainingLossDB float64         `json:"remaining_loss_db"`
	Stages          []AnalysisStage `json:"stages"`
	IsValid         bool            `json:"is_valid"`
	Errors          []string        `json:"errors"`
	Warnings        []string        `json:"warnings"`
	Recommendations []string        `json:"recommendations"`
	SkippedRefs     []ElementRef    `json:"skipped_refs,omitempty"`
}

// DiagramStage is one renderable stage of a plan diagram
type DiagramStage struct {
	DeviceName    string      `json:"device_name"`
	ElementType   ElementType `json:"element_type"`
	SplitterLabel string      `json:"splitter_label,omitempty"`
	Connections   int         `json:"connections"`
}

// DiagramStructure is a renderable stage-by-stage view of a plan
type DiagramStructure struct {
	TopologyType TopologyType   `json:"topology_type"`
	Stages       []DiagramStage `json:"stages"`
	Message      string         `json:"message,omitempty"`
}
