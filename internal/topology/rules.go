package topology

import (
	"fmt"
	"os"
	"strings"

	"github.com/fibercare/backend-go/internal/domain"
	"gopkg.in/yaml.v3"
)

// Rules is the immutable loss/capacity rule table injected into the planner,
// validator and analyzer. Loss values are negative dB per splitter stage;
// FDB and X2 passthrough elements carry no loss in this model.
type Rules struct {
	// SplitterLossDB maps a split-ratio label ("1x2".."1x64") to its
	// insertion loss; more negative as the ratio increases
	SplitterLossDB map[string]float64 `yaml:"splitter_loss_db"`

	// PonCapacity maps an OLT technology to the maximum subscriber count
	// per PON port
	PonCapacity map[string]int `yaml:"pon_capacity"`

	// MaxPassiveLossDB is the absolute cumulative loss budget
	MaxPassiveLossDB float64 `yaml:"max_passive_loss_db"`

	// DirectThreshold is the subscriber count below which no passive
	// stages are planned
	DirectThreshold int `yaml:"direct_threshold"`

	// Tube system template: primary then secondary split ratio
	TubePrimaryLabel   string `yaml:"tube_primary_label"`
	TubeSecondaryLabel string `yaml:"tube_secondary_label"`

	// Strict rejects unknown splitter labels and technologies instead of
	// falling back to permissive defaults (0 dB / GPON capacity)
	Strict bool `yaml:"strict"`
}

// DefaultTechnology is the capacity fallback for unknown technologies in
// permissive mode
const DefaultTechnology = "gpon"

// DefaultRules returns the production rule table
func DefaultRules() Rules {
	return Rules{
		SplitterLossDB: map[string]float64{
			"1x2":  -3,
			"1x4":  -7,
			"1x8":  -10,
			"1x16": -13,
			"1x32": -17,
			"1x64": -21,
		},
		PonCapacity: map[string]int{
			"epon":   64,
			"gpon":   128,
			"xgpon":  256,
			"xgspon": 256,
		},
		MaxPassiveLossDB:   20,
		DirectThreshold:    12,
		TubePrimaryLabel:   "1x16",
		TubeSecondaryLabel: "1x4",
	}
}

// LoadRules reads a rule table from a YAML file, for deployments that need
// an alternate table. Missing fields fall back to the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("parse rules file: %w", err)
	}
	if err := rules.Check(); err != nil {
		return rules, err
	}
	return rules, nil
}

// Check verifies internal consistency of the table
func (r Rules) Check() error {
	if r.MaxPassiveLossDB <= 0 {
		return fmt.Errorf("max passive loss must be a positive dB budget, got %v", r.MaxPassiveLossDB)
	}
	if r.DirectThreshold < 1 {
		return fmt.Errorf("direct threshold must be at least 1, got %d", r.DirectThreshold)
	}
	for label, loss := range r.SplitterLossDB {
		if loss > 0 {
			return fmt.Errorf("splitter %s: loss must be negative dB, got %v", label, loss)
		}
	}
	if _, ok := r.SplitterLossDB[r.TubePrimaryLabel]; !ok {
		return fmt.Errorf("tube primary label %q not in splitter table", r.TubePrimaryLabel)
	}
	if _, ok := r.SplitterLossDB[r.TubeSecondaryLabel]; !ok {
		return fmt.Errorf("tube secondary label %q not in splitter table", r.TubeSecondaryLabel)
	}
	if _, ok := r.PonCapacity[DefaultTechnology]; !ok {
		return fmt.Errorf("capacity table missing fallback technology %q", DefaultTechnology)
	}
	return nil
}

// LossOf returns the insertion loss for a split-ratio label. Unknown labels
// are treated as lossless passthrough unless the table is strict.
func (r Rules) LossOf(label string) (float64, error) {
	if loss, ok := r.SplitterLossDB[strings.ToLower(label)]; ok {
		return loss, nil
	}
	if r.Strict {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownSplitterLabel, label)
	}
	return 0, nil
}

// CapacityOf returns the maximum subscriber count for an OLT technology,
// case-insensitive. Unknown technologies fall back to the GPON capacity
// unless the table is strict.
func (r Rules) CapacityOf(technology string) (int, error) {
	if n, ok := r.PonCapacity[strings.ToLower(technology)]; ok {
		return n, nil
	}
	if r.Strict {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownTechnology, technology)
	}
	return r.PonCapacity[DefaultTechnology], nil
}

// SplitCount returns the output port count encoded in a label like "1x16";
// zero for anything that does not parse
func SplitCount(label string) int {
	var in, out int
	if _, err := fmt.Sscanf(strings.ToLower(label), "%dx%d", &in, &out); err != nil {
		return 0
	}
	return out
}
