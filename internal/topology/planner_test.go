package topology

import (
	"testing"

	"github.com/fibercare/backend-go/internal/domain"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanDirect(t *testing.T) {
	p := NewPlanner(DefaultRules())

	plan, err := p.Plan(8, "gpon")
	require.NoError(t, err)

	assert.Equal(t, domain.TopologyDirect, plan.Type)
	assert.Equal(t, 0.0, plan.TotalLossDB)
	require.Len(t, plan.Stages, 1)
	assert.Equal(t, 8, plan.MaxSubscribers)
	assert.True(t, plan.IsValid)

	stage := plan.Stages[0]
	assert.Equal(t, 1, stage.Index)
	assert.Equal(t, domain.ElementOLT, stage.ElementType)
	assert.Equal(t, 0.0, stage.StageLossDB)
	assert.Equal(t, 8, stage.OutputPorts)
	assert.False(t, stage.CanExtend)
}

func TestPlanTubeSystem(t *testing.T) {
	p := NewPlanner(DefaultRules())

	plan, err := p.Plan(24, "gpon")
	require.NoError(t, err)

	assert.Equal(t, domain.TopologyTubeSystem, plan.Type)
	assert.Equal(t, 20.0, plan.TotalLossDB)
	require.Len(t, plan.Stages, 2)
	assert.Equal(t, 64, plan.MaxSubscribers)
	assert.True(t, plan.IsValid)

	first := plan.Stages[0]
	assert.Equal(t, "1x16", first.SplitterLabel)
	assert.Equal(t, -13.0, first.StageLossDB)
	assert.Equal(t, -13.0, first.CumulativeLossDB)
	assert.Equal(t, 16, first.OutputPorts)
	assert.True(t, first.CanExtend)

	second := plan.Stages[1]
	assert.Equal(t, "1x4", second.SplitterLabel)
	assert.Equal(t, -7.0, second.StageLossDB)
	assert.Equal(t, -20.0, second.CumulativeLossDB)
	assert.Equal(t, 4, second.OutputPorts)
	assert.False(t, second.CanExtend, "budget is consumed, no further stages allowed")
}

func TestPlanCapacityBoundaries(t *testing.T) {
	tests := []struct {
		name        string
		subscribers int
		technology  string
		wantValid   bool
		wantMax     int
	}{
		{"epon at capacity", 64, "epon", true, 64},
		{"epon just over", 65, "epon", false, 64},
		{"gpon over capacity", 129, "gpon", false, 128},
		{"gpon at capacity plans tube", 64, "gpon", true, 64},
		{"xgspon large count", 256, "xgspon", true, 64},
		{"case insensitive technology", 24, "GPON", true, 64},
		{"unknown technology falls back to gpon", 100, "bpon", true, 64},
	}

	p := NewPlanner(DefaultRules())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := p.Plan(tt.subscribers, tt.technology)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, plan.IsValid)
			if !tt.wantValid {
				assert.Equal(t, domain.TopologyCustom, plan.Type)
				assert.Empty(t, plan.Stages)
				assert.Equal(t, tt.wantMax, plan.MaxSubscribers)
				assert.NotEmpty(t, plan.Message)
			}
		})
	}
}

func TestPlanStrictRejectsUnknownTechnology(t *testing.T) {
	rules := DefaultRules()
	rules.Strict = true
	p := NewPlanner(rules)

	_, err := p.Plan(24, "bpon")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownTechnology)
}

func TestPlanAlternateRuleTable(t *testing.T) {
	rules := DefaultRules()
	rules.DirectThreshold = 4
	rules.TubePrimaryLabel = "1x8"
	rules.TubeSecondaryLabel = "1x2"
	p := NewPlanner(rules)

	plan, err := p.Plan(6, "gpon")
	require.NoError(t, err)
	assert.Equal(t, domain.TopologyTubeSystem, plan.Type)
	assert.Equal(t, 13.0, plan.TotalLossDB)
	assert.Equal(t, 16, plan.MaxSubscribers)
}

func TestPlanProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	p := NewPlanner(DefaultRules())
	technologies := gen.OneConstOf("epon", "gpon", "xgpon", "xgspon")

	properties.Property("below threshold always plans direct with zero loss", prop.ForAll(
		func(n int, tech string) bool {
			plan, err := p.Plan(n, tech)
			if err != nil {
				return false
			}
			return plan.Type == domain.TopologyDirect && plan.TotalLossDB == 0 && plan.IsValid
		},
		gen.IntRange(1, 11),
		technologies,
	))

	properties.Property("in range plans the two-stage tube system at 20 dB", prop.ForAll(
		func(n int, tech string) bool {
			capacity, _ := DefaultRules().CapacityOf(tech)
			if n > capacity {
				return true
			}
			plan, err := p.Plan(n, tech)
			if err != nil {
				return false
			}
			return plan.Type == domain.TopologyTubeSystem &&
				plan.TotalLossDB == 20 && len(plan.Stages) == 2 && plan.IsValid
		},
		gen.IntRange(12, 256),
		technologies,
	))

	properties.Property("over capacity is never plannable", prop.ForAll(
		func(extra int, tech string) bool {
			capacity, _ := DefaultRules().CapacityOf(tech)
			plan, err := p.Plan(capacity+extra, tech)
			if err != nil {
				return false
			}
			return !plan.IsValid && plan.Type == domain.TopologyCustom
		},
		gen.IntRange(1, 1000),
		technologies,
	))

	properties.Property("planner and validator agree on in-range plans", prop.ForAll(
		func(n int, tech string) bool {
			capacity, _ := DefaultRules().CapacityOf(tech)
			if n > capacity {
				return true
			}
			plan, err := p.Plan(n, tech)
			if err != nil {
				return false
			}
			result := NewValidator(DefaultRules(), nil).Validate(plan)
			return result.IsValid && len(result.Errors) == 0
		},
		gen.IntRange(1, 256),
		technologies,
	))

	properties.TestingRun(t)
}
