package topology

import (
	"fmt"
	"math"

	"github.com/fibercare/backend-go/internal/domain"
)

// Planner decides topology shapes from a subscriber count and OLT
// technology. It is pure: all state lives in the injected rule table.
type Planner struct {
	rules Rules
}

// NewPlanner creates a Planner over the given rule table
func NewPlanner(rules Rules) *Planner {
	return &Planner{rules: rules}
}

// Rules returns the planner's rule table
func (p *Planner) Rules() Rules {
	return p.rules
}

// Plan produces a topology plan for the requested subscriber count and
// technology. A count over the technology's PON capacity yields a CUSTOM
// plan with IsValid=false; that is a normal planning outcome, not an error.
// The caller must reject zero or negative counts before calling.
//
// An error is returned only for an unknown technology under a strict rule
// table; the permissive default falls back to GPON capacity.
func (p *Planner) Plan(subscribers int, technology string) (domain.TopologyPlan, error) {
	capacity, err := p.rules.CapacityOf(technology)
	if err != nil {
		return domain.TopologyPlan{}, err
	}

	if subscribers > capacity {
		return domain.TopologyPlan{
			Type:           domain.TopologyCustom,
			TotalLossDB:    0,
			Stages:         []domain.Stage{},
			MaxSubscribers: capacity,
			IsValid:        false,
			Message: fmt.Sprintf(
				"%d subscribers exceed the %s PON port capacity of %d; split the demand across multiple OLT ports",
				subscribers, technology, capacity),
		}, nil
	}

	if subscribers < p.rules.DirectThreshold {
		return p.planDirect(subscribers), nil
	}
	return p.planTubeSystem(subscribers)
}

// planDirect feeds every subscriber straight from the OLT port; the single
// synthetic stage sits at the OLT itself and introduces no passive loss.
func (p *Planner) planDirect(subscribers int) domain.TopologyPlan {
	return domain.TopologyPlan{
		Type:        domain.TopologyDirect,
		TotalLossDB: 0,
		Stages: []domain.Stage{{
			Index:            1,
			ElementType:      domain.ElementOLT,
			StageLossDB:      0,
			CumulativeLossDB: 0,
			OutputPorts:      subscribers,
			CanExtend:        false,
		}},
		MaxSubscribers: subscribers,
		IsValid:        true,
		Message: fmt.Sprintf(
			"%d subscribers can be fed directly from the OLT port, no passive elements needed",
			subscribers),
	}
}

// planTubeSystem emits the fixed two-stage template: a primary splitter
// followed by a secondary splitter on each primary output. The template has
// a fixed ceiling regardless of the requested count.
func (p *Planner) planTubeSystem(subscribers int) (domain.TopologyPlan, error) {
	primaryLoss, err := p.rules.LossOf(p.rules.TubePrimaryLabel)
	if err != nil {
		return domain.TopologyPlan{}, err
	}
	secondaryLoss, err := p.rules.LossOf(p.rules.TubeSecondaryLabel)
	if err != nil {
		return domain.TopologyPlan{}, err
	}

	cumulative := primaryLoss + secondaryLoss
	total := math.Abs(cumulative)
	maxSubs := SplitCount(p.rules.TubePrimaryLabel) * SplitCount(p.rules.TubeSecondaryLabel)

	stages := []domain.Stage{
		{
			Index:            1,
			ElementType:      domain.ElementMS,
			SplitterLabel:    p.rules.TubePrimaryLabel,
			StageLossDB:      primaryLoss,
			CumulativeLossDB: primaryLoss,
			OutputPorts:      SplitCount(p.rules.TubePrimaryLabel),
			CanExtend:        math.Abs(primaryLoss) < p.rules.MaxPassiveLossDB,
		},
		{
			Index:            2,
			ElementType:      domain.ElementSubMS,
			SplitterLabel:    p.rules.TubeSecondaryLabel,
			StageLossDB:      secondaryLoss,
			CumulativeLossDB: cumulative,
			OutputPorts:      SplitCount(p.rules.TubeSecondaryLabel),
			CanExtend:        total < p.rules.MaxPassiveLossDB,
		},
	}

	return domain.TopologyPlan{
		Type:           domain.TopologyTubeSystem,
		TotalLossDB:    total,
		Stages:         stages,
		MaxSubscribers: maxSubs,
		IsValid:        true,
		Message: fmt.Sprintf(
			"tube system (%s + %s) serves up to %d subscribers at %.0f dB total passive loss",
			p.rules.TubePrimaryLabel, p.rules.TubeSecondaryLabel, maxSubs, total),
	}, nil
}
