package topology

import (
	"fmt"

	"github.com/fibercare/backend-go/internal/domain"
)

// Recommend derives human-readable deployment guidance for a subscriber
// count and technology. It plans internally and translates the outcome.
func (p *Planner) Recommend(subscribers int, technology string) ([]string, error) {
	plan, err := p.Plan(subscribers, technology)
	if err != nil {
		return nil, err
	}

	switch plan.Type {
	case domain.TopologyDirect:
		return []string{
			fmt.Sprintf("feed all %d subscribers directly from the OLT PON port", subscribers),
			"no passive elements needed; the chain carries zero passive loss",
		}, nil

	case domain.TopologyTubeSystem:
		return []string{
			fmt.Sprintf("deploy the tube system: one %s primary splitter feeding %s secondary splitters",
				p.rules.TubePrimaryLabel, p.rules.TubeSecondaryLabel),
			fmt.Sprintf("total passive loss is fixed at %.0f dB, the full %.0f dB budget",
				plan.TotalLossDB, p.rules.MaxPassiveLossDB),
			fmt.Sprintf("the template tops out at %d subscribers per OLT port", plan.MaxSubscribers),
			"no further passive stages can be appended to this chain",
		}, nil

	default:
		return []string{
			plan.Message,
			fmt.Sprintf("provision ceil(%d/%d) OLT ports and plan each port separately",
				subscribers, plan.MaxSubscribers),
		}, nil
	}
}

// Diagram renders a plan as a stage-by-stage structure with synthetic
// device names. An invalid plan yields an empty diagram carrying the plan's
// message.
func Diagram(plan domain.TopologyPlan) domain.DiagramStructure {
	diagram := domain.DiagramStructure{
		TopologyType: plan.Type,
		Stages:       make([]domain.DiagramStage, 0, len(plan.Stages)),
	}
	if !plan.IsValid {
		diagram.Message = plan.Message
		return diagram
	}

	for _, stage := range plan.Stages {
		diagram.Stages = append(diagram.Stages, domain.DiagramStage{
			DeviceName:    fmt.Sprintf("%s_%d", stage.ElementType.Prefix(), stage.Index),
			ElementType:   stage.ElementType,
			SplitterLabel: stage.SplitterLabel,
			Connections:   stage.OutputPorts,
		})
	}
	return diagram
}
