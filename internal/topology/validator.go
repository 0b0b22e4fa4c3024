package topology

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/fibercare/backend-go/internal/domain"
)

// Validator checks planned and deployed topologies against the rule table
type Validator struct {
	rules Rules
	repo  ElementRepository
}

// NewValidator creates a Validator. The repository may be nil when only
// Validate is used; AnalyzeExisting requires it.
func NewValidator(rules Rules, repo ElementRepository) *Validator {
	return &Validator{rules: rules, repo: repo}
}

// Validate checks a plan against the loss budget and the sanctioned stage
// templates. Non-conformance is reported as error strings, never returned
// as a Go error.
func (v *Validator) Validate(plan domain.TopologyPlan) domain.ValidationResult {
	var errs []string

	if plan.TotalLossDB > v.rules.MaxPassiveLossDB {
		errs = append(errs, fmt.Sprintf(
			"total passive loss %.1f dB exceeds the %.1f dB budget",
			plan.TotalLossDB, v.rules.MaxPassiveLossDB))
	}

	if len(plan.Stages) > 0 && plan.Stages[0].OutputPorts > plan.MaxSubscribers {
		errs = append(errs, fmt.Sprintf(
			"first stage exposes %d output ports but the plan serves at most %d subscribers",
			plan.Stages[0].OutputPorts, plan.MaxSubscribers))
	}

	// The tube system is the single sanctioned multi-stage template; any
	// new template must extend these checks together with the planner.
	if plan.Type == domain.TopologyTubeSystem {
		if len(plan.Stages) != 2 {
			errs = append(errs, fmt.Sprintf(
				"tube system must have exactly 2 stages, got %d", len(plan.Stages)))
		}
		if len(plan.Stages) >= 1 && plan.Stages[0].SplitterLabel != v.rules.TubePrimaryLabel {
			errs = append(errs, fmt.Sprintf(
				"tube system stage 1 must be a %s splitter, got %q",
				v.rules.TubePrimaryLabel, plan.Stages[0].SplitterLabel))
		}
		if len(plan.Stages) >= 2 && plan.Stages[1].SplitterLabel != v.rules.TubeSecondaryLabel {
			errs = append(errs, fmt.Sprintf(
				"tube system stage 2 must be a %s splitter, got %q",
				v.rules.TubeSecondaryLabel, plan.Stages[1].SplitterLabel))
		}
	}

	return domain.ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// AnalyzeExisting walks a deployed element's recorded outputs, resolves each
// referenced splitter and sums the real passive loss against the budget.
// Deployed data is expected to be imperfect: refs that resolve to nothing
// are recorded in SkippedRefs and do not abort the analysis.
func (v *Validator) AnalyzeExisting(ctx context.Context, root domain.Element) (*domain.ExistingAnalysis, error) {
	analysis := &domain.ExistingAnalysis{
		RootBusinessID:  root.BusinessID,
		Stages:          []domain.AnalysisStage{},
		Errors:          []string{},
		Warnings:        []string{},
		Recommendations: []string{},
		IsValid:         true,
	}

	cumulative := 0.0
	stage := 0
	for _, ref := range root.Outputs {
		if ref.Type != domain.ElementMS && ref.Type != domain.ElementSubMS {
			continue
		}

		elem, err := v.repo.FindByBusinessID(ctx, ref.Type, ref.BusinessID)
		if err != nil {
			if errors.Is(err, domain.ErrElementNotFound) {
				log.Printf("analysis of %s: skipping unresolvable %s ref %s", root.BusinessID, ref.Type, ref.BusinessID)
				analysis.SkippedRefs = append(analysis.SkippedRefs, ref)
				continue
			}
			return nil, fmt.Errorf("resolve %s %s: %w", ref.Type, ref.BusinessID, err)
		}

		label := ""
		if elem.SplitterLabel != nil {
			label = *elem.SplitterLabel
		}
		loss, err := v.rules.LossOf(label)
		if err != nil {
			analysis.Errors = append(analysis.Errors, fmt.Sprintf(
				"%s %s uses unknown split ratio %q", elem.Type, elem.BusinessID, label))
			analysis.IsValid = false
			continue
		}

		stage++
		cumulative += loss
		analysis.Stages = append(analysis.Stages, domain.AnalysisStage{
			Stage:            stage,
			DeviceType:       elem.Type,
			DeviceID:         elem.BusinessID,
			SplitterLabel:    label,
			LossDB:           loss,
			CumulativeLossDB: cumulative,
		})
	}

	analysis.TotalLossDB = math.Abs(cumulative)
	analysis.RemainingLossDB = v.rules.MaxPassiveLossDB - analysis.TotalLossDB

	switch {
	case analysis.TotalLossDB > v.rules.MaxPassiveLossDB:
		analysis.IsValid = false
		analysis.Errors = append(analysis.Errors, fmt.Sprintf(
			"deployed passive loss %.1f dB exceeds the %.1f dB budget",
			analysis.TotalLossDB, v.rules.MaxPassiveLossDB))
		analysis.Recommendations = append(analysis.Recommendations,
			"remove or consolidate splitter stages to bring the chain back inside the loss budget")
	case analysis.TotalLossDB == v.rules.MaxPassiveLossDB:
		analysis.Warnings = append(analysis.Warnings,
			"passive loss budget is fully consumed; no further passive elements can be added on this chain")
		analysis.Recommendations = append(analysis.Recommendations,
			"cannot add more passive elements; extend capacity from a new OLT port instead")
	default:
		analysis.Recommendations = append(analysis.Recommendations, fmt.Sprintf(
			"%.1f dB of passive loss budget remains on this chain", analysis.RemainingLossDB))
	}

	if len(analysis.SkippedRefs) > 0 {
		analysis.Warnings = append(analysis.Warnings, fmt.Sprintf(
			"%d output reference(s) did not resolve and were skipped; loss figures cover resolved elements only",
			len(analysis.SkippedRefs)))
	}

	return analysis, nil
}
