package topology

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fibercare/backend-go/internal/domain"
)

// childTypes fixes the traversal order down a PON: OLT fans out to primary
// splitters and distribution boxes, splitters to secondary splitters and
// boxes, boxes to access terminals, terminals to customers. Depth is at
// most five levels.
var childTypes = map[domain.ElementType][]domain.ElementType{
	domain.ElementOLT:   {domain.ElementMS, domain.ElementFDB},
	domain.ElementMS:    {domain.ElementSubMS, domain.ElementFDB},
	domain.ElementSubMS: {domain.ElementFDB},
	domain.ElementFDB:   {domain.ElementX2},
	domain.ElementX2:    {domain.ElementCustomer},
}

// Resolver reconstructs deployed topology trees by walking weak input
// references between independently stored element records. It is the only
// topology component that performs I/O; each invocation builds its own
// private tree and shares nothing.
type Resolver struct {
	rules Rules
	repo  ElementRepository
}

// NewResolver creates a Resolver over the given rule table and repository
func NewResolver(rules Rules, repo ElementRepository) *Resolver {
	return &Resolver{rules: rules, repo: repo}
}

// ResolveTopology materializes the full tree rooted at an OLT. A missing
// root surfaces domain.ErrElementNotFound; lookups that match nothing yield
// empty child lists. On cancellation or a repository error the invocation
// fails as a whole; a truncated tree is never returned as complete.
func (r *Resolver) ResolveTopology(ctx context.Context, rootBusinessID string) (*domain.TopologyTree, error) {
	root, err := r.repo.FindByBusinessID(ctx, domain.ElementOLT, rootBusinessID)
	if err != nil {
		return nil, err
	}

	node, err := r.resolveNode(ctx, *root, 0)
	if err != nil {
		return nil, err
	}

	tree := &domain.TopologyTree{
		Root:       node,
		ResolvedAt: time.Now().UTC(),
	}
	countNodes(node, &tree.ElementCount, &tree.CustomerCount)
	return tree, nil
}

// ResolveChildren is the single-level variant used by per-element
// topology views
func (r *Resolver) ResolveChildren(ctx context.Context, element domain.Element) (map[domain.ElementType][]domain.Element, error) {
	types := childTypes[element.Type]
	results, err := r.lookupChildren(ctx, element, types)
	if err != nil {
		return nil, err
	}

	byType := make(map[domain.ElementType][]domain.Element, len(types))
	for i, ct := range types {
		byType[ct] = results[i]
	}
	return byType, nil
}

// resolveNode builds one tree node, fanning out the sibling child-type
// lookups concurrently and joining before recursing. Children recurse
// sequentially in sorted order so the output is deterministic.
func (r *Resolver) resolveNode(ctx context.Context, element domain.Element, parentCumulative float64) (*domain.TreeNode, error) {
	stageLoss := 0.0
	if element.SplitterLabel != nil {
		loss, err := r.rules.LossOf(*element.SplitterLabel)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", element.Type, element.BusinessID, err)
		}
		stageLoss = loss
	}
	cumulative := parentCumulative + stageLoss

	node := &domain.TreeNode{
		Element:          element,
		StageLossDB:      stageLoss,
		CumulativeLossDB: cumulative,
	}

	types := childTypes[element.Type]
	if len(types) == 0 {
		return node, nil
	}

	results, err := r.lookupChildren(ctx, element, types)
	if err != nil {
		return nil, err
	}

	node.ConnectedDevices = make(map[domain.ElementType][]*domain.TreeNode, len(types))
	for i, ct := range types {
		children := make([]*domain.TreeNode, 0, len(results[i]))
		for _, child := range results[i] {
			childNode, err := r.resolveNode(ctx, child, cumulative)
			if err != nil {
				return nil, err
			}
			children = append(children, childNode)
		}
		node.ConnectedDevices[ct] = children
	}
	return node, nil
}

// lookupChildren issues one repository lookup per child type, in parallel,
// and sorts each result by business id. The first error wins; cancellation
// is reported as ErrResolutionCancelled.
func (r *Resolver) lookupChildren(ctx context.Context, parent domain.Element, types []domain.ElementType) ([][]domain.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrResolutionCancelled, err)
	}

	results := make([][]domain.Element, len(types))
	errs := make([]error, len(types))

	var wg sync.WaitGroup
	for i, ct := range types {
		wg.Add(1)
		go func(i int, ct domain.ElementType) {
			defer wg.Done()
			if ct == domain.ElementCustomer {
				results[i], errs[i] = r.repo.FindCustomersByNetworkInput(ctx, parent.Type, parent.BusinessID)
				return
			}
			results[i], errs[i] = r.repo.FindByInput(ctx, ct, parent.Type, parent.BusinessID)
		}(i, ct)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s", domain.ErrResolutionCancelled, ctx.Err())
			}
			return nil, fmt.Errorf("lookup children of %s %s: %w", parent.Type, parent.BusinessID, err)
		}
	}

	for i := range results {
		sort.Slice(results[i], func(a, b int) bool {
			return results[i][a].BusinessID < results[i][b].BusinessID
		})
	}
	return results, nil
}

func countNodes(node *domain.TreeNode, elements, customers *int) {
	if node == nil {
		return
	}
	*elements++
	if node.Element.Type == domain.ElementCustomer {
		*customers++
	}
	for _, children := range node.ConnectedDevices {
		for _, child := range children {
			countNodes(child, elements, customers)
		}
	}
}
