package topology

import (
	"context"

	"github.com/fibercare/backend-go/internal/domain"
)

// ElementRepository is the lookup surface the topology engine needs from
// the element store. Implementations must return stable orderings (business
// id ascending) so repeated resolutions over unchanged data are
// reproducible, and must signal a missing element with
// domain.ErrElementNotFound.
type ElementRepository interface {
	// FindByBusinessID resolves a single element by its business key
	FindByBusinessID(ctx context.Context, elementType domain.ElementType, businessID string) (*domain.Element, error)

	// FindByInput returns every element of childType whose input ref
	// matches the given parent (type, business id). Zero matches is an
	// empty slice, not an error.
	FindByInput(ctx context.Context, childType, parentType domain.ElementType, parentBusinessID string) ([]domain.Element, error)

	// FindCustomersByNetworkInput returns the customer records whose
	// network input references the given access terminal
	FindCustomersByNetworkInput(ctx context.Context, terminalType domain.ElementType, terminalBusinessID string) ([]domain.Element, error)
}
