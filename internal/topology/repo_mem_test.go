package topology

import (
	"context"
	"sort"
	"sync"

	"github.com/fibercare/backend-go/internal/domain"
)

// memRepo is an in-memory ElementRepository for tests. Lookups are counted
// so tests can assert fan-out behavior.
type memRepo struct {
	mu       sync.Mutex
	elements []domain.Element
	lookups  int
	failWith error
}

func (m *memRepo) add(elems ...domain.Element) {
	m.elements = append(m.elements, elems...)
}

func (m *memRepo) bump() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	return m.failWith
}

func (m *memRepo) lookupCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups
}

func (m *memRepo) FindByBusinessID(ctx context.Context, elementType domain.ElementType, businessID string) (*domain.Element, error) {
	if err := m.bump(); err != nil {
		return nil, err
	}
	for i := range m.elements {
		if m.elements[i].Type == elementType && m.elements[i].BusinessID == businessID {
			elem := m.elements[i]
			return &elem, nil
		}
	}
	return nil, domain.ErrElementNotFound
}

func (m *memRepo) FindByInput(ctx context.Context, childType, parentType domain.ElementType, parentBusinessID string) ([]domain.Element, error) {
	if err := m.bump(); err != nil {
		return nil, err
	}
	matches := []domain.Element{}
	for _, e := range m.elements {
		if e.Type == childType && e.Input != nil &&
			e.Input.Type == parentType && e.Input.BusinessID == parentBusinessID {
			matches = append(matches, e)
		}
	}
	sort.Slice(matches, func(a, b int) bool { return matches[a].BusinessID < matches[b].BusinessID })
	return matches, nil
}

func (m *memRepo) FindCustomersByNetworkInput(ctx context.Context, terminalType domain.ElementType, terminalBusinessID string) ([]domain.Element, error) {
	return m.FindByInput(ctx, domain.ElementCustomer, terminalType, terminalBusinessID)
}

func strptr(s string) *string { return &s }

func splitter(t domain.ElementType, businessID, label string, input *domain.ElementRef) domain.Element {
	return domain.Element{
		Type:          t,
		BusinessID:    businessID,
		Name:          businessID,
		SplitterLabel: strptr(label),
		Status:        domain.ElementActive,
		Input:         input,
	}
}

func passthrough(t domain.ElementType, businessID string, input *domain.ElementRef) domain.Element {
	return domain.Element{
		Type:       t,
		BusinessID: businessID,
		Name:       businessID,
		Status:     domain.ElementActive,
		Input:      input,
	}
}

func ref(t domain.ElementType, businessID string) *domain.ElementRef {
	return &domain.ElementRef{Type: t, BusinessID: businessID}
}
