package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fibercare/backend-go/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ElementStore is the pgx-backed element repository. Each element is one
// JSONB document; lookups by input ref match the weak (type, business id)
// pair inside the document, so dangling and duplicate refs behave the same
// as in the source data.
type ElementStore struct {
	pool *pgxpool.Pool
}

// NewElementStore creates an ElementStore over a connection pool
func NewElementStore(pool *pgxpool.Pool) *ElementStore {
	return &ElementStore{pool: pool}
}

// Create inserts a new element. A taken (type, business id) pair is
// reported as domain.ErrDuplicateBusinessID.
func (s *ElementStore) Create(ctx context.Context, elem domain.Element) (*domain.Element, error) {
	if elem.ID == "" {
		elem.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	elem.CreatedAt = now
	elem.UpdatedAt = now
	if elem.Status == "" {
		elem.Status = domain.ElementActive
	}

	doc, err := json.Marshal(elem)
	if err != nil {
		return nil, fmt.Errorf("marshal element: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO network_elements (id, element_type, business_id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)`,
		elem.ID, string(elem.Type), elem.BusinessID, doc, now)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%s %s: %w", elem.Type, elem.BusinessID, domain.ErrDuplicateBusinessID)
		}
		return nil, fmt.Errorf("insert element: %w", err)
	}
	return &elem, nil
}

// FindByBusinessID resolves a single element by its business key
func (s *ElementStore) FindByBusinessID(ctx context.Context, elementType domain.ElementType, businessID string) (*domain.Element, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT doc FROM network_elements
		WHERE element_type = $1 AND business_id = $2`,
		string(elementType), businessID)

	var doc []byte
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s %s: %w", elementType, businessID, domain.ErrElementNotFound)
		}
		return nil, fmt.Errorf("query element: %w", err)
	}
	return unmarshalElement(doc)
}

// FindByInput returns every element of childType whose input ref points at
// the given parent, ordered by business id for reproducible traversals
func (s *ElementStore) FindByInput(ctx context.Context, childType, parentType domain.ElementType, parentBusinessID string) ([]domain.Element, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT doc FROM network_elements
		WHERE element_type = $1
		  AND doc->'input'->>'type' = $2
		  AND doc->'input'->>'business_id' = $3
		ORDER BY business_id ASC`,
		string(childType), string(parentType), parentBusinessID)
	if err != nil {
		return nil, fmt.Errorf("query elements by input: %w", err)
	}
	defer rows.Close()

	return scanElements(rows)
}

// FindCustomersByNetworkInput returns customer records fed by the given
// access terminal
func (s *ElementStore) FindCustomersByNetworkInput(ctx context.Context, terminalType domain.ElementType, terminalBusinessID string) ([]domain.Element, error) {
	return s.FindByInput(ctx, domain.ElementCustomer, terminalType, terminalBusinessID)
}

// ListByType returns every element of one type, ordered by business id
func (s *ElementStore) ListByType(ctx context.Context, elementType domain.ElementType) ([]domain.Element, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT doc FROM network_elements
		WHERE element_type = $1
		ORDER BY business_id ASC`,
		string(elementType))
	if err != nil {
		return nil, fmt.Errorf("query elements by type: %w", err)
	}
	defer rows.Close()

	return scanElements(rows)
}

func scanElements(rows pgx.Rows) ([]domain.Element, error) {
	elements := []domain.Element{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan element: %w", err)
		}
		elem, err := unmarshalElement(doc)
		if err != nil {
			return nil, err
		}
		elements = append(elements, *elem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate elements: %w", err)
	}
	return elements, nil
}

func unmarshalElement(doc []byte) (*domain.Element, error) {
	var elem domain.Element
	if err := json.Unmarshal(doc, &elem); err != nil {
		return nil, fmt.Errorf("unmarshal element doc: %w", err)
	}
	return &elem, nil
}
