package domain

import "time"

// ElementType identifies the kind of PON network element
type ElementType string

const (
	ElementOLT      ElementType = "olt"
	ElementMS       ElementType = "ms"    // primary splitter
	ElementSubMS    ElementType = "subms" // secondary splitter
	ElementFDB      ElementType = "fdb"   // fiber distribution box
	ElementX2       ElementType = "x2"    // access terminal
	ElementCustomer ElementType = "customer"
)

// Prefix returns the short uppercase prefix used in generated device names
func (t ElementType) Prefix() string {
	switch t {
	case ElementOLT:
		return "OLT"
	case ElementMS:
		return "MS"
	case ElementSubMS:
		return "SUBMS"
	case ElementFDB:
		return "FDB"
	case ElementX2:
		return "X2"
	case ElementCustomer:
		return "CUST"
	default:
		return "DEV"
	}
}

// ElementStatus describes the operational state of a deployed element
type ElementStatus string

const (
	ElementActive      ElementStatus = "active"
	ElementInactive    ElementStatus = "inactive"
	ElementMaintenance ElementStatus = "maintenance"
)

// ElementRef is a weak reference to another network element. Elements are
// stored independently; a ref resolves by equality of (type, business id)
// against the target's own business identifier, never by foreign key.
// Duplicate or dangling refs are expected in deployed data.
type ElementRef struct {
	Type        ElementType `json:"type" binding:"required"`
	BusinessID  string      `json:"business_id" binding:"required"`
	Port        *string     `json:"port,omitempty"`
	Description *string     `json:"description,omitempty"`
}

// Matches reports whether this ref points at the given element
func (r ElementRef) Matches(e *Element) bool {
	return e != nil && r.Type == e.Type && r.BusinessID == e.BusinessID
}

// Element is a live network element record. The same shape covers every
// element type; splitter-specific fields are nil for passthrough elements
// (FDB and X2 carry no optical loss in this model).
type Element struct {
	ID            string         `json:"id"`
	Type          ElementType    `json:"type" binding:"required"`
	BusinessID    string         `json:"business_id" binding:"required"`
	Name          string         `json:"name"`
	SplitterLabel *string        `json:"splitter_label,omitempty"` // "1x2".."1x64"
	Technology    *string        `json:"technology,omitempty"`     // OLT only
	Status        ElementStatus  `json:"status"`
	Input         *ElementRef    `json:"input,omitempty"`
	Outputs       []ElementRef   `json:"outputs,omitempty"`
	Location      *string        `json:"location,omitempty"`
	Attributes    map[string]any `json:"attributes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// TreeNode is one node of a resolved topology tree: the element record plus
// its connected devices keyed by child type. Trees are built on demand per
// query and never persisted.
type TreeNode struct {
	Element          Element                     `json:"element"`
	StageLossDB      float64                     `json:"stage_loss_db"`
	CumulativeLossDB float64                     `json:"cumulative_loss_db"`
	ConnectedDevices map[ElementType][]*TreeNode `json:"connected_devices,omitempty"`
}

// TopologyTree is the materialized view of a deployed PON rooted at an OLT
type TopologyTree struct {
	Root          *TreeNode `json:"root"`
	ElementCount  int       `json:"element_count"`
	CustomerCount int       `json:"customer_count"`
	ResolvedAt    time.Time `json:"resolved_at"`
}
