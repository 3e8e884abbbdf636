package forms

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrItemNotFound is returned when no item carries the requested id.
	ErrItemNotFound = errors.New("forms: line item not found")

	// ErrLastItem is returned when removing the only remaining item.
	ErrLastItem = errors.New("forms: cannot remove the last line item")
)

// Item is a line item with a stable identity and a primary description.
type Item interface {
	ItemID() string
	Description() string
}

// NewWorkOrderItem returns an empty work-order row with a fresh id.
func NewWorkOrderItem() WorkOrderItem {
	return WorkOrderItem{ID: uuid.NewString()}
}

// NewWorkItem returns an empty daily-report row with a fresh id.
func NewWorkItem() WorkItem {
	return WorkItem{ID: uuid.NewString()}
}

// Populated reports whether the item's description is non-blank.
func Populated(it Item) bool {
	return strings.TrimSpace(it.Description()) != ""
}

// HasPopulated reports whether at least one item is populated.
func HasPopulated[T Item](items []T) bool {
	for _, it := range items {
		if Populated(it) {
			return true
		}
	}
	return false
}

// PopulatedItems returns the populated items in their original order.
func PopulatedItems[T Item](items []T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Populated(it) {
			out = append(out, it)
		}
	}
	return out
}

// AddItem appends it to items, assigning an id when it has none.
func AddItem[T Item](items []T, it T, withID func(T, string) T) []T {
	if it.ItemID() == "" {
		it = withID(it, uuid.NewString())
	}
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, it)
}

// RemoveItem returns items without the item identified by id.
// The last remaining item cannot be removed.
func RemoveItem[T Item](items []T, id string) ([]T, error) {
	idx := indexOf(items, id)
	if idx < 0 {
		return items, ErrItemNotFound
	}
	if len(items) == 1 {
		return items, ErrLastItem
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...), nil
}

// UpdateItem returns a copy of items with fn applied to the item identified by id.
func UpdateItem[T Item](items []T, id string, fn func(T) T) ([]T, error) {
	idx := indexOf(items, id)
	if idx < 0 {
		return items, ErrItemNotFound
	}
	out := make([]T, len(items))
	copy(out, items)
	out[idx] = fn(out[idx])
	return out, nil
}

// WithWorkOrderItemID sets the id of a work-order row.
func WithWorkOrderItemID(it WorkOrderItem, id string) WorkOrderItem {
	it.ID = id
	return it
}

// WithWorkItemID sets the id of a daily-report row.
func WithWorkItemID(it WorkItem, id string) WorkItem {
	it.ID = id
	return it
}

func indexOf[T Item](items []T, id string) int {
	for i, it := range items {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}
