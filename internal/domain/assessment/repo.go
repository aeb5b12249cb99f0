package assessment

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an assessment id does not exist.
var ErrNotFound = fmt.Errorf("assessment not found")

// Repository stores computed assessments for the life of the process so the
// export surfaces can re-read them. Implementations must be safe for
// concurrent use.
type Repository interface {
	Create(ctx context.Context, a *Assessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error)
	List(ctx context.Context, limit, offset int) ([]*Assessment, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// clone deep-copies an assessment, including the lab slice and the exchange
// plan's slices and meal maps, so repository callers never share backing
// storage with the store.
func clone(a *Assessment) *Assessment {
	cp := *a
	if a.Labs != nil {
		cp.Labs = append([]LabResult(nil), a.Labs...)
	}
	if a.Exchanges.Groups != nil {
		cp.Exchanges.Groups = make([]ExchangeAllocation, len(a.Exchanges.Groups))
		for i, g := range a.Exchanges.Groups {
			g.Item.Examples = append([]string(nil), g.Item.Examples...)
			cp.Exchanges.Groups[i] = g
		}
	}
	if a.Exchanges.Meals != nil {
		cp.Exchanges.Meals = make([]MealAllocation, len(a.Exchanges.Meals))
		for i, m := range a.Exchanges.Meals {
			portions := make(map[string]float64, len(m.Portions))
			for k, v := range m.Portions {
				portions[k] = v
			}
			cp.Exchanges.Meals[i] = MealAllocation{Meal: m.Meal, Portions: portions}
		}
	}
	return &cp
}

// inMemoryRepo keeps assessments in a map plus an insertion-order slice for
// stable listing. Values are cloned on the way in and out so callers never
// share memory with the store.
type inMemoryRepo struct {
	mu    sync.RWMutex
	store map[uuid.UUID]*Assessment
	order []uuid.UUID
}

// NewInMemoryRepository returns an empty in-process assessment store.
func NewInMemoryRepository() Repository {
	return &inMemoryRepo{store: make(map[uuid.UUID]*Assessment)}
}

func (r *inMemoryRepo) Create(_ context.Context, a *Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[a.ID]; exists {
		return fmt.Errorf("assessment %s already exists", a.ID)
	}
	r.store[a.ID] = clone(a)
	r.order = append(r.order, a.ID)
	return nil
}

func (r *inMemoryRepo) GetByID(_ context.Context, id uuid.UUID) (*Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(a), nil
}

func (r *inMemoryRepo) List(_ context.Context, limit, offset int) ([]*Assessment, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.order)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []*Assessment{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}

	out := make([]*Assessment, 0, end-offset)
	for _, id := range r.order[offset:end] {
		out = append(out, clone(r.store[id]))
	}
	return out, total, nil
}

func (r *inMemoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return ErrNotFound
	}
	delete(r.store, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
