package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/inventory"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación en memoria de InventoryItemRepository.
type ItemRepo struct {
	s  *Store
	tx bool
}

func (r *ItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	defer r.s.lockWrite(r.tx)()
	r.s.st.items[item.ID] = cloneItem(item)
	r.s.st.itemOrder = append(r.s.st.itemOrder, item.ID)
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	item, ok := r.s.st.items[id]
	if !ok {
		return nil, nil
	}
	return cloneItem(item), nil
}

func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

// List ordenado por nombre.
func (r *ItemRepo) List(_ context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []*entity.InventoryItem
	for _, id := range r.s.st.itemOrder {
		item := r.s.st.items[id]
		if f.Category != "" && item.Category != f.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.ItemName), search) {
			continue
		}
		if f.NeedsRestock && !inventory.NeedsRestock(item) {
			continue
		}
		out = append(out, cloneItem(item))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ItemName < out[j].ItemName })
	return out, nil
}

func (r *ItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.st.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.items[item.ID] = cloneItem(item)
	return nil
}

func (r *ItemRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.st.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.st.items, id)
	r.s.st.itemOrder = removeID(r.s.st.itemOrder, id)
	return nil
}
