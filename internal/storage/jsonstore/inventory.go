package jsonstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

func matches(match storage.Match, value, candidate string) bool {
	if match == storage.MatchSubstring {
		return strings.Contains(strings.ToLower(candidate), strings.ToLower(value))
	}
	return candidate == value
}

type bikeRepo struct {
	s *Store
}

func (r *bikeRepo) Create(_ context.Context, bike *models.Bike) (uint, error) {
	err := r.s.mutate(func(st *state) error {
		bike.ID = st.bikes.next()
		st.bikes.Records[bike.ID] = *bike
		return nil
	}, colBikes)
	if err != nil {
		return 0, err
	}
	return bike.ID, nil
}

func (r *bikeRepo) Get(_ context.Context, id uint) (*models.Bike, error) {
	var bike models.Bike
	err := r.s.view(func(st *state) error {
		b, ok := st.bikes.Records[id]
		if !ok {
			return storage.ErrNotFound
		}
		bike = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bike, nil
}

func (r *bikeRepo) List(ctx context.Context) ([]models.Bike, error) {
	return r.list(func(models.Bike) bool { return true })
}

func (r *bikeRepo) ListInStock(ctx context.Context) ([]models.Bike, error) {
	return r.list(func(b models.Bike) bool { return b.Quantity > 0 })
}

func (r *bikeRepo) list(keep func(models.Bike) bool) ([]models.Bike, error) {
	var bikes []models.Bike
	err := r.s.view(func(st *state) error {
		for _, b := range st.bikes.Records {
			if keep(b) {
				bikes = append(bikes, b)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(bikes, func(i, j int) bool { return bikes[i].ID < bikes[j].ID })
	return bikes, nil
}

func (r *bikeRepo) Update(_ context.Context, id uint, bike *models.Bike) error {
	return r.s.mutate(func(st *state) error {
		if _, ok := st.bikes.Records[id]; !ok {
			return storage.ErrNotFound
		}
		bike.ID = id
		st.bikes.Records[id] = *bike
		return nil
	}, colBikes)
}

func (r *bikeRepo) Delete(_ context.Context, id uint) error {
	return r.s.mutate(func(st *state) error {
		if _, ok := st.bikes.Records[id]; !ok {
			return storage.ErrNotFound
		}
		delete(st.bikes.Records, id)
		return nil
	}, colBikes)
}

func (r *bikeRepo) FindByField(_ context.Context, field, value string, match storage.Match) ([]models.Bike, error) {
	switch field {
	case "model":
		return r.list(func(b models.Bike) bool { return matches(match, value, b.Model) })
	case "brand":
		return r.list(func(b models.Bike) bool { return matches(match, value, b.Brand) })
	}
	return nil, fmt.Errorf("%w: unsearchable field %q", storage.ErrValidation, field)
}

func (r *bikeRepo) Lookup(ctx context.Context, id uint) (storage.ItemInfo, error) {
	bike, err := r.Get(ctx, id)
	if err != nil {
		return storage.ItemInfo{}, err
	}
	return storage.ItemInfo{Price: bike.Price, Quantity: bike.Quantity}, nil
}

func (r *bikeRepo) AdjustQuantity(_ context.Context, id uint, delta int) error {
	return r.s.mutate(func(st *state) error {
		bike, ok := st.bikes.Records[id]
		if !ok {
			return storage.ErrNotFound
		}
		next := int(bike.Quantity) + delta
		if next < 0 {
			return fmt.Errorf("%w: bike %d has %d, requested %d",
				storage.ErrInsufficientStock, id, bike.Quantity, -delta)
		}
		bike.Quantity = uint(next)
		st.bikes.Records[id] = bike
		return nil
	}, colBikes)
}

type partRepo struct {
	s *Store
}

func (r *partRepo) Create(_ context.Context, part *models.Part) (uint, error) {
	err := r.s.mutate(func(st *state) error {
		part.ID = st.parts.next()
		st.parts.Records[part.ID] = *part
		return nil
	}, colParts)
	if err != nil {
		return 0, err
	}
	return part.ID, nil
}

func (r *partRepo) Get(_ context.Context, id uint) (*models.Part, error) {
	var part models.Part
	err := r.s.view(func(st *state) error {
		p, ok := st.parts.Records[id]
		if !ok {
			return storage.ErrNotFound
		}
		part = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *partRepo) List(ctx context.Context) ([]models.Part, error) {
	return r.list(func(models.Part) bool { return true })
}

func (r *partRepo) ListInStock(ctx context.Context) ([]models.Part, error) {
	return r.list(func(p models.Part) bool { return p.Quantity > 0 })
}

func (r *partRepo) list(keep func(models.Part) bool) ([]models.Part, error) {
	var parts []models.Part
	err := r.s.view(func(st *state) error {
		for _, p := range st.parts.Records {
			if keep(p) {
				parts = append(parts, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].ID < parts[j].ID })
	return parts, nil
}

func (r *partRepo) Update(_ context.Context, id uint, part *models.Part) error {
	return r.s.mutate(func(st *state) error {
		if _, ok := st.parts.Records[id]; !ok {
			return storage.ErrNotFound
		}
		part.ID = id
		st.parts.Records[id] = *part
		return nil
	}, colParts)
}

func (r *partRepo) Delete(_ context.Context, id uint) error {
	return r.s.mutate(func(st *state) error {
		if _, ok := st.parts.Records[id]; !ok {
			return storage.ErrNotFound
		}
		delete(st.parts.Records, id)
		return nil
	}, colParts)
}

func (r *partRepo) FindByField(_ context.Context, field, value string, match storage.Match) ([]models.Part, error) {
	switch field {
	case "name":
		return r.list(func(p models.Part) bool { return matches(match, value, p.Name) })
	case "category":
		return r.list(func(p models.Part) bool { return matches(match, value, p.Category) })
	}
	return nil, fmt.Errorf("%w: unsearchable field %q", storage.ErrValidation, field)
}

func (r *partRepo) Lookup(ctx context.Context, id uint) (storage.ItemInfo, error) {
	part, err := r.Get(ctx, id)
	if err != nil {
		return storage.ItemInfo{}, err
	}
	return storage.ItemInfo{Price: part.Price, Quantity: part.Quantity}, nil
}

func (r *partRepo) AdjustQuantity(_ context.Context, id uint, delta int) error {
	return r.s.mutate(func(st *state) error {
		part, ok := st.parts.Records[id]
		if !ok {
			return storage.ErrNotFound
		}
		next := int(part.Quantity) + delta
		if next < 0 {
			return fmt.Errorf("%w: part %d has %d, requested %d",
				storage.ErrInsufficientStock, id, part.Quantity, -delta)
		}
		part.Quantity = uint(next)
		st.parts.Records[id] = part
		return nil
	}, colParts)
}
