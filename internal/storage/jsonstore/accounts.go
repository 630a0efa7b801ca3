package jsonstore

import (
	"context"
	"fmt"
	"sort"

	"bikeshop/internal/models"
	"bikeshop/internal/storage"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(_ context.Context, user *models.User) (uint, error) {
	err := r.s.mutate(func(st *state) error {
		for _, u := range st.users.Records {
			if u.Username == user.Username {
				return fmt.Errorf("%w: %s", storage.ErrDuplicateUsername, user.Username)
			}
		}
		user.ID = st.users.next()
		st.users.Records[user.ID] = *user
		return nil
	}, colUsers)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

func (r *userRepo) Get(_ context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.s.view(func(st *state) error {
		u, ok := st.users.Records[id]
		if !ok {
			return storage.ErrNotFound
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.s.view(func(st *state) error {
		for _, u := range st.users.Records {
			if u.Username == username {
				user = u
				return nil
			}
		}
		return storage.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	return r.list(func(models.User) bool { return true })
}

func (r *userRepo) list(keep func(models.User) bool) ([]models.User, error) {
	var users []models.User
	err := r.s.view(func(st *state) error {
		for _, u := range st.users.Records {
			if keep(u) {
				users = append(users, u)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *userRepo) Update(_ context.Context, id uint, user *models.User) error {
	return r.s.mutate(func(st *state) error {
		if _, ok := st.users.Records[id]; !ok {
			return storage.ErrNotFound
		}
		for otherID, u := range st.users.Records {
			if otherID != id && u.Username == user.Username {
				return fmt.Errorf("%w: %s", storage.ErrDuplicateUsername, user.Username)
			}
		}
		user.ID = id
		st.users.Records[id] = *user
		return nil
	}, colUsers)
}

func (r *userRepo) Delete(_ context.Context, id uint) error {
	return r.s.mutate(func(st *state) error {
		if _, ok := st.users.Records[id]; !ok {
			return storage.ErrNotFound
		}
		delete(st.users.Records, id)
		return nil
	}, colUsers)
}

func (r *userRepo) FindByField(_ context.Context, field, value string, match storage.Match) ([]models.User, error) {
	switch field {
	case "username":
		return r.list(func(u models.User) bool { return matches(match, value, u.Username) })
	case "role":
		return r.list(func(u models.User) bool { return matches(match, value, u.Role) })
	}
	return nil, fmt.Errorf("%w: unsearchable field %q", storage.ErrValidation, field)
}

type staffRepo struct {
	s *Store
}

func (r *staffRepo) Create(_ context.Context, staff *models.Staff) (uint, error) {
	err := r.s.mutate(func(st *state) error {
		staff.ID = st.staff.next()
		st.staff.Records[staff.ID] = *staff
		return nil
	}, colStaff)
	if err != nil {
		return 0, err
	}
	return staff.ID, nil
}

func (r *staffRepo) Get(_ context.Context, id uint) (*models.Staff, error) {
	var staff models.Staff
	err := r.s.view(func(st *state) error {
		rec, ok := st.staff.Records[id]
		if !ok {
			return storage.ErrNotFound
		}
		staff = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) List(ctx context.Context) ([]models.Staff, error) {
	return r.list(func(models.Staff) bool { return true })
}

func (r *staffRepo) list(keep func(models.Staff) bool) ([]models.Staff, error) {
	var staff []models.Staff
	err := r.s.view(func(st *state) error {
		for _, rec := range st.staff.Records {
			if keep(rec) {
				staff = append(staff, rec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(staff, func(i, j int) bool { return staff[i].ID < staff[j].ID })
	return staff, nil
}

func (r *staffRepo) Update(_ context.Context, id uint, staff *models.Staff) error {
	return r.s.mutate(func(st *state) error {
		if _, ok := st.staff.Records[id]; !ok {
			return storage.ErrNotFound
		}
		staff.ID = id
		st.staff.Records[id] = *staff
		return nil
	}, colStaff)
}

func (r *staffRepo) Delete(_ context.Context, id uint) error {
	return r.s.mutate(func(st *state) error {
		if _, ok := st.staff.Records[id]; !ok {
			return storage.ErrNotFound
		}
		delete(st.staff.Records, id)
		return nil
	}, colStaff)
}

func (r *staffRepo) FindByField(_ context.Context, field, value string, match storage.Match) ([]models.Staff, error) {
	switch field {
	case "name":
		return r.list(func(s models.Staff) bool { return matches(match, value, s.Name) })
	case "position":
		return r.list(func(s models.Staff) bool { return matches(match, value, s.Position) })
	}
	return nil, fmt.Errorf("%w: unsearchable field %q", storage.ErrValidation, field)
}
