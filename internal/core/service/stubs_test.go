package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medcollect/pickup-api/internal/core/domain"
)

var testLog = zerolog.Nop()

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Tokens = append([]string(nil), u.Tokens...)
	return &clone
}

// stubUserRepo is an in-memory UserRepository.
type stubUserRepo struct {
	users   map[string]*domain.User
	nextID  int
	updates int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	created, _ := r.Create(context.Background(), u)
	return created
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicate
		}
	}
	clone := cloneUser(user)
	if clone.ID == "" {
		r.nextID++
		clone.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	r.users[clone.ID] = cloneUser(clone)
	return clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) List(_ context.Context, driversOnly bool) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		if driversOnly {
			if u.Administrator {
				continue
			}
			out = append(out, &domain.User{ID: u.ID, Name: u.Name})
			continue
		}
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	r.users[user.ID] = cloneUser(user)
	r.updates++
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) DeleteMany(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.users[id]; ok {
			delete(r.users, id)
			n++
		}
	}
	return n, nil
}

// stubDriverRepo is an in-memory DriverRepository. It records which user ids
// the cascade asked it to delete.
type stubDriverRepo struct {
	drivers        map[string]*domain.Driver
	nextID         int
	cascadeUserIDs []string
}

func newStubDriverRepo() *stubDriverRepo {
	return &stubDriverRepo{drivers: make(map[string]*domain.Driver)}
}

func cloneDriver(d *domain.Driver) *domain.Driver {
	if d == nil {
		return nil
	}
	clone := *d
	return &clone
}

func (r *stubDriverRepo) add(d *domain.Driver) *domain.Driver {
	created, _ := r.Create(context.Background(), d)
	return created
}

func (r *stubDriverRepo) Create(_ context.Context, driver *domain.Driver) (*domain.Driver, error) {
	for _, d := range r.drivers {
		if d.UserID == driver.UserID {
			return nil, domain.ErrDuplicate
		}
	}
	clone := cloneDriver(driver)
	if clone.ID == "" {
		r.nextID++
		clone.ID = fmt.Sprintf("driver-%d", r.nextID)
	}
	r.drivers[clone.ID] = cloneDriver(clone)
	return clone, nil
}

func (r *stubDriverRepo) FindByID(_ context.Context, id string) (*domain.Driver, error) {
	d, ok := r.drivers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneDriver(d), nil
}

func (r *stubDriverRepo) FindByUserID(_ context.Context, userID string) (*domain.Driver, error) {
	for _, d := range r.drivers {
		if d.UserID == userID {
			return cloneDriver(d), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubDriverRepo) List(_ context.Context) ([]*domain.Driver, error) {
	out := make([]*domain.Driver, 0, len(r.drivers))
	for _, d := range r.drivers {
		out = append(out, cloneDriver(d))
	}
	return out, nil
}

func (r *stubDriverRepo) Update(_ context.Context, driver *domain.Driver) error {
	if _, ok := r.drivers[driver.ID]; !ok {
		return domain.ErrNotFound
	}
	r.drivers[driver.ID] = cloneDriver(driver)
	return nil
}

func (r *stubDriverRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.drivers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.drivers, id)
	return nil
}

func (r *stubDriverRepo) DeleteMany(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.drivers[id]; ok {
			delete(r.drivers, id)
			n++
		}
	}
	return n, nil
}

func (r *stubDriverRepo) DeleteByUserIDs(_ context.Context, userIDs []string) (int64, error) {
	r.cascadeUserIDs = append(r.cascadeUserIDs, userIDs...)
	var n int64
	for id, d := range r.drivers {
		for _, uid := range userIDs {
			if d.UserID == uid {
				delete(r.drivers, id)
				n++
				break
			}
		}
	}
	return n, nil
}

// stubClinicRepo is an in-memory ClinicRepository.
type stubClinicRepo struct {
	clinics map[string]*domain.Clinic
	nextID  int
}

func newStubClinicRepo() *stubClinicRepo {
	return &stubClinicRepo{clinics: make(map[string]*domain.Clinic)}
}

func cloneClinic(c *domain.Clinic) *domain.Clinic {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubClinicRepo) add(c *domain.Clinic) *domain.Clinic {
	created, _ := r.Create(context.Background(), c)
	return created
}

func (r *stubClinicRepo) Create(_ context.Context, clinic *domain.Clinic) (*domain.Clinic, error) {
	clone := cloneClinic(clinic)
	if clone.ID == "" {
		r.nextID++
		clone.ID = fmt.Sprintf("clinic-%d", r.nextID)
	}
	r.clinics[clone.ID] = cloneClinic(clone)
	return clone, nil
}

func (r *stubClinicRepo) FindByID(_ context.Context, id string) (*domain.Clinic, error) {
	c, ok := r.clinics[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneClinic(c), nil
}

func (r *stubClinicRepo) List(_ context.Context) ([]*domain.Clinic, error) {
	out := make([]*domain.Clinic, 0, len(r.clinics))
	for _, c := range r.clinics {
		out = append(out, cloneClinic(c))
	}
	return out, nil
}

func (r *stubClinicRepo) Update(_ context.Context, clinic *domain.Clinic) error {
	if _, ok := r.clinics[clinic.ID]; !ok {
		return domain.ErrNotFound
	}
	r.clinics[clinic.ID] = cloneClinic(clinic)
	return nil
}

func (r *stubClinicRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.clinics[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.clinics, id)
	return nil
}

func (r *stubClinicRepo) DeleteMany(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.clinics[id]; ok {
			delete(r.clinics, id)
			n++
		}
	}
	return n, nil
}

// stubPickupRepo is an in-memory PickupRepository with photo storage.
type stubPickupRepo struct {
	pickups map[string]*domain.Pickup
	photos  map[string][]byte
	nextID  int
}

func newStubPickupRepo() *stubPickupRepo {
	return &stubPickupRepo{
		pickups: make(map[string]*domain.Pickup),
		photos:  make(map[string][]byte),
	}
}

func clonePickup(p *domain.Pickup) *domain.Pickup {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPickupRepo) add(p *domain.Pickup) *domain.Pickup {
	created, _ := r.Create(context.Background(), p)
	return created
}

func (r *stubPickupRepo) Create(_ context.Context, pickup *domain.Pickup) (*domain.Pickup, error) {
	clone := clonePickup(pickup)
	if clone.ID == "" {
		r.nextID++
		clone.ID = fmt.Sprintf("pickup-%d", r.nextID)
	}
	r.pickups[clone.ID] = clonePickup(clone)
	return clone, nil
}

func (r *stubPickupRepo) FindByID(_ context.Context, id string) (*domain.Pickup, error) {
	p, ok := r.pickups[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clonePickup(p), nil
}

func (r *stubPickupRepo) List(_ context.Context, driverID string) ([]*domain.Pickup, error) {
	out := make([]*domain.Pickup, 0, len(r.pickups))
	for _, p := range r.pickups {
		if driverID != "" && p.DriverID != driverID {
			continue
		}
		out = append(out, clonePickup(p))
	}
	return out, nil
}

func (r *stubPickupRepo) Update(_ context.Context, pickup *domain.Pickup) error {
	if _, ok := r.pickups[pickup.ID]; !ok {
		return domain.ErrNotFound
	}
	r.pickups[pickup.ID] = clonePickup(pickup)
	return nil
}

func (r *stubPickupRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.pickups[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.pickups, id)
	delete(r.photos, id)
	return nil
}

func (r *stubPickupRepo) DeleteMany(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.pickups[id]; ok {
			delete(r.pickups, id)
			delete(r.photos, id)
			n++
		}
	}
	return n, nil
}

func (r *stubPickupRepo) GetPhoto(_ context.Context, id string) ([]byte, error) {
	photo, ok := r.photos[id]
	if !ok || len(photo) == 0 {
		return nil, domain.ErrNotFound
	}
	return photo, nil
}

func (r *stubPickupRepo) SetPhoto(_ context.Context, id string, photo []byte) error {
	if _, ok := r.pickups[id]; !ok {
		return domain.ErrNotFound
	}
	r.photos[id] = photo
	return nil
}

func (r *stubPickupRepo) ClearPhoto(_ context.Context, id string) error {
	if _, ok := r.photos[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.photos, id)
	return nil
}

// stubPhotoCache is an in-memory PhotoCache with an optional failure switch.
type stubPhotoCache struct {
	entries map[string][]byte
	fail    bool
}

func newStubPhotoCache() *stubPhotoCache {
	return &stubPhotoCache{entries: make(map[string][]byte)}
}

func (c *stubPhotoCache) Get(_ context.Context, pickupID string) ([]byte, error) {
	if c.fail {
		return nil, fmt.Errorf("cache down")
	}
	return c.entries[pickupID], nil
}

func (c *stubPhotoCache) Set(_ context.Context, pickupID string, photo []byte) error {
	if c.fail {
		return fmt.Errorf("cache down")
	}
	c.entries[pickupID] = photo
	return nil
}

func (c *stubPhotoCache) Invalidate(_ context.Context, pickupID string) error {
	if c.fail {
		return fmt.Errorf("cache down")
	}
	delete(c.entries, pickupID)
	return nil
}
