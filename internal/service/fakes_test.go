package service

import (
	"context"
	"mime/multipart"
	"sort"
	"sync"
	"time"

	"github.com/Payphone-Digital/carrental/internal/model"
	"github.com/Payphone-Digital/carrental/internal/repository"
	"gorm.io/gorm"
)

type fakeUserStore struct {
	mu     sync.Mutex
	users  []model.User
	nextID uint

	// skipConflicts makes the first FindConflicts call report nothing, as
	// if a competing insert landed after the pre-check.
	skipConflicts bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1}
}

func (f *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		switch {
		case u.MobileNumber == user.MobileNumber:
			return &repository.DuplicateKeyError{Constraint: model.UserMobileIndex, Err: gorm.ErrDuplicatedKey}
		case u.LicenseNumber == user.LicenseNumber:
			return &repository.DuplicateKeyError{Constraint: model.UserLicenseIndex, Err: gorm.ErrDuplicatedKey}
		case u.Email == user.Email:
			return &repository.DuplicateKeyError{Constraint: model.UserEmailIndex, Err: gorm.ErrDuplicatedKey}
		}
	}

	user.ID = f.nextID
	f.nextID++
	if user.Role == "" {
		user.Role = "user"
	}
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) GetByMobile(ctx context.Context, mobile string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.MobileNumber == mobile {
			found := u
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) FindConflicts(ctx context.Context, mobile, license, email string) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.skipConflicts {
		f.skipConflicts = false
		return nil, nil
	}

	var out []model.User
	for _, u := range f.users {
		if u.MobileNumber == mobile || u.LicenseNumber == license || u.Email == email {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) FindOthersByMobileOrEmail(ctx context.Context, excludeID uint, mobile, email string) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.User
	for _, u := range f.users {
		if u.ID != excludeID && (u.MobileNumber == mobile || u.Email == email) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) UpdateProfile(ctx context.Context, id uint, update repository.ProfileUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := -1
	for i, u := range f.users {
		if u.ID == id {
			idx = i
			continue
		}
		if u.MobileNumber == update.MobileNumber {
			return &repository.DuplicateKeyError{Constraint: model.UserMobileIndex}
		}
		if u.Email == update.Email {
			return &repository.DuplicateKeyError{Constraint: model.UserEmailIndex}
		}
	}
	if idx < 0 {
		return gorm.ErrRecordNotFound
	}

	f.users[idx].Name = update.Name
	f.users[idx].Email = update.Email
	f.users[idx].MobileNumber = update.MobileNumber
	f.users[idx].Address = update.Address
	return nil
}

type fakeVerificationStore struct {
	mu     sync.Mutex
	rows   []model.PhoneVerification
	nextID uint
}

func (f *fakeVerificationStore) Create(ctx context.Context, v *model.PhoneVerification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	v.ID = f.nextID
	v.CreatedAt = time.Now().UTC()
	f.rows = append(f.rows, *v)
	return nil
}

func (f *fakeVerificationStore) FindLatestValid(ctx context.Context, mobile, code string, now time.Time) (*model.PhoneVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var match *model.PhoneVerification
	for i := range f.rows {
		r := f.rows[i]
		if r.MobileNumber != mobile || r.VerificationCode != code || r.Used || !r.ExpiresAt.After(now) {
			continue
		}
		if match == nil || r.ID > match.ID {
			match = &r
		}
	}
	if match == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return match, nil
}

func (f *fakeVerificationStore) MarkUsed(ctx context.Context, id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.rows {
		if f.rows[i].ID == id && !f.rows[i].Used {
			f.rows[i].Used = true
			return true, nil
		}
	}
	return false, nil
}

type fakeCarStore struct {
	mu     sync.Mutex
	cars   map[uint]model.Car
	nextID uint
}

func newFakeCarStore() *fakeCarStore {
	return &fakeCarStore{cars: map[uint]model.Car{}}
}

func (f *fakeCarStore) Create(ctx context.Context, car *model.Car) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	car.ID = f.nextID
	f.cars[car.ID] = *car
	return nil
}

func (f *fakeCarStore) GetByID(ctx context.Context, id uint) (*model.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	car, ok := f.cars[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &car, nil
}

func (f *fakeCarStore) ListByOwner(ctx context.Context, userID uint) ([]model.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.Car
	for _, c := range f.cars {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeCarStore) Update(ctx context.Context, car *model.Car) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.cars[car.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.cars[car.ID] = *car
	return nil
}

func (f *fakeCarStore) Delete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.cars[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.cars, id)
	return nil
}

func (f *fakeCarStore) Search(ctx context.Context, q repository.CarSearch) ([]model.Car, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.Car
	for _, c := range f.cars {
		if q.MinPrice != nil && c.PricePerDay.LessThan(*q.MinPrice) {
			continue
		}
		if q.MaxPrice != nil && c.PricePerDay.GreaterThan(*q.MaxPrice) {
			continue
		}
		if q.MinSeats > 0 && c.Seats < q.MinSeats {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	total := int64(len(out))
	if q.Offset >= len(out) {
		return []model.Car{}, total, nil
	}
	end := q.Offset + q.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[q.Offset:end], total, nil
}

type fakeFileStore struct {
	mu          sync.Mutex
	validateErr map[string]error
	saved       map[string]string
	removed     []string
	seq         int
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{
		validateErr: map[string]error{},
		saved:       map[string]string{},
	}
}

func (f *fakeFileStore) Validate(fh *multipart.FileHeader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateErr[fh.Filename]
}

func (f *fakeFileStore) Save(subdir string, fh *multipart.FileHeader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	name := subdir + "-" + string(rune('a'+f.seq)) + ".png"
	f.saved[name] = subdir
	return name, nil
}

func (f *fakeFileStore) Remove(subdir, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.saved, name)
	f.removed = append(f.removed, name)
	return nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func (n *recordingNotifier) SendVerificationCode(ctx context.Context, mobile, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.err != nil {
		return n.err
	}
	if n.codes == nil {
		n.codes = map[string]string{}
	}
	n.codes[mobile] = code
	return nil
}
