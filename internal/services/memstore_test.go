package services

import (
	"context"
	"sort"
	"sync"

	"github.com/kurrle/espresso-helper/internal/database"
)

// memBeanStore is an in-memory BeanStore for service tests. It mirrors the
// repository's contract: copies in, copies out, ids assigned on first save.
type memBeanStore struct {
	mu     sync.Mutex
	nextID uint
	beans  map[uint]database.CoffeeBean
}

func newMemBeanStore() *memBeanStore {
	return &memBeanStore{nextID: 1, beans: make(map[uint]database.CoffeeBean)}
}

func (s *memBeanStore) Save(_ context.Context, bean *database.CoffeeBean) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if bean.ID == 0 {
		bean.ID = s.nextID
		s.nextID++
	}
	s.beans[bean.ID] = *bean
	return nil
}

func (s *memBeanStore) FindByID(_ context.Context, id uint) (*database.CoffeeBean, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bean, ok := s.beans[id]
	if !ok {
		return nil, nil
	}
	return &bean, nil
}

func (s *memBeanStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.beans, id)
	return nil
}

func (s *memBeanStore) ListByOwner(_ context.Context, ownerID uint, page database.Page) ([]database.CoffeeBean, error) {
	return s.list(ownerID, page, false)
}

func (s *memBeanStore) ListActiveByOwner(_ context.Context, ownerID uint, page database.Page) ([]database.CoffeeBean, error) {
	return s.list(ownerID, page, true)
}

func (s *memBeanStore) list(ownerID uint, page database.Page, activeOnly bool) ([]database.CoffeeBean, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []database.CoffeeBean
	for _, bean := range s.beans {
		if bean.UserID != ownerID {
			continue
		}
		if activeOnly && !bean.Active {
			continue
		}
		out = append(out, bean)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return paginate(out, page), nil
}

// memShotStore is an in-memory ShotStore. Reviews live in their own map,
// keyed by shot id, which keeps the one-review-per-shot rule structural.
type memShotStore struct {
	mu       sync.Mutex
	nextID   uint
	shots    map[uint]database.EspressoShot
	reviews  map[uint]database.ShotReview
	beansRef *memBeanStore
}

func newMemShotStore(beans *memBeanStore) *memShotStore {
	return &memShotStore{
		nextID:   1,
		shots:    make(map[uint]database.EspressoShot),
		reviews:  make(map[uint]database.ShotReview),
		beansRef: beans,
	}
}

func (s *memShotStore) Save(_ context.Context, shot *database.EspressoShot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if shot.ID == 0 {
		shot.ID = s.nextID
		s.nextID++
	}
	stored := *shot
	stored.Bean = nil
	stored.Review = nil
	s.shots[shot.ID] = stored
	return nil
}

func (s *memShotStore) FindByID(_ context.Context, id uint) (*database.EspressoShot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	shot, ok := s.shots[id]
	if !ok {
		return nil, nil
	}
	return &shot, nil
}

func (s *memShotStore) FindByIDWithDetails(ctx context.Context, id uint) (*database.EspressoShot, error) {
	shot, err := s.FindByID(ctx, id)
	if err != nil || shot == nil {
		return shot, err
	}
	if shot.BeanID != nil && s.beansRef != nil {
		bean, _ := s.beansRef.FindByID(ctx, *shot.BeanID)
		shot.Bean = bean
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if review, ok := s.reviews[id]; ok {
		shot.Review = &review
	}
	return shot, nil
}

func (s *memShotStore) ListByOwner(_ context.Context, ownerID uint, page database.Page) ([]database.EspressoShot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []database.EspressoShot
	for _, shot := range s.shots {
		if shot.UserID == ownerID {
			out = append(out, shot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return paginate(out, page), nil
}

func (s *memShotStore) DeleteWithReview(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.shots, id)
	delete(s.reviews, id)
	return nil
}

func (s *memShotStore) ReplaceReview(_ context.Context, shotID uint, review *database.ShotReview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if review.ID == 0 {
		review.ID = s.nextID
		s.nextID++
	}
	review.ShotID = shotID
	s.reviews[shotID] = *review
	return nil
}

func (s *memShotStore) FindReviewByShot(_ context.Context, shotID uint) (*database.ShotReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	review, ok := s.reviews[shotID]
	if !ok {
		return nil, nil
	}
	return &review, nil
}

// memUserStore is an in-memory UserStore keyed by telegram id.
type memUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[int64]database.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{nextID: 1, users: make(map[int64]database.User)}
}

func (s *memUserStore) GetOrCreate(_ context.Context, telegramID int64, username, firstName, lastName string) (*database.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[telegramID]; ok {
		return &user, nil
	}
	user := database.User{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
	}
	user.ID = s.nextID
	s.nextID++
	s.users[telegramID] = user
	return &user, nil
}

func (s *memUserStore) GetByTelegramID(_ context.Context, telegramID int64) (*database.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[telegramID]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func paginate[T any](items []T, page database.Page) []T {
	offset := page.Offset()
	if offset >= len(items) {
		return nil
	}
	end := offset + page.Limit()
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
