package fakeserver

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fivetwenty-io/lostfound-e2e/internal/constants"
	"github.com/fivetwenty-io/lostfound-e2e/pkg/lostfound"
)

// Static errors for err113 compliance.
var (
	ErrEmailExists  = errors.New("email is already in use")
	ErrUserNotFound = errors.New("user not found")
	ErrItemNotFound = errors.New("item not found")
)

type account struct {
	user         lostfound.User
	passwordHash []byte
}

// store keeps every record in memory. All methods return copies.
type store struct {
	mu sync.RWMutex

	nextUserID  int64
	nextLostID  int64
	nextFoundID int64

	users      map[int64]*account
	emails     map[string]int64
	lostItems  map[int64]*lostfound.LostItem
	foundItems map[int64]*lostfound.FoundItem
	activity   []lostfound.Activity
}

func newStore() *store {
	return &store{
		users:      make(map[int64]*account),
		emails:     make(map[string]int64),
		lostItems:  make(map[int64]*lostfound.LostItem),
		foundItems: make(map[int64]*lostfound.FoundItem),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *store) createUser(user lostfound.User, passwordHash []byte, now time.Time) (lostfound.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(user.Email)
	if _, ok := s.emails[key]; ok {
		return lostfound.User{}, ErrEmailExists
	}

	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = now

	s.users[user.ID] = &account{user: user, passwordHash: passwordHash}
	s.emails[key] = user.ID
	s.record(lostfound.Activity{Action: "USER_REGISTERED", UserID: user.ID, Timestamp: now})

	return user, nil
}

func (s *store) userByEmail(email string) (lostfound.User, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[normalizeEmail(email)]
	if !ok {
		return lostfound.User{}, nil, ErrUserNotFound
	}

	acc := s.users[id]

	return acc.user, acc.passwordHash, nil
}

func (s *store) userByID(id int64) (lostfound.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.users[id]
	if !ok {
		return lostfound.User{}, ErrUserNotFound
	}

	return acc.user, nil
}

func (s *store) listUsers() []lostfound.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]lostfound.User, 0, len(s.users))
	for _, acc := range s.users {
		out = append(out, acc.user)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

func (s *store) setBanned(id int64, banned bool, now time.Time) (lostfound.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.users[id]
	if !ok {
		return lostfound.User{}, ErrUserNotFound
	}

	acc.user.IsBanned = banned

	action := "USER_UNBANNED"
	if banned {
		action = "USER_BANNED"
	}

	s.record(lostfound.Activity{Action: action, UserID: id, Timestamp: now})

	return acc.user, nil
}

func (s *store) createLost(item lostfound.LostItem, now time.Time) lostfound.LostItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextLostID++
	item.ID = s.nextLostID
	item.Status = lostfound.StatusPending
	item.CreatedAt = now
	item.UpdatedAt = now

	stored := item
	s.lostItems[item.ID] = &stored
	s.record(lostfound.Activity{
		Action: "ITEM_REPORTED", ItemType: lostfound.ItemTypeLost, ItemID: item.ID, UserID: item.UserID, Timestamp: now,
	})

	return item
}

func (s *store) createFound(item lostfound.FoundItem, now time.Time) lostfound.FoundItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextFoundID++
	item.ID = s.nextFoundID
	item.Status = lostfound.StatusPending
	item.CreatedAt = now
	item.UpdatedAt = now

	stored := item
	s.foundItems[item.ID] = &stored
	s.record(lostfound.Activity{
		Action: "ITEM_REPORTED", ItemType: lostfound.ItemTypeFound, ItemID: item.ID, UserID: item.UserID, Timestamp: now,
	})

	return item
}

func (s *store) lostByID(id int64) (lostfound.LostItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.lostItems[id]
	if !ok {
		return lostfound.LostItem{}, ErrItemNotFound
	}

	return *item, nil
}

func (s *store) foundByID(id int64) (lostfound.FoundItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.foundItems[id]
	if !ok {
		return lostfound.FoundItem{}, ErrItemNotFound
	}

	return *item, nil
}

func (s *store) lostByOwner(userID int64) []lostfound.LostItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]lostfound.LostItem, 0)

	for _, item := range s.lostItems {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

func (s *store) searchFound(query string) []lostfound.FoundItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]lostfound.FoundItem, 0)

	for _, item := range s.foundItems {
		if query == "" ||
			strings.Contains(strings.ToLower(item.Title), query) ||
			strings.Contains(strings.ToLower(item.Description), query) {
			out = append(out, *item)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

func (s *store) updateLost(id int64, apply func(*lostfound.LostItem), now time.Time) (lostfound.LostItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.lostItems[id]
	if !ok {
		return lostfound.LostItem{}, ErrItemNotFound
	}

	apply(item)
	item.UpdatedAt = now

	return *item, nil
}

func (s *store) updateFound(id int64, apply func(*lostfound.FoundItem), now time.Time) (lostfound.FoundItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.foundItems[id]
	if !ok {
		return lostfound.FoundItem{}, ErrItemNotFound
	}

	apply(item)
	item.UpdatedAt = now

	return *item, nil
}

func (s *store) deleteLost(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.lostItems, id)
}

func (s *store) deleteFound(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.foundItems, id)
}

func (s *store) moderated(itemType lostfound.ItemType, id int64, status lostfound.ItemStatus, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record(lostfound.Activity{Action: "ITEM_" + string(status), ItemType: itemType, ItemID: id, Timestamp: now})
}

func (s *store) report() lostfound.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var report lostfound.Report

	for _, acc := range s.users {
		report.UserStats.Total++

		if acc.user.IsBanned {
			report.UserStats.Banned++
		}

		if acc.user.Role == lostfound.RoleAdmin {
			report.UserStats.Admins++
		}
	}

	count := func(status lostfound.ItemStatus) {
		switch status {
		case lostfound.StatusPending:
			report.ItemStats.Pending++
		case lostfound.StatusApproved:
			report.ItemStats.Approved++
		case lostfound.StatusRejected:
			report.ItemStats.Rejected++
		}
	}

	for _, item := range s.lostItems {
		report.ItemStats.Lost++
		count(item.Status)
	}

	for _, item := range s.foundItems {
		report.ItemStats.Found++
		count(item.Status)
	}

	limit := len(s.activity)
	if limit > constants.RecentActivityLimit {
		limit = constants.RecentActivityLimit
	}

	report.RecentActivity = make([]lostfound.Activity, 0, limit)
	for i := len(s.activity) - 1; i >= len(s.activity)-limit; i-- {
		report.RecentActivity = append(report.RecentActivity, s.activity[i])
	}

	return report
}

// record must be called with mu held for writing.
func (s *store) record(activity lostfound.Activity) {
	s.activity = append(s.activity, activity)
}
