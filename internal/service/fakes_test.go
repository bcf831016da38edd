package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"church_membership/internal/model"
	"church_membership/internal/repository"
)

// In-memory repository fakes used across the service tests.

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range f.users {
		if user.Email != nil && u.Email != nil && *user.Email == *u.Email {
			return repository.ErrDuplicate
		}
		if user.Phone != nil && u.Phone != nil && *user.Phone == *u.Phone {
			return repository.ErrDuplicate
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmailOrPhone(_ context.Context, email, phone *string) (*model.User, error) {
	for _, u := range f.users {
		if email != nil && u.Email != nil && *email == *u.Email {
			clone := *u
			return &clone, nil
		}
		if phone != nil && u.Phone != nil && *phone == *u.Phone {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) sorted() []model.User {
	var users []model.User
	for _, u := range f.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]model.User, error) {
	return f.sorted(), nil
}

func (f *fakeUserRepo) Search(_ context.Context, query string) ([]model.User, error) {
	q := strings.ToLower(query)
	var out []model.User
	for _, u := range f.sorted() {
		if strings.Contains(strings.ToLower(u.Name), q) ||
			(u.Email != nil && strings.Contains(strings.ToLower(*u.Email), q)) ||
			(u.Phone != nil && strings.Contains(strings.ToLower(*u.Phone), q)) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindAdmins(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range f.sorted() {
		if u.Role == model.RoleAdmin {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	clone := *user
	clone.UpdatedAt = time.Now()
	f.users[user.ID] = &clone
	user.UpdatedAt = clone.UpdatedAt
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) Counts(_ context.Context) (*model.UserCounts, error) {
	counts := &model.UserCounts{}
	for _, u := range f.users {
		counts.Total++
		if u.Role == model.RoleAdmin {
			counts.Admins++
		}
	}
	counts.Users = counts.Total - counts.Admins
	return counts, nil
}

type fakeAttendanceRepo struct {
	records map[string]*model.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*model.Attendance)}
}

func (f *fakeAttendanceRepo) Create(_ context.Context, a *model.Attendance) error {
	for _, r := range f.records {
		if r.UserID == a.UserID && r.Date.Equal(a.Date) {
			return repository.ErrDuplicate
		}
	}
	clone := *a
	f.records[a.ID] = &clone
	return nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, a *model.Attendance) error {
	clone := *a
	clone.UpdatedAt = time.Now()
	f.records[a.ID] = &clone
	a.UpdatedAt = clone.UpdatedAt
	return nil
}

func (f *fakeAttendanceRepo) FindByID(_ context.Context, id string) (*model.Attendance, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	clone := *r
	return &clone, nil
}

func (f *fakeAttendanceRepo) FindForDate(_ context.Context, userID string, date time.Time) (*model.Attendance, error) {
	for _, r := range f.records {
		if r.UserID == userID && r.Date.Equal(date) {
			clone := *r
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) byUser(userID string) []model.Attendance {
	var out []model.Attendance
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (f *fakeAttendanceRepo) FindByUser(_ context.Context, userID string, limit int) ([]model.Attendance, error) {
	out := f.byUser(userID)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAttendanceRepo) FindByDateRange(_ context.Context, userID string, start, end time.Time) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, r := range f.byUser(userID) {
		if !r.Date.Before(start) && !r.Date.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) FindByServiceType(_ context.Context, userID, serviceType string) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, r := range f.byUser(userID) {
		if r.ServiceType != nil && *r.ServiceType == serviceType {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	delete(f.records, id)
	return nil
}

func (f *fakeAttendanceRepo) CountByUser(_ context.Context, userID string, start, end *time.Time) (int64, int64, error) {
	var total, present int64
	for _, r := range f.records {
		if r.UserID != userID {
			continue
		}
		if start != nil && r.Date.Before(*start) {
			continue
		}
		if end != nil && r.Date.After(*end) {
			continue
		}
		total++
		if r.IsPresent {
			present++
		}
	}
	return total, present, nil
}

func (f *fakeAttendanceRepo) OverallStats(_ context.Context) (int64, int64, error) {
	users := make(map[string]struct{})
	var total int64
	for _, r := range f.records {
		total++
		users[r.UserID] = struct{}{}
	}
	return total, int64(len(users)), nil
}

type fakePrayerRepo struct {
	requests map[string]*model.PrayerRequest
}

func newFakePrayerRepo() *fakePrayerRepo {
	return &fakePrayerRepo{requests: make(map[string]*model.PrayerRequest)}
}

func (f *fakePrayerRepo) Create(_ context.Context, pr *model.PrayerRequest) error {
	clone := *pr
	f.requests[pr.ID] = &clone
	return nil
}

func (f *fakePrayerRepo) FindByID(_ context.Context, id string) (*model.PrayerRequest, error) {
	pr, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	clone := *pr
	return &clone, nil
}

func (f *fakePrayerRepo) FindAll(_ context.Context) ([]model.PrayerRequest, error) {
	var out []model.PrayerRequest
	for _, pr := range f.requests {
		out = append(out, *pr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePrayerRepo) FindByStatus(ctx context.Context, status string) ([]model.PrayerRequest, error) {
	all, _ := f.FindAll(ctx)
	var out []model.PrayerRequest
	for _, pr := range all {
		if pr.Status == status {
			out = append(out, pr)
		}
	}
	return out, nil
}

func (f *fakePrayerRepo) Update(_ context.Context, pr *model.PrayerRequest) error {
	clone := *pr
	clone.UpdatedAt = time.Now()
	f.requests[pr.ID] = &clone
	pr.UpdatedAt = clone.UpdatedAt
	return nil
}

func (f *fakePrayerRepo) Delete(_ context.Context, id string) error {
	delete(f.requests, id)
	return nil
}

func (f *fakePrayerRepo) Stats(_ context.Context) (*model.PrayerRequestStats, error) {
	stats := &model.PrayerRequestStats{}
	for _, pr := range f.requests {
		stats.Total++
		switch pr.Status {
		case model.PrayerStatusPending:
			stats.Pending++
		case model.PrayerStatusInProgress:
			stats.InProgress++
		case model.PrayerStatusAnswered:
			stats.Answered++
		case model.PrayerStatusClosed:
			stats.Closed++
		}
	}
	return stats, nil
}
