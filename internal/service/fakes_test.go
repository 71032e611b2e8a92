package service

import (
	"sort"
	"strings"

	"homeserve/internal/domain"
	"homeserve/internal/notify"
)

// In-memory repositories backing the service-layer tests. They share one
// store so derived review stats behave like the SQL aggregates do.

type fakeStore struct {
	users    map[string]*domain.User
	services map[string]*domain.Service
	bookings map[string]*domain.Booking
	reviews  []domain.Review
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]*domain.User{},
		services: map[string]*domain.Service{},
		bookings: map[string]*domain.Booking{},
	}
}

type fakeUserRepo struct{ st *fakeStore }

func (r *fakeUserRepo) Create(u *domain.User) error {
	for _, e := range r.st.users {
		if e.Email == u.Email {
			return errDup{}
		}
	}
	cp := *u
	r.st.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*domain.User, error) {
	if u, ok := r.st.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range r.st.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(q string, offset, limit int) ([]domain.User, int64, error) {
	var out []domain.User
	for _, u := range r.st.users {
		if q == "" || strings.Contains(strings.ToLower(u.Email), strings.ToLower(q)) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) Update(u *domain.User) error {
	cp := *u
	r.st.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) SoftDelete(id string) error {
	delete(r.st.users, id)
	return nil
}

type errDup struct{}

func (errDup) Error() string { return "UNIQUE constraint failed: users.email" }

type fakeServiceRepo struct{ st *fakeStore }

func (r *fakeServiceRepo) Create(s *domain.Service) error {
	cp := *s
	r.st.services[s.ID] = &cp
	return nil
}

func (r *fakeServiceRepo) FindByID(id string) (*domain.Service, error) {
	if s, ok := r.st.services[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeServiceRepo) stats(id string) (float64, int64) {
	var sum, n int64
	for _, rev := range r.st.reviews {
		if rev.ServiceID == id {
			sum += int64(rev.Rating)
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return float64(sum) / float64(n), n
}

func (r *fakeServiceRepo) Detail(id string) (*domain.ServiceDetail, error) {
	s, ok := r.st.services[id]
	if !ok {
		return nil, nil
	}
	rating, count := r.stats(id)
	d := &domain.ServiceDetail{
		ServiceSummary: domain.ServiceSummary{Service: *s, Rating: rating, ReviewCount: count},
	}
	for _, rev := range r.st.reviews {
		if rev.ServiceID == id {
			d.Reviews = append(d.Reviews, rev)
		}
	}
	return d, nil
}

func (r *fakeServiceRepo) Search(f domain.ServiceSearch) ([]domain.ServiceSummary, int64, error) {
	var out []domain.ServiceSummary
	for _, s := range r.st.services {
		if !s.IsActive {
			continue
		}
		if f.Query != "" {
			q := strings.ToLower(f.Query)
			if !strings.Contains(strings.ToLower(s.Title), q) &&
				!strings.Contains(strings.ToLower(s.Description), q) {
				continue
			}
		}
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		rating, count := r.stats(s.ID)
		out = append(out, domain.ServiceSummary{Service: *s, Rating: rating, ReviewCount: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeServiceRepo) Update(s *domain.Service) error {
	cp := *s
	r.st.services[s.ID] = &cp
	return nil
}

func (r *fakeServiceRepo) SoftDelete(id string) error {
	delete(r.st.services, id)
	return nil
}

type fakeBookingRepo struct{ st *fakeStore }

func (r *fakeBookingRepo) Create(b *domain.Booking) error {
	cp := *b
	r.st.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) FindByID(id string) (*domain.Booking, error) {
	b, ok := r.st.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	if svc, ok := r.st.services[b.ServiceID]; ok {
		sc := *svc
		cp.Service = &sc
	}
	if u, ok := r.st.users[b.HomeownerID]; ok {
		uc := *u
		cp.Homeowner = &uc
	}
	return &cp, nil
}

func (r *fakeBookingRepo) ListForHomeowner(userID string) ([]domain.Booking, error) {
	var out []domain.Booking
	for id, b := range r.st.bookings {
		if b.HomeownerID == userID {
			loaded, _ := r.FindByID(id)
			out = append(out, *loaded)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListForProvider(userID string) ([]domain.Booking, error) {
	var out []domain.Booking
	for id, b := range r.st.bookings {
		if svc, ok := r.st.services[b.ServiceID]; ok && svc.ProviderID == userID {
			loaded, _ := r.FindByID(id)
			out = append(out, *loaded)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(id string, status domain.BookingStatus) error {
	if b, ok := r.st.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

func (r *fakeBookingRepo) HasCompleted(serviceID, homeownerID string) (bool, error) {
	for _, b := range r.st.bookings {
		if b.ServiceID == serviceID && b.HomeownerID == homeownerID && b.Status == domain.BookingCompleted {
			return true, nil
		}
	}
	return false, nil
}

type fakeReviewRepo struct{ st *fakeStore }

func (r *fakeReviewRepo) Create(rev *domain.Review) error {
	r.st.reviews = append(r.st.reviews, *rev)
	return nil
}

func (r *fakeReviewRepo) ListByService(serviceID string) ([]domain.Review, error) {
	var out []domain.Review
	for _, rev := range r.st.reviews {
		if rev.ServiceID == serviceID {
			out = append(out, rev)
		}
	}
	return out, nil
}

type sentNote struct {
	audience string
	n        notify.Notification
}

type fakeNotifier struct{ sent []sentNote }

func (f *fakeNotifier) NotifyUser(userID string, n notify.Notification) {
	f.sent = append(f.sent, sentNote{audience: notify.UserAudience(userID), n: n})
}

func (f *fakeNotifier) NotifyProviders(n notify.Notification) {
	f.sent = append(f.sent, sentNote{audience: notify.AudienceProviders, n: n})
}

func (f *fakeNotifier) NotifyHomeowners(n notify.Notification) {
	f.sent = append(f.sent, sentNote{audience: notify.AudienceHomeowners, n: n})
}

func (f *fakeNotifier) lastTo(audience string) (notify.Notification, bool) {
	for i := len(f.sent) - 1; i >= 0; i-- {
		if f.sent[i].audience == audience {
			return f.sent[i].n, true
		}
	}
	return notify.Notification{}, false
}
