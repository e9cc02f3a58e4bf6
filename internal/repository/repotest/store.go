// Package repotest provides in-memory repositories that record every call,
// for tests of the layers above the database.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"seocontrol/internal/model"
	"seocontrol/internal/repository"

	"github.com/google/uuid"
)

// Store backs all in-memory repositories. Set Err to make every repository
// call fail with it.
type Store struct {
	mu       sync.Mutex
	calls    int
	clock    time.Time
	profiles map[string]model.Profile
	sites    []model.Site
	audits   []model.Audit
	keywords []model.Keyword
	reports  []model.Report

	Err error
}

func New() *Store {
	return &Store{
		clock:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		profiles: map[string]model.Profile{},
	}
}

// Calls returns how many repository methods have been invoked.
func (s *Store) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// enter records a call and returns the injected error, if any. The caller
// must hold s.mu.
func (s *Store) enter() error {
	s.calls++
	return s.Err
}

// tick advances the fake clock so rows get distinct, increasing timestamps.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// AddProfile seeds a profile without counting as a call.
func (s *Store) AddProfile(id, email string, role model.Role) model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.tick()
	p := model.Profile{ID: id, Email: email, Role: role, Plan: model.PlanFree, CreatedAt: now, UpdatedAt: now}
	s.profiles[id] = p
	return p
}

// AddSite seeds a site without counting as a call.
func (s *Store) AddSite(userID, name, url string) model.Site {
	s.mu.Lock()
	defer s.mu.Unlock()
	site := model.Site{Name: name, URL: url, UserID: userID}
	s.insertSite(&site)
	return site
}

// AddAudit seeds an audit without counting as a call.
func (s *Store) AddAudit(siteID, userID string, status model.AuditStatus, score int) model.Audit {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.tick()
	a := model.Audit{ID: uuid.NewString(), SiteID: siteID, UserID: userID, Status: status, Score: &score, CreatedAt: now, UpdatedAt: now}
	s.audits = append(s.audits, a)
	return a
}

// Keywords returns a copy of every stored keyword.
func (s *Store) Keywords() []model.Keyword {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Keyword(nil), s.keywords...)
}

// Sites returns a copy of every stored site.
func (s *Store) Sites() []model.Site {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Site(nil), s.sites...)
}

// Reports returns a copy of every stored report.
func (s *Store) Reports() []model.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Report(nil), s.reports...)
}

// Profile returns the stored profile for id.
func (s *Store) Profile(id string) (model.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	return p, ok
}

func (s *Store) insertSite(site *model.Site) {
	now := s.tick()
	site.ID = uuid.NewString()
	site.CreatedAt = now
	site.UpdatedAt = now
	s.sites = append(s.sites, *site)
}

func (s *Store) siteName(id string) string {
	for _, site := range s.sites {
		if site.ID == id {
			return site.Name
		}
	}
	return ""
}

func newestFirst[T any](items []T, createdAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}

// SiteRepo returns a repository.SiteRepository over s.
func (s *Store) SiteRepo() repository.SiteRepository { return siteRepo{s} }

// KeywordRepo returns a repository.KeywordRepository over s.
func (s *Store) KeywordRepo() repository.KeywordRepository { return keywordRepo{s} }

// ReportRepo returns a repository.ReportRepository over s.
func (s *Store) ReportRepo() repository.ReportRepository { return reportRepo{s} }

// ProfileRepo returns a repository.ProfileRepository over s.
func (s *Store) ProfileRepo() repository.ProfileRepository { return profileRepo{s} }

type siteRepo struct{ s *Store }

func (r siteRepo) ListByUser(_ context.Context, userID string) ([]model.SiteOverview, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	out := []model.SiteOverview{}
	for _, site := range r.s.sites {
		if site.UserID != userID {
			continue
		}
		ov := model.SiteOverview{Site: site, Audits: []model.Audit{}, Keywords: []model.Keyword{}}
		for _, a := range r.s.audits {
			if a.SiteID == site.ID && a.UserID == userID {
				ov.Audits = append(ov.Audits, a)
			}
		}
		for _, k := range r.s.keywords {
			if k.SiteID == site.ID && k.UserID == userID {
				ov.Keywords = append(ov.Keywords, k)
			}
		}
		newestFirst(ov.Audits, func(a model.Audit) time.Time { return a.CreatedAt })
		newestFirst(ov.Keywords, func(k model.Keyword) time.Time { return k.CreatedAt })
		out = append(out, ov)
	}
	newestFirst(out, func(o model.SiteOverview) time.Time { return o.CreatedAt })
	return out, nil
}

func (r siteRepo) Create(_ context.Context, site *model.Site) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return err
	}
	r.s.insertSite(site)
	return nil
}

func (r siteRepo) ExistsForUser(_ context.Context, siteID, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return false, err
	}
	for _, site := range r.s.sites {
		if site.ID == siteID && site.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type keywordRepo struct{ s *Store }

func (r keywordRepo) ListByUser(_ context.Context, userID string) ([]model.Keyword, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	out := []model.Keyword{}
	for _, k := range r.s.keywords {
		if k.UserID == userID {
			k.SiteName = r.s.siteName(k.SiteID)
			out = append(out, k)
		}
	}
	newestFirst(out, func(k model.Keyword) time.Time { return k.CreatedAt })
	return out, nil
}

func (r keywordRepo) Create(_ context.Context, k *model.Keyword) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return err
	}
	now := r.s.tick()
	k.ID = uuid.NewString()
	k.CreatedAt = now
	k.UpdatedAt = now
	r.s.keywords = append(r.s.keywords, *k)
	return nil
}

type reportRepo struct{ s *Store }

func (r reportRepo) ListByUser(_ context.Context, userID string) ([]model.Report, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	out := []model.Report{}
	for _, rep := range r.s.reports {
		if rep.UserID == userID {
			rep.SiteName = r.s.siteName(rep.SiteID)
			out = append(out, rep)
		}
	}
	newestFirst(out, func(rep model.Report) time.Time { return rep.CreatedAt })
	return out, nil
}

func (r reportRepo) Create(_ context.Context, rep *model.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return err
	}
	now := r.s.tick()
	rep.ID = uuid.NewString()
	rep.Status = model.StatusPending
	rep.CreatedAt = now
	rep.UpdatedAt = now
	r.s.reports = append(r.s.reports, *rep)
	return nil
}

type profileRepo struct{ s *Store }

func (r profileRepo) GetByID(_ context.Context, id string) (*model.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r profileRepo) ListWithCounts(_ context.Context) ([]model.UserSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	out := []model.UserSummary{}
	for _, p := range r.s.profiles {
		u := model.UserSummary{Profile: p}
		for _, site := range r.s.sites {
			if site.UserID == p.ID {
				u.SiteCount++
			}
		}
		for _, a := range r.s.audits {
			if a.UserID == p.ID {
				u.AuditCount++
			}
		}
		for _, k := range r.s.keywords {
			if k.UserID == p.ID {
				u.KeywordCount++
			}
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r profileRepo) Upsert(_ context.Context, p *model.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return err
	}
	now := r.s.tick()
	existing, ok := r.s.profiles[p.ID]
	if !ok {
		existing = model.Profile{ID: p.ID, Role: model.RoleUser, Plan: model.PlanFree, CreatedAt: now}
	}
	existing.Email = p.Email
	if p.FullName != nil {
		existing.FullName = p.FullName
	}
	existing.UpdatedAt = now
	r.s.profiles[p.ID] = existing
	*p = existing
	return nil
}

func (r profileRepo) UpdatePlan(_ context.Context, id string, plan model.Plan, stripeCustomerID *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return err
	}
	p, ok := r.s.profiles[id]
	if !ok {
		return repository.ErrNoRows
	}
	p.Plan = plan
	if stripeCustomerID != nil {
		p.StripeCustomerID = stripeCustomerID
	}
	p.UpdatedAt = r.s.tick()
	r.s.profiles[id] = p
	return nil
}

func (r profileRepo) UpdatePlanByCustomer(_ context.Context, stripeCustomerID string, plan model.Plan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return err
	}
	updated := false
	for id, p := range r.s.profiles {
		if p.StripeCustomerID != nil && *p.StripeCustomerID == stripeCustomerID {
			p.Plan = plan
			p.UpdatedAt = r.s.tick()
			r.s.profiles[id] = p
			updated = true
		}
	}
	if !updated {
		return repository.ErrNoRows
	}
	return nil
}
