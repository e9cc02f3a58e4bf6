package service

import (
	"context"
	"errors"
	"testing"

	"seocontrol/internal/model"
	"seocontrol/internal/repository/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteService_CreateAndListScopedToOwner(t *testing.T) {
	store := repotest.New()
	svc := NewSiteService(store.SiteRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.Site{Name: "Test", URL: "https://example.com", UserID: "user-a"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-a", created.UserID)

	_, err = svc.Create(ctx, &model.Site{Name: "Other", URL: "https://other.example.com", UserID: "user-b"})
	require.NoError(t, err)

	sites, err := svc.List(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, created.ID, sites[0].ID)
}

func TestSiteService_CreateWithoutOwner(t *testing.T) {
	store := repotest.New()
	svc := NewSiteService(store.SiteRepo())

	_, err := svc.Create(context.Background(), &model.Site{Name: "Test", URL: "https://example.com"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, store.Calls())
}

func TestKeywordService_Create(t *testing.T) {
	store := repotest.New()
	site := store.AddSite("user-a", "Mine", "https://mine.example.com")
	foreign := store.AddSite("user-b", "Theirs", "https://theirs.example.com")
	svc := NewKeywordService(store.KeywordRepo(), store.SiteRepo())
	ctx := context.Background()

	t.Run("owned site", func(t *testing.T) {
		k, err := svc.Create(ctx, &model.Keyword{Keyword: "seo", SiteID: site.ID, UserID: "user-a"})
		require.NoError(t, err)
		assert.NotEmpty(t, k.ID)
	})

	t.Run("foreign site", func(t *testing.T) {
		before := len(store.Keywords())
		_, err := svc.Create(ctx, &model.Keyword{Keyword: "seo", SiteID: foreign.ID, UserID: "user-a"})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, err, ErrSiteNotFound)
		assert.Equal(t, "Site not found", err.Error())
		assert.Len(t, store.Keywords(), before)
	})

	t.Run("unknown site", func(t *testing.T) {
		_, err := svc.Create(ctx, &model.Keyword{Keyword: "seo", SiteID: "missing", UserID: "user-a"})
		assert.ErrorIs(t, err, ErrSiteNotFound)
	})

	keywords, err := svc.List(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, keywords, 1)
	assert.Equal(t, "Mine", keywords[0].SiteName)
}

func TestKeywordService_RepositoryError(t *testing.T) {
	store := repotest.New()
	store.Err = errors.New("connection refused")
	svc := NewKeywordService(store.KeywordRepo(), store.SiteRepo())

	_, err := svc.Create(context.Background(), &model.Keyword{Keyword: "seo", SiteID: "s", UserID: "u"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestReportService_Create(t *testing.T) {
	store := repotest.New()
	site := store.AddSite("user-a", "Mine", "https://mine.example.com")
	events := &recordingPublisher{}
	svc := NewReportService(store.ReportRepo(), store.SiteRepo(), events, "report-requested", testLogger())
	ctx := context.Background()

	rep, err := svc.Create(ctx, &model.Report{Title: "Monthly", Type: model.ReportPerformance, SiteID: site.ID, UserID: "user-a"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, rep.Status)
	require.Len(t, events.payloads, 1)
	assert.Equal(t, "report-requested", events.topics[0])
	assert.JSONEq(t, `{"report_id":"`+rep.ID+`","site_id":"`+site.ID+`","user_id":"user-a","type":"PERFORMANCE"}`, string(events.payloads[0]))

	_, err = svc.Create(ctx, &model.Report{Title: "Monthly", Type: model.ReportPerformance, SiteID: site.ID, UserID: "user-b"})
	assert.ErrorIs(t, err, ErrSiteNotFound)
	assert.Len(t, store.Reports(), 1)

	assert.Len(t, events.payloads, 1)

	reports, err := svc.List(ctx, "user-b")
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestReportService_PublishFailureKeepsReport(t *testing.T) {
	store := repotest.New()
	site := store.AddSite("user-a", "Mine", "https://mine.example.com")
	events := &recordingPublisher{err: errors.New("topic not found")}
	svc := NewReportService(store.ReportRepo(), store.SiteRepo(), events, "report-requested", testLogger())

	rep, err := svc.Create(context.Background(), &model.Report{Title: "T", Type: model.ReportSEOAudit, SiteID: site.ID, UserID: "user-a"})
	require.NoError(t, err)
	assert.NotEmpty(t, rep.ID)
	assert.Len(t, store.Reports(), 1)
}

func TestReportService_WithoutPublisher(t *testing.T) {
	store := repotest.New()
	site := store.AddSite("user-a", "Mine", "https://mine.example.com")
	svc := NewReportService(store.ReportRepo(), store.SiteRepo(), nil, "", testLogger())

	_, err := svc.Create(context.Background(), &model.Report{Title: "T", Type: model.ReportSEOAudit, SiteID: site.ID, UserID: "user-a"})
	require.NoError(t, err)
}

func TestProfileService(t *testing.T) {
	store := repotest.New()
	store.AddProfile("admin-1", "admin@example.com", model.RoleAdmin)
	store.AddProfile("user-1", "user@example.com", model.RoleUser)
	svc := NewProfileService(store.ProfileRepo())
	ctx := context.Background()

	role, err := svc.RoleOf(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)

	_, err = svc.RoleOf(ctx, "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	p, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", p.Email)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

type fakeAuthProvider struct {
	calls  int
	last   ProviderSignUpRequest
	userID string
	err    error
}

func (f *fakeAuthProvider) SignUp(_ context.Context, req ProviderSignUpRequest) (string, error) {
	f.calls++
	f.last = req
	return f.userID, f.err
}

func TestAuthService_SignUp(t *testing.T) {
	store := repotest.New()
	provider := &fakeAuthProvider{userID: "new-user"}
	svc := NewAuthService(provider, store.ProfileRepo(), "https://app.example.com/dashboard", testLogger())

	res, err := svc.SignUp(context.Background(), SignUpInput{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "new-user", res.UserID)
	assert.Equal(t, "Ann", res.Name)
	assert.Equal(t, "https://app.example.com/dashboard", provider.last.RedirectTo)
	assert.Equal(t, "Ann", provider.last.FullName)

	p, ok := store.Profile("new-user")
	require.True(t, ok)
	assert.Equal(t, model.RoleUser, p.Role)
}

func TestAuthService_ProviderError(t *testing.T) {
	provider := &fakeAuthProvider{err: &ProviderError{Message: "User already registered", Status: 422}}
	svc := NewAuthService(provider, nil, "", testLogger())

	_, err := svc.SignUp(context.Background(), SignUpInput{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "User already registered", perr.Message)
}

func TestAuthService_ProfileFailureDoesNotFailSignup(t *testing.T) {
	store := repotest.New()
	store.Err = errors.New("db down")
	svc := NewAuthService(&fakeAuthProvider{userID: "u"}, store.ProfileRepo(), "", testLogger())

	res, err := svc.SignUp(context.Background(), SignUpInput{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "u", res.UserID)
}
