//go:build integration

package repository

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"seocontrol/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Run with: go test -tags=integration ./internal/repository/...
var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		log.Printf("skipping repository integration tests: %v", err)
		os.Exit(0)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("failed to get connection string: %v", err)
	}
	testPool, err = pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	if err := Migrate(ctx, testPool); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	// Applying twice must be harmless.
	if err := Migrate(ctx, testPool); err != nil {
		log.Fatalf("second migrate: %v", err)
	}

	code := m.Run()

	testPool.Close()
	if err := pgContainer.Terminate(ctx); err != nil {
		log.Printf("failed to terminate postgres container: %v", err)
	}
	os.Exit(code)
}

func newProfile(t *testing.T, email string) *model.Profile {
	t.Helper()
	name := "Test User"
	p := &model.Profile{ID: uuid.NewString(), Email: email, FullName: &name}
	require.NoError(t, NewProfileRepo(testPool).Upsert(context.Background(), p))
	return p
}

func newSite(t *testing.T, userID, name string) *model.Site {
	t.Helper()
	s := &model.Site{Name: name, URL: "https://" + name + ".example.com", UserID: userID}
	require.NoError(t, NewSiteRepo(testPool).Create(context.Background(), s))
	return s
}

func TestSiteRepo_ScopedToOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewSiteRepo(testPool)
	a := newProfile(t, "a@example.com")
	b := newProfile(t, "b@example.com")

	site := newSite(t, a.ID, "alpha")
	assert.NotEmpty(t, site.ID)
	assert.False(t, site.CreatedAt.IsZero())

	listA, err := repo.ListByUser(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, listA, 1)
	assert.Equal(t, site.ID, listA[0].ID)
	assert.Equal(t, a.ID, listA[0].UserID)

	listB, err := repo.ListByUser(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, listB)

	owned, err := repo.ExistsForUser(ctx, site.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, owned)

	owned, err = repo.ExistsForUser(ctx, site.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, owned)

	owned, err = repo.ExistsForUser(ctx, "not-a-uuid", a.ID)
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestSiteRepo_ListNestsAuditsAndKeywords(t *testing.T) {
	ctx := context.Background()
	u := newProfile(t, "nested@example.com")
	first := newSite(t, u.ID, "first")
	second := newSite(t, u.ID, "second")

	_, err := testPool.Exec(ctx,
		`INSERT INTO audits (site_id, user_id, status, score, issues) VALUES ($1, $2, 'COMPLETED', 87, '[{"type":"meta"}]')`,
		first.ID, u.ID)
	require.NoError(t, err)
	require.NoError(t, NewKeywordRepo(testPool).Create(ctx, &model.Keyword{Keyword: "seo tools", SiteID: first.ID, UserID: u.ID}))

	sites, err := NewSiteRepo(testPool).ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, sites, 2)

	// Newest first.
	assert.Equal(t, second.ID, sites[0].ID)
	assert.Empty(t, sites[0].Audits)
	assert.Empty(t, sites[0].Keywords)

	require.Len(t, sites[1].Audits, 1)
	assert.Equal(t, model.StatusCompleted, sites[1].Audits[0].Status)
	assert.JSONEq(t, `[{"type":"meta"}]`, string(sites[1].Audits[0].Issues))
	assert.Nil(t, sites[1].Audits[0].Recommendations)
	require.Len(t, sites[1].Keywords, 1)
	assert.Equal(t, "seo tools", sites[1].Keywords[0].Keyword)
}

func TestKeywordRepo_ListJoinsSiteName(t *testing.T) {
	ctx := context.Background()
	repo := NewKeywordRepo(testPool)
	u := newProfile(t, "kw@example.com")
	other := newProfile(t, "kw-other@example.com")
	site := newSite(t, u.ID, "kwsite")

	k := &model.Keyword{Keyword: "rank tracker", SiteID: site.ID, UserID: u.ID}
	require.NoError(t, repo.Create(ctx, k))
	assert.NotEmpty(t, k.ID)
	assert.Nil(t, k.Position)

	list, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "kwsite", list[0].SiteName)

	list, err = repo.ListByUser(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReportRepo_CreateDefaultsToPending(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepo(testPool)
	u := newProfile(t, "report@example.com")
	site := newSite(t, u.ID, "reportsite")

	rep := &model.Report{Title: "Monthly", Type: model.ReportSEOAudit, SiteID: site.ID, UserID: u.ID}
	require.NoError(t, repo.Create(ctx, rep))
	assert.Equal(t, model.StatusPending, rep.Status)

	list, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "reportsite", list[0].SiteName)
	assert.Nil(t, list[0].Content)
}

func TestProfileRepo_CountsAndPlan(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepo(testPool)
	u := newProfile(t, "counts@example.com")
	assert.Equal(t, model.RoleUser, u.Role)
	assert.Equal(t, model.PlanFree, u.Plan)

	site := newSite(t, u.ID, "counted")
	require.NoError(t, NewKeywordRepo(testPool).Create(ctx, &model.Keyword{Keyword: "one", SiteID: site.ID, UserID: u.ID}))
	require.NoError(t, NewKeywordRepo(testPool).Create(ctx, &model.Keyword{Keyword: "two", SiteID: site.ID, UserID: u.ID}))

	users, err := repo.ListWithCounts(ctx)
	require.NoError(t, err)
	var found *model.UserSummary
	for i := range users {
		if users[i].ID == u.ID {
			found = &users[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, 1, found.SiteCount)
	assert.Equal(t, 0, found.AuditCount)
	assert.Equal(t, 2, found.KeywordCount)

	customer := "cus_123"
	require.NoError(t, repo.UpdatePlan(ctx, u.ID, model.PlanPro, &customer))
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PlanPro, got.Plan)
	require.NotNil(t, got.StripeCustomerID)
	assert.Equal(t, customer, *got.StripeCustomerID)

	require.NoError(t, repo.UpdatePlanByCustomer(ctx, customer, model.PlanFree))
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PlanFree, got.Plan)

	err = repo.UpdatePlanByCustomer(ctx, "cus_missing", model.PlanFree)
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestProfileRepo_GetByIDMissing(t *testing.T) {
	repo := NewProfileRepo(testPool)

	got, err := repo.GetByID(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByID(context.Background(), "not-a-uuid")
	require.NoError(t, err)
	assert.Nil(t, got)
}
