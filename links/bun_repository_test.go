package links

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestRepository_CreateLinkAssignsDefaults(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.CreateLink(ctx, types.ShareLink{
		MemberID: uuid.New(),
		TicketID: uuid.New(),
		Kind:     types.ShareLinkKindShare,
		JTI:      uuid.NewString(),
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.Equal(t, types.ShareLinkStatusIssued, created.Status)
	require.False(t, created.IssuedAt.IsZero())
	require.False(t, created.CreatedAt.IsZero())
}

func TestRepository_CreateLinkValidation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.CreateLink(ctx, types.ShareLink{JTI: "abc"})
	require.ErrorIs(t, err, types.ErrMemberIDRequired)

	_, err = repo.CreateLink(ctx, types.ShareLink{MemberID: uuid.New()})
	require.ErrorIs(t, err, types.ErrLinkJTIRequired)
}

func TestRepository_GetLinkByJTI(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	jti := uuid.NewString()
	_, err := repo.CreateLink(ctx, types.ShareLink{
		MemberID: uuid.New(),
		TicketID: uuid.New(),
		Kind:     types.ShareLinkKindDeleteConfirm,
		JTI:      jti,
	})
	require.NoError(t, err)

	found, err := repo.GetLinkByJTI(ctx, types.ShareLinkKindDeleteConfirm, jti)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, jti, found.JTI)

	// a kind mismatch does not match the row
	wrongKind, err := repo.GetLinkByJTI(ctx, types.ShareLinkKindShare, jti)
	require.NoError(t, err)
	require.Nil(t, wrongKind)

	missing, err := repo.GetLinkByJTI(ctx, types.ShareLinkKindDeleteConfirm, uuid.NewString())
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestRepository_ConsumeLinkIsSingleUse(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	jti := uuid.NewString()
	_, err := repo.CreateLink(ctx, types.ShareLink{
		MemberID:  uuid.New(),
		TicketID:  uuid.New(),
		Kind:      types.ShareLinkKindDeleteConfirm,
		JTI:       jti,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, repo.ConsumeLink(ctx, types.ShareLinkKindDeleteConfirm, jti))

	consumed, err := repo.GetLinkByJTI(ctx, types.ShareLinkKindDeleteConfirm, jti)
	require.NoError(t, err)
	require.Equal(t, types.ShareLinkStatusUsed, consumed.Status)
	require.False(t, consumed.UsedAt.IsZero())

	// second consume matches no issued row
	require.Error(t, repo.ConsumeLink(ctx, types.ShareLinkKindDeleteConfirm, jti))
}

func TestRepository_ConsumeLinkRejectsExpired(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	jti := uuid.NewString()
	_, err := repo.CreateLink(ctx, types.ShareLink{
		MemberID:  uuid.New(),
		TicketID:  uuid.New(),
		Kind:      types.ShareLinkKindDeleteConfirm,
		JTI:       jti,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	})
	require.NoError(t, err)

	require.Error(t, repo.ConsumeLink(ctx, types.ShareLinkKindDeleteConfirm, jti))
}

func newTestRepo(t *testing.T) *Repository {
	db := newTestDB(t)
	applyDDL(t, db)
	repo, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)
	return repo
}

func newTestDB(t *testing.T) *bun.DB {
	sqldb, err := sql.Open("sqlite3", ":memory:?cache=shared")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
		_ = sqldb.Close()
	})
	return db
}

func applyDDL(t *testing.T, db *bun.DB) {
	content, err := os.ReadFile("../data/sql/migrations/sqlite/20250301000004_create_share_links.up.sql")
	require.NoError(t, err)
	for _, stmt := range splitStatements(string(content)) {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}

func splitStatements(sql string) []string {
	parts := strings.Split(sql, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
