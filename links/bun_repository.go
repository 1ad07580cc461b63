package links

import (
	"context"
	"errors"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed share link repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
}

// Repository implements types.ShareLinkRepository using Bun.
type Repository struct {
	store repository.Repository[*Record]
	clock types.Clock
	db    *bun.DB
}

// NewRepository constructs the default share link repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("links: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*Record]{
			NewRecord: func() *Record { return &Record{} },
			GetID: func(rec *Record) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *Record, id uuid.UUID) {
				if rec != nil {
					rec.ID = id
				}
			},
		})
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	db := cfg.DB
	if db == nil {
		if withDB, ok := repo.(interface{ DB() *bun.DB }); ok {
			db = withDB.DB()
		}
	}
	return &Repository{store: repo, clock: clock, db: db}, nil
}

var _ types.ShareLinkRepository = (*Repository)(nil)

// CreateLink persists an issued link record.
func (r *Repository) CreateLink(ctx context.Context, link types.ShareLink) (*types.ShareLink, error) {
	if link.MemberID == uuid.Nil {
		return nil, types.ErrMemberIDRequired
	}
	if strings.TrimSpace(link.JTI) == "" {
		return nil, types.ErrLinkJTIRequired
	}
	rec := fromDomain(link)
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := r.clock.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = now
	}
	if rec.IssuedAt == nil {
		rec.IssuedAt = timePtr(now)
	}
	if strings.TrimSpace(rec.Status) == "" {
		rec.Status = string(types.ShareLinkStatusIssued)
	}
	created, err := r.store.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(created), nil
}

// GetLinkByJTI returns the link record matching the JTI and kind.
func (r *Repository) GetLinkByJTI(ctx context.Context, kind types.ShareLinkKind, jti string) (*types.ShareLink, error) {
	rec, err := r.store.Get(ctx, selectLink(kind, jti))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// ConsumeLink marks a single-use link as used. The update matches only
// unexpired, still-issued rows so a second consume fails.
func (r *Repository) ConsumeLink(ctx context.Context, kind types.ShareLinkKind, jti string) error {
	if r == nil || r.db == nil {
		return errors.New("links: db required for updates")
	}
	normalized := strings.TrimSpace(jti)
	if normalized == "" {
		return types.ErrLinkJTIRequired
	}
	now := r.clock.Now()
	rec := &Record{
		Status:    string(types.ShareLinkStatusUsed),
		UsedAt:    timePtr(now),
		UpdatedAt: now,
	}
	q := r.db.NewUpdate().Model(rec).
		Column("status", "used_at", "updated_at").
		Where("jti = ?", normalized)
	if kind != "" {
		q = q.Where("kind = ?", string(kind))
	}
	q = q.Where("status = ?", string(types.ShareLinkStatusIssued)).
		Where("used_at IS NULL").
		Where("expires_at IS NULL OR expires_at > ?", now)
	res, err := q.Exec(ctx)
	if err != nil {
		return repository.MapDatabaseError(err, repository.DetectDriver(r.db))
	}
	return repository.SQLExpectedCount(res, 1)
}

func selectLink(kind types.ShareLinkKind, jti string) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Where("jti = ?", strings.TrimSpace(jti))
		if kind != "" {
			q = q.Where("kind = ?", string(kind))
		}
		return q
	}
}

func fromDomain(link types.ShareLink) *Record {
	return &Record{
		ID:        link.ID,
		MemberID:  link.MemberID,
		TicketID:  link.TicketID,
		Kind:      string(link.Kind),
		JTI:       link.JTI,
		Status:    string(link.Status),
		IssuedAt:  timePtr(link.IssuedAt),
		ExpiresAt: timePtr(link.ExpiresAt),
		UsedAt:    timePtr(link.UsedAt),
		CreatedAt: link.CreatedAt,
		UpdatedAt: link.UpdatedAt,
	}
}

func toDomain(rec *Record) *types.ShareLink {
	if rec == nil {
		return nil
	}
	return &types.ShareLink{
		ID:        rec.ID,
		MemberID:  rec.MemberID,
		TicketID:  rec.TicketID,
		Kind:      types.ShareLinkKind(rec.Kind),
		JTI:       rec.JTI,
		Status:    types.ShareLinkStatus(rec.Status),
		IssuedAt:  timeFromPtr(rec.IssuedAt),
		ExpiresAt: timeFromPtr(rec.ExpiresAt),
		UsedAt:    timeFromPtr(rec.UsedAt),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func timePtr(value time.Time) *time.Time {
	if value.IsZero() {
		return nil
	}
	copy := value
	return &copy
}

func timeFromPtr(value *time.Time) time.Time {
	if value == nil {
		return time.Time{}
	}
	return *value
}
