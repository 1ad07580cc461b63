package member

import (
	"context"
	"errors"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed member repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
}

type memberStore interface {
	repository.Repository[*Record]
}

// Repository implements types.MemberRepository using Bun.
type Repository struct {
	memberStore
	clock types.Clock
}

// NewRepository constructs the default member repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("member: db or repository required")
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

	return &Repository{
		memberStore: repo,
		clock:       clock,
	}, nil
}

var _ types.MemberRepository = (*Repository)(nil)

// GetByID returns the member for the supplied identifier, or nil when no row
// exists.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*types.Member, error) {
	if id == uuid.Nil {
		return nil, types.ErrMemberIDRequired
	}
	rec, err := r.memberStore.GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// GetByUserID resolves the single member linked to an external identity, or
// nil when provisioning has not completed yet.
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*types.Member, error) {
	if userID == uuid.Nil {
		return nil, types.ErrMemberIDRequired
	}
	rec, err := r.Get(ctx, repository.SelectBy("user_id", "=", userID.String()))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// UpdateTier applies a self-service tier change. Tier changes never cascade
// to the member's tickets. Returns nil when the member does not exist.
func (r *Repository) UpdateTier(ctx context.Context, id uuid.UUID, tier types.MembershipTier) (*types.Member, error) {
	if id == uuid.Nil {
		return nil, types.ErrMemberIDRequired
	}
	rec, err := r.memberStore.GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	rec.Tier = string(tier)
	rec.UpdatedAt = r.clock.Now()
	updated, err := r.Update(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(updated), nil
}

func toDomain(rec *Record) *types.Member {
	if rec == nil {
		return nil
	}
	return &types.Member{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Tier:      types.MembershipTier(rec.Tier),
		Status:    types.MemberStatus(rec.Status),
		JoinDate:  rec.JoinDate,
		Benefits:  cloneMap(rec.Benefits),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
