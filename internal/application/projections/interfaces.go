package projections

import (
	"context"

	"ofx/internal/domain/user"
	"ofx/internal/domain/video"
)

// UserGetter loads a single user.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

// ReferralCounter counts users credited to a referrer.
type ReferralCounter interface {
	CountReferredBy(ctx context.Context, referrerID string) (int, error)
}

// VideoLister lists training videos.
type VideoLister interface {
	List(ctx context.Context) ([]video.Video, error)
}
