package video

import (
	"context"

	domain "ofx/internal/domain/video"
)

// Store persists Video state.
type Store interface {
	Create(ctx context.Context, value domain.Video) error
	List(ctx context.Context) ([]domain.Video, error)
	Count(ctx context.Context) (int, error)
}
