package projections

import (
	"context"

	"ofx/internal/domain/video"
)

// GetTrainingDeps holds dependencies for the training projection.
type GetTrainingDeps struct {
	VideoStore VideoLister
}

// TrainingResult carries the output of the training projection.
type TrainingResult struct {
	Videos []video.Video
}

// QueryGetTraining returns every video in upload order.
func QueryGetTraining(ctx context.Context, deps GetTrainingDeps) (TrainingResult, error) {
	videos, err := deps.VideoStore.List(ctx)
	if err != nil {
		return TrainingResult{}, err
	}
	return TrainingResult{Videos: videos}, nil
}
