package workflows_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/feral-file/ionic-indexer/internal/content"
	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/mocks"
	"github.com/feral-file/ionic-indexer/internal/workflows"
)

func TestExecutor_ResolveContent(t *testing.T) {
	job := content.Job{Shape: content.ShapeReactionMetadata, ContentID: "QmReaction"}

	tests := []struct {
		name         string
		resolveErr   error
		wantErr      bool
		nonRetryable bool
	}{
		{name: "success"},
		{name: "transient failure", resolveErr: domain.ErrContentNotFound, wantErr: true},
		{name: "unsupported shape", resolveErr: domain.ErrUnsupportedShape, wantErr: true, nonRetryable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			resolver := mocks.NewMockContentResolver(ctrl)
			act := mocks.NewMockActivity(ctrl)
			executor := workflows.NewExecutor(resolver, act)

			act.EXPECT().GetInfo(gomock.Any()).Return(activity.Info{Attempt: 1})
			resolver.EXPECT().Resolve(gomock.Any(), job).Return(tt.resolveErr)

			err := executor.ResolveContent(context.Background(), job)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			assert.Error(t, err)
			var appErr *temporal.ApplicationError
			isApp := errors.As(err, &appErr)
			assert.Equal(t, tt.nonRetryable, isApp && appErr.NonRetryable())
		})
	}
}
