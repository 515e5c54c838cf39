package forecast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StallCalendar/internal/integrations/weather"
	"github.com/m04kA/SMC-StallCalendar/pkg/logger"
	"github.com/m04kA/SMC-StallCalendar/pkg/ptr"
)

type stubClient struct {
	forecast *weather.Forecast
	err      error
}

func (c stubClient) GetForecastWithGracefulDegradation(context.Context, string, string) (*weather.Forecast, error) {
	return c.forecast, c.err
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	svc := NewService(stubClient{forecast: &weather.Forecast{City: "彰化縣", Date: "2024-03-01", PrecipitationProbability: ptr.Ptr(40.0)}}, logger.NewNop())
	resp, err := svc.Get(ctx, "彰化縣", "2024-03-01")
	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.InDelta(t, 40.0, *resp.PrecipitationProbability, 0.001)

	svc = NewService(stubClient{err: weather.ErrServiceDegraded}, logger.NewNop())
	resp, err = svc.Get(ctx, "彰化縣", "2024-03-01")
	require.NoError(t, err)
	assert.False(t, resp.Available)

	svc = NewService(nil, logger.NewNop())
	resp, err = svc.Get(ctx, "彰化縣", "2024-03-01")
	require.NoError(t, err)
	assert.False(t, resp.Available)

	_, err = svc.Get(ctx, "", "2024-03-01")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Get(ctx, "彰化縣", "tomorrow")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
