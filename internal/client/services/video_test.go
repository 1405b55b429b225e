package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/magiceditor/internal/client/client"
	"github.com/dmitrijs2005/magiceditor/internal/client/models"
	"github.com/dmitrijs2005/magiceditor/internal/common"
	"github.com/dmitrijs2005/magiceditor/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInterval = 30 * time.Millisecond

func TestVideoService_PollsUntilDone(t *testing.T) {
	fc := &fakeClient{
		StartOp: "op1",
		Statuses: []*models.VideoStatus{
			{Done: false, Metadata: &models.VideoMetadata{ProgressMessage: "25%"}},
			{Done: true, Result: models.EditedResult{"url": "x"}},
		},
	}
	s := NewVideoService(fc, testInterval, 0, logging.Discard())
	var rec progressRecorder

	start := time.Now()
	res, err := s.Generate(context.Background(), "waves", "", rec.record)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, models.EditedResult{"url": "x"}, res)
	assert.Equal(t, "op1", fc.LastOp)
	assert.Nil(t, fc.LastVideoIm)
	assert.Equal(t, 2, fc.statusCalls())
	assert.GreaterOrEqual(t, elapsed, 2*testInterval, "waits one interval before each status call")

	assert.Equal(t, []string{
		MsgVideoInit,
		MsgVideoSent,
		"25%",
		models.DefaultProgressMessage,
		MsgVideoFinalize,
	}, rec.messages())
}

func TestVideoService_DoneWithoutResult(t *testing.T) {
	fc := &fakeClient{
		StartOp:  "op1",
		Statuses: []*models.VideoStatus{{Done: true}},
	}
	s := NewVideoService(fc, testInterval, 0, logging.Discard())

	_, err := s.Generate(context.Background(), "waves", "", nil)
	require.ErrorIs(t, err, common.ErrNoVideoResult)
	assert.Equal(t, "video generation completed, but no result was returned", err.Error())
}

func TestVideoService_StartFailure(t *testing.T) {
	fc := &fakeClient{StartErr: &client.APIError{StatusCode: 500, Message: "boom"}}
	s := NewVideoService(fc, testInterval, 0, logging.Discard())
	var rec progressRecorder

	_, err := s.Generate(context.Background(), "waves", "", rec.record)
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, []string{MsgVideoInit}, rec.messages())
	assert.Zero(t, fc.statusCalls())
}

func TestVideoService_StatusFailureAborts(t *testing.T) {
	fc := &fakeClient{
		StartOp:   "op1",
		StatusErr: &client.APIError{StatusCode: 503, Message: "Polling failed with status 503"},
	}
	s := NewVideoService(fc, testInterval, 0, logging.Discard())

	_, err := s.Generate(context.Background(), "waves", "", nil)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 503, apiErr.StatusCode)
	assert.Equal(t, 1, fc.statusCalls(), "no retry after a failed status call")
}

func TestVideoService_SendsImage(t *testing.T) {
	fc := &fakeClient{
		StartOp:  "op1",
		Statuses: []*models.VideoStatus{{Done: true, Result: models.EditedResult{"videoUrl": "v"}}},
	}
	s := NewVideoService(fc, testInterval, 0, logging.Discard())
	img := writeImage(t, "seed.png", []byte("img"))

	res, err := s.Generate(context.Background(), "waves", img, nil)
	require.NoError(t, err)
	assert.Equal(t, "v", res.MediaURL())
	require.NotNil(t, fc.LastVideoIm)
	assert.Equal(t, "image/png", fc.LastVideoIm.MimeType)
}

func TestVideoService_MaxWait(t *testing.T) {
	fc := &fakeClient{
		StartOp:  "op1",
		Statuses: []*models.VideoStatus{{Done: false}},
	}
	s := NewVideoService(fc, testInterval, 3*testInterval, logging.Discard())

	_, err := s.Generate(context.Background(), "waves", "", nil)
	require.ErrorIs(t, err, common.ErrVideoTimeout)
	assert.GreaterOrEqual(t, fc.statusCalls(), 1)
}

func TestVideoJob_Cancel(t *testing.T) {
	fc := &fakeClient{
		StartOp:  "op1",
		Statuses: []*models.VideoStatus{{Done: false}},
	}
	s := NewVideoService(fc, testInterval, 0, logging.Discard())

	job := s.Start(context.Background(), "waves", "", nil)
	time.Sleep(testInterval / 2)
	job.Cancel()

	select {
	case <-job.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("job did not stop after Cancel")
	}
	_, err := job.Wait(context.Background())
	require.ErrorIs(t, err, context.Canceled)
}

func TestVideoJob_WaitHonoursContext(t *testing.T) {
	fc := &fakeClient{
		StartOp:  "op1",
		Statuses: []*models.VideoStatus{{Done: false}},
	}
	s := NewVideoService(fc, time.Hour, 0, logging.Discard())
	job := s.Start(context.Background(), "waves", "", nil)
	defer job.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := job.Wait(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	select {
	case <-job.Done():
		t.Fatal("job must keep running when only Wait's context ends")
	default:
	}
}
