package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/magiceditor/internal/client/client"
	"github.com/dmitrijs2005/magiceditor/internal/client/encoding"
	"github.com/dmitrijs2005/magiceditor/internal/client/models"
	"github.com/dmitrijs2005/magiceditor/internal/common"
	"github.com/dmitrijs2005/magiceditor/internal/logging"
	"github.com/sethvargo/go-retry"
)

const (
	MsgVideoInit     = "Initializing video generation..."
	MsgVideoSent     = "Video request sent. Waiting for generation to start..."
	MsgVideoFinalize = "Finalizing video..."
)

// ProgressFunc receives human-readable progress updates. It is called from
// the job's goroutine.
type ProgressFunc func(msg string)

// errPending marks a status answer with done=false.
var errPending = errors.New("video generation still running")

type VideoService struct {
	client   client.Client
	interval time.Duration
	maxWait  time.Duration
	log      logging.Logger
}

// NewVideoService builds a poller that checks the job every interval.
// maxWait bounds the polling phase; zero means wait as long as it takes.
func NewVideoService(c client.Client, interval, maxWait time.Duration, log logging.Logger) *VideoService {
	return &VideoService{client: c, interval: interval, maxWait: maxWait, log: log}
}

// VideoJob is a running video generation.
type VideoJob struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	result models.EditedResult
	err    error
}

// Cancel stops the job. Wait then returns context.Canceled.
func (j *VideoJob) Cancel() { j.cancel() }

// Done is closed when the job has finished.
func (j *VideoJob) Done() <-chan struct{} { return j.done }

// Wait blocks until the job finishes or ctx ends. Ending ctx does not stop
// the job; use Cancel for that.
func (j *VideoJob) Wait(ctx context.Context) (models.EditedResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-j.done:
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result, j.err
}

// Start begins generating a video for prompt, optionally seeded with the
// image at imagePath (empty for none), and returns immediately.
func (s *VideoService) Start(ctx context.Context, prompt, imagePath string, progress ProgressFunc) *VideoJob {
	if progress == nil {
		progress = func(string) {}
	}
	ctx, cancel := context.WithCancel(ctx)
	job := &VideoJob{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer cancel()
		res, err := s.run(ctx, prompt, imagePath, progress)
		job.mu.Lock()
		job.result, job.err = res, err
		job.mu.Unlock()
		close(job.done)
	}()
	return job
}

// Generate is the blocking form of Start.
func (s *VideoService) Generate(ctx context.Context, prompt, imagePath string, progress ProgressFunc) (models.EditedResult, error) {
	job := s.Start(ctx, prompt, imagePath, progress)
	defer job.Cancel()
	return job.Wait(ctx)
}

func (s *VideoService) run(ctx context.Context, prompt, imagePath string, progress ProgressFunc) (models.EditedResult, error) {
	progress(MsgVideoInit)

	var img *models.EncodedFile
	if imagePath != "" {
		f, err := encoding.EncodeFile(imagePath)
		if err != nil {
			return nil, err
		}
		img = &f
	}

	op, err := s.client.StartVideo(ctx, prompt, img)
	if err != nil {
		return nil, err
	}
	progress(MsgVideoSent)
	log := s.log.With("operation", op)
	log.Debug(ctx, "video started")

	b := retry.NewConstant(s.interval)
	if s.maxWait > 0 {
		b = retry.WithMaxDuration(s.maxWait, b)
	}

	// the first status check also waits a full interval
	if err := sleepCtx(ctx, s.interval); err != nil {
		return nil, err
	}

	var result models.EditedResult
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		st, err := s.client.VideoStatus(ctx, op)
		if err != nil {
			return err
		}
		progress(st.ProgressMessage())
		if !st.Done {
			return retry.RetryableError(errPending)
		}

		progress(MsgVideoFinalize)
		if !st.HasResult() {
			return common.ErrNoVideoResult
		}
		result = st.Result
		return nil
	})
	if errors.Is(err, errPending) {
		log.Warn(ctx, "video wait exceeded", "max_wait", s.maxWait)
		return nil, common.ErrVideoTimeout
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
