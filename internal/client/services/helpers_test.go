package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/magiceditor/internal/client/client"
	"github.com/dmitrijs2005/magiceditor/internal/client/models"
	"github.com/dmitrijs2005/magiceditor/internal/client/repositories/kv"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupStore(t *testing.T) (*sql.DB, *kv.SQLiteRepository) {
	t.Helper()
	db := setupDB(t)
	return db, kv.NewSQLiteRepository(db)
}

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	mu sync.Mutex

	ClassifyRet bool
	ClassifyErr error
	ImproveRet  string
	ImproveErr  error
	EditRet     models.EditedResult
	EditErr     error
	CombineRet  models.EditedResult
	CombineErr  error

	StartOp  string
	StartErr error

	// Statuses are returned in order; the last one repeats.
	Statuses  []*models.VideoStatus
	StatusErr error

	PromptsRet []models.CommunityPrompt
	ShareRet   string
	ChatRet    string

	LastImages  []models.EncodedFile
	LastPrompt  string
	LastVideoIm *models.EncodedFile
	StatusCalls int
	LastOp      string
	LastHistory []models.ChatMessage
	LastShare   models.SharePromptData
}

func (f *fakeClient) ClassifyImage(ctx context.Context, img models.EncodedFile) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastImages = []models.EncodedFile{img}
	return f.ClassifyRet, f.ClassifyErr
}

func (f *fakeClient) ImprovePrompt(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastPrompt = prompt
	return f.ImproveRet, f.ImproveErr
}

func (f *fakeClient) EditImage(ctx context.Context, img models.EncodedFile, prompt string) (models.EditedResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastImages = []models.EncodedFile{img}
	f.LastPrompt = prompt
	return f.EditRet, f.EditErr
}

func (f *fakeClient) CombineImages(ctx context.Context, img1, img2 models.EncodedFile, prompt string) (models.EditedResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastImages = []models.EncodedFile{img1, img2}
	f.LastPrompt = prompt
	return f.CombineRet, f.CombineErr
}

func (f *fakeClient) StartVideo(ctx context.Context, prompt string, img *models.EncodedFile) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastPrompt = prompt
	f.LastVideoIm = img
	return f.StartOp, f.StartErr
}

func (f *fakeClient) VideoStatus(ctx context.Context, op string) (*models.VideoStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastOp = op
	f.StatusCalls++
	if f.StatusErr != nil {
		return nil, f.StatusErr
	}
	i := f.StatusCalls - 1
	if i >= len(f.Statuses) {
		i = len(f.Statuses) - 1
	}
	return f.Statuses[i], nil
}

func (f *fakeClient) CommunityPrompts(ctx context.Context) ([]models.CommunityPrompt, error) {
	return f.PromptsRet, nil
}

func (f *fakeClient) SharePrompt(ctx context.Context, data models.SharePromptData) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastShare = data
	return f.ShareRet, nil
}

func (f *fakeClient) Chat(ctx context.Context, history []models.ChatMessage, message string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastHistory = history
	f.LastPrompt = message
	return f.ChatRet, nil
}

func (f *fakeClient) statusCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.StatusCalls
}

var _ client.Client = (*fakeClient)(nil)

// progressRecorder collects progress messages from a job goroutine.
type progressRecorder struct {
	mu   sync.Mutex
	msgs []string
}

func (p *progressRecorder) record(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
}

func (p *progressRecorder) messages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.msgs...)
}
