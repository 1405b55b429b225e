package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/magiceditor/internal/client/client"
	"github.com/dmitrijs2005/magiceditor/internal/client/encoding"
	"github.com/dmitrijs2005/magiceditor/internal/client/models"
	"github.com/dmitrijs2005/magiceditor/internal/logging"
)

// EditorService runs the editing operations on local files: it encodes
// them and forwards the payloads to the backend.
type EditorService struct {
	client client.Client
	log    logging.Logger
}

func NewEditorService(c client.Client, log logging.Logger) *EditorService {
	return &EditorService{client: c, log: log}
}

func (s *EditorService) Classify(ctx context.Context, imagePath string) (bool, error) {
	img, err := encoding.EncodeFile(imagePath)
	if err != nil {
		return false, err
	}
	return s.client.ClassifyImage(ctx, img)
}

func (s *EditorService) ImprovePrompt(ctx context.Context, prompt string) (string, error) {
	return s.client.ImprovePrompt(ctx, prompt)
}

func (s *EditorService) Edit(ctx context.Context, imagePath, prompt string) (models.EditedResult, error) {
	img, err := encoding.EncodeFile(imagePath)
	if err != nil {
		return nil, err
	}
	s.log.Debug(ctx, "editing image", "path", imagePath, "mime", img.MimeType)
	return s.client.EditImage(ctx, img, prompt)
}

// Combine encodes both images concurrently before sending them.
func (s *EditorService) Combine(ctx context.Context, imagePath1, imagePath2, prompt string) (models.EditedResult, error) {
	imgs, err := encoding.EncodeFiles(ctx, imagePath1, imagePath2)
	if err != nil {
		return nil, err
	}
	if len(imgs) != 2 {
		return nil, fmt.Errorf("combine: expected 2 images, got %d", len(imgs))
	}
	return s.client.CombineImages(ctx, imgs[0], imgs[1], prompt)
}

func (s *EditorService) CommunityPrompts(ctx context.Context) ([]models.CommunityPrompt, error) {
	return s.client.CommunityPrompts(ctx)
}

func (s *EditorService) SharePrompt(ctx context.Context, data models.SharePromptData) (string, error) {
	return s.client.SharePrompt(ctx, data)
}

func (s *EditorService) Chat(ctx context.Context, history []models.ChatMessage, message string) (string, error) {
	return s.client.Chat(ctx, history, message)
}
