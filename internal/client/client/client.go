package client

import (
	"context"

	"github.com/dmitrijs2005/magiceditor/internal/client/models"
)

// Client is the contract of the editing backend. Every method is a single
// request/response exchange; video polling is layered on top by the
// services package.
type Client interface {
	ClassifyImage(ctx context.Context, img models.EncodedFile) (bool, error)
	ImprovePrompt(ctx context.Context, prompt string) (string, error)
	EditImage(ctx context.Context, img models.EncodedFile, prompt string) (models.EditedResult, error)
	CombineImages(ctx context.Context, img1, img2 models.EncodedFile, prompt string) (models.EditedResult, error)
	StartVideo(ctx context.Context, prompt string, img *models.EncodedFile) (string, error)
	VideoStatus(ctx context.Context, operationName string) (*models.VideoStatus, error)
	CommunityPrompts(ctx context.Context) ([]models.CommunityPrompt, error)
	SharePrompt(ctx context.Context, data models.SharePromptData) (string, error)
	Chat(ctx context.Context, history []models.ChatMessage, message string) (string, error)
}
