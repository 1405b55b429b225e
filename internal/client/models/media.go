// Package models defines the data exchanged with the editing backend and
// the client state kept by the shell.
package models

import (
	"encoding/json"
	"strings"
)

// EncodedFile is a file ready for upload: base64 content plus its declared
// MIME type. It serialises as {"data": ..., "mimeType": ...}.
type EncodedFile struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

// EditedResult is the backend's result object for edit, combine and video
// operations. Its shape belongs to the backend, so it is kept as a generic
// JSON object.
type EditedResult map[string]any

// String returns the value of key when it is a string.
func (r EditedResult) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// MediaURL returns the first non-empty URL-like field, if any.
func (r EditedResult) MediaURL() string {
	for _, k := range []string{"imageUrl", "videoUrl", "editedImageUrl", "url", "uri"} {
		if v := r.String(k); v != "" {
			return v
		}
	}
	return ""
}

// Text returns the textual part of a result, if any.
func (r EditedResult) Text() string {
	for _, k := range []string{"text", "editedText"} {
		if v := strings.TrimSpace(r.String(k)); v != "" {
			return v
		}
	}
	return ""
}

// VideoMetadata is the optional progress block of a status response.
type VideoMetadata struct {
	ProgressMessage string `json:"progressMessage,omitempty"`
}

// VideoStatus is the body returned by /api/video-status.
type VideoStatus struct {
	Done     bool           `json:"done"`
	Metadata *VideoMetadata `json:"metadata,omitempty"`
	Result   EditedResult   `json:"result,omitempty"`
}

// DefaultProgressMessage is reported when a status carries no message.
const DefaultProgressMessage = "Processing video..."

// ProgressMessage returns the server-supplied progress text or the default.
func (s VideoStatus) ProgressMessage() string {
	if s.Metadata != nil && s.Metadata.ProgressMessage != "" {
		return s.Metadata.ProgressMessage
	}
	return DefaultProgressMessage
}

// HasResult reports whether the status carried a result object.
func (s VideoStatus) HasResult() bool {
	return s.Result != nil
}

// ChatMessage is one turn of a bot conversation. The backend owns the
// meaning of Role ("user", "model", ...).
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// SharePromptData is the form submitted to /api/community/share-prompt.
type SharePromptData struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

// CommunityPrompt is a shared prompt as listed by the backend. Raw keeps
// the original object so fields unknown to this client survive a round trip.
type CommunityPrompt struct {
	ID        string          `json:"id,omitempty"`
	Title     string          `json:"title"`
	Prompt    string          `json:"prompt"`
	Name      string          `json:"name,omitempty"`
	CreatedAt string          `json:"createdAt,omitempty"`
	Raw       json.RawMessage `json:"-"`
}

type communityPromptFields CommunityPrompt

func (p *CommunityPrompt) UnmarshalJSON(b []byte) error {
	// ids are numeric on some deployments
	var f struct {
		communityPromptFields
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*p = CommunityPrompt(f.communityPromptFields)
	p.ID = ""
	if len(f.ID) > 0 && string(f.ID) != "null" {
		var s string
		if err := json.Unmarshal(f.ID, &s); err == nil {
			p.ID = s
		} else {
			p.ID = string(f.ID)
		}
	}
	p.Raw = append(json.RawMessage(nil), b...)
	return nil
}

func (p CommunityPrompt) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	return json.Marshal(communityPromptFields(p))
}
