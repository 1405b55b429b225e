// Package encoding turns local files into the base64 payloads the backend
// expects for image uploads.
package encoding

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/magiceditor/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// Encode reads r fully and returns its base64 content tagged with mimeType.
func Encode(r io.Reader, mimeType string) (models.EncodedFile, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return models.EncodedFile{}, fmt.Errorf("read: %w", err)
	}
	return models.EncodedFile{
		Data:     base64.StdEncoding.EncodeToString(b),
		MimeType: mimeType,
	}, nil
}

// EncodeFile loads path into memory and encodes it. The MIME type comes
// from the file extension, or from the content when the extension is
// unknown.
func EncodeFile(path string) (models.EncodedFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return models.EncodedFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	return models.EncodedFile{
		Data:     base64.StdEncoding.EncodeToString(b),
		MimeType: DetectMimeType(path, b),
	}, nil
}

// EncodeFiles encodes paths concurrently and returns the payloads in the
// same order. The first failure cancels the rest.
func EncodeFiles(ctx context.Context, paths ...string) ([]models.EncodedFile, error) {
	out := make([]models.EncodedFile, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := EncodeFile(p)
			if err != nil {
				return err
			}
			out[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// DetectMimeType picks a content type for a file named path with content b.
func DetectMimeType(path string, b []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		if mt, _, err := mime.ParseMediaType(t); err == nil {
			return mt
		}
		return t
	}
	t := http.DetectContentType(b)
	if mt, _, err := mime.ParseMediaType(t); err == nil {
		return mt
	}
	return t
}

// Decode is the inverse of Encode, used to write media results to disk.
func Decode(f models.EncodedFile) ([]byte, error) {
	return base64.StdEncoding.DecodeString(f.Data)
}
