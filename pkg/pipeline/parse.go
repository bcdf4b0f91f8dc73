package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/flexline/pkg/observability"
	"github.com/matzehuels/flexline/pkg/scene"
)

// LoadScene reads a scene document from a file, picking the format from
// its extension.
func LoadScene(ctx context.Context, path string) (*scene.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format, _ := scene.FormatFromPath(path)
	start := time.Now()
	doc, err := scene.ReadDocumentFile(path)
	observability.Pipeline().OnSceneLoad(ctx, format, itemCount(doc), time.Since(start), err)
	return doc, err
}

// ParseScene decodes a scene document from bytes in the given format.
func ParseScene(ctx context.Context, data []byte, format string) (*scene.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	doc, err := scene.ReadDocument(bytes.NewReader(data), format)
	observability.Pipeline().OnSceneLoad(ctx, format, itemCount(doc), time.Since(start), err)
	return doc, err
}

func itemCount(doc *scene.Document) int {
	if doc == nil {
		return 0
	}
	return len(doc.Items)
}
