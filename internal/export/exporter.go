package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/espd/espd-web/backend/go-services/internal/espd"
	"github.com/espd/espd-web/backend/go-services/internal/storage"
	"github.com/espd/espd-web/backend/go-services/pkg/logger"
	"github.com/espd/espd-web/backend/go-services/pkg/metrics"
	"github.com/google/uuid"
)

var log = logger.For("export")

// ErrNotFound is returned by Open for an export unknown to the document.
var ErrNotFound = errors.New("export not found")

// ObjectStore is the subset of the object storage client used for exports.
// It is satisfied by *storage.MinIOStorage.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (*storage.Object, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Exporter renders documents, uploads them and records the result.
type Exporter struct {
	objects   ObjectStore
	records   Store
	urlExpiry time.Duration
}

func NewExporter(objects ObjectStore, records Store, urlExpiry time.Duration) *Exporter {
	if records == nil {
		records = NewMemoryStore()
	}
	return &Exporter{objects: objects, records: records, urlExpiry: urlExpiry}
}

// Export renders d to HTML and stores it under espd/<doc id>/<export id>.html.
func (e *Exporter) Export(ctx context.Context, d *espd.Document) (*Record, error) {
	body, err := RenderHTML(d)
	if err != nil {
		metrics.Exports.WithLabelValues("render_error").Inc()
		return nil, fmt.Errorf("render: %w", err)
	}
	rec := &Record{
		ExportID:  uuid.NewString(),
		DocID:     d.ID,
		Size:      int64(len(body)),
		CreatedAt: time.Now().UTC(),
	}
	rec.Key = fmt.Sprintf("espd/%s/%s.html", d.ID, rec.ExportID)
	if err := e.objects.Put(ctx, rec.Key, bytes.NewReader(body), rec.Size, "text/html; charset=utf-8"); err != nil {
		metrics.Exports.WithLabelValues("upload_error").Inc()
		return nil, fmt.Errorf("upload %s: %w", rec.Key, err)
	}
	if e.urlExpiry > 0 {
		u, err := e.objects.PresignGet(ctx, rec.Key, e.urlExpiry)
		if err != nil {
			log.Warnf("presign %s: %v", rec.Key, err)
		} else {
			rec.URL = u
		}
	}
	if err := e.records.Save(ctx, rec); err != nil {
		metrics.Exports.WithLabelValues("record_error").Inc()
		return nil, err
	}
	metrics.Exports.WithLabelValues("ok").Inc()
	log.Infof("exported %s as %s (%d bytes)", d.ID, rec.Key, rec.Size)
	return rec, nil
}

// History lists the exports recorded for a document, oldest first.
func (e *Exporter) History(ctx context.Context, docID string) ([]*Record, error) {
	return e.records.ListByDocument(ctx, docID)
}

// Open returns the record and stored HTML of one export of docID. The caller
// closes the object.
func (e *Exporter) Open(ctx context.Context, docID, exportID string) (*Record, *storage.Object, error) {
	rec, err := e.records.Load(ctx, exportID)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil || rec.DocID != docID {
		return nil, nil, ErrNotFound
	}
	obj, err := e.objects.Open(ctx, rec.Key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return nil, nil, err
	}
	return rec, obj, nil
}
