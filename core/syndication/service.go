// ABOUTME: Document service loads feeds concurrently and persists them through the cache
// ABOUTME: Provides business logic for document operations independent of the CLI layer

package syndication

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	coreerrors "syndication-kit/core/errors"
	"syndication-kit/core/extensions"
	"syndication-kit/core/interfaces"
)

// DefaultTTL is how long stored documents are kept
const DefaultTTL = 24 * time.Hour

// maxConcurrentLoads bounds LoadDocuments
const maxConcurrentLoads = 10

// ErrNoCache is returned by store operations when no cache is configured
var ErrNoCache = errors.New("document cache not configured")

// Service loads, stores and fetches documents
type Service struct {
	deps     interfaces.Dependencies
	settings *extensions.Settings
	ttl      time.Duration
}

// NewService creates a new document service instance
func NewService(deps interfaces.Dependencies, settings *extensions.Settings) *Service {
	return &Service{
		deps:     deps,
		settings: settings,
		ttl:      DefaultTTL,
	}
}

// SetTTL sets the expiry of stored documents; 0 keeps them indefinitely
func (s *Service) SetTTL(ttl time.Duration) {
	s.ttl = ttl
}

// Settings returns the settings documents are loaded and saved with
func (s *Service) Settings() *extensions.Settings {
	return s.settings
}

// LoadDocument reads a single document
func (s *Service) LoadDocument(ctx context.Context, r io.Reader) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(r, s.settings)
}

// LoadDocuments loads several documents concurrently. Documents that fail to load are
// logged and skipped; the rest keep their input order.
func (s *Service) LoadDocuments(ctx context.Context, sources []io.Reader) ([]Document, error) {
	if sources == nil {
		return nil, coreerrors.NewInvalidArgument("sources")
	}
	if len(sources) == 0 {
		return []Document{}, nil
	}

	type loadResult struct {
		doc Document
		err error
	}

	results := make([]loadResult, len(sources))

	// Use semaphore to limit concurrent loads
	semaphore := make(chan struct{}, maxConcurrentLoads)
	var wg sync.WaitGroup

	for i, source := range sources {
		wg.Add(1)
		go func(i int, r io.Reader) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[i] = loadResult{err: ctx.Err()}
				return
			default:
			}

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			doc, err := s.LoadDocument(ctx, r)
			results[i] = loadResult{doc: doc, err: err}
		}(i, source)
	}
	wg.Wait()

	docs := make([]Document, 0, len(sources))
	var cancelErr error
	for i, result := range results {
		if result.err != nil {
			s.logError("Failed to load document", map[string]interface{}{
				"index": i,
				"error": result.err.Error(),
			})
			if cancelErr == nil && (errors.Is(result.err, context.Canceled) || errors.Is(result.err, context.DeadlineExceeded)) {
				cancelErr = result.err
			}
			continue
		}
		docs = append(docs, result.doc)
	}

	if cancelErr != nil {
		return docs, cancelErr
	}
	return docs, nil
}

// StoreDocument serializes doc into the cache and returns its id. An empty id is
// replaced by a new UUID.
func (s *Service) StoreDocument(ctx context.Context, id string, doc Document) (string, error) {
	if s.deps.Cache == nil {
		return "", ErrNoCache
	}
	if doc == nil {
		return "", coreerrors.NewInvalidArgument("document")
	}
	if id == "" {
		id = uuid.NewString()
	}

	data, err := Marshal(doc, s.settings)
	if err != nil {
		return "", coreerrors.WrapError(err, "serialize document")
	}
	if err := s.deps.Cache.Set(ctx, documentKey(id), data, s.ttl); err != nil {
		return "", coreerrors.WrapError(err, "store document")
	}

	s.logInfo("Stored document", map[string]interface{}{
		"id":     id,
		"format": string(FormatOf(doc)),
		"bytes":  len(data),
	})
	return id, nil
}

// FetchDocument loads a stored document. A missing id returns a NotFoundError.
func (s *Service) FetchDocument(ctx context.Context, id string) (Document, error) {
	if id == "" {
		return nil, &coreerrors.InvalidArgumentError{Argument: "id", Message: "cannot be empty"}
	}
	if s.deps.Cache == nil {
		return nil, ErrNoCache
	}

	data, err := s.deps.Cache.Get(ctx, documentKey(id))
	if err != nil {
		if coreerrors.IsNotFound(err) {
			return nil, &coreerrors.NotFoundError{Resource: "document", ID: id}
		}
		return nil, coreerrors.WrapError(err, "fetch document")
	}
	return Load(bytes.NewReader(data), s.settings)
}

// DeleteDocument removes a stored document
func (s *Service) DeleteDocument(ctx context.Context, id string) error {
	if s.deps.Cache == nil {
		return ErrNoCache
	}
	return s.deps.Cache.Delete(ctx, documentKey(id))
}

func documentKey(id string) string {
	return "document:" + id
}

func (s *Service) logInfo(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Info(msg, fields)
	}
}

func (s *Service) logError(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Error(msg, fields)
	}
}
