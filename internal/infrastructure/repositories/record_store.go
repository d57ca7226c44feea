package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domainerrors "gisteam.backend/internal/domain/errors"
	domainrepos "gisteam.backend/internal/domain/repositories"
	"gisteam.backend/internal/infrastructure/codec"
	"gisteam.backend/internal/infrastructure/models"
	"gisteam.backend/internal/infrastructure/objectstore"
	"gisteam.backend/pkg/logger"
	"gisteam.backend/pkg/utils"
)

const maxIDAttempts = 3

var errNotListed = errors.New("record not yet listed")

// Options tune every RecordStore built from them.
type Options struct {
	// ListConcurrency bounds parallel gets during a scan.
	ListConcurrency int
	// ListAttempts and ListInterval bound AwaitListed polling.
	ListAttempts int
	ListInterval time.Duration
	// Now and NewID are replaced in tests.
	Now   func() time.Time
	NewID func() uuid.UUID
}

func (o Options) withDefaults() Options {
	if o.ListConcurrency < 1 {
		o.ListConcurrency = 8
	}
	if o.ListAttempts < 1 {
		o.ListAttempts = 5
	}
	if o.ListInterval <= 0 {
		o.ListInterval = 200 * time.Millisecond
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = utils.GenerateUUIDv7
	}
	return o
}

// ScanResult is one full pass over a collection.
type ScanResult[PM any] struct {
	Records   []PM
	Listed    int
	Malformed []string
	Vanished  int
}

// RecordStore keeps one collection of documents of type M under
// "{collection}/{id}". It holds no state besides the store handle, so it is
// safe for concurrent use.
type RecordStore[M any, PM interface {
	*M
	models.Document
}] struct {
	store      objectstore.Store
	collection string
	opts       Options
}

func NewRecordStore[M any, PM interface {
	*M
	models.Document
}](store objectstore.Store, collection string, opts Options) *RecordStore[M, PM] {
	return &RecordStore[M, PM]{store: store, collection: collection, opts: opts.withDefaults()}
}

func (s *RecordStore[M, PM]) Collection() string { return s.collection }

// Now returns the current time in UTC without a monotonic reading.
func (s *RecordStore[M, PM]) Now() time.Time {
	return s.opts.Now().UTC()
}

func (s *RecordStore[M, PM]) path(id string) string {
	return objectstore.Join(s.collection, id)
}

func (s *RecordStore[M, PM]) prefix() string {
	return s.collection + "/"
}

// NewID returns an id with no object behind it yet. Ids are never reused,
// so a taken id is replaced rather than overwritten.
func (s *RecordStore[M, PM]) NewID(ctx context.Context) (uuid.UUID, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.opts.NewID()
		_, found, err := s.store.Get(ctx, s.path(id.String()))
		if err != nil {
			return uuid.Nil, err
		}
		if !found {
			return id, nil
		}
		logger.Warn(ctx, "Generated id already taken", zap.String("collection", s.collection), zap.String("id", id.String()))
	}
	return uuid.Nil, fmt.Errorf("allocate %s id: %w", s.collection, domainerrors.ErrAlreadyExists)
}

// Put encodes doc and writes it over whatever is stored at its path.
func (s *RecordStore[M, PM]) Put(ctx context.Context, doc PM) error {
	data, err := codec.Encode(doc)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, s.path(doc.DocumentID()), data)
}

// Load returns the document for id. Absent and undecodable objects both
// yield ErrNotFound; the latter is logged.
func (s *RecordStore[M, PM]) Load(ctx context.Context, id uuid.UUID) (PM, error) {
	return s.loadPath(ctx, s.path(id.String()))
}

func (s *RecordStore[M, PM]) loadPath(ctx context.Context, path string) (PM, error) {
	data, found, err := s.store.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domainerrors.ErrNotFound
	}
	doc, err := s.decode(path, data)
	if err != nil {
		s.logMalformed(ctx, path, err)
		return nil, domainerrors.ErrNotFound
	}
	return doc, nil
}

// decode parses the object at path. The path names the record: a body whose
// id disagrees with its path segment is malformed, so a later write can never
// land on a second object.
func (s *RecordStore[M, PM]) decode(path string, data []byte) (PM, error) {
	doc, err := codec.Decode[M, PM](path, data)
	if err != nil {
		return nil, err
	}
	pathID, err := uuid.Parse(IDFromPath(path))
	if err != nil {
		return nil, &domainerrors.MalformedError{Path: path, Err: fmt.Errorf("path id: %w", err)}
	}
	if bodyID := uuid.MustParse(PM(doc).DocumentID()); bodyID != pathID {
		return nil, &domainerrors.MalformedError{Path: path, Err: fmt.Errorf("document id %s does not match path", bodyID)}
	}
	return doc, nil
}

// Modify loads id, applies mutate, moves updated_at and writes the whole
// document back. A missing record is ErrNotFound and nothing is written.
// Concurrent modifications of one id are last-writer-wins.
func (s *RecordStore[M, PM]) Modify(ctx context.Context, id uuid.UUID, mutate func(PM)) (PM, error) {
	doc, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	mutate(doc)
	if t, ok := any(doc).(models.Touchable); ok {
		t.Touch(s.Now())
	}
	if err := s.Put(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Remove deletes the object for id and reports whether it existed.
func (s *RecordStore[M, PM]) Remove(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.store.Delete(ctx, s.path(id.String()))
}

// Scan reads every listed document in the collection. Order is unspecified.
func (s *RecordStore[M, PM]) Scan(ctx context.Context) ([]PM, error) {
	res, err := s.ScanDetailed(ctx)
	if err != nil {
		return nil, err
	}
	return res.Records, nil
}

// ScanDetailed is Scan plus the paths it had to skip. Malformed documents
// and objects deleted between list and get are skipped; a transient error
// fails the whole scan since a partial view would hide records from the
// uniqueness check.
func (s *RecordStore[M, PM]) ScanDetailed(ctx context.Context) (*ScanResult[PM], error) {
	paths, err := s.store.List(ctx, s.prefix())
	if err != nil {
		return nil, err
	}

	type slot struct {
		doc       PM
		malformed bool
	}
	slots := make([]slot, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.ListConcurrency)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			data, found, err := s.store.Get(gctx, p)
			if err != nil {
				return err
			}
			if !found {
				return nil
			}
			doc, err := s.decode(p, data)
			if err != nil {
				s.logMalformed(gctx, p, err)
				slots[i].malformed = true
				return nil
			}
			slots[i].doc = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.collection, err)
	}

	res := &ScanResult[PM]{Listed: len(paths), Records: make([]PM, 0, len(paths))}
	for i, sl := range slots {
		switch {
		case sl.malformed:
			res.Malformed = append(res.Malformed, paths[i])
		case sl.doc == nil:
			res.Vanished++
		default:
			res.Records = append(res.Records, sl.doc)
		}
	}
	return res, nil
}

// Stats runs a detailed scan and keeps only the counts.
func (s *RecordStore[M, PM]) Stats(ctx context.Context) (*domainrepos.ScanStats, error) {
	res, err := s.ScanDetailed(ctx)
	if err != nil {
		return nil, err
	}
	return &domainrepos.ScanStats{
		Collection: s.collection,
		Listed:     res.Listed,
		Decoded:    len(res.Records),
		Malformed:  res.Malformed,
		Vanished:   res.Vanished,
	}, nil
}

// AwaitListed polls List until the object for id shows up, for callers
// that must observe their own write in a later scan.
func (s *RecordStore[M, PM]) AwaitListed(ctx context.Context, id uuid.UUID) error {
	want := s.path(id.String())
	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(s.opts.ListInterval), uint64(s.opts.ListAttempts-1)),
		ctx,
	)
	err := backoff.Retry(func() error {
		paths, err := s.store.List(ctx, s.prefix())
		if err != nil {
			if domainerrors.IsTransient(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		for _, p := range paths {
			if p == want {
				return nil
			}
		}
		return errNotListed
	}, b)
	if errors.Is(err, errNotListed) {
		return domainerrors.Transient("await listed "+want, err)
	}
	return err
}

func (s *RecordStore[M, PM]) logMalformed(ctx context.Context, path string, err error) {
	logger.Warn(ctx, "Skipping malformed document",
		zap.String("collection", s.collection),
		zap.String("path", path),
		zap.Error(err),
	)
}

// IDFromPath extracts the id segment of an object path.
func IDFromPath(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
