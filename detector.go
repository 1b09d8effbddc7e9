package filesig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gobeaver/filesig/catalogfile"
	"github.com/gobeaver/filesig/signature"
	"github.com/gobeaver/filesig/source"
)

// Detection pairs a path with the outcome of detecting it
type Detection struct {
	Path   string
	Result signature.Result
	Err    error
}

// Detector identifies files, streams, byte slices and S3 objects against a
// catalog that can be replaced at runtime. It is safe for concurrent use.
//
// Every Detect method returns a usable Result even when it also returns a
// container error: the plain ZIP record. Acquisition failures return the
// zero Result.
type Detector struct {
	catalog atomic.Pointer[signature.Catalog]

	cache            Cache
	cacheTTL         time.Duration
	maxContainerSize int64
	logger           *slog.Logger
	metrics          *metrics

	s3Mu     sync.Mutex
	s3Client source.ObjectAPI
	s3Config source.S3Config

	mu        sync.Mutex
	closed    bool
	watchers  []*catalogWatcher
	callbacks []func(*signature.Catalog, error)
}

// NewDetector creates a detector over the built-in catalog unless
// WithCatalog says otherwise
func NewDetector(opts ...Option) *Detector {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	d := &Detector{
		cache:            o.Cache,
		cacheTTL:         o.CacheTTL,
		maxContainerSize: o.MaxContainerSize,
		logger:           o.Logger,
		metrics:          newMetrics(o.MeterProvider),
		s3Client:         o.S3Client,
		s3Config:         o.S3Config,
	}
	if d.logger == nil {
		d.logger = discardLogger()
	}

	catalog := o.Catalog
	if catalog == nil {
		catalog = signature.Builtin()
	}
	d.catalog.Store(catalog)
	return d
}

// Catalog returns the catalog currently in use
func (d *Detector) Catalog() *signature.Catalog {
	return d.catalog.Load()
}

// SetCatalog replaces the catalog. Calls already running finish against the
// catalog they started with. A nil catalog restores the built-in one.
func (d *Detector) SetCatalog(c *signature.Catalog) {
	if c == nil {
		c = signature.Builtin()
	}
	d.catalog.Store(c)
	if d.cache != nil {
		d.cache.Clear()
	}
}

// LoadCatalogFile replaces the catalog with the built-in records followed by
// the records stored in the XML file at path. On error the current catalog
// is kept.
func (d *Detector) LoadCatalogFile(path string) error {
	c, err := catalogfile.LoadCatalog(path, signature.Builtin())
	d.metrics.recordReload(context.Background(), c, err)
	if err != nil {
		d.notify(nil, err)
		return &PathError{Op: "load-catalog", Path: path, Err: err}
	}

	d.SetCatalog(c)
	d.logger.Info("catalog loaded",
		"path", path,
		"records", c.Len(),
		"fingerprint", fmt.Sprintf("%016x", c.Fingerprint()))
	d.notify(c, nil)
	return nil
}

// OnCatalogChange registers a callback invoked after every catalog file load
// with either the new catalog or the load error. Returns a function to
// unregister the callback.
func (d *Detector) OnCatalogChange(callback func(*signature.Catalog, error)) (unregister func()) {
	d.mu.Lock()
	d.callbacks = append(d.callbacks, callback)
	index := len(d.callbacks) - 1
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if index < len(d.callbacks) {
			// Set to nil instead of removing to avoid index shifting
			d.callbacks[index] = nil
		}
	}
}

func (d *Detector) notify(c *signature.Catalog, err error) {
	d.mu.Lock()
	callbacks := make([]func(*signature.Catalog, error), len(d.callbacks))
	copy(callbacks, d.callbacks)
	d.mu.Unlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(c, err)
		}
	}
}

// Detect identifies header, opening the container through open when the
// header matches the plain ZIP signature
func (d *Detector) Detect(ctx context.Context, header []byte, open signature.ContainerOpener) (signature.Result, error) {
	return d.identify(ctx, d.Catalog(), header, open)
}

// DetectBytes identifies an in-memory blob
func (d *Detector) DetectBytes(ctx context.Context, data []byte) (signature.Result, error) {
	return d.Detect(ctx, source.HeaderFromBytes(data), source.ZipOpener(bytes.NewReader(data), int64(len(data))))
}

// DetectReader identifies the content of r. Seekable readers are rewound
// and inspected in place; other streams are buffered only when a ZIP must be
// opened, up to the configured container size.
func (d *Detector) DetectReader(ctx context.Context, r io.Reader) (signature.Result, error) {
	header, err := source.ReadHeader(r)
	if err != nil {
		return signature.Result{}, fmt.Errorf("read header: %w", err)
	}
	return d.Detect(ctx, header, source.StreamOpener(r, header, d.maxContainerSize))
}

// DetectReaderAt identifies size bytes of content readable through r
func (d *Detector) DetectReaderAt(ctx context.Context, r io.ReaderAt, size int64) (signature.Result, error) {
	header, err := source.ReadHeader(io.NewSectionReader(r, 0, size))
	if err != nil {
		return signature.Result{}, fmt.Errorf("read header: %w", err)
	}
	return d.Detect(ctx, header, source.ZipOpener(r, size))
}

// DetectFile identifies the file at path. Results are cached by path, size
// and modification time when a cache is configured.
func (d *Detector) DetectFile(ctx context.Context, path string) (signature.Result, error) {
	if err := ctx.Err(); err != nil {
		return signature.Result{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return signature.Result{}, wrapPathErr("detect", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return signature.Result{}, wrapPathErr("detect", path, err)
	}
	if info.IsDir() {
		return signature.Result{}, &PathError{Op: "detect", Path: path, Err: ErrIsDir}
	}

	catalog := d.Catalog()
	key := resultKey(catalog, fileKeyParts(path, info.Size(), info.ModTime())...)
	if res, ok := d.cached(ctx, key); ok {
		return res, nil
	}

	header, err := source.ReadHeader(f)
	if err != nil {
		return signature.Result{}, wrapPathErr("detect", path, err)
	}

	res, err := d.identify(ctx, catalog, header, source.ZipOpener(f, info.Size()))
	if err != nil {
		return res, &PathError{Op: "detect", Path: path, Err: err}
	}
	d.store(key, res)
	return res, nil
}

// DetectS3 identifies an S3 object using ranged reads. Results are cached by
// bucket, key and ETag when a cache is configured.
func (d *Detector) DetectS3(ctx context.Context, bucket, key string) (signature.Result, error) {
	name := "s3://" + bucket + "/" + key

	client, err := d.s3(ctx)
	if err != nil {
		return signature.Result{}, &PathError{Op: "detect", Path: name, Err: err}
	}

	obj, err := source.OpenS3Object(ctx, client, bucket, key)
	if err != nil {
		return signature.Result{}, &PathError{Op: "detect", Path: name, Err: err}
	}

	catalog := d.Catalog()
	cacheKey := resultKey(catalog, objectKeyParts(bucket, key, obj.ETag())...)
	if res, ok := d.cached(ctx, cacheKey); ok {
		return res, nil
	}

	header, err := obj.Header()
	if err != nil {
		return signature.Result{}, &PathError{Op: "detect", Path: name, Err: err}
	}

	res, err := d.identify(ctx, catalog, header, obj.Opener())
	if err != nil {
		return res, &PathError{Op: "detect", Path: name, Err: err}
	}
	d.store(cacheKey, res)
	return res, nil
}

// DetectAsync identifies the file at path on a separate goroutine. The
// returned channel receives exactly one Detection and is then closed.
// Cancelling ctx before acquisition starts yields ctx.Err().
func (d *Detector) DetectAsync(ctx context.Context, path string) <-chan Detection {
	out := make(chan Detection, 1)
	go func() {
		defer close(out)
		res, err := d.DetectFile(ctx, path)
		out <- Detection{Path: path, Result: res, Err: err}
	}()
	return out
}

// Close stops catalog watchers. Detection keeps working after Close.
func (d *Detector) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	watchers := d.watchers
	d.watchers = nil
	d.mu.Unlock()

	for _, w := range watchers {
		w.stop()
	}
	return nil
}

func (d *Detector) identify(ctx context.Context, catalog *signature.Catalog, header []byte, open signature.ContainerOpener) (signature.Result, error) {
	start := time.Now()
	res, err := signature.NewMatcher(catalog).Identify(header, open)
	d.metrics.recordDetection(ctx, res, err, start)

	if err != nil {
		d.logger.Warn("container inspection failed, reporting plain zip",
			"error", err,
			"unreadable", signature.IsUnreadableContainer(err))
		return res, err
	}

	d.logger.Debug("detected",
		"kind", res.Kind.String(),
		"name", res.Record.Name,
		"extension", res.Extension(),
		"mime", res.MIME(),
		"header_len", len(header))
	return res, nil
}

func (d *Detector) cached(ctx context.Context, key string) (signature.Result, bool) {
	if d.cache == nil {
		return signature.Result{}, false
	}
	res, ok := d.cache.Get(key)
	if ok {
		d.metrics.recordCacheHit(ctx)
	}
	return res, ok
}

func (d *Detector) store(key string, res signature.Result) {
	if d.cache != nil {
		d.cache.Set(key, res, d.cacheTTL)
	}
}

func (d *Detector) s3(ctx context.Context) (source.ObjectAPI, error) {
	d.s3Mu.Lock()
	defer d.s3Mu.Unlock()

	if d.s3Client != nil {
		return d.s3Client, nil
	}
	client, err := source.NewS3Client(ctx, d.s3Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}
	d.s3Client = client
	return client, nil
}

// wrapPathErr maps os not-exist errors onto ErrNotExist
func wrapPathErr(op, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		err = fmt.Errorf("%w: %w", ErrNotExist, err)
	}
	return &PathError{Op: op, Path: path, Err: err}
}
