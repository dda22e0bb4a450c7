package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shinji-kodama/cabinetgen/internal/model"
)

// Default library location.
const (
	DefaultCatalogURL    = "https://raw.githubusercontent.com/aarslanovic/AMAR.IO_WORKSHOP/main/catalog.json"
	DefaultBlocksBaseURL = "https://raw.githubusercontent.com/aarslanovic/AMAR.IO_WORKSHOP/main/blocks/"
	DefaultTimeout       = 30 * time.Second

	catalogFileName = "catalog.json"
)

// Environment variables that override Config fields in ConfigFromEnv.
const (
	EnvCacheDir   = "CABINETGEN_CACHE_DIR"
	EnvCatalogURL = "CABINETGEN_CATALOG_URL"
	EnvBlocksURL  = "CABINETGEN_BLOCKS_URL"
)

// Config locates a block library and its local cache.
type Config struct {
	CatalogURL    string
	BlocksBaseURL string
	CacheDir      string
	Timeout       time.Duration
}

// DefaultCacheDir returns <user cache dir>/cabinetgen/blocks, falling
// back to the home directory when no cache dir is known.
func DefaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "cabinetgen", "blocks")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cabinetgen", "blocks")
}

// ConfigFromEnv returns the default Config with any CABINETGEN_* overrides
// applied.
func ConfigFromEnv() Config {
	cfg := Config{
		CatalogURL:    DefaultCatalogURL,
		BlocksBaseURL: DefaultBlocksBaseURL,
		CacheDir:      DefaultCacheDir(),
		Timeout:       DefaultTimeout,
	}
	if v := os.Getenv(EnvCatalogURL); v != "" {
		cfg.CatalogURL = v
	}
	if v := os.Getenv(EnvBlocksURL); v != "" {
		cfg.BlocksBaseURL = v
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		cfg.CacheDir = v
	}
	return cfg
}

// Scene is where blocks are inserted. kernel.Document implements it.
type Scene interface {
	// HasBlock reports whether a definition named id already exists.
	HasBlock(id string) bool

	// InsertBlock places another instance of an existing definition.
	InsertBlock(id string, at model.Vec3) error

	// ImportBlock defines id from the file at path and places an instance.
	ImportBlock(id, path string, at model.Vec3) error
}

// Client talks to one block library.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// NewClient returns a Client for cfg. Empty fields take their defaults;
// a nil logger is allowed.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.CatalogURL == "" {
		cfg.CatalogURL = DefaultCatalogURL
	}
	if cfg.BlocksBaseURL == "" {
		cfg.BlocksBaseURL = DefaultBlocksBaseURL
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// CatalogPath is where LoadCatalog caches the catalog.
func (c *Client) CatalogPath() string {
	return filepath.Join(c.cfg.CacheDir, catalogFileName)
}

// BlockPath is where Fetch stores b.
func (c *Client) BlockPath(b Block) string {
	return filepath.Join(c.cfg.CacheDir, b.CacheName())
}

// BlockURL is the download URL for b.
func (c *Client) BlockURL(b Block) string {
	return strings.TrimSuffix(c.cfg.BlocksBaseURL, "/") + "/" + strings.TrimPrefix(b.File, "/")
}

// LoadCatalog downloads the catalog, caches it, and parses it.
func (c *Client) LoadCatalog(ctx context.Context) (*Catalog, error) {
	var cat *Catalog
	parse := func(tmp string) error {
		data, err := os.ReadFile(tmp)
		if err != nil {
			return &model.RetrievalError{Op: "read", Target: tmp, Err: err}
		}
		parsed, err := ParseCatalog(data)
		if err != nil {
			return &model.RetrievalError{Op: "parse", Target: c.cfg.CatalogURL, Err: err}
		}
		cat = parsed
		return nil
	}

	if err := c.download(ctx, c.cfg.CatalogURL, c.CatalogPath(), parse); err != nil {
		return nil, err
	}

	c.logger.Info("catalog loaded",
		zap.String("library", cat.Info.WithDefaults().Name),
		zap.Int("blocks", len(cat.Blocks)),
	)
	return cat, nil
}

// Fetch downloads b into the cache and returns the local path.
func (c *Client) Fetch(ctx context.Context, b Block) (string, error) {
	if err := checkBlockFile(b.File); err != nil {
		return "", &model.RetrievalError{Op: "fetch", Target: b.File, Err: err}
	}

	path := c.BlockPath(b)
	if err := c.download(ctx, c.BlockURL(b), path, nil); err != nil {
		return "", err
	}

	c.logger.Info("block downloaded", zap.String("block", b.Name), zap.String("path", path))
	return path, nil
}

// InsertResult describes what Insert did.
type InsertResult struct {
	BlockID    string `json:"blockId"`
	Downloaded bool   `json:"downloaded"`
	Path       string `json:"path,omitempty"`
}

// Insert places b at the given point. If the scene already defines the
// block, another instance is inserted without touching the network.
// Otherwise the block is fetched and imported.
//
// Download failures are *model.RetrievalError; scene failures are
// *model.ConstructionError.
func (c *Client) Insert(ctx context.Context, scene Scene, b Block, at model.Vec3) (InsertResult, error) {
	id := b.BlockID()
	res := InsertResult{BlockID: id}

	if scene.HasBlock(id) {
		c.logger.Debug("block already defined, inserting instance", zap.String("block", id))
		if err := scene.InsertBlock(id, at); err != nil {
			return res, &model.ConstructionError{Item: id, Err: err}
		}
		return res, nil
	}

	path, err := c.Fetch(ctx, b)
	if err != nil {
		return res, err
	}
	res.Downloaded = true
	res.Path = path

	if err := scene.ImportBlock(id, path, at); err != nil {
		return res, &model.ConstructionError{Item: id, Err: err}
	}
	return res, nil
}

// ClearCache removes the cache directory and everything in it.
func (c *Client) ClearCache() error {
	if err := os.RemoveAll(c.cfg.CacheDir); err != nil {
		return &model.RetrievalError{Op: "clear cache", Target: c.cfg.CacheDir, Err: err}
	}
	c.logger.Info("cache cleared", zap.String("dir", c.cfg.CacheDir))
	return nil
}

// download GETs url into dest atomically: the body is written to a temp
// file in the same directory and renamed over dest only on success. A
// non-nil verify is run on the temp file first; if it fails, dest keeps
// its previous contents.
func (c *Client) download(ctx context.Context, url, dest string, verify func(tmp string) error) error {
	fail := func(op string, err error) error {
		return &model.RetrievalError{Op: op, Target: url, Err: err}
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &model.RetrievalError{Op: "create cache", Target: dir, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fail("request", err)
	}

	c.logger.Debug("downloading", zap.String("url", url))
	resp, err := c.http.Do(req)
	if err != nil {
		return fail("download", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fail("download", fmt.Errorf("unexpected status %s", resp.Status))
	}

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return &model.RetrievalError{Op: "write", Target: dir, Err: err}
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return fail("download", err)
	}
	if err := tmp.Close(); err != nil {
		return &model.RetrievalError{Op: "write", Target: tmpName, Err: err}
	}
	if verify != nil {
		if err := verify(tmpName); err != nil {
			return err
		}
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return &model.RetrievalError{Op: "write", Target: dest, Err: err}
	}
	committed = true
	return nil
}

// checkBlockFile rejects catalog paths that would escape the cache
// directory or the blocks base URL.
func checkBlockFile(file string) error {
	if file == "" {
		return errors.New("block has no file")
	}
	for _, part := range strings.Split(file, "/") {
		if part == "." || part == ".." {
			return fmt.Errorf("block file %q escapes the library", file)
		}
	}
	if strings.ContainsRune(file, '\\') {
		return fmt.Errorf("block file %q must use forward slashes", file)
	}
	return nil
}
