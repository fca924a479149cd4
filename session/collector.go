package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"docgen/doc"
	"docgen/log"
)

var (
	// ErrEmptyInput is returned when there is no text to document.
	ErrEmptyInput = errors.New("nothing to document: paste code or pick a file first")
	// ErrEmptyRepositoryURL is returned in repository mode when no URL was entered.
	ErrEmptyRepositoryURL = errors.New("repository URL cannot be empty")
	// ErrPending is returned when a request is already being generated.
	ErrPending = errors.New("documentation is already being generated")
	// ErrStale is returned by Await for a request that is no longer pending.
	ErrStale = errors.New("request was superseded")
)

// Mode is where the collector takes its text from.
type Mode int

const (
	ModePaste Mode = iota
	ModeFile
	ModeRepository
)

func (m Mode) String() string {
	switch m {
	case ModePaste:
		return "Paste"
	case ModeFile:
		return "File"
	case ModeRepository:
		return "Repository"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Collector gathers the text and selectors for a documentation request and
// allows at most one request in flight.
type Collector struct {
	mu sync.Mutex

	mode     Mode
	pasted   string
	filePath string
	fileText string
	repoURL  string

	docType  doc.DocType
	language doc.Language

	latency time.Duration
	pending *doc.Request
}

// Options configures a new Collector.
type Options struct {
	DocType  doc.DocType
	Language doc.Language
	// Latency is how long Await waits before handing the request over.
	// Zero hands it over immediately.
	Latency time.Duration
}

func NewCollector(opts Options) *Collector {
	if opts.Latency < 0 {
		opts.Latency = 0
	}
	return &Collector{
		docType:  opts.DocType,
		language: opts.Language,
		latency:  opts.Latency,
	}
}

func (c *Collector) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Collector) SetMode(mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
}

// SetText replaces the pasted text.
func (c *Collector) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pasted = text
}

func (c *Collector) SetRepositoryURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.repoURL = url
}

func (c *Collector) SetDocType(d doc.DocType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docType = d
}

func (c *Collector) SetLanguage(l doc.Language) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.language = l
}

func (c *Collector) DocType() doc.DocType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.docType
}

func (c *Collector) Language() doc.Language {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

func (c *Collector) Latency() time.Duration {
	return c.latency
}

// FilePath returns the path of the last loaded file, if any.
func (c *Collector) FilePath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filePath
}

// SetFile stores the content of a loaded file and switches to file mode.
// The content becomes the active text exactly as given.
func (c *Collector) SetFile(path, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
	c.fileText = content
	c.mode = ModeFile
}

// LoadFile reads path and makes its content the active text.
func (c *Collector) LoadFile(path string) error {
	content, err := ReadSource(path)
	if err != nil {
		return err
	}
	c.SetFile(path, content)
	return nil
}

// ActiveText returns the text a request would be built from in the current mode.
func (c *Collector) ActiveText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeTextLocked()
}

func (c *Collector) activeTextLocked() string {
	switch c.mode {
	case ModeFile:
		return c.fileText
	case ModeRepository:
		return c.repoURL
	default:
		return c.pasted
	}
}

// Pending reports whether a request is in flight.
func (c *Collector) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Begin validates the current input and marks a new request as pending.
func (c *Collector) Begin() (doc.Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		return doc.Request{}, ErrPending
	}

	text := c.activeTextLocked()
	if c.mode == ModeRepository {
		if strings.TrimSpace(text) == "" {
			return doc.Request{}, ErrEmptyRepositoryURL
		}
		if err := ValidateRepositoryURL(text); err != nil {
			return doc.Request{}, err
		}
		text = strings.TrimSpace(text)
	} else if strings.TrimSpace(text) == "" {
		return doc.Request{}, ErrEmptyInput
	}

	req, err := doc.NewRequest(text, c.docType, c.language)
	if err != nil {
		return doc.Request{}, err
	}
	c.pending = &req
	log.InfoLog.Printf("request %s started: mode=%s type=%s language=%s chars=%d",
		req.ID, c.mode, req.DocType, req.Language, len(req.Text))
	return req, nil
}

// Await waits for the configured latency and then hands req to onAnalyze.
// If ctx is done first the request is dropped and ctx.Err() returned.
func (c *Collector) Await(ctx context.Context, req doc.Request, onAnalyze func(doc.Request)) error {
	if c.latency > 0 {
		timer := time.NewTimer(c.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			c.finish(req.ID)
			return ctx.Err()
		case <-timer.C:
		}
	}

	if !c.finish(req.ID) {
		return ErrStale
	}
	if onAnalyze != nil {
		onAnalyze(req)
	}
	return nil
}

// Generate is Begin followed by Await.
func (c *Collector) Generate(ctx context.Context, onAnalyze func(doc.Request)) error {
	req, err := c.Begin()
	if err != nil {
		return err
	}
	return c.Await(ctx, req, onAnalyze)
}

// finish clears the pending marker if it belongs to id.
func (c *Collector) finish(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil || c.pending.ID != id {
		return false
	}
	c.pending = nil
	return true
}
