package interpreter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tsawler/pdfstruct/content"
	"github.com/tsawler/pdfstruct/contentstream"
	"github.com/tsawler/pdfstruct/graphicsstate"
	"github.com/tsawler/pdfstruct/model"
)

var (
	// ErrOperands reports missing or mistyped operands
	ErrOperands = errors.New("invalid operands")
	// ErrNesting reports forms or glyph procedures nested too deeply,
	// usually a form that draws itself
	ErrNesting = errors.New("streams nested too deeply")
	// ErrPanic wraps a panic recovered from an operator handler
	ErrPanic = errors.New("operator panicked")
)

// Handler executes one operator
type Handler func(e *Engine, operands []contentstream.Object) error

// Warning is a recoverable problem met while interpreting a page
type Warning struct {
	Page     int
	Operator string
	Err      error
}

func (w Warning) Error() string {
	if w.Operator == "" {
		return fmt.Sprintf("page %d: %v", w.Page, w.Err)
	}
	return fmt.Sprintf("page %d: %s: %v", w.Page, w.Operator, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }

// Engine interprets content streams. It is not safe for concurrent use.
type Engine struct {
	cfg      *Config
	log      *slog.Logger
	handlers map[string]Handler

	doc  *model.Document
	page *model.Page

	stack     *graphicsstate.Stack
	resources []content.Resources
	path      *graphicsstate.Path

	textMatrix     model.Matrix
	textLineMatrix model.Matrix

	inlineImage   *contentstream.InlineImage
	isType3Stream bool
	depth         int

	warnings []Warning
}

// New creates an Engine with the default operator table
func New(opts ...Option) *Engine {
	cfg := buildConfig(opts...)
	e := &Engine{
		cfg:      cfg,
		log:      cfg.Logger,
		handlers: defaultHandlers(),
	}
	for op, h := range cfg.Handlers {
		if h == nil {
			delete(e.handlers, op)
			continue
		}
		e.handlers[op] = h
	}
	return e
}

// Parse interprets the selected pages of src. Pages that cannot be fetched
// are skipped with a warning.
func (e *Engine) Parse(src content.Document) (*model.Document, error) {
	if src == nil {
		return nil, errors.New("nil document")
	}
	e.warnings = nil
	doc := model.NewDocument()
	e.doc = doc
	e.cfg.Listener.StartDocument(doc)

	for n := 1; n <= src.NumPages(); n++ {
		if !e.cfg.wantPage(n) {
			continue
		}
		p, err := src.Page(n)
		if err != nil {
			e.warnings = append(e.warnings, Warning{Page: n, Err: err})
			e.log.Warn("skipping page", "page", n, "err", err)
			continue
		}
		doc.AddPage(e.ParsePage(n, p))
	}

	e.cfg.Listener.EndDocument(doc)
	return doc, nil
}

// ParsePage interprets a single page and returns the elements drawn on it
func (e *Engine) ParsePage(number int, p content.Page) *model.Page {
	if e.doc == nil {
		e.doc = model.NewDocument()
	}
	crop := p.CropBox()
	page := model.NewPage(number, crop)
	e.page = page
	e.resetPage(crop)
	e.cfg.Listener.StartPage(page)

	if err := e.ProcessStream(p); err != nil {
		e.warn("", err)
	}

	e.cfg.Listener.EndPage(page)
	return page
}

func (e *Engine) resetPage(crop model.Rectangle) {
	e.stack = graphicsstate.NewStack(graphicsstate.NewGraphicsState(model.Identity(), crop))
	e.resources = e.resources[:0]
	e.path = graphicsstate.NewPath()
	e.textMatrix = model.Identity()
	e.textLineMatrix = model.Identity()
	e.inlineImage = nil
	e.isType3Stream = false
	e.depth = 0
}

// Warnings returns the problems collected by the last Parse
func (e *Engine) Warnings() []Warning {
	return e.warnings
}

// Document returns the document being built
func (e *Engine) Document() *model.Document { return e.doc }

// Page returns the page being interpreted
func (e *Engine) Page() *model.Page { return e.page }

// State returns the current graphics state
func (e *Engine) State() *graphicsstate.GraphicsState {
	return e.stack.Current()
}

// StackDepth returns the number of entries of the current graphics stack
func (e *Engine) StackDepth() int {
	return e.stack.Depth()
}

// ProcessStream runs a nested stream. The stream's resources are pushed,
// the graphics stack is replaced by one seeded with a copy of the current
// state and the stream matrix is concatenated to the CTM. Everything is
// restored when the stream ends, including on panic.
func (e *Engine) ProcessStream(s content.Stream) error {
	return e.processNested(s, func(gs *graphicsstate.GraphicsState) {
		gs.Concat(s.Matrix())
	})
}

// processType3Stream runs the glyph procedure of a Type 3 character.
// Glyph space is mapped through the font matrix and the text rendering
// matrix; the text matrices are kept intact.
func (e *Engine) processType3Stream(proc content.Stream, trm model.Matrix, font content.Font) error {
	tm, tlm, inType3 := e.textMatrix, e.textLineMatrix, e.isType3Stream
	defer func() {
		e.textMatrix, e.textLineMatrix, e.isType3Stream = tm, tlm, inType3
	}()
	e.isType3Stream = true

	return e.processNested(proc, func(gs *graphicsstate.GraphicsState) {
		gs.CTM = font.FontMatrix().Multiply(trm)
		gs.Concat(proc.Matrix())
	})
}

func (e *Engine) processNested(s content.Stream, setup func(*graphicsstate.GraphicsState)) error {
	if e.depth >= e.cfg.MaxNesting {
		return ErrNesting
	}
	e.depth++
	defer func() { e.depth-- }()

	e.PushResources(s.Resources())
	defer e.PopResources()

	saved := e.SaveGraphicsStack()
	defer e.RestoreGraphicsStack(saved)

	setup(e.stack.Current())

	data, err := s.Content()
	if err != nil {
		return fmt.Errorf("read content: %w", err)
	}
	e.log.Debug("processing stream", "page", e.pageNumber(), "depth", e.depth, "bytes", len(data))
	e.processStreamOperators(data)
	return nil
}

// processStreamOperators accumulates operands and dispatches operators. A
// syntax error ends the stream.
func (e *Engine) processStreamOperators(data []byte) {
	p := contentstream.NewParser(data)
	var operands []contentstream.Object
	for {
		tok, err := p.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			e.warn("", err)
			return
		}
		if !tok.IsOperator() {
			operands = append(operands, tok.Operand)
			continue
		}
		e.inlineImage = tok.Image
		_ = e.ProcessOperator(tok.Operator, operands)
		e.inlineImage = nil
		operands = nil
	}
}

// ProcessOperator executes one operator. Errors and panics of the handler
// are logged and kept as warnings; unknown operators are ignored.
func (e *Engine) ProcessOperator(name string, operands []contentstream.Object) (err error) {
	h, ok := e.handlers[name]
	if !ok {
		e.log.Log(context.Background(), LevelTrace, "unsupported operator", "op", name, "page", e.pageNumber())
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
		if err != nil {
			e.warn(name, err)
		}
	}()
	return h(e, operands)
}

func (e *Engine) warn(op string, err error) {
	n := e.pageNumber()
	e.warnings = append(e.warnings, Warning{Page: n, Operator: op, Err: err})
	e.log.Warn("operator failed", "op", op, "page", n, "err", err)
}

func (e *Engine) pageNumber() int {
	if e.page == nil {
		return 0
	}
	return e.page.Number
}

// PushResources enters the resource scope of a stream. A nil set falls
// back to the page's resources, the bottom of the scope stack, and to empty
// resources outside a page.
func (e *Engine) PushResources(r content.Resources) {
	if r == nil {
		r = content.NoResources
		if len(e.resources) > 0 {
			r = e.resources[0]
		}
	}
	e.resources = append(e.resources, r)
}

// PopResources leaves the innermost resource scope
func (e *Engine) PopResources() {
	if len(e.resources) > 0 {
		e.resources = e.resources[:len(e.resources)-1]
	}
}

// Resources returns the innermost resource scope, or empty resources
func (e *Engine) Resources() content.Resources {
	if len(e.resources) == 0 {
		return content.NoResources
	}
	return e.resources[len(e.resources)-1]
}

// SaveGraphicsState pushes a copy of the current state (q)
func (e *Engine) SaveGraphicsState() {
	e.stack.Save()
}

// RestoreGraphicsState pops the current state (Q)
func (e *Engine) RestoreGraphicsState() error {
	return e.stack.Restore()
}

// SaveGraphicsStack replaces the stack by a new one holding a copy of the
// current state, and returns the old stack.
func (e *Engine) SaveGraphicsStack() *graphicsstate.Stack {
	old := e.stack
	e.stack = graphicsstate.NewStack(old.Current().Clone())
	return old
}

// RestoreGraphicsStack puts back a stack returned by SaveGraphicsStack
func (e *Engine) RestoreGraphicsStack(s *graphicsstate.Stack) {
	e.stack = s
}

func (e *Engine) round(r model.Rectangle) model.Rectangle {
	return r.Round(e.cfg.Precision)
}
