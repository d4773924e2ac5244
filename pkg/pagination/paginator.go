package pagination

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/macropower/kontrol/pkg/selection"
)

// Config is the host-supplied configuration of a [Paginator]. Pointer fields
// are optional; PageSize and PageNumber are controlling values.
type Config struct {
	// InitialPageSize seeds the page size. Changes after creation are ignored.
	InitialPageSize *int `json:"initialPageSize,omitempty" jsonschema:"title=Initial Page Size,minimum=1"`
	// PageSize takes control of the page size while it is one of PageSizeOptions.
	PageSize *int `json:"pageSize,omitempty" jsonschema:"title=Page Size,minimum=1"`
	// ButtonLabels overrides the label of named buttons.
	ButtonLabels map[ButtonID]string `json:"buttonIdentifierLabels,omitempty" jsonschema:"title=Button Identifier Labels"`
	// InitialPageNumber seeds the page number when positive.
	InitialPageNumber *int `json:"initialPageNumber,omitempty" jsonschema:"title=Initial Page Number"`
	// PageNumber takes control of the page number while positive.
	PageNumber *int `json:"pageNumber,omitempty" jsonschema:"title=Page Number"`
	// PageSizeOptions lists the selectable page sizes. Required.
	PageSizeOptions []int `json:"pageSizeOptions" jsonschema:"title=Page Size Options,minItems=1"`
	// ButtonIDs orders the buttons. [Current] expands to the adjacent window.
	// Empty renders no buttons.
	ButtonIDs []ButtonID `json:"buttonIdentifiers,omitempty" jsonschema:"title=Button Identifiers"`
	// TotalItems is the number of items to paginate through. Required.
	TotalItems int `json:"totalNumberOfItems" jsonschema:"title=Total Number of Items,minimum=1"`
	// AdjacentPageNumbers is the number of page numbers shown on each side
	// of the current page.
	AdjacentPageNumbers int `json:"numberOfAdjacentPageNumbers,omitempty" jsonschema:"title=Number of Adjacent Page Numbers,minimum=0"`
	// Descending orders page numbers from greatest to lowest.
	Descending bool `json:"descending,omitempty" jsonschema:"title=Descending"`
	// OptionsOnTheLeft places the page size control before the buttons.
	OptionsOnTheLeft bool `json:"optionsOnTheLeft,omitempty" jsonschema:"title=Options on the Left"`
}

// Validate checks the parts of c that can be checked without state.
func (c Config) Validate() error {
	const op = "paginator"

	if len(c.PageSizeOptions) == 0 {
		return newError(op, CodeNoPageSizeOptions)
	}

	for _, size := range c.PageSizeOptions {
		if !IsPositive(size) {
			err := newError(op, CodePageSizeNotPositive)
			err.Detail = strconv.Itoa(size)

			return err
		}
	}

	if !IsPositive(c.TotalItems) {
		return newError(op, CodeTotalItemsNotPositive)
	}

	for _, id := range c.ButtonIDs {
		err := id.Validate()
		if err != nil {
			return err
		}
	}

	return nil
}

// Opt configures a [Paginator].
type Opt func(p *Paginator)

// WithPageNumberFunc is notified of every requested page number, including
// forced corrections.
func WithPageNumberFunc(fn func(pageNumber int)) Opt {
	return func(p *Paginator) {
		p.selectPageNumber = fn
	}
}

// WithPageSizeFunc is notified of every requested page size.
func WithPageSizeFunc(fn func(pageSize int)) Opt {
	return func(p *Paginator) {
		p.selectPageSize = fn
	}
}

// WithLogger sets the logger. Defaults to [slog.Default].
func WithLogger(l *slog.Logger) Opt {
	return func(p *Paginator) {
		p.log = l
	}
}

// Paginator holds the page number and page size of a pagination control and
// keeps the page number within the last page.
type Paginator struct {
	log              *slog.Logger
	pageNumber       *selection.Engine[int]
	pageSize         *selection.Engine[int]
	selectPageNumber func(int)
	selectPageSize   func(int)
	cfg              Config
	lastPage         int
}

// New validates cfg and creates a [Paginator]. Corrections needed to make
// the initial state consistent are reported through the notification funcs.
func New(cfg Config, opts ...Opt) (*Paginator, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	p := &Paginator{
		cfg: cfg,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	sizes, err := pageSizeDomain(cfg.PageSizeOptions)
	if err != nil {
		return nil, err
	}

	p.pageSize, err = selection.New(selection.Config[int]{
		Initial:     cfg.InitialPageSize,
		Controlling: cfg.PageSize,
		Domain:      sizes,
		OnSelect:    p.notifyPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("page size: %w", err)
	}

	p.pageNumber, err = selection.New(selection.Config[int]{
		Initial:     positive(cfg.InitialPageNumber),
		Controlling: positive(cfg.PageNumber),
		Domain:      pageNumberDomain,
		OnSelect:    p.notifyPageNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("page number: %w", err)
	}

	p.fallbackPageSize()

	err = p.clamp()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Update reconciles a new host configuration. Initial values are ignored.
func (p *Paginator) Update(cfg Config) error {
	err := cfg.Validate()
	if err != nil {
		return err
	}

	sizes, err := pageSizeDomain(cfg.PageSizeOptions)
	if err != nil {
		return err
	}

	p.cfg = cfg

	err = p.pageSize.Update(cfg.PageSize, sizes)
	if err != nil {
		return fmt.Errorf("page size: %w", err)
	}

	p.fallbackPageSize()
	p.pageNumber.SetControlling(positive(cfg.PageNumber))

	return p.clamp()
}

// SelectPage requests page n. The host is always notified; the page only
// changes locally while the page number is not controlled.
func (p *Paginator) SelectPage(n int) error {
	if n < 1 || n > p.lastPage {
		err := newError("select page", CodePageOutOfRange)
		err.Detail = strconv.Itoa(n)

		return err
	}

	p.pageNumber.Select(n)

	return nil
}

// Click selects the target of d. Disabled descriptors are ignored.
func (p *Paginator) Click(d Descriptor) error {
	if d.Disabled {
		return nil
	}

	return p.SelectPage(d.Target)
}

// SelectPageSize requests page size n and re-checks the last page. A size
// that is not one of the options falls back to the first option.
func (p *Paginator) SelectPageSize(n int) error {
	if !IsPositive(n) {
		err := newError("select page size", CodePageSizeNotPositive)
		err.Detail = strconv.Itoa(n)

		return err
	}

	p.pageSize.Select(n)
	p.fallbackPageSize()

	return p.clamp()
}

// Buttons returns the descriptors for the current state.
func (p *Paginator) Buttons() ([]Descriptor, error) {
	return Buttons(ButtonsInput{
		IDs:        p.cfg.ButtonIDs,
		Labels:     p.cfg.ButtonLabels,
		Current:    p.PageNumber(),
		Last:       p.lastPage,
		Adjacent:   p.cfg.AdjacentPageNumbers,
		Descending: p.cfg.Descending,
	})
}

// PageNumber returns the current page number.
func (p *Paginator) PageNumber() int {
	return p.pageNumber.Value()
}

// PageSize returns the current page size.
func (p *Paginator) PageSize() int {
	return p.pageSize.Value()
}

// LastPage returns the last page number.
func (p *Paginator) LastPage() int {
	return p.lastPage
}

// TotalItems returns the configured number of items.
func (p *Paginator) TotalItems() int {
	return p.cfg.TotalItems
}

// PageSizeOptions returns a copy of the configured page sizes.
func (p *Paginator) PageSizeOptions() []int {
	return append([]int(nil), p.cfg.PageSizeOptions...)
}

// ShowPageSizeControl reports whether there is a page size to choose.
func (p *Paginator) ShowPageSizeControl() bool {
	return len(p.cfg.PageSizeOptions) > 1
}

// OptionsOnTheLeft reports where the page size control goes.
func (p *Paginator) OptionsOnTheLeft() bool {
	return p.cfg.OptionsOnTheLeft
}

// PageNumberMode reports whether the page number is host controlled.
func (p *Paginator) PageNumberMode() selection.Mode {
	return p.pageNumber.Mode()
}

// PageSizeMode reports whether the page size is host controlled.
func (p *Paginator) PageSizeMode() selection.Mode {
	return p.pageSize.Mode()
}

// ItemRange returns the half-open range of item indexes on the current page.
func (p *Paginator) ItemRange() (int, int) {
	start := (p.PageNumber() - 1) * p.PageSize()
	end := min(start+p.PageSize(), p.cfg.TotalItems)

	return start, end
}

// fallbackPageSize selects the first option when the current page size is no
// longer one of the options.
func (p *Paginator) fallbackPageSize() {
	if p.pageSize.Contains(p.pageSize.Value()) {
		return
	}

	p.log.Debug("page size is not an option, selecting first option",
		slog.Int("page_size", p.pageSize.Value()),
		slog.Int("option", p.cfg.PageSizeOptions[0]),
	)
	p.pageSize.Select(p.cfg.PageSizeOptions[0])
}

// clamp recomputes the last page and forces the page number down to it when
// needed. A forced write is always reported to the host.
func (p *Paginator) clamp() error {
	last, err := PageCount(p.cfg.TotalItems, p.pageSize.Value())
	if err != nil {
		return err
	}

	p.lastPage = last

	if current := p.pageNumber.Value(); current > last {
		p.log.Debug("page number beyond last page, correcting",
			slog.Int("page_number", current),
			slog.Int("last_page", last),
			slog.String("mode", p.pageNumber.Mode().String()),
		)
		p.pageNumber.Force(last)
	}

	return nil
}

func (p *Paginator) notifyPageNumber(next, _ int) {
	if p.selectPageNumber != nil {
		p.selectPageNumber(next)
	}
}

func (p *Paginator) notifyPageSize(next, _ int) {
	if p.selectPageSize != nil {
		p.selectPageSize(next)
	}
}

var pageNumberDomain = selection.Predicate[int]{
	Accept:   IsPositive,
	Fallback: 1,
}

func pageSizeDomain(sizes []int) (*selection.OptionSet[int], error) {
	opts := make([]selection.Option[int], 0, len(sizes))
	for _, size := range sizes {
		opts = append(opts, selection.Option[int]{
			Value:        size,
			DisplayValue: strconv.Itoa(size),
		})
	}

	set, err := selection.NewOptionSet(opts, nil)
	if err != nil {
		return nil, fmt.Errorf("page size options: %w", err)
	}

	return set, nil
}
