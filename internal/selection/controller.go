// Package selection tracks the state of one picker instance: the selected
// country, whether the list is open, and the active filter.
package selection

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/hightemp/countrypicker/internal/config"
	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/hightemp/countrypicker/internal/projection"
)

// Event is delivered to the host when a country is chosen. CallingCode is
// empty when the country has none or the code is not in the directory.
type Event struct {
	PickerID    string `json:"picker_id"`
	Code        string `json:"code"`
	CallingCode string `json:"calling_code,omitempty"`
	Name        string `json:"name"`
}

// Handler receives selection events synchronously.
type Handler func(Event)

// State is the mutable part of a picker. SelectedCode is empty when nothing
// is selected.
type State struct {
	SelectedCode string `json:"selected_code"`
	Open         bool   `json:"open"`
	Filter       string `json:"filter"`
}

// Controller owns the State of one picker. It is not safe for concurrent
// use; each picker is driven from a single event loop.
type Controller struct {
	id      string
	dir     *countries.Directory
	names   countries.Resolver
	lang    string
	enabled bool
	handler Handler
	state   State
	log     *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithInitialCode sets the code selected at creation.
func WithInitialCode(code string) Option {
	return func(c *Controller) { c.state.SelectedCode = code }
}

// WithLanguage sets the tag used to resolve names in events and projections.
func WithLanguage(tag string) Option {
	return func(c *Controller) { c.lang = tag }
}

// WithResolver replaces the name resolver (and so the default tag).
func WithResolver(r countries.Resolver) Option {
	return func(c *Controller) { c.names = r }
}

// WithHandler sets the selection callback.
func WithHandler(h Handler) Option {
	return func(c *Controller) { c.handler = h }
}

// WithEnabled controls whether Open may show the list. Pickers are enabled
// by default.
func WithEnabled(enabled bool) Option {
	return func(c *Controller) { c.enabled = enabled }
}

// WithID overrides the generated picker id.
func WithID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.id = id
		}
	}
}

// WithLogger sets the controller logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a closed picker over dir.
func New(dir *countries.Directory, opts ...Option) *Controller {
	c := &Controller{
		id:      uuid.NewString(),
		dir:     dir,
		enabled: true,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(
		config.LogKeyComponent, config.CompSelection,
		config.LogKeyPicker, c.id,
	)
	return c
}

// ID returns the picker id carried by events.
func (c *Controller) ID() string { return c.id }

// Language returns the tag used to resolve names.
func (c *Controller) Language() string { return c.names.Tag(c.lang) }

// Enabled reports whether Open may show the list.
func (c *Controller) Enabled() bool { return c.enabled }

// State returns a copy of the current state.
func (c *Controller) State() State { return c.state }

// Selected looks up the selected country. It reports false when nothing is
// selected or the code is not in the directory.
func (c *Controller) Selected() (countries.Record, bool) {
	return c.dir.Lookup(c.state.SelectedCode)
}

// Select records code as the selection, closes the list and emits an Event.
// Unknown codes are accepted as-is.
func (c *Controller) Select(code string) {
	c.state.SelectedCode = code
	c.state.Open = false

	ev := Event{PickerID: c.id, Code: code}
	if rec, ok := c.dir.Lookup(code); ok {
		ev.CallingCode, _ = rec.PrimaryCallingCode()
		ev.Name = c.names.Name(rec, c.lang)
	} else {
		c.log.Debug("selected code not in directory", config.LogKeyCode, code)
	}

	c.log.Info("country selected", config.LogKeyCode, code)
	if c.handler != nil {
		c.handler(ev)
	}
}

// SetOpen shows or hides the list regardless of Enabled.
func (c *Controller) SetOpen(open bool) {
	c.state.Open = open
}

// Open shows the list if the picker is enabled and reports whether it is open.
func (c *Controller) Open() bool {
	if c.enabled {
		c.state.Open = true
	}
	return c.state.Open
}

// SetFilter updates the active filter. Call Project for the new list.
func (c *Controller) SetFilter(text string) {
	c.state.Filter = text
}

// Project asks p for the list matching the active filter and language.
func (c *Controller) Project(p *projection.Projector) []projection.Entry {
	return p.Project(c.state.Filter, c.Language())
}
