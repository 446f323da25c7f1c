package server

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/hightemp/countrypicker/internal/config"
	"github.com/hightemp/countrypicker/internal/jumpindex"
	"github.com/hightemp/countrypicker/internal/output"
	"github.com/hightemp/countrypicker/internal/selection"
)

type createPickerRequest struct {
	InitialCode string `json:"initial_code"`
	Lang        string `json:"lang"`
	Enabled     *bool  `json:"enabled"`
}

type openRequest struct {
	Open bool `json:"open"`
}

type filterRequest struct {
	Filter string `json:"filter"`
}

type selectRequest struct {
	Code string `json:"code"`
}

type pickerResponse struct {
	ID      string `json:"id"`
	Lang    string `json:"lang"`
	Enabled bool   `json:"enabled"`
	selection.State
}

type lettersResponse struct {
	Letters []string `json:"letters"`
	Present []string `json:"present"`
}

type indexResponse struct {
	Letter   string `json:"letter"`
	Position int    `json:"position"`
}

func pickerState(ctrl *selection.Controller) pickerResponse {
	return pickerResponse{
		ID:      ctrl.ID(),
		Lang:    ctrl.Language(),
		Enabled: ctrl.Enabled(),
		State:   ctrl.State(),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// GET /api/countries?filter=&lang=
func (s *Server) listCountries(c *fiber.Ctx) error {
	entries := s.projector.Project(c.Query("filter"), c.Query("lang"))
	return c.JSON(nonNil(entries))
}

// GET /api/countries/:code?lang=
func (s *Server) getCountry(c *fiber.Ctx) error {
	code := strings.ToUpper(c.Params("code"))
	rec, ok := s.dir.Lookup(code)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("country %s not found", code),
		})
	}
	return c.JSON(output.LookupResult{
		Code:         rec.Code,
		Name:         s.projector.Resolver().Name(rec, c.Query("lang")),
		CallingCodes: rec.CallingCodes,
		Flag:         rec.Flag(),
	})
}

// GET /api/letters?filter=&lang=
func (s *Server) listLetters(c *fiber.Ctx) error {
	entries := s.projector.Project(c.Query("filter"), c.Query("lang"))
	return c.JSON(lettersResponse{
		Letters: jumpindex.Letters(),
		Present: nonNil(jumpindex.Present(entries)),
	})
}

// GET /api/index/:letter?filter=&lang=
func (s *Server) indexOf(c *fiber.Ctx) error {
	letter := strings.ToUpper(c.Params("letter"))
	if !jumpindex.ValidLetter(letter) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid letter %q", c.Params("letter")),
		})
	}
	entries := s.projector.Project(c.Query("filter"), c.Query("lang"))
	pos, ok := jumpindex.IndexOf(entries, letter)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("no country starts with %s", letter),
		})
	}
	return c.JSON(indexResponse{Letter: letter, Position: pos})
}

// POST /api/pickers
func (s *Server) createPicker(c *fiber.Ctx) error {
	var req createPickerRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	code := strings.ToUpper(strings.TrimSpace(req.InitialCode))
	if code == "" {
		code = s.locate(c.IP())
	}

	sess := &session{}
	opts := []selection.Option{
		selection.WithResolver(s.projector.Resolver()),
		selection.WithLanguage(req.Lang),
		selection.WithLogger(s.base),
		selection.WithHandler(func(ev selection.Event) { sess.last = &ev }),
	}
	if code != "" {
		opts = append(opts, selection.WithInitialCode(code))
	}
	if req.Enabled != nil {
		opts = append(opts, selection.WithEnabled(*req.Enabled))
	}
	sess.ctrl = selection.New(s.dir, opts...)
	s.sessions.add(sess)

	s.log.Debug("picker created", config.LogKeyPicker, sess.ctrl.ID(), config.LogKeyCode, code)
	return c.Status(fiber.StatusCreated).JSON(pickerState(sess.ctrl))
}

// locate returns the directory code for ip, or "" when no locator is set or
// the address cannot be placed.
func (s *Server) locate(ip string) string {
	if s.locator == nil {
		return ""
	}
	code, err := s.locator.CountryCode(ip)
	if err != nil {
		s.log.Debug("geoip lookup failed", config.LogKeyIP, ip, config.LogKeyError, err)
		return ""
	}
	if _, ok := s.dir.Lookup(code); !ok {
		return ""
	}
	return code
}

func pickerNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": fmt.Sprintf("picker %s not found", c.Params("id")),
	})
}

// GET /api/pickers/:id
func (s *Server) getPicker(c *fiber.Ctx) error {
	sess, ok := s.sessions.get(c.Params("id"))
	if !ok {
		return pickerNotFound(c)
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return c.JSON(pickerState(sess.ctrl))
}

// DELETE /api/pickers/:id
func (s *Server) deletePicker(c *fiber.Ctx) error {
	if !s.sessions.remove(c.Params("id")) {
		return pickerNotFound(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PUT /api/pickers/:id/open
func (s *Server) setOpen(c *fiber.Ctx) error {
	sess, ok := s.sessions.get(c.Params("id"))
	if !ok {
		return pickerNotFound(c)
	}
	var req openRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if req.Open {
		sess.ctrl.Open()
	} else {
		sess.ctrl.SetOpen(false)
	}
	return c.JSON(pickerState(sess.ctrl))
}

// PUT /api/pickers/:id/filter
func (s *Server) setFilter(c *fiber.Ctx) error {
	sess, ok := s.sessions.get(c.Params("id"))
	if !ok {
		return pickerNotFound(c)
	}
	var req filterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.ctrl.SetFilter(req.Filter)
	return c.JSON(pickerState(sess.ctrl))
}

// POST /api/pickers/:id/select
func (s *Server) selectCountry(c *fiber.Ctx) error {
	sess, ok := s.sessions.get(c.Params("id"))
	if !ok {
		return pickerNotFound(c)
	}
	var req selectRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "code is required",
		})
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.last = nil
	sess.ctrl.Select(strings.ToUpper(strings.TrimSpace(req.Code)))
	if sess.last == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "selection produced no event")
	}
	return c.JSON(sess.last)
}

// GET /api/pickers/:id/countries
func (s *Server) pickerCountries(c *fiber.Ctx) error {
	sess, ok := s.sessions.get(c.Params("id"))
	if !ok {
		return pickerNotFound(c)
	}
	sess.mu.Lock()
	entries := sess.ctrl.Project(s.projector)
	sess.mu.Unlock()
	return c.JSON(nonNil(entries))
}

// Pickers returns the number of live picker sessions.
func (s *Server) Pickers() int {
	return s.sessions.len()
}
