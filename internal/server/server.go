// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes a Vault over HTTP with gin. Every query endpoint
// accepts its parameters either as a query string (GET) or as a JSON body
// (POST). Request field names match the JSON names of the vault request
// types.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/mdtasks/internal/dailynotes"
	"github.com/pdiddy/mdtasks/internal/files"
	"github.com/pdiddy/mdtasks/internal/filter"
	"github.com/pdiddy/mdtasks/internal/vault"
)

// shutdownTimeout bounds how long Run waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

// Handler serves queries for one vault.
type Handler struct {
	Vault *vault.Vault
}

// SubpathRequest parameters for /api/tags/unique.
type SubpathRequest struct {
	Subpath string `json:"subpath" form:"subpath"`
}

// DailyNoteRequest parameters for /api/daily-notes.
type DailyNoteRequest struct {
	Date string `json:"date" form:"date"`
}

// NewEngine returns a gin engine with every route registered. Request logs
// go to logw; nil discards them.
func NewEngine(v *vault.Vault, logw io.Writer) *gin.Engine {
	if logw == nil {
		logw = io.Discard
	}
	r := gin.New()
	r.Use(gin.LoggerWithWriter(logw), gin.Recovery())
	RegisterHandlers(r, v)
	return r
}

// RegisterHandlers adds the API routes to r.
func RegisterHandlers(r *gin.Engine, v *vault.Vault) {
	h := &Handler{Vault: v}

	r.GET("/healthz", h.health)

	api := r.Group("/api")
	api.GET("/tasks", h.tasks)
	api.POST("/tasks", h.tasks)
	api.GET("/tags", h.listTags)
	api.POST("/tags", h.listTags)
	api.GET("/tags/unique", h.uniqueTags)
	api.POST("/tags/unique", h.uniqueTags)
	api.GET("/tags/search", h.searchTags)
	api.POST("/tags/search", h.searchTags)
	api.GET("/files", h.listFiles)
	api.POST("/files", h.listFiles)
	api.GET("/files/read", h.readFiles)
	api.POST("/files/read", h.readFiles)
	api.GET("/daily-notes", h.dailyNote)
	api.POST("/daily-notes", h.dailyNote)
	api.GET("/daily-notes/search", h.searchDailyNotes)
	api.POST("/daily-notes/search", h.searchDailyNotes)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "root": h.Vault.Root()})
}

func (h *Handler) tasks(c *gin.Context) {
	var opts filter.Options
	if !bind(c, &opts) {
		return
	}

	tasks, err := h.Vault.Tasks(c.Request.Context(), opts)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *Handler) listTags(c *gin.Context) {
	var req vault.TagQuery
	if !bind(c, &req) {
		return
	}

	res, err := h.Vault.Tags(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) uniqueTags(c *gin.Context) {
	var req SubpathRequest
	if !bind(c, &req) {
		return
	}

	tags, err := h.Vault.UniqueTags(c.Request.Context(), req.Subpath)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *Handler) searchTags(c *gin.Context) {
	var req vault.TagSearch
	if !bind(c, &req) {
		return
	}

	res, err := h.Vault.SearchTags(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) listFiles(c *gin.Context) {
	var req vault.FileQuery
	if !bind(c, &req) {
		return
	}

	tree, err := h.Vault.Files(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

func (h *Handler) readFiles(c *gin.Context) {
	var req vault.FileRead
	if !bind(c, &req) {
		return
	}

	res, err := h.Vault.ReadFiles(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) dailyNote(c *gin.Context) {
	var req DailyNoteRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.Vault.DailyNote(c.Request.Context(), req.Date)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) searchDailyNotes(c *gin.Context) {
	var req vault.DailyNoteSearch
	if !bind(c, &req) {
		return
	}

	res, err := h.Vault.SearchDailyNotes(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// bind decodes the request into dst from the query string or, for a POST
// with a body, from JSON. It writes a 400 response and returns false on
// failure.
func bind(c *gin.Context, dst any) bool {
	var err error
	if c.Request.Method == http.MethodPost && c.Request.ContentLength != 0 {
		err = c.ShouldBindJSON(dst)
	} else {
		err = c.ShouldBindQuery(dst)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters: " + err.Error()})
		return false
	}
	return true
}

// fail maps query errors to a status: caller mistakes are 400, everything
// else is 500.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, filter.ErrInvalidSpec),
		errors.Is(err, vault.ErrNoSearchTags),
		errors.Is(err, files.ErrInvalidPath),
		errors.Is(err, dailynotes.ErrInvalidQuery):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
