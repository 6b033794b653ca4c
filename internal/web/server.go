// Package web exposes the unified AI client and the tool catalog over HTTP.
package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"freeai/internal/ai"
	"freeai/internal/catalog"
	"freeai/internal/config"
)

type Server struct {
	AI      *ai.Client
	Catalog *catalog.Catalog
	Tracker *catalog.Tracker
	Config  config.Config
}

func New(client *ai.Client, cat *catalog.Catalog, tracker *catalog.Tracker, cfg config.Config) *Server {
	return &Server{AI: client, Catalog: cat, Tracker: tracker, Config: cfg}
}

// Mount registers all API routes on the given engine.
func (srv *Server) Mount(r *gin.Engine) {
	r.GET("/api/services", srv.handleServices)
	r.GET("/api/models/:service", srv.handleModels)
	r.POST("/api/generate", RateLimit(srv.Config.GenerateRPS), srv.handleGenerate)

	r.GET("/api/tools", srv.handleTools)
	r.GET("/api/tools/:category", srv.handleToolsByCategory)
	r.POST("/api/process", srv.handleProcess)
	r.GET("/api/status/:id", srv.handleStatus)
}

func (srv *Server) handleServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": srv.AI.Services()})
}

func (srv *Server) handleModels(c *gin.Context) {
	models, err := srv.AI.Models(c.Request.Context(), c.Param("service"))
	if err != nil {
		if errors.Is(err, ai.ErrUnknownService) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"models": models})
}

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	Service     string  `json:"service"`
	Model       string  `json:"model"`
	System      string  `json:"system"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

func (srv *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	if req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}
	service := req.Service
	if service == "" {
		service = srv.Config.DefaultService
	}
	opts := ai.Options{
		Model:       req.Model,
		System:      req.System,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if opts.Model == "" {
		opts.Model = srv.Config.DefaultModel
	}
	if opts.System == "" {
		opts.System = srv.Config.SystemPrompt
	}
	text, err := srv.AI.GenerateText(c.Request.Context(), req.Prompt, service, opts)
	if err != nil {
		c.JSON(generateErrStatus(err), gin.H{"error": err.Error(), "service": service})
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text, "service": service})
}

func generateErrStatus(err error) int {
	switch {
	case errors.Is(err, ai.ErrUnknownService):
		return http.StatusNotFound
	case errors.Is(err, ai.ErrEmptyPrompt):
		return http.StatusBadRequest
	case errors.Is(err, ai.ErrMissingCredential):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func (srv *Server) handleTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tools":      srv.Catalog.Tools(),
		"categories": srv.Catalog.Categories(),
	})
}

func (srv *Server) handleToolsByCategory(c *gin.Context) {
	category := c.Param("category")
	tools := srv.Catalog.ByCategory(category)
	if len(tools) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tools": tools})
}

func (srv *Server) handleProcess(c *gin.Context) {
	var req struct {
		Tool string `json:"tool"`
	}
	if err := c.BindJSON(&req); err != nil || req.Tool == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tool is required"})
		return
	}
	task, err := srv.Tracker.Create(req.Tool)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownTool) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown tool"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"taskId": task.ID, "estimatedSeconds": task.EstimatedSeconds})
}

func (srv *Server) handleStatus(c *gin.Context) {
	st, err := srv.Tracker.Status(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, st)
}
