package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"scorekeeper/models"
	"scorekeeper/pkg/coursematch"
	"scorekeeper/pkg/scorecard"
	"scorekeeper/pkg/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// uploadDir is the folder under the upload base holding scorecard images.
const uploadDir = "scorecards"

// scorecardStore is the part of store.Store the handlers use.
type scorecardStore interface {
	ListCourses(ctx context.Context) ([]coursematch.Course, error)
	SaveUpload(ctx context.Context, up *models.ScorecardUpload) error
	GetUpload(ctx context.Context, id uuid.UUID) (*models.ScorecardUpload, error)
	ListUploads(ctx context.Context, reviewOnly bool, limit int) ([]models.ScorecardUpload, error)
}

type app struct {
	store            scorecardStore
	extractor        *scorecard.Extractor
	resolver         *coursematch.Resolver
	uploadBase       string
	maxUploadBytes   int64
	reviewConfidence float64
	logger           *slog.Logger
}

func (a *app) setupRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/scorecards", a.uploadScorecardHandler)
	r.GET("/scorecards", a.listScorecardsHandler)
	r.GET("/scorecards/:id", a.getScorecardHandler)
	r.GET("/courses", a.listCoursesHandler)
	r.POST("/courses/match", a.matchCourseHandler)
}

// uploadScorecardHandler stores an uploaded scorecard image, extracts it,
// resolves the course and records the result.
func (a *app) uploadScorecardHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
		return
	}
	if file.Size > a.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large (max " + strconv.FormatInt(a.maxUploadBytes, 10) + " bytes)"})
		return
	}

	id := uuid.New()
	name := id.String() + strings.ToLower(filepath.Ext(file.Filename))
	dir := filepath.Join(a.uploadBase, uploadDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		a.logger.Error("mkdir failed", "dir", dir, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mkdir failed"})
		return
	}
	fullPath := filepath.Join(dir, name)
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		a.logger.Error("save failed", "path", fullPath, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	ext, err := a.extractor.ExtractFile(fullPath)
	if err != nil {
		_ = os.Remove(fullPath)
		if errors.Is(err, scorecard.ErrPreprocessingFailed) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		a.logger.Error("extraction failed", "file", file.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "extraction failed"})
		return
	}

	var match *coursematch.Result
	if ext.CourseName != nil {
		catalog, err := a.store.ListCourses(c.Request.Context())
		if err != nil {
			a.logger.Warn("course catalog unavailable", "error", err)
		} else {
			m := a.resolver.Resolve(*ext.CourseName, catalog)
			match = &m
		}
	}

	up := models.NewScorecardUpload(file.Filename, filepath.ToSlash(fullPath), file.Header.Get("Content-Type"), ext, match, a.reviewConfidence)
	up.PublicID = id
	if err := a.store.SaveUpload(c.Request.Context(), up); err != nil {
		a.logger.Error("db save failed", "file", file.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
		return
	}
	a.logger.Info("scorecard processed", "id", id, "file", file.Filename, "confidence", ext.Confidence, "needs_review", up.NeedsReview)

	c.JSON(http.StatusOK, gin.H{
		"id":           up.PublicID,
		"file_name":    up.FileName,
		"extraction":   ext,
		"course_match": match,
		"needs_review": up.NeedsReview,
	})
}

// listScorecardsHandler returns recent uploads, newest first. review=true
// restricts the list to those waiting for a person.
func (a *app) listScorecardsHandler(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	reviewOnly, _ := strconv.ParseBool(c.DefaultQuery("review", "false"))
	ups, err := a.store.ListUploads(c.Request.Context(), reviewOnly, limit)
	if err != nil {
		a.logger.Error("list uploads failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if ups == nil {
		ups = []models.ScorecardUpload{}
	}
	c.JSON(http.StatusOK, ups)
}

func (a *app) getScorecardHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	up, err := a.store.GetUpload(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		a.logger.Error("get upload failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, up)
}

func (a *app) listCoursesHandler(c *gin.Context) {
	catalog, err := a.store.ListCourses(c.Request.Context())
	if err != nil {
		a.logger.Error("list courses failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if catalog == nil {
		catalog = []coursematch.Course{}
	}
	c.JSON(http.StatusOK, catalog)
}

// matchCourseHandler resolves a free-text course name against the catalog.
func (a *app) matchCourseHandler(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	catalog, err := a.store.ListCourses(c.Request.Context())
	if err != nil {
		a.logger.Error("list courses failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, a.resolver.Resolve(req.Name, catalog))
}
