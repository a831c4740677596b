// Package server exposes a question Source over HTTP so other feprep
// instances (or a browser front end) can use it as a remote source.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/abhisek/feprep/internal/catalog"
	"github.com/abhisek/feprep/internal/question"
	"github.com/abhisek/feprep/internal/questiongen"
)

// Options configures the router.
type Options struct {
	// AllowOrigins enables CORS for the listed origins. Empty disables CORS.
	AllowOrigins []string
}

// generateQuestionRequest mirrors questiongen.GenerateRequest with binding rules.
type generateQuestionRequest struct {
	Category     string `json:"category" binding:"required"`
	Subtopic     string `json:"subtopic" binding:"required"`
	QuestionType string `json:"questionType" binding:"required,questionkind"`
}

type handler struct {
	source questiongen.Source
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("questionkind", func(fl validator.FieldLevel) bool {
			_, err := question.ParseKind(fl.Field().String())
			return err == nil
		})
	}
}

// NewRouter builds the gin engine serving GET /health and
// POST /api/generate-question backed by src.
func NewRouter(src questiongen.Source, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	if len(opts.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: opts.AllowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type"},
		}))
	}

	h := &handler{source: src}
	r.GET("/health", health)
	r.POST("/api/generate-question", h.generateQuestion)
	return r
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) generateQuestion(c *gin.Context) {
	var req generateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, questiongen.GenerateResponse{Error: bindingMessage(err)})
		return
	}

	topic, err := catalog.Resolve(req.Category, req.Subtopic)
	if err != nil {
		c.JSON(http.StatusBadRequest, questiongen.GenerateResponse{Error: err.Error()})
		return
	}
	kind, _ := question.ParseKind(req.QuestionType)

	q, err := h.source.Generate(c.Request.Context(), questiongen.Request{Topic: topic, Kind: kind})
	if err != nil {
		slog.WarnContext(c.Request.Context(), "generate question", "kind", kind, "topic", topic.Key(), "error", err)
		c.JSON(http.StatusInternalServerError, questiongen.GenerateResponse{Error: err.Error()})
		return
	}

	payload, err := taggedPayload(q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, questiongen.GenerateResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, questiongen.GenerateResponse{Success: true, Question: payload})
}

// taggedPayload encodes q and adds a "type" field naming its kind.
func taggedPayload(q question.Question) (json.RawMessage, error) {
	raw, err := question.Encode(q)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields["type"] = q.Kind()
	return json.Marshal(fields)
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "questionkind" {
				return "Unsupported question type: " + fe.Value().(string)
			}
		}
		return "Missing required parameters"
	}
	return "Invalid request body"
}

// requestLogger logs each request through slog instead of gin's writer.
func requestLogger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(p gin.LogFormatterParams) string {
		level := slog.LevelInfo
		switch {
		case p.StatusCode >= 500:
			level = slog.LevelError
		case p.StatusCode >= 400:
			level = slog.LevelWarn
		}
		slog.Log(context.Background(), level, "http request",
			"method", p.Method, "path", p.Path, "status", p.StatusCode,
			"latency", p.Latency.String(), "client_ip", p.ClientIP)
		return ""
	})
}

// Run serves handler on addr until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("question server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
