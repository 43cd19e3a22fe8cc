package api

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rawblock/decipher-engine/internal/cache"
	"github.com/rawblock/decipher-engine/internal/checker"
	"github.com/rawblock/decipher-engine/internal/config"
	"github.com/rawblock/decipher-engine/internal/decoder"
	"github.com/rawblock/decipher-engine/internal/search"
	"github.com/rawblock/decipher-engine/internal/wordlist"
	"github.com/rawblock/decipher-engine/pkg/models"
)

// APIHandler groups the dependencies every route needs. Built once at
// startup and shared across requests; nothing here is request-scoped
// except what's read out of the incoming JSON body.
type APIHandler struct {
	engine     *search.Engine
	registry   *decoder.Registry
	store      *cache.Store
	wordlistIx *wordlist.Index
	ingester   *wordlist.Ingester
	wsHub      *Hub
	baseConfig models.Config
}

// SetupRouter wires the HTTP/WebSocket surface: a public health/stream/
// catalog group and a bearer-token-protected, rate-limited group for the
// actual cracking work.
func SetupRouter(engine *search.Engine, registry *decoder.Registry, store *cache.Store, wordlistIx *wordlist.Index, ingester *wordlist.Ingester, wsHub *Hub, baseConfig models.Config) *gin.Engine {
	r := gin.Default()

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowedOrigins == "" || allowedOrigins == "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowed := range strings.Split(allowedOrigins, ",") {
				if strings.TrimSpace(allowed) == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	handler := &APIHandler{
		engine:     engine,
		registry:   registry,
		store:      store,
		wordlistIx: wordlistIx,
		ingester:   ingester,
		wsHub:      wsHub,
		baseConfig: baseConfig,
	}

	pub := r.Group("/api/v1")
	{
		pub.GET("/health", handler.handleHealth)
		pub.GET("/stream", wsHub.Subscribe)
		pub.GET("/decoders", handler.handleListDecoders)
	}

	auth := r.Group("/api/v1")
	auth.Use(AuthMiddleware())
	auth.Use(NewRateLimiter(30, 5).Middleware())
	{
		auth.POST("/crack", handler.handleCrack)
		auth.POST("/confirm/:token", handler.handleConfirm)
		auth.POST("/wordlist", handler.handleIngestWordlist)
	}

	return r
}

func (h *APIHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "operational",
		"engine":  "decipher-engine",
		"decoders": len(h.registry.All()),
	})
}

func (h *APIHandler) handleListDecoders(c *gin.Context) {
	descriptors := make([]models.Descriptor, 0, len(h.registry.All()))
	for _, d := range h.registry.All() {
		descriptors = append(descriptors, d.Describe())
	}
	c.JSON(http.StatusOK, gin.H{"decoders": descriptors})
}

// crackRequest is the POST /api/v1/crack body. Every field besides Text
// is optional and falls back to the handler's baseConfig.
type crackRequest struct {
	Text           string   `json:"text" binding:"required"`
	TimeoutSeconds int      `json:"timeoutSeconds,omitempty"`
	Regex          string   `json:"regex,omitempty"`
	Wordlist       []string `json:"wordlist,omitempty"`
	HumanCheckerOn *bool    `json:"humanCheckerOn,omitempty"`
	TopResults     *bool    `json:"topResults,omitempty"`
}

func (h *APIHandler) handleCrack(c *gin.Context) {
	var req crackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	cfg := h.baseConfig
	if req.TimeoutSeconds > 0 {
		cfg.TimeoutSeconds = req.TimeoutSeconds
	}
	if req.Regex != "" {
		cfg.Regex = req.Regex
	}
	if len(req.Wordlist) > 0 {
		cfg.Wordlist = req.Wordlist
	}
	if req.HumanCheckerOn != nil {
		cfg.HumanCheckerOn = *req.HumanCheckerOn
	}
	if req.TopResults != nil {
		cfg.TopResults = *req.TopResults
	}

	if cached, ok, err := h.store.Lookup(req.Text); err == nil && ok {
		c.JSON(http.StatusOK, gin.H{
			"text":     []string{cached.DecodedText},
			"cacheHit": true,
		})
		return
	}

	backend, err := buildBackendCheckers(cfg, h.wordlistIx)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var top checker.Checker = checker.NewAthena(backend...)
	if cfg.HumanCheckerOn && h.wsHub != nil {
		top = checker.NewHumanChecker(top, h.wsHub)
	}

	result, err := h.engine.PerformCracking(c.Request.Context(), cfg, req.Text, []checker.Checker{top})
	if err != nil {
		if errors.Is(err, search.ErrTimeout) || errors.Is(err, search.ErrExhausted) {
			c.JSON(http.StatusOK, gin.H{"text": []string{}, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	decoded := ""
	if len(result.Text) > 0 {
		decoded = result.Text[0]
	}
	entry, err := h.store.Save(req.Text, decoded, result.Path, len(result.Text) > 0, result.ElapsedMS)
	if err != nil {
		// The cache is an optimization; a write failure shouldn't fail the
		// request that already has its answer.
		c.Error(err)
	} else {
		for _, b := range result.Branches {
			b.ParentCacheID = entry.UUID
			if err := h.store.RecordBranch(b); err != nil {
				log.Printf("cache: record branch: %v", err)
			}
		}
	}

	c.JSON(http.StatusOK, result)
}

func (h *APIHandler) handleConfirm(c *gin.Context) {
	token := c.Param("token")
	var body struct {
		Accepted bool `json:"accepted"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if h.wsHub == nil || !h.wsHub.Resolve(token, body.Accepted) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no pending confirmation for that token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "resolved"})
}

func (h *APIHandler) handleIngestWordlist(c *gin.Context) {
	var body struct {
		Path string `json:"path" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if h.ingester == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "wordlist ingestion not configured"})
		return
	}

	file, err := h.ingester.IngestFile(body.Path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, file)
}

// buildBackendCheckers assembles the checker chain for one crack request
// from cfg: Pattern and Password always run, Wordlist only when
// configured, English always runs last (it's the most expensive and the
// least precise signal) — unless a user regex is configured, in which
// case it replaces the chain entirely rather than merely running first.
func buildBackendCheckers(cfg models.Config, wordlistIx *wordlist.Index) ([]checker.Checker, error) {
	if cfg.Regex != "" {
		re, err := checker.NewRegexChecker(cfg.Regex)
		if err != nil {
			return nil, err
		}
		return []checker.Checker{re}, nil
	}

	var backend []checker.Checker
	backend = append(backend, checker.NewPatternChecker())

	if len(cfg.Wordlist) > 0 && wordlistIx != nil {
		backend = append(backend, checker.NewWordlistChecker(wordlistIx))
	}

	backend = append(backend, checker.NewPasswordChecker())
	backend = append(backend, checker.NewEnglishChecker(checker.SensitivityMedium))

	return backend, nil
}

// DefaultConfigPath is the config.toml location SetupRouter's caller
// typically loads before building baseConfig.
func DefaultConfigPath() string {
	return config.Dir() + "/config.toml"
}
