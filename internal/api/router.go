package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/hartlaw-ai/lexrag/internal/agent"
	"github.com/hartlaw-ai/lexrag/internal/api/handlers"
	"github.com/hartlaw-ai/lexrag/internal/api/middleware"
	"github.com/hartlaw-ai/lexrag/internal/auth"
	"github.com/hartlaw-ai/lexrag/internal/cache"
	"github.com/hartlaw-ai/lexrag/internal/config"
	"github.com/hartlaw-ai/lexrag/internal/embedding"
	"github.com/hartlaw-ai/lexrag/internal/eval"
	"github.com/hartlaw-ai/lexrag/internal/feedback"
	"github.com/hartlaw-ai/lexrag/internal/ingest"
	"github.com/hartlaw-ai/lexrag/internal/llm"
	"github.com/hartlaw-ai/lexrag/internal/metrics"
	"github.com/hartlaw-ai/lexrag/internal/queue"
	"github.com/hartlaw-ai/lexrag/internal/rag"
	"github.com/hartlaw-ai/lexrag/internal/vectorstore"
)

type Router struct {
	mux    *chi.Mux
	db     *pgxpool.Pool
	redis  *redis.Client
	cfg    *config.Config
	jwt    *auth.JWTMiddleware
	apikey *auth.APIKeyMiddleware
	llmGW  llm.Gateway
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	return &Router{
		mux:    chi.NewRouter(),
		db:     db,
		redis:  rdb,
		cfg:    cfg,
		jwt:    auth.NewJWTMiddleware(cfg.Auth.JWTSecret),
		apikey: auth.NewAPIKeyMiddleware(cfg.Auth.APIKeyHeader, cfg.Auth.APIKeys),
		llmGW:  llm.NewGateway(cfg.LLM),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Initialize services
	embedSvc := embedding.NewService(rt.cfg.Embedding)
	index := vectorstore.NewPgIndex(rt.db)
	store := vectorstore.NewStore(index, embedSvc, rt.cfg.Ingest.Collection)
	searchCache := cache.New(rt.redis)
	pipeline := rag.NewPipeline(store, rt.llmGW, searchCache)
	researchAgent := agent.New(pipeline, rt.llmGW, "")
	judge := eval.NewJudge(rt.llmGW, "")
	feedbackSvc := feedback.NewService(rt.db)
	ingestSvc := ingest.NewService(store, rt.cfg.Ingest)
	queueClient := queue.NewClient(rt.cfg.Redis)
	analytics := metrics.NewAnalytics()

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.apikey.Authenticate)

		// Research routes
		researchH := handlers.NewResearchHandler(pipeline, researchAgent, analytics)
		r.Post("/ask", researchH.Ask)
		r.Post("/search", researchH.Search)
		r.Post("/research", researchH.Research)
		r.Get("/analytics", researchH.Analytics)

		// Document routes
		docH := handlers.NewDocumentHandler(store, ingestSvc, queueClient)
		r.Route("/documents", func(r chi.Router) {
			r.Post("/", docH.Add)
			r.Post("/upload", docH.Upload)
			r.Post("/fetch/opinions", docH.FetchCorpus)
			r.Post("/fetch/regulations", docH.FetchRegulations)
			r.Post("/samples", docH.LoadSamples)
			r.Get("/stats", docH.Stats)
		})

		// LLM routes
		llmH := handlers.NewLLMHandler(rt.llmGW)
		r.Route("/llm", func(r chi.Router) {
			r.Post("/chat", llmH.Chat)
			r.Get("/models", llmH.Models)
		})

		// Eval routes
		evalH := handlers.NewEvalHandler(judge)
		r.Route("/eval", func(r chi.Router) {
			r.Post("/judge", evalH.Evaluate)
			r.Post("/batch", evalH.BatchEvaluate)
		})

		// Feedback routes
		feedbackH := handlers.NewFeedbackHandler(feedbackSvc)
		r.Route("/feedback", func(r chi.Router) {
			r.Post("/", feedbackH.Submit)
			r.Get("/stats", feedbackH.Stats)
			r.Get("/low-rated", feedbackH.LowRated)
		})

		// Destructive admin routes require a JWT on top of the API key
		r.Group(func(r chi.Router) {
			r.Use(rt.jwt.Authenticate)
			r.Delete("/documents", docH.Reset)
		})
	})

	return r
}
