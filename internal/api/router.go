package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "viz-ai/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RequestTimeout bounds the plain JSON endpoints. Chat turns and model pulls
// wait on the model and are not bounded here.
const RequestTimeout = 60 * time.Second

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(chatHandler *ChatHandler, modelHandler *ModelHandler, fileHandler *FileHandler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Liveness probe; does not touch Ollama.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(RequestTimeout))

			r.Get("/health", modelHandler.HandleHealth)

			// --- Settings ---
			r.Get("/settings", chatHandler.GetSettings)
			r.Post("/settings", chatHandler.UpdateSettings)

			// --- Models ---
			r.Get("/models", modelHandler.HandleListModels)
			r.Post("/models/show", modelHandler.HandleShowModel)
			r.Delete("/models", modelHandler.HandleDeleteModel)
			r.Get("/models/configs", modelHandler.HandleListConfigs)
			r.Post("/models/auto-detect", modelHandler.HandleAutoDetect)
			r.Post("/models/activate", modelHandler.HandleSetActive)
			r.Get("/models/active", modelHandler.HandleActiveModel)

			// --- Files ---
			r.Post("/files/upload", fileHandler.HandleUpload)
			r.Get("/files", fileHandler.HandleListFiles)
			r.Get("/files/{fileID}", fileHandler.HandleGetFile)
			r.Delete("/files/{fileID}", fileHandler.HandleDeleteFile)

			// --- Conversations ---
			r.Get("/conversations", chatHandler.ListConversations)
			r.Get("/conversations/by-session", chatHandler.GetConversationBySession)
			r.Get("/conversations/{conversationID}", chatHandler.GetConversation)
			r.Delete("/conversations/{conversationID}", chatHandler.DeleteConversation)

			// --- Jobs ---
			r.Get("/jobs/status", chatHandler.GetJobStatus)
			r.Get("/jobs/{jobID}", chatHandler.GetJob)
		})

		// Long-running endpoints.
		r.Group(func(r chi.Router) {
			r.Post("/conversations/chat", chatHandler.HandleChat)
			r.Post("/models/pull", modelHandler.HandlePullModel)
		})
	})

	return r
}
