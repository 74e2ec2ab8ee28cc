package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"docqa/internal/bootstrap"
	"docqa/internal/cache"
	"docqa/internal/rag"
	"docqa/internal/repository"
	"docqa/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: app.Config.CORS.AllowOrigins,
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	recordRepo := repository.NewEmbeddingRecordRepository(app.DB)
	index := rag.NewVectorIndex(recordRepo, app.AI)
	chunker := rag.NewChunker(app.Config.Chunking)
	ingestor := rag.NewIngestor(chunker, index)
	answerer := rag.NewAnswerGenerator(index, app.AI, app.Config.Index.TopK, app.Config.Index.Diversity)

	var historyCache *cache.HistoryCache
	if app.Redis != nil {
		historyCache = cache.NewHistoryCache(app.Redis, time.Duration(app.Config.Redis.HistoryTTLSeconds)*time.Second)
	}

	healthHandler := handler.NewHealthHandler(app, recordRepo)
	ingestHandler := handler.NewIngestHandler(ingestor)
	askHandler := handler.NewAskHandler(answerer, historyCache)

	router.GET("/healthz", healthHandler.Check)
	router.POST("/upload-pdf", ingestHandler.UploadPDF)
	router.POST("/ask", askHandler.Ask)
	router.DELETE("/session/:id", askHandler.ClearSession)

	return router
}
