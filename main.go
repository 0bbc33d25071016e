// @title           QuoteDesk API
// @version         1.0
// @description     Procurement quotation entry and query backend.

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	_ "quotedesk/docs"
	"quotedesk/handlers"
	"quotedesk/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:3000",
		"http://localhost:8080",
		"http://localhost:9000",
	}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, extra)
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding",
		"Accept", "Origin", "X-Requested-With", "Authorization", "User-Agent",
		"Cache-Control", "Referer",
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"}
	corsConfig.ExposeHeaders = []string{"Content-Length", "Content-Disposition", "Content-Type"}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

// cronRunning guards against overlapping maintenance runs.
var cronRunning int32

func main() {
	db := storage.InitDB()
	_ = storage.InitGormDB()

	// Daily maintenance: drop expired login sessions and abandoned import
	// wizards.
	c := cron.New()
	_, err := c.AddFunc("30 3 * * *", func() {
		if !atomic.CompareAndSwapInt32(&cronRunning, 0, 1) {
			log.Println("Previous maintenance run still active, skipping")
			return
		}
		defer atomic.StoreInt32(&cronRunning, 0)

		if err := storage.CleanupExpiredSessions(db); err != nil {
			log.Printf("Session cleanup failed: %v", err)
		}
		purged := handlers.ImportSessions.PurgeExpired(24 * time.Hour)
		log.Printf("Maintenance done, purged %d stale import sessions", purged)
	})
	if err != nil {
		log.Fatalf("Failed to schedule maintenance job: %v", err)
	}
	c.Start()

	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20

	r.Use(cors.New(CORSConfig()))

	// ==================== AUTH ====================
	r.POST("/api/login", handlers.LoginHandler(db))
	r.POST("/api/register", handlers.RegisterHandler(db))
	r.POST("/api/logout", handlers.LogoutHandler(db))
	r.POST("/api/validate-session", handlers.ValidateSessionHandler(db))

	// ==================== AUTHENTICATED ====================
	auth := r.Group("/", handlers.SessionAuth(db))

	// Quotations
	auth.POST("/api/quotations", handlers.CreateQuotation(db))
	auth.GET("/api/quotations/search", handlers.SearchQuotations(db))
	auth.GET("/api/quotations/stats", handlers.QuotationStats(db))
	auth.GET("/api/quotations/export", handlers.ExportQuotations(db))
	auth.GET("/api/quotations/report.pdf", handlers.QuotationStatsPDF(db))

	// Import wizard
	auth.GET("/api/import/template", handlers.DownloadTemplate())
	auth.POST("/api/import/upload", handlers.UploadSpreadsheet(db))
	auth.POST("/api/import/:id/mapping", handlers.ConfirmMapping(db))
	auth.POST("/api/import/:id/globals", handlers.ApplyImportGlobals(db))
	auth.POST("/api/import/:id/commit", handlers.CommitImport(db))
	auth.GET("/api/import/:id/rejected", handlers.DownloadRejected(db))

	// Misc costs
	auth.POST("/api/misc-costs", handlers.CreateMiscCost())
	auth.GET("/api/misc-costs/search", handlers.SearchMiscCosts())
	auth.GET("/api/misc-costs/export", handlers.ExportMiscCosts())

	// ==================== ADMIN ====================
	admin := r.Group("/", handlers.SessionAuth(db), handlers.RequireAdmin())
	admin.GET("/api/users", handlers.GetAllUsers(db))
	admin.PUT("/api/users/:id", handlers.UpdateUser(db))
	admin.DELETE("/api/users/:id", handlers.DeleteUser(db))
	admin.POST("/api/quotations/delete", handlers.DeleteQuotations(db))

	// ==================== SWAGGER ====================
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}
	if _, err := strconv.Atoi(port); err != nil {
		log.Fatalf("Invalid PORT environment variable: %s. Must be a number.", port)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
