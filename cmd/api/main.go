package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"btc-strategy-lab/internal/api/handlers"
	"btc-strategy-lab/internal/api/middleware"
	"btc-strategy-lab/internal/config"
	"btc-strategy-lab/internal/data"
	"btc-strategy-lab/internal/pricing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger, err := buildLogger()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			logger.Fatal("load config", zap.String("path", path), zap.Error(err))
		}
		logger.Info("config loaded", zap.String("path", path))
	}

	var rate pricing.RateSource = pricing.FixedRate(cfg.RiskFreeRate)
	if cfg.DynamicRate {
		rate = pricing.NewLlamaRateSource(logger)
	}

	deps := &handlers.Deps{
		Config:  cfg,
		Binance: data.NewBinanceClient(os.Getenv("BINANCE_BASE_URL"), 10*time.Minute, logger),
		Rate:    rate,
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(splitOrigins(os.Getenv("CORS_ORIGINS"))))

	backtestHandler := handlers.NewBacktestHandler(deps)
	scoreHandler := handlers.NewScoreHandler(deps)
	ladderHandler := handlers.NewLadderHandler(deps)
	optimizeHandler := handlers.NewOptimizeHandler(deps)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/backtest/swing", backtestHandler.Swing)
		api.POST("/backtest/dual", backtestHandler.Dual)
		api.POST("/score", scoreHandler.Score)
		api.POST("/ladder", ladderHandler.Ladder)
		api.POST("/optimize", optimizeHandler.Optimize)
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	addr := fmt.Sprintf(":%s", port)
	logger.Info("starting API server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func buildLogger() (*zap.Logger, error) {
	if os.Getenv("API_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func splitOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
