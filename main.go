package main

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"matchday/client"
	"matchday/config"
	"matchday/controller"
	"matchday/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"
)

// @title           Match Day API
// @version         1.0
// @description     Match day lifecycle of the league: lineup and referee sign-off, start and close gates, reserves and move requests.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	t := time.Now()

	// Load and validate configuration
	cfg := config.Env()
	logger := newLogger(cfg)
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}

	publisher := newPublisher(cfg, logger)
	if closer, ok := publisher.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.WithError(err).Error("Failed to set trusted proxies")
		return
	}
	addLogger(r)
	addMetrics(r)
	setCors(r, cfg)
	addDocs(r)
	controller.SetRoutes(r, db, publisher, logger)
	logger.Infof("Server started in %s", time.Since(t))
	err = r.Run(fmt.Sprintf(":%d", cfg.ServerPort))
	if err != nil {
		logger.WithError(err).Error("Failed to start server")
	}
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func newPublisher(cfg *config.Config, logger *logrus.Logger) client.EventPublisher {
	if cfg.KafkaBroker == "" {
		logger.Warn("KAFKA_BROKER not set, lifecycle events are only logged")
		return client.NewLogEventPublisher(logger)
	}
	writer, err := config.GetWriter(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to create kafka writer, lifecycle events are only logged")
		return client.NewLogEventPublisher(logger)
	}
	return client.NewKafkaEventPublisher(writer, logger)
}

func addLogger(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/metrics"},
	}))
}

func addDocs(r *gin.Engine) {
	docs.SwaggerInfo.BasePath = "/api"
	r.GET("/api/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

func addMetrics(r *gin.Engine) {
	p := ginprometheus.NewPrometheus("gin")
	re := regexp.MustCompile(`\d+`)
	requestRe := regexp.MustCompile(`move-requests/[^/]+(/|$)`)
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		url := strings.Split(c.Request.URL.String(), "?")[0]
		url = re.ReplaceAllString(url, "?")
		url = requestRe.ReplaceAllString(url, "move-requests/?$1")
		return strings.TrimPrefix(url, "/api")
	}
	p.MetricsPath = "/api/metrics"
	p.Use(r)
}

func setCors(r *gin.Engine, cfg *config.Config) {
	corsConfigGetOptions := cors.Config{
		AllowOrigins:     cfg.CorsOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	corsConfigOtherMethods := cors.Config{
		AllowOrigins:     cfg.CorsOrigins,
		AllowMethods:     []string{"POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	getCors := cors.New(corsConfigGetOptions)
	otherCors := cors.New(corsConfigOtherMethods)

	r.Use(func(c *gin.Context) {
		if c.Request.Method == "OPTIONS" {
			// Check the Access-Control-Request-Method header to determine the actual method being preflighted
			requestedMethod := c.GetHeader("Access-Control-Request-Method")
			if requestedMethod == "GET" || requestedMethod == "OPTIONS" {
				getCors(c)
			} else {
				otherCors(c)
			}
			c.AbortWithStatus(204)
			return
		}

		if c.Request.Method == "GET" {
			getCors(c)
		} else {
			otherCors(c)
		}
	})
}
