package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DeliveryStatus is the provider-side outcome of an email hand-off.
type DeliveryStatus string

const (
	StatusAccepted DeliveryStatus = "ACCEPTED"
	StatusRejected DeliveryStatus = "REJECTED"
)

type SendEmailRequest struct {
	MessageID string `json:"message_id" binding:"required"`
	From      string `json:"from" binding:"required"`
	To        string `json:"to" binding:"required"`
	Subject   string `json:"subject" binding:"required"`
	HTML      string `json:"html" binding:"required"`
}

type SendEmailResponse struct {
	MessageID   string         `json:"message_id"`
	Status      DeliveryStatus `json:"status"`
	ErrorCode   string         `json:"error_code,omitempty"`
	ErrorMsg    string         `json:"error_message,omitempty"`
	ProviderID  string         `json:"provider_id"`
	ProcessedAt time.Time      `json:"processed_at"`
}

type HealthResponse struct {
	Status     string    `json:"status"`
	ProviderID string    `json:"provider_id"`
	Timestamp  time.Time `json:"timestamp"`
	AcceptRate float64   `json:"accept_rate"`
}

// MockMailer simulates a transactional email provider.
type MockMailer struct {
	acceptRate float64
	minDelay   time.Duration
	maxDelay   time.Duration
	providerID string
	rng        *rand.Rand
}

func NewMockMailer(acceptRate float64, minDelay, maxDelay time.Duration) *MockMailer {
	return &MockMailer{
		acceptRate: acceptRate,
		minDelay:   minDelay,
		maxDelay:   maxDelay,
		providerID: "MOCK_MAILER_" + uuid.New().String()[:8],
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m *MockMailer) simulateSend(req *SendEmailRequest) *SendEmailResponse {
	delay := m.randomDelay()
	time.Sleep(delay)

	response := &SendEmailResponse{
		MessageID:   req.MessageID,
		ProviderID:  m.providerID,
		ProcessedAt: time.Now(),
	}

	if m.shouldAccept() {
		response.Status = StatusAccepted

		log.Info().
			Str("message_id", req.MessageID).
			Str("to", req.To).
			Str("subject", req.Subject).
			Dur("delay", delay).
			Msg("Email accepted")
	} else {
		response.Status = StatusRejected
		response.ErrorCode = m.randomErrorCode()
		response.ErrorMsg = m.errorMessage(response.ErrorCode)

		log.Warn().
			Str("message_id", req.MessageID).
			Str("to", req.To).
			Str("error_code", response.ErrorCode).
			Msg("Email rejected")
	}

	return response
}

func (m *MockMailer) randomDelay() time.Duration {
	delta := m.maxDelay - m.minDelay
	if delta <= 0 {
		return m.minDelay
	}
	return m.minDelay + time.Duration(m.rng.Int63n(int64(delta)))
}

func (m *MockMailer) shouldAccept() bool {
	return m.rng.Float64() < m.acceptRate
}

func (m *MockMailer) randomErrorCode() string {
	errorCodes := []string{
		"INVALID_RECIPIENT",
		"MAILBOX_FULL",
		"SPAM_REJECTED",
		"TIMEOUT",
		"PROVIDER_THROTTLED",
	}
	return errorCodes[m.rng.Intn(len(errorCodes))]
}

func (m *MockMailer) errorMessage(code string) string {
	messages := map[string]string{
		"INVALID_RECIPIENT":  "The recipient address is invalid",
		"MAILBOX_FULL":       "The recipient mailbox is full",
		"SPAM_REJECTED":      "Message classified as spam by the provider",
		"TIMEOUT":            "Email hand-off timed out",
		"PROVIDER_THROTTLED": "Provider throttled the sender",
	}
	if msg, ok := messages[code]; ok {
		return msg
	}
	return "Unknown error occurred"
}

type Handler struct {
	mailer *MockMailer
}

func NewHandler(mailer *MockMailer) *Handler {
	return &Handler{mailer: mailer}
}

func (h *Handler) SendEmail(c *gin.Context) {
	var req SendEmailRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	log.Info().
		Str("message_id", req.MessageID).
		Str("to", req.To).
		Str("subject", req.Subject).
		Msg("Received email send request")

	response := h.mailer.simulateSend(&req)

	statusCode := http.StatusOK
	if response.Status == StatusRejected {
		statusCode = http.StatusAccepted // 202: accepted but rejected downstream
	}

	c.JSON(statusCode, response)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	// Simulate 5% downtime
	if h.mailer.rng.Float64() < 0.05 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "Provider temporarily unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:     "healthy",
		ProviderID: h.mailer.providerID,
		Timestamp:  time.Now(),
		AcceptRate: h.mailer.acceptRate,
	})
}

func (h *Handler) UpdateConfig(c *gin.Context) {
	var config struct {
		AcceptRate *float64 `json:"accept_rate"`
	}

	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if config.AcceptRate != nil {
		if *config.AcceptRate >= 0 && *config.AcceptRate <= 1.0 {
			h.mailer.acceptRate = *config.AcceptRate
			log.Info().Float64("rate", *config.AcceptRate).Msg("Updated accept rate")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Configuration updated",
		"accept_rate": h.mailer.acceptRate,
	})
}

func SetupRouter(handler *Handler) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Msg("Request processed")
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/email/send", handler.SendEmail)
		v1.GET("/health", handler.HealthCheck)
		v1.PUT("/config", handler.UpdateConfig)
	}

	router.GET("/health", handler.HealthCheck)

	return router
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	port := getEnv("PORT", "8081")
	acceptRate := getEnvFloat("ACCEPT_RATE", 1)
	minDelay := getEnvDuration("MIN_DELAY", 100*time.Millisecond)
	maxDelay := getEnvDuration("MAX_DELAY", 2*time.Second)

	log.Info().
		Str("port", port).
		Float64("accept_rate", acceptRate).
		Dur("min_delay", minDelay).
		Dur("max_delay", maxDelay).
		Msg("Starting Mock Email Provider")

	mailer := NewMockMailer(acceptRate, minDelay, maxDelay)
	handler := NewHandler(mailer)
	router := SetupRouter(handler)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var f float64
		if _, err := fmt.Sscanf(value, "%f", &f); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
