// Package httpapi is the Lambda flavor of the verification API, for
// deployments behind API Gateway instead of a long-running server.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/mrled/mailvet/internal/config"
	"github.com/mrled/mailvet/internal/forms"
	"github.com/mrled/mailvet/internal/logger"
	"github.com/mrled/mailvet/internal/model"
	"github.com/mrled/mailvet/internal/repository"
	"github.com/mrled/mailvet/internal/service/dnscheck"
	"github.com/mrled/mailvet/internal/service/verifier"
	"github.com/mrled/mailvet/internal/usecase"
)

// Handler holds the dependencies for the httpapi Lambda handler
type Handler struct {
	uc  *usecase.VerifyUseCase
	log *slog.Logger
}

// verifyRequest is the expected JSON payload for verification
type verifyRequest struct {
	Email string `json:"email"`
}

// verifyResponse is the JSON response for verification
type verifyResponse struct {
	Status     string `json:"status"`
	Suggestion string `json:"suggestion,omitempty"`
	Message    string `json:"message,omitempty"`
	Severity   string `json:"severity,omitempty"`
}

// NewHandler creates a new httpapi handler with initialized dependencies
func NewHandler() (*Handler, error) {
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "httpapi")
	logger.SetDefault(log)

	settings, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	ctx := context.Background()

	stores, err := repository.NewStores(ctx, repository.Config{
		FilePath:       settings.FilePath,
		DynamoTable:    settings.DynamoTable,
		DynamoEndpoint: settings.DynamoEndpoint,
		RedisAddr:      settings.RedisAddr,
		RedisPassword:  settings.RedisPassword,
	})
	if err != nil {
		log.Error("Failed to initialize stores", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to initialize stores: %w", err)
	}

	var dns *dnscheck.Service
	if settings.DNSServer != "" {
		dns = dnscheck.NewServiceWithResolver(dnscheck.NewCustomResolver(settings.DNSServer))
		log.Info("Using custom DNS server", slog.String("server", settings.DNSServer))
	} else {
		dns = dnscheck.NewService()
	}

	uc := usecase.NewVerifyUseCase(
		stores.Domains,
		stores.Emails,
		verifier.NewClient(),
		dns,
		usecase.Config{
			APIKey:          settings.APIKey,
			FreshnessWindow: settings.FreshnessWindow,
		},
		usecase.WithLogger(logger.WithService(log, "verify")),
	)
	log.Info("Verification use case initialized")

	return &Handler{
		uc:  uc,
		log: log,
	}, nil
}

// Handle processes API Gateway HTTP requests
func (h *Handler) Handle(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	requestLogger := logger.WithLambda(h.log,
		os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		os.Getenv("AWS_LAMBDA_FUNCTION_VERSION"),
		request.RequestContext.RequestID)

	// API Gateway v2 puts the path in RequestContext.HTTP.Path
	path := request.RequestContext.HTTP.Path
	if path == "" {
		path = request.RawPath
	}
	path = strings.TrimPrefix(path, "/api")

	requestLogger.Info("Incoming request",
		slog.String("method", request.RequestContext.HTTP.Method),
		slog.String("path", path))

	switch {
	case strings.HasSuffix(path, "/v1/verify"):
		return h.handleVerify(ctx, requestLogger, request)
	case strings.HasSuffix(path, "/v1/health"):
		return jsonResponse(200, map[string]string{"status": "ok"})
	default:
		requestLogger.Warn("Path not matched", slog.String("path", path))
		return errorResponse(404, fmt.Sprintf("Unknown endpoint: %s", path))
	}
}

func (h *Handler) handleVerify(ctx context.Context, log *slog.Logger, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	if request.RequestContext.HTTP.Method != "POST" {
		return errorResponse(405, "Method not allowed")
	}

	var req verifyRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil || req.Email == "" {
		return errorResponse(400, "Request body must be JSON with an email field")
	}

	result := h.uc.Verify(ctx, req.Email)
	log.Info("Verification completed",
		slog.String("status", result.Status.String()))

	resp := verifyResponse{
		Status:     result.Status.String(),
		Suggestion: result.SuggestedAddress,
	}
	if message, ok := forms.Advise(result); ok {
		resp.Message = message.Text
		resp.Severity = string(message.Severity)
	}

	status := 200
	if result.Status == model.StatusServiceUnavailable {
		status = 503
	}
	return jsonResponse(status, resp)
}

func jsonResponse(statusCode int, body any) (events.APIGatewayV2HTTPResponse, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return errorResponse(500, "Failed to encode response")
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(raw),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(statusCode int, message string) (events.APIGatewayV2HTTPResponse, error) {
	raw, _ := json.Marshal(map[string]string{"error": message})
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(raw),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}
