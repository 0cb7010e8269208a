package main

import (
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/mrled/mailvet/internal/lambdahandlers/httpapi"
	"github.com/mrled/mailvet/internal/logger"
)

func main() {
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "lambda")
	logger.SetDefault(log)

	handler, err := httpapi.NewHandler()
	if err != nil {
		log.Error("Failed to initialize httpapi handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("Starting Lambda handler")
	lambda.Start(handler.Handle)
}
