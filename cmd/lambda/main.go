// Package main is the entry point for the batch translation Lambda function.
package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/cadtext/cadtext/batchapi"
	"github.com/cadtext/cadtext/config"
	"github.com/cadtext/cadtext/terms"
	"github.com/cadtext/cadtext/translate"
)

var handler *batchapi.Handler

func main() {
	settings, err := config.Load(".")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logf := func(format string, args ...any) { log.Printf(format, args...) }

	var glossary *terms.Glossary
	if settings.Terminology {
		glossary, err = terms.LoadDefault(settings.Glossaries...)
		if err != nil {
			log.Fatalf("glossary: %v", err)
		}
	}

	engine := translate.NewGoogleClient(translate.GoogleOptions{
		Endpoint:    settings.Endpoint,
		MaxAttempts: settings.MaxAttempts,
		BaseDelay:   settings.BaseDelay,
		Timeout:     settings.RequestTimeout,
		Proxy:       settings.Proxy,
		OnLog:       logf,
	})
	handler = batchapi.NewHandler(engine, batchapi.Options{
		MaxConcurrent: settings.MaxConcurrent,
		Glossary:      glossary,
		OnLog:         logf,
	})

	lambda.Start(handleRequest)
}

func handleRequest(ctx context.Context, event json.RawMessage) (any, error) {
	// Warmup detection (must be first)
	if batchapi.IsWarmupEvent(event) {
		return batchapi.WarmupResponse{Status: "warm"}, nil
	}

	var req batchapi.Request
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, err
	}
	return handler.Handle(ctx, req)
}
