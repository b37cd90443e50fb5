package main

import (
	"blocklot-enricher/pkg/dataset"
	"blocklot-enricher/pkg/enrich"
	"blocklot-enricher/pkg/handler"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// one-shot mode: enrich a csv file on disk and exit
	if inputPath, ok := os.LookupEnv("INPUT_CSV"); ok {
		runFile(inputPath)
		return
	}

	handler.Startup(ctx)

	// set up process signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan // wait on signal

	log.Println("Received termination signal")
	handler.Teardown(ctx)
	log.Println("Gracefully shut down")
}

func runFile(inputPath string) {
	outputPath := os.Getenv("OUTPUT_CSV")
	if outputPath == "" {
		log.Fatal("OUTPUT_CSV environment variable not set")
	}

	config := handler.ConfigFromEnv()
	applier := enrich.NewApplier(config.Policy)

	rowErrs, err := dataset.EnrichFile(inputPath, outputPath, applier, dataset.WriteOptions{DropBlockLot: config.DropBlockLot})
	if err != nil {
		log.Fatalf("error enriching %s: %v", inputPath, err)
	}

	log.Print(enrich.LogBatchApplied(inputPath, int(applier.Statistics.Count()), rowErrs, applier.Statistics))
	for _, rowErr := range rowErrs {
		log.Printf("[Main] Skipped record - %v", rowErr)
	}
}
