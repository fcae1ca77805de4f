// Command pdf2english translates a PDF in any language into an English
// PDF: Mistral OCR extracts the document as markdown, a chat model
// translates it, and an external HTML-to-PDF renderer writes the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"pdf-to-english/internal/config"
	"pdf-to-english/internal/logger"
	"pdf-to-english/internal/ocr"
	"pdf-to-english/internal/pipeline"
	"pdf-to-english/internal/render"
	"pdf-to-english/internal/translate"
	"pdf-to-english/internal/types"
	"pdf-to-english/internal/validate"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file (default ~/.config/pdf-to-english/"+config.DefaultConfigFileName+")")
	sourceLang := flag.String("source", "", "source language (BCP-47 tag or name; empty = auto-detect)")
	outputDir := flag.String("output", "", "output directory (overrides config)")
	checkKey := flag.Bool("check-key", false, "validate the API key and exit")
	flag.Parse()

	if err := logger.Init(nil); err != nil {
		fmt.Printf("Warning: failed to initialize logging: %v\n", err)
	}
	defer logger.Close()

	mgr, err := config.NewManager(*configPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := mgr.Load(); err != nil {
		fmt.Printf("Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	apiKey := mgr.GetAPIKey()
	if apiKey == "" {
		fmt.Println("Error: Mistral API key not configured")
		fmt.Printf("Set %s or add mistral_api_key to %s\n", config.EnvMistralAPIKey, mgr.GetConfigPath())
		os.Exit(1)
	}

	ctx := context.Background()

	handle, msg, err := validate.ValidateKey(ctx, apiKey, mgr.GetBaseURL())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if handle == nil {
		fmt.Printf("Error: %s\n", msg)
		os.Exit(1)
	}
	if *checkKey {
		fmt.Println(msg)
		return
	}

	if flag.NArg() < 1 {
		fmt.Println("Usage: pdf2english [flags] <input.pdf>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPDF := flag.Arg(0)

	source := mgr.GetSourceLanguage()
	if *sourceLang != "" {
		source = *sourceLang
	}
	outDir := mgr.GetOutputDir()
	if *outputDir != "" {
		outDir = *outputDir
	}

	extractor := ocr.NewClientWithConfig(handle.APIKey, handle.BaseURL, mgr.GetOCRModel(), 0)
	translator, err := translate.NewEngine(ctx, handle.APIKey, handle.BaseURL, mgr.GetChatModel(), source, mgr.GetTargetLanguage())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	renderer := render.NewRenderer(mgr.GetRendererCmd())

	fmt.Printf("Input:  %s\n", inputPDF)
	fmt.Printf("API:    %s\n", handle.BaseURL)
	fmt.Printf("Models: %s / %s\n", mgr.GetOCRModel(), mgr.GetChatModel())
	fmt.Println()

	p := pipeline.New(extractor, translator, renderer, outDir, func(s types.Status) {
		if s.Stage == types.StageError {
			return
		}
		fmt.Printf("[%s] %s\n", s.Stage, s.Message)
	})

	outputPath, err := p.Run(ctx, inputPDF)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nDone: %s\n", outputPath)
}
