package main

import (
	"flag"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"marketcheck/internal/config"
	"marketcheck/internal/embedding"
	embopenai "marketcheck/internal/embedding/openai"
	"marketcheck/internal/report"
	repopenai "marketcheck/internal/report/openai"
	"marketcheck/internal/search"
	"marketcheck/internal/search/google"
	"marketcheck/internal/service"
	"marketcheck/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/marketcheck/config.yaml if not provided)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Assemble components
	var searcher search.Searcher
	searchResults := 10
	switch cfg.Search.Type {
	case "google", "":
		if cfg.Search.Google == nil {
			log.Fatalf("google search config missing")
		}
		searchResults = cfg.Search.Google.MaxResults
		client, err := google.NewClient(google.Config{
			BaseURL:     cfg.Search.Google.BaseURL,
			APIKeyEnv:   cfg.Search.Google.APIKeyEnv,
			EngineIDEnv: cfg.Search.Google.EngineIDEnv,
			Timeout:     time.Duration(cfg.Search.Google.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("google search init failed: %v", err)
		}
		searcher = client
	default:
		log.Fatalf("unknown search provider: %s", cfg.Search.Type)
	}

	var emb embedding.Embedder
	switch cfg.Embedder.Type {
	case "openai", "":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := embopenai.NewClient(embopenai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var gen report.Generator
	switch cfg.Report.Type {
	case "openai", "":
		if cfg.Report.OpenAI == nil {
			log.Fatalf("openai report config missing")
		}
		generator, err := repopenai.NewGenerator(repopenai.Config{
			BaseURL:     cfg.Report.OpenAI.BaseURL,
			APIKeyEnv:   cfg.Report.OpenAI.APIKeyEnv,
			Model:       cfg.Report.OpenAI.Model,
			Temperature: cfg.Report.OpenAI.Temperature,
			Timeout:     time.Duration(cfg.Report.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai report generator init failed: %v", err)
		}
		gen = generator
	default:
		log.Fatalf("unknown report generator: %s", cfg.Report.Type)
	}

	svc := service.NewMarketService(searcher, emb, gen, searchResults)

	m := tui.New(svc, cfg.TopN)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
