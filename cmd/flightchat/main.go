package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"flightchat/internal/config"
	"flightchat/internal/corpus"
	"flightchat/internal/embedding"
	"flightchat/internal/embedding/openai"
	"flightchat/internal/embedding/tfidf"
	"flightchat/internal/inventory"
	"flightchat/internal/loader"
	"flightchat/internal/router"
	"flightchat/internal/session"
	"flightchat/internal/shell"
	"flightchat/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/flightchat/config.yaml if not provided)")
	flag.Parse()
	args := flag.Args()
	if len(args) != 0 && len(args) != 3 {
		fmt.Println("Usage: flightchat [--config=config.yaml] [smalltalk.csv qna.csv flights.csv]")
		os.Exit(1)
	}

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
	if len(args) == 3 {
		cfg.Datasets.SmallTalk = args[0]
		cfg.Datasets.QnA = args[1]
		cfg.Datasets.Flights = args[2]
	}

	// Assemble components
	var emb embedding.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = tfidf.NewEmbedder()
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
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

	entries, err := loader.LoadCorpus(cfg.Datasets.SmallTalk, cfg.Datasets.QnA)
	if err != nil {
		log.Fatalf("failed to load QnA datasets: %v", err)
	}
	records, err := loader.LoadFlights(cfg.Datasets.Flights)
	if err != nil {
		log.Fatalf("failed to load flight dataset: %v", err)
	}

	index := corpus.NewIndex(emb)
	if err := index.Prepare(entries); err != nil {
		log.Fatalf("failed to prepare corpus index: %v", err)
	}
	inv := inventory.New(records)
	engine := session.NewEngine(router.New(index, cfg.Router.SimilarityThreshold), inv)

	switch cfg.Shell.Type {
	case "plain", "":
		if err := shell.Run(engine, os.Stdin, os.Stdout); err != nil {
			log.Fatal(err)
		}
	case "tui":
		if _, err := tea.NewProgram(tui.New(engine)).Run(); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("unknown shell: %s", cfg.Shell.Type)
	}
}
