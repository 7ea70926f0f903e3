// Command ask talks to the Twiga agent from a terminal, as the teacher
// with the given WhatsApp ID. Replies and tool turns are persisted exactly
// as they are for WhatsApp traffic.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"twiga.app/backend/common"
	"twiga.app/backend/common/id"
	"twiga.app/backend/common/llm"
	"twiga.app/backend/common/logger"
	"twiga.app/backend/core/config"
	"twiga.app/backend/core/db"
	"twiga.app/backend/internal/brain"
	"twiga.app/backend/internal/service"
	"twiga.app/backend/internal/store"
)

func main() {
	waID := flag.String("wa_id", "", "WhatsApp ID of the teacher (required)")
	name := flag.String("name", "", "teacher name, used when the user is new")
	message := flag.String("message", "", "single message to send; omit for an interactive session")
	flag.Parse()

	if *waID == "" {
		fmt.Fprintln(os.Stderr, "-wa_id is required")
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeCLI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg)

	if err := id.Init(id.NodeCLI); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize id generator: %v\n", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	agentClient, err := llm.NewAgentClient(llm.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Model:    cfg.LLM.Model,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create LLM client: %v\n", err)
		os.Exit(1)
	}

	embedder, err := llm.NewEmbedder(llm.EmbeddingConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create embedder: %v\n", err)
		os.Exit(1)
	}

	if cfg.Agent.DebugDir != "" {
		fmt.Fprintf(os.Stderr, "Debug transcripts: %s\n", cfg.Agent.DebugDir)
	}

	stores := store.NewStores(database.Queries())
	knowledge := brain.NewKnowledge(stores.Resources(), stores.Chunks(), embedder, agentClient, cfg.LLM.ExerciseMaxTokens)
	agent := brain.NewAgent(agentClient, knowledge, brain.AgentConfig{
		MaxSteps:  cfg.Agent.MaxSteps,
		MaxTokens: cfg.LLM.MaxTokens,
		DebugDir:  cfg.Agent.DebugDir,
	})
	services := service.NewServices(stores, service.NewTxRunner(database), service.Config{
		Agent:        agent,
		Knowledge:    knowledge,
		Embedder:     embedder,
		HistoryLimit: cfg.Agent.HistoryLimit,
	})
	chat := services.Chat()

	var teacherName *string
	if *name != "" {
		teacherName = name
	}

	ask := func(text string) {
		result, err := chat.HandleMessage(ctx, *waID, teacherName, text)
		if err != nil {
			slog.ErrorContext(ctx, "ask failed", "error", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Println(common.BoxText(result.Reply, "Twiga", "🦒"))
	}

	if *message != "" {
		ask(*message)
		return
	}

	fmt.Fprintf(os.Stderr, "\nTwiga CLI ready (wa_id=%s, model=%s)\n", *waID, agentClient.Model())
	fmt.Fprintln(os.Stderr, "Enter your message (or 'quit' to exit):")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "quit" || text == "exit" || text == "q" {
			break
		}

		ask(text)
		fmt.Println()
	}

	fmt.Fprintln(os.Stderr, "Goodbye!")
}
