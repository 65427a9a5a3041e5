package main

// #region imports
import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/dialogue"
	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/server"
	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/session"
	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/turnlog"
)

// #endregion

// #region main
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on the environment")
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	modelName := envOr("GEMINI_MODEL", "gemini-2.0-flash-001")
	dbPath := envOr("NEGOTIATION_DB", "negotiation_turns.db")
	port := envOr("PORT", "3001")

	ctx := context.Background()

	// Missing credential is fatal: sessions cannot start without the generator.
	gen, err := dialogue.NewGeminiClient(ctx, apiKey, modelName)
	if err != nil {
		log.Fatalf("failed to create dialogue generator: %v", err)
	}
	defer gen.Close()

	// Turn diagnostics are best-effort; a broken log store disables them.
	var logger *turnlog.Store
	logger, err = turnlog.NewStore(dbPath)
	if err != nil {
		log.Printf("[SERVER] turn log disabled: %v", err)
		logger = nil
	} else {
		defer logger.Close()
	}

	sessions := session.NewStore(gen, logger)
	chat := server.NewChatController(sessions)
	sal := server.NewSalaryController()

	http.HandleFunc("/health", server.WithCORS(server.HandleHealth))
	http.HandleFunc("/api/chat/initialize", server.WithCORS(chat.HandleInitialize))
	http.HandleFunc("/api/chat/message", server.WithCORS(chat.HandleMessage))
	http.HandleFunc("/api/salary", server.WithCORS(sal.HandleSalary))
	http.HandleFunc("/api/salary/calculate", server.WithCORS(sal.HandleCalculate))

	fmt.Printf("Negotiation backend ready on port %s\n", port)
	fmt.Printf("  Model: %s | Turn log: %s\n", modelName, dbPath)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}

// #endregion main

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
