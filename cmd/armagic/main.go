package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/nileshs31/Project-ARMagic/internal/app"
	"github.com/nileshs31/Project-ARMagic/internal/server"
	"github.com/nileshs31/Project-ARMagic/internal/store"
)

func main() {
	fmt.Println("ARMagic - Freehand Stroke Recognition")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".armagic")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "armagic.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Build the application and load persisted templates
	a := app.New(app.Config{Store: st})
	if err := a.LoadTemplates(); err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	// On a fresh database, seed the template set from an export file if one
	// is present in the data directory.
	if len(a.Recognizer().Templates()) == 0 {
		if err := a.ImportTemplates(filepath.Join(dataDir, "templates.json")); err != nil {
			log.Fatalf("Failed to import templates: %v", err)
		}
	}

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	// Configure and start server
	cfg := server.Config{
		StaticDir: webDir,
		Store:     st,
		App:       a,
	}

	srv := server.New(cfg)

	addr := ":8080"
	fmt.Printf("Starting server on %s\n", addr)
	if err := srv.ListenAndServe(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.armagic/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".armagic", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
