package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/scrivenapp/scriven/internal/config"
	"github.com/scrivenapp/scriven/internal/patch"
	"github.com/scrivenapp/scriven/internal/pipeline"
	"github.com/scrivenapp/scriven/internal/safety"
	"github.com/scrivenapp/scriven/internal/store"
	"github.com/scrivenapp/scriven/internal/textutil"
	"github.com/scrivenapp/scriven/internal/ui"
)

// Version info set by ldflags at build time
var (
	version    = "dev"
	commitHash = "dev"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "path to config file (optional)")
	workspaceDir := flag.String("workspace", "", "override workspace root")
	responsePath := flag.String("response", "-", "assistant response file to process ('-' for stdin)")
	approveAll := flag.Bool("approve", false, "apply patches that would otherwise be held for review")
	dryRun := flag.Bool("dry-run", false, "show diffs and safety checks without writing documents")
	outlineDoc := flag.String("outline", "", "print the heading outline of a document and exit")
	logFile := flag.String("log", "", "log file path (empty to disable)")
	quiet := flag.Bool("quiet", false, "suppress all output except errors")
	showVersion := flag.Bool("version", false, "show version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("scriven %s-%s\n", version, commitHash)
		return
	}

	writer := ui.NewWriter()
	writer.SetQuiet(*quiet)

	// Load config
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *workspaceDir != "" {
		cfg.Workspace.Root = *workspaceDir
	}
	if cfg.Workspace.Root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			log.Fatalf("Failed to determine working directory: %v", err)
		}
		cfg.Workspace.Root = cwd
	}
	if *logFile != "" {
		cfg.Log.Path = *logFile
	}

	// Initialize logger
	logger, err := pipeline.NewLogger(cfg.Log.Path, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	// Open the document store
	docs, err := store.Open(cfg.Workspace.Root)
	if err != nil {
		log.Fatalf("Failed to open workspace: %v", err)
	}

	// Outline mode needs no lock and no response
	if *outlineDoc != "" {
		content, err := docs.Read(*outlineDoc)
		if err != nil {
			log.Fatalf("Failed to read document: %v", err)
		}
		writer.RenderOutline(textutil.ExtractMarkdownHeadings(content))
		return
	}

	// Acquire workspace lock to prevent concurrent runs on the same workspace
	workspaceLock, err := store.AcquireLock(cfg.Workspace.Root)
	if err != nil {
		log.Fatalf("Failed to acquire workspace lock: %v", err)
	}
	defer workspaceLock.Release()

	response, err := readResponse(*responsePath)
	if err != nil {
		log.Fatalf("Failed to read response: %v", err)
	}

	snapshot, err := docs.Snapshot()
	if err != nil {
		log.Fatalf("Failed to snapshot workspace: %v", err)
	}

	pl := &pipeline.Pipeline{
		Thresholds: cfg.Thresholds(),
		Extract:    patch.ExtractOptions{MaxProseLen: cfg.Extract.MaxProseLen},
		Log:        logger,
	}
	if *approveAll || cfg.Apply.Mode == "auto" {
		pl.Approve = func(p patch.Enriched, c safety.Check) bool { return true }
	}

	batch, err := pl.Run(response, snapshot)
	if err != nil {
		if patch.IsConversational(err) {
			writer.Info("response contains no patches")
			return
		}
		log.Fatalf("Failed to process response: %v", err)
	}

	writer.RenderBatch(batch)

	if *dryRun {
		writer.Info("dry run: no documents written")
		return
	}

	// Persist only documents whose content actually changed
	written := 0
	for name, content := range batch.Contents {
		if content == snapshot[name] {
			continue
		}
		if err := docs.Write(name, content); err != nil {
			logger.Error("write document", err)
			log.Fatalf("Failed to write %s: %v", name, err)
		}
		written++
	}
	if written > 0 {
		writer.Info(fmt.Sprintf("%d document(s) updated", written))
	}

	if batch.Applied() < len(batch.Results) {
		os.Exit(1)
	}
}

func readResponse(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
