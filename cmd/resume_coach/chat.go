package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-coach/internal/chat"
	"github.com/jonathan/resume-coach/internal/config"
	"github.com/jonathan/resume-coach/internal/ingest"
	"github.com/jonathan/resume-coach/internal/llm"
	"github.com/jonathan/resume-coach/internal/types"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive coaching conversation",
	Long: `Start an interactive conversation in the terminal. The assistant analyzes your
resume against the job description, then answers questions, collects details, and
rewrites sections as you work through them.

Configuration can be loaded from a JSON file using --config. Command-line arguments
override config file values. Without --job/--job-url and --resume, a built-in demo
resume and job posting are used.`,
	RunE: runChatCmd,
}

var (
	chatConfigPath string
	chatJob        string
	chatJobURL     string
	chatResume     string
	chatAPIKey     string
	chatVerbose    bool
)

func init() {
	chatCmd.Flags().StringVar(&chatConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	chatCmd.Flags().StringVarP(&chatJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	chatCmd.Flags().StringVar(&chatJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	chatCmd.Flags().StringVarP(&chatResume, "resume", "r", "", "Path to resume JSON file (section name -> content)")
	chatCmd.Flags().StringVar(&chatAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var; empty runs offline)")
	chatCmd.Flags().BoolVarP(&chatVerbose, "verbose", "v", false, "Print token usage and debug information")

	rootCmd.AddCommand(chatCmd)
}

func runChatCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Load config file if provided
	var cfg config.Config
	if chatConfigPath != "" {
		loadedCfg, err := config.LoadConfig(chatConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	// Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("job") {
		cfg.Job = chatJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = chatJobURL
	}
	if cmd.Flags().Changed("resume") {
		cfg.Resume = chatResume
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = chatAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = chatVerbose
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		fmt.Println("No API key configured; running in offline mode with canned replies.")
	}

	jobText, err := loadJobText(ctx, cfg)
	if err != nil {
		return err
	}
	resume, err := loadResume(cfg.Resume)
	if err != nil {
		return err
	}

	llmConfig := llm.DefaultConfig()
	llmConfig.Verbose = cfg.Verbose
	client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	fmt.Println("Analyzing your resume against the job description...")
	state := ingest.BootstrapState(ctx, client, resume, jobText)
	engine := chat.NewEngine(client)

	// Opening turn produces the greeting with section scores.
	if err := engine.RunTurn(ctx, state); err != nil {
		return fmt.Errorf("conversation state error: %w", err)
	}
	printAssistant(state)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			fmt.Println("Goodbye!")
			break
		}

		state.AppendMessage(types.RoleUser, line)
		if err := engine.RunTurn(ctx, state); err != nil {
			return fmt.Errorf("conversation state error: %w", err)
		}
		printAssistant(state)
	}
	return scanner.Err()
}

// loadJobText resolves the job description from file, URL, or the
// built-in demo posting.
func loadJobText(ctx context.Context, cfg config.Config) (string, error) {
	switch {
	case cfg.Job != "":
		text, err := ingest.FromFile(cfg.Job)
		if err != nil {
			return "", fmt.Errorf("failed to load job posting: %w", err)
		}
		return text, nil
	case cfg.JobURL != "":
		text, err := ingest.FromURL(ctx, cfg.JobURL)
		if err != nil {
			return "", fmt.Errorf("failed to fetch job posting: %w", err)
		}
		return text, nil
	default:
		fmt.Println("No job description provided; using the built-in demo posting.")
		return ingest.DemoJobDescription(), nil
	}
}

// loadResume reads a section-keyed resume JSON file, or falls back to
// the demo resume.
func loadResume(path string) (map[types.SectionID]any, error) {
	if path == "" {
		fmt.Println("No resume provided; using the built-in demo resume.")
		return ingest.DemoResume(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	var resume map[types.SectionID]any
	if err := json.Unmarshal(data, &resume); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}
	if len(resume) == 0 {
		return nil, fmt.Errorf("resume file %s has no sections", path)
	}
	return resume, nil
}

// printAssistant prints the assistant messages produced by the last turn.
func printAssistant(state *types.ConversationState) {
	for _, msg := range state.LastAssistantMessages() {
		fmt.Printf("\n%s\n\n", msg.Content)
	}
}
