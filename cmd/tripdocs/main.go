// Command tripdocs is a terminal client for the travel documentation
// Q&A service. Run without arguments it opens the interactive chat UI;
// subcommands expose the operational endpoints.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tripdocs/tripdocs/internal/api"
	"github.com/tripdocs/tripdocs/internal/config"
	"github.com/tripdocs/tripdocs/internal/identity"
	"github.com/tripdocs/tripdocs/internal/logger"
	"github.com/tripdocs/tripdocs/internal/tui"
	"github.com/tripdocs/tripdocs/internal/version"
)

type appContext struct {
	cfg    config.Config
	client *api.Client
	userID string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var baseURL string
	app := &appContext{}

	root := &cobra.Command{
		Use:           "tripdocs",
		Short:         "Chat with the AI travel documentation assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger.Init(cfg.Log.Level, cfg.Log.Format)

			if strings.TrimSpace(baseURL) != "" {
				cfg.API.BaseURL = baseURL
			}
			client, err := api.New(logger.L, cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
			if err != nil {
				return err
			}

			app.cfg = cfg
			app.client = client
			app.userID = identity.UserID(cfg.Identity.Path)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			model := tui.New(app.client, app.userID, app.cfg.History.PageSize, app.cfg.Chat.Examples)
			_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to tripdocs.toml")
	root.PersistentFlags().StringVar(&baseURL, "api-url", "", "API server base URL (e.g. http://localhost:8000)")

	root.AddCommand(
		newAskCmd(app),
		newStatsCmd(app),
		newHealthCmd(app),
		newHistoryCmd(app),
		newVersionCmd(),
	)
	return root
}

func newAskCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			if problem := api.ValidateQuery(question); problem != "" {
				return fmt.Errorf("%s", problem)
			}
			resp, err := app.client.SubmitQuery(cmd.Context(), question, app.userID)
			if err != nil {
				return err
			}
			fmt.Println(resp.Response)
			if resp.ResponseTime > 0 {
				logger.Debug("query answered", "response_time", resp.ResponseTime)
			}
			return nil
		},
	}
}

func newStatsCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show system statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.client.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Total queries:  %d\n", stats.TotalQueries)
			fmt.Printf("System status:  %s\n", stats.SystemStatus)
			fmt.Printf("API version:    %s\n", stats.APIVersion)
			if !stats.Timestamp.IsZero() {
				fmt.Printf("Timestamp:      %s\n", stats.Timestamp.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func newHealthCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API liveness and the chat subsystem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := app.client.Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("api:   %s", health.Status)
			if health.Message != "" {
				fmt.Printf(" (%s)", health.Message)
			}
			fmt.Println()

			chat, err := app.client.ChatHealth(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("chat:  %s\n", chat.Status)
			for name, status := range chat.Dependencies {
				fmt.Printf("  %-12s %s\n", name, status)
			}
			return nil
		},
	}
}

func newHistoryCmd(app *appContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past queries",
	}

	var page, pageSize int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a page of past queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pageSize <= 0 {
				pageSize = app.cfg.History.PageSize
			}
			result, err := app.client.History(cmd.Context(), page, pageSize, app.userID)
			if err != nil {
				return err
			}
			printHistoryPage(result)
			return nil
		},
	}
	listCmd.Flags().IntVar(&page, "page", 1, "Page number (1-indexed)")
	listCmd.Flags().IntVar(&pageSize, "page-size", 0, "Entries per page")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a past query by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id < 0 {
				return fmt.Errorf("invalid history id %q", args[0])
			}
			result, err := app.client.DeleteHistoryEntry(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}

	historyCmd.AddCommand(listCmd, deleteCmd)
	return historyCmd
}

func printHistoryPage(page api.HistoryPage) {
	if len(page.Queries) == 0 {
		fmt.Println("No queries on this page.")
		return
	}
	for _, entry := range page.Queries {
		status := "ok"
		if !entry.Success {
			status = "failed"
		}
		fmt.Printf("[%d] %s  (%s, %s)\n", entry.ID, entry.Query, entry.Timestamp.Format("2006-01-02 15:04"), status)
		fmt.Printf("    %s\n", firstLine(entry.Response))
	}
	fmt.Printf("Page %d of %d (%d total)\n", page.Page, page.TotalPages(), page.TotalCount)
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tripdocs %s\n", version.GetInfo())
		},
	}
}
