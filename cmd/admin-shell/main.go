package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/admin"
	"github.com/tendant/simple-cms/pkg/simplecms/config"
)

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	// Load server configuration
	serverConfig, err := config.Load(config.WithEnv(""))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Build service
	svc, err := serverConfig.BuildService()
	if err != nil {
		log.Fatalf("Failed to build service: %v", err)
	}

	// Build admin service
	adminSvc, err := buildAdminService(serverConfig)
	if err != nil {
		log.Fatalf("Failed to build admin service: %v", err)
	}

	// Start admin shell
	shell := NewAdminShell(svc, adminSvc)
	shell.Run()
}

func buildAdminService(serverConfig *config.ServerConfig) (admin.AdminService, error) {
	repo, err := serverConfig.BuildRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}
	return admin.New(repo), nil
}

// AdminShell provides an interactive admin interface
type AdminShell struct {
	service  simplecms.Service
	adminSvc admin.AdminService
}

// NewAdminShell creates a new admin shell
func NewAdminShell(service simplecms.Service, adminSvc admin.AdminService) *AdminShell {
	return &AdminShell{
		service:  service,
		adminSvc: adminSvc,
	}
}

// Run starts the interactive admin shell
func (s *AdminShell) Run() {
	reader := bufio.NewReader(os.Stdin)
	ctx := context.Background()

	fmt.Println("=== Simple CMS Admin Shell ===")
	fmt.Println("Type 'help' for available commands, 'exit' to quit")
	fmt.Println()

	for {
		fmt.Print("admin> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		command := parts[0]

		switch command {
		case "help", "h":
			s.showHelp()
		case "exit", "quit", "q":
			fmt.Println("Goodbye!")
			return
		case "list", "ls":
			s.handleList(ctx, parts[1:])
		case "count":
			s.handleCount(ctx, parts[1:])
		case "stats":
			s.handleStats(ctx, parts[1:])
		case "get":
			s.handleGet(ctx, parts[1:])
		case "history":
			s.handleHistory(ctx, parts[1:])
		default:
			fmt.Printf("Unknown command: %s (type 'help' for available commands)\n", command)
		}
	}
}

func (s *AdminShell) showHelp() {
	help := `
Available Commands:

  list, ls              List all articles
  list <status>         List articles in a lifecycle status
                        (draft, reviewing, published, archived)

  count                 Count all articles
  count <status>        Count articles in a lifecycle status

  stats                 Show overall statistics
  stats <status>        Show statistics for a lifecycle status

  get <article-id>      Get the full aggregate for an article
  history <article-id>  List the version history for an article

  help, h               Show this help message
  exit, quit, q         Exit admin shell

Examples:
  list
  list reviewing
  count published
  get art-7f3a
  history art-7f3a
`
	fmt.Println(help)
}

func parseStatusArg(args []string) (admin.ArticleFilters, bool) {
	filters := admin.ArticleFilters{}
	if len(args) == 0 {
		return filters, true
	}

	switch simplecms.StatusKind(args[0]) {
	case simplecms.StatusDraft, simplecms.StatusReviewing, simplecms.StatusPublished, simplecms.StatusArchived:
		kind := simplecms.StatusKind(args[0])
		filters.Status = &kind
		return filters, true
	default:
		fmt.Printf("Invalid status: %s (use draft, reviewing, published or archived)\n", args[0])
		return filters, false
	}
}

func (s *AdminShell) handleList(ctx context.Context, args []string) {
	filters, ok := parseStatusArg(args)
	if !ok {
		return
	}
	limit := 20
	filters.Limit = &limit

	resp, err := s.adminSvc.ListAllArticles(ctx, admin.ListArticlesRequest{
		Filters: filters,
	})
	if err != nil {
		fmt.Printf("Error listing articles: %v\n", err)
		return
	}

	if len(resp.Articles) == 0 {
		fmt.Println("No articles found")
		return
	}

	fmt.Printf("%-24s  %-28s  %-10s  %-10s  %3s\n", "ID", "Title", "Status", "Type", "Ver")
	fmt.Println(strings.Repeat("-", 84))
	for _, article := range resp.Articles {
		title := article.Title
		if len(title) > 28 {
			title = title[:25] + "..."
		}
		id := article.ID.String()
		if len(id) > 24 {
			id = id[:21] + "..."
		}
		fmt.Printf("%-24s  %-28s  %-10s  %-10s  %3d\n",
			id,
			title,
			article.Status.Kind(),
			article.Type,
			article.CurrentVersion,
		)
	}
	fmt.Printf("\nTotal: %d", len(resp.Articles))
	if resp.HasMore {
		fmt.Printf(" (showing first %d, use the admin CLI for pagination)", limit)
	}
	fmt.Println()
}

func (s *AdminShell) handleCount(ctx context.Context, args []string) {
	filters, ok := parseStatusArg(args)
	if !ok {
		return
	}

	resp, err := s.adminSvc.CountArticles(ctx, admin.CountRequest{
		Filters: filters,
	})
	if err != nil {
		fmt.Printf("Error counting articles: %v\n", err)
		return
	}

	fmt.Printf("Total count: %d\n", resp.Count)
}

func (s *AdminShell) handleStats(ctx context.Context, args []string) {
	filters, ok := parseStatusArg(args)
	if !ok {
		return
	}

	resp, err := s.adminSvc.GetStatistics(ctx, admin.StatisticsRequest{
		Filters: filters,
		Options: admin.DefaultStatisticsOptions(),
	})
	if err != nil {
		fmt.Printf("Error getting statistics: %v\n", err)
		return
	}

	stats := resp.Statistics
	fmt.Printf("\nTotal Count: %d\n", stats.TotalCount)

	if len(stats.ByStatus) > 0 {
		fmt.Println("\nBy Status:")
		for status, count := range stats.ByStatus {
			fmt.Printf("  %-15s: %d\n", status, count)
		}
	}

	if len(stats.ByType) > 0 {
		fmt.Println("\nBy Content Type:")
		for contentType, count := range stats.ByType {
			fmt.Printf("  %-15s: %d\n", contentType, count)
		}
	}
	fmt.Println()
}

func (s *AdminShell) handleGet(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: get <article-id>")
		return
	}

	articleID, err := simplecms.NewArticleID(args[0])
	if err != nil {
		fmt.Printf("Invalid article ID: %s\n", args[0])
		return
	}

	article, err := s.service.GetArticle(ctx, articleID)
	if err != nil {
		fmt.Printf("Error getting article: %v\n", err)
		return
	}

	// Pretty print as JSON
	data, _ := json.MarshalIndent(article, "", "  ")
	fmt.Println(string(data))
}

func (s *AdminShell) handleHistory(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: history <article-id>")
		return
	}

	articleID, err := simplecms.NewArticleID(args[0])
	if err != nil {
		fmt.Printf("Invalid article ID: %s\n", args[0])
		return
	}

	versions, err := s.service.ListVersions(ctx, articleID)
	if err != nil {
		fmt.Printf("Error listing versions: %v\n", err)
		return
	}

	fmt.Printf("%3s  %-28s  %-10s  %-20s  %s\n", "Ver", "Title", "Status", "Changed By", "Created")
	fmt.Println(strings.Repeat("-", 92))
	for _, v := range versions {
		title := v.State.Title
		if len(title) > 28 {
			title = title[:25] + "..."
		}
		fmt.Printf("%3d  %-28s  %-10s  %-20s  %s\n",
			v.Version,
			title,
			v.State.Status.Kind(),
			v.ChangedBy.String(),
			v.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	fmt.Printf("\nVersions: %d\n", len(versions))
}
