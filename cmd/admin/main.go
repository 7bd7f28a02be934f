package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/admin"
	"github.com/tendant/simple-cms/pkg/simplecms/repo/memory"
	repopg "github.com/tendant/simple-cms/pkg/simplecms/repo/postgres"
)

const usage = `Simple CMS Admin CLI

A lightweight admin tool for article management that only requires database access.

USAGE:
  admin <command> [options]

COMMANDS:
  list      List articles with optional filtering
  count     Count articles with optional filtering
  stats     Get aggregated statistics

ENVIRONMENT VARIABLES:
  DATABASE_URL      PostgreSQL connection string (required for postgres)
  DATABASE_TYPE     Database type: postgres or memory (default: memory)
  DB_SCHEMA         PostgreSQL schema name (default: cms)

  Configuration can be loaded from a .env file in the current directory.
  Command line environment variables override .env file values.

EXAMPLES:
  # List all articles
  admin list

  # List articles by lifecycle status
  admin list --status=reviewing

  # List articles by a specific author
  admin list --author-id=author-7f3a

  # List with pagination
  admin list --limit=10 --offset=0

  # Count published tutorials
  admin count --status=published --type=tutorial

  # Get statistics
  admin stats

  # Output as JSON
  admin list --json
  admin stats --json

OPTIONS (for list/count/stats):
  --status=<status>            Filter by status (draft, reviewing, published, archived)
  --type=<type>                Filter by content type (tutorial, news, review, gallery)
  --author-id=<id>             Filter by author ID
  --created-after=<rfc3339>    Filter by creation time lower bound
  --created-before=<rfc3339>   Filter by creation time upper bound
  --sort-by=<field>            Sort field: created_at, updated_at, title (list only)
  --sort-order=<order>         Sort order: asc, desc (list only)
  --limit=<n>                  Maximum results (list only, default: 100)
  --offset=<n>                 Pagination offset (list only, default: 0)
  --json                       Output as JSON
`

// Config is the process environment for the admin CLI.
type Config struct {
	DatabaseType string `env:"DATABASE_TYPE" env-default:"memory"`
	DatabaseURL  string `env:"DATABASE_URL" env-default:""`
	DBSchema     string `env:"DB_SCHEMA" env-default:"cms"`
}

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	// Check for help
	if command == "help" || command == "--help" || command == "-h" {
		fmt.Println(usage)
		os.Exit(0)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}

	adminSvc, err := createAdminService(cfg)
	if err != nil {
		log.Fatalf("Failed to create admin service: %v", err)
	}

	ctx := context.Background()

	// Parse common flags
	filters, useJSON := parseFilters(os.Args[2:])

	switch command {
	case "list":
		handleList(ctx, adminSvc, filters, useJSON)
	case "count":
		handleCount(ctx, adminSvc, filters, useJSON)
	case "stats":
		handleStats(ctx, adminSvc, filters, useJSON)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Println(usage)
		os.Exit(1)
	}
}

func createAdminService(cfg Config) (admin.AdminService, error) {
	switch cfg.DatabaseType {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for postgres")
		}

		poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse database URL: %w", err)
		}

		// Set search_path
		poolConfig.ConnConfig.RuntimeParams["search_path"] = cfg.DBSchema

		pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		// Test connection
		if err := pool.Ping(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		repo := repopg.NewWithPool(pool)
		return admin.New(repo), nil

	case "memory":
		repo := memory.New()
		return admin.New(repo), nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s (use 'postgres' or 'memory')", cfg.DatabaseType)
	}
}

func parseFilters(args []string) (admin.ArticleFilters, bool) {
	filters := admin.ArticleFilters{}
	useJSON := false

	// Default pagination
	defaultLimit := 100
	defaultOffset := 0
	filters.Limit = &defaultLimit
	filters.Offset = &defaultOffset

	for _, arg := range args {
		if arg == "--json" {
			useJSON = true
			continue
		}

		// Parse key=value flags
		key, value := parseFlag(arg)

		switch key {
		case "status":
			kind := simplecms.StatusKind(value)
			filters.Status = &kind
		case "type":
			contentType := simplecms.ContentType(value)
			filters.Type = &contentType
		case "author-id":
			if id, err := simplecms.NewAuthorID(value); err == nil {
				filters.AuthorID = &id
			}
		case "created-after":
			if t, err := time.Parse(time.RFC3339, value); err == nil {
				filters.CreatedAfter = &t
			}
		case "created-before":
			if t, err := time.Parse(time.RFC3339, value); err == nil {
				filters.CreatedBefore = &t
			}
		case "sort-by":
			filters.SortBy = &value
		case "sort-order":
			filters.SortOrder = &value
		case "limit":
			if n, err := strconv.Atoi(value); err == nil {
				filters.Limit = &n
			}
		case "offset":
			if n, err := strconv.Atoi(value); err == nil {
				filters.Offset = &n
			}
		}
	}

	return filters, useJSON
}

func parseFlag(arg string) (string, string) {
	if len(arg) > 2 && arg[:2] == "--" {
		arg = arg[2:]
		for i, c := range arg {
			if c == '=' {
				return arg[:i], arg[i+1:]
			}
		}
		return arg, "true"
	}
	return "", ""
}

func handleList(ctx context.Context, adminSvc admin.AdminService, filters admin.ArticleFilters, useJSON bool) {
	resp, err := adminSvc.ListAllArticles(ctx, admin.ListArticlesRequest{
		Filters: filters,
	})
	if err != nil {
		log.Fatalf("Failed to list articles: %v", err)
	}

	if useJSON {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(data))
		return
	}

	// Table output
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tTITLE\tSLUG\tTYPE\tSTATUS\tVER\tUPDATED\n")
	fmt.Fprintf(w, "────────────────────\t────────────────────\t────────────────────\t────────\t─────────\t───\t───────────────────\n")

	for _, article := range resp.Articles {
		updatedAt := article.UpdatedAt.Format("2006-01-02 15:04:05")

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			truncate(article.ID.String(), 20),
			truncate(article.Title, 20),
			truncate(article.Slug.String(), 20),
			article.Type,
			article.Status.Kind(),
			article.CurrentVersion,
			updatedAt,
		)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d", len(resp.Articles))
	if resp.HasMore {
		fmt.Printf(" (has more, use --offset=%d to continue)", *filters.Offset+*filters.Limit)
	}
	fmt.Println()
}

func handleCount(ctx context.Context, adminSvc admin.AdminService, filters admin.ArticleFilters, useJSON bool) {
	resp, err := adminSvc.CountArticles(ctx, admin.CountRequest{
		Filters: filters,
	})
	if err != nil {
		log.Fatalf("Failed to count articles: %v", err)
	}

	if useJSON {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Total count: %d\n", resp.Count)
}

func handleStats(ctx context.Context, adminSvc admin.AdminService, filters admin.ArticleFilters, useJSON bool) {
	resp, err := adminSvc.GetStatistics(ctx, admin.StatisticsRequest{
		Filters: filters,
		Options: admin.DefaultStatisticsOptions(),
	})
	if err != nil {
		log.Fatalf("Failed to get statistics: %v", err)
	}

	if useJSON {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(data))
		return
	}

	stats := resp.Statistics

	fmt.Println("=== Article Statistics ===")
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

	if stats.OldestCreated != nil && stats.NewestCreated != nil {
		fmt.Println("\nTime Range:")
		fmt.Printf("  Oldest: %s\n", stats.OldestCreated.Format(time.RFC3339))
		fmt.Printf("  Newest: %s\n", stats.NewestCreated.Format(time.RFC3339))
	}

	fmt.Printf("\nComputed at: %s\n", resp.ComputedAt.Format(time.RFC3339))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
