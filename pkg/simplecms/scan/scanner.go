package scan

import (
	"context"
	"fmt"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/admin"
)

// Scanner queries articles and processes them with the provided processor.
type Scanner struct {
	adminSvc admin.AdminService
}

// New creates a new Scanner instance.
func New(adminSvc admin.AdminService) *Scanner {
	return &Scanner{adminSvc: adminSvc}
}

// ScanOptions configures the scan operation.
type ScanOptions struct {
	// Filters specifies which articles to process
	Filters admin.ArticleFilters

	// Processor defines the processing logic (required unless DryRun is true)
	Processor ArticleProcessor

	// BatchSize controls how many articles to query at once (default: 100)
	BatchSize int

	// DryRun if true, doesn't process articles, just reports what would be processed
	DryRun bool

	// OnProgress is called after each batch is processed (optional)
	OnProgress func(processed, total int64)

	// Logger receives per-article dry-run and failure messages (optional)
	Logger simplecms.Logger
}

// ScanResult contains statistics about the scan operation.
type ScanResult struct {
	// TotalFound is the total number of articles found matching the filters
	TotalFound int64

	// TotalProcessed is the number of articles successfully processed
	TotalProcessed int64

	// TotalFailed is the number of articles that failed processing
	TotalFailed int64

	// FailedIDs contains the IDs of articles that failed processing
	FailedIDs []string
}

// Scan queries articles matching the filters and processes each one with the
// provided processor. Processing happens in batches. If an article fails
// processing, the error is recorded but scanning continues with the next
// article.
func (s *Scanner) Scan(ctx context.Context, opts ScanOptions) (*ScanResult, error) {
	result := &ScanResult{}

	if !opts.DryRun && opts.Processor == nil {
		return result, fmt.Errorf("processor is required when DryRun is false")
	}

	if opts.BatchSize == 0 {
		opts.BatchSize = 100
	}

	offset := 0
	for {
		opts.Filters.Limit = &opts.BatchSize
		opts.Filters.Offset = &offset

		resp, err := s.adminSvc.ListAllArticles(ctx, admin.ListArticlesRequest{
			Filters: opts.Filters,
		})
		if err != nil {
			return result, fmt.Errorf("failed to list articles: %w", err)
		}

		if len(resp.Articles) == 0 {
			break
		}

		result.TotalFound += int64(len(resp.Articles))

		for _, article := range resp.Articles {
			if opts.DryRun {
				if opts.Logger != nil {
					opts.Logger.Infof("dry-run: would process %s (type=%s, status=%s)",
						article.ID, article.Type, article.Status.Kind())
				}
				result.TotalProcessed++
				continue
			}

			if err := opts.Processor.Process(ctx, article); err != nil {
				result.TotalFailed++
				result.FailedIDs = append(result.FailedIDs, article.ID.String())
				if opts.Logger != nil {
					opts.Logger.Errorf("failed to process %s: %v", article.ID, err)
				}
				continue
			}

			result.TotalProcessed++
		}

		if opts.OnProgress != nil {
			opts.OnProgress(result.TotalProcessed+result.TotalFailed, result.TotalFound)
		}

		if !resp.HasMore {
			break
		}

		offset += opts.BatchSize
	}

	return result, nil
}

// ForEach is a convenience method that processes each article with a callback
// function. This is useful for simple inline processing without creating a
// separate processor type.
//
// Example:
//
//	scanner.ForEach(ctx, filters, func(ctx context.Context, article *simplecms.Article) error {
//	    fmt.Printf("Processing %s\n", article.ID)
//	    return doSomething(article)
//	})
func (s *Scanner) ForEach(ctx context.Context, filters admin.ArticleFilters, fn func(context.Context, *simplecms.Article) error) (*ScanResult, error) {
	processor := &funcProcessor{fn: fn}
	return s.Scan(ctx, ScanOptions{
		Filters:   filters,
		Processor: processor,
	})
}

// funcProcessor adapts a function to the ArticleProcessor interface.
type funcProcessor struct {
	fn func(context.Context, *simplecms.Article) error
}

func (p *funcProcessor) Process(ctx context.Context, article *simplecms.Article) error {
	return p.fn(ctx, article)
}
