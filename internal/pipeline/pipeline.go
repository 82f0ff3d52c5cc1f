// Package pipeline orchestrates the collector stages end to end: load,
// extract, deduplicate, classify, build the site model, render.
//
// Issue loading and extraction fan out across a bounded worker pool and are
// merged back in archive filename order, so the article set entering
// deduplication is identical from run to run. Everything downstream of the
// merge runs single-threaded on the complete set.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"newsstand/internal/classify"
	"newsstand/internal/config"
	"newsstand/internal/dedup"
	"newsstand/internal/epub"
	"newsstand/internal/extractor"
	"newsstand/internal/logger"
	"newsstand/internal/models"
	"newsstand/internal/render"
	"newsstand/internal/sitemodel"
)

// Run configuration errors.
var (
	ErrMissingInputDir  = errors.New("input directory is required")
	ErrMissingOutputDir = errors.New("output directory is required")
)

// Run executes one full batch. Loader and extractor failures are isolated
// per archive or document and recorded in the returned Report; failures in
// the stages that need the complete article set abort the run.
func Run(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Report, error) {
	if cfg.Pipeline.InputDir == "" {
		return nil, ErrMissingInputDir
	}

	if cfg.Pipeline.OutputDir == "" {
		return nil, ErrMissingOutputDir
	}

	report := &Report{}

	archives, err := epub.ListArchives(cfg.Pipeline.InputDir)
	if err != nil {
		return nil, err
	}

	log.Info("scanning archives", "dir", cfg.Pipeline.InputDir, "count", len(archives))

	articles, err := loadAndExtract(ctx, cfg, log, archives, report)
	if err != nil {
		return report, err
	}

	log.Info("extraction complete",
		"articles", report.ArticlesExtracted,
		"documents_skipped", report.DocumentsSkipped,
		"issues_skipped", report.IssuesSkipped)

	canonicals, err := dedup.New(cfg.Pipeline.SimilarityThreshold).Partition(articles)
	if err != nil {
		return report, fmt.Errorf("deduplication failed: %w", err)
	}

	report.CanonicalArticles = len(canonicals)
	report.DuplicatesCollapsed = report.ArticlesExtracted - len(canonicals)

	log.Info("deduplication complete",
		"canonical", len(canonicals),
		"collapsed", report.DuplicatesCollapsed)

	clf := classify.New(cfg.Classify.Categories)
	for _, c := range canonicals {
		c.Class = clf.Classify(c.Primary)
	}

	model, err := sitemodel.NewBuilder(cfg.Pipeline.RelatedLinksCount).Build(canonicals)
	if err != nil {
		return report, fmt.Errorf("site model build failed: %w", err)
	}

	renderer, err := render.New(cfg.Render.TemplateDir)
	if err != nil {
		return report, err
	}

	result, err := renderer.WriteSite(model, cfg.Pipeline.OutputDir)
	if err != nil {
		return report, err
	}

	report.PagesWritten = result.PagesWritten
	report.PageFailures = len(result.Failures)

	for _, f := range result.Failures {
		report.Warnf("render %s: %v", f.Path, f.Err)
		log.Error("page render failed", "path", f.Path, "error", f.Err)
	}

	log.Info("render complete", "pages", result.PagesWritten, "failures", len(result.Failures))

	return report, nil
}

// issueResult carries one archive's extraction output back to the merge
// point, keyed by its position in the sorted archive list.
type issueResult struct {
	articles []models.Article
	report   Report
}

// loadAndExtract fans archives out over the worker pool and merges results
// in archive order.
func loadAndExtract(ctx context.Context, cfg *config.Config, log *logger.Logger, archives []string, report *Report) ([]models.Article, error) {
	ext := extractor.New(cfg.Pipeline.MinArticleRunes)

	results := make([]issueResult, len(archives))

	sem := make(chan struct{}, cfg.Pipeline.Workers)

	var wg sync.WaitGroup

	for i, path := range archives {
		if ctx.Err() != nil {
			break
		}

		select {
		case <-ctx.Done():
		case sem <- struct{}{}:
			wg.Add(1)

			go func(i int, path string) {
				defer wg.Done()
				defer func() { <-sem }()

				results[i] = processArchive(path, ext, log)
			}(i, path)
		}
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Deterministic merge: archive filename order, spine order within.
	var articles []models.Article

	for i := range results {
		report.merge(&results[i].report)
		articles = append(articles, results[i].articles...)
	}

	return articles, nil
}

// processArchive loads one archive and extracts its articles. All failures
// here are recoverable: they are recorded and the rest of the run proceeds.
func processArchive(path string, ext *extractor.Extractor, log *logger.Logger) issueResult {
	var res issueResult

	issue, err := epub.LoadArchive(path)
	if err != nil {
		res.report.IssuesSkipped++
		res.report.Warnf("skipping archive: %v", err)
		log.Warn("skipping archive", "path", path, "error", err)

		return res
	}

	res.report.IssuesLoaded++
	res.report.DocumentsSeen += len(issue.Documents)

	log.Debug("loaded issue", "issue", issue.ID, "documents", len(issue.Documents))

	for _, doc := range issue.Documents {
		article, err := ext.Extract(doc)
		if err != nil {
			res.report.ExtractionFailures++
			res.report.DocumentsSkipped++
			res.report.Warnf("extraction failed: %v", err)
			log.Warn("extraction failed", "issue", issue.ID, "document", doc.Index, "error", err)

			continue
		}

		if article == nil {
			res.report.DocumentsSkipped++

			continue
		}

		res.articles = append(res.articles, *article)
	}

	res.report.ArticlesExtracted += len(res.articles)

	return res
}
