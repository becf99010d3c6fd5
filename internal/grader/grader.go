package grader

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/Devon-White/grader/internal/checker"
	"github.com/Devon-White/grader/internal/config"
	"github.com/Devon-White/grader/internal/document"
	"github.com/Devon-White/grader/internal/fetcher"
	"github.com/Devon-White/grader/internal/report"
)

// Run executes one grading pass: validate inputs, load the document, check
// every selector, and write the report to cfg.Output or stdout.
// Errors from config.Validate and the fetcher are returned unwrapped.
func Run(ctx context.Context, cfg *config.Config, stdout io.Writer, log *logrus.Entry) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	src := cfg.Source()
	log = log.WithField("source", src.String())
	log.Debug("Resolving document")

	f := fetcher.New(cfg.UserAgent, cfg.Timeout)
	doc, err := document.Resolve(ctx, src, f)
	if err != nil {
		return err
	}
	title := document.Title(doc)
	log.WithField("title", title).Debug("Document parsed")

	checks, err := checker.LoadChecksFile(cfg.ChecksFile)
	if err != nil {
		return err
	}
	log.Debugf("Loaded %d checks from %s", len(checks), cfg.ChecksFile)

	result, err := checker.Check(doc, checks)
	if err != nil {
		return err
	}
	log.Infof("%d of %d selectors present", result.Passed(), result.Len())

	if cfg.Output != "" {
		if err := report.WriteFile(cfg.Output, cfg.Format, title, src.String(), result); err != nil {
			return fmt.Errorf("report: %w", err)
		}
		log.Infof("Report written to %s", cfg.Output)
		return nil
	}

	return report.Write(stdout, cfg.Format, title, src.String(), result)
}
