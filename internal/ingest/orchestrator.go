// Package ingest drives the end-to-end pipeline: detect the source type,
// parse or extract candidates, classify them, suppress duplicates where the
// source calls for it, and commit survivors one at a time.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/olumendes/capital5/internal/backup"
	"github.com/olumendes/capital5/internal/classify"
	"github.com/olumendes/capital5/internal/common"
	"github.com/olumendes/capital5/internal/dedup"
	"github.com/olumendes/capital5/internal/format"
	"github.com/olumendes/capital5/internal/model"
	"github.com/olumendes/capital5/internal/ofx"
	"github.com/olumendes/capital5/internal/service"
	"github.com/olumendes/capital5/internal/statement"
	"github.com/olumendes/capital5/internal/tabular"
)

// Source is one file submitted for ingestion. Pages carries the document
// text layer for statement sources; Content carries raw bytes for the rest.
type Source struct {
	Pages    service.PageTextSource
	Name     string
	FormatID string
	Content  []byte
}

// Orchestrator owns the ingestion pipeline. One batch runs to completion
// before the next is accepted, so the duplicate detector and the commit loop
// always observe a consistent transaction set.
type Orchestrator struct {
	parser     *tabular.Parser
	extractor  *statement.Extractor
	ofxParser  *ofx.Parser
	classifier *classify.Classifier
	detector   *dedup.Detector
	stores     backup.Stores
	mu         sync.Mutex
}

// New creates an orchestrator over the given registry, classifier, and store
// collaborators.
func New(registry *format.Registry, classifier *classify.Classifier, stores backup.Stores) *Orchestrator {
	return &Orchestrator{
		parser:     tabular.NewParser(registry),
		extractor:  statement.NewExtractor(),
		ofxParser:  ofx.NewParser(),
		classifier: classifier,
		detector:   dedup.NewDetector(),
		stores:     stores,
	}
}

// Ingest runs the pipeline for one source. Structural problems (unsupported
// extension, empty file, unreadable statement, invalid backup) surface as an
// error; row- and item-level problems are accumulated in the result.
func (o *Orchestrator) Ingest(ctx context.Context, src Source) (*Result, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	result := &Result{File: src.Name}
	ext := strings.ToLower(filepath.Ext(src.Name))
	slog.Debug("ingestion started", "file", src.Name, "phase", PhaseDetecting)

	var candidates []model.Transaction

	switch ext {
	case ".csv":
		slog.Debug("ingestion phase", "file", src.Name, "phase", PhaseParsing)
		formatID := src.FormatID
		if formatID == "" {
			formatID = "generic"
		}
		batch, err := o.parser.Parse(string(src.Content), formatID, src.Name)
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("could not parse %s", src.Name), err)
		}
		for _, rowErr := range batch.RowErrors {
			result.addError(rowErr)
		}
		candidates = batch.Candidates

	case ".pdf":
		slog.Debug("ingestion phase", "file", src.Name, "phase", PhaseExtracting)
		var err error
		if src.Pages != nil {
			candidates, err = o.extractor.ExtractPages(ctx, src.Pages, src.Name)
		} else {
			candidates, err = o.extractor.Extract(string(src.Content), src.Name)
		}
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("could not extract transactions from %s", src.Name), err)
		}

	case ".json":
		slog.Debug("ingestion phase", "file", src.Name, "phase", PhaseDecodingBackup)
		return o.restoreBackup(ctx, src, result)

	case ".ofx", ".qfx":
		slog.Debug("ingestion phase", "file", src.Name, "phase", PhaseParsing)
		txns, err := o.ofxParser.Parse(ctx, strings.NewReader(string(src.Content)), src.Name)
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("could not parse %s", src.Name), err)
		}
		candidates = txns

	default:
		return nil, common.NewUserError(
			fmt.Sprintf("unsupported file extension %q", ext),
			common.ErrUnsupportedFormat)
	}

	o.classifyCandidates(candidates)
	return o.commit(ctx, candidates, result, false)
}

// classifyCandidates fills in missing category ids. Classification is pure,
// so re-running it over an already-classified candidate is a no-op.
func (o *Orchestrator) classifyCandidates(candidates []model.Transaction) {
	for i := range candidates {
		if candidates[i].CategoryID == "" {
			candidates[i].CategoryID = o.classifier.ClassifyTyped(candidates[i].Description, candidates[i].Type)
		}
	}
}

// commit writes candidates to the transaction store one at a time. Item
// failures are collected and never block the remaining commits; cancellation
// stops cleanly between items with everything already committed kept.
func (o *Orchestrator) commit(ctx context.Context, candidates []model.Transaction, result *Result, withDedup bool) (*Result, error) {
	if withDedup && len(candidates) > 0 {
		existing, err := o.stores.Transactions.GetTransactions(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load existing transactions: %w", err)
		}
		partition := o.detector.Partition(candidates, existing)
		result.Duplicates = len(partition.Duplicates)
		candidates = partition.New
	}

	slog.Debug("ingestion phase", "file", result.File, "phase", PhaseCommitting, "candidates", len(candidates))

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			result.finish()
			return result, err
		}

		if err := o.validateCategory(ctx, &candidate); err != nil {
			result.addError(err)
			continue
		}

		committed, err := o.stores.Transactions.CreateTransaction(ctx, candidate)
		if err != nil {
			result.addError(fmt.Errorf("%s: %w", candidate.Description, err))
			continue
		}

		result.Committed++
		result.NetTotal = result.NetTotal.Add(committed.SignedAmount())
		if committed.Type == model.TypeIncome {
			result.Income++
		} else {
			result.Expense++
		}
	}

	result.finish()
	slog.Info("ingestion finished",
		"file", result.File,
		"phase", PhaseDone,
		"committed", result.Committed,
		"duplicates", result.Duplicates,
		"errors", result.ErrorCount)
	return result, nil
}

// validateCategory rejects category ids that do not exist or whose type
// contradicts the transaction's direction, falling back to reclassification.
func (o *Orchestrator) validateCategory(ctx context.Context, txn *model.Transaction) error {
	if txn.CategoryID == "" {
		return nil
	}
	cat, err := o.stores.Categories.GetCategoryByID(ctx, txn.CategoryID)
	if err != nil {
		return fmt.Errorf("category lookup failed for %q: %w", txn.CategoryID, err)
	}
	if cat == nil || cat.Type != txn.Type {
		txn.CategoryID = o.classifier.ClassifyTyped(txn.Description, txn.Type)
	}
	return nil
}

// restoreBackup handles the JSON disaster-recovery path.
func (o *Orchestrator) restoreBackup(ctx context.Context, src Source, result *Result) (*Result, error) {
	env, err := backup.Decode(src.Content)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("invalid backup file %s", src.Name), err)
	}

	restore, err := backup.Restore(ctx, env, o.stores)
	if err != nil {
		return nil, err
	}

	result.Committed = restore.ItemsApplied
	for _, itemErr := range restore.ItemErrors {
		result.addError(itemErr)
	}
	result.Success = restore.ItemsApplied > 0
	result.Summary = fmt.Sprintf("%d items restored", restore.ItemsApplied)
	if result.ErrorCount > 0 {
		result.Summary += fmt.Sprintf(", %d items failed", result.ErrorCount)
	}
	return result, nil
}
