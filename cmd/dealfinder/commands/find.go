package commands

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dylangamachefl/grocery-deal-finder/cmd/dealfinder/ui"
	"github.com/dylangamachefl/grocery-deal-finder/internal/classifier"
	"github.com/dylangamachefl/grocery-deal-finder/internal/config"
	"github.com/dylangamachefl/grocery-deal-finder/internal/domain"
	"github.com/dylangamachefl/grocery-deal-finder/internal/embedding"
	"github.com/dylangamachefl/grocery-deal-finder/internal/llm"
	"github.com/dylangamachefl/grocery-deal-finder/internal/observability"
	"github.com/dylangamachefl/grocery-deal-finder/internal/oracle"
	"github.com/dylangamachefl/grocery-deal-finder/internal/pdf"
	"github.com/dylangamachefl/grocery-deal-finder/internal/pipeline"
	"github.com/dylangamachefl/grocery-deal-finder/internal/shards"
	"github.com/dylangamachefl/grocery-deal-finder/internal/taxonomy"
)

var (
	listText string
	listFile string
)

var findCmd = &cobra.Command{
	Use:   "find [ad files...]",
	Short: "Match a weekly ad against your shopping list",
	Long: `Find reads one or more ad files (PDFs or images), extracts every product
listing, categorizes them locally, and matches the deals against the
shopping list given via --list or --list-file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringVarP(&listText, "list", "l", "", "shopping list text")
	findCmd.Flags().StringVar(&listFile, "list-file", "", "path to a shopping list file")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	level := cfg.Observability.LogLevel
	if verbose {
		level = "debug"
	}
	logger := observability.NewLogger(observability.LogConfig{
		Level:       level,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "deal-finder",
	})

	shoppingList, err := resolveShoppingList()
	if err != nil {
		return err
	}

	apiKey, err := cfg.ChatAPIKey()
	if err != nil {
		return err
	}

	chat, err := llm.NewClient(llm.Config{
		APIKey:     apiKey,
		Model:      cfg.Chat.Model,
		BaseURL:    cfg.Chat.BaseURL,
		Timeout:    cfg.Chat.Timeout,
		MaxRetries: cfg.Chat.MaxRetries,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	embedder, err := embedding.NewClient(embedding.Config{
		APIKey:    cfg.EmbeddingAPIKey(),
		Model:     cfg.Embedding.Model,
		BaseURL:   cfg.Embedding.BaseURL,
		Dimension: cfg.Embedding.Dimension,
	})
	if err != nil {
		return err
	}

	clf := classifier.NewClient(func() *classifier.Classifier {
		return classifier.New(embedder, classifier.Config{
			Taxonomy:       taxonomy.Default(),
			FallbackParent: cfg.Classifier.FallbackParent,
		})
	}, classifier.ClientConfig{
		ClassifyTimeout: cfg.Classifier.ClassifyTimeout,
		BatchTimeout:    cfg.Classifier.BatchTimeout,
		InitTimeout:     cfg.Classifier.InitTimeout,
	})
	defer clf.Terminate()

	converter := pdf.NewConverter()
	defer func() { _ = converter.Cleanup() }()

	imagePaths, err := collectImagePaths(cmd, converter, args, cfg.PDF.JPEGQuality)
	if err != nil {
		return err
	}

	orc := oracle.New(chat, logger)
	view := newStatusView()
	orchestrator := shards.NewOrchestrator(orc, clf, shards.Config{
		ShardSize:       cfg.Pipeline.ShardSize,
		Logger:          logger,
		OnShardComplete: view.onShard,
	})
	coordinator := pipeline.New(orc, orchestrator, orc, orc, pipeline.Config{
		Status: view.onStatus,
		Logger: logger,
	})

	result, err := coordinator.Run(cmd.Context(), imagePaths, shoppingList)
	view.close()
	if err != nil {
		ui.Error("Deal finding failed: %v", err)
		return err
	}

	ui.RenderResult(result)
	return nil
}

// collectImagePaths converts PDF inputs to page images and passes image
// inputs through untouched.
func collectImagePaths(cmd *cobra.Command, converter *pdf.Converter, args []string, quality int) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !pdf.IsPDF(arg) {
			if _, err := os.Stat(arg); err != nil {
				return nil, domain.IOError(fmt.Sprintf("ad file %s not accessible", arg), err)
			}
			paths = append(paths, arg)
			continue
		}

		pages, err := converter.Convert(cmd.Context(), arg, quality)
		if err != nil {
			return nil, err
		}
		for _, page := range pages {
			paths = append(paths, page.ImagePath)
		}
	}
	return paths, nil
}

func resolveShoppingList() (string, error) {
	if listText != "" && listFile != "" {
		return "", fmt.Errorf("use either --list or --list-file, not both")
	}
	if listFile != "" {
		data, err := os.ReadFile(listFile)
		if err != nil {
			return "", fmt.Errorf("read shopping list: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	if listText == "" {
		return "", fmt.Errorf("a shopping list is required (--list or --list-file)")
	}
	return listText, nil
}

// statusView renders pipeline progress: a spinner per stage plus a progress
// bar while shards are in flight. Callbacks arrive from multiple goroutines.
type statusView struct {
	mu   sync.Mutex
	spin *ui.Spinner
	bar  *ui.ProgressBar
}

func newStatusView() *statusView {
	return &statusView{spin: ui.NewSpinner("Starting...")}
}

func (v *statusView) onStatus(u domain.StatusUpdate) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.bar != nil {
		v.bar.Finish()
		v.bar = nil
	}

	switch u.Stage {
	case domain.StageDone:
		v.spin.Stop()
		ui.Success("%s", u.Message)
	case domain.StageError:
		v.spin.Stop()
	default:
		v.spin.UpdateMessage(u.Message)
		v.spin.Start()
	}
}

func (v *statusView) onShard(completed, total int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.bar == nil {
		v.spin.Stop()
		v.bar = ui.NewProgressBar(int64(total), "Processing shards")
	}
	v.bar.Set(int64(completed))
}

func (v *statusView) close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.bar != nil {
		v.bar.Finish()
		v.bar = nil
	}
	v.spin.Stop()
}
