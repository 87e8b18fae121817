package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quizpix/quizpix/internal/generate"
	"github.com/quizpix/quizpix/internal/quiz"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Bulk-generate reading-comprehension questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		ctx := cmd.Context()

		count, _ := cmd.Flags().GetInt("count")
		if count < 1 || count > 100 {
			return fmt.Errorf("--count must be between 1 and 100, got %d", count)
		}

		provider, st, err := newProvider(cmd, ctx, logger)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
		}

		cfg := generate.DefaultConfig()
		if delay, _ := cmd.Flags().GetDuration("delay"); delay >= 0 {
			cfg.Delay = delay
		}

		orch := generate.New(provider, cfg, logger)
		result, err := orch.Generate(ctx, count)
		if err != nil {
			return err
		}

		if result.Shortfall > 0 {
			fmt.Fprintf(os.Stderr, "warning: produced %d of %d questions (shortfall %d) after exhausting retries\n",
				len(result.Questions), count, result.Shortfall)
		}

		if save, _ := cmd.Flags().GetBool("save"); save && st != nil {
			name, _ := cmd.Flags().GetString("name")
			if name == "" {
				name = fmt.Sprintf("generated-%s", time.Now().Format("2006-01-02-150405"))
			}
			bundle := quiz.NewBundle(name, quiz.SourceGenerated, result.Questions)
			if err := st.BundleRepo().Save(ctx, bundle); err != nil {
				return err
			}
			fmt.Printf("Saved bundle %s (%q, %d questions)\n", bundle.ID, bundle.Name, len(bundle.Questions))
			return nil
		}

		return printJSON(result.Questions)
	},
}

func init() {
	generateCmd.Flags().IntP("count", "n", 10, "Number of questions to generate (1-100)")
	generateCmd.Flags().Duration("delay", generate.DefaultConfig().Delay, "Pause between provider calls")
	generateCmd.Flags().Bool("save", false, "Save the generated questions as a bundle")
	generateCmd.Flags().String("name", "", "Bundle name")
}
