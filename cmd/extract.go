package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quizpix/quizpix/internal/extract"
	"github.com/quizpix/quizpix/internal/quiz"
)

var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Extract questions from an exam-page image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		ctx := cmd.Context()

		image, mime, err := readImage(args[0])
		if err != nil {
			return err
		}

		provider, st, err := newProvider(cmd, ctx, logger)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
		}

		svc := extract.New(provider, extract.DefaultConfig())
		result, err := svc.ExtractQuestions(ctx, image, mime)
		if err != nil {
			return err
		}

		logger.Info("extraction finished",
			"questions", len(result.Questions),
			"strategy", result.Diagnostics.Strategy,
			"defaulted_answers", result.Diagnostics.DefaultedAnswers,
			"dropped", result.Diagnostics.Dropped)

		if save, _ := cmd.Flags().GetBool("save"); save && st != nil {
			name, _ := cmd.Flags().GetString("name")
			if name == "" {
				name = filepath.Base(args[0])
			}
			bundle := quiz.NewBundle(name, quiz.SourceExtracted, result.Questions)
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
	extractCmd.Flags().Bool("save", false, "Save the extracted questions as a bundle")
	extractCmd.Flags().String("name", "", "Bundle name (defaults to the image file name)")
}

// readImage loads an image file and infers its MIME type from the
// extension.
func readImage(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}

	var mime string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		mime = "image/png"
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	case ".webp":
		mime = "image/webp"
	case ".gif":
		mime = "image/gif"
	default:
		return nil, "", fmt.Errorf("unsupported image type %q (want png, jpeg, webp or gif)", filepath.Ext(path))
	}

	return data, mime, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
