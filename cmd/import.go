package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quizpix/quizpix/internal/catalog"
	"github.com/quizpix/quizpix/internal/quiz"
)

var importCmd = &cobra.Command{
	Use:   "import <catalog.pdf>",
	Short: "Import questions from an exam-catalog PDF",
	Long: "Parses a printed exam catalog without any model call: plain text is\n" +
		"extracted from the PDF and scanned for numbered questions with lettered\n" +
		"options.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		questions, err := catalog.ImportPDF(args[0])
		if err != nil {
			return err
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			name, _ := cmd.Flags().GetString("name")
			if name == "" {
				name = filepath.Base(args[0])
			}
			bundle := quiz.NewBundle(name, quiz.SourceImported, questions)
			if err := st.BundleRepo().Save(ctx, bundle); err != nil {
				return err
			}
			fmt.Printf("Saved bundle %s (%q, %d questions)\n", bundle.ID, bundle.Name, len(bundle.Questions))
			return nil
		}

		return printJSON(questions)
	},
}

func init() {
	importCmd.Flags().Bool("save", false, "Save the imported questions as a bundle")
	importCmd.Flags().String("name", "", "Bundle name (defaults to the PDF file name)")
}
