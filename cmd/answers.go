package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quizpix/quizpix/internal/extract"
	"github.com/quizpix/quizpix/internal/quiz"
)

var answersCmd = &cobra.Command{
	Use:   "answers <questions.json> <sheet-image>",
	Short: "Apply an answer-sheet image to extracted questions",
	Long: "Extracts the number→letter answer key from a scanned answer sheet and\n" +
		"overwrites each question's answer with its entry. Questions without an\n" +
		"entry fall back to \"A\".",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		ctx := cmd.Context()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read questions: %w", err)
		}
		var questions []quiz.Question
		if err := json.Unmarshal(data, &questions); err != nil {
			return fmt.Errorf("decode questions: %w", err)
		}

		image, mime, err := readImage(args[1])
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
		key, diag, err := svc.ExtractAnswerKey(ctx, image, mime)
		if err != nil {
			return err
		}

		report := extract.MergeAnswerKey(questions, key)

		logger.Info("answer key merged",
			"entries", len(key),
			"strategy", diag.Strategy,
			"defaulted", report.Defaulted,
			"default_ratio", fmt.Sprintf("%.2f", report.DefaultRatio()))

		if report.Total > 0 && report.Defaulted == report.Total {
			fmt.Fprintln(os.Stderr, "warning: every question used the default answer; the answer-sheet pass likely failed")
		}

		return printJSON(questions)
	},
}
