package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quizpix/quizpix/internal/quiz"
)

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Manage saved question bundles",
}

var bundleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved bundles",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		bundles, err := st.BundleRepo().List(cmd.Context())
		if err != nil {
			return err
		}

		if len(bundles) == 0 {
			fmt.Println("No bundles found.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-9s  %s\n", "ID", "Created", "Source", "Name")
		for _, b := range bundles {
			fmt.Printf("%-36s  %-19s  %-9s  %s\n",
				b.ID,
				b.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				b.Source,
				b.Name)
		}
		return nil
	},
}

var bundleShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a bundle's questions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		bundle, err := st.BundleRepo().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s, %s, %d questions)\n\n", bundle.Name, bundle.ID, bundle.Source, len(bundle.Questions))
		for _, q := range bundle.Questions {
			fmt.Printf("%d. %s\n", q.ID, q.Text)
			for i, opt := range q.Options {
				marker := "  "
				if quiz.Letters[i] == q.Answer {
					marker = "✓ "
				}
				fmt.Printf("  %s%s) %s\n", marker, quiz.Letters[i], opt)
			}
			fmt.Println()
		}
		return nil
	},
}

var bundleExportCmd = &cobra.Command{
	Use:   "export <id> [file]",
	Short: "Export a bundle as JSON",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		bundle, err := st.BundleRepo().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if len(args) == 2 {
			data, err := json.MarshalIndent(bundle, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Printf("Exported bundle %s to %s\n", bundle.ID, args[1])
			return nil
		}

		return printJSON(bundle)
	},
}

var bundleImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a bundle from an exported JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read bundle file: %w", err)
		}

		var bundle quiz.Bundle
		if err := json.Unmarshal(data, &bundle); err != nil {
			return fmt.Errorf("decode bundle: %w", err)
		}
		if bundle.ID == "" {
			bundle = quiz.NewBundle(bundle.Name, quiz.SourceImported, bundle.Questions)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.BundleRepo().Save(cmd.Context(), bundle); err != nil {
			return err
		}
		fmt.Printf("Imported bundle %s (%q, %d questions)\n", bundle.ID, bundle.Name, len(bundle.Questions))
		return nil
	},
}

var bundleDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.BundleRepo().Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted bundle %s\n", args[0])
		return nil
	},
}

func init() {
	bundleCmd.AddCommand(bundleListCmd)
	bundleCmd.AddCommand(bundleShowCmd)
	bundleCmd.AddCommand(bundleExportCmd)
	bundleCmd.AddCommand(bundleImportCmd)
	bundleCmd.AddCommand(bundleDeleteCmd)
}
