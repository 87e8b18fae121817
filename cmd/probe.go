package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizpix/quizpix/internal/extract"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Test connectivity to the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		ctx := cmd.Context()

		provider, st, err := newProvider(cmd, ctx, logger)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
		}

		svc := extract.New(provider, extract.DefaultConfig())
		if err := svc.Probe(ctx); err != nil {
			return err
		}

		fmt.Printf("Provider %s is reachable.\n", provider.ModelID())
		return nil
	},
}
