package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skosovsky/promptvault"
)

var (
	showVersion string
	showBody    bool
	showJSON    bool
)

var showCmd = &cobra.Command{
	Use:   "show [domain] [use_case]",
	Short: "Show the latest (or a specific) version of a prompt",
	Args:  cobra.ExactArgs(2),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showVersion, "version", "", `exact version to show, e.g. "1.0" (default latest)`)
	showCmd.Flags().BoolVar(&showBody, "body", false, "print only the prompt body")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "emit the full record as JSON")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	domain, useCase := args[0], args[1]
	var rec *promptvault.Record
	if showVersion != "" {
		version, perr := promptvault.ParseVersion(showVersion)
		if perr != nil {
			return perr
		}
		rec, err = reg.GetVersion(cmd.Context(), domain, useCase, version)
	} else {
		rec, err = reg.GetLatest(cmd.Context(), domain, useCase)
	}
	if err != nil {
		return err
	}
	switch {
	case showJSON:
		return writeJSON(cmd.OutOrStdout(), rec)
	case showBody:
		fmt.Fprintln(cmd.OutOrStdout(), rec.Body)
		return nil
	default:
		renderRecord(cmd.OutOrStdout(), rec)
		return nil
	}
}
