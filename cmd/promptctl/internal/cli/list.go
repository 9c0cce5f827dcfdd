package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	domainsJSON  bool
	useCasesJSON bool
	versionsJSON bool
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the domains in the prompt tree",
	Args:  cobra.NoArgs,
	RunE:  runDomains,
}

var useCasesCmd = &cobra.Command{
	Use:   "usecases [domain]",
	Short: "List the use cases of a domain",
	Args:  cobra.ExactArgs(1),
	RunE:  runUseCases,
}

var versionsCmd = &cobra.Command{
	Use:   "versions [domain] [use_case]",
	Short: "List every version of a use case, newest first",
	Args:  cobra.ExactArgs(2),
	RunE:  runVersions,
}

func init() {
	domainsCmd.Flags().BoolVar(&domainsJSON, "json", false, "emit JSON")
	useCasesCmd.Flags().BoolVar(&useCasesJSON, "json", false, "emit JSON")
	versionsCmd.Flags().BoolVar(&versionsJSON, "json", false, "emit JSON")

	rootCmd.AddCommand(domainsCmd)
	rootCmd.AddCommand(useCasesCmd)
	rootCmd.AddCommand(versionsCmd)
}

func runDomains(cmd *cobra.Command, _ []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	domains, err := reg.ListDomains(cmd.Context())
	if err != nil {
		return err
	}
	if domainsJSON {
		return writeJSON(cmd.OutOrStdout(), domains)
	}
	for _, domain := range domains {
		fmt.Fprintln(cmd.OutOrStdout(), domain)
	}
	return nil
}

func runUseCases(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	useCases, err := reg.ListUseCases(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if useCasesJSON {
		return writeJSON(cmd.OutOrStdout(), useCases)
	}
	for _, useCase := range useCases {
		fmt.Fprintln(cmd.OutOrStdout(), useCase)
	}
	return nil
}

func runVersions(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	infos, err := reg.ListVersions(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	if versionsJSON {
		return writeJSON(cmd.OutOrStdout(), infos)
	}
	renderVersions(cmd.OutOrStdout(), infos)
	return nil
}
