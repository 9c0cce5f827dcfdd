package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify every prompt in the tree parses cleanly",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	problems, err := reg.VerifyTree(cmd.Context())
	if err != nil {
		return err
	}
	logger.Debug("tree checked", zap.String("root", reg.Root()), zap.Int("problems", len(problems)))
	out := cmd.OutOrStdout()
	if len(problems) == 0 {
		fmt.Fprintf(out, "ok: %s is clean\n", reg.Root())
		return nil
	}
	for _, p := range problems {
		fmt.Fprintf(out, "%s: %v\n", p.Path, p.Err)
	}
	return fmt.Errorf("%d problem(s) found", len(problems))
}
