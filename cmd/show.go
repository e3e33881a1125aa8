package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	showCustomer string
	showTenant   string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored open count for a customer/tenant pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.close() }()

		rec, err := a.svc.Lookup(cmd.Context(), showCustomer, showTenant)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("no tracking record for customer=%s tenant=%s", showCustomer, showTenant)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

func init() {
	showCmd.Flags().StringVar(&showCustomer, "customer", "", "customer number")
	showCmd.Flags().StringVar(&showTenant, "tenant", "", "tenant name")
}
