package cmd

import (
	"fmt"
	"log/slog"

	"github.com/rmrfslashbin/padbind/internal/history"
	"github.com/rmrfslashbin/padbind/internal/identify"
	"github.com/rmrfslashbin/padbind/pkg/models"
	"github.com/spf13/cobra"
)

var (
	identifyButtons int
	identifyAxes    int
	identifyMatch   bool
)

// identifyCmd represents the identify command.
var identifyCmd = &cobra.Command{
	Use:   "identify <raw-id>",
	Short: "Resolve a raw hardware descriptor to a controller identity",
	Long: `Resolve a raw hardware identifier string, plus the reported button and
axis counts, into a canonical controller-catalog name.

The raw id may embed "Vendor: XXXX" and "Product: XXXX" hex tokens; when
present they are matched against the vendor/product database before the
free-text heuristics run.

Example:
  padbind identify "Wireless Controller (Vendor: 054c Product: 09cc)" --buttons 18 --axes 4 --match`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()
		rawID := args[0]

		cat, err := openCatalog()
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		db, err := openVendorDB()
		if err != nil {
			return fmt.Errorf("failed to load vendor database: %w", err)
		}

		resolver := identify.NewResolver(cat, db)
		identity := resolver.Identify(rawID, identifyButtons, identifyAxes)

		event := models.DetectionEvent{
			RawID:   rawID,
			Buttons: identifyButtons,
			Axes:    identifyAxes,
		}

		if identity == nil {
			fmt.Println("no device (ignored)")
		} else {
			event.Controller = identity.Name
			fmt.Printf("Controller:    %s\n", identity.Name)
			fmt.Printf("Disambiguated: %s\n", identity.Disambiguated)
			if cat.Has(identity.Name) {
				fmt.Println("Catalog:       known")
			} else {
				fmt.Println("Catalog:       unknown (fallback identity)")
			}

			if identifyMatch {
				st, err := openStore(cat)
				if err != nil {
					return err
				}
				profileName, err := st.FindProfile(identity.Name, identifyButtons, identifyAxes)
				if err != nil {
					return fmt.Errorf("failed to match profile: %w", err)
				}
				event.Profile = profileName
				fmt.Printf("Profile:       %s\n", profileName)
			}
		}

		dbPath, err := historyPath()
		if err != nil {
			return err
		}
		hdb, err := history.Open(dbPath)
		if err != nil {
			// History is best-effort; identification already succeeded.
			logger.Warn("failed to open detection history", "error", err)
			return nil
		}
		defer hdb.Close()
		if _, err := history.Record(hdb, event); err != nil {
			logger.Warn("failed to record detection", "error", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(identifyCmd)

	identifyCmd.Flags().IntVar(&identifyButtons, "buttons", 0, "reported button count")
	identifyCmd.Flags().IntVar(&identifyAxes, "axes", 0, "reported axis count")
	identifyCmd.Flags().BoolVar(&identifyMatch, "match", false, "find or create a profile for the controller")
	identifyCmd.MarkFlagRequired("buttons")
	identifyCmd.MarkFlagRequired("axes")
}
