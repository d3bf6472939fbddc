package cmd

import (
	"fmt"

	"github.com/rmrfslashbin/padbind/internal/history"
	"github.com/spf13/cobra"
)

var (
	devicesLimit int
	devicesClear bool
)

// devicesCmd represents the devices command.
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Show recently detected devices",
	Long: `Show the detection history: every raw descriptor the identify command
has seen, with the resolved controller and matched profile if any.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := historyPath()
		if err != nil {
			return err
		}
		db, err := history.Open(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open detection history: %w", err)
		}
		defer db.Close()

		if devicesClear {
			if err := history.Clear(db); err != nil {
				return fmt.Errorf("failed to clear detection history: %w", err)
			}
			fmt.Println("detection history cleared")
			return nil
		}

		events, err := history.Recent(db, devicesLimit)
		if err != nil {
			return fmt.Errorf("failed to read detection history: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("no detections recorded")
			return nil
		}

		for _, event := range events {
			controller := event.Controller
			if controller == "" {
				controller = "(ignored)"
			}
			fmt.Printf("%s  %s  %db/%da", event.DetectedAt.Format("2006-01-02 15:04:05"), controller, event.Buttons, event.Axes)
			if event.Profile != "" {
				fmt.Printf("  profile=%s", event.Profile)
			}
			fmt.Printf("\n       raw: %s\n", event.RawID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)

	devicesCmd.Flags().IntVarP(&devicesLimit, "limit", "n", 20, "number of detections to show")
	devicesCmd.Flags().BoolVar(&devicesClear, "clear", false, "clear the detection history")
}
