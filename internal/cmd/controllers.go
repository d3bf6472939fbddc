package cmd

import (
	"fmt"
	"sort"

	"github.com/rmrfslashbin/padbind/internal/catalog"
	"github.com/spf13/cobra"
)

var controllersVerbose bool

// controllersCmd represents the controllers command.
var controllersCmd = &cobra.Command{
	Use:   "controllers",
	Short: "List supported controllers from the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}

		for _, name := range cat.SupportedNames() {
			if !controllersVerbose {
				fmt.Println(name)
				continue
			}
			ctrl, err := catalog.NewController(cat, name)
			if err != nil {
				return err
			}
			fmt.Printf("%s (%d buttons, %d axes)\n", name, ctrl.NumButtons(), ctrl.NumAxes())
			printLayout(ctrl)
		}
		return nil
	},
}

// printLayout renders the button layout in two columns, left-hand side
// buttons first.
func printLayout(ctrl *catalog.Controller) {
	var left, right []string
	for index := 0; index < ctrl.NumButtons(); index++ {
		name := ctrl.Button(index)
		if name == "" {
			continue
		}
		line := fmt.Sprintf("  %3d  %s", index, name)
		if catalog.IsLeftSide(name) {
			left = append(left, line)
		} else {
			right = append(right, line)
		}
	}
	sort.Strings(left)
	sort.Strings(right)
	for _, line := range append(left, right...) {
		fmt.Println(line)
	}
	if dpad, ok := ctrl.DpadButtons(); ok {
		fmt.Printf("  D-pad (up down left right): %v\n", dpad)
	}
	if stick, ok := ctrl.StickButton(); ok {
		fmt.Printf("  Stick click: %d\n", stick)
	}
}

func init() {
	rootCmd.AddCommand(controllersCmd)

	controllersCmd.Flags().BoolVarP(&controllersVerbose, "verbose", "v", false, "show button layouts")
}
