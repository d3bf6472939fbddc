package cmd

import (
	"fmt"
	"sort"

	"github.com/rmrfslashbin/padbind/internal/profile"
	"github.com/rmrfslashbin/padbind/internal/store"
	"github.com/rmrfslashbin/padbind/pkg/models"
	"github.com/spf13/cobra"
)

var (
	profilesShowEffective bool
	profilesListDefaults  bool
)

// profilesCmd groups profile management subcommands.
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage binding profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := storeFromConfig()
		if err != nil {
			return err
		}
		names, err := st.ProfileNames(profilesListDefaults)
		if err != nil {
			return err
		}
		for _, name := range names {
			if st.IsBuiltin(name) {
				fmt.Printf("%s (built-in)\n", name)
			} else {
				fmt.Println(name)
			}
		}
		return nil
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a profile's bindings",
	Long: `Show a profile's stored bindings per state.

With --effective, the fully resolved binding table is shown instead:
every concrete state with inherited actions from the "all" and "review"
layers filled in.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := storeFromConfig()
		if err != nil {
			return err
		}
		p, err := st.LoadProfile(args[0])
		if err != nil {
			return err
		}

		buttons, axes := p.Size()
		fmt.Printf("Name:       %s\n", p.Name())
		fmt.Printf("Controller: %s\n", p.ControllerName())
		fmt.Printf("Size:       %d buttons, %d axes\n", buttons, axes)

		if profilesShowEffective {
			printEffective(p.InheritedBindings(), buttons)
		} else {
			printStored(p, buttons)
		}

		for axis := 0; axis < axes; axis++ {
			if action := p.AxisAction(axis); action != "" {
				fmt.Printf("axis %d: %s\n", axis, action)
			}
		}
		return nil
	},
}

func printStored(p *profile.Profile, buttons int) {
	// Stored view shows explicit bindings only, so inherited entries are
	// filtered by comparing against the "all" layer.
	for _, state := range models.BindingStates() {
		shown := false
		for button := 0; button < buttons; button++ {
			action := p.Get(state, button)
			if action == "" {
				continue
			}
			if state != models.StateAll && action == p.Get(models.StateAll, button) {
				continue
			}
			if !shown {
				fmt.Printf("[%s]\n", state)
				shown = true
			}
			fmt.Printf("  %3d  %s\n", button, action)
		}
	}
}

func printEffective(inherited map[models.State]map[int]string, buttons int) {
	states := make([]models.State, 0, len(inherited))
	for state := range inherited {
		states = append(states, state)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	for _, state := range states {
		fmt.Printf("[%s]\n", state)
		for button := 0; button < buttons; button++ {
			if action := inherited[state][button]; action != "" {
				fmt.Printf("  %3d  %s\n", button, action)
			}
		}
	}
}

var profilesCopyCmd = &cobra.Command{
	Use:   "copy <name> <new-name>",
	Short: "Copy a profile to a new name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := storeFromConfig()
		if err != nil {
			return err
		}
		if _, err := st.CreateProfile(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("copied %q to %q\n", args[0], args[1])
		return nil
	},
}

var profilesRenameCmd = &cobra.Command{
	Use:   "rename <name> <new-name>",
	Short: "Rename a profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := storeFromConfig()
		if err != nil {
			return err
		}
		if err := st.RenameProfile(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("renamed %q to %q\n", args[0], args[1])
		return nil
	},
}

var profilesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := storeFromConfig()
		if err != nil {
			return err
		}
		if err := st.DeleteProfile(args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %q\n", args[0])
		return nil
	},
}

var profilesConvertCmd = &cobra.Command{
	Use:   "convert [name]",
	Short: "Convert legacy-format profiles",
	Long: `Convert profiles saved in the legacy list-wrapped binding format.

Without arguments, every user profile is checked and converted as
needed; a profile that fails conversion is logged and skipped. The
legacy file is kept next to the converted one with a .bak suffix.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := storeFromConfig()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			return st.ConvertProfile(args[0])
		}
		return st.ConvertProfiles()
	},
}

// storeFromConfig loads the catalog and opens the store over it.
func storeFromConfig() (*store.Store, error) {
	cat, err := openCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return openStore(cat)
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)
	profilesCmd.AddCommand(profilesCopyCmd)
	profilesCmd.AddCommand(profilesRenameCmd)
	profilesCmd.AddCommand(profilesDeleteCmd)
	profilesCmd.AddCommand(profilesConvertCmd)

	profilesListCmd.Flags().BoolVar(&profilesListDefaults, "defaults", true, "include built-in profiles")
	profilesShowCmd.Flags().BoolVar(&profilesShowEffective, "effective", false, "show fully inherited bindings")
}
