package cmd

import (
	"errors"
	"fmt"

	"github.com/brogergvhs/scanfr/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var configSwitchCmd = &cobra.Command{
	Use:   "switch [label]",
	Short: "Switch to a different configuration profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := ""
		if len(args) == 1 {
			label = args[0]
		} else {
			picked, err := pickConfig()
			if err != nil {
				return err
			}
			label = picked
		}

		if err := config.SwitchConfig(label); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Switched to:", label)
		return nil
	},
}

// pickConfig asks for a profile, starting the cursor on the active one.
func pickConfig() (string, error) {
	list, err := config.ListConfigs()
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", errors.New("no configs available, run `scanfr config init` first")
	}

	items := lo.Map(list, func(c config.ConfigInfo, _ int) string {
		if c.Active {
			return c.Label + "  (active)"
		}
		return c.Label
	})
	_, active, _ := lo.FindIndexOf(list, func(c config.ConfigInfo) bool { return c.Active })

	prompt := promptui.Select{
		Label:     "Select config",
		Items:     items,
		CursorPos: max(active, 0),
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled")
	}

	return list[idx].Label, nil
}

func init() {
	configCmd.AddCommand(configSwitchCmd)
}
