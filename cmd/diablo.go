package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/bubblehearth/diablo"
)

// diabloCmd represents the diablo command
var diabloCmd = &cobra.Command{
	Use:     "diablo",
	Aliases: []string{"d3"},
	Short:   "Diablo III game data",
}

var diabloActsCmd = &cobra.Command{
	Use:   "acts [ID]",
	Short: "List Diablo III acts, or show the quests of one act",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDiabloActs,
}

func init() {
	rootCmd.AddCommand(diabloCmd)
	diabloCmd.AddCommand(diabloActsCmd)
}

func runDiabloActs(cmd *cobra.Command, args []string) error {
	client := diablo.New(bnetClient)

	if len(args) == 1 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid act ID %q", args[0])
		}

		act, err := client.GetAct(cmd.Context(), id)
		if err != nil {
			return err
		}
		if act == nil {
			return fmt.Errorf("act %d not found", id)
		}
		if wantJSON() {
			return printJSON(act)
		}

		fmt.Printf("Act %d: %s\n", act.Number, act.Name)
		for _, quest := range act.Quests {
			fmt.Printf("  • %s\n", quest.Name)
		}
		return nil
	}

	index, err := client.GetActs(cmd.Context())
	if err != nil {
		return err
	}
	if wantJSON() {
		return printJSON(index)
	}

	for _, act := range index.Acts {
		fmt.Printf("Act %d: %s (%d quests)\n", act.Number, act.Name, len(act.Quests))
	}
	return nil
}
