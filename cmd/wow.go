package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/bubblehearth/filter"
	"github.com/s0up4200/bubblehearth/wow"
)

var wowRealmFilter string

// wowCmd represents the wow command
var wowCmd = &cobra.Command{
	Use:   "wow",
	Short: "World of Warcraft game data and profiles",
}

var wowItemCmd = &cobra.Command{
	Use:   "item ID",
	Short: "Show an item",
	Args:  cobra.ExactArgs(1),
	RunE:  runWowItem,
}

var wowCharacterCmd = &cobra.Command{
	Use:   "character REALM NAME",
	Short: "Show a character profile summary",
	Args:  cobra.ExactArgs(2),
	RunE:  runWowCharacter,
}

var wowRealmsCmd = &cobra.Command{
	Use:   "realms",
	Short: "List retail realms",
	RunE:  runWowRealms,
}

func init() {
	rootCmd.AddCommand(wowCmd)
	wowCmd.AddCommand(wowItemCmd, wowCharacterCmd, wowRealmsCmd)

	wowRealmsCmd.Flags().StringVarP(&wowRealmFilter, "filter", "f", "", "filter expression or preset name")
}

func runWowItem(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item ID %q", args[0])
	}

	item, err := wow.New(bnetClient).GetItem(cmd.Context(), id)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("item %d not found", id)
	}

	if wantJSON() {
		return printJSON(item)
	}

	fmt.Printf("%s (ID: %d)\n", text(item.Name), item.ID)
	fmt.Printf("- Quality: %s\n", text(item.Quality.Name))
	fmt.Printf("- Class: %s / %s\n", text(item.ItemClass.Name), text(item.ItemSubclass.Name))
	fmt.Printf("- Item level: %d (requires level %d)\n", item.Level, item.RequiredLevel)
	if item.SellPrice > 0 {
		fmt.Printf("- Sells for: %s\n", formatGold(item.SellPrice))
	}
	return nil
}

func runWowCharacter(cmd *cobra.Command, args []string) error {
	character, err := wow.New(bnetClient).GetCharacter(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	if character == nil {
		return fmt.Errorf("character %s on %s not found", args[1], args[0])
	}

	if wantJSON() {
		return printJSON(character)
	}

	fmt.Printf("%s - %s\n", character.Name, text(character.Realm.Name))
	fmt.Printf("- Level %d %s %s\n", character.Level, text(character.Race.Name), text(character.CharacterClass.Name))
	if character.ActiveSpec != nil {
		fmt.Printf("- Spec: %s\n", text(character.ActiveSpec.Name))
	}
	fmt.Printf("- Faction: %s\n", text(character.Faction.Name))
	if character.Guild != nil {
		fmt.Printf("- Guild: <%s>\n", character.Guild.Name)
	}
	fmt.Printf("- Item level: %d equipped, %d average\n", character.EquippedItemLevel, character.AverageItemLevel)
	fmt.Printf("- Achievement points: %d\n", character.AchievementPoints)
	if last := character.LastLogin(); !last.IsZero() {
		fmt.Printf("- Last login: %s\n", last.Format("2006-01-02 15:04"))
	}
	return nil
}

func runWowRealms(cmd *cobra.Command, args []string) error {
	f, err := resolveFilter(wowRealmFilter)
	if err != nil {
		return err
	}

	index, err := wow.New(bnetClient).GetRealms(cmd.Context())
	if err != nil {
		return err
	}

	realms := index.Realms
	if f != nil {
		if realms, err = filter.Apply(f, realms, filter.Realm); err != nil {
			return err
		}
	}

	if wantJSON() {
		return printJSON(realms)
	}

	tw := newTable()
	fmt.Fprintln(tw, "ID\tSLUG\tNAME")
	for _, realm := range realms {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", realm.ID, realm.Slug, text(realm.Name))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nFound %d realms\n", len(realms))
	return nil
}

// formatGold renders a copper amount as gold, silver and copper.
func formatGold(copper int64) string {
	return fmt.Sprintf("%dg %ds %dc", copper/10000, (copper/100)%100, copper%100)
}
