package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/bubblehearth/filter"
	"github.com/s0up4200/bubblehearth/hearthstone"
)

var (
	cardSet      string
	cardClass    string
	cardMana     []int
	cardPage     int
	cardPageSize int
	cardAll      bool
	cardFilter   string
	cardSort     string
)

// hearthstoneCmd represents the hearthstone command
var hearthstoneCmd = &cobra.Command{
	Use:     "hearthstone",
	Aliases: []string{"hs"},
	Short:   "Hearthstone card data",
}

var hearthstoneCardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Search Hearthstone cards",
	Long: `Search cards by set, class and mana cost. Use --all to fetch every page and
--filter for anything the API cannot express, for example
--filter 'hasKeyword(1) and Attack >= 3'.`,
	RunE: runHearthstoneCards,
}

var hearthstoneCardCmd = &cobra.Command{
	Use:   "card ID",
	Short: "Show a single card by ID or slug",
	Args:  cobra.ExactArgs(1),
	RunE:  runHearthstoneCard,
}

func init() {
	rootCmd.AddCommand(hearthstoneCmd)
	hearthstoneCmd.AddCommand(hearthstoneCardsCmd, hearthstoneCardCmd)

	flags := hearthstoneCardsCmd.Flags()
	flags.StringVar(&cardSet, "set", "", "card set slug, e.g. classic-cards")
	flags.StringVar(&cardClass, "class", "", "class slug, e.g. mage")
	flags.IntSliceVar(&cardMana, "mana", nil, "mana costs, e.g. --mana 1,2,3")
	flags.StringVar(&cardSort, "sort", "", "sort order, e.g. manaCost:asc")
	flags.IntVar(&cardPage, "page", 0, "result page")
	flags.IntVar(&cardPageSize, "page-size", 0, "results per page (max 500)")
	flags.BoolVar(&cardAll, "all", false, "fetch every page")
	flags.StringVarP(&cardFilter, "filter", "f", "", "filter expression or preset name")
}

func runHearthstoneCards(cmd *cobra.Command, args []string) error {
	f, err := resolveFilter(cardFilter)
	if err != nil {
		return err
	}

	query, err := hearthstone.NewCardSearchQueryBuilder().
		WithSet(cardSet).
		WithClass(cardClass).
		WithManaCost(cardMana...).
		WithSort(cardSort, "").
		WithPage(cardPage).
		WithPageSize(cardPageSize).
		Build()
	if err != nil {
		return err
	}

	client := hearthstone.New(bnetClient)

	var cards []hearthstone.Card
	var footer string
	if cardAll {
		cards, err = client.SearchAllCards(cmd.Context(), query)
		if err != nil {
			return err
		}
	} else {
		result, err := client.SearchCards(cmd.Context(), query)
		if err != nil {
			return err
		}
		cards = result.Cards
		footer = fmt.Sprintf("Page %d of %d, %d cards in total", result.Page, result.PageCount, result.CardCount)
		if result.HasMorePages() {
			footer += " (use --all to fetch every page)"
		}
	}

	if f != nil {
		if cards, err = filter.Apply(f, cards, filter.Card); err != nil {
			return err
		}
	}

	if wantJSON() {
		return printJSON(cards)
	}

	tw := newTable()
	fmt.Fprintln(tw, "ID\tMANA\tATK\tHP\tNAME")
	for _, card := range cards {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", card.ID, card.ManaCost, optionalStat(card.Attack), optionalStat(card.Health), text(card.Name))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nShowing %d cards\n", len(cards))
	if footer != "" {
		fmt.Println(footer)
	}
	return nil
}

func runHearthstoneCard(cmd *cobra.Command, args []string) error {
	card, err := hearthstone.New(bnetClient).GetCard(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if card == nil {
		return fmt.Errorf("card %q not found", args[0])
	}

	if wantJSON() {
		return printJSON(card)
	}

	fmt.Printf("%s (ID: %d, %s)\n", text(card.Name), card.ID, card.Slug)
	fmt.Printf("- Mana: %d", card.ManaCost)
	if card.Attack > 0 || card.Health > 0 {
		fmt.Printf(", %d/%d", card.Attack, card.Health)
	}
	fmt.Println()
	if t := text(card.Text); t != "" {
		fmt.Printf("- Text: %s\n", t)
	}
	if flavor := text(card.FlavorText); flavor != "" {
		fmt.Printf("- Flavor: %s\n", flavor)
	}
	if card.ArtistName != "" {
		fmt.Printf("- Artist: %s\n", card.ArtistName)
	}
	fmt.Printf("- Collectible: %t\n", card.IsCollectible())
	return nil
}

func optionalStat(v int) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprint(v)
}
