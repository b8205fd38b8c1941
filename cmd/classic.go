package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/bubblehearth/blizzard"
	"github.com/s0up4200/bubblehearth/classic"
	"github.com/s0up4200/bubblehearth/filter"
)

// maxRegionConcurrency bounds parallel requests when several regions are queried.
const maxRegionConcurrency = 3

var (
	realmFilter    string
	realmRegions   []string
	searchTimezone string
	searchOrderBy  string
	searchPage     int
)

// classicCmd represents the classic command
var classicCmd = &cobra.Command{
	Use:   "classic",
	Short: "WoW Classic game data",
}

var classicRealmsCmd = &cobra.Command{
	Use:   "realms",
	Short: "List WoW Classic realms",
	Long: `List the realm index for one or more regions. Use --regions to query several
regions at once and --filter to narrow the result with an expression or a preset,
for example --filter 'Name startsWith "G"'.`,
	RunE: runClassicRealms,
}

var classicRealmCmd = &cobra.Command{
	Use:   "realm SLUG",
	Short: "Show a single WoW Classic realm",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassicRealm,
}

var classicSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search WoW Classic realms by timezone",
	RunE:  runClassicSearch,
}

var classicRegionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List WoW Classic regions",
	RunE:  runClassicRegions,
}

var classicRegionCmd = &cobra.Command{
	Use:   "region ID",
	Short: "Show a single WoW Classic region",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassicRegion,
}

func init() {
	rootCmd.AddCommand(classicCmd)
	classicCmd.AddCommand(classicRealmsCmd, classicRealmCmd, classicSearchCmd, classicRegionsCmd, classicRegionCmd)

	classicRealmsCmd.Flags().StringVarP(&realmFilter, "filter", "f", "", "filter expression or preset name")
	classicRealmsCmd.Flags().StringSliceVar(&realmRegions, "regions", nil, "comma separated regions to query (default is --region)")

	classicSearchCmd.Flags().StringVar(&searchTimezone, "timezone", "", "realm timezone, e.g. America/New_York")
	classicSearchCmd.Flags().StringVar(&searchOrderBy, "order-by", "", "sort field, e.g. id or name.en_US")
	classicSearchCmd.Flags().IntVar(&searchPage, "page", 1, "result page")
	classicSearchCmd.Flags().StringVarP(&realmFilter, "filter", "f", "", "filter expression or preset name")
}

// regionRealms is the realm index of one region.
type regionRealms struct {
	Region blizzard.Region `json:"region"`
	Realms []classic.Realm `json:"realms"`
}

func runClassicRealms(cmd *cobra.Command, args []string) error {
	f, err := resolveFilter(realmFilter)
	if err != nil {
		return err
	}

	regions, err := parseRegions(realmRegions)
	if err != nil {
		return err
	}

	results, err := fetchRealmsByRegion(cmd.Context(), regions)
	if err != nil {
		return err
	}

	for i := range results {
		if f == nil {
			continue
		}
		results[i].Realms, err = filter.Apply(f, results[i].Realms, filter.ClassicRealm)
		if err != nil {
			return err
		}
	}

	if wantJSON() {
		return printJSON(results)
	}

	tw := newTable()
	fmt.Fprintln(tw, "REGION\tID\tSLUG\tNAME")
	var total int
	for _, r := range results {
		for _, realm := range r.Realms {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", r.Region, realm.ID, realm.Slug, text(realm.Name))
			total++
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nFound %d realms\n", total)
	return nil
}

// fetchRealmsByRegion queries each region concurrently, keeping the given order.
func fetchRealmsByRegion(ctx context.Context, regions []blizzard.Region) ([]regionRealms, error) {
	results := make([]regionRealms, len(regions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxRegionConcurrency)

	for i, region := range regions {
		g.Go(func() error {
			client := bnetClient
			if region != bnetClient.Region() {
				var err error
				client, err = newBattleNetClient(region)
				if err != nil {
					return err
				}
			}

			index, err := classic.New(client).GetRealms(ctx)
			if err != nil {
				return fmt.Errorf("region %s: %w", region, err)
			}

			logger.Debug().Str("region", string(region)).Int("realms", len(index.Realms)).Msg("Fetched realm index")
			results[i] = regionRealms{Region: region, Realms: index.Realms}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// parseRegions defaults to the configured region.
func parseRegions(values []string) ([]blizzard.Region, error) {
	if len(values) == 0 {
		return []blizzard.Region{bnetClient.Region()}, nil
	}

	seen := make(map[blizzard.Region]bool, len(values))
	regions := make([]blizzard.Region, 0, len(values))
	for _, v := range values {
		region, err := blizzard.ParseRegion(v)
		if err != nil {
			return nil, err
		}
		if seen[region] {
			continue
		}
		seen[region] = true
		regions = append(regions, region)
	}
	return regions, nil
}

func runClassicRealm(cmd *cobra.Command, args []string) error {
	realm, err := classic.New(bnetClient).GetRealm(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if realm == nil {
		return fmt.Errorf("realm %q not found in region %s", args[0], bnetClient.Region())
	}

	if wantJSON() {
		return printJSON(realm)
	}

	fmt.Printf("%s (%s)\n", text(realm.Name), realm.Slug)
	fmt.Printf("- ID: %d\n", realm.ID)
	fmt.Printf("- Category: %s\n", text(realm.Category))
	fmt.Printf("- Locale: %s\n", realm.Locale)
	fmt.Printf("- Timezone: %s\n", realm.Timezone)
	if realm.Type != nil {
		fmt.Printf("- Type: %s\n", text(realm.Type.Name))
	}
	if realm.Region != nil {
		fmt.Printf("- Region: %s\n", text(realm.Region.Name))
	}
	if realm.IsTournament {
		fmt.Println("- Tournament realm")
	}
	return nil
}

func runClassicSearch(cmd *cobra.Command, args []string) error {
	f, err := resolveFilter(realmFilter)
	if err != nil {
		return err
	}

	result, err := classic.New(bnetClient).SearchRealms(cmd.Context(), classic.RealmSearch{
		Timezone: blizzard.Timezone(searchTimezone),
		OrderBy:  searchOrderBy,
		Page:     searchPage,
	})
	if err != nil {
		return err
	}

	realms := make([]classic.Realm, 0, len(result.Results))
	for _, item := range result.Results {
		realms = append(realms, item.Data)
	}
	if f != nil {
		if realms, err = filter.Apply(f, realms, filter.ClassicRealm); err != nil {
			return err
		}
	}

	if wantJSON() {
		return printJSON(realms)
	}

	tw := newTable()
	fmt.Fprintln(tw, "ID\tSLUG\tNAME\tTIMEZONE\tTYPE")
	for _, realm := range realms {
		realmType := ""
		if realm.Type != nil {
			realmType = realm.Type.Type
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", realm.ID, realm.Slug, text(realm.Name), realm.Timezone, realmType)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nPage %d of %d", result.Page, result.PageCount)
	if result.HasMorePages() {
		fmt.Printf(" (use --page %d for more)", result.Page+1)
	}
	fmt.Println()
	return nil
}

func runClassicRegions(cmd *cobra.Command, args []string) error {
	index, err := classic.New(bnetClient).GetRegions(cmd.Context())
	if err != nil {
		return err
	}

	if wantJSON() {
		return printJSON(index)
	}

	for _, link := range index.Regions {
		fmt.Printf("• %s\n", link.Href)
	}
	return nil
}

func runClassicRegion(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid region ID %q", args[0])
	}

	region, err := classic.New(bnetClient).GetRegion(cmd.Context(), id)
	if err != nil {
		return err
	}
	if region == nil {
		return fmt.Errorf("region %d not found", id)
	}

	if wantJSON() {
		return printJSON(region)
	}

	fmt.Printf("%s (ID: %d)\n", text(region.Name), region.ID)
	fmt.Printf("- Tag: %s\n", strings.ToUpper(region.Tag))
	if region.PatchString != "" {
		fmt.Printf("- Patch: %s\n", region.PatchString)
	}
	return nil
}
