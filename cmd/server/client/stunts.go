package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/age-toolbox/internal/entities"
	"github.com/KirkDiggler/age-toolbox/internal/errors"
	v1 "github.com/KirkDiggler/age-toolbox/internal/handlers/api/v1"
)

var (
	listCostMax    int
	listCategories []string
	listSettings   []string
	listSearch     string

	stuntName        string
	stuntCost        string
	stuntCategory    string
	stuntDescription string
	stuntSetting     string
)

var stuntsCmd = &cobra.Command{
	Use:   "stunts",
	Short: "Browse and edit the stunt catalog",
}

var listStuntsCmd = &cobra.Command{
	Use:   "list",
	Short: "List stunts, optionally filtered",
	Long: `List stunts from the catalog. Filters combine. Examples:

  stunts list --cost-max 3
  stunts list --category Combat --category Social
  stunts list --setting Gritty --search rope`,
	Args: cobra.NoArgs,
	RunE: runListStunts,
}

var getStuntCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one stunt",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetStunt,
}

var addStuntCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a stunt to the catalog",
	Args:  cobra.NoArgs,
	RunE:  runAddStunt,
}

var updateStuntCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Change fields of a stunt; only the flags given are sent",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdateStunt,
}

var deleteStuntCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Remove a stunt",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteStunt,
}

var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "List the categories and settings in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runFacets,
}

func init() {
	listStuntsCmd.Flags().IntVar(&listCostMax, "cost-max", 0, "Highest minimum cost to include")
	listStuntsCmd.Flags().StringArrayVar(&listCategories, "category", nil, "Categories to include")
	listStuntsCmd.Flags().StringArrayVar(&listSettings, "setting", nil, "Settings to include")
	listStuntsCmd.Flags().StringVar(&listSearch, "search", "", "Text to find in name or description")

	for _, cmd := range []*cobra.Command{addStuntCmd, updateStuntCmd} {
		cmd.Flags().StringVar(&stuntName, "name", "", "Stunt name")
		cmd.Flags().StringVar(&stuntCost, "cost", "", `Cost such as "2", "1-3" or "4+"`)
		cmd.Flags().StringVar(&stuntCategory, "category", "", "Stunt category")
		cmd.Flags().StringVar(&stuntDescription, "description", "", "Rules text")
		cmd.Flags().StringVar(&stuntSetting, "setting", "", `Setting; empty or "Universal" for all`)
	}
	for _, flag := range []string{"name", "cost", "category", "description"} {
		_ = addStuntCmd.MarkFlagRequired(flag) // nolint:errcheck // safe to ignore in init
	}

	stuntsCmd.AddCommand(listStuntsCmd)
	stuntsCmd.AddCommand(getStuntCmd)
	stuntsCmd.AddCommand(addStuntCmd)
	stuntsCmd.AddCommand(updateStuntCmd)
	stuntsCmd.AddCommand(deleteStuntCmd)
	stuntsCmd.AddCommand(facetsCmd)
}

func runListStunts(cmd *cobra.Command, _ []string) error {
	ctx, cancel := withTimeout()
	defer cancel()

	query := url.Values{}
	if cmd.Flags().Changed("cost-max") {
		query.Set("cost_max", strconv.Itoa(listCostMax))
	}
	for _, c := range listCategories {
		query.Add("category", c)
	}
	for _, s := range listSettings {
		query.Add("setting", s)
	}
	if listSearch != "" {
		query.Set("search", listSearch)
	}

	path := "/api/stunts"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var stunts []*entities.Stunt
	header, err := newAPIClient().do(ctx, http.MethodGet, path, nil, &stunts)
	if err != nil {
		return report(err)
	}

	fmt.Println(heading.Render(fmt.Sprintf("%4s  %-28s %-6s %-12s %s", "ID", "Name", "Cost", "Category", "Setting")))
	for _, s := range stunts {
		fmt.Println(renderStuntRow(s))
	}
	fmt.Println(muted.Render(fmt.Sprintf("%d of %s stunts", len(stunts), header.Get(v1.HeaderTotalCount))))
	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid stunt id %q", arg)
	}
	return id, nil
}

func runGetStunt(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout()
	defer cancel()

	var s entities.Stunt
	if _, err := newAPIClient().do(ctx, http.MethodGet, fmt.Sprintf("/api/stunts/%d", id), nil, &s); err != nil {
		return report(err)
	}

	fmt.Println(renderStunt(&s))
	return nil
}

// stuntRequest builds a request from the flags that were set
func stuntRequest(cmd *cobra.Command) v1.StuntRequest {
	var req v1.StuntRequest
	flags := cmd.Flags()
	if flags.Changed("name") {
		req.Name = &stuntName
	}
	if flags.Changed("cost") {
		cost := entities.Cost(stuntCost)
		req.Cost = &cost
	}
	if flags.Changed("category") {
		req.Category = &stuntCategory
	}
	if flags.Changed("description") {
		req.Description = &stuntDescription
	}
	if flags.Changed("setting") {
		req.Setting = &stuntSetting
	}
	return req
}

func runAddStunt(cmd *cobra.Command, _ []string) error {
	ctx, cancel := withTimeout()
	defer cancel()

	var s entities.Stunt
	if _, err := newAPIClient().do(ctx, http.MethodPost, "/api/stunts", stuntRequest(cmd), &s); err != nil {
		return report(err)
	}

	fmt.Println(success.Render("Created"))
	fmt.Println(renderStunt(&s))
	return nil
}

func runUpdateStunt(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout()
	defer cancel()

	var s entities.Stunt
	path := fmt.Sprintf("/api/stunts/%d", id)
	if _, err := newAPIClient().do(ctx, http.MethodPatch, path, stuntRequest(cmd), &s); err != nil {
		return report(err)
	}

	fmt.Println(success.Render("Updated"))
	fmt.Println(renderStunt(&s))
	return nil
}

func runDeleteStunt(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout()
	defer cancel()

	var resp v1.MessageResponse
	if _, err := newAPIClient().do(ctx, http.MethodDelete, fmt.Sprintf("/api/stunts/%d", id), nil, &resp); err != nil {
		return report(err)
	}

	fmt.Println(resp.Message)
	return nil
}

func runFacets(_ *cobra.Command, _ []string) error {
	ctx, cancel := withTimeout()
	defer cancel()

	var resp v1.FacetsResponse
	if _, err := newAPIClient().do(ctx, http.MethodGet, "/api/stunts/facets", nil, &resp); err != nil {
		return report(err)
	}

	fmt.Println(heading.Render("Categories"))
	for _, c := range resp.Categories {
		fmt.Println("  " + c)
	}
	fmt.Println(heading.Render("Settings"))
	fmt.Println("  " + entities.SettingUniversal)
	for _, s := range resp.Settings {
		fmt.Println("  " + s)
	}
	return nil
}

// report prints validation details before handing the error back to cobra
func report(err error) error {
	if details := renderDetails(errors.GetMeta(err)["validation_errors"]); details != "" {
		fmt.Print(details)
	}
	return err
}
