package client

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/age-toolbox/internal/entities"
	v1 "github.com/KirkDiggler/age-toolbox/internal/handlers/api/v1"
)

var (
	rollBonus   int
	rollTarget  int
	rollSession string
	rollCount   int
	clearRolls  bool
)

var pingCmd = &cobra.Command{
	Use:   "test",
	Short: "Check the server is reachable",
	RunE:  runPing,
}

var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Roll 3d6 the AGE way",
	Long: `Roll two blue dice and the red stunt die. Examples:

  roll --bonus 2
  roll --bonus 3 --target 13
  roll --session table_1 --count 3`,
	RunE: runRoll,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the recent rolls of a session",
	RunE:  runHistory,
}

func init() {
	rollCmd.Flags().IntVar(&rollBonus, "bonus", 0, "Ability plus focus bonus")
	rollCmd.Flags().IntVar(&rollTarget, "target", 0, "Target number; omit for an open roll")
	rollCmd.Flags().StringVar(&rollSession, "session", "", "Session whose history records the roll")
	rollCmd.Flags().IntVar(&rollCount, "count", 1, "Number of rolls")

	historyCmd.Flags().StringVar(&rollSession, "session", "", "Session to read")
	historyCmd.Flags().BoolVar(&clearRolls, "clear", false, "Clear the session history instead")
}

func runPing(_ *cobra.Command, _ []string) error {
	ctx, cancel := withTimeout()
	defer cancel()

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if _, err := newAPIClient().do(ctx, http.MethodGet, "/api/test", nil, &resp); err != nil {
		return report(err)
	}

	fmt.Println(success.Render(resp.Status) + "  " + resp.Message)
	return nil
}

func runRoll(cmd *cobra.Command, _ []string) error {
	if rollCount < 1 {
		return fmt.Errorf("count must be at least 1")
	}

	req := v1.RollDiceRequest{Bonus: rollBonus, SessionID: rollSession}
	if cmd.Flags().Changed("target") {
		target := rollTarget
		req.Target = &target
	}

	client := newAPIClient()
	for i := 0; i < rollCount; i++ {
		ctx, cancel := withTimeout()
		var roll entities.DiceRollResult
		_, err := client.do(ctx, http.MethodPost, "/api/roll_dice", req, &roll)
		cancel()
		if err != nil {
			return report(err)
		}
		fmt.Println(renderRoll(&roll))
	}
	return nil
}

func runHistory(_ *cobra.Command, _ []string) error {
	ctx, cancel := withTimeout()
	defer cancel()

	path := "/api/roll_history"
	if rollSession != "" {
		path += "?" + url.Values{"session_id": {rollSession}}.Encode()
	}

	client := newAPIClient()
	if clearRolls {
		var resp v1.ClearHistoryResponse
		if _, err := client.do(ctx, http.MethodDelete, path, nil, &resp); err != nil {
			return report(err)
		}
		fmt.Printf("Cleared %d rolls\n", resp.RollsCleared)
		return nil
	}

	var resp v1.HistoryResponse
	if _, err := client.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return report(err)
	}

	if len(resp.Rolls) == 0 {
		fmt.Println(muted.Render("No rolls yet"))
		return nil
	}

	fmt.Println(heading.Render(fmt.Sprintf("Last %d rolls", len(resp.Rolls))))
	for _, roll := range resp.Rolls {
		fmt.Println(renderRoll(roll))
	}
	return nil
}
