package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the content-lake connection and behaviour defaults.

Settings live in ~/.lakeview/config.toml. The LAKEVIEW_ENDPOINT,
LAKEVIEW_DATASET and LAKEVIEW_TOKEN environment variables override the
file, and a .env file in the working directory is honoured.`,
	RunE: runSettingsList,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all settings",
	RunE:  runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set one setting",
	Long: `Sets a setting by dot-notation key and persists it immediately.

Run 'lakeview settings list' for the available keys. When the value is
omitted for connection.token, the token is read without echo.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsList(cmd *cobra.Command, _ []string) error {
	cmd.Println(headerStyle.Render("Settings"))
	cmd.Printf("%s %s\n\n", labelStyle.Render("file:"), configStore.Path())

	for _, key := range configStore.Keys() {
		value, _ := configStore.Get(key)
		if key == "connection.token" {
			value = maskToken(value)
		}
		if value == "" {
			value = labelStyle.Render("(not set)")
		}
		cmd.Printf("  %-24s %s\n", key, value)
	}

	settings := configStore.Settings()
	cmd.Println()
	if settings.Connection.IsConfigured() {
		cmd.Println("Connection is configured.")
	} else {
		cmd.Println("Connection is not configured. Set connection.endpoint and connection.dataset.")
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown setting %q", args[0])
	}
	if args[0] == "connection.token" {
		value = maskToken(value)
	}
	cmd.Println(value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key := args[0]

	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case key == "connection.token":
		cmd.Print("Enter token: ")
		value = readSecret()
		cmd.Println()
	default:
		return fmt.Errorf("a value is required for %s", key)
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

//nolint:errcheck // CLI helper, error ignored for UX
func readSecret() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(secret)
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
