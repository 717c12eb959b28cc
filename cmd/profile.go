package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/interview-assistant/internal/pages"
	"github.com/ziadkadry99/interview-assistant/internal/ui"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the account and change its password",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := commandContext(cmd)
		defer stop()
		return a.result(pages.NewProfile(a.deps).Show(ctx))
	},
}

var profilePasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change the account password",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		current, err := ui.Password("当前密码")
		if err != nil {
			return err
		}
		next, err := ui.Password("新密码")
		if err != nil {
			return err
		}
		confirm, err := ui.Password("确认新密码")
		if err != nil {
			return err
		}

		ctx, stop := commandContext(cmd)
		defer stop()
		return a.result(pages.NewProfile(a.deps).ChangePassword(ctx, current, next, confirm))
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profilePasswordCmd)
}
