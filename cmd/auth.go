package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/interview-assistant/internal/pages"
	"github.com/ziadkadry99/interview-assistant/internal/ui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in, register and sign out",
	Long: `Manage the session with the interview assistant backend.

The access token and username are stored in the session database
(session.path in the config, ~/.interview/session.db by default).`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	RunE:  runAuthLogin,
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE:  runAuthRegister,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session",
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the signed-in user and backend reachability",
	RunE:  runAuthStatus,
}

var (
	authUsername string
	authEmail    string
	authPassword string
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)

	for _, c := range []*cobra.Command{authLoginCmd, authRegisterCmd} {
		c.Flags().StringVarP(&authUsername, "username", "u", "", "username (prompted when omitted)")
		c.Flags().StringVarP(&authPassword, "password", "p", "", "password (prompted when omitted)")
	}
	authRegisterCmd.Flags().StringVarP(&authEmail, "email", "e", "", "email (prompted when omitted)")
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	username, password := authUsername, authPassword
	if username == "" {
		if username, err = ui.Ask("用户名", "", true); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = ui.Password("密码"); err != nil {
			return err
		}
	}

	ctx, stop := commandContext(cmd)
	defer stop()
	return a.result(pages.NewAuth(a.deps).Login(ctx, username, password))
}

func runAuthRegister(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	in := pages.RegisterInput{Username: authUsername, Email: authEmail, Password: authPassword}
	if in.Username == "" {
		if in.Username, err = ui.Ask("用户名", "", true); err != nil {
			return err
		}
	}
	if in.Email == "" {
		if in.Email, err = ui.Ask("邮箱", "", true); err != nil {
			return err
		}
	}
	if in.Password == "" {
		if in.Password, err = ui.Password("密码"); err != nil {
			return err
		}
		if in.Confirm, err = ui.Password("确认密码"); err != nil {
			return err
		}
	} else {
		in.Confirm = in.Password
	}

	ctx, stop := commandContext(cmd)
	defer stop()
	return a.result(pages.NewAuth(a.deps).Register(ctx, in))
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := pages.NewAuth(a.deps).Logout(cmd.Context(), nil); err != nil {
		return err
	}
	a.printer.Success("已退出登录")
	a.follow()
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := commandContext(cmd)
	defer stop()
	return a.result(pages.NewAuth(a.deps).Status(ctx))
}
