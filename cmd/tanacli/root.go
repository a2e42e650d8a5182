package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tanalabs/tanacoin-client/backend"
	"github.com/tanalabs/tanacoin-client/session"
)

func newRootCmd(app *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "tanacli",
		Short:         "Tanacoin platform client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(app),
		newSignupCmd(app),
		newConnectCmd(app),
		newLinkCmd(app),
		newWalletLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newDashboardCmd(app),
		newTransferCmd(app),
		newPurchaseCmd(app),
		newPriceCmd(app),
		newSupplyCmd(app),
	)
	return root
}

func newLoginCmd(app *app) *cobra.Command {
	var identifier, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with username/email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			destination, err := app.controller.LoginWithCredentials(cmd.Context(), identifier, password)
			if err != nil {
				return err
			}
			displayAppname(app.cfg.GetAppName())
			fmt.Printf("Logged in. Continue at %s\n", destination)
			return nil
		},
	}
	cmd.Flags().StringVarP(&identifier, "user", "u", "", "username or email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSignupCmd(app *app) *cobra.Command {
	var registration backend.Registration

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := app.controller.Signup(cmd.Context(), registration)
			if err != nil {
				return err
			}
			fmt.Printf("Welcome, %s! You can now log in.\n", username)
			return nil
		},
	}
	cmd.Flags().StringVar(&registration.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&registration.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&registration.Username, "username", "", "username")
	cmd.Flags().StringVar(&registration.Email, "email", "", "email address")
	cmd.Flags().StringVar(&registration.Password, "password", "", "password")
	cmd.Flags().StringVar(&registration.ConfirmPassword, "confirm-password", "", "password confirmation")
	cmd.Flags().StringVar(&registration.WalletAddress, "wallet-address", "", "optional wallet address")
	return cmd
}

func newConnectCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Connect a wallet and authenticate with it",
		RunE: func(cmd *cobra.Command, args []string) error {
			destination, err := app.controller.ConnectWallet(cmd.Context())
			if err != nil {
				return err
			}
			state := app.controller.State()
			fmt.Printf("Wallet %s connected (balance %s ETH). Continue at %s\n",
				state.WalletAddress, state.WalletBalance, destination)
			return nil
		},
	}
}

func newLinkCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "link",
		Short: "Link a wallet to the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.controller.LinkWallet(cmd.Context()); err != nil {
				if errors.Is(err, session.ErrNotAuthenticated) {
					return errors.New("log in first, then link your wallet")
				}
				return err
			}
			fmt.Printf("Wallet %s linked to your account.\n", app.controller.State().WalletAddress)
			return nil
		},
	}
}

func newWalletLoginCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "wallet-login",
		Short: "Log in (or sign up) with a wallet address only",
		RunE: func(cmd *cobra.Command, args []string) error {
			registered, err := app.controller.WalletLogin(cmd.Context())
			if err != nil {
				return err
			}
			if registered {
				fmt.Println("Wallet login successful.")
			} else {
				fmt.Println("New wallet account created. You can now log in.")
			}
			return nil
		},
	}
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.controller.Logout()
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := app.controller.State()
			fmt.Printf("State:     %s\n", state.Phase)
			if state.LoggedIn {
				fmt.Printf("User ID:   %d\n", state.UserID)
				fmt.Printf("Superuser: %t\n", state.Superuser)
			}
			if state.WalletConnected {
				fmt.Printf("Wallet:    %s\n", state.WalletAddress)
				if state.WalletBalance != "" {
					fmt.Printf("Balance:   %s ETH\n", state.WalletBalance)
				}
			}
			return nil
		},
	}
}

func newDashboardCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show profile and Tanacoin wallet data",
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard, err := app.controller.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			for _, user := range dashboard.UserData {
				fmt.Printf("Username:      %s\n", user.Username)
				fmt.Printf("Email:         %s\n", user.Email)
				fmt.Printf("TNC Wallet ID: %s\n", user.TncWalletID)
				fmt.Printf("Member since:  %s\n", user.CreatedAt)
			}
			for _, tncWallet := range dashboard.WalletData {
				fmt.Printf("Balance:       %s TNC (wallet %s)\n", tncWallet.Balance, tncWallet.TncWalletUniqueID)
			}
			return nil
		},
	}
}

func newTransferCmd(app *app) *cobra.Command {
	var recipient string
	var amount float64

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Send Tanacoin to another TNC wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := app.controller.Transfer(cmd.Context(), recipient, amount)
			if err != nil {
				return err
			}
			fmt.Println(message)
			return nil
		},
	}
	cmd.Flags().StringVar(&recipient, "to", "", "recipient TNC wallet id")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount of Tanacoin to send")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newPurchaseCmd(app *app) *cobra.Command {
	var amount float64
	var method string

	cmd := &cobra.Command{
		Use:   "purchase",
		Short: "Buy Tanacoin through the connected wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			receipt, err := app.controller.Purchase(cmd.Context(), amount, method)
			if err != nil {
				return err
			}
			fmt.Printf("Purchase submitted: paid %g %s\n", receipt.PaymentAmount, receipt.Method)
			fmt.Printf("Transaction hash:   %s\n", receipt.TxHash)
			return nil
		},
	}
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount of Tanacoin to buy")
	cmd.Flags().StringVar(&method, "method", "ETH", "payment method (ETH)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newPriceCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "price",
		Short: "Show Tanacoin conversion rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := app.backend.TanacoinPrice(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("1 TNC = %g ETH\n", price.ETH)
			fmt.Printf("1 TNC = %g USDT\n", price.USDT)
			return nil
		},
	}
}

func newSupplyCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "supply",
		Short: "Show the total Tanacoin supply",
		RunE: func(cmd *cobra.Command, args []string) error {
			supply, err := app.backend.TokenSupply(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Total supply: %s TNC\n", supply)
			return nil
		},
	}
}
