package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

// bcryptGenerate is swapped out in tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "tradejournal-cli",
		Short: "Trade journal CLI tool",
		Long:  `A command line interface for interacting with the trade journal API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the trade journal API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "JWT access token")

	rootCmd.AddCommand(authCmd())
	rootCmd.AddCommand(journalCmd())
	rootCmd.AddCommand(tradeCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication operations",
	}

	var email, name, password string

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/auth/register", map[string]any{
				"email":    email,
				"name":     name,
				"password": password,
			})
		},
	}
	registerCmd.Flags().StringVar(&email, "email", "", "Email address")
	registerCmd.Flags().StringVar(&name, "name", "", "Display name")
	registerCmd.Flags().StringVar(&password, "password", "", "Password")

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print an access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/auth/login", map[string]any{
				"email":    email,
				"password": password,
			})
		},
	}
	loginCmd.Flags().StringVar(&email, "email", "", "Email address")
	loginCmd.Flags().StringVar(&password, "password", "", "Password")

	meCmd := &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/auth/me", nil)
		},
	}

	cmd.AddCommand(registerCmd, loginCmd, meCmd)
	return cmd
}

func journalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Journal operations",
	}

	var name, balance string

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/journals", map[string]any{
				"name":            name,
				"initial_balance": balance,
			})
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "Journal name")
	createCmd.Flags().StringVar(&balance, "balance", "0", "Initial balance")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List journals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/journals", nil)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <journal-id>",
		Short: "Show a journal with its trades",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/journals/"+args[0], nil)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <journal-id>",
		Short: "Delete a journal and all its trades",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodDelete, "/api/v1/journals/"+args[0], nil)
		},
	}

	cmd.AddCommand(createCmd, listCmd, getCmd, deleteCmd)
	return cmd
}

func tradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade operations",
	}

	var (
		journalID string
		date      string
		symbol    string
		pnl       string
		notes     string
		wins      int
		losses    int
		day       string
	)

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Record a trade",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/journals/"+journalID+"/trades", map[string]any{
				"date":       date,
				"symbol":     symbol,
				"pnl":        pnl,
				"notes":      truncate(notes, 2000),
				"num_wins":   wins,
				"num_losses": losses,
			})
		},
	}
	recordCmd.Flags().StringVar(&journalID, "journal", "", "Journal ID")
	recordCmd.Flags().StringVar(&date, "date", "", "Trade date (RFC 3339)")
	recordCmd.Flags().StringVar(&symbol, "symbol", "", "Instrument symbol")
	recordCmd.Flags().StringVar(&pnl, "pnl", "0", "Profit or loss")
	recordCmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	recordCmd.Flags().IntVar(&wins, "wins", 0, "Win count for a batch record")
	recordCmd.Flags().IntVar(&losses, "losses", 0, "Loss count for a batch record")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a journal's trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/journals/" + journalID + "/trades"
			if day != "" {
				path += "?day=" + day
			}
			return request(http.MethodGet, path, nil)
		},
	}
	listCmd.Flags().StringVar(&journalID, "journal", "", "Journal ID")
	listCmd.Flags().StringVar(&day, "day", "", "Filter to a single day (YYYY-MM-DD)")

	updateCmd := &cobra.Command{
		Use:   "update <trade-id>",
		Short: "Update a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPut, "/api/v1/trades/"+args[0], map[string]any{
				"date":       date,
				"symbol":     symbol,
				"pnl":        pnl,
				"notes":      truncate(notes, 2000),
				"num_wins":   wins,
				"num_losses": losses,
			})
		},
	}
	updateCmd.Flags().StringVar(&date, "date", "", "Trade date (RFC 3339)")
	updateCmd.Flags().StringVar(&symbol, "symbol", "", "Instrument symbol")
	updateCmd.Flags().StringVar(&pnl, "pnl", "0", "Profit or loss")
	updateCmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	updateCmd.Flags().IntVar(&wins, "wins", 0, "Win count for a batch record")
	updateCmd.Flags().IntVar(&losses, "losses", 0, "Loss count for a batch record")

	deleteCmd := &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodDelete, "/api/v1/trades/"+args[0], nil)
		},
	}

	cmd.AddCommand(recordCmd, listCmd, updateCmd, deleteCmd)
	return cmd
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Calendar, statistics and dashboard",
	}

	var journalID, month string

	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the monthly calendar grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, monthPath(journalID, "calendar", month), nil)
		},
	}
	calendarCmd.Flags().StringVar(&journalID, "journal", "", "Journal ID")
	calendarCmd.Flags().StringVar(&month, "month", "", "Month (YYYY-MM, defaults to current)")

	monthCmd := &cobra.Command{
		Use:   "month",
		Short: "Show monthly win/loss statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, monthPath(journalID, "stats", month), nil)
		},
	}
	monthCmd.Flags().StringVar(&journalID, "journal", "", "Journal ID")
	monthCmd.Flags().StringVar(&month, "month", "", "Month (YYYY-MM, defaults to current)")

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the journal dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/journals/"+journalID+"/dashboard", nil)
		},
	}
	dashboardCmd.Flags().StringVar(&journalID, "journal", "", "Journal ID")

	cmd.AddCommand(calendarCmd, monthCmd, dashboardCmd)
	return cmd
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Hash a password with bcrypt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func monthPath(journalID, endpoint, month string) string {
	path := "/api/v1/journals/" + journalID + "/" + endpoint
	if month != "" {
		path += "?month=" + month
	}
	return path
}

// request performs an API call and pretty-prints the JSON response.
func request(method, path string, body any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, truncate(string(data), 500))
	}

	if len(data) == 0 {
		fmt.Printf("OK (status %d)\n", resp.StatusCode)
		return nil
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		fmt.Println(string(data))
		return nil
	}

	printJSON(parsed)
	return nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
