package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/renovation-quoter/internal/config"
	"github.com/jonathan/renovation-quoter/internal/server"
)

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Issue an API token for an estimator",
	Long:  "Sign a token with JWT_SECRET that authorizes feedback recording through the API.",
	RunE:  runIssueToken,
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Hash an operator password for OPERATOR_PASSWORD_HASH",
	Long:  "Read a password from --password, OPERATOR_PASSWORD or the first line of stdin and print its bcrypt hash.",
	RunE:  runHashPassword,
}

var (
	tokenUsername string
	passwordValue string
)

func init() {
	issueTokenCmd.Flags().StringVar(&tokenUsername, "username", config.DefaultOperatorUsername, "Estimator the token is issued to")
	hashPasswordCmd.Flags().StringVar(&passwordValue, "password", "", "Password to hash (prefer stdin)")
	rootCmd.AddCommand(issueTokenCmd, hashPasswordCmd)
}

func runIssueToken(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	jwtCfg, err := cfg.JWT()
	if err != nil {
		return err
	}

	token, expiresAt, err := server.NewJWTService(jwtCfg).GenerateToken(server.EstimatorID(tokenUsername), tokenUsername)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Expires at %s\n", expiresAt.UTC().Format("2006-01-02 15:04:05 MST"))
	return nil
}

func runHashPassword(cmd *cobra.Command, _ []string) error {
	operator, err := config.NewOperatorConfig()
	if err != nil {
		return err
	}

	password := passwordValue
	if password == "" {
		password = os.Getenv("OPERATOR_PASSWORD")
	}
	if password == "" {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read password from stdin: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return fmt.Errorf("password is empty")
	}

	hash, err := operator.HashPassword(password)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
