package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/espd/espd-web/backend/go-services/internal/tokens"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	tokenSub string
	tokenTTL time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an HS256 access token for the ESPD API",
	Long: `Issue an access token signed with the shared secret the API verifies
(JWT_SECRET on the server). The secret is read from --secret or ESPD_JWT_SECRET.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := viper.GetString("jwt_secret")
		if secret == "" {
			return errors.New("no signing secret: set --secret or ESPD_JWT_SECRET")
		}
		if tokenSub == "" {
			return errors.New("--sub is required")
		}
		tok, err := tokens.GenerateAccessToken(secret, tokenSub, tokenTTL)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
		return err
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVar(&tokenSub, "sub", "", "token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 15*time.Minute, "token lifetime")
	tokenCmd.Flags().String("secret", "", "HS256 signing secret")
	_ = viper.BindPFlag("jwt_secret", tokenCmd.Flags().Lookup("secret"))
}
