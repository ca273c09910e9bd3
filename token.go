package main

import (
	"errors"
	"fmt"
	"io"

	"queuedesk/config"
	"queuedesk/utils"

	"github.com/spf13/pflag"
)

// issueToken prints a signed operator token for the operator routes.
func issueToken(args []string, out io.Writer) error {
	var (
		subject    string
		commerceID string
		ttl        = config.OperatorTokenDuration()
	)
	flagSet := pflag.NewFlagSet("issue-token", pflag.ContinueOnError)
	flagSet.SetOutput(out)
	flagSet.StringVar(&subject, "subject", "", "operator id placed in the sub claim")
	flagSet.StringVar(&commerceID, "commerce", "", "commerce the operator belongs to")
	flagSet.DurationVar(&ttl, "ttl", ttl, "token lifetime")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if subject == "" {
		return errors.New("issue-token: --subject is required")
	}
	if config.AppConfig.JWTSecret == "" {
		return errors.New("issue-token: JWT_SECRET is not configured")
	}
	if ttl <= 0 {
		return fmt.Errorf("issue-token: ttl must be positive, got %s", ttl)
	}

	token, err := utils.GenerateToken(subject, commerceID, ttl)
	if err != nil {
		return fmt.Errorf("issue-token: failed to sign token: %w", err)
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
