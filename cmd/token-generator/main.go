// Package main implements token-generator, which issues an access token for
// the dictionary write routes using the configured JWT secret.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phrazzld/wordsplit/internal/config"
	"github.com/phrazzld/wordsplit/internal/service/auth"
)

func main() {
	subject := flag.String("subject", "cli", "subject (client name) recorded in the token")
	scopes := flag.String("scopes", auth.ScopeWrite, "comma-separated scopes to grant")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "token-generator: %v\n", err)
		os.Exit(1)
	}

	if err := generate(context.Background(), cfg.Auth, *subject, *scopes, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "token-generator: %v\n", err)
		os.Exit(1)
	}
}

// generate writes a signed token for subject to out.
func generate(ctx context.Context, authCfg config.AuthConfig, subject, scopes string, out io.Writer) error {
	jwtService, err := auth.NewJWTService(authCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	var granted []string
	for _, s := range strings.Split(scopes, ",") {
		if s = strings.TrimSpace(s); s != "" {
			granted = append(granted, s)
		}
	}

	token, err := jwtService.GenerateToken(ctx, subject, granted...)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	_, err = fmt.Fprintln(out, token)
	return err
}
