package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"listing_portal/internal/adapters/credentials"
)

func (rt *runtime) tokenCmd() *cobra.Command {
	tok := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored bearer token",
	}
	tok.AddCommand(&cobra.Command{
		Use:   "save <token>",
		Short: "Store a token in TOKEN_FILE and/or redis",
		Args:  cobra.ExactArgs(1),
		RunE:  rt.runTokenSave,
	})
	return tok
}

func (rt *runtime) runTokenSave(cmd *cobra.Command, args []string) error {
	rt.setupLogging(cmd.ErrOrStderr())
	defer rt.close()

	token := strings.TrimSpace(args[0])
	if token == "" {
		return errors.New("token is empty")
	}
	cfg := rt.effective()
	if cfg.TokenFile == "" && cfg.RedisAddr == "" {
		return errors.New("set TOKEN_FILE or REDIS_ADDR to choose where the token is stored")
	}
	if cfg.TokenFile != "" {
		if err := (credentials.File{Path: cfg.TokenFile}).Save(token); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "token written to "+cfg.TokenFile)
	}
	if cfg.RedisAddr != "" {
		r := credentials.NewRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.RedisTokenKey)
		rt.closers = append(rt.closers, r)
		if err := r.Save(cmd.Context(), token); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "token stored in redis key "+cfg.RedisTokenKey)
	}
	return nil
}
