package main

import (
	"os"
	"path/filepath"

	"github.com/mholzen/wunderlist-backup/pkg/client"
	"github.com/mholzen/wunderlist-backup/pkg/wunderlist"
	"github.com/urfave/cli/v3"
)

var defaultConfigFile string

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return
	}
	defaultConfigFile = filepath.Join(homeDir, ".wunderlist", "config.toml")
}

func getLogLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "log-level",
		Value: "info",
		Usage: "Log level: debug, info, warn, error",
	}
}

func getCredentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "access-token",
			Usage: "Access token (overrides " + wunderlist.AccessTokenEnv + " env var)",
		},
		&cli.StringFlag{
			Name:  "client-id",
			Usage: "Client ID (overrides " + wunderlist.ClientIDEnv + " env var)",
		},
		&cli.StringFlag{
			Name:  "config",
			Value: defaultConfigFile,
			Usage: "Path to TOML file with access_token and client_id",
		},
	}
}

func getExportFlags() []cli.Flag {
	flags := []cli.Flag{
		getLogLevelFlag(),
		&cli.StringFlag{
			Name:  "base-url",
			Value: wunderlist.DefaultBaseURL,
			Usage: "API base URL",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Value: client.DefaultTimeout,
			Usage: "HTTP request timeout",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write the backup to a file, or into a directory as wunderlist-<time>.json (default: stdout)",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Indent JSON output (default: when stdout is a terminal)",
		},
		&cli.BoolFlag{
			Name:  "all-kinds",
			Usage: "Also export memberships, task comments and webhooks",
		},
	}
	flags = append(flags, getCredentialFlags()...)
	return flags
}

// resolveCredentials applies flags, then environment, then config file, per field
func resolveCredentials(cmd *cli.Command) (wunderlist.Credentials, error) {
	fromFlags := wunderlist.Credentials{
		AccessToken: cmd.String("access-token"),
		ClientID:    cmd.String("client-id"),
	}
	fromEnv := wunderlist.CredentialsFromEnv(os.LookupEnv)
	fromFile, err := wunderlist.LoadCredentialsFile(cmd.String("config"))
	if err != nil {
		return wunderlist.Credentials{}, err
	}
	return fromFlags.Or(fromEnv).Or(fromFile).Validate()
}
