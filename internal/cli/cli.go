// Package cli implements echoctl, the operator tool for the draft library
// and offline track generation.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/Conceptual-Machines/echo-api/internal/config"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/peterbourgon/ff/v3/ffyaml"
)

const envPrefix = "ECHO"

var stdout io.Writer = os.Stdout

// New builds the echoctl command tree
func New(version, commit, date string) *ffcli.Command {
	fs := flag.NewFlagSet("echoctl", flag.ExitOnError)

	return &ffcli.Command{
		ShortUsage: "echoctl [flags] <subcommand>",
		FlagSet:    fs,
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
		Subcommands: []*ffcli.Command{
			newVersionCommand(version, commit, date),
			newDraftsCommand(),
			newGenerateCommand(),
		},
	}
}

func newVersionCommand(version, commit, date string) *ffcli.Command {
	return &ffcli.Command{
		Name:       "version",
		ShortUsage: "echoctl version",
		ShortHelp:  "print version",
		Exec: func(ctx context.Context, args []string) error {
			v := version
			if v == "" {
				if buildInfo, ok := debug.ReadBuildInfo(); ok {
					v = buildInfo.Main.Version
				}
			}
			if v == "" || v == "(devel)" {
				v = "dev"
			}
			versionFields := []string{v}
			if commit != "" {
				versionFields = append(versionFields, commit)
			}
			if date != "" {
				versionFields = append(versionFields, date)
			}
			fmt.Fprintln(stdout, strings.Join(versionFields, " "))
			return nil
		},
	}
}

// dbFlags registers the draft database flags shared by every command
func dbFlags(fs *flag.FlagSet, cfg *config.Config) {
	_ = fs.String("config", "", "config file (optional)")
	fs.StringVar(&cfg.DBType, "db-type", "sqlite", "db type (sqlite, postgres)")
	fs.StringVar(&cfg.DatabaseURL, "db-conn", "drafts.db", "path for sqlite, dsn for postgres")
	fs.BoolVar(&debugSQL, "debug", false, "log sql statements")
}

var debugSQL bool

func options() []ff.Option {
	return []ff.Option{
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ffyaml.Parser),
		ff.WithEnvVarPrefix(envPrefix),
	}
}

func newDraftsCommand() *ffcli.Command {
	return &ffcli.Command{
		Name:       "drafts",
		ShortUsage: "echoctl drafts <list|delete|export|next-title> [flags]",
		ShortHelp:  "manage saved drafts",
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
		Subcommands: []*ffcli.Command{
			newDraftsListCommand(),
			newDraftsDeleteCommand(),
			newDraftsExportCommand(),
			newDraftsNextTitleCommand(),
		},
	}
}

func newDraftsListCommand() *ffcli.Command {
	cmd := "list"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	cfg := &config.Config{}
	dbFlags(fs, cfg)

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: "echoctl drafts list [flags]",
		ShortHelp:  "list drafts, newest first",
		Options:    options(),
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return listDrafts(ctx, cfg)
		},
	}
}

func newDraftsDeleteCommand() *ffcli.Command {
	cmd := "delete"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	cfg := &config.Config{}
	dbFlags(fs, cfg)
	var id string
	fs.StringVar(&id, "id", "", "draft id")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: "echoctl drafts delete -id <draft id>",
		ShortHelp:  "delete a draft",
		Options:    options(),
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return deleteDraft(ctx, cfg, id)
		},
	}
}

func newDraftsExportCommand() *ffcli.Command {
	cmd := "export"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	cfg := &config.Config{}
	dbFlags(fs, cfg)
	var output string
	fs.StringVar(&output, "output", "", "csv file (stdout when empty)")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: "echoctl drafts export [-output drafts.csv]",
		ShortHelp:  "export a csv summary of all drafts",
		Options:    options(),
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return exportDrafts(ctx, cfg, output)
		},
	}
}

func newDraftsNextTitleCommand() *ffcli.Command {
	cmd := "next-title"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	cfg := &config.Config{}
	dbFlags(fs, cfg)
	var base string
	fs.StringVar(&base, "base", "Draft", "title base")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: "echoctl drafts next-title [-base Draft]",
		ShortHelp:  "print the next free draft title",
		Options:    options(),
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return nextTitle(ctx, cfg, base)
		},
	}
}

func newGenerateCommand() *ffcli.Command {
	cmd := "generate"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	cfg := &config.Config{}
	dbFlags(fs, cfg)
	var draftID string
	fs.StringVar(&draftID, "draft", "", "draft id")
	fs.StringVar(&cfg.ElevenLabsAPIKey, "elevenlabs-key", "", "elevenlabs api key")
	fs.StringVar(&cfg.ElevenLabsURL, "elevenlabs-url", "", "elevenlabs music endpoint")
	fs.StringVar(&cfg.AudioStore, "audio-store", "local", "where tracks go (local, s3)")
	fs.StringVar(&cfg.AudioOutputDir, "audio-dir", "assets/audio/generated", "output folder for local tracks")
	fs.StringVar(&cfg.AudioS3Bucket, "s3-bucket", "", "s3 bucket")
	fs.StringVar(&cfg.AudioS3Region, "s3-region", "us-east-1", "s3 region")
	fs.StringVar(&cfg.AudioS3Key, "s3-key", "", "s3 access key")
	fs.StringVar(&cfg.AudioS3Secret, "s3-secret", "", "s3 secret key")
	fs.DurationVar(&cfg.AudioTimeout, "timeout", 120*time.Second, "vendor request timeout")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: "echoctl generate -draft <draft id> [flags]",
		ShortHelp:  "generate a track for a saved draft",
		Options:    options(),
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return generate(ctx, cfg, draftID)
		},
	}
}
