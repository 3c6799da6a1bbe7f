// Package cli implements the sourcectl command line tool: headless access to
// the repository editor and the saved link list.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/log/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ytget/source-editor/internal/links"
	"github.com/ytget/source-editor/internal/logging"
	"github.com/ytget/source-editor/internal/platform"
	"github.com/ytget/source-editor/internal/repository"
	"github.com/ytget/source-editor/internal/store"
)

// Configuration keys, usable as flags, SOURCECTL_* variables or config file
// entries
const (
	KeyConfig    = "config"
	KeyLinksFile = "links-file"
	KeyOutDir    = "out-dir"
	KeyLogLevel  = "log-level"

	EnvPrefix = "SOURCECTL"
	CLIName   = "sourcectl"
)

// BuildInfo is injected via ldflags
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Option configures the root command
type Option func(*env)

// WithClipboard replaces the system clipboard
func WithClipboard(c platform.Clipboard) Option {
	return func(e *env) { e.clipboard = c }
}

// WithBuildInfo sets the version reported by the version command
func WithBuildInfo(info BuildInfo) Option {
	return func(e *env) { e.build = info }
}

// env is the state shared by all subcommands of one invocation
type env struct {
	v         *viper.Viper
	build     BuildInfo
	clipboard platform.Clipboard
	logger    *log.Logger
}

func (e *env) newSession() *repository.Session {
	return repository.NewSession(
		repository.WithClipboard(e.clipboard),
		repository.WithLogger(e.logger),
	)
}

// linkManager opens the link list. A corrupt list is reported on warn and
// replaced by an empty one; its raw value stays under the backup key until the
// next write.
func (e *env) linkManager(warn io.Writer) (*links.Manager, *store.FileStore, error) {
	path := e.v.GetString(KeyLinksFile)
	if path == "" {
		path = store.DefaultPath()
	}
	fs, err := store.NewFileStore(path)
	if err != nil {
		return nil, nil, err
	}
	m := links.NewManager(fs)
	if err := m.Hydrate(); err != nil {
		if !errors.Is(err, links.ErrCorruptStore) {
			return nil, nil, err
		}
		fmt.Fprintf(warn, "warning: %v; starting with an empty list, the unreadable value is kept as %q in %s\n",
			err, links.CorruptStorageKey, fs.Path())
	}
	return m, fs, nil
}

// NewRootCommand builds the sourcectl command tree
func NewRootCommand(opts ...Option) *cobra.Command {
	e := &env{
		v:         viper.New(),
		build:     BuildInfo{Version: "dev", Commit: "none", Date: "unknown"},
		clipboard: platform.SystemClipboard{},
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}

	cmd := &cobra.Command{
		Use:           CLIName,
		Short:         "Edit app repository manifests and manage saved links",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := e.loadConfig(); err != nil {
				return err
			}
			e.logger = logging.New(cmd.ErrOrStderr(), e.v.GetString(KeyLogLevel))
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.String(KeyConfig, "", "path to a YAML config file")
	flags.String(KeyLinksFile, "", "link list file (default "+store.DefaultPath()+")")
	flags.String(KeyOutDir, ".", "directory for written manifests")
	flags.String(KeyLogLevel, logging.DefaultLevel, "log level: debug|info|warn|error")
	_ = e.v.BindPFlags(flags)

	e.v.SetEnvPrefix(EnvPrefix)
	e.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	e.v.AutomaticEnv()

	cmd.AddCommand(newInspectCmd(e))
	cmd.AddCommand(newAttachCmd(e))
	cmd.AddCommand(newResetCmd(e))
	cmd.AddCommand(newCopyCmd(e))
	cmd.AddCommand(newLinksCmd(e))
	cmd.AddCommand(newVersionCmd(e))

	return cmd
}

func (e *env) loadConfig() error {
	path := e.v.GetString(KeyConfig)
	if path == "" {
		return nil
	}
	e.v.SetConfigFile(path)
	e.v.SetConfigType("yaml")
	if err := e.v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}
