package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ytget/source-editor/internal/model"
	"github.com/ytget/source-editor/internal/platform"
	"github.com/ytget/source-editor/internal/repository"
	"github.com/ytget/source-editor/internal/store"
)

// ErrResetDeclined is returned when reset is not confirmed
var ErrResetDeclined = errors.New("reset declined")

// ErrCopyFailed is returned when the manifest could not be copied
var ErrCopyFailed = errors.New("copy to clipboard failed")

func loadManifest(e *env, path string) (*repository.Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	s := e.newSession()
	if err := s.LoadFrom(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// outputPath resolves -o, falling back to the export file name in out-dir
func outputPath(e *env, s *repository.Session, output string) string {
	if output != "" {
		return output
	}
	return filepath.Join(e.v.GetString(KeyOutDir), s.ExportFileName())
}

func writeManifest(s *repository.Session, path string) error {
	data, err := s.Export()
	if err != nil {
		return err
	}
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(path)); err != nil {
		return err
	}
	if err := store.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func fieldSize(value string) string {
	if value == "" {
		return "-"
	}
	return humanize.Bytes(uint64(len(value)))
}

func newInspectCmd(e *env) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "inspect <manifest>",
		Short: "Show a manifest and its apps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadManifest(e, args[0])
			if err != nil {
				return err
			}
			m := s.Manifest()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Name:       %s\n", m.DisplayName())
			if m.Identifier != "" {
				fmt.Fprintf(out, "Identifier: %s\n", m.Identifier)
			}
			fmt.Fprintf(out, "Apps:       %d\n", len(m.Apps))
			if dups := m.DuplicateNames(); len(dups) > 0 {
				fmt.Fprintf(out, "Duplicates: %s\n", strings.Join(dups, ", "))
			}

			apps := s.FilteredApps(search)
			if search != "" {
				fmt.Fprintf(out, "Matching %q: %d\n", search, len(apps))
			}
			for _, app := range apps {
				fmt.Fprintf(out, "- %s (%s) icon=%s file=%s\n", app.Name, app.Identifier,
					fieldSize(app.IconURL), fieldSize(app.DownloadURL))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "only list apps whose name contains this text")
	return cmd
}

func newAttachCmd(e *env) *cobra.Command {
	var appName string
	var output string

	cmd := &cobra.Command{
		Use:   "attach <manifest> <file>...",
		Short: "Embed images and documents into the apps with a given name",
		Long: `Embed files as data URLs. Images become the app's iconURL, PDF, text and
Word documents become its downloadURL. Other files are skipped.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(appName) == "" {
				return errors.New("--app is required")
			}
			s, err := loadManifest(e, args[0])
			if err != nil {
				return err
			}

			files, err := platform.StagePaths(args[1:])
			if err != nil {
				return err
			}
			s.Stage(files)

			report, err := s.Attach(cmd.Context(), appName)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range files {
				fmt.Fprintf(out, "%s\t%s\t%s\n", f.Name, f.Kind(), humanize.Bytes(uint64(max(f.Size, 0))))
			}
			fmt.Fprintf(out, "attached %d, skipped %d, failed %d, updated %d entries of %q\n",
				report.Attached, report.Skipped, report.Failed, report.Matched, report.App)
			if report.Attached > 0 && report.Matched == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: no app named %q\n", appName)
			}

			path := outputPath(e, s, output)
			if err := writeManifest(s, path); err != nil {
				return err
			}
			fmt.Fprintf(out, "wrote %s\n", path)
			return errors.Join(report.Errors...)
		},
	}
	cmd.Flags().StringVar(&appName, "app", "", "name of the app entries to update")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <out-dir>/<name>.json)")
	return cmd
}

// promptConfirmer asks on out and reads a y/N answer from in
func promptConfirmer(in io.Reader, out io.Writer) repository.Confirmer {
	return func(message string) bool {
		fmt.Fprintf(out, "%s [y/N] ", message)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}

func newResetCmd(e *env) *cobra.Command {
	var yes bool
	var output string

	cmd := &cobra.Command{
		Use:   "reset [manifest]",
		Short: "Replace a manifest with the empty repository",
		Long: `Replace a manifest with the empty repository. The manifest file is
overwritten unless -o is given. Without a manifest the empty repository is
written to -o or <out-dir>/repository.json.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := e.newSession()
			path := output
			if len(args) == 1 {
				loaded, err := loadManifest(e, args[0])
				if err != nil {
					return err
				}
				s = loaded
				if path == "" {
					path = args[0]
				}
			}

			confirm := repository.Answer(true)
			if !yes {
				confirm = promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			if !s.Reset(confirm) {
				return ErrResetDeclined
			}

			path = outputPath(e, s, path)
			if err := writeManifest(s, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	return cmd
}

func newCopyCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <manifest>",
		Short: "Copy the formatted manifest JSON to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadManifest(e, args[0])
			if err != nil {
				return err
			}
			s.CopyToClipboard()

			last, ok := s.Log().Last()
			if !ok || last.Severity == model.SeverityError {
				return ErrCopyFailed
			}
			fmt.Fprintln(cmd.OutOrStdout(), last.Message)
			return nil
		},
	}
}
