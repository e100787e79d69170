package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/QTest-hq/classscan/internal/config"
	"github.com/QTest-hq/classscan/internal/filescan"
	"github.com/QTest-hq/classscan/internal/report"
	"github.com/QTest-hq/classscan/internal/scanner"
	"github.com/QTest-hq/classscan/internal/token"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func scanCmd(flags *globalFlags) *cobra.Command {
	var (
		format    string
		filter    string
		namespace string
	)

	cmd := &cobra.Command{
		Use:   "scan <file>...",
		Short: "Report every class declared in PHP files or token dumps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			project, err := projectSettings(flags, &config.ProjectConfig{
				Namespace: namespace,
				Output:    config.OutputConfig{Format: format},
				Scan:      config.ScanConfig{Filter: filter},
			})
			if err != nil {
				return err
			}

			outFormat, err := report.ParseFormat(project.Output.Format)
			if err != nil {
				return err
			}

			members := 0
			countMembers := filescan.WithScannerOptions(scanner.WithObserver(func(scanner.MemberInfo) {
				members++
			}))

			var reports []*report.Report
			for _, path := range args {
				file, err := scanPath(ctx, path, project, countMembers)
				if err != nil {
					return err
				}
				for _, c := range file.Classes {
					r, err := report.Build(c.Scanner, path)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					reports = append(reports, r)
				}
			}

			log.Info().
				Int("files", len(args)).
				Int("classes", len(reports)).
				Int("members", members).
				Msg("scan complete")

			return report.Render(cmd.OutOrStdout(), reports, outFormat)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "", "Output format (text, json, yaml)")
	cmd.Flags().StringVarP(&filter, "class", "c", "", `Glob over qualified class names, e.g. 'App\Http\**'`)
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Namespace for code outside any namespace statement")

	return cmd
}

func membersCmd(flags *globalFlags) *cobra.Command {
	var className string

	cmd := &cobra.Command{
		Use:   "members <file>",
		Short: "List the member spans of one class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			project, err := projectSettings(flags, nil)
			if err != nil {
				return err
			}

			file, err := scanPath(ctx, args[0], project)
			if err != nil {
				return err
			}
			s, err := selectClass(file, className)
			if err != nil {
				return err
			}

			members, err := s.Members()
			if err != nil {
				return err
			}
			name, _ := s.Name()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", name)

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tKIND\tNAME\tVISIBILITY\tTOKENS\tLINES")
			for i, m := range members {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d-%d\t%d-%d\n",
					i, m.Kind, m.Name, m.Modifiers.EffectiveVisibility(),
					m.TokenStart, m.TokenEnd, m.LineStart, m.LineEnd)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&className, "class", "c", "", "Class to inspect (short or qualified name)")

	return cmd
}

func tokensCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tokens <file.php>",
		Short: "Dump the token stream of a PHP file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := loadTokens(context.Background(), args[0])
			if err != nil {
				return err
			}
			return token.Encode(cmd.OutOrStdout(), tokens, token.Format(strings.ToLower(format)))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "json", "Dump format (json, yaml)")

	return cmd
}

func initCmd(flags *globalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default .classscan.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(flags.projectDir, ".classscan.yaml")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}

			if err := config.SaveProjectConfig(flags.projectDir, config.DefaultProjectConfig()); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			log.Info().Str("dir", flags.projectDir).Msg("wrote .classscan.yaml")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
