package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/QTest-hq/classscan/internal/config"
	"github.com/QTest-hq/classscan/internal/scanner"
	"github.com/spf13/cobra"
)

func methodCmd(flags *globalFlags) *cobra.Command {
	var (
		className   string
		name        string
		index       int
		scannerName string
	)

	cmd := &cobra.Command{
		Use:   "method <file>",
		Short: "Inspect one method with a registered method scanner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			registry := scanner.NewRegistry()

			if scannerName == "list" {
				for _, n := range registry.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			}

			project, err := projectSettings(flags, &config.ProjectConfig{
				Scan: config.ScanConfig{MethodScanner: scannerName},
			})
			if err != nil {
				return err
			}

			ref, err := memberRef(name, index)
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

			m, err := registry.Method(s, ref, project.Scan.MethodScanner)
			if err != nil {
				return err
			}

			printMethod(cmd.OutOrStdout(), m)
			return nil
		},
	}

	cmd.Flags().StringVarP(&className, "class", "c", "", "Class holding the method (short or qualified name)")
	cmd.Flags().StringVar(&name, "name", "", "Method name")
	cmd.Flags().IntVar(&index, "index", -1, "Member index as listed by the members command")
	cmd.Flags().StringVarP(&scannerName, "scanner", "s", "", "Method scanner to use; 'list' prints the registered names")

	return cmd
}

func printMethod(w io.Writer, m scanner.MethodScanner) {
	fmt.Fprintf(w, "%s::%s\n", m.ClassName(), m.Name())

	switch v := m.(type) {
	case *scanner.Signature:
		fmt.Fprintf(w, "  signature:  %s\n", v.String())
		describe(w, v.Method)
	case *scanner.Method:
		describe(w, v)
	}

	fmt.Fprintf(w, "  tokens:     %d\n", len(m.Tokens()))
}

func describe(w io.Writer, m *scanner.Method) {
	mods := m.Modifiers()
	flags := []string{mods.EffectiveVisibility()}
	if mods.Static {
		flags = append(flags, "static")
	}
	if mods.Abstract {
		flags = append(flags, "abstract")
	}
	if mods.Final {
		flags = append(flags, "final")
	}

	fmt.Fprintf(w, "  modifiers:  %s\n", strings.Join(flags, " "))
	fmt.Fprintf(w, "  parameters: %s\n", strings.Join(m.Parameters(), ", "))
	fmt.Fprintf(w, "  body:       %t\n", m.HasBody())
}
