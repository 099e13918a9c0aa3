package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/frontgen/internal/agent"
	"github.com/dusk-indust/frontgen/internal/validation"
)

var errInvalid = errors.New("validation failed")

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate names, configuration files and generated code",
	}

	nameCheck := func(use, short string, check func(string) validation.Result) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <name>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				err := a.validation(cmd, args[0], check(args[0]))
				if use == "name" && err != nil && !a.jsonOut {
					fmt.Fprintf(cmd.OutOrStdout(), "  suggestion: %s\n", cyan(validation.SuggestProjectName(args[0])))
				}
				return err
			},
		}
	}

	var language string
	code := &cobra.Command{
		Use:   "code <file>",
		Short: "Check a source file for empty content, unbalanced braces and syntax errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			lang := language
			if lang == "" {
				lang = strings.TrimPrefix(filepath.Ext(args[0]), ".")
			}
			return a.validation(cmd, args[0], validation.Code(string(data), lang, a.parser))
		},
	}
	code.Flags().StringVar(&language, "language", "", "source language (default from the file extension)")

	var framework string
	project := &cobra.Command{
		Use:   "project <dir>",
		Short: "Check that a generated project holds the files its tooling expects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := validation.ProjectStructure(os.DirFS(args[0]), frameworkName(framework))
			return a.validation(cmd, args[0], r)
		},
	}
	project.Flags().StringVar(&framework, "framework", "react", "framework the project was generated for")

	var sets []string
	cfg := &cobra.Command{
		Use:   "config <framework>",
		Short: "Check operation parameters for framework compatibility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseSets(sets)
			if err != nil {
				return err
			}
			return a.validation(cmd, args[0], validation.FrameworkConfig(frameworkName(args[0]), params))
		},
	}
	cfg.Flags().StringArrayVar(&sets, "set", nil, "parameter as key=value (repeatable)")

	cmd.AddCommand(
		nameCheck("name", "Check a project name against npm naming rules", validation.ProjectName),
		nameCheck("component", "Check a component name is PascalCase", validation.ComponentName),
		nameCheck("hook", "Check a hook or composable name starts with use", validation.HookName),
		nameCheck("package", "Check an npm package name", validation.PackageName),
		fileCheck(a, "package-json", "Check a package.json against its schema", validation.PackageJSON),
		fileCheck(a, "tsconfig", "Check a tsconfig.json", validation.TSConfig),
		code,
		project,
		cfg,
	)
	return cmd
}

func fileCheck(a *app, use, short string, check func([]byte) validation.Result) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return a.validation(cmd, args[0], check(data))
		},
	}
}

// frameworkName maps aliases such as "Next.js" to the names validation
// knows; unknown names pass through so validation reports them.
func frameworkName(name string) string {
	if spec, err := agent.ForFramework(name); err == nil {
		return string(spec)
	}
	return name
}

func (a *app) validation(cmd *cobra.Command, subject string, r validation.Result) error {
	valid := r.Valid()
	if a.jsonOut {
		if err := writeJSON(cmd.OutOrStdout(), map[string]any{
			"subject":  subject,
			"valid":    valid,
			"issues":   r.Issues,
			"errors":   r.Errors(),
			"warnings": r.Warnings(),
		}); err != nil {
			return err
		}
	} else {
		printValidation(cmd.OutOrStdout(), subject, r)
	}
	if !valid {
		return errInvalid
	}
	return nil
}
