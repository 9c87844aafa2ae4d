// Command yay is an optional CLI convenience around the yay library (spec
// §6: "An implementation may additionally offer a file-loading convenience;
// this is not part of the core"). It is a thin wrapper over yay.Parse —
// nothing in pkg/yay or internal/valueparser depends on it.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/shapestone/yay/pkg/yay"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:           "yay",
		Short:         "Parse and inspect YAY documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	root.AddCommand(newValidateCmd(&noColor), newDumpCmd(&noColor))
	return root
}

// newValidateCmd reports whether each given file parses as a valid YAY
// document, printing a diagnostic (file, line, column, message) for the
// first error in each file that fails.
func newValidateCmd(noColor *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file> [file...]",
		Short: "Validate one or more YAY files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := stdout(*noColor)
			color.NoColor = *noColor
			bad := 0
			for _, path := range args {
				if err := validateFile(out, path); err != nil {
					bad++
				}
			}
			if bad > 0 {
				return fmt.Errorf("%d of %d file(s) failed to validate", bad, len(args))
			}
			return nil
		},
	}
}

func validateFile(out *color.Color, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return err
	}
	if _, err := yay.Parse(data, path); err != nil {
		fmt.Fprintln(os.Stderr, errColor().Sprintf("%v", err))
		return err
	}
	out.Fprintf(color.Output, "%s: ok\n", path)
	return nil
}

// newDumpCmd reads a file, runs it through the three-stage parsing pipeline,
// and prints either an indented dump of the resulting value tree or the
// formatted diagnostic (spec §6's "file-loading convenience").
func newDumpCmd(noColor *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a YAY file and print its value tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout(*noColor)
			color.NoColor = *noColor
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			val, err := yay.Parse(data, path)
			if err != nil {
				fmt.Fprintln(os.Stderr, errColor().Sprintf("%v", err))
				return err
			}
			fmt.Fprintln(os.Stdout, yay.Dump(val))
			return nil
		},
	}
}

// stdout returns a color.Color bound to a colorable stdout writer, honoring
// --no-color. go-colorable strips ANSI codes on terminals that can't render
// them (notably legacy Windows consoles) instead of leaving raw escapes in
// the output.
func stdout(noColor bool) *color.Color {
	color.Output = colorable.NewColorableStdout()
	c := color.New(color.FgGreen)
	if noColor {
		c.DisableColor()
	}
	return c
}

func errColor() *color.Color {
	return color.New(color.FgRed)
}
