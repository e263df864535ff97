package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tara-vision/readmegen/internal/pipeline"
	"github.com/tara-vision/readmegen/internal/readme"
	"github.com/tara-vision/readmegen/internal/ui"
)

// Output formats of the generate command
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

var generateCmd = &cobra.Command{
	Use:   "generate <owner/repo[@branch] | github-url>",
	Short: "Analyze a repository and generate its README",
	Example: `  readmegen generate spf13/cobra
  readmegen generate https://github.com/spf13/cobra/tree/main --out README.md
  readmegen generate spf13/cobra --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	flags := generateCmd.Flags()
	flags.StringP("out", "o", "", "write the README to this file instead of stdout")
	flags.BoolP("force", "f", false, "overwrite an existing output file")
	flags.String("format", FormatMarkdown, "output format (markdown, json, yaml)")
	flags.String("customize", "", "YAML file with README customization")
	flags.String("branch", "", "branch to analyze (overrides @branch)")
	flags.Bool("preview", false, "render the README for the terminal")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != FormatMarkdown && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("unknown format %q (markdown, json, yaml)", format)
	}

	req, err := pipeline.ParseTarget(args[0])
	if err != nil {
		return err
	}
	if branch, _ := cmd.Flags().GetString("branch"); branch != "" {
		req.Branch = branch
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}

	req.Customization, err = loadCustomization(a.fs, cmd)
	if err != nil {
		return err
	}

	fmt.Fprint(os.Stderr, a.renderer.ProviderMessage(a.info))
	res, err := a.run(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stderr, a.renderer.RunSummary(res))

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		force, _ := cmd.Flags().GetBool("force")
		if err := a.writer.Write(out, res.Readme, force); err != nil {
			if errors.Is(err, readme.ErrExists) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			return err
		}
		fmt.Fprintln(os.Stderr, a.renderer.SuccessMessage("Wrote "+out))
		if format == FormatMarkdown {
			return nil
		}
	}

	preview, _ := cmd.Flags().GetBool("preview")
	return writeResult(cmd.OutOrStdout(), res, format, preview)
}

func loadCustomization(fs afero.Fs, cmd *cobra.Command) (readme.Customization, error) {
	path, _ := cmd.Flags().GetString("customize")
	if path == "" {
		return readme.DefaultCustomization(), nil
	}
	return readme.LoadCustomization(fs, path)
}

// writeResult prints the README or the whole run in format
func writeResult(w io.Writer, res *pipeline.Result, format string, preview bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		if preview {
			_, err := fmt.Fprintln(w, ui.RenderMarkdown(res.Readme))
			return err
		}
		_, err := io.WriteString(w, res.Readme)
		return err
	}
}
