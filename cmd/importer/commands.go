package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Domenick1991/hackportal/internal/domain"
	"github.com/Domenick1991/hackportal/internal/service/hacks"
)

const credentialEnv = "PORTAL_ADMIN_CREDENTIAL"

type importFile struct {
	Items []hacks.ImportItem `yaml:"items"`
}

// loadImportFile reads {"items": [...]} from a JSON or YAML document.
func loadImportFile(r io.Reader) ([]hacks.ImportItem, error) {
	var f importFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("import file is empty")
		}
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}
	return f.Items, nil
}

func importCmd() *cobra.Command {
	var credential string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Bulk import hacks from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if credential == "" {
				credential = os.Getenv(credentialEnv)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open import file: %w", err)
			}
			defer f.Close()

			items, err := loadImportFile(f)
			if err != nil {
				return err
			}

			result, err := app.hacks.Import(app.ctx, credential, items)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), hacks.StatusImportFailed)
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", result.Status)
			printHacks(out, result.Hacks)
			return nil
		},
	}

	cmd.Flags().StringVar(&credential, "credential", "", "Administrative credential (defaults to $"+credentialEnv+")")
	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored hacks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.hacks.List(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to list hacks: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Found %d hacks:\n\n", len(list))
			printHacks(out, list)
			return nil
		},
	}
}

func printHacks(w io.Writer, list []domain.Hack) {
	for _, h := range list {
		location := ""
		if h.Floor != nil {
			location = fmt.Sprintf(" [floor %d", *h.Floor)
			if h.Table != nil {
				location += ", table " + *h.Table
			}
			location += "]"
		}
		fmt.Fprintf(w, "%6d  %s - %s%s\n", h.ID, h.Title, h.DevpostURL, location)
	}
}
