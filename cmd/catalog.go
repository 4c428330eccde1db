package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spigell/resume-scanner/internal/catalog"
	"github.com/spigell/resume-scanner/internal/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the job roles known to the matcher",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return listCatalog(cmd, catalog.Default())
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogFlags(catalogCmd.Flags())
}

func catalogFlags(f *pflag.FlagSet) {
	f.String("category", "", "only list roles of this category")
	f.String("role", "", "show a single role")
	f.Bool("categories", false, "list role categories only")
	f.StringP("output", "o", "text", "output format: text or json")
}

func listCatalog(cmd *cobra.Command, cat *catalog.Catalog) error {
	f := cmd.Flags()
	category, _ := f.GetString("category")
	title, _ := f.GetString("role")
	output, _ := f.GetString("output")
	output = strings.ToLower(output)

	if only, _ := f.GetBool("categories"); only {
		return writeCategories(cmd.OutOrStdout(), cat.Categories(), output)
	}

	roles := cat.Roles()
	if title != "" {
		role, ok := cat.Role(title)
		if !ok {
			return fmt.Errorf("%w: %s", catalog.ErrUnknownRole, title)
		}
		roles = []types.JobRole{role}
	}
	if category != "" {
		roles = slice.FindAll(roles, func(r types.JobRole) bool {
			return strings.EqualFold(r.Category, category)
		})
	}

	switch output {
	case "json":
		return writeJSON(cmd.OutOrStdout(), roles)
	case "text", "":
		return writeRoles(cmd.OutOrStdout(), roles)
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
}

func writeCategories(w io.Writer, categories []string, output string) error {
	switch output {
	case "json":
		return writeJSON(w, categories)
	case "text", "":
		for _, c := range categories {
			fmt.Fprintln(w, c)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
}

func writeRoles(w io.Writer, roles []types.JobRole) error {
	for i, role := range roles {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s [%s]\n", role.Title, role.Category)
		if role.Description != "" {
			fmt.Fprintf(w, "  %s\n", role.Description)
		}
		fmt.Fprintf(w, "  required:  %s\n", strings.Join(role.RequiredSkills, ", "))
		if len(role.PreferredSkills) > 0 {
			fmt.Fprintf(w, "  preferred: %s\n", strings.Join(role.PreferredSkills, ", "))
		}
		fmt.Fprintf(w, "  level: %s, compensation: %s, growth: %s\n",
			role.ExperienceLevel, role.CompensationBand, role.GrowthPotential)
	}
	return nil
}
