package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/ironplan/internal/client"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var (
	projectPage  int
	projectLimit int
)

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your projects",
	RunE:    runProjectList,
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name> <description>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectAdd,
}

var projectStatusCmd = &cobra.Command{
	Use:   "status <id> <open|completed|archived>",
	Short: "Set the status of a project you own",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectStatus,
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a project you own",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectDelete,
}

func init() {
	projectListCmd.Flags().IntVar(&projectPage, "page", 1, "Page number")
	projectListCmd.Flags().IntVar(&projectLimit, "limit", 10, "Items per page")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectStatusCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

func runProjectList(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	page, err := c.ListProjects(projectPage, projectLimit)
	if err != nil {
		return err
	}

	if len(page.Projects) == 0 {
		fmt.Println("No projects found. Create one with: ironplan project add")
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Projects (page %d/%d, %d total)",
		page.Page, page.TotalPages, page.TotalProjects)))
	fmt.Println(strings.Repeat("─", 60))

	for _, p := range page.Projects {
		fmt.Printf("  %s  %-30s  %s\n",
			dimStyle.Render(shortID(p.ID)), p.Name, styledStatus(p.Status))
	}

	return nil
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	project, err := c.CreateProject(args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Printf("Created project %s (%s)\n", project.Name, shortID(project.ID))
	return nil
}

func runProjectStatus(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	project, err := c.SetProjectStatus(args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Printf("Project %s is now %s\n", shortID(project.ID), styledStatus(project.Status))
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	if err := c.DeleteProject(args[0]); err != nil {
		return err
	}

	fmt.Println("Project deleted.")
	return nil
}
