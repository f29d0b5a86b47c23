package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/ironplan/internal/client"
	"github.com/existflow/ironplan/internal/model"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var (
	taskPage     int
	taskLimit    int
	taskProject  string
	taskStatus   string
	taskAssignee string
)

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks, optionally filtered.

Examples:
  ironplan task list
  ironplan task list --project <id> --status done
  ironplan task list --assignee <userId>`,
	RunE: runTaskList,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <projectId> <title> <description>",
	Short: "Create a task under a project",
	Args:  cobra.ExactArgs(3),
	RunE:  runTaskAdd,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task you are assigned to as done",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskDelete,
}

func init() {
	taskListCmd.Flags().IntVar(&taskPage, "page", 1, "Page number")
	taskListCmd.Flags().IntVar(&taskLimit, "limit", 10, "Items per page")
	taskListCmd.Flags().StringVarP(&taskProject, "project", "P", "", "Filter by project id")
	taskListCmd.Flags().StringVar(&taskStatus, "status", "", "Filter by status")
	taskListCmd.Flags().StringVar(&taskAssignee, "assignee", "", "Filter by assigned user id")

	taskAddCmd.Flags().String("assignee", "", "Assign the task to a user id")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}

func runTaskList(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	page, err := c.ListTasks(taskProject, taskStatus, taskAssignee, taskPage, taskLimit)
	if err != nil {
		return err
	}

	if len(page.Tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Tasks (page %d/%d, %d total)",
		page.Page, page.TotalPages, page.TotalTasks)))
	fmt.Println(strings.Repeat("─", 70))

	for _, t := range page.Tasks {
		printTask(t)
	}

	return nil
}

func printTask(t model.Task) {
	icon := "[ ]"
	if t.Status == model.TaskStatusDone {
		icon = "[x]"
	}

	title := t.Title
	if len(title) > 40 {
		title = title[:37] + "..."
	}

	assignee := dimStyle.Render("unassigned")
	if t.IsAssigned() {
		assignee = shortID(t.AssignedUserID)
	}

	fmt.Printf("  %s  %s  %-40s  %-12s  %s\n",
		icon, dimStyle.Render(shortID(t.ID)), title, styledStatus(t.Status), assignee)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	assignee, _ := cmd.Flags().GetString("assignee")
	task, err := c.CreateTask(args[0], args[1], args[2], assignee)
	if err != nil {
		return err
	}

	fmt.Printf("Created task %s (%s)\n", task.Title, shortID(task.ID))
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	task, err := c.SetTaskStatus(args[0], model.TaskStatusDone)
	if err != nil {
		return err
	}

	fmt.Printf("Done: %s\n", task.Title)
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	if err := c.DeleteTask(args[0]); err != nil {
		return err
	}

	fmt.Println("Task deleted.")
	return nil
}
