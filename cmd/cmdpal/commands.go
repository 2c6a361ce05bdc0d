package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cmdpal/internal/config"
	"cmdpal/internal/task"
)

func newStore() *task.Store {
	return task.NewStore(config.TasksFile(), config.HistoryFile())
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all defined tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := newStore()
			tasks := loadAndResave(store)
			if len(tasks) == 0 {
				cmd.Println("No tasks defined yet.")
				return nil
			}

			cmd.Printf("%-38s %-25s %-30s %s\n", "ID", "Name", "CWD", "Description")
			cmd.Println(strings.Repeat("-", 120))
			for _, t := range tasks {
				desc := t.Description
				if len(desc) > 40 {
					desc = desc[:40] + "..."
				}
				cmd.Printf("%-38s %-25s %-30s %s\n", t.ID, t.Name, t.Cwd, desc)
			}
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	var name, command, cwd, desc string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := newStore()
			tasks := loadAndResave(store)

			t, err := task.New(name, command, cwd, desc)
			if err != nil {
				return err
			}
			if len(task.FindByName(tasks, t.Name)) > 0 {
				fmt.Fprintf(os.Stderr, "Warning: task named %q already exists. Adding anyway.\n", t.Name)
			}

			tasks = append(tasks, t)
			if err := store.Save(tasks); err != nil {
				return err
			}
			cmd.Printf("Task %q added with ID: %s\n", t.Name, t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name of the task")
	cmd.Flags().StringVar(&command, "cmd", "", "command string to execute")
	cmd.Flags().StringVar(&cwd, "cwd", "~", "working directory")
	cmd.Flags().StringVar(&desc, "desc", "", "optional description")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("cmd")
	return cmd
}

func newEditCmd() *cobra.Command {
	var name, command, cwd, desc string

	cmd := &cobra.Command{
		Use:   "edit <id|name>",
		Short: "Edit an existing task by ID or unique name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := newStore()
			tasks := loadAndResave(store)

			t, err := task.Resolve(tasks, args[0])
			if err != nil {
				return err
			}

			updated := false
			for i := range tasks {
				if tasks[i].ID != t.ID {
					continue
				}
				if cmd.Flags().Changed("name") {
					tasks[i].Name = name
					updated = true
				}
				if cmd.Flags().Changed("cmd") {
					tasks[i].Command = command
					updated = true
				}
				if cmd.Flags().Changed("cwd") {
					tasks[i].Cwd = cwd
					updated = true
				}
				if cmd.Flags().Changed("desc") {
					tasks[i].Description = desc
					updated = true
				}
				if err := tasks[i].Validate(); err != nil {
					return err
				}
				break
			}

			if !updated {
				cmd.Println("No changes specified for the task.")
				return nil
			}
			if err := store.Save(tasks); err != nil {
				return err
			}
			cmd.Printf("Task %q updated.\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&command, "cmd", "", "new command string")
	cmd.Flags().StringVar(&cwd, "cwd", "", "new working directory")
	cmd.Flags().StringVar(&desc, "desc", "", "new description")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a task by ID or unique name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := newStore()
			tasks := loadAndResave(store)

			t, err := task.Resolve(tasks, args[0])
			if err != nil {
				return err
			}

			if !force {
				cmd.Printf("Delete task %q (ID: %s)? [y/N]: ", t.Name, t.ID)
				reader := bufio.NewReader(cmd.InOrStdin())
				answer, _ := reader.ReadString('\n')
				if strings.ToLower(strings.TrimSpace(answer)) != "y" {
					cmd.Println("Deletion cancelled.")
					return nil
				}
			}

			kept := tasks[:0]
			for _, existing := range tasks {
				if existing.ID != t.ID {
					kept = append(kept, existing)
				}
			}
			if err := store.Save(kept); err != nil {
				return err
			}
			cmd.Printf("Task %q deleted.\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")
	return cmd
}

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the path of the tasks file",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(config.TasksFile())
		},
	}
}
