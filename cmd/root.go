package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tablero",
	Short: "Tablero - a project management API server",
	Long:  `Tablero is a kanban/scrum style project management backend serving workspaces, projects, workflows, and labels over HTTP.`,
}

func Execute() error {
	return rootCmd.Execute()
}
