package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newSurokImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "surok_image",
		Short: "Force a rebuild of the Surok base image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.BuildBase(cmd.Context(), true)
		},
	}
}

func (c *CLI) newSurokImageNoRebuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "surok_image_no_rebuild",
		Short: "Build the Surok base image unless it is already up to date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.BuildBase(cmd.Context(), false)
		},
	}
}

func (c *CLI) newAlpineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alpine",
		Short: "Build the Alpine base image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.BuildAlpine(cmd.Context())
		},
	}
}

func (c *CLI) newCentosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "centos",
		Short: "Build the CentOS base image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.BuildCentos(cmd.Context())
		},
	}
}
