package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildPackageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build_package",
		Short: "Build the builder image, then the Surok Debian package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.BuildBuilder(cmd.Context()); err != nil {
				return err
			}
			return c.app.BuildPackage(cmd.Context())
		},
	}
}

func (c *CLI) newBuildDebCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build_deb",
		Short: "Build the Surok Debian package using the existing builder image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.BuildPackage(cmd.Context())
		},
	}
}
