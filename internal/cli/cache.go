package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render and asset cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached renders and assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.Config()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == "redis" {
				printWarning("Cache backend is redis; clear it with redis-cli FLUSHDB")
				return nil
			}
			dir := cfg.Cache.CacheDir()

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			count := 0
			err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
				if err != nil || path == dir {
					return nil
				}
				if !info.IsDir() {
					if err := os.Remove(path); err == nil {
						count++
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			// Clean up empty shard subdirectories.
			_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
				if err != nil || path == dir {
					return nil
				}
				if info.IsDir() {
					os.Remove(path)
				}
				return nil
			})

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.Config()
			if err != nil {
				return err
			}
			switch cfg.Cache.Backend {
			case "redis":
				printKeyValue("backend", "redis")
				printKeyValue("addr", cfg.Cache.Redis.Addr)
			case "none":
				printKeyValue("backend", "none")
			default:
				printKeyValue("backend", "file")
				printKeyValue("path", cfg.Cache.CacheDir())
			}
			fmt.Println()
			return nil
		},
	}
}
