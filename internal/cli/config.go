package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitlanes/pkg/config"
	"github.com/matzehuels/gitlanes/pkg/errors"
)

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())

	return cmd
}

// configFile returns the file in use: --config if given, else the default.
func (c *CLI) configFile() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.Path()
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configFile()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration after the file and environment
overrides are applied. The Redis password is never shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg := c.cfg

			password := "(unset)"
			if cfg.Cache.RedisPassword != "" {
				password = "(set)"
			}

			printKeyValue(out, "charset", cfg.Charset)
			printKeyValue(out, "color", cfg.Color)
			printKeyValue(out, "color_mode", cfg.ColorMode)
			printKeyValue(out, "hflip", strconv.FormatBool(cfg.HFlip))
			printKeyValue(out, "vflip", strconv.FormatBool(cfg.VFlip))
			printKeyValue(out, "labels", strconv.FormatBool(cfg.Labels))
			printKeyValue(out, "max_lanes", strconv.Itoa(cfg.MaxLanes))
			printKeyValue(out, "cache.backend", cfg.Cache.Backend)
			printKeyValue(out, "cache.ttl", cfg.Cache.TTL.String())
			switch cfg.Cache.Backend {
			case config.BackendRedis:
				printKeyValue(out, "cache.redis", fmt.Sprintf("%s/%d", cfg.Cache.RedisAddr, cfg.Cache.RedisDB))
				printKeyValue(out, "cache.password", password)
			case config.BackendMongo:
				// The URI may carry credentials.
				printKeyValue(out, "cache.mongo", "(set) db="+cfg.Cache.MongoDatabase)
			case config.BackendFile:
				if dir, err := c.cacheDir(); err == nil {
					printKeyValue(out, "cache.dir", dir)
				}
			}
			printKeyValue(out, "server.addr", cfg.Server.Addr)
			printKeyValue(out, "server.shutdown", cfg.Server.ShutdownTimeout.String())
			return nil
		},
	}
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the defaults",
		// The file may be missing or broken, so skip loading it.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configFile()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create config dir: %w", err)
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := config.Encode(f, config.Default()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			printSuccess("Wrote default configuration")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
