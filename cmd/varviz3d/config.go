package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage varviz3d configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.varviz3d.yaml unless --config points elsewhere.",
		Example: `  varviz3d config                      # show all config
  varviz3d config set tracks.window 25   # change the default window
  varviz3d config get cache.enabled      # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, *cfgFile)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, *cfgFile, args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd, *cfgFile, args[0])
		},
	})

	return cmd
}

func configFilePath(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".varviz3d.yaml"), nil
}

func openConfigViper(cfgFile string) (*viper.Viper, string, error) {
	path, err := configFilePath(cfgFile)
	if err != nil {
		return nil, "", err
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, "", fmt.Errorf("read config: %w", err)
		}
	}
	return v, path, nil
}

func runConfigShow(cmd *cobra.Command, cfgFile string) error {
	v, path, err := openConfigViper(cfgFile)
	if err != nil {
		return err
	}
	settings := v.AllSettings()
	if len(settings) == 0 {
		cmd.Printf("# No configuration set. Config file: %s\n", path)
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	cmd.Print(string(out))
	return nil
}

func runConfigSet(cmd *cobra.Command, cfgFile, key, value string) error {
	v, path, err := openConfigViper(cfgFile)
	if err != nil {
		return err
	}

	// Parse boolean-like values
	switch value {
	case "true", "yes", "on":
		v.Set(key, true)
	case "false", "no", "off":
		v.Set(key, false)
	default:
		v.Set(key, value)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	cmd.Printf("Set %s = %s in %s\n", key, value, path)
	return nil
}

func runConfigGet(cmd *cobra.Command, cfgFile, key string) error {
	v, _, err := openConfigViper(cfgFile)
	if err != nil {
		return err
	}
	val := v.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	cmd.Println(val)
	return nil
}
