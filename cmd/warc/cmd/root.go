/*
 * Copyright 2021 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/nlnwa/warcstream/cmd/warc/cmd/cat"
	"github.com/nlnwa/warcstream/cmd/warc/cmd/count"
	"github.com/nlnwa/warcstream/cmd/warc/cmd/filter"
	"github.com/nlnwa/warcstream/cmd/warc/cmd/ls"
	"github.com/nlnwa/warcstream/cmd/warc/cmd/strip"
	"github.com/nlnwa/warcstream/cmd/warc/cmd/watch"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type conf struct {
	cfgFile string
}

// NewCommand returns a new cobra.Command implementing the root command for warc
func NewCommand() *cobra.Command {
	c := &conf{}
	cmd := &cobra.Command{
		Use:   "warc",
		Short: "Read, count and filter records of WARC files",
		Long: `Read WARC files, plain or gzip compressed, as one continuous stream of records.

Every command accepts any mix of files and directories. A directory is replaced by the
files directly inside it, in lexicographic order.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.initConfig(); err != nil {
				return err
			}
			level, err := log.ParseLevel(viper.GetString("log-level"))
			if err != nil {
				return err
			}
			log.SetLevel(level)
			if viper.ConfigFileUsed() != "" {
				log.Debugf("Using config file: %s", viper.ConfigFileUsed())
			}
			return nil
		},
	}

	// Flags
	cmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.warc.yaml)")
	cmd.PersistentFlags().String("log-level", "info", "log level: trace, debug, info, warn, error")
	_ = viper.BindPFlag("log-level", cmd.PersistentFlags().Lookup("log-level"))

	// Subcommands
	cmd.AddCommand(count.NewCommand())
	cmd.AddCommand(ls.NewCommand())
	cmd.AddCommand(cat.NewCommand())
	cmd.AddCommand(filter.NewCommand())
	cmd.AddCommand(strip.NewCommand())
	cmd.AddCommand(watch.NewCommand())

	return cmd
}

// initConfig reads in config file and ENV variables if set.
func (c *conf) initConfig() error {
	if c.cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(c.cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}

		// Search config in home directory with name ".warc" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".warc")
	}

	viper.SetEnvPrefix("warc")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && c.cfgFile == "" {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}
