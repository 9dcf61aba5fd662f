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

package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/nlnwa/warcstream"
	"github.com/nlnwa/warcstream/pkg/watch"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "watch DIR...",
		Short: "Count records of files as they appear in directories",
		Long: `Watch directories and print the record count of every file once it has not
changed for the settle delay. Files present when the command starts are counted at once.
Files ending in ~ or .open are ignored.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			return runE(ctx, cmd, viper.GetDuration("settle"), args)
		},
	}

	cmd.Flags().Duration("settle", 10*time.Second, "time a file must be unchanged before it is counted")

	return cmd
}

func runE(ctx context.Context, cmd *cobra.Command, settle time.Duration, dirs []string) error {
	w, err := watch.New(settle, dirs...)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	return w.Run(ctx, func(path string) error {
		n, err := warcstream.Count(path)
		if err != nil {
			log.Warnf("%s: %v", path, err)
			return nil
		}
		_, err = fmt.Fprintf(out, "%s\t%d\n", path, n)
		return err
	})
}
